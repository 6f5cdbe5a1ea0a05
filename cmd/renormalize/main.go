package main

import (
	"github.com/nocturne-org/nocturne/cmd/renormalize/command"
)

func main() {
	command.Execute()
}
