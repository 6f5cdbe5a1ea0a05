package main

import (
	"github.com/nocturne-org/nocturne/api"
)

func main() {
	api.MainLoop()
}
