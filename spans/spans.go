package spans

// Package spans tracks therapy states that persist over time, such as
// temporary basal rates, profile switches and active overrides. Spans are
// intervals which can be open-ended while the state is still in effect.

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nocturne-org/nocturne/legacy"
)

type Category string

const (
	CategoryOverride      Category = "override"
	CategoryProfile       Category = "profile"
	CategoryBasalDelivery Category = "basalDelivery"
)

type StateSpan struct {
	Id            *primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Category      Category            `bson:"category" json:"category"`
	State         string              `bson:"state" json:"state"`
	StartMills    int64               `bson:"startMills" json:"startMills"`
	EndMills      *int64              `bson:"endMills,omitempty" json:"endMills,omitempty"`
	OriginalId    *string             `bson:"originalId,omitempty" json:"originalId,omitempty"`
	CorrelationId string              `bson:"correlationId" json:"correlationId"`

	// Metadata keys are only set when the corresponding source field was
	// present on the legacy record.
	Metadata map[string]string `bson:"metadata,omitempty" json:"metadata,omitempty"`
}

//go:generate mockgen --build_flags=--mod=mod -source=./spans.go -destination=./test/mock_service.go -package test MockService

// Service owns the span interval lifecycle. Decomposers delegate continuous
// states here instead of writing interval records themselves.
type Service interface {
	UpsertStateSpan(ctx context.Context, span *StateSpan) (*StateSpan, error)
	CreateBasalDeliveryFromTreatment(ctx context.Context, treatment *legacy.Treatment, correlationId string) (*StateSpan, error)
}
