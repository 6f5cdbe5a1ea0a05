package spans

import (
	"context"
	"fmt"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/nocturne-org/nocturne/legacy"
	"github.com/nocturne-org/nocturne/pointer"
)

const stateSpansCollectionName = "stateSpans"

func NewService(db *mongo.Database, logger *zap.SugaredLogger, lifecycle fx.Lifecycle) (Service, error) {
	svc := &service{
		collection: db.Collection(stateSpansCollectionName),
		logger:     logger,
	}

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return svc.Initialize(ctx)
		},
	})

	return svc, nil
}

type service struct {
	collection *mongo.Collection
	logger     *zap.SugaredLogger
}

func (s *service) Initialize(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "category", Value: 1},
				{Key: "originalId", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.D{
					{Key: "originalId", Value: bson.D{{Key: "$type", Value: "string"}}},
				}).
				SetName("UniqueOriginalSpan"),
		},
		{
			Keys: bson.D{
				{Key: "category", Value: 1},
				{Key: "startMills", Value: 1},
			},
			Options: options.Index().
				SetName("SpanInterval"),
		},
	})
	return err
}

func (s *service) UpsertStateSpan(ctx context.Context, span *StateSpan) (*StateSpan, error) {
	if span.OriginalId == nil || *span.OriginalId == "" {
		res, err := s.collection.InsertOne(ctx, span)
		if err != nil {
			return nil, fmt.Errorf("error inserting state span: %w", err)
		}
		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			span.Id = &id
		}
		return span, nil
	}

	selector := bson.M{
		"category":   span.Category,
		"originalId": *span.OriginalId,
	}
	opts := options.FindOneAndReplace().
		SetUpsert(true).
		SetReturnDocument(options.After)

	result := &StateSpan{}
	err := s.collection.FindOneAndReplace(ctx, selector, span, opts).Decode(result)
	if err != nil {
		return nil, fmt.Errorf("error upserting state span: %w", err)
	}

	s.logger.Debugw("upserted state span", "category", span.Category, "originalId", *span.OriginalId)
	return result, nil
}

func (s *service) CreateBasalDeliveryFromTreatment(ctx context.Context, treatment *legacy.Treatment, correlationId string) (*StateSpan, error) {
	span := &StateSpan{
		Category:      CategoryBasalDelivery,
		State:         "Temp",
		StartMills:    treatment.Mills,
		EndMills:      endFromDuration(treatment.Mills, treatment.Duration),
		OriginalId:    treatment.SourceId,
		CorrelationId: correlationId,
		Metadata:      map[string]string{},
	}
	if treatment.Absolute != nil {
		span.Metadata["absolute"] = formatFloat(*treatment.Absolute)
	}
	if treatment.Percent != nil {
		span.Metadata["percent"] = formatFloat(*treatment.Percent)
	}
	if treatment.Duration != nil {
		span.Metadata["durationMinutes"] = formatFloat(*treatment.Duration)
	}
	if len(span.Metadata) == 0 {
		span.Metadata = nil
	}

	return s.UpsertStateSpan(ctx, span)
}

func endFromDuration(startMills int64, durationMinutes *float64) *int64 {
	if durationMinutes == nil || *durationMinutes <= 0 {
		return nil
	}
	return pointer.FromAny(startMills + int64(*durationMinutes*60000))
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
