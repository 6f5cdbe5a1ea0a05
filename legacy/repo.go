package legacy

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	entriesCollectionName      = "entries"
	treatmentsCollectionName   = "treatments"
	deviceStatusCollectionName = "devicestatus"
)

// Repository stores raw legacy records as they were received, so they can be
// replayed through the decomposition engine at any time.
type Repository[T any] interface {
	Save(ctx context.Context, record *T) error
	Each(ctx context.Context, fn func(record *T) error) error
}

type repository[T any] struct {
	collection *mongo.Collection
	sourceId   func(record *T) *string
}

func (r *repository[T]) Save(ctx context.Context, record *T) error {
	if sourceId := r.sourceId(record); sourceId != nil && *sourceId != "" {
		selector := bson.M{
			"sourceId": *sourceId,
		}
		opts := options.Replace().SetUpsert(true)
		if _, err := r.collection.ReplaceOne(ctx, selector, record, opts); err != nil {
			return fmt.Errorf("error saving record in %s: %w", r.collection.Name(), err)
		}
		return nil
	}

	if _, err := r.collection.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("error saving record in %s: %w", r.collection.Name(), err)
	}
	return nil
}

func (r *repository[T]) Each(ctx context.Context, fn func(record *T) error) error {
	opts := options.Find().SetSort(bson.D{{Key: "mills", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return fmt.Errorf("error listing %s: %w", r.collection.Name(), err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		record := new(T)
		if err := cursor.Decode(record); err != nil {
			return fmt.Errorf("error decoding record in %s: %w", r.collection.Name(), err)
		}
		if err := fn(record); err != nil {
			return err
		}
	}
	return cursor.Err()
}

func NewEntriesRepository(db *mongo.Database) Repository[Entry] {
	return &repository[Entry]{
		collection: db.Collection(entriesCollectionName),
		sourceId:   func(entry *Entry) *string { return entry.SourceId },
	}
}

func NewTreatmentsRepository(db *mongo.Database) Repository[Treatment] {
	return &repository[Treatment]{
		collection: db.Collection(treatmentsCollectionName),
		sourceId:   func(treatment *Treatment) *string { return treatment.SourceId },
	}
}

func NewDeviceStatusRepository(db *mongo.Database) Repository[DeviceStatus] {
	return &repository[DeviceStatus]{
		collection: db.Collection(deviceStatusCollectionName),
		sourceId:   func(status *DeviceStatus) *string { return status.SourceId },
	}
}
