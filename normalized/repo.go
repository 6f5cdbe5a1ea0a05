package normalized

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"

	"github.com/nocturne-org/nocturne/errors"
	"github.com/nocturne-org/nocturne/store"
)

var (
	ErrNotFound  = fmt.Errorf("%w: record with this source id does not exist", errors.NotFound)
	ErrDuplicate = fmt.Errorf("%w: record with the same source id already exists", errors.Duplicate)
)

const (
	sensorGlucoseCollectionName     = "sensorGlucose"
	meterGlucoseCollectionName      = "meterGlucose"
	calibrationsCollectionName      = "calibrations"
	bolusesCollectionName           = "boluses"
	carbIntakesCollectionName       = "carbIntakes"
	bgChecksCollectionName          = "bgChecks"
	notesCollectionName             = "notes"
	deviceEventsCollectionName      = "deviceEvents"
	bolusCalculationsCollectionName = "bolusCalculations"
	apsSnapshotsCollectionName      = "apsSnapshots"
	pumpSnapshotsCollectionName     = "pumpSnapshots"
	uploaderSnapshotsCollectionName = "uploaderSnapshots"
)

// Repository provides access to one normalized entity collection. Records with
// a source id are unique per collection, which is enforced with a partial
// unique index so that records without a source id can always be inserted.
type Repository[T any] interface {
	FindBySourceId(ctx context.Context, sourceId string) (*T, error)
	Insert(ctx context.Context, record *T) (*T, error)
	Update(ctx context.Context, record *T) (*T, error)
}

type record[T any] interface {
	*T
	Record
}

type repository[T any, PT record[T]] struct {
	collection *mongo.Collection
}

func newRepository[T any, PT record[T]](db *mongo.Database, collectionName string) *repository[T, PT] {
	return &repository[T, PT]{
		collection: db.Collection(collectionName),
	}
}

func (r *repository[T, PT]) Initialize(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "sourceId", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.D{
					{Key: "sourceId", Value: bson.D{{Key: "$type", Value: "string"}}},
				}).
				SetName("UniqueSourceId"),
		},
		{
			Keys: bson.D{
				{Key: "mills", Value: 1},
			},
			Options: options.Index().
				SetName("EventTime"),
		},
	})
	return err
}

func (r *repository[T, PT]) FindBySourceId(ctx context.Context, sourceId string) (*T, error) {
	selector := bson.M{
		"sourceId": sourceId,
	}

	result := PT(new(T))
	err := r.collection.FindOne(ctx, selector).Decode(result)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("error finding record in %s: %w", r.collection.Name(), err)
	}

	return result, nil
}

func (r *repository[T, PT]) Insert(ctx context.Context, record *T) (*T, error) {
	res, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		// Two calls can race to insert the same source id; the unique index
		// wins and the loser surfaces as a duplicate.
		if store.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("error inserting record in %s: %w", r.collection.Name(), err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		PT(record).SetId(&id)
	}
	return record, nil
}

func (r *repository[T, PT]) Update(ctx context.Context, record *T) (*T, error) {
	id := PT(record).GetId()
	if id == nil {
		return nil, fmt.Errorf("error updating record in %s: id is missing", r.collection.Name())
	}

	selector := bson.M{
		"_id": *id,
	}
	res, err := r.collection.ReplaceOne(ctx, selector, record)
	if err != nil {
		return nil, fmt.Errorf("error updating record in %s: %w", r.collection.Name(), err)
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}

	return record, nil
}

// Repositories bundles one repository per normalized entity type.
type Repositories struct {
	SensorGlucose     Repository[SensorGlucose]
	MeterGlucose      Repository[MeterGlucose]
	Calibrations      Repository[Calibration]
	Boluses           Repository[Bolus]
	CarbIntakes       Repository[CarbIntake]
	BGChecks          Repository[BGCheck]
	Notes             Repository[Note]
	DeviceEvents      Repository[DeviceEvent]
	BolusCalculations Repository[BolusCalculation]
	ApsSnapshots      Repository[ApsSnapshot]
	PumpSnapshots     Repository[PumpSnapshot]
	UploaderSnapshots Repository[UploaderSnapshot]
}

type initializer interface {
	Initialize(ctx context.Context) error
}

func NewRepositories(db *mongo.Database, lifecycle fx.Lifecycle) (*Repositories, error) {
	sensorGlucose := newRepository[SensorGlucose](db, sensorGlucoseCollectionName)
	meterGlucose := newRepository[MeterGlucose](db, meterGlucoseCollectionName)
	calibrations := newRepository[Calibration](db, calibrationsCollectionName)
	boluses := newRepository[Bolus](db, bolusesCollectionName)
	carbIntakes := newRepository[CarbIntake](db, carbIntakesCollectionName)
	bgChecks := newRepository[BGCheck](db, bgChecksCollectionName)
	notes := newRepository[Note](db, notesCollectionName)
	deviceEvents := newRepository[DeviceEvent](db, deviceEventsCollectionName)
	bolusCalculations := newRepository[BolusCalculation](db, bolusCalculationsCollectionName)
	apsSnapshots := newRepository[ApsSnapshot](db, apsSnapshotsCollectionName)
	pumpSnapshots := newRepository[PumpSnapshot](db, pumpSnapshotsCollectionName)
	uploaderSnapshots := newRepository[UploaderSnapshot](db, uploaderSnapshotsCollectionName)

	initializers := []initializer{
		sensorGlucose, meterGlucose, calibrations, boluses, carbIntakes, bgChecks,
		notes, deviceEvents, bolusCalculations, apsSnapshots, pumpSnapshots, uploaderSnapshots,
	}
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			for _, i := range initializers {
				if err := i.Initialize(ctx); err != nil {
					return err
				}
			}
			return nil
		},
	})

	return &Repositories{
		SensorGlucose:     sensorGlucose,
		MeterGlucose:      meterGlucose,
		Calibrations:      calibrations,
		Boluses:           boluses,
		CarbIntakes:       carbIntakes,
		BGChecks:          bgChecks,
		Notes:             notes,
		DeviceEvents:      deviceEvents,
		BolusCalculations: bolusCalculations,
		ApsSnapshots:      apsSnapshots,
		PumpSnapshots:     pumpSnapshots,
		UploaderSnapshots: uploaderSnapshots,
	}, nil
}
