package test

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nocturne-org/nocturne/normalized"
	"github.com/nocturne-org/nocturne/pointer"
	"github.com/nocturne-org/nocturne/store/test"
)

// RandomIdentity returns the identity of a persisted record, object id
// included.
func RandomIdentity() normalized.Identity {
	return normalized.Identity{
		Id:            pointer.FromAny(primitive.NewObjectID()),
		SourceId:      pointer.FromAny(test.Faker.UUID().V4()),
		Mills:         time.Now().Add(-time.Duration(test.Faker.IntBetween(1, 60*24)) * time.Minute).UnixMilli(),
		CorrelationId: uuid.NewString(),
	}
}

func RandomBolus() *normalized.Bolus {
	insulin := test.Faker.Float64(2, 0, 15)
	return &normalized.Bolus{
		Identity:   RandomIdentity(),
		Insulin:    &insulin,
		Programmed: &insulin,
		Delivered:  &insulin,
		Type:       pointer.FromAny(normalized.BolusTypeNormal),
		Device:     pointer.FromAny(test.Faker.Company().Name()),
	}
}

func RandomSensorGlucose() *normalized.SensorGlucose {
	return &normalized.SensorGlucose{
		Identity: RandomIdentity(),
		Mgdl:     pointer.FromAny(float64(test.Faker.IntBetween(40, 400))),
		Trend:    pointer.FromAny(normalized.TrendFlat),
		Device:   pointer.FromAny(test.Faker.Company().Name()),
	}
}
