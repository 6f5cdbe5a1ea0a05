package test

import (
	"time"

	"github.com/nocturne-org/nocturne/legacy"
	"github.com/nocturne-org/nocturne/pointer"
	"github.com/nocturne-org/nocturne/store/test"
)

func RandomMills() int64 {
	return time.Now().Add(-time.Duration(test.Faker.IntBetween(1, 60*24)) * time.Minute).UnixMilli()
}

func RandomEntry(entryType string) *legacy.Entry {
	return &legacy.Entry{
		SourceId: pointer.FromAny(test.Faker.UUID().V4()),
		Type:     pointer.FromAny(entryType),
		Mills:    RandomMills(),
		Device:   pointer.FromAny(test.Faker.Company().Name()),
	}
}

func RandomSensorEntry() *legacy.Entry {
	entry := RandomEntry("sgv")
	entry.Sgv = pointer.FromAny(float64(test.Faker.IntBetween(40, 400)))
	entry.Direction = pointer.FromAny("Flat")
	return entry
}

func RandomTreatment(eventType string) *legacy.Treatment {
	return &legacy.Treatment{
		SourceId:  pointer.FromAny(test.Faker.UUID().V4()),
		EventType: pointer.FromAny(eventType),
		Mills:     RandomMills(),
		Device:    pointer.FromAny(test.Faker.Company().Name()),
		EnteredBy: pointer.FromAny(test.Faker.Person().Name()),
	}
}

func RandomDeviceStatus() *legacy.DeviceStatus {
	return &legacy.DeviceStatus{
		SourceId: pointer.FromAny(test.Faker.UUID().V4()),
		Mills:    RandomMills(),
		Device:   pointer.FromAny(test.Faker.Company().Name()),
	}
}
