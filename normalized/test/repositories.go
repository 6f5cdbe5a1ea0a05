package test

import (
	"go.uber.org/mock/gomock"

	"github.com/nocturne-org/nocturne/normalized"
)

// RepositoryMocks bundles one mock repository per normalized entity type.
type RepositoryMocks struct {
	SensorGlucose     *MockRepository[normalized.SensorGlucose]
	MeterGlucose      *MockRepository[normalized.MeterGlucose]
	Calibrations      *MockRepository[normalized.Calibration]
	Boluses           *MockRepository[normalized.Bolus]
	CarbIntakes       *MockRepository[normalized.CarbIntake]
	BGChecks          *MockRepository[normalized.BGCheck]
	Notes             *MockRepository[normalized.Note]
	DeviceEvents      *MockRepository[normalized.DeviceEvent]
	BolusCalculations *MockRepository[normalized.BolusCalculation]
	ApsSnapshots      *MockRepository[normalized.ApsSnapshot]
	PumpSnapshots     *MockRepository[normalized.PumpSnapshot]
	UploaderSnapshots *MockRepository[normalized.UploaderSnapshot]
}

func NewRepositoryMocks(ctrl *gomock.Controller) *RepositoryMocks {
	return &RepositoryMocks{
		SensorGlucose:     NewMockRepository[normalized.SensorGlucose](ctrl),
		MeterGlucose:      NewMockRepository[normalized.MeterGlucose](ctrl),
		Calibrations:      NewMockRepository[normalized.Calibration](ctrl),
		Boluses:           NewMockRepository[normalized.Bolus](ctrl),
		CarbIntakes:       NewMockRepository[normalized.CarbIntake](ctrl),
		BGChecks:          NewMockRepository[normalized.BGCheck](ctrl),
		Notes:             NewMockRepository[normalized.Note](ctrl),
		DeviceEvents:      NewMockRepository[normalized.DeviceEvent](ctrl),
		BolusCalculations: NewMockRepository[normalized.BolusCalculation](ctrl),
		ApsSnapshots:      NewMockRepository[normalized.ApsSnapshot](ctrl),
		PumpSnapshots:     NewMockRepository[normalized.PumpSnapshot](ctrl),
		UploaderSnapshots: NewMockRepository[normalized.UploaderSnapshot](ctrl),
	}
}

// Bundle exposes the mocks through the production repository bundle.
func (m *RepositoryMocks) Bundle() *normalized.Repositories {
	return &normalized.Repositories{
		SensorGlucose:     m.SensorGlucose,
		MeterGlucose:      m.MeterGlucose,
		Calibrations:      m.Calibrations,
		Boluses:           m.Boluses,
		CarbIntakes:       m.CarbIntakes,
		BGChecks:          m.BGChecks,
		Notes:             m.Notes,
		DeviceEvents:      m.DeviceEvents,
		BolusCalculations: m.BolusCalculations,
		ApsSnapshots:      m.ApsSnapshots,
		PumpSnapshots:     m.PumpSnapshots,
		UploaderSnapshots: m.UploaderSnapshots,
	}
}
