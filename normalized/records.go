package normalized

// Package normalized defines the strongly-typed records produced by the
// decomposition engine. Every record type embeds Identity, which carries the
// deduplication key (sourceId), the event time and the correlation id shared
// by all records produced from one decomposition call.

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Identity struct {
	Id            *primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	SourceId      *string             `bson:"sourceId,omitempty" json:"sourceId,omitempty"`
	Mills         int64               `bson:"mills" json:"mills"`
	CorrelationId string              `bson:"correlationId" json:"correlationId"`
}

func (i *Identity) GetId() *primitive.ObjectID {
	return i.Id
}

func (i *Identity) SetId(id *primitive.ObjectID) {
	i.Id = id
}

func (i *Identity) GetSourceId() *string {
	return i.SourceId
}

// Record is implemented by every normalized record type.
type Record interface {
	GetId() *primitive.ObjectID
	SetId(id *primitive.ObjectID)
	GetSourceId() *string
}

type SensorGlucose struct {
	Identity `bson:",inline"`

	Mgdl       *float64      `bson:"mgdl,omitempty" json:"mgdl,omitempty"`
	Trend      *GlucoseTrend `bson:"trend,omitempty" json:"trend,omitempty"`
	Device     *string       `bson:"device,omitempty" json:"device,omitempty"`
	Filtered   *float64      `bson:"filtered,omitempty" json:"filtered,omitempty"`
	Unfiltered *float64      `bson:"unfiltered,omitempty" json:"unfiltered,omitempty"`
	Noise      *int64        `bson:"noise,omitempty" json:"noise,omitempty"`
	Rssi       *int64        `bson:"rssi,omitempty" json:"rssi,omitempty"`
}

type MeterGlucose struct {
	Identity `bson:",inline"`

	Mgdl   *float64 `bson:"mgdl,omitempty" json:"mgdl,omitempty"`
	Device *string  `bson:"device,omitempty" json:"device,omitempty"`
}

type Calibration struct {
	Identity `bson:",inline"`

	Slope     *float64 `bson:"slope,omitempty" json:"slope,omitempty"`
	Intercept *float64 `bson:"intercept,omitempty" json:"intercept,omitempty"`
	Scale     *float64 `bson:"scale,omitempty" json:"scale,omitempty"`
	Device    *string  `bson:"device,omitempty" json:"device,omitempty"`
}

type Bolus struct {
	Identity `bson:",inline"`

	Insulin         *float64   `bson:"insulin,omitempty" json:"insulin,omitempty"`
	Programmed      *float64   `bson:"programmed,omitempty" json:"programmed,omitempty"`
	Delivered       *float64   `bson:"delivered,omitempty" json:"delivered,omitempty"`
	Type            *BolusType `bson:"type,omitempty" json:"type,omitempty"`
	Automatic       *bool      `bson:"automatic,omitempty" json:"automatic,omitempty"`
	DurationMinutes *float64   `bson:"durationMinutes,omitempty" json:"durationMinutes,omitempty"`
	Device          *string    `bson:"device,omitempty" json:"device,omitempty"`
	EnteredBy       *string    `bson:"enteredBy,omitempty" json:"enteredBy,omitempty"`
	UtcOffset       *int64     `bson:"utcOffset,omitempty" json:"utcOffset,omitempty"`
	PumpId          *int64     `bson:"pumpId,omitempty" json:"pumpId,omitempty"`
	PumpType        *string    `bson:"pumpType,omitempty" json:"pumpType,omitempty"`
	PumpSerial      *string    `bson:"pumpSerial,omitempty" json:"pumpSerial,omitempty"`
}

type CarbIntake struct {
	Identity `bson:",inline"`

	Carbs             *float64 `bson:"carbs,omitempty" json:"carbs,omitempty"`
	Protein           *float64 `bson:"protein,omitempty" json:"protein,omitempty"`
	Fat               *float64 `bson:"fat,omitempty" json:"fat,omitempty"`
	FoodType          *string  `bson:"foodType,omitempty" json:"foodType,omitempty"`
	AbsorptionMinutes *float64 `bson:"absorptionMinutes,omitempty" json:"absorptionMinutes,omitempty"`
	Device            *string  `bson:"device,omitempty" json:"device,omitempty"`
	EnteredBy         *string  `bson:"enteredBy,omitempty" json:"enteredBy,omitempty"`
	UtcOffset         *int64   `bson:"utcOffset,omitempty" json:"utcOffset,omitempty"`
	PumpId            *int64   `bson:"pumpId,omitempty" json:"pumpId,omitempty"`
	PumpType          *string  `bson:"pumpType,omitempty" json:"pumpType,omitempty"`
	PumpSerial        *string  `bson:"pumpSerial,omitempty" json:"pumpSerial,omitempty"`
}

type BGCheck struct {
	Identity `bson:",inline"`

	Mgdl        *float64     `bson:"mgdl,omitempty" json:"mgdl,omitempty"`
	GlucoseType *GlucoseType `bson:"glucoseType,omitempty" json:"glucoseType,omitempty"`
	Units       *GlucoseUnit `bson:"units,omitempty" json:"units,omitempty"`
	Device      *string      `bson:"device,omitempty" json:"device,omitempty"`
	EnteredBy   *string      `bson:"enteredBy,omitempty" json:"enteredBy,omitempty"`
}

type Note struct {
	Identity `bson:",inline"`

	Text           *string `bson:"text,omitempty" json:"text,omitempty"`
	IsAnnouncement bool    `bson:"isAnnouncement" json:"isAnnouncement"`
	Device         *string `bson:"device,omitempty" json:"device,omitempty"`
	EnteredBy      *string `bson:"enteredBy,omitempty" json:"enteredBy,omitempty"`
}

type DeviceEvent struct {
	Identity `bson:",inline"`

	EventType DeviceEventType `bson:"eventType" json:"eventType"`
	Notes     *string         `bson:"notes,omitempty" json:"notes,omitempty"`
	Device    *string         `bson:"device,omitempty" json:"device,omitempty"`
	EnteredBy *string         `bson:"enteredBy,omitempty" json:"enteredBy,omitempty"`
}

type BolusCalculation struct {
	Identity `bson:",inline"`

	BgInput         *float64         `bson:"bgInput,omitempty" json:"bgInput,omitempty"`
	BgSource        *GlucoseType     `bson:"bgSource,omitempty" json:"bgSource,omitempty"`
	Iob             *float64         `bson:"iob,omitempty" json:"iob,omitempty"`
	CarbRatio       *float64         `bson:"carbRatio,omitempty" json:"carbRatio,omitempty"`
	Recommended     *float64         `bson:"recommended,omitempty" json:"recommended,omitempty"`
	Entered         *float64         `bson:"entered,omitempty" json:"entered,omitempty"`
	Programmed      *float64         `bson:"programmed,omitempty" json:"programmed,omitempty"`
	SplitNow        *float64         `bson:"splitNow,omitempty" json:"splitNow,omitempty"`
	SplitExt        *float64         `bson:"splitExt,omitempty" json:"splitExt,omitempty"`
	PreBolusMinutes *float64         `bson:"preBolusMinutes,omitempty" json:"preBolusMinutes,omitempty"`
	Type            *CalculationType `bson:"type,omitempty" json:"type,omitempty"`
	Device          *string          `bson:"device,omitempty" json:"device,omitempty"`
	EnteredBy       *string          `bson:"enteredBy,omitempty" json:"enteredBy,omitempty"`
}

type ApsSnapshot struct {
	Identity `bson:",inline"`

	System              ApsSystem `bson:"system" json:"system"`
	Iob                 *float64  `bson:"iob,omitempty" json:"iob,omitempty"`
	BasalIob            *float64  `bson:"basalIob,omitempty" json:"basalIob,omitempty"`
	BolusIob            *float64  `bson:"bolusIob,omitempty" json:"bolusIob,omitempty"`
	Cob                 *float64  `bson:"cob,omitempty" json:"cob,omitempty"`
	CurrentBg           *float64  `bson:"currentBg,omitempty" json:"currentBg,omitempty"`
	EventualBg          *float64  `bson:"eventualBg,omitempty" json:"eventualBg,omitempty"`
	TargetBg            *float64  `bson:"targetBg,omitempty" json:"targetBg,omitempty"`
	InsulinReq          *float64  `bson:"insulinReq,omitempty" json:"insulinReq,omitempty"`
	SensitivityRatio    *float64  `bson:"sensitivityRatio,omitempty" json:"sensitivityRatio,omitempty"`
	Enacted             bool      `bson:"enacted" json:"enacted"`
	EnactedRate         *float64  `bson:"enactedRate,omitempty" json:"enactedRate,omitempty"`
	EnactedDuration     *float64  `bson:"enactedDuration,omitempty" json:"enactedDuration,omitempty"`
	EnactedBolusVolume  *float64  `bson:"enactedBolusVolume,omitempty" json:"enactedBolusVolume,omitempty"`
	Predictions         *string   `bson:"predictions,omitempty" json:"predictions,omitempty"`
	PredictedStartMills *int64    `bson:"predictedStartMills,omitempty" json:"predictedStartMills,omitempty"`
	Device              *string   `bson:"device,omitempty" json:"device,omitempty"`
}

type PumpSnapshot struct {
	Identity `bson:",inline"`

	Manufacturer     *string  `bson:"manufacturer,omitempty" json:"manufacturer,omitempty"`
	Model            *string  `bson:"model,omitempty" json:"model,omitempty"`
	Reservoir        *float64 `bson:"reservoir,omitempty" json:"reservoir,omitempty"`
	ReservoirDisplay *string  `bson:"reservoirDisplay,omitempty" json:"reservoirDisplay,omitempty"`
	BatteryPercent   *float64 `bson:"batteryPercent,omitempty" json:"batteryPercent,omitempty"`
	BatteryVoltage   *float64 `bson:"batteryVoltage,omitempty" json:"batteryVoltage,omitempty"`
	Bolusing         *bool    `bson:"bolusing,omitempty" json:"bolusing,omitempty"`
	Suspended        *bool    `bson:"suspended,omitempty" json:"suspended,omitempty"`
	Status           *string  `bson:"status,omitempty" json:"status,omitempty"`
	ClockMills       *int64   `bson:"clockMills,omitempty" json:"clockMills,omitempty"`
	Device           *string  `bson:"device,omitempty" json:"device,omitempty"`
}

type UploaderSnapshot struct {
	Identity `bson:",inline"`

	Name           *string  `bson:"name,omitempty" json:"name,omitempty"`
	BatteryPercent *float64 `bson:"batteryPercent,omitempty" json:"batteryPercent,omitempty"`
	BatteryVoltage *float64 `bson:"batteryVoltage,omitempty" json:"batteryVoltage,omitempty"`
	Temperature    *float64 `bson:"temperature,omitempty" json:"temperature,omitempty"`
	Type           *string  `bson:"type,omitempty" json:"type,omitempty"`
	Charging       *bool    `bson:"charging,omitempty" json:"charging,omitempty"`
	Device         *string  `bson:"device,omitempty" json:"device,omitempty"`
}
