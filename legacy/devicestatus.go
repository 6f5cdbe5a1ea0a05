package legacy

import "encoding/json"

// DeviceStatus is a periodic status report from an uploader, a pump or an
// automated insulin delivery system. All sub-documents are optional and a
// single status can carry any combination of them.
type DeviceStatus struct {
	SourceId *string `json:"_id,omitempty" bson:"sourceId,omitempty"`
	Mills    int64   `json:"mills" bson:"mills"`
	Device   *string `json:"device,omitempty" bson:"device,omitempty"`

	// Some uploaders report a bare battery percentage without a structured
	// uploader document.
	UploaderBattery *float64 `json:"uploaderBattery,omitempty" bson:"uploaderBattery,omitempty"`
	IsCharging      *bool    `json:"isCharging,omitempty" bson:"isCharging,omitempty"`

	Uploader *UploaderStatus `json:"uploader,omitempty" bson:"uploader,omitempty"`
	Pump     *PumpStatus     `json:"pump,omitempty" bson:"pump,omitempty"`
	OpenAps  *OpenApsStatus  `json:"openaps,omitempty" bson:"openaps,omitempty"`
	Loop     *LoopStatus     `json:"loop,omitempty" bson:"loop,omitempty"`
	Override *OverrideStatus `json:"override,omitempty" bson:"override,omitempty"`
}

type UploaderStatus struct {
	Name           *string  `json:"name,omitempty" bson:"name,omitempty"`
	Battery        *float64 `json:"battery,omitempty" bson:"battery,omitempty"`
	BatteryVoltage *float64 `json:"batteryVoltage,omitempty" bson:"batteryVoltage,omitempty"`
	Temperature    *float64 `json:"temperature,omitempty" bson:"temperature,omitempty"`
	Type           *string  `json:"type,omitempty" bson:"type,omitempty"`
}

type PumpStatus struct {
	Manufacturer     *string           `json:"manufacturer,omitempty" bson:"manufacturer,omitempty"`
	Model            *string           `json:"model,omitempty" bson:"model,omitempty"`
	Reservoir        *float64          `json:"reservoir,omitempty" bson:"reservoir,omitempty"`
	ReservoirDisplay *string           `json:"reservoir_display_override,omitempty" bson:"reservoirDisplayOverride,omitempty"`
	Battery          *PumpBattery      `json:"battery,omitempty" bson:"battery,omitempty"`
	Status           *PumpStatusDetail `json:"status,omitempty" bson:"status,omitempty"`
	Clock            *string           `json:"clock,omitempty" bson:"clock,omitempty"`
}

type PumpBattery struct {
	Percent *float64 `json:"percent,omitempty" bson:"percent,omitempty"`
	Voltage *float64 `json:"voltage,omitempty" bson:"voltage,omitempty"`
}

type PumpStatusDetail struct {
	Status    *string `json:"status,omitempty" bson:"status,omitempty"`
	Bolusing  *bool   `json:"bolusing,omitempty" bson:"bolusing,omitempty"`
	Suspended *bool   `json:"suspended,omitempty" bson:"suspended,omitempty"`
}

type OpenApsStatus struct {
	Iob       *OpenApsIob    `json:"iob,omitempty" bson:"iob,omitempty"`
	Cob       *float64       `json:"cob,omitempty" bson:"cob,omitempty"`
	Suggested *OpenApsResult `json:"suggested,omitempty" bson:"suggested,omitempty"`
	Enacted   *OpenApsResult `json:"enacted,omitempty" bson:"enacted,omitempty"`
}

type OpenApsIob struct {
	Iob      *float64 `json:"iob,omitempty" bson:"iob,omitempty"`
	BasalIob *float64 `json:"basaliob,omitempty" bson:"basaliob,omitempty"`
	BolusIob *float64 `json:"bolusiob,omitempty" bson:"bolusiob,omitempty"`
}

// OpenApsResult is a suggested or enacted loop iteration.
type OpenApsResult struct {
	Timestamp        *string          `json:"timestamp,omitempty" bson:"timestamp,omitempty"`
	Bg               *float64         `json:"bg,omitempty" bson:"bg,omitempty"`
	EventualBg       *float64         `json:"eventualBG,omitempty" bson:"eventualBG,omitempty"`
	TargetBg         *float64         `json:"targetBG,omitempty" bson:"targetBG,omitempty"`
	Cob              *float64         `json:"COB,omitempty" bson:"cob,omitempty"`
	InsulinReq       *float64         `json:"insulinReq,omitempty" bson:"insulinReq,omitempty"`
	SensitivityRatio *float64         `json:"sensitivityRatio,omitempty" bson:"sensitivityRatio,omitempty"`
	Rate             *float64         `json:"rate,omitempty" bson:"rate,omitempty"`
	Duration         *float64         `json:"duration,omitempty" bson:"duration,omitempty"`
	Units            *float64         `json:"units,omitempty" bson:"units,omitempty"`
	Received         *bool            `json:"received,omitempty" bson:"received,omitempty"`
	PredBgs          *PredictedCurves `json:"predBGs,omitempty" bson:"predBGs,omitempty"`
}

// UnmarshalJSON folds the historical "recieved" mis-spelling into the
// canonical field so the rest of the engine only reads one name.
func (r *OpenApsResult) UnmarshalJSON(data []byte) error {
	type plain OpenApsResult
	aux := struct {
		*plain
		ReceivedAlt *bool `json:"recieved,omitempty"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if r.Received == nil {
		r.Received = aux.ReceivedAlt
	}
	return nil
}

type PredictedCurves struct {
	Default  []float64 `json:"default,omitempty" bson:"default,omitempty"`
	Iob      []float64 `json:"IOB,omitempty" bson:"iob,omitempty"`
	ZeroTemp []float64 `json:"ZT,omitempty" bson:"zt,omitempty"`
	Cob      []float64 `json:"COB,omitempty" bson:"cob,omitempty"`
	Uam      []float64 `json:"UAM,omitempty" bson:"uam,omitempty"`
}

type LoopStatus struct {
	Iob       *LoopIob       `json:"iob,omitempty" bson:"iob,omitempty"`
	Cob       *LoopCob       `json:"cob,omitempty" bson:"cob,omitempty"`
	Predicted *LoopPredicted `json:"predicted,omitempty" bson:"predicted,omitempty"`
	Enacted   *LoopEnacted   `json:"enacted,omitempty" bson:"enacted,omitempty"`
}

type LoopIob struct {
	Iob       *float64 `json:"iob,omitempty" bson:"iob,omitempty"`
	Timestamp *string  `json:"timestamp,omitempty" bson:"timestamp,omitempty"`
}

type LoopCob struct {
	Cob       *float64 `json:"cob,omitempty" bson:"cob,omitempty"`
	Timestamp *string  `json:"timestamp,omitempty" bson:"timestamp,omitempty"`
}

type LoopPredicted struct {
	Values    []float64 `json:"values,omitempty" bson:"values,omitempty"`
	StartDate *string   `json:"startDate,omitempty" bson:"startDate,omitempty"`
}

type LoopEnacted struct {
	Timestamp   *string  `json:"timestamp,omitempty" bson:"timestamp,omitempty"`
	Rate        *float64 `json:"rate,omitempty" bson:"rate,omitempty"`
	Duration    *float64 `json:"duration,omitempty" bson:"duration,omitempty"`
	BolusVolume *float64 `json:"bolusVolume,omitempty" bson:"bolusVolume,omitempty"`
	Received    *bool    `json:"received,omitempty" bson:"received,omitempty"`
}

// UnmarshalJSON tolerates the same "recieved" mis-spelling Loop uploaders
// produced historically.
func (e *LoopEnacted) UnmarshalJSON(data []byte) error {
	type plain LoopEnacted
	aux := struct {
		*plain
		ReceivedAlt *bool `json:"recieved,omitempty"`
	}{plain: (*plain)(e)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if e.Received == nil {
		e.Received = aux.ReceivedAlt
	}
	return nil
}

type OverrideStatus struct {
	Active     *bool            `json:"active,omitempty" bson:"active,omitempty"`
	Name       *string          `json:"name,omitempty" bson:"name,omitempty"`
	Timestamp  *string          `json:"timestamp,omitempty" bson:"timestamp,omitempty"`
	Duration   *float64         `json:"duration,omitempty" bson:"duration,omitempty"`
	Multiplier *float64         `json:"multiplier,omitempty" bson:"multiplier,omitempty"`
	Range      *CorrectionRange `json:"currentCorrectionRange,omitempty" bson:"currentCorrectionRange,omitempty"`
}

type CorrectionRange struct {
	MinValue *float64 `json:"minValue,omitempty" bson:"minValue,omitempty"`
	MaxValue *float64 `json:"maxValue,omitempty" bson:"maxValue,omitempty"`
}
