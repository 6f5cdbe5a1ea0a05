package legacy

// Treatment is a care portal event. EventType selects what the record
// describes; the remaining fields are populated ad-hoc by uploaders, so none
// of them can be relied upon to be present.
type Treatment struct {
	SourceId  *string `json:"_id,omitempty" bson:"sourceId,omitempty"`
	EventType *string `json:"eventType,omitempty" bson:"eventType,omitempty"`
	Mills     int64   `json:"mills" bson:"mills"`
	Device    *string `json:"device,omitempty" bson:"device,omitempty"`
	EnteredBy *string `json:"enteredBy,omitempty" bson:"enteredBy,omitempty"`
	UtcOffset *int64  `json:"utcOffset,omitempty" bson:"utcOffset,omitempty"`
	Notes     *string `json:"notes,omitempty" bson:"notes,omitempty"`

	Insulin    *float64 `json:"insulin,omitempty" bson:"insulin,omitempty"`
	Programmed *float64 `json:"programmed,omitempty" bson:"programmed,omitempty"`
	Delivered  *float64 `json:"delivered,omitempty" bson:"delivered,omitempty"`
	Type       *string  `json:"type,omitempty" bson:"type,omitempty"`
	Automatic  *bool    `json:"automatic,omitempty" bson:"automatic,omitempty"`

	Carbs             *float64 `json:"carbs,omitempty" bson:"carbs,omitempty"`
	Protein           *float64 `json:"protein,omitempty" bson:"protein,omitempty"`
	Fat               *float64 `json:"fat,omitempty" bson:"fat,omitempty"`
	FoodType          *string  `json:"foodType,omitempty" bson:"foodType,omitempty"`
	AbsorptionMinutes *float64 `json:"absorptionTime,omitempty" bson:"absorptionTime,omitempty"`

	Glucose     *float64 `json:"glucose,omitempty" bson:"glucose,omitempty"`
	Mgdl        *float64 `json:"mgdl,omitempty" bson:"mgdl,omitempty"`
	GlucoseType *string  `json:"glucoseType,omitempty" bson:"glucoseType,omitempty"`
	Units       *string  `json:"units,omitempty" bson:"units,omitempty"`

	IsAnnouncement *bool `json:"isAnnouncement,omitempty" bson:"isAnnouncement,omitempty"`

	// Temp basal and temporary override fields.
	Duration                *float64 `json:"duration,omitempty" bson:"duration,omitempty"`
	Absolute                *float64 `json:"absolute,omitempty" bson:"absolute,omitempty"`
	Percent                 *float64 `json:"percent,omitempty" bson:"percent,omitempty"`
	Profile                 *string  `json:"profile,omitempty" bson:"profile,omitempty"`
	Reason                  *string  `json:"reason,omitempty" bson:"reason,omitempty"`
	TargetTop               *float64 `json:"targetTop,omitempty" bson:"targetTop,omitempty"`
	TargetBottom            *float64 `json:"targetBottom,omitempty" bson:"targetBottom,omitempty"`
	InsulinNeedsScaleFactor *float64 `json:"insulinNeedsScaleFactor,omitempty" bson:"insulinNeedsScaleFactor,omitempty"`

	// Bolus wizard snapshot fields.
	Iob             *float64 `json:"iob,omitempty" bson:"iob,omitempty"`
	CarbRatio       *float64 `json:"carbRatio,omitempty" bson:"carbRatio,omitempty"`
	Recommended     *float64 `json:"recommended,omitempty" bson:"recommended,omitempty"`
	SplitNow        *float64 `json:"splitNow,omitempty" bson:"splitNow,omitempty"`
	SplitExt        *float64 `json:"splitExt,omitempty" bson:"splitExt,omitempty"`
	PreBolusMinutes *float64 `json:"preBolus,omitempty" bson:"preBolus,omitempty"`
	CalculationType *string  `json:"calculationType,omitempty" bson:"calculationType,omitempty"`

	// Pass-through identifiers used to match records against the
	// originating automated delivery system.
	PumpId     *int64  `json:"pumpId,omitempty" bson:"pumpId,omitempty"`
	PumpType   *string `json:"pumpType,omitempty" bson:"pumpType,omitempty"`
	PumpSerial *string `json:"pumpSerial,omitempty" bson:"pumpSerial,omitempty"`
}

// HasInsulin reports whether the treatment administered insulin.
func (t *Treatment) HasInsulin() bool {
	return t.Insulin != nil && *t.Insulin > 0
}

// HasCarbs reports whether the treatment recorded carbohydrates.
func (t *Treatment) HasCarbs() bool {
	return t.Carbs != nil && *t.Carbs > 0
}
