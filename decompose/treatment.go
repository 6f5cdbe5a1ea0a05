package decompose

import (
	"context"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"go.uber.org/zap"

	"github.com/nocturne-org/nocturne/legacy"
	"github.com/nocturne-org/nocturne/normalized"
	"github.com/nocturne-org/nocturne/pointer"
	"github.com/nocturne-org/nocturne/spans"
)

type TreatmentDecomposer struct {
	repos  *normalized.Repositories
	spans  spans.Service
	logger *zap.SugaredLogger
}

func NewTreatmentDecomposer(repos *normalized.Repositories, spansService spans.Service, logger *zap.SugaredLogger) *TreatmentDecomposer {
	return &TreatmentDecomposer{
		repos:  repos,
		spans:  spansService,
		logger: logger,
	}
}

// Decompose routes a treatment to zero or more normalized records and state
// spans. The event type table and the insulin+carbs override rule are two
// independent classifications: the override rule is evaluated after the named
// case and fills in whichever of Bolus and CarbIntake the named case did not
// already produce.
func (d *TreatmentDecomposer) Decompose(ctx context.Context, treatment *legacy.Treatment) (*Result, error) {
	result := newResult()
	produced := mapset.NewSet[normalized.Kind]()

	var (
		bolus       *normalized.Bolus
		carbs       *normalized.CarbIntake
		bgCheck     *normalized.BGCheck
		note        *normalized.Note
		deviceEvent *normalized.DeviceEvent
		calculation *normalized.BolusCalculation
	)

	eventType := ""
	if treatment.EventType != nil {
		eventType = strings.TrimSpace(*treatment.EventType)
	}

	switch {
	case equalsAny(eventType, "Meal Bolus", "Snack Bolus"):
		bolus = bolusFromTreatment(treatment, result.CorrelationId)
		carbs = carbIntakeFromTreatment(treatment, result.CorrelationId)

	case equalsAny(eventType, "Correction Bolus"):
		bolus = bolusFromTreatment(treatment, result.CorrelationId)

	case equalsAny(eventType, "Carb Correction"):
		carbs = carbIntakeFromTreatment(treatment, result.CorrelationId)

	case equalsAny(eventType, "BG Check"):
		bgCheck = bgCheckFromTreatment(treatment, result.CorrelationId)

	case equalsAny(eventType, "Note"):
		isAnnouncement := treatment.IsAnnouncement != nil && *treatment.IsAnnouncement
		note = noteFromTreatment(treatment, isAnnouncement, result.CorrelationId)

	case equalsAny(eventType, "Announcement"):
		note = noteFromTreatment(treatment, true, result.CorrelationId)

	case equalsAny(eventType, "Temp Basal", "Temp Basal Start", "TempBasal"):
		span, err := d.spans.CreateBasalDeliveryFromTreatment(ctx, treatment, result.CorrelationId)
		if err != nil {
			return nil, err
		}
		result.CreatedRecords = append(result.CreatedRecords, span)

	case equalsAny(eventType, "Profile Switch"):
		span, err := d.spans.UpsertStateSpan(ctx, profileSwitchSpan(treatment, result.CorrelationId))
		if err != nil {
			return nil, err
		}
		result.CreatedRecords = append(result.CreatedRecords, span)

	case equalsAny(eventType, "Temporary Override"):
		span, err := d.spans.UpsertStateSpan(ctx, temporaryOverrideSpan(treatment, result.CorrelationId))
		if err != nil {
			return nil, err
		}
		result.CreatedRecords = append(result.CreatedRecords, span)

	case equalsAny(eventType, "Bolus Wizard"):
		calculation = bolusCalculationFromTreatment(treatment, result.CorrelationId)
		if treatment.HasInsulin() {
			bolus = bolusFromTreatment(treatment, result.CorrelationId)
		}

	default:
		if kind, ok := TranslateDeviceEventType(eventType); ok {
			deviceEvent = deviceEventFromTreatment(treatment, kind, result.CorrelationId)
		} else if eventType != "" {
			d.logger.Debugw("treatment event type is not routable", "eventType", eventType, "correlationId", result.CorrelationId)
		}
	}

	if bolus != nil {
		produced.Add(normalized.KindBolus)
	}
	if carbs != nil {
		produced.Add(normalized.KindCarbIntake)
	}

	// Override rule, independent of the named case: insulin and carbs
	// together always yield both a bolus and a carb intake.
	if treatment.HasInsulin() && treatment.HasCarbs() {
		if !produced.Contains(normalized.KindBolus) {
			bolus = bolusFromTreatment(treatment, result.CorrelationId)
		}
		if !produced.Contains(normalized.KindCarbIntake) {
			carbs = carbIntakeFromTreatment(treatment, result.CorrelationId)
		}
	}

	if bolus != nil {
		if err := upsert(ctx, d.repos.Boluses, bolus, result); err != nil {
			return nil, err
		}
	}
	if carbs != nil {
		if err := upsert(ctx, d.repos.CarbIntakes, carbs, result); err != nil {
			return nil, err
		}
	}
	if bgCheck != nil {
		if err := upsert(ctx, d.repos.BGChecks, bgCheck, result); err != nil {
			return nil, err
		}
	}
	if note != nil {
		if err := upsert(ctx, d.repos.Notes, note, result); err != nil {
			return nil, err
		}
	}
	if deviceEvent != nil {
		if err := upsert(ctx, d.repos.DeviceEvents, deviceEvent, result); err != nil {
			return nil, err
		}
	}
	if calculation != nil {
		if err := upsert(ctx, d.repos.BolusCalculations, calculation, result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func equalsAny(value string, candidates ...string) bool {
	for _, candidate := range candidates {
		if strings.EqualFold(value, candidate) {
			return true
		}
	}
	return false
}

func bolusFromTreatment(treatment *legacy.Treatment, correlationId string) *normalized.Bolus {
	return &normalized.Bolus{
		Identity:        identity(treatment.SourceId, treatment.Mills, correlationId),
		Insulin:         treatment.Insulin,
		Programmed:      pointer.Coalesce(treatment.Programmed, treatment.Insulin),
		Delivered:       pointer.Coalesce(treatment.Delivered, treatment.Insulin),
		Type:            TranslateBolusType(treatment.Type),
		Automatic:       treatment.Automatic,
		DurationMinutes: treatment.Duration,
		Device:          treatment.Device,
		EnteredBy:       treatment.EnteredBy,
		UtcOffset:       treatment.UtcOffset,
		PumpId:          treatment.PumpId,
		PumpType:        treatment.PumpType,
		PumpSerial:      treatment.PumpSerial,
	}
}

func carbIntakeFromTreatment(treatment *legacy.Treatment, correlationId string) *normalized.CarbIntake {
	return &normalized.CarbIntake{
		Identity:          identity(treatment.SourceId, treatment.Mills, correlationId),
		Carbs:             treatment.Carbs,
		Protein:           treatment.Protein,
		Fat:               treatment.Fat,
		FoodType:          treatment.FoodType,
		AbsorptionMinutes: treatment.AbsorptionMinutes,
		Device:            treatment.Device,
		EnteredBy:         treatment.EnteredBy,
		UtcOffset:         treatment.UtcOffset,
		PumpId:            treatment.PumpId,
		PumpType:          treatment.PumpType,
		PumpSerial:        treatment.PumpSerial,
	}
}

func bgCheckFromTreatment(treatment *legacy.Treatment, correlationId string) *normalized.BGCheck {
	return &normalized.BGCheck{
		Identity:    identity(treatment.SourceId, treatment.Mills, correlationId),
		Mgdl:        bgCheckValue(treatment),
		GlucoseType: TranslateGlucoseType(treatment.GlucoseType),
		Units:       TranslateGlucoseUnit(treatment.Units),
		Device:      treatment.Device,
		EnteredBy:   treatment.EnteredBy,
	}
}

func bgCheckValue(treatment *legacy.Treatment) *float64 {
	return pointer.Coalesce(treatment.Mgdl, treatment.Glucose)
}

func noteFromTreatment(treatment *legacy.Treatment, isAnnouncement bool, correlationId string) *normalized.Note {
	return &normalized.Note{
		Identity:       identity(treatment.SourceId, treatment.Mills, correlationId),
		Text:           treatment.Notes,
		IsAnnouncement: isAnnouncement,
		Device:         treatment.Device,
		EnteredBy:      treatment.EnteredBy,
	}
}

func deviceEventFromTreatment(treatment *legacy.Treatment, eventType normalized.DeviceEventType, correlationId string) *normalized.DeviceEvent {
	return &normalized.DeviceEvent{
		Identity:  identity(treatment.SourceId, treatment.Mills, correlationId),
		EventType: eventType,
		Notes:     treatment.Notes,
		Device:    treatment.Device,
		EnteredBy: treatment.EnteredBy,
	}
}

func bolusCalculationFromTreatment(treatment *legacy.Treatment, correlationId string) *normalized.BolusCalculation {
	return &normalized.BolusCalculation{
		Identity:        identity(treatment.SourceId, treatment.Mills, correlationId),
		BgInput:         pointer.Coalesce(treatment.Glucose, treatment.Mgdl),
		BgSource:        TranslateGlucoseType(treatment.GlucoseType),
		Iob:             treatment.Iob,
		CarbRatio:       treatment.CarbRatio,
		Recommended:     treatment.Recommended,
		Entered:         treatment.Insulin,
		Programmed:      pointer.Coalesce(treatment.Programmed, treatment.Insulin),
		SplitNow:        treatment.SplitNow,
		SplitExt:        treatment.SplitExt,
		PreBolusMinutes: treatment.PreBolusMinutes,
		Type:            TranslateCalculationType(treatment.CalculationType),
		Device:          treatment.Device,
		EnteredBy:       treatment.EnteredBy,
	}
}

func profileSwitchSpan(treatment *legacy.Treatment, correlationId string) *spans.StateSpan {
	span := &spans.StateSpan{
		Category:      spans.CategoryProfile,
		State:         "Active",
		StartMills:    treatment.Mills,
		EndMills:      spanEndMills(treatment.Mills, treatment.Duration),
		OriginalId:    treatment.SourceId,
		CorrelationId: correlationId,
	}
	if treatment.Profile != nil {
		span.Metadata = map[string]string{
			"profile": *treatment.Profile,
		}
	}
	return span
}

func temporaryOverrideSpan(treatment *legacy.Treatment, correlationId string) *spans.StateSpan {
	span := &spans.StateSpan{
		Category:      spans.CategoryOverride,
		State:         "Custom",
		StartMills:    treatment.Mills,
		EndMills:      spanEndMills(treatment.Mills, treatment.Duration),
		OriginalId:    treatment.SourceId,
		CorrelationId: correlationId,
		Metadata:      map[string]string{},
	}
	if treatment.Reason != nil {
		span.Metadata["reason"] = *treatment.Reason
	}
	if treatment.TargetTop != nil {
		span.Metadata["targetTop"] = formatFloat(*treatment.TargetTop)
	}
	if treatment.TargetBottom != nil {
		span.Metadata["targetBottom"] = formatFloat(*treatment.TargetBottom)
	}
	if treatment.InsulinNeedsScaleFactor != nil {
		span.Metadata["insulinNeedsScaleFactor"] = formatFloat(*treatment.InsulinNeedsScaleFactor)
	}
	if treatment.EnteredBy != nil {
		span.Metadata["enteredBy"] = *treatment.EnteredBy
	}
	if len(span.Metadata) == 0 {
		span.Metadata = nil
	}
	return span
}
