package decompose

import (
	"strings"

	"github.com/nocturne-org/nocturne/normalized"
	"github.com/nocturne-org/nocturne/pointer"
)

// The translators below map legacy codes to canonical enumerations. Legacy
// values vary in case and spelling between uploaders, so matching happens on
// a canonical form with known aliases. Unknown values translate to nil.

func canonical(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	value = strings.NewReplacer(" ", "", "-", "", "_", "", ".", "").Replace(value)
	return value
}

func TranslateDirection(direction *string) *normalized.GlucoseTrend {
	if direction == nil {
		return nil
	}
	switch canonical(*direction) {
	case "tripleup":
		return pointer.FromAny(normalized.TrendTripleUp)
	case "doubleup":
		return pointer.FromAny(normalized.TrendDoubleUp)
	case "singleup":
		return pointer.FromAny(normalized.TrendSingleUp)
	case "fortyfiveup", "45up":
		return pointer.FromAny(normalized.TrendFortyFiveUp)
	case "flat":
		return pointer.FromAny(normalized.TrendFlat)
	case "fortyfivedown", "45down":
		return pointer.FromAny(normalized.TrendFortyFiveDown)
	case "singledown":
		return pointer.FromAny(normalized.TrendSingleDown)
	case "doubledown":
		return pointer.FromAny(normalized.TrendDoubleDown)
	case "tripledown":
		return pointer.FromAny(normalized.TrendTripleDown)
	case "notcomputable", "none", "nc":
		return pointer.FromAny(normalized.TrendNotComputable)
	case "rateoutofrange", "outofrange":
		return pointer.FromAny(normalized.TrendRateOutOfRange)
	}
	return nil
}

// TranslateTrend maps the numeric trend codes reported by older sensor
// uploaders.
func TranslateTrend(trend *int64) *normalized.GlucoseTrend {
	if trend == nil {
		return nil
	}
	switch *trend {
	case 1:
		return pointer.FromAny(normalized.TrendDoubleUp)
	case 2:
		return pointer.FromAny(normalized.TrendSingleUp)
	case 3:
		return pointer.FromAny(normalized.TrendFortyFiveUp)
	case 4:
		return pointer.FromAny(normalized.TrendFlat)
	case 5:
		return pointer.FromAny(normalized.TrendFortyFiveDown)
	case 6:
		return pointer.FromAny(normalized.TrendSingleDown)
	case 7:
		return pointer.FromAny(normalized.TrendDoubleDown)
	case 8:
		return pointer.FromAny(normalized.TrendNotComputable)
	case 9:
		return pointer.FromAny(normalized.TrendRateOutOfRange)
	}
	return nil
}

func TranslateGlucoseType(value *string) *normalized.GlucoseType {
	if value == nil {
		return nil
	}
	switch canonical(*value) {
	case "sensor":
		return pointer.FromAny(normalized.GlucoseTypeSensor)
	case "finger", "fingerstick", "meter":
		return pointer.FromAny(normalized.GlucoseTypeFinger)
	case "manual":
		return pointer.FromAny(normalized.GlucoseTypeManual)
	}
	return nil
}

func TranslateGlucoseUnit(value *string) *normalized.GlucoseUnit {
	if value == nil {
		return nil
	}
	switch canonical(*value) {
	case "mgdl", "mg/dl", "mg":
		return pointer.FromAny(normalized.UnitMgdl)
	case "mmol", "mmoll", "mmol/l":
		return pointer.FromAny(normalized.UnitMmolL)
	}
	return nil
}

func TranslateBolusType(value *string) *normalized.BolusType {
	if value == nil {
		return nil
	}
	switch canonical(*value) {
	case "normal":
		return pointer.FromAny(normalized.BolusTypeNormal)
	case "smb":
		return pointer.FromAny(normalized.BolusTypeSmb)
	case "priming", "prime":
		return pointer.FromAny(normalized.BolusTypePriming)
	}
	return nil
}

func TranslateCalculationType(value *string) *normalized.CalculationType {
	if value == nil {
		return nil
	}
	switch canonical(*value) {
	case "suggested":
		return pointer.FromAny(normalized.CalculationSuggested)
	case "manual":
		return pointer.FromAny(normalized.CalculationManual)
	case "automatic", "auto":
		return pointer.FromAny(normalized.CalculationAutomatic)
	}
	return nil
}

func TranslateDeviceEventType(eventType string) (normalized.DeviceEventType, bool) {
	switch canonical(eventType) {
	case "sitechange":
		return normalized.DeviceEventSiteChange, true
	case "sensorstart":
		return normalized.DeviceEventSensorStart, true
	case "sensorchange":
		return normalized.DeviceEventSensorChange, true
	case "sensorstop":
		return normalized.DeviceEventSensorStop, true
	case "insulinchange":
		return normalized.DeviceEventInsulinChange, true
	case "pumpbatterychange":
		return normalized.DeviceEventPumpBatteryChange, true
	case "podchange":
		return normalized.DeviceEventPodChange, true
	case "reservoirchange":
		return normalized.DeviceEventReservoirChange, true
	case "cannulachange":
		return normalized.DeviceEventCannulaChange, true
	case "transmittersensorinsert":
		return normalized.DeviceEventTransmitterSensorInsert, true
	}
	return "", false
}
