package normalized

// Kind identifies a normalized target entity type.
type Kind string

const (
	KindSensorGlucose    Kind = "sensorGlucose"
	KindMeterGlucose     Kind = "meterGlucose"
	KindCalibration      Kind = "calibration"
	KindBolus            Kind = "bolus"
	KindCarbIntake       Kind = "carbIntake"
	KindBGCheck          Kind = "bgCheck"
	KindNote             Kind = "note"
	KindDeviceEvent      Kind = "deviceEvent"
	KindBolusCalculation Kind = "bolusCalculation"
	KindApsSnapshot      Kind = "apsSnapshot"
	KindPumpSnapshot     Kind = "pumpSnapshot"
	KindUploaderSnapshot Kind = "uploaderSnapshot"
)

type GlucoseTrend string

const (
	TrendTripleUp       GlucoseTrend = "TripleUp"
	TrendDoubleUp       GlucoseTrend = "DoubleUp"
	TrendSingleUp       GlucoseTrend = "SingleUp"
	TrendFortyFiveUp    GlucoseTrend = "FortyFiveUp"
	TrendFlat           GlucoseTrend = "Flat"
	TrendFortyFiveDown  GlucoseTrend = "FortyFiveDown"
	TrendSingleDown     GlucoseTrend = "SingleDown"
	TrendDoubleDown     GlucoseTrend = "DoubleDown"
	TrendTripleDown     GlucoseTrend = "TripleDown"
	TrendNotComputable  GlucoseTrend = "NotComputable"
	TrendRateOutOfRange GlucoseTrend = "RateOutOfRange"
)

type GlucoseType string

const (
	GlucoseTypeSensor GlucoseType = "Sensor"
	GlucoseTypeFinger GlucoseType = "Finger"
	GlucoseTypeManual GlucoseType = "Manual"
)

type GlucoseUnit string

const (
	UnitMgdl  GlucoseUnit = "MgDl"
	UnitMmolL GlucoseUnit = "MmolL"
)

type BolusType string

const (
	BolusTypeNormal  BolusType = "Normal"
	BolusTypeSmb     BolusType = "Smb"
	BolusTypePriming BolusType = "Priming"
)

type CalculationType string

const (
	CalculationSuggested CalculationType = "Suggested"
	CalculationManual    CalculationType = "Manual"
	CalculationAutomatic CalculationType = "Automatic"
)

type DeviceEventType string

const (
	DeviceEventSiteChange              DeviceEventType = "SiteChange"
	DeviceEventSensorStart             DeviceEventType = "SensorStart"
	DeviceEventSensorChange            DeviceEventType = "SensorChange"
	DeviceEventSensorStop              DeviceEventType = "SensorStop"
	DeviceEventInsulinChange           DeviceEventType = "InsulinChange"
	DeviceEventPumpBatteryChange       DeviceEventType = "PumpBatteryChange"
	DeviceEventPodChange               DeviceEventType = "PodChange"
	DeviceEventReservoirChange         DeviceEventType = "ReservoirChange"
	DeviceEventCannulaChange           DeviceEventType = "CannulaChange"
	DeviceEventTransmitterSensorInsert DeviceEventType = "TransmitterSensorInsert"
)

type ApsSystem string

const (
	ApsSystemOpenAps ApsSystem = "openaps"
	ApsSystemLoop    ApsSystem = "loop"
)
