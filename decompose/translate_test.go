package decompose_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nocturne-org/nocturne/decompose"
	"github.com/nocturne-org/nocturne/normalized"
	"github.com/nocturne-org/nocturne/pointer"
)

var _ = Describe("Translators", func() {
	Describe("TranslateDirection", func() {
		DescribeTable("maps directions case-insensitively",
			func(direction string, expected *normalized.GlucoseTrend) {
				Expect(decompose.TranslateDirection(&direction)).To(Equal(expected))
			},
			Entry("flat", "Flat", pointer.FromAny(normalized.TrendFlat)),
			Entry("flat lowercase", "flat", pointer.FromAny(normalized.TrendFlat)),
			Entry("forty five up", "FortyFiveUp", pointer.FromAny(normalized.TrendFortyFiveUp)),
			Entry("forty five up alias", "45Up", pointer.FromAny(normalized.TrendFortyFiveUp)),
			Entry("double down uppercase", "DOUBLEDOWN", pointer.FromAny(normalized.TrendDoubleDown)),
			Entry("not computable with spaces", "NOT COMPUTABLE", pointer.FromAny(normalized.TrendNotComputable)),
			Entry("none alias", "NONE", pointer.FromAny(normalized.TrendNotComputable)),
			Entry("rate out of range", "RATE OUT OF RANGE", pointer.FromAny(normalized.TrendRateOutOfRange)),
			Entry("unknown", "Sideways", nil),
		)

		It("returns nil for a missing direction", func() {
			Expect(decompose.TranslateDirection(nil)).To(BeNil())
		})
	})

	Describe("TranslateTrend", func() {
		DescribeTable("maps numeric trend codes",
			func(trend int64, expected *normalized.GlucoseTrend) {
				Expect(decompose.TranslateTrend(&trend)).To(Equal(expected))
			},
			Entry("double up", int64(1), pointer.FromAny(normalized.TrendDoubleUp)),
			Entry("flat", int64(4), pointer.FromAny(normalized.TrendFlat)),
			Entry("rate out of range", int64(9), pointer.FromAny(normalized.TrendRateOutOfRange)),
			Entry("unknown code", int64(42), nil),
		)
	})

	Describe("TranslateGlucoseType", func() {
		DescribeTable("maps glucose types",
			func(value string, expected *normalized.GlucoseType) {
				Expect(decompose.TranslateGlucoseType(&value)).To(Equal(expected))
			},
			Entry("sensor", "Sensor", pointer.FromAny(normalized.GlucoseTypeSensor)),
			Entry("finger", "Finger", pointer.FromAny(normalized.GlucoseTypeFinger)),
			Entry("fingerstick alias", "fingerstick", pointer.FromAny(normalized.GlucoseTypeFinger)),
			Entry("meter alias", "Meter", pointer.FromAny(normalized.GlucoseTypeFinger)),
			Entry("manual", "MANUAL", pointer.FromAny(normalized.GlucoseTypeManual)),
			Entry("unknown", "telepathy", nil),
		)
	})

	Describe("TranslateGlucoseUnit", func() {
		DescribeTable("maps glucose units",
			func(value string, expected *normalized.GlucoseUnit) {
				Expect(decompose.TranslateGlucoseUnit(&value)).To(Equal(expected))
			},
			Entry("mg/dl", "mg/dl", pointer.FromAny(normalized.UnitMgdl)),
			Entry("mgdl", "mgdl", pointer.FromAny(normalized.UnitMgdl)),
			Entry("mmol", "mmol", pointer.FromAny(normalized.UnitMmolL)),
			Entry("mmol/l uppercase", "MMOL/L", pointer.FromAny(normalized.UnitMmolL)),
			Entry("unknown", "furlongs", nil),
		)
	})

	Describe("TranslateBolusType", func() {
		DescribeTable("maps bolus types",
			func(value string, expected *normalized.BolusType) {
				Expect(decompose.TranslateBolusType(&value)).To(Equal(expected))
			},
			Entry("normal", "NORMAL", pointer.FromAny(normalized.BolusTypeNormal)),
			Entry("smb", "SMB", pointer.FromAny(normalized.BolusTypeSmb)),
			Entry("priming", "PRIMING", pointer.FromAny(normalized.BolusTypePriming)),
			Entry("prime alias", "prime", pointer.FromAny(normalized.BolusTypePriming)),
			Entry("unknown", "mystery", nil),
		)
	})

	Describe("TranslateCalculationType", func() {
		DescribeTable("maps calculation types",
			func(value string, expected *normalized.CalculationType) {
				Expect(decompose.TranslateCalculationType(&value)).To(Equal(expected))
			},
			Entry("suggested", "Suggested", pointer.FromAny(normalized.CalculationSuggested)),
			Entry("manual", "manual", pointer.FromAny(normalized.CalculationManual)),
			Entry("automatic", "Automatic", pointer.FromAny(normalized.CalculationAutomatic)),
			Entry("auto alias", "auto", pointer.FromAny(normalized.CalculationAutomatic)),
			Entry("unknown", "psychic", nil),
		)

		It("returns nil for a missing value", func() {
			Expect(decompose.TranslateCalculationType(nil)).To(BeNil())
		})
	})

	Describe("TranslateDeviceEventType", func() {
		DescribeTable("maps device event types",
			func(eventType string, expected normalized.DeviceEventType) {
				result, ok := decompose.TranslateDeviceEventType(eventType)
				Expect(ok).To(BeTrue())
				Expect(result).To(Equal(expected))
			},
			Entry("site change", "Site Change", normalized.DeviceEventSiteChange),
			Entry("sensor start", "Sensor Start", normalized.DeviceEventSensorStart),
			Entry("sensor stop lowercase", "sensor stop", normalized.DeviceEventSensorStop),
			Entry("pump battery change", "Pump Battery Change", normalized.DeviceEventPumpBatteryChange),
			Entry("pod change", "Pod Change", normalized.DeviceEventPodChange),
			Entry("reservoir change", "Reservoir Change", normalized.DeviceEventReservoirChange),
			Entry("cannula change", "Cannula Change", normalized.DeviceEventCannulaChange),
			Entry("transmitter sensor insert", "Transmitter Sensor Insert", normalized.DeviceEventTransmitterSensorInsert),
		)

		It("rejects unknown event types", func() {
			_, ok := decompose.TranslateDeviceEventType("Pizza Party")
			Expect(ok).To(BeFalse())
		})
	})
})
