package legacy_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nocturne-org/nocturne/legacy"
)

var _ = Describe("DeviceStatus", func() {
	Describe("openaps results", func() {
		It("folds the recieved mis-spelling into the canonical field", func() {
			var result legacy.OpenApsResult
			Expect(json.Unmarshal([]byte(`{"recieved": true, "rate": 0.5}`), &result)).To(Succeed())
			Expect(result.Received).To(HaveValue(BeTrue()))
			Expect(result.Rate).To(HaveValue(Equal(0.5)))
		})

		It("parses the canonical spelling", func() {
			var result legacy.OpenApsResult
			Expect(json.Unmarshal([]byte(`{"received": true}`), &result)).To(Succeed())
			Expect(result.Received).To(HaveValue(BeTrue()))
		})

		It("prefers the canonical spelling when both are present", func() {
			var result legacy.OpenApsResult
			Expect(json.Unmarshal([]byte(`{"received": false, "recieved": true}`), &result)).To(Succeed())
			Expect(result.Received).To(HaveValue(BeFalse()))
		})

		It("leaves the field unset when neither spelling is present", func() {
			var result legacy.OpenApsResult
			Expect(json.Unmarshal([]byte(`{"rate": 0.5}`), &result)).To(Succeed())
			Expect(result.Received).To(BeNil())
		})
	})

	Describe("loop enacted results", func() {
		It("folds the recieved mis-spelling into the canonical field", func() {
			var enacted legacy.LoopEnacted
			Expect(json.Unmarshal([]byte(`{"recieved": true, "rate": 1.25}`), &enacted)).To(Succeed())
			Expect(enacted.Received).To(HaveValue(BeTrue()))
			Expect(enacted.Rate).To(HaveValue(Equal(1.25)))
		})
	})

	Describe("full status documents", func() {
		It("parses a combined uploader and pump status", func() {
			payload := `{
				"_id": "abc123",
				"mills": 1700000000000,
				"device": "loop://iphone",
				"uploaderBattery": 55,
				"isCharging": false,
				"pump": {
					"reservoir": 112.5,
					"clock": "2023-11-14T22:13:20Z",
					"battery": {"percent": 80}
				}
			}`

			var status legacy.DeviceStatus
			Expect(json.Unmarshal([]byte(payload), &status)).To(Succeed())
			Expect(status.SourceId).To(HaveValue(Equal("abc123")))
			Expect(status.Mills).To(Equal(int64(1700000000000)))
			Expect(status.UploaderBattery).To(HaveValue(Equal(55.0)))
			Expect(status.IsCharging).To(HaveValue(BeFalse()))
			Expect(status.Pump.Reservoir).To(HaveValue(Equal(112.5)))
			Expect(status.Pump.Battery.Percent).To(HaveValue(Equal(80.0)))
		})
	})
})
