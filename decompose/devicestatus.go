package decompose

import (
	"context"

	"go.uber.org/zap"

	"github.com/nocturne-org/nocturne/legacy"
	"github.com/nocturne-org/nocturne/normalized"
	"github.com/nocturne-org/nocturne/pointer"
	"github.com/nocturne-org/nocturne/spans"
)

type DeviceStatusDecomposer struct {
	repos  *normalized.Repositories
	spans  spans.Service
	logger *zap.SugaredLogger
}

func NewDeviceStatusDecomposer(repos *normalized.Repositories, spansService spans.Service, logger *zap.SugaredLogger) *DeviceStatusDecomposer {
	return &DeviceStatusDecomposer{
		repos:  repos,
		spans:  spansService,
		logger: logger,
	}
}

// Decompose produces up to three independent snapshots from one device
// status, and delegates an active override to the span service. The OpenAPS
// branch takes priority over Loop for the AID snapshot; a status never yields
// both.
func (d *DeviceStatusDecomposer) Decompose(ctx context.Context, status *legacy.DeviceStatus) (*Result, error) {
	result := newResult()

	var aps *normalized.ApsSnapshot
	if status.OpenAps != nil {
		aps = openApsSnapshot(status, result.CorrelationId)
	} else if status.Loop != nil {
		aps = loopSnapshot(status, result.CorrelationId)
	}
	if aps != nil {
		if err := upsert(ctx, d.repos.ApsSnapshots, aps, result); err != nil {
			return nil, err
		}
	}

	if status.Pump != nil {
		if err := upsert(ctx, d.repos.PumpSnapshots, pumpSnapshot(status, result.CorrelationId), result); err != nil {
			return nil, err
		}
	}

	if uploader := uploaderSnapshot(status, result.CorrelationId); uploader != nil {
		if err := upsert(ctx, d.repos.UploaderSnapshots, uploader, result); err != nil {
			return nil, err
		}
	}

	if span := overrideSpan(status, result.CorrelationId); span != nil {
		span, err := d.spans.UpsertStateSpan(ctx, span)
		if err != nil {
			return nil, err
		}
		result.CreatedRecords = append(result.CreatedRecords, span)
	}

	return result, nil
}

func openApsSnapshot(status *legacy.DeviceStatus, correlationId string) *normalized.ApsSnapshot {
	openAps := status.OpenAps
	enacted := openAps.Enacted != nil && openAps.Enacted.Received != nil && *openAps.Enacted.Received

	// The enacted object is authoritative once the pump confirmed it;
	// otherwise the suggestion is.
	authoritative := openAps.Suggested
	if enacted || authoritative == nil {
		authoritative = openAps.Enacted
	}

	snapshot := &normalized.ApsSnapshot{
		Identity: identity(status.SourceId, status.Mills, correlationId),
		System:   normalized.ApsSystemOpenAps,
		Enacted:  enacted,
		Device:   status.Device,
	}
	if openAps.Iob != nil {
		snapshot.Iob = openAps.Iob.Iob
		snapshot.BasalIob = openAps.Iob.BasalIob
		snapshot.BolusIob = openAps.Iob.BolusIob
	}

	var suggestedCob *float64
	if openAps.Suggested != nil {
		suggestedCob = openAps.Suggested.Cob
	}
	snapshot.Cob = pointer.Coalesce(openAps.Cob, suggestedCob)

	if authoritative != nil {
		snapshot.CurrentBg = authoritative.Bg
		snapshot.EventualBg = authoritative.EventualBg
		snapshot.TargetBg = authoritative.TargetBg
		snapshot.InsulinReq = authoritative.InsulinReq
		snapshot.SensitivityRatio = authoritative.SensitivityRatio
		snapshot.PredictedStartMills = millsFromTimestamp(authoritative.Timestamp)
		if authoritative.PredBgs != nil {
			snapshot.Predictions = encodeJson(authoritative.PredBgs)
		}
	}

	if enacted {
		snapshot.EnactedRate = openAps.Enacted.Rate
		snapshot.EnactedDuration = openAps.Enacted.Duration
		snapshot.EnactedBolusVolume = openAps.Enacted.Units
	}

	return snapshot
}

func loopSnapshot(status *legacy.DeviceStatus, correlationId string) *normalized.ApsSnapshot {
	loop := status.Loop
	enacted := loop.Enacted != nil && loop.Enacted.Received != nil && *loop.Enacted.Received

	snapshot := &normalized.ApsSnapshot{
		Identity: identity(status.SourceId, status.Mills, correlationId),
		System:   normalized.ApsSystemLoop,
		Enacted:  enacted,
		Device:   status.Device,
	}
	if loop.Iob != nil {
		snapshot.Iob = loop.Iob.Iob
	}
	if loop.Cob != nil {
		snapshot.Cob = loop.Cob.Cob
	}

	if loop.Predicted != nil {
		if values := loop.Predicted.Values; values != nil {
			if len(values) == 0 {
				// An empty curve means the loop ran but predicted
				// nothing; zero distinguishes that from a status
				// with no prediction at all.
				snapshot.CurrentBg = pointer.FromAny(0.0)
				snapshot.EventualBg = pointer.FromAny(0.0)
			} else {
				snapshot.CurrentBg = pointer.FromAny(values[0])
				snapshot.EventualBg = pointer.FromAny(values[len(values)-1])
			}
			snapshot.Predictions = encodeJson(&legacy.PredictedCurves{Default: values})
		}
		snapshot.PredictedStartMills = millsFromTimestamp(loop.Predicted.StartDate)
	}

	if enacted {
		snapshot.EnactedRate = loop.Enacted.Rate
		snapshot.EnactedDuration = loop.Enacted.Duration
		snapshot.EnactedBolusVolume = loop.Enacted.BolusVolume
	}

	return snapshot
}

func pumpSnapshot(status *legacy.DeviceStatus, correlationId string) *normalized.PumpSnapshot {
	pump := status.Pump
	snapshot := &normalized.PumpSnapshot{
		Identity:         identity(status.SourceId, status.Mills, correlationId),
		Manufacturer:     pump.Manufacturer,
		Model:            pump.Model,
		Reservoir:        pump.Reservoir,
		ReservoirDisplay: pump.ReservoirDisplay,
		ClockMills:       millsFromTimestamp(pump.Clock),
		Device:           status.Device,
	}
	if pump.Battery != nil {
		snapshot.BatteryPercent = pump.Battery.Percent
		snapshot.BatteryVoltage = pump.Battery.Voltage
	}
	if pump.Status != nil {
		snapshot.Status = pump.Status.Status
		snapshot.Bolusing = pump.Status.Bolusing
		snapshot.Suspended = pump.Status.Suspended
	}
	return snapshot
}

func uploaderSnapshot(status *legacy.DeviceStatus, correlationId string) *normalized.UploaderSnapshot {
	if status.Uploader == nil && status.UploaderBattery == nil {
		return nil
	}

	snapshot := &normalized.UploaderSnapshot{
		Identity: identity(status.SourceId, status.Mills, correlationId),
		Charging: status.IsCharging,
		Device:   status.Device,
	}
	if uploader := status.Uploader; uploader != nil {
		snapshot.Name = uploader.Name
		// The bare battery field writes into the structured one, never
		// the reverse.
		snapshot.BatteryPercent = pointer.Coalesce(uploader.Battery, status.UploaderBattery)
		snapshot.BatteryVoltage = uploader.BatteryVoltage
		snapshot.Temperature = uploader.Temperature
		snapshot.Type = uploader.Type
	} else {
		snapshot.BatteryPercent = status.UploaderBattery
	}
	return snapshot
}

func overrideSpan(status *legacy.DeviceStatus, correlationId string) *spans.StateSpan {
	override := status.Override
	if override == nil || override.Active == nil || !*override.Active {
		return nil
	}

	start := status.Mills
	if mills := millsFromTimestamp(override.Timestamp); mills != nil {
		start = *mills
	}

	span := &spans.StateSpan{
		Category:      spans.CategoryOverride,
		State:         "Custom",
		StartMills:    start,
		EndMills:      spanEndMills(start, override.Duration),
		OriginalId:    status.SourceId,
		CorrelationId: correlationId,
		Metadata:      map[string]string{},
	}
	if override.Name != nil {
		span.Metadata["name"] = *override.Name
	}
	if override.Multiplier != nil {
		span.Metadata["multiplier"] = formatFloat(*override.Multiplier)
	}
	if override.Range != nil {
		if override.Range.MinValue != nil {
			span.Metadata["correctionRangeMin"] = formatFloat(*override.Range.MinValue)
		}
		if override.Range.MaxValue != nil {
			span.Metadata["correctionRangeMax"] = formatFloat(*override.Range.MaxValue)
		}
	}
	if len(span.Metadata) == 0 {
		span.Metadata = nil
	}
	return span
}
