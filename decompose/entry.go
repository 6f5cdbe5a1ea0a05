package decompose

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/nocturne-org/nocturne/legacy"
	"github.com/nocturne-org/nocturne/normalized"
	"github.com/nocturne-org/nocturne/pointer"
)

type EntryDecomposer struct {
	repos  *normalized.Repositories
	logger *zap.SugaredLogger
}

func NewEntryDecomposer(repos *normalized.Repositories, logger *zap.SugaredLogger) *EntryDecomposer {
	return &EntryDecomposer{
		repos:  repos,
		logger: logger,
	}
}

// Decompose routes a glucose entry to exactly one of sensor glucose, meter
// glucose or calibration. Unrecognized entry types produce an empty result.
func (d *EntryDecomposer) Decompose(ctx context.Context, entry *legacy.Entry) (*Result, error) {
	result := newResult()

	entryType := ""
	if entry.Type != nil {
		entryType = strings.ToLower(strings.TrimSpace(*entry.Type))
	}

	switch entryType {
	case "sgv":
		record := &normalized.SensorGlucose{
			Identity:   identity(entry.SourceId, entry.Mills, result.CorrelationId),
			Mgdl:       sensorGlucoseValue(entry),
			Trend:      sensorTrend(entry),
			Device:     entry.Device,
			Filtered:   entry.Filtered,
			Unfiltered: entry.Unfiltered,
			Noise:      entry.Noise,
			Rssi:       entry.Rssi,
		}
		if err := upsert(ctx, d.repos.SensorGlucose, record, result); err != nil {
			return nil, err
		}
	case "mbg":
		record := &normalized.MeterGlucose{
			Identity: identity(entry.SourceId, entry.Mills, result.CorrelationId),
			Mgdl:     meterGlucoseValue(entry),
			Device:   entry.Device,
		}
		if err := upsert(ctx, d.repos.MeterGlucose, record, result); err != nil {
			return nil, err
		}
	case "cal":
		record := &normalized.Calibration{
			Identity:  identity(entry.SourceId, entry.Mills, result.CorrelationId),
			Slope:     entry.Slope,
			Intercept: entry.Intercept,
			Scale:     entry.Scale,
			Device:    entry.Device,
		}
		if err := upsert(ctx, d.repos.Calibrations, record, result); err != nil {
			return nil, err
		}
	default:
		d.logger.Debugw("entry type is not routable", "type", entryType, "correlationId", result.CorrelationId)
	}

	return result, nil
}

func sensorGlucoseValue(entry *legacy.Entry) *float64 {
	return pointer.Coalesce(entry.Sgv, entry.Mgdl)
}

func meterGlucoseValue(entry *legacy.Entry) *float64 {
	return pointer.Coalesce(entry.Mbg, entry.Mgdl)
}

func sensorTrend(entry *legacy.Entry) *normalized.GlucoseTrend {
	if trend := TranslateDirection(entry.Direction); trend != nil {
		return trend
	}
	return TranslateTrend(entry.Trend)
}
