package decompose

// Package decompose implements the engine that turns sparse legacy records
// into strongly-typed normalized records and state spans. One call decomposes
// one legacy record; everything the call produces shares a single correlation
// id. Writes happen per target entity type, so a failure mid-call can leave a
// subset of the entity types committed. Re-running the same record is safe:
// records with a source id are updated in place instead of duplicated.

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/nocturne-org/nocturne/normalized"
	"github.com/nocturne-org/nocturne/pointer"
)

type Result struct {
	CorrelationId  string        `json:"correlationId"`
	CreatedRecords []interface{} `json:"createdRecords"`
	UpdatedRecords []interface{} `json:"updatedRecords"`
}

func newResult() *Result {
	return &Result{
		CorrelationId:  NewCorrelationId(),
		CreatedRecords: []interface{}{},
		UpdatedRecords: []interface{}{},
	}
}

// NewCorrelationId returns a time-ordered identifier. A correlation id is
// generated for every decomposition call, even when the call produces no
// records.
func NewCorrelationId() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}

// upsert persists one candidate record. Records with a source id replace the
// existing row with the same source id; records without one are always
// inserted, because same-id matching is impossible when there is no id.
func upsert[T any, PT interface {
	*T
	normalized.Record
}](ctx context.Context, repo normalized.Repository[T], record PT, result *Result) error {
	if sourceId := record.GetSourceId(); sourceId != nil && *sourceId != "" {
		existing, err := repo.FindBySourceId(ctx, *sourceId)
		if err != nil && !errors.Is(err, normalized.ErrNotFound) {
			return err
		}
		if err == nil {
			record.SetId(PT(existing).GetId())
			updated, err := repo.Update(ctx, (*T)(record))
			if err != nil {
				return err
			}
			result.UpdatedRecords = append(result.UpdatedRecords, updated)
			return nil
		}
	}

	inserted, err := repo.Insert(ctx, (*T)(record))
	if err != nil {
		return err
	}
	result.CreatedRecords = append(result.CreatedRecords, inserted)
	return nil
}

func identity(sourceId *string, mills int64, correlationId string) normalized.Identity {
	return normalized.Identity{
		SourceId:      sourceId,
		Mills:         mills,
		CorrelationId: correlationId,
	}
}

// millsFromTimestamp parses an RFC3339 timestamp. Invalid or missing
// timestamps yield nil, not an error.
func millsFromTimestamp(value *string) *int64 {
	if value == nil {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, *value)
	if err != nil {
		return nil
	}
	return pointer.FromAny(parsed.UnixMilli())
}

// spanEndMills computes the end of a state span from its duration in minutes.
// A zero or absent duration yields an open-ended span.
func spanEndMills(startMills int64, durationMinutes *float64) *int64 {
	if durationMinutes == nil || *durationMinutes <= 0 {
		return nil
	}
	return pointer.FromAny(startMills + int64(*durationMinutes*60000))
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func encodeJson(value interface{}) *string {
	if value == nil {
		return nil
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return nil
	}
	return pointer.FromAny(string(encoded))
}
