package legacy

// Package legacy defines the loosely-typed records accepted by the ingestion
// boundary. The shapes are backward compatible with the historical wire
// format, which means almost every field is optional and absence is the norm.

// Entry is a glucose entry. Type discriminates between sensor glucose
// ("sgv"), meter glucose ("mbg") and sensor calibrations ("cal").
type Entry struct {
	SourceId *string `json:"_id,omitempty" bson:"sourceId,omitempty"`
	Type     *string `json:"type,omitempty" bson:"type,omitempty"`
	Mills    int64   `json:"mills" bson:"mills"`
	Device   *string `json:"device,omitempty" bson:"device,omitempty"`

	Sgv  *float64 `json:"sgv,omitempty" bson:"sgv,omitempty"`
	Mgdl *float64 `json:"mgdl,omitempty" bson:"mgdl,omitempty"`
	Mbg  *float64 `json:"mbg,omitempty" bson:"mbg,omitempty"`

	Direction *string `json:"direction,omitempty" bson:"direction,omitempty"`
	Trend     *int64  `json:"trend,omitempty" bson:"trend,omitempty"`

	Filtered   *float64 `json:"filtered,omitempty" bson:"filtered,omitempty"`
	Unfiltered *float64 `json:"unfiltered,omitempty" bson:"unfiltered,omitempty"`
	Noise      *int64   `json:"noise,omitempty" bson:"noise,omitempty"`
	Rssi       *int64   `json:"rssi,omitempty" bson:"rssi,omitempty"`

	Slope     *float64 `json:"slope,omitempty" bson:"slope,omitempty"`
	Intercept *float64 `json:"intercept,omitempty" bson:"intercept,omitempty"`
	Scale     *float64 `json:"scale,omitempty" bson:"scale,omitempty"`
}
