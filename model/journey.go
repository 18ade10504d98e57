package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

type Journey struct {
	Id       int       `json:"id"`
	From     string    `json:"from"`
	To       string    `json:"to"`
	Date     Timestamp `json:"date"`
	Price    float64   `json:"price"`
	Provider string    `json:"provider"`
	Currency string    `json:"currency"`
}

// Timestamp accepts RFC 3339 as well as the zone-less ISO 8601 form the
// booking service emits for departure times.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateOnly,
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		parsed, err := time.ParseInLocation(layout, raw, time.Local)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("timestamp: unsupported format %q", raw)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339))
}
