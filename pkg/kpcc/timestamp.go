package kpcc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// TimestampLayout is the only layout the API uses for instants, e.g.
// 2018-03-14T09:00:00.000-07:00.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Timestamp is a time.Time that marshals with TimestampLayout. The zero value
// round-trips as JSON null.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// ParseTimestamp parses a wire timestamp.
func ParseTimestamp(value string) (Timestamp, error) {
	t, err := time.Parse(TimestampLayout, value)
	if err != nil {
		return Timestamp{}, fmt.Errorf("%w: timestamp %q: %v", errSchema, value, err)
	}
	return Timestamp{Time: t}, nil
}

// String formats the timestamp in wire layout, or "" when zero.
func (t Timestamp) String() string {
	if t.IsZero() {
		return ""
	}
	return t.Format(TimestampLayout)
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(TimestampLayout))
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*t = Timestamp{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: timestamp must be a string: %v", errSchema, err)
	}
	parsed, err := ParseTimestamp(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
