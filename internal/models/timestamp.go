package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// TimestampLayout is the naive UTC wire format: ISO-8601 without an offset.
const TimestampLayout = "2006-01-02T15:04:05.999999"

// Timestamp is a UTC instant stored without time zone and serialized without an offset.
type Timestamp struct {
	time.Time
}

// Now returns the current UTC time truncated to microseconds, the precision Postgres keeps.
func Now() Timestamp {
	return Timestamp{time.Now().UTC().Truncate(time.Microsecond)}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.UTC().Format(TimestampLayout) + `"`), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("timestamp: invalid value %s", s)
	}
	s = s[1 : len(s)-1]
	parsed, err := time.Parse(TimestampLayout, s)
	if err != nil {
		parsed, err = time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return fmt.Errorf("timestamp: %w", err)
		}
	}
	t.Time = parsed.UTC()
	return nil
}

// Scan reads a TIMESTAMP column; values are interpreted as UTC.
func (t *Timestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		t.Time = time.Date(v.Year(), v.Month(), v.Day(), v.Hour(), v.Minute(), v.Second(), v.Nanosecond(), time.UTC)
		return nil
	case nil:
		t.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("timestamp: cannot scan %T", src)
	}
}

func (t Timestamp) Value() (driver.Value, error) {
	return t.UTC(), nil
}
