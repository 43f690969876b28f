package timeutil

import (
	"strings"
	"time"

	"github.com/fxamacker/cbor/v2"
)

const (
	// RFC3339Millis is the API timestamp format: UTC with fixed millisecond precision.
	RFC3339Millis = "2006-01-02T15:04:05.000Z"
	// RFC3339Micros is the log timestamp format.
	RFC3339Micros = "2006-01-02T15:04:05.000000Z"
)

// Time marshals as RFC3339Millis in UTC, e.g. "2024-01-15T10:30:00.000Z".
// JSON null leaves the existing value untouched.
type Time struct {
	time.Time
}

// MarshalJSON implements json.Marshaler.
func (t Time) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.UTC().Format(RFC3339Millis) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler, accepting any RFC 3339 variant.
func (t *Time) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, strings.Trim(s, `"`))
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// MarshalCBOR implements cbor.Marshaler using the same text form as JSON.
func (t Time) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(t.UTC().Format(RFC3339Millis))
}
