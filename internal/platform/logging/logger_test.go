package logging

import (
	"testing"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/janisto/devconnector-api/internal/platform/timeutil"
)

type captureArrayEncoder struct {
	zapcore.PrimitiveArrayEncoder
	values []string
}

func (c *captureArrayEncoder) AppendString(s string) { c.values = append(c.values, s) }

func TestEncodeSeverityMapping(t *testing.T) {
	tests := []struct {
		level zapcore.Level
		want  string
	}{
		{zapcore.DebugLevel, "DEBUG"},
		{zapcore.InfoLevel, "INFO"},
		{zapcore.WarnLevel, "WARNING"},
		{zapcore.ErrorLevel, "ERROR"},
		{zapcore.DPanicLevel, "CRITICAL"},
		{zapcore.PanicLevel, "ALERT"},
		{zapcore.FatalLevel, "EMERGENCY"},
		{zapcore.Level(42), "DEFAULT"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			enc := &captureArrayEncoder{}
			encodeSeverity(tt.level, enc)
			if len(enc.values) != 1 || enc.values[0] != tt.want {
				t.Fatalf("got %v, want %s", enc.values, tt.want)
			}
		})
	}
}

func TestEncodeTimeMicrosUsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	ts := time.Date(2024, 1, 15, 13, 30, 0, 123456000, loc)

	enc := &captureArrayEncoder{}
	encodeTimeMicros(ts, enc)

	if len(enc.values) != 1 {
		t.Fatalf("expected one value, got %d", len(enc.values))
	}
	if enc.values[0] != "2024-01-15T10:30:00.123456Z" {
		t.Fatalf("unexpected timestamp: %s", enc.values[0])
	}
	if _, err := time.Parse(timeutil.RFC3339Micros, enc.values[0]); err != nil {
		t.Fatalf("timestamp does not round-trip: %v", err)
	}
}

func TestLoggerSingleton(t *testing.T) {
	if Logger() != Logger() {
		t.Fatal("expected the same logger instance")
	}
	if err := Err(); err != nil {
		t.Fatalf("unexpected init error: %v", err)
	}
}
