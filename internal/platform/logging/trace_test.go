package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

const sampleTraceparent = "00-ab42124a3c573678d4d8b21ba52df3bf-d21f7bc17caa5aba-01"

func TestParseTraceparent(t *testing.T) {
	tc, ok := parseTraceparent(sampleTraceparent)
	if !ok {
		t.Fatal("expected header to parse")
	}
	if tc.traceID != "ab42124a3c573678d4d8b21ba52df3bf" || tc.spanID != "d21f7bc17caa5aba" || !tc.sampled {
		t.Fatalf("unexpected trace context: %+v", tc)
	}

	for _, header := range []string{"", "garbage", "00-short-d21f7bc17caa5aba-01"} {
		if _, ok := parseTraceparent(header); ok {
			t.Fatalf("expected %q to be rejected", header)
		}
	}
}

func TestRequestFields(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		projectID  string
		requestID  string
		wantFields int
		wantTrace  string
	}{
		{
			name:       "trace and request id",
			header:     sampleTraceparent,
			projectID:  "demo",
			requestID:  "req-1",
			wantFields: 4,
			wantTrace:  "projects/demo/traces/ab42124a3c573678d4d8b21ba52df3bf",
		},
		{
			name:       "no project falls back to request id",
			header:     sampleTraceparent,
			requestID:  "req-1",
			wantFields: 1,
			wantTrace:  "req-1",
		},
		{
			name:      "nothing available",
			projectID: "demo",
			header:    "invalid",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, traceID := requestFields(tt.header, tt.projectID, tt.requestID)
			if len(fields) != tt.wantFields {
				t.Fatalf("expected %d fields, got %d", tt.wantFields, len(fields))
			}
			if traceID != tt.wantTrace {
				t.Fatalf("expected trace %q, got %q", tt.wantTrace, traceID)
			}
			for _, f := range fields {
				if f.Key == "logging.googleapis.com/trace_sampled" && f.Type != zapcore.BoolType {
					t.Fatalf("sampled flag should be a bool field")
				}
			}
		})
	}
}
