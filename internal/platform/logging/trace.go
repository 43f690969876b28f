package logging

import (
	"fmt"
	"regexp"

	"go.uber.org/zap"
)

const traceparentHeader = "traceparent"

// W3C Trace Context: {version}-{trace-id}-{parent-id}-{trace-flags}
var traceparentRe = regexp.MustCompile(`^([0-9a-fA-F]{2})-([0-9a-fA-F]{32})-([0-9a-fA-F]{16})-([0-9a-fA-F]{2})$`)

type traceContext struct {
	traceID string
	spanID  string
	sampled bool
}

func parseTraceparent(header string) (traceContext, bool) {
	m := traceparentRe.FindStringSubmatch(header)
	if len(m) != 5 {
		return traceContext{}, false
	}
	return traceContext{traceID: m[2], spanID: m[3], sampled: m[4] == "01"}, true
}

// resource formats the Cloud Trace resource name for projectID.
func (tc traceContext) resource(projectID string) string {
	return fmt.Sprintf("projects/%s/traces/%s", projectID, tc.traceID)
}

// requestFields builds the per-request logger fields. Cloud Trace fields are
// only attached when a project is configured and the header parses.
func requestFields(header, projectID, requestID string) (fields []zap.Field, traceID string) {
	if projectID != "" {
		if tc, ok := parseTraceparent(header); ok {
			traceID = tc.resource(projectID)
			fields = append(fields,
				zap.String("logging.googleapis.com/trace", traceID),
				zap.String("logging.googleapis.com/spanId", tc.spanID),
				zap.Bool("logging.googleapis.com/trace_sampled", tc.sampled),
			)
		}
	}
	if requestID != "" {
		fields = append(fields, zap.String("requestId", requestID))
		if traceID == "" {
			traceID = requestID
		}
	}
	return fields, traceID
}
