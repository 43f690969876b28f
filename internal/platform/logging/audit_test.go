package logging

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogAudit(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	ctx := WithLogger(context.Background(), zap.New(core))

	LogAudit(ctx, AuditEvent{
		Action:       "update",
		UserID:       "user-123",
		ResourceType: "profile",
		ResourceID:   "user-123",
		Result:       AuditFailure,
		Details:      map[string]any{"error": "internal_error"},
	})

	entries := recorded.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Message != "Audit event" {
		t.Fatalf("unexpected message %q", entries[0].Message)
	}
	fields := entries[0].ContextMap()
	if fields["audit.action"] != "update" {
		t.Errorf("expected audit.action update, got %v", fields["audit.action"])
	}
	if fields["audit.result"] != AuditFailure {
		t.Errorf("expected audit.result failure, got %v", fields["audit.result"])
	}
	details, ok := fields["audit.details"].(map[string]any)
	if !ok || details["error"] != "internal_error" {
		t.Errorf("unexpected details: %v", fields["audit.details"])
	}
}
