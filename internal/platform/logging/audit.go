package logging

import (
	"context"

	"go.uber.org/zap"
)

// Audit results.
const (
	AuditSuccess = "success"
	AuditFailure = "failure"
)

// AuditEvent describes a state-changing action for security and compliance logs.
type AuditEvent struct {
	Action       string // e.g. "create", "update"
	UserID       string
	ResourceType string
	ResourceID   string
	Result       string
	Details      map[string]any
}

// LogAudit writes e as a structured "Audit event" entry.
func LogAudit(ctx context.Context, e AuditEvent) {
	LoggerFromContext(ctx).Info("Audit event",
		zap.String("audit.action", e.Action),
		zap.String("audit.user_id", e.UserID),
		zap.String("audit.resource_type", e.ResourceType),
		zap.String("audit.resource_id", e.ResourceID),
		zap.String("audit.result", e.Result),
		zap.Any("audit.details", e.Details),
	)
}
