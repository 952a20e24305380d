package logger

import (
	"context"
	"log/slog"
)

// AuditLogger records who did what to which user account. Entries go to the
// structured log with a fixed event name so they can be filtered out of the
// regular request noise.
type AuditLogger struct {
	logger *slog.Logger
}

func NewAuditLogger(logger *slog.Logger) *AuditLogger {
	return &AuditLogger{logger: logger}
}

// LogUserAction records a mutating operation against a user account.
func (a *AuditLogger) LogUserAction(ctx context.Context, actorName, action, targetName string, success bool) {
	a.logger.LogAttrs(ctx, slog.LevelInfo, "audit_user_action",
		slog.String("actor", actorName),
		slog.String("action", action),
		slog.String("target", targetName),
		slog.Bool("success", success),
	)
}

// LogAuthAttempt records the outcome of a credential check.
func (a *AuditLogger) LogAuthAttempt(ctx context.Context, name string, success bool) {
	a.logger.LogAttrs(ctx, slog.LevelInfo, "audit_auth_attempt",
		slog.String("name", name),
		slog.Bool("success", success),
	)
}
