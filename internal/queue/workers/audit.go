package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/thecodejesters/visaadmin/internal/audit"
)

// AuditLogger persists audit entries.
type AuditLogger interface {
	Log(ctx context.Context, e audit.Entry) error
}

type AuditWorker struct {
	logs AuditLogger
}

func NewAuditWorker(logs AuditLogger) *AuditWorker {
	return &AuditWorker{logs: logs}
}

func (w *AuditWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var entry audit.Entry
	if err := json.Unmarshal(t.Payload(), &entry); err != nil {
		// a malformed payload will never succeed
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	if err := w.logs.Log(ctx, entry); err != nil {
		return fmt.Errorf("store audit entry: %w", err)
	}

	slog.Debug("audit entry stored", "action", entry.Action, "resource_type", entry.ResourceType, "actor", entry.ActorEmail)
	return nil
}
