package workers

import (
	"github.com/hibiken/asynq"

	"github.com/thecodejesters/visaadmin/internal/queue"
)

// NewServeMux routes every task type the worker process consumes.
func NewServeMux(logs AuditLogger) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.Handle(queue.TypeAuditRecord, NewAuditWorker(logs))
	return mux
}
