package workers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thecodejesters/visaadmin/internal/audit"
	"github.com/thecodejesters/visaadmin/internal/queue"
)

type fakeLogger struct {
	entries []audit.Entry
	err     error
}

func (f *fakeLogger) Log(ctx context.Context, e audit.Entry) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, e)
	return nil
}

func TestAuditWorkerStoresEntry(t *testing.T) {
	logs := &fakeLogger{}
	id := int64(7)
	payload, err := json.Marshal(audit.Entry{
		ActorEmail:   "admin@example.com",
		Action:       audit.ActionDelete,
		ResourceType: "required_document",
		ResourceID:   &id,
	})
	require.NoError(t, err)

	err = NewAuditWorker(logs).ProcessTask(context.Background(), asynq.NewTask(queue.TypeAuditRecord, payload))
	require.NoError(t, err)
	require.Len(t, logs.entries, 1)
	assert.Equal(t, "admin@example.com", logs.entries[0].ActorEmail)
	assert.Equal(t, int64(7), *logs.entries[0].ResourceID)
}

func TestAuditWorkerSkipsRetryOnBadPayload(t *testing.T) {
	err := NewAuditWorker(&fakeLogger{}).ProcessTask(context.Background(), asynq.NewTask(queue.TypeAuditRecord, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestAuditWorkerRetriesStoreFailure(t *testing.T) {
	boom := errors.New("db down")
	payload, _ := json.Marshal(audit.Entry{Action: audit.ActionCreate})

	err := NewAuditWorker(&fakeLogger{err: boom}).ProcessTask(context.Background(), asynq.NewTask(queue.TypeAuditRecord, payload))
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}

func TestServeMuxRoutesAuditTasks(t *testing.T) {
	logs := &fakeLogger{}
	mux := NewServeMux(logs)
	payload, err := json.Marshal(audit.Entry{ActorEmail: "admin@example.com", Action: audit.ActionClone})
	require.NoError(t, err)

	require.NoError(t, mux.ProcessTask(context.Background(), asynq.NewTask(queue.TypeAuditRecord, payload)))
	require.Len(t, logs.entries, 1)
	assert.Equal(t, audit.ActionClone, logs.entries[0].Action)

	assert.Error(t, mux.ProcessTask(context.Background(), asynq.NewTask("document:process", payload)))
	assert.Len(t, logs.entries, 1)
}
