package cron

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// SyncEnqueuer queues on-demand sync runs.
type SyncEnqueuer interface {
	EnqueueSync(orgID, pipeline string) error
	Close() error
}

type asynqEnqueuer struct {
	client *asynq.Client
}

// NewSyncEnqueuer builds the production enqueuer backed by the shared task
// queue.
func NewSyncEnqueuer() SyncEnqueuer {
	return &asynqEnqueuer{client: asynq.NewClient(redisOpts())}
}

func (e *asynqEnqueuer) EnqueueSync(orgID, pipeline string) error {
	payload, err := json.Marshal(SyncPayload{Pipeline: pipeline, OrgID: orgID})
	if err != nil {
		return fmt.Errorf("marshal sync payload: %w", err)
	}
	task := asynq.NewTask(TypeSyncRunOrg, payload, asynq.Timeout(runBudget()), asynq.MaxRetry(0))
	if _, err := e.client.Enqueue(task); err != nil {
		return fmt.Errorf("enqueue sync for org %s: %w", orgID, err)
	}
	return nil
}

func (e *asynqEnqueuer) Close() error {
	return e.client.Close()
}
