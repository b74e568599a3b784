package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"equiptrack/config"
	syncsvc "equiptrack/services/sync"
	"equiptrack/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const (
	// TypeSyncRunAll runs one pipeline across every enabled organization.
	TypeSyncRunAll = "sync:run_all"
	// TypeSyncRunOrg runs one pipeline for a single organization, used by the
	// sync-now endpoint.
	TypeSyncRunOrg = "sync:run_org"
)

// SyncPayload identifies the pipeline (and optionally the org) a queued sync
// task should run.
type SyncPayload struct {
	Pipeline string `json:"pipeline"`
	OrgID    string `json:"orgId,omitempty"`
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// runBudget bounds one queued run so a stuck remote endpoint cannot hold the
// worker slot forever.
func runBudget() time.Duration {
	return time.Duration(config.AppConfig.SyncRunBudgetSec) * time.Second
}

// InitSyncWorker starts the async worker and the periodic scheduler in the
// background. The maintenance pipelines each run once a day, staggered so the
// device sync lands before the pipelines that depend on its output.
func InitSyncWorker(engine *syncsvc.Engine) {
	logger := utils.GetLogger()

	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeSyncRunAll, handleSyncRunAll(engine))
	mux.HandleFunc(TypeSyncRunOrg, handleSyncRunOrg(engine))

	go func() {
		logger.Info("Starting sync worker")
		if err := srv.Run(mux); err != nil {
			logger.Fatal("Sync worker failed to start", zap.Error(err))
		}
	}()

	go runScheduler(logger)
}

func runScheduler(logger *zap.Logger) {
	scheduler := asynq.NewScheduler(redisOpts(), &asynq.SchedulerOpts{
		Location: time.UTC,
	})

	entries := []struct {
		cronspec string
		pipeline string
	}{
		{"0 1 * * *", syncsvc.PipelineDevices},
		{"30 1 * * *", syncsvc.PipelineSites},
		{"0 2 * * *", syncsvc.PipelineMoves},
		{"30 2 * * *", syncsvc.PipelineNames},
		{"0 3 * * *", syncsvc.PipelineGroups},
		{"30 3 * * *", syncsvc.PipelineCleanup},
		{"0 4 * * *", syncsvc.PipelineReclaim},
	}
	for _, e := range entries {
		payload, err := json.Marshal(SyncPayload{Pipeline: e.pipeline})
		if err != nil {
			logger.Fatal("Failed to marshal scheduler payload", zap.Error(err))
		}
		task := asynq.NewTask(TypeSyncRunAll, payload, asynq.Timeout(runBudget()), asynq.MaxRetry(0))
		if _, err := scheduler.Register(e.cronspec, task); err != nil {
			logger.Fatal("Failed to register scheduled pipeline",
				zap.String("pipeline", e.pipeline), zap.Error(err))
		}
	}

	logger.Info("Starting sync scheduler")
	if err := scheduler.Run(); err != nil {
		logger.Fatal("Sync scheduler failed to start", zap.Error(err))
	}
}

func handleSyncRunAll(engine *syncsvc.Engine) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p SyncPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			return fmt.Errorf("invalid sync payload: %w", err)
		}
		reports := engine.RunAll(ctx, p.Pipeline)
		utils.GetLogger().Info("Scheduled sync finished",
			zap.String("pipeline", p.Pipeline),
			zap.Int("reports", len(reports)))
		return nil
	}
}

func handleSyncRunOrg(engine *syncsvc.Engine) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p SyncPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			return fmt.Errorf("invalid sync payload: %w", err)
		}
		reports := engine.RunForOrg(ctx, p.OrgID, p.Pipeline)
		for _, r := range reports {
			utils.GetLogger().Info("On-demand sync finished",
				zap.String("orgId", r.OrgID),
				zap.String("pipeline", r.Pipeline),
				zap.String("outcome", string(r.Outcome)),
				zap.Int("processed", r.Processed))
		}
		return nil
	}
}
