package sync

import (
	"context"

	deviceRepo "equiptrack/database/repository/device"
	orgRepo "equiptrack/database/repository/organization"
	"equiptrack/models"
	"equiptrack/services/command"
)

// Notifier receives per-organization run reports after a pipeline finishes.
// A nil Notifier disables delivery.
type Notifier interface {
	NotifyRunReport(ctx context.Context, report *models.RunReport) error
}

// Config carries the externally tuned engine knobs.
type Config struct {
	// SyncWorkers bounds fetch/prepare parallelism.
	SyncWorkers int
	// DeleteWorkers bounds remote delete parallelism during orphan reclaim.
	DeleteWorkers int
	// KeepDomain is the email domain fragment whose users survive cleanup.
	KeepDomain string
}

// Engine runs the reconciliation pipelines against one local store and one
// remote Command deployment. All pipelines tolerate partial failure: a
// category or endpoint that errors is noted on the run report and the rest of
// the run proceeds.
type Engine struct {
	cmd        *command.Client
	devices    deviceRepo.DeviceRepository
	orgs       orgRepo.OrganizationRepository
	sessions   SessionProvider
	notifier   Notifier
	pool       *WorkerPool
	deletePool *WorkerPool
	preparer   *Preparer
	writer     *Writer
	keepDomain string
}

func NewEngine(
	cmd *command.Client,
	devices deviceRepo.DeviceRepository,
	orgs orgRepo.OrganizationRepository,
	sessions SessionProvider,
	notifier Notifier,
	cfg Config,
) *Engine {
	return &Engine{
		cmd:        cmd,
		devices:    devices,
		orgs:       orgs,
		sessions:   sessions,
		notifier:   notifier,
		pool:       NewWorkerPool(cfg.SyncWorkers),
		deletePool: NewWorkerPool(cfg.DeleteWorkers),
		preparer:   &Preparer{devices: devices},
		writer:     NewWriter(devices),
		keepDomain: cfg.KeepDomain,
	}
}
