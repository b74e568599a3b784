package sync

import (
	"context"
	"fmt"
	stdsync "sync"
	"time"

	"equiptrack/models"
	"equiptrack/services/command"
	"equiptrack/utils"

	"go.uber.org/zap"
)

// categoryBatch is one category's worth of fetched items ready to prepare.
type categoryBatch struct {
	spec  command.FetchSpec
	items []command.RawItem
}

// SyncDeviceIDs reconciles remote device ids and categories into the local
// store for one organization. Categories fetch concurrently; a category that
// fails to fetch or commit is noted on the report and the others proceed.
func (e *Engine) SyncDeviceIDs(ctx context.Context, orgID string, session *command.Session) *models.RunReport {
	report := &models.RunReport{
		OrgID:     orgID,
		Pipeline:  PipelineDevices,
		Outcome:   models.RunSucceeded,
		StartedAt: time.Now().UTC(),
	}
	var mu stdsync.Mutex

	note := func(scope, reason string) {
		mu.Lock()
		report.AddNote(scope, reason)
		mu.Unlock()
	}
	account := func(n int) {
		mu.Lock()
		report.Processed += n
		mu.Unlock()
	}

	specs := command.DeviceFetchSpecs()
	tasks := make([]func(), 0, len(specs)+2)
	for _, spec := range specs {
		spec := spec
		tasks = append(tasks, func() {
			items, err := e.cmd.Fetch(ctx, session, spec)
			if err != nil {
				note(string(spec.Category), err.Error())
				return
			}
			applied, failures := e.syncCategory(ctx, orgID, categoryBatch{spec: spec, items: items})
			account(applied)
			for _, f := range failures {
				note(string(spec.Category), f)
			}
		})
	}
	tasks = append(tasks, func() {
		intercoms, deskStations, err := e.cmd.FetchIntercomsAndDeskStations(ctx, session)
		if err != nil {
			note(string(models.CategoryIntercom), err.Error())
			return
		}
		for _, batch := range []categoryBatch{
			{spec: command.FetchSpec{Category: models.CategoryIntercom, IDField: "deviceId", SerialField: "serialNumber"}, items: intercoms},
			{spec: command.FetchSpec{Category: models.CategoryDeskStation, IDField: "deviceId", SerialField: "serialNumber"}, items: deskStations},
		} {
			applied, failures := e.syncCategory(ctx, orgID, batch)
			account(applied)
			for _, f := range failures {
				note(string(batch.spec.Category), f)
			}
		}
	})
	tasks = append(tasks, func() {
		groups, err := e.cmd.FetchClassicAlarmGroups(ctx, session)
		if err != nil {
			note(string(models.CategoryAlarmHub), err.Error())
			return
		}
		for _, g := range groups {
			applied, failures := e.syncCategory(ctx, orgID, categoryBatch{spec: g.Spec, items: g.Items})
			account(applied)
			for _, f := range failures {
				note(string(g.Spec.Category), f)
			}
		}
	})

	e.pool.Run(ctx, len(tasks), func(i int) { tasks[i]() })

	report.FinishedAt = time.Now().UTC()
	return report
}

// syncCategory prepares one category's items concurrently and commits the
// resulting operations. Returns the applied op count and any failure reasons.
func (e *Engine) syncCategory(ctx context.Context, orgID string, batch categoryBatch) (int, []string) {
	if len(batch.items) == 0 {
		return 0, nil
	}

	ops := make([]*models.DeviceWriteOp, len(batch.items))
	errs := make([]error, len(batch.items))
	e.pool.Run(ctx, len(batch.items), func(i int) {
		out, err := e.preparer.Prepare(orgID, batch.items[i], batch.spec)
		if err != nil {
			errs[i] = err
			return
		}
		if out.Op == nil {
			utils.GetLogger().Debug("device skipped",
				zap.String("orgId", orgID),
				zap.String("category", string(batch.spec.Category)),
				zap.String("reason", out.SkipReason))
			return
		}
		ops[i] = out.Op
	})

	var failures []string
	commit := make([]models.DeviceWriteOp, 0, len(ops))
	for i, op := range ops {
		if errs[i] != nil {
			failures = append(failures, errs[i].Error())
			continue
		}
		if op != nil {
			commit = append(commit, *op)
		}
	}

	applied, failed := e.writer.Commit(ctx, orgID, commit)
	if failed > 0 {
		failures = append(failures, fmt.Sprintf("%d write operations failed", failed))
	}
	return applied, failures
}
