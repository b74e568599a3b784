package models

import "time"

// WriteAction discriminates the two kinds of prepared device writes.
type WriteAction string

const (
	WriteActionUpdate WriteAction = "update"
	WriteActionCreate WriteAction = "create"
)

// DeviceWriteOp is one prepared write against the device collection. Produced
// by the upsert preparer, consumed by the batched writer, never persisted.
// Updates target an existing record by id; creates carry the serial number and
// receive a generated id from the writer at commit time.
type DeviceWriteOp struct {
	Action       WriteAction
	TargetID     string
	SerialNumber string
	Fields       map[string]interface{}
}

// RunOutcome is the terminal state of one organization's pipeline invocation.
type RunOutcome string

const (
	RunSucceeded       RunOutcome = "succeeded"
	RunPartiallyFailed RunOutcome = "partially_failed"
)

// RunNote records a scoped failure (one category, one endpoint family) inside
// an otherwise surviving run. Notes never abort the run; they are reported and
// pushed to org admins.
type RunNote struct {
	Scope  string `json:"scope"`
	Reason string `json:"reason"`
}

// RunReport summarizes one organization's pipeline invocation.
type RunReport struct {
	OrgID      string     `json:"orgId"`
	Pipeline   string     `json:"pipeline"`
	Outcome    RunOutcome `json:"outcome"`
	Processed  int        `json:"processed"`
	Notes      []RunNote  `json:"notes,omitempty"`
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt time.Time  `json:"finishedAt"`
}

// AddNote appends a scoped failure and downgrades the outcome.
func (r *RunReport) AddNote(scope, reason string) {
	r.Notes = append(r.Notes, RunNote{Scope: scope, Reason: reason})
	r.Outcome = RunPartiallyFailed
}
