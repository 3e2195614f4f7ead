// Package mission drives the end-to-end pipeline as an ordered state
// machine: discovery, acquisition, analysis, reporting. Phases execute
// strictly one after another and hand data to each other exclusively
// through the blackboard.
package mission

import (
	"context"
	"fmt"
	"time"

	"github.com/dyluth/roost/pkg/blackboard"
)

// Phase names, in execution order.
type Phase string

const (
	PhaseDiscovery   Phase = "discovery"
	PhaseAcquisition Phase = "acquisition"
	PhaseAnalysis    Phase = "analysis"
	PhaseReporting   Phase = "reporting"
)

// NumPhases is the number of phases in a complete run.
const NumPhases = 4

// PhaseStatus is the lifecycle state of one phase record.
type PhaseStatus string

const (
	PhaseStatusPending   PhaseStatus = "pending"
	PhaseStatusRunning   PhaseStatus = "running"
	PhaseStatusCompleted PhaseStatus = "completed"
	PhaseStatusFailed    PhaseStatus = "failed"
)

// PhaseRecord is one entry in the orchestrator's append-only execution log.
// Records are finalized before being appended and never mutated afterwards.
type PhaseRecord struct {
	Phase     Phase       `json:"phase"`
	Status    PhaseStatus `json:"status"`
	StartedAt time.Time   `json:"started_at"`
	EndedAt   time.Time   `json:"ended_at"`
	Err       string      `json:"error,omitempty"`
}

// Duration returns the phase's wall-clock execution time.
func (r *PhaseRecord) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}

// Agent is one phase's collaborator. Execute reads its inputs from the
// board, does its work, and returns the phase output; the orchestrator is
// responsible for storing that output under the phase's key. Retry, if any,
// is the agent's own concern before it returns.
type Agent interface {
	// Name identifies the agent in logs and error messages.
	Name() string

	// Execute performs the agent's work for one phase.
	Execute(ctx context.Context, board blackboard.Board) (any, error)
}

// AgentFunc adapts a function to the Agent interface.
type AgentFunc struct {
	AgentName string
	Fn        func(ctx context.Context, board blackboard.Board) (any, error)
}

func (a AgentFunc) Name() string { return a.AgentName }

func (a AgentFunc) Execute(ctx context.Context, board blackboard.Board) (any, error) {
	return a.Fn(ctx, board)
}

// PhaseError wraps a collaborator failure with its phase context. The
// orchestrator does not recover phase failures; they terminate the run.
type PhaseError struct {
	Phase Phase
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("phase %s failed: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}
