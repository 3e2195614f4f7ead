package mission

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/dyluth/roost/pkg/blackboard"
)

// State is the orchestrator's run-level state.
type State string

const (
	StateInit      State = "INIT"
	StateCompleted State = "COMPLETED"
	StateFailed    State = "FAILED"
)

// phaseSlot binds a phase to its agent and its output key on the board.
type phaseSlot struct {
	phase Phase
	key   string
	agent Agent
}

// Orchestrator sequences the four mission phases. Each phase invokes exactly
// one agent; all inter-agent data transfer happens through the board. The
// orchestrator owns the append-only execution log and produces the final
// mission report.
//
// Transitions are strictly forward-only. A failed run is not resumable;
// the caller starts a fresh orchestrator for a new attempt.
type Orchestrator struct {
	board     blackboard.Board
	missionID string
	slots     [NumPhases]phaseSlot
	execLog   []PhaseRecord
	state     State
	startedAt time.Time
}

// New creates an orchestrator over the four phase agents. Agents are
// injected here and never constructed internally, so test harnesses can
// substitute any of them.
func New(board blackboard.Board, discovery, acquisition, analysis, reporting Agent) *Orchestrator {
	return &Orchestrator{
		board:     board,
		missionID: uuid.New().String(),
		slots: [NumPhases]phaseSlot{
			{phase: PhaseDiscovery, key: blackboard.KeyActiveSources, agent: discovery},
			{phase: PhaseAcquisition, key: blackboard.KeySamples, agent: acquisition},
			{phase: PhaseAnalysis, key: blackboard.KeyAnalysisResults, agent: analysis},
			{phase: PhaseReporting, key: blackboard.KeyReportReady, agent: reporting},
		},
		state: StateInit,
	}
}

// MissionID returns the unique identifier of this run.
func (o *Orchestrator) MissionID() string {
	return o.missionID
}

// State returns the current run-level state: INIT before Execute, the
// active phase name (upper-cased) while running, then COMPLETED or FAILED.
func (o *Orchestrator) State() State {
	return o.state
}

// ExecutionLog returns a copy of the phase records appended so far.
func (o *Orchestrator) ExecutionLog() []PhaseRecord {
	execLog := make([]PhaseRecord, len(o.execLog))
	copy(execLog, o.execLog)
	return execLog
}

// Execute runs all phases in order and returns the final mission report.
// The first phase failure aborts the run: remaining phases are skipped, the
// report carries MISSION_FAILED, and the returned error is the *PhaseError.
// The caller bounds the whole run through ctx.
func (o *Orchestrator) Execute(ctx context.Context) (*Report, error) {
	if o.state != StateInit {
		return nil, fmt.Errorf("mission already executed (state %s); start a new orchestrator to retry", o.state)
	}

	o.startedAt = time.Now()
	o.logEvent("mission_started", map[string]interface{}{})

	for n := 1; n <= NumPhases; n++ {
		if err := o.ExecutePhase(ctx, n); err != nil {
			o.state = StateFailed
			report := o.buildReport(StatusMissionFailed)
			report.Err = err.Error()
			o.logEvent("mission_failed", map[string]interface{}{
				"phase": string(o.slots[n-1].phase),
				"error": err.Error(),
			})
			return report, err
		}
	}

	o.state = StateCompleted
	report := o.buildReport(StatusMissionCompleted)
	o.logEvent("mission_completed", map[string]interface{}{
		"execution_time_ms": report.ExecutionTime.Milliseconds(),
	})
	return report, nil
}

// ExecutePhase drives a single phase by number (discovery=1, acquisition=2,
// analysis=3, reporting=4). Exposed so external harnesses can step through
// a mission phase by phase; Execute uses it internally.
//
// On success the agent's output is stored under the phase key and a
// completed record is appended. On failure nothing is published for the
// phase and the returned error is a *PhaseError.
func (o *Orchestrator) ExecutePhase(ctx context.Context, n int) error {
	if n < 1 || n > NumPhases {
		return fmt.Errorf("invalid phase number %d: must be 1-%d", n, NumPhases)
	}

	slot := o.slots[n-1]
	o.state = State(phaseStateName(slot.phase))

	record := PhaseRecord{
		Phase:     slot.phase,
		Status:    PhaseStatusRunning,
		StartedAt: time.Now().UTC(),
	}

	o.logEvent("phase_started", map[string]interface{}{
		"phase": string(slot.phase),
		"agent": slot.agent.Name(),
	})

	output, err := slot.agent.Execute(ctx, o.board)
	if err == nil {
		// Publish only after the agent fully succeeded: a failed phase never
		// leaves partial output on the board.
		if storeErr := o.board.Store(ctx, slot.key, output); storeErr != nil {
			err = fmt.Errorf("failed to store phase output: %w", storeErr)
		}
	}

	record.EndedAt = time.Now().UTC()

	if err != nil {
		phaseErr := &PhaseError{Phase: slot.phase, Err: err}
		record.Status = PhaseStatusFailed
		record.Err = phaseErr.Error()
		o.execLog = append(o.execLog, record)
		o.signalStatus(ctx, slot.phase, PhaseStatusFailed)
		return phaseErr
	}

	record.Status = PhaseStatusCompleted
	o.execLog = append(o.execLog, record)
	o.signalStatus(ctx, slot.phase, PhaseStatusCompleted)

	o.logEvent("phase_completed", map[string]interface{}{
		"phase":       string(slot.phase),
		"agent":       slot.agent.Name(),
		"duration_ms": record.Duration().Milliseconds(),
	})

	return nil
}

// signalStatus publishes the per-phase progress signal. Observer-only, so a
// signalling failure is logged rather than failing the phase.
func (o *Orchestrator) signalStatus(ctx context.Context, phase Phase, status PhaseStatus) {
	err := o.board.Signal(ctx, blackboard.KeyMissionStatus, map[string]string{
		"mission_id": o.missionID,
		"phase":      string(phase),
		"status":     string(status),
		"at":         time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		log.Printf("[Mission] Failed to signal mission status: %v", err)
	}
}

// buildReport assembles the final report from the execution log and the
// board's published keys.
func (o *Orchestrator) buildReport(status string) *Report {
	completed := 0
	for _, rec := range o.execLog {
		if rec.Status == PhaseStatusCompleted {
			completed++
		}
	}

	report := &Report{
		Status:          status,
		MissionID:       o.missionID,
		ExecutionTime:   time.Since(o.startedAt),
		PhasesCompleted: completed,
		AgentsExecuted:  len(o.execLog),
		ExecutionLog:    o.ExecutionLog(),
		Summary:         o.buildSummary(),
	}

	if status == StatusMissionCompleted {
		report.DashboardURL = o.dashboardURL()
	}

	return report
}

// buildSummary derives per-phase counts from whatever made it onto the
// board. Keys a failed run never reached simply count zero.
func (o *Orchestrator) buildSummary() Summary {
	return Summary{
		SourcesDiscovered: o.countEntries(blackboard.KeyActiveSources),
		SamplesAcquired:   o.countEntries(blackboard.KeySamples),
		SamplesAnalyzed:   o.countEntries(blackboard.KeyAnalysisResults),
	}
}

// countEntries returns the element count of a list-valued board key.
func (o *Orchestrator) countEntries(key string) int {
	entry, err := o.board.Query(context.Background(), key)
	if err != nil {
		return 0
	}

	var items []json.RawMessage
	if err := entry.Decode(&items); err != nil {
		return 0
	}
	return len(items)
}

// dashboardURL reads the reporting phase's published URL.
func (o *Orchestrator) dashboardURL() string {
	entry, err := o.board.Query(context.Background(), blackboard.KeyReportReady)
	if err != nil {
		return ""
	}

	var ready struct {
		URL string `json:"url"`
	}
	if err := entry.Decode(&ready); err != nil {
		return ""
	}
	return ready.URL
}

// phaseStateName maps a phase to its run-state spelling.
func phaseStateName(p Phase) string {
	switch p {
	case PhaseDiscovery:
		return "DISCOVERY"
	case PhaseAcquisition:
		return "ACQUISITION"
	case PhaseAnalysis:
		return "ANALYSIS"
	case PhaseReporting:
		return "REPORTING"
	default:
		return string(p)
	}
}

// logEvent logs a structured event in JSON format.
func (o *Orchestrator) logEvent(eventType string, data map[string]interface{}) {
	data["timestamp"] = time.Now().UTC().Format(time.RFC3339)
	data["level"] = "info"
	data["component"] = "mission"
	data["event_type"] = eventType
	data["mission_id"] = o.missionID

	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Printf("[Mission] Failed to marshal log event: %v", err)
		return
	}

	log.Println(string(jsonData))
}
