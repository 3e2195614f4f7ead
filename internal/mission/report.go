package mission

import "time"

// Mission outcome statuses.
const (
	StatusMissionCompleted = "MISSION_COMPLETED"
	StatusMissionFailed    = "MISSION_FAILED"
)

// Summary carries the derived per-phase counts for a completed run.
type Summary struct {
	SourcesDiscovered int `json:"sources_discovered"`
	SamplesAcquired   int `json:"samples_acquired"`
	SamplesAnalyzed   int `json:"samples_analyzed"`
}

// Report is the final mission report returned by Execute.
//
// On MISSION_COMPLETED: PhasesCompleted and AgentsExecuted are both 4 and
// DashboardURL points at the rendered report. On MISSION_FAILED: the
// execution log covers exactly the phases attempted, and Err carries the
// triggering failure.
type Report struct {
	Status          string        `json:"status"`
	MissionID       string        `json:"mission_id"`
	ExecutionTime   time.Duration `json:"execution_time"`
	PhasesCompleted int           `json:"phases_completed"`
	AgentsExecuted  int           `json:"agents_executed"`
	ExecutionLog    []PhaseRecord `json:"execution_log"`
	Summary         Summary       `json:"summary"`
	DashboardURL    string        `json:"dashboard_url,omitempty"`
	Err             string        `json:"error,omitempty"`
}
