// Package agents provides the default collaborator agents for each mission
// phase. Each agent reads its inputs from the blackboard and returns its
// phase output; the orchestrator publishes that output under the phase key.
package agents

import "time"

// Sample is one acquired recording record.
type Sample struct {
	ID         string            `json:"id"`
	Filename   string            `json:"filename"`
	SourceAddr string            `json:"source_addr"`
	DurationMs int64             `json:"duration_ms"`
	CapturedAt time.Time         `json:"captured_at"`
	Metadata   map[string]string `json:"metadata"`
}

// AnalysisResult is the per-sample outcome of the analysis phase.
type AnalysisResult struct {
	SampleID   string  `json:"sample_id"`
	Confidence float64 `json:"confidence"` // Species-match confidence, 0.0-1.0
	Accepted   bool    `json:"accepted"`   // Confidence cleared the acceptance bar
}

// ReportOutput is the reporting phase's published record.
type ReportOutput struct {
	URL string `json:"url"`
}
