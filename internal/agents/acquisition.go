package agents

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dyluth/roost/internal/source"
	"github.com/dyluth/roost/pkg/blackboard"
)

// AcquisitionAgent synthesizes sample records from the active source list.
// Sample content itself is out of band; the records carry enough metadata
// for analysis to work from.
type AcquisitionAgent struct {
	samplesPerSource int
}

// NewAcquisitionAgent creates an acquisition agent producing
// samplesPerSource records per active source (minimum 1).
func NewAcquisitionAgent(samplesPerSource int) *AcquisitionAgent {
	if samplesPerSource < 1 {
		samplesPerSource = 1
	}
	return &AcquisitionAgent{samplesPerSource: samplesPerSource}
}

// Name identifies the agent in logs.
func (a *AcquisitionAgent) Name() string {
	return "acquisition"
}

// Execute reads active_sources from the board and returns one batch of
// sample records. No active sources yields an empty batch.
func (a *AcquisitionAgent) Execute(ctx context.Context, board blackboard.Board) (any, error) {
	entry, err := board.Query(ctx, blackboard.KeyActiveSources)
	if err != nil {
		return nil, fmt.Errorf("discovery output not available: %w", err)
	}

	var sources []*source.Endpoint
	if err := entry.Decode(&sources); err != nil {
		return nil, err
	}

	samples := make([]Sample, 0, len(sources)*a.samplesPerSource)
	for _, src := range sources {
		for i := 0; i < a.samplesPerSource; i++ {
			samples = append(samples, Sample{
				ID:         uuid.New().String(),
				Filename:   fmt.Sprintf("%s_%02d.wav", slugify(src.Label), i+1),
				SourceAddr: src.Address,
				// Duration tracks source quality so downstream heuristics
				// have a deterministic signal to work from.
				DurationMs: int64(2000 + src.QualityScore*100),
				CapturedAt: time.Now().UTC(),
				Metadata: map[string]string{
					"network":       src.Network,
					"quality_score": fmt.Sprintf("%d", src.QualityScore),
				},
			})
		}
	}

	return samples, nil
}

// slugify renders a source label as a safe filename fragment.
func slugify(label string) string {
	s := strings.ToLower(strings.TrimSpace(label))
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, s)
	if s == "" {
		return "sample"
	}
	return s
}
