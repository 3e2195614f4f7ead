package agents

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dyluth/roost/pkg/blackboard"
)

// acceptanceBar is the confidence a sample needs to be counted as a match.
const acceptanceBar = 0.5

// AnalysisAgent scores each acquired sample with a species-match
// confidence. The heuristic is deterministic: the same sample always
// produces the same confidence, which keeps analysis testable.
type AnalysisAgent struct{}

// NewAnalysisAgent creates an analysis agent.
func NewAnalysisAgent() *AnalysisAgent {
	return &AnalysisAgent{}
}

// Name identifies the agent in logs.
func (a *AnalysisAgent) Name() string {
	return "analysis"
}

// Execute reads samples from the board and returns one result per sample.
func (a *AnalysisAgent) Execute(ctx context.Context, board blackboard.Board) (any, error) {
	entry, err := board.Query(ctx, blackboard.KeySamples)
	if err != nil {
		return nil, fmt.Errorf("acquisition output not available: %w", err)
	}

	var samples []Sample
	if err := entry.Decode(&samples); err != nil {
		return nil, err
	}

	results := make([]AnalysisResult, 0, len(samples))
	for _, sample := range samples {
		confidence := confidenceFor(sample)
		results = append(results, AnalysisResult{
			SampleID:   sample.ID,
			Confidence: confidence,
			Accepted:   confidence >= acceptanceBar,
		})
	}

	return results, nil
}

// confidenceFor derives a 0.0-1.0 species-match confidence from the
// sample's source quality and duration. Longer recordings from better
// sources score higher.
func confidenceFor(sample Sample) float64 {
	quality := 0
	if q, err := strconv.Atoi(sample.Metadata["quality_score"]); err == nil {
		quality = q
	}
	if quality < 0 {
		quality = 0
	}
	if quality > 100 {
		quality = 100
	}

	// Duration contributes up to 0.3; ten seconds or more maxes it out.
	durationFactor := float64(sample.DurationMs) / 10000.0
	if durationFactor > 1 {
		durationFactor = 1
	}

	confidence := float64(quality)/100.0*0.7 + durationFactor*0.3
	if confidence > 1 {
		confidence = 1
	}
	return confidence
}
