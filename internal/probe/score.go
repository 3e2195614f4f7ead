package probe

const (
	// latencyPenaltyMs is the latency cost of one quality point.
	latencyPenaltyMs = 40

	// slowLatencyMs marks an endpoint as too slow for acquisition.
	slowLatencyMs = 2000

	// slowScoreCap keeps multi-second endpoints below the default
	// discovery filter threshold regardless of declared quality.
	slowScoreCap = 25
)

// Score computes the quality score for an endpoint from its self-reported
// baseline quality (0-100) and measured probe latency. The function is pure:
// same inputs always produce the same output.
//
// Properties: Score(q, 0) == q for q in 0-100; non-increasing as latency
// grows with q fixed; latencies at or above slowLatencyMs score below the
// default filter threshold even for a perfect baseline.
func Score(declaredQuality int, latencyMs int64) int {
	score := declaredQuality
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	score -= int(latencyMs / latencyPenaltyMs)

	if latencyMs >= slowLatencyMs && score > slowScoreCap {
		score = slowScoreCap
	}

	if score < 0 {
		score = 0
	}

	return score
}
