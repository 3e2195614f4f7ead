package probe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreReturnsDeclaredAtZeroLatency(t *testing.T) {
	for _, q := range []int{0, 1, 30, 85, 100} {
		assert.Equal(t, q, Score(q, 0), "Score(%d, 0)", q)
	}
}

func TestScoreIsNonIncreasingInLatency(t *testing.T) {
	latencies := []int64{0, 10, 39, 40, 100, 500, 1000, 1999, 2000, 3000, 10000}

	for _, q := range []int{0, 30, 85, 100} {
		prev := Score(q, latencies[0])
		for _, l := range latencies[1:] {
			cur := Score(q, l)
			assert.LessOrEqual(t, cur, prev, "Score(%d, %d) should not exceed score at lower latency", q, l)
			prev = cur
		}
	}
}

func TestScorePenalizesSlowEndpoints(t *testing.T) {
	// Multi-second latency must land below the default filter threshold (30)
	// even for a perfect declared quality.
	assert.Less(t, Score(100, 2000), 30)
	assert.Less(t, Score(100, 3000), 30)
	assert.Less(t, Score(85, 3000), 30)
}

func TestScoreClampsInputs(t *testing.T) {
	assert.Equal(t, 0, Score(-5, 0))
	assert.Equal(t, 100, Score(150, 0))
	assert.Equal(t, 0, Score(10, 60000))
}

func TestScoreIsDeterministic(t *testing.T) {
	for i := 0; i < 10; i++ {
		assert.Equal(t, Score(72, 340), Score(72, 340))
	}
}
