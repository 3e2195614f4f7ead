package blackboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedisKeyPatterns(t *testing.T) {
	assert.Equal(t, "roost:dawn:board:active_sources", BoardKey("dawn", KeyActiveSources))
	assert.Equal(t, "roost:dawn:board:samples:version", BoardVersionKey("dawn", KeySamples))
	assert.Equal(t, "roost:dawn:board_events", BoardEventsChannel("dawn"))
}

func TestMissionKeysOrder(t *testing.T) {
	assert.Equal(t, []string{
		KeyActiveSources,
		KeySamples,
		KeyAnalysisResults,
		KeyReportReady,
		KeyMissionStatus,
	}, MissionKeys())
}
