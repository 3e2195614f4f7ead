package blackboard

import "fmt"

// Well-known coordination keys.
//
// Each phase of a mission writes exactly one of these keys on success; the
// next phase's agent reads it. MissionStatus is a signal-convention key the
// orchestrator updates as phases complete, for observers such as the CLI.
const (
	// KeyActiveSources holds the filtered, ordered endpoint list from discovery.
	KeyActiveSources = "active_sources"

	// KeySamples holds the sample records produced by acquisition.
	KeySamples = "samples"

	// KeyAnalysisResults holds per-sample analysis results.
	KeyAnalysisResults = "analysis_results"

	// KeyReportReady holds the {url} record published by reporting.
	KeyReportReady = "report_ready"

	// KeyMissionStatus is signalled by the orchestrator after every phase.
	KeyMissionStatus = "mission_status"
)

// MissionKeys returns every well-known coordination key in phase order,
// ending with the status key. Inspection tooling iterates this list because
// the Board interface deliberately has no key enumeration.
func MissionKeys() []string {
	return []string{
		KeyActiveSources,
		KeySamples,
		KeyAnalysisResults,
		KeyReportReady,
		KeyMissionStatus,
	}
}

// Redis key pattern helpers
//
// All Redis keys and the Pub/Sub channel are namespaced by mission name so
// multiple missions can safely share a single Redis server.
//
// Key pattern: roost:{mission}:board:{key}
// Channel pattern: roost:{mission}:board_events

// BoardKey returns the Redis key holding a blackboard entry.
// Pattern: roost:{mission}:board:{key}
func BoardKey(mission, key string) string {
	return fmt.Sprintf("roost:%s:board:%s", mission, key)
}

// BoardVersionKey returns the Redis key holding a key's version counter.
// Pattern: roost:{mission}:board:{key}:version
func BoardVersionKey(mission, key string) string {
	return fmt.Sprintf("roost:%s:board:%s:version", mission, key)
}

// BoardEventsChannel returns the Pub/Sub channel name for store events.
// The published payload is the blackboard key that changed.
// Pattern: roost:{mission}:board_events
func BoardEventsChannel(mission string) string {
	return fmt.Sprintf("roost:%s:board_events", mission)
}
