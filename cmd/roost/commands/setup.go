package commands

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dyluth/roost/internal/agents"
	"github.com/dyluth/roost/internal/config"
	"github.com/dyluth/roost/internal/discovery"
	"github.com/dyluth/roost/internal/mission"
	"github.com/dyluth/roost/internal/probe"
	"github.com/dyluth/roost/internal/source"
	"github.com/dyluth/roost/pkg/blackboard"
)

// buildBoard selects the blackboard backend: Redis when configured, the
// in-memory board otherwise. The returned closer is nil for the memory
// board.
func buildBoard(cfg *config.RoostConfig) (blackboard.Board, func() error, error) {
	if cfg.Redis == nil || cfg.Redis.URL == "" {
		return blackboard.NewMemoryBoard(), nil, nil
	}

	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	board, err := blackboard.NewRedisBoard(opts, cfg.Mission)
	if err != nil {
		return nil, nil, err
	}

	return board, board.Close, nil
}

// buildDiscoveryEngine assembles the discovery engine from config.
func buildDiscoveryEngine(cfg *config.RoostConfig) *discovery.Engine {
	var static []*source.Endpoint
	for _, s := range cfg.Sources.Static {
		static = append(static, source.New(s.Address, s.Label, s.Network, s.DeclaredQuality))
	}

	var enumerators []discovery.Enumerator
	if len(static) > 0 {
		enumerators = append(enumerators, discovery.NewStaticEnumerator(static))
	}
	for _, url := range cfg.Sources.Registries {
		enumerators = append(enumerators, discovery.NewRegistryEnumerator(url))
	}

	return discovery.NewEngine(probe.New(probe.NewHTTPClient()), enumerators, discovery.Options{
		ProbeLimit:     *cfg.Probe.Concurrency,
		ProbeTimeout:   time.Duration(*cfg.Probe.TimeoutMs) * time.Millisecond,
		ScoreThreshold: *cfg.Probe.ScoreThreshold,
	})
}

// buildOrchestrator wires the four default agents into an orchestrator.
func buildOrchestrator(cfg *config.RoostConfig, board blackboard.Board) *mission.Orchestrator {
	return mission.New(board,
		agents.NewDiscoveryAgent(buildDiscoveryEngine(cfg)),
		agents.NewAcquisitionAgent(*cfg.Acquisition.SamplesPerSource),
		agents.NewAnalysisAgent(),
		agents.NewReportingAgent(cfg.Report.OutputDir),
	)
}
