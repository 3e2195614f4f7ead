package agents

import (
	"context"

	"github.com/dyluth/roost/internal/discovery"
	"github.com/dyluth/roost/pkg/blackboard"
)

// DiscoveryAgent adapts the discovery engine to the mission Agent contract.
type DiscoveryAgent struct {
	engine *discovery.Engine
}

// NewDiscoveryAgent wraps a discovery engine.
func NewDiscoveryAgent(engine *discovery.Engine) *DiscoveryAgent {
	return &DiscoveryAgent{engine: engine}
}

// Name identifies the agent in logs.
func (a *DiscoveryAgent) Name() string {
	return "discovery"
}

// Execute runs discovery and returns the usable endpoint list. An empty
// list is a valid output: whether zero usable sources is fatal is the next
// phase's decision, not discovery's.
func (a *DiscoveryAgent) Execute(ctx context.Context, board blackboard.Board) (any, error) {
	return a.engine.Discover(ctx)
}
