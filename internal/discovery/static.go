package discovery

import (
	"context"

	"github.com/dyluth/roost/internal/source"
)

// StaticEnumerator serves a fixed endpoint list, typically the sources
// block of roost.yml. It never fails.
type StaticEnumerator struct {
	endpoints []*source.Endpoint
}

// NewStaticEnumerator creates an enumerator over a fixed endpoint list.
func NewStaticEnumerator(endpoints []*source.Endpoint) *StaticEnumerator {
	return &StaticEnumerator{endpoints: endpoints}
}

// Name identifies the enumerator in logs.
func (s *StaticEnumerator) Name() string {
	return "static"
}

// Enumerate returns fresh unprobed copies of the configured endpoints, so
// repeated discovery runs never see mutations from earlier probe cycles.
func (s *StaticEnumerator) Enumerate(ctx context.Context) ([]*source.Endpoint, error) {
	endpoints := make([]*source.Endpoint, 0, len(s.endpoints))
	for _, ep := range s.endpoints {
		endpoints = append(endpoints, source.New(ep.Address, ep.Label, ep.Network, ep.DeclaredQuality))
	}
	return endpoints, nil
}
