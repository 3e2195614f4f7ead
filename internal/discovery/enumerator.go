// Package discovery produces the authoritative, filtered list of usable
// sample sources. It aggregates candidates from pluggable enumerators,
// probes them concurrently, and ranks the survivors by quality score.
package discovery

import (
	"context"

	"github.com/dyluth/roost/internal/source"
)

// Enumerator lists candidate endpoints from one kind of source (a static
// config list, a remote registry, ...). Enumerators return unprobed
// endpoints: QualityScore 0, StatusUnknown.
//
// An enumerator failure is isolated by the engine; it never aborts
// discovery unless every enumerator fails.
type Enumerator interface {
	// Name identifies the enumerator in logs and error messages.
	Name() string

	// Enumerate returns the endpoints this source type currently knows about.
	Enumerate(ctx context.Context) ([]*source.Endpoint, error)
}
