package discovery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/dyluth/roost/internal/probe"
	"github.com/dyluth/roost/internal/source"
)

// ErrDiscoveryExhausted is returned by Discover when every registered
// enumerator failed, leaving no candidates at all.
var ErrDiscoveryExhausted = errors.New("discovery exhausted: all source enumerators failed")

// Options tunes the discovery pipeline.
type Options struct {
	ProbeLimit     int           // Max concurrent probes (default 5)
	ProbeTimeout   time.Duration // Per-probe deadline (default 4s)
	ScoreThreshold int           // Endpoints must score strictly above this (default 30)
}

// DefaultOptions returns the standard discovery tuning.
func DefaultOptions() Options {
	return Options{
		ProbeLimit:     5,
		ProbeTimeout:   4 * time.Second,
		ScoreThreshold: 30,
	}
}

// Engine aggregates candidates from its enumerators, probes them, and ranks
// the survivors. Collaborators are injected at construction; nothing is
// hard-wired.
type Engine struct {
	enumerators []Enumerator
	prober      *probe.Prober
	opts        Options
}

// NewEngine creates a discovery engine. Zero-valued Options fields fall back
// to DefaultOptions.
func NewEngine(prober *probe.Prober, enumerators []Enumerator, opts Options) *Engine {
	defaults := DefaultOptions()
	if opts.ProbeLimit <= 0 {
		opts.ProbeLimit = defaults.ProbeLimit
	}
	if opts.ProbeTimeout <= 0 {
		opts.ProbeTimeout = defaults.ProbeTimeout
	}
	if opts.ScoreThreshold <= 0 {
		opts.ScoreThreshold = defaults.ScoreThreshold
	}

	return &Engine{
		enumerators: enumerators,
		prober:      prober,
		opts:        opts,
	}
}

// Discover returns the ordered list of usable endpoints: every entry is
// online with a quality score strictly above the threshold, sorted by score
// descending with ties broken by lower response time.
//
// A single failing enumerator is logged and skipped; discovery only fails
// outright when all enumerators fail (ErrDiscoveryExhausted) or the probe
// run is cancelled. Zero survivors is an empty list, not an error - the
// caller decides whether that is fatal.
func (e *Engine) Discover(ctx context.Context) ([]*source.Endpoint, error) {
	if len(e.enumerators) == 0 {
		return nil, ErrDiscoveryExhausted
	}

	// Step 1: enumeration with per-source failure isolation.
	var candidates []*source.Endpoint
	failures := 0
	for _, enum := range e.enumerators {
		endpoints, err := enum.Enumerate(ctx)
		if err != nil {
			failures++
			e.logEvent("enumerator_failed", map[string]interface{}{
				"enumerator": enum.Name(),
				"error":      err.Error(),
			})
			continue
		}

		e.logEvent("enumerator_completed", map[string]interface{}{
			"enumerator": enum.Name(),
			"candidates": len(endpoints),
		})
		candidates = append(candidates, endpoints...)
	}

	if failures == len(e.enumerators) {
		return nil, ErrDiscoveryExhausted
	}

	candidates = source.Dedupe(candidates)

	// Step 2: concurrent probing under the configured ceiling.
	if err := e.prober.ProbeAll(ctx, candidates, e.opts.ProbeLimit, e.opts.ProbeTimeout); err != nil {
		return nil, fmt.Errorf("probe run aborted: %w", err)
	}

	// Step 3: filter and rank.
	usable := make([]*source.Endpoint, 0, len(candidates))
	for _, ep := range candidates {
		if ep.Status != source.StatusOnline || ep.QualityScore <= e.opts.ScoreThreshold {
			continue
		}
		usable = append(usable, ep)
	}

	sort.SliceStable(usable, func(i, j int) bool {
		if usable[i].QualityScore != usable[j].QualityScore {
			return usable[i].QualityScore > usable[j].QualityScore
		}
		return usable[i].ResponseTimeMs < usable[j].ResponseTimeMs
	})

	e.logEvent("discovery_completed", map[string]interface{}{
		"candidates": len(candidates),
		"usable":     len(usable),
	})

	return usable, nil
}

// logEvent logs a structured event in JSON format.
func (e *Engine) logEvent(eventType string, data map[string]interface{}) {
	data["timestamp"] = time.Now().UTC().Format(time.RFC3339)
	data["level"] = "info"
	data["component"] = "discovery"
	data["event_type"] = eventType

	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Printf("[Discovery] Failed to marshal log event: %v", err)
		return
	}

	log.Println(string(jsonData))
}
