package probe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dyluth/roost/internal/source"
)

// Prober runs bounded-concurrency liveness probes over endpoint lists.
// It has no state beyond the injected client and is safe for concurrent use.
type Prober struct {
	client Client
}

// New creates a prober that checks endpoints with the given client.
func New(client Client) *Prober {
	return &Prober{client: client}
}

// ProbeAll probes every endpoint in the list, mutating each descriptor in
// place, and returns once all probes have resolved.
//
// At most limit probes are in flight at any moment: a fixed pool of workers
// pulls endpoints from a shared queue, so a slow host delays only its own
// worker and the pool size is independent of len(endpoints). Each probe is
// bound to its own perProbeTimeout; no probe can stall the pool.
//
// Cancelling ctx abandons endpoints still queued (they keep their unknown
// status) and returns ctx.Err() so callers do not publish partial results.
func (p *Prober) ProbeAll(ctx context.Context, endpoints []*source.Endpoint, limit int, perProbeTimeout time.Duration) error {
	if limit < 1 {
		return fmt.Errorf("concurrency limit must be >= 1, got %d", limit)
	}

	if len(endpoints) == 0 {
		return nil
	}

	workers := limit
	if workers > len(endpoints) {
		workers = len(endpoints)
	}

	queue := make(chan *source.Endpoint)

	var g errgroup.Group
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for ep := range queue {
				p.probeOne(ctx, ep, perProbeTimeout)
			}
			return nil
		})
	}

feed:
	for _, ep := range endpoints {
		select {
		case queue <- ep:
		case <-ctx.Done():
			break feed
		}
	}
	close(queue)

	if err := g.Wait(); err != nil {
		return err
	}

	return ctx.Err()
}

// probeOne runs a single bounded-time probe and folds the outcome into the
// endpoint descriptor. Probe failures are recovered here, never returned.
func (p *Prober) probeOne(ctx context.Context, ep *source.Endpoint, timeout time.Duration) {
	probeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	latency, err := p.client.Check(probeCtx, ep.Address)
	ep.LastChecked = time.Now().UTC()

	if err != nil {
		ep.Status = source.StatusOffline
		ep.QualityScore = 0
		ep.ResponseTimeMs = 0
		ep.Err = failureReason(err, timeout)
		return
	}

	ep.Status = source.StatusOnline
	ep.ResponseTimeMs = latency.Milliseconds()
	ep.QualityScore = Score(ep.DeclaredQuality, ep.ResponseTimeMs)
	ep.Err = ""
}

// failureReason renders a probe error for the endpoint's diagnostic field,
// distinguishing deadline expiry from connection failures.
func failureReason(err error, timeout time.Duration) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Sprintf("probe timeout after %s", timeout)
	}
	return fmt.Sprintf("probe failed: %v", err)
}
