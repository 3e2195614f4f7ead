// Package blackboard provides the shared coordination store for a roost
// mission. The blackboard is the only shared mutable state in the system:
// the orchestrator and its agents never call each other directly, they hand
// data between phases by storing and querying well-known keys.
//
// # Core Concepts
//
// A Board holds versioned entries keyed by string. Store atomically replaces
// the entry for a key and bumps its version; Query returns the latest entry
// or ErrKeyNotFound. Signal is the event-flavoured spelling of Store - same
// mechanism, different convention. WaitFor blocks until an entry satisfies a
// predicate or a timeout elapses, returning CoordinationTimeoutError on the
// latter. Every Store wakes all waiters on the key; each waiter re-evaluates
// its own predicate, so there is no single-consumer guarantee.
//
// Values are JSON-encoded on Store so both implementations expose the same
// shape to consumers; Entry.Decode unmarshals back into a typed value.
//
// # Implementations
//
// MemoryBoard is the default: in-process, run-scoped, no external services.
// RedisBoard stores entries in Redis with keys namespaced by mission name
// (roost:{mission}:board:{key}) and uses Pub/Sub to wake waiters, allowing a
// running mission's blackboard to be inspected from outside the process.
//
// # Usage Example
//
//	board := blackboard.NewMemoryBoard()
//
//	if err := board.Store(ctx, blackboard.KeyActiveSources, endpoints); err != nil {
//		return err
//	}
//
//	entry, err := board.WaitFor(ctx, blackboard.KeySamples, func(e *blackboard.Entry) bool {
//		var samples []Sample
//		return e.Decode(&samples) == nil && len(samples) >= 3
//	}, 30*time.Second)
package blackboard
