package source

import (
	"fmt"
	"time"
)

// Status is the probed liveness state of an endpoint.
// Endpoints start as unknown and move to online or offline after a probe.
type Status string

const (
	// StatusUnknown indicates the endpoint has not been probed yet
	StatusUnknown Status = "unknown"

	// StatusOnline indicates the last probe succeeded within its deadline
	StatusOnline Status = "online"

	// StatusOffline indicates the last probe failed or timed out
	StatusOffline Status = "offline"
)

// Endpoint describes one remote sample source and its probed health.
// Enumerators produce endpoints with QualityScore 0 and StatusUnknown;
// the probe engine fills in the mutable fields. Once an endpoint list is
// published to the blackboard it is treated as read-only.
type Endpoint struct {
	Address         string    `json:"address"`                    // Unique URL of the source
	Label           string    `json:"label"`                      // Human-readable name
	Network         string    `json:"network"`                    // Declared network/family tag (e.g. "xeno-canto")
	DeclaredQuality int       `json:"declared_quality"`           // Self-reported baseline quality, 0-100
	QualityScore    int       `json:"quality_score"`              // Computed ranking, 0-100; 0 until probed
	Status          Status    `json:"status"`                     // unknown | online | offline
	ResponseTimeMs  int64     `json:"response_time_ms,omitempty"` // Measured probe latency; only set when online
	Err             string    `json:"error,omitempty"`            // Diagnostic from the last failed probe
	LastChecked     time.Time `json:"last_checked,omitempty"`     // When the endpoint was last probed
}

// New creates an unprobed endpoint with the given identity fields.
func New(address, label, network string, declaredQuality int) *Endpoint {
	return &Endpoint{
		Address:         address,
		Label:           label,
		Network:         network,
		DeclaredQuality: declaredQuality,
		Status:          StatusUnknown,
	}
}

// Validate checks if the Endpoint has valid field values.
// Returns an error if any validation fails.
func (e *Endpoint) Validate() error {
	if e.Address == "" {
		return fmt.Errorf("endpoint address cannot be empty")
	}

	if e.DeclaredQuality < 0 || e.DeclaredQuality > 100 {
		return fmt.Errorf("declared quality out of range: must be 0-100, got %d", e.DeclaredQuality)
	}

	if e.QualityScore < 0 || e.QualityScore > 100 {
		return fmt.Errorf("quality score out of range: must be 0-100, got %d", e.QualityScore)
	}

	if err := e.Status.Validate(); err != nil {
		return fmt.Errorf("invalid status: %w", err)
	}

	return nil
}

// Validate checks if the Status is a valid enum value.
func (s Status) Validate() error {
	switch s {
	case StatusUnknown, StatusOnline, StatusOffline:
		return nil
	default:
		return fmt.Errorf("unknown status: %q", s)
	}
}

// Dedupe removes endpoints with duplicate addresses, keeping the first
// occurrence of each address. Order is otherwise preserved.
func Dedupe(endpoints []*Endpoint) []*Endpoint {
	seen := make(map[string]bool, len(endpoints))
	deduped := make([]*Endpoint, 0, len(endpoints))

	for _, ep := range endpoints {
		if seen[ep.Address] {
			continue
		}
		seen[ep.Address] = true
		deduped = append(deduped, ep)
	}

	return deduped
}
