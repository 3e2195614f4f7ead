package timespec

import (
	"fmt"
	"time"
)

// Parse parses a deadline specification into an absolute time.
// Supports two formats:
//   - Go duration format: "1h", "30m", "1h30m", "2h45m30s"
//   - RFC3339 timestamps: "2026-08-29T13:00:00Z"
//
// Duration specifications are relative to now (added to it).
// For example, "10m" means "10 minutes from now".
func Parse(spec string, now time.Time) (time.Time, error) {
	if spec == "" {
		return time.Time{}, fmt.Errorf("empty deadline specification")
	}

	// Try parsing as RFC3339 first
	if t, err := time.Parse(time.RFC3339, spec); err == nil {
		return t, nil
	}

	// Try parsing as Go duration
	if d, err := time.ParseDuration(spec); err == nil {
		if d <= 0 {
			return time.Time{}, fmt.Errorf("deadline duration must be positive: %s", spec)
		}
		return now.Add(d), nil
	}

	return time.Time{}, fmt.Errorf("invalid deadline specification: %s (use duration like '1h30m' or RFC3339 like '2026-08-29T13:00:00Z')", spec)
}

// ParseFuture parses a deadline specification and validates that it lies in
// the future relative to now. RFC3339 deadlines already in the past are the
// common mistake this catches.
func ParseFuture(spec string, now time.Time) (time.Time, error) {
	deadline, err := Parse(spec, now)
	if err != nil {
		return time.Time{}, err
	}

	if !deadline.After(now) {
		return time.Time{}, fmt.Errorf("deadline %s is not in the future", deadline.Format(time.RFC3339))
	}

	return deadline, nil
}
