package inspect

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dyluth/roost/pkg/blackboard"
)

// GetEntry retrieves a single board entry and writes it as pretty-printed JSON
// to the writer. The key may be abbreviated to any unambiguous prefix of a
// well-known mission key, so 'roost board get act' resolves to active_sources.
func GetEntry(ctx context.Context, b blackboard.Board, key string, w io.Writer) error {
	resolved, err := ResolveKey(key)
	if err != nil {
		return err
	}

	entry, err := b.Query(ctx, resolved)
	if err != nil {
		if blackboard.IsNotFound(err) {
			return &EntryNotFoundError{Key: resolved}
		}
		return fmt.Errorf("failed to fetch board entry: %w", err)
	}

	return FormatSingleJSON(w, entry)
}

// ResolveKey resolves a key or key prefix to a full well-known mission key.
// Returns the full key if exactly one match is found, and an error if zero or
// multiple keys match the prefix.
func ResolveKey(prefix string) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("empty board key")
	}

	var matches []string
	for _, key := range blackboard.MissionKeys() {
		if key == prefix {
			return key, nil
		}
		if strings.HasPrefix(key, prefix) {
			matches = append(matches, key)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("unknown board key '%s' (known keys: %s)",
			prefix, strings.Join(blackboard.MissionKeys(), ", "))
	case 1:
		return matches[0], nil
	default:
		return "", &AmbiguousKeyError{Prefix: prefix, Matches: matches}
	}
}

// EntryNotFoundError indicates the resolved key has not been written yet.
type EntryNotFoundError struct {
	Key string
}

func (e *EntryNotFoundError) Error() string {
	return fmt.Sprintf("board key '%s' has no entry yet", e.Key)
}

// IsNotFound returns true if the error is an EntryNotFoundError.
func IsNotFound(err error) bool {
	_, ok := err.(*EntryNotFoundError)
	return ok
}

// AmbiguousKeyError indicates multiple well-known keys matched the prefix.
type AmbiguousKeyError struct {
	Prefix  string
	Matches []string
}

func (e *AmbiguousKeyError) Error() string {
	return fmt.Sprintf("ambiguous board key '%s' matches %s (use a longer prefix)",
		e.Prefix, strings.Join(e.Matches, ", "))
}
