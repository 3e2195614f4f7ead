package inspect

import (
	"context"
	"fmt"
	"io"

	"github.com/dyluth/roost/pkg/blackboard"
)

// ListEntries queries every well-known mission key on the board and writes the
// entries that exist to the provided writer. Keys that have not been written
// yet are skipped rather than treated as errors: early in a mission most keys
// are absent.
func ListEntries(ctx context.Context, b blackboard.Board, mission string, format OutputFormat, w io.Writer) error {
	var entries []*blackboard.Entry
	for _, key := range blackboard.MissionKeys() {
		entry, err := b.Query(ctx, key)
		if err != nil {
			if blackboard.IsNotFound(err) {
				continue
			}
			return fmt.Errorf("failed to query board key '%s': %w", key, err)
		}
		entries = append(entries, entry)
	}

	switch format {
	case OutputFormatJSONL:
		return FormatJSONL(w, entries)
	default:
		FormatTable(w, entries, mission)
		return nil
	}
}
