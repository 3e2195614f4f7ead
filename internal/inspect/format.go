package inspect

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dyluth/roost/pkg/blackboard"
)

// OutputFormat specifies how to format board entry output.
type OutputFormat string

const (
	// OutputFormatDefault uses a table format with truncated values
	OutputFormatDefault OutputFormat = "default"

	// OutputFormatJSONL outputs complete entries as line-delimited JSON
	OutputFormatJSONL OutputFormat = "jsonl"
)

// FormatTable writes board entries as a formatted table to the provided writer.
// Columns: KEY, VERSION, and VALUE (truncated). Returns the number of entries
// formatted.
func FormatTable(w io.Writer, entries []*blackboard.Entry, mission string) int {
	if len(entries) == 0 {
		fmt.Fprintf(w, "No board entries found for mission '%s'\n", mission)
		return 0
	}

	fmt.Fprintf(w, "Board entries for mission '%s':\n\n", mission)

	fmt.Fprintf(w, "%-18s %-5s %s\n", "KEY", "VER", "VALUE")
	fmt.Fprintf(w, "%-18s %-5s %s\n",
		"------------------", "-----", "----------------------------------------")

	for _, e := range entries {
		fmt.Fprintf(w, "%-18s %-5d %s\n", e.Key, e.Version, formatValue(e.Value))
	}

	countMsg := "entry"
	if len(entries) != 1 {
		countMsg = "entries"
	}
	fmt.Fprintf(w, "\n%d %s found\n", len(entries), countMsg)

	return len(entries)
}

// FormatJSONL writes entries as line-delimited JSON (JSONL) to the provided
// writer. Each entry is written as a single JSON object on its own line, which
// makes the output easy to process with tools like jq.
func FormatJSONL(w io.Writer, entries []*blackboard.Entry) error {
	for _, entry := range entries {
		data, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("failed to marshal entry to JSON: %w", err)
		}

		if _, err := fmt.Fprintf(w, "%s\n", string(data)); err != nil {
			return fmt.Errorf("failed to write JSONL output: %w", err)
		}
	}

	return nil
}

// FormatSingleJSON writes one entry as pretty-printed JSON to the provided
// writer. Used in get mode to display the complete stored value.
func FormatSingleJSON(w io.Writer, entry *blackboard.Entry) error {
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entry to JSON: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write JSON output: %w", err)
	}
	fmt.Fprintln(w)

	return nil
}

const maxValueDisplayLength = 60

// formatValue renders a stored JSON value on a single truncated line.
func formatValue(value json.RawMessage) string {
	s := strings.Join(strings.Fields(string(value)), " ")
	if len(s) > maxValueDisplayLength {
		return s[:maxValueDisplayLength-3] + "..."
	}
	return s
}
