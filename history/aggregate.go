package history

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Table maps canonical commands to occurrence counts.
type Table map[string]int

// Add counts one occurrence of a canonical command.
func (t Table) Add(cmd string) {
	t[cmd]++
}

// Total returns the sum of all counts in the table.
func (t Table) Total() int {
	total := 0
	for _, count := range t {
		total += count
	}
	return total
}

// Filter returns a copy of the table without ignored commands and
// without commands whose count is not strictly greater than moreThan.
func (t Table) Filter(ignore []string, moreThan int) Table {
	ignored := make(map[string]struct{}, len(ignore))
	for _, cmd := range ignore {
		ignored[strings.TrimSpace(cmd)] = struct{}{}
	}

	filtered := make(Table, len(t))
	for cmd, count := range t {
		if _, skip := ignored[cmd]; skip {
			continue
		}
		if count <= moreThan {
			continue
		}
		filtered[cmd] = count
	}
	return filtered
}

// Options configure one counting run over a history source.
type Options struct {
	// Format is an explicit override; FormatUnknown triggers content
	// detection.
	Format Format
	// Raw disables pipeline splitting and wrapper stripping, treating
	// the input as arbitrary line-oriented data.
	Raw bool
}

// CountReader aggregates canonical command counts from a history
// source in one pass. The format must already be selected.
func CountReader(r io.Reader, format Format, raw bool) (Table, error) {
	table := make(Table)
	scanner := NewEntryScanner(r, format)
	for scanner.Scan() {
		countEntry(table, scanner.Entry().Command, raw)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return table, nil
}

// countEntry feeds one logical entry through the tokenizer and
// normalizer, incrementing the count of every canonical command the
// entry's pipeline segments reduce to.
func countEntry(table Table, command string, raw bool) {
	if raw {
		if fields := strings.Fields(command); len(fields) > 0 {
			table.Add(fields[0])
		}
		return
	}
	for _, segment := range SplitPipeline(command) {
		if cmd, ok := HeadCommand(segment); ok {
			table.Add(cmd)
		}
	}
}

// CountFile counts canonical commands in a history file, detecting the
// format from content when opts.Format is FormatUnknown. The selected
// format is returned alongside the table.
func CountFile(path string, opts Options) (Table, Format, error) {
	format := opts.Format
	if format == FormatUnknown {
		detected, err := DetectFile(path)
		if err != nil {
			return nil, FormatUnknown, err
		}
		format = detected
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, format, fmt.Errorf("failed to open history file: %w", err)
	}
	defer file.Close()

	table, err := CountReader(file, format, opts.Raw)
	if err != nil {
		return nil, format, fmt.Errorf("failed to read %s history from %s: %w", format, path, err)
	}
	return table, format, nil
}
