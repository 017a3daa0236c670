package history

import "sort"

// RankedEntry is one row of the final report: a canonical command, its
// count, its share of the filtered total, and the share contributed by
// this rank and every rank below it.
type RankedEntry struct {
	Command                     string  `json:"command"`
	Count                       int     `json:"count"`
	Percentage                  float64 `json:"percentage"`
	InverseCumulativePercentage float64 `json:"inverse_cumulative_percentage"`
}

// RankOptions control how many ranked entries are returned.
type RankOptions struct {
	// Top caps the number of entries returned. Zero or negative means
	// no cap.
	Top int
	// All ignores Top entirely.
	All bool
}

// Rank orders a frequency table into a deterministic report.
//
// Entries sort by count descending; equal counts break ties by command
// name ascending so output is reproducible regardless of map iteration
// order. Percentages are computed over the whole table before the cap
// truncates the result, so a capped report still shows each command's
// share of the full filtered total.
func Rank(table Table, opts RankOptions) []RankedEntry {
	if len(table) == 0 {
		return nil
	}

	entries := make([]RankedEntry, 0, len(table))
	total := 0
	for cmd, count := range table {
		entries = append(entries, RankedEntry{Command: cmd, Count: count})
		total += count
	}
	if total == 0 {
		return nil
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Command < entries[j].Command
	})

	invCumulative := 100.0
	for i := range entries {
		percentage := float64(entries[i].Count) / float64(total) * 100
		entries[i].Percentage = percentage
		entries[i].InverseCumulativePercentage = invCumulative
		invCumulative -= percentage
	}

	if !opts.All && opts.Top > 0 && opts.Top < len(entries) {
		entries = entries[:opts.Top]
	}
	return entries
}
