package main

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"syscall"

	"cmdtop/history"
)

// OutputFormat selects how the ranked report is rendered.
type OutputFormat int

const (
	// OutputText is the default bar-graph report.
	OutputText OutputFormat = iota
	// OutputJSON renders the report as a JSON array.
	OutputJSON
	// OutputCSV renders the report as CSV with a header row.
	OutputCSV
)

// parseOutputFormat converts the --output flag value.
func parseOutputFormat(value string) (OutputFormat, error) {
	switch value {
	case "", "text":
		return OutputText, nil
	case "json":
		return OutputJSON, nil
	case "csv":
		return OutputCSV, nil
	default:
		return OutputText, fmt.Errorf("invalid output format %q (use text, json or csv)", value)
	}
}

// renderOptions bundle everything the renderers need.
type renderOptions struct {
	output         OutputFormat
	barSize        int
	noBar          bool
	showPercentage bool
	showCumulative bool
	colorMode      ColorMode
}

// writeOutput renders the ranked report to w. A broken pipe (the reader
// side of "cmdtop | head" going away) is not an error.
func writeOutput(w io.Writer, entries []history.RankedEntry, opts renderOptions) error {
	buffered := bufio.NewWriter(w)

	var err error
	switch opts.output {
	case OutputJSON:
		err = writeJSON(buffered, entries)
	case OutputCSV:
		err = writeCSV(buffered, entries)
	default:
		err = writeText(buffered, entries, opts)
	}
	if err == nil {
		err = buffered.Flush()
	}

	if errors.Is(err, syscall.EPIPE) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// writeText prints the aligned bar-graph report.
func writeText(w io.Writer, entries []history.RankedEntry, opts renderOptions) error {
	barSize := opts.barSize
	if opts.noBar {
		barSize = 0
	}
	bars := renderBars(entries, barConfig{
		size:           barSize,
		showPercentage: opts.showPercentage,
		showCumulative: opts.showCumulative,
	})

	percWidth := 0
	for _, bar := range bars {
		if len(bar.percentage) > percWidth {
			percWidth = len(bar.percentage)
		}
	}

	colorizer := NewColorizer(opts.colorMode)
	const padding = "   "
	for _, bar := range bars {
		if _, err := fmt.Fprint(w, colorizer.Count(bar.count), padding); err != nil {
			return err
		}
		if bar.bar != "" {
			if _, err := fmt.Fprint(w, colorizer.Bar(bar.bar), " "); err != nil {
				return err
			}
		}
		percentage := fmt.Sprintf("%*s", percWidth, bar.percentage)
		if _, err := fmt.Fprintf(w, "%s%s%s\n", colorizer.Percentage(percentage), padding, bar.label); err != nil {
			return err
		}
	}
	return nil
}

// jsonEntry mirrors history.RankedEntry with percentages rounded to two
// decimals, matching the text report.
type jsonEntry struct {
	Command                     string  `json:"command"`
	Count                       int     `json:"count"`
	Percentage                  float64 `json:"percentage"`
	InverseCumulativePercentage float64 `json:"inverse_cumulative_percentage"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// writeJSON renders the report as an indented JSON array.
func writeJSON(w io.Writer, entries []history.RankedEntry) error {
	rows := make([]jsonEntry, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, jsonEntry{
			Command:                     entry.Command,
			Count:                       entry.Count,
			Percentage:                  round2(entry.Percentage),
			InverseCumulativePercentage: round2(entry.InverseCumulativePercentage),
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(rows)
}

// writeCSV renders the report as CSV with a header row.
func writeCSV(w io.Writer, entries []history.RankedEntry) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"command", "count", "percentage", "inverse_cumulative_percentage"}); err != nil {
		return err
	}
	for _, entry := range entries {
		record := []string{
			entry.Command,
			strconv.Itoa(entry.Count),
			strconv.FormatFloat(round2(entry.Percentage), 'f', 2, 64),
			strconv.FormatFloat(round2(entry.InverseCumulativePercentage), 'f', 2, 64),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
