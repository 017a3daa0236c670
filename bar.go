package main

import (
	"fmt"
	"math"
	"strings"

	"cmdtop/history"
)

// Bar glyphs: unfilled, semi-filled (inverse cumulative), filled (percentage).
const (
	barUnfilled = "░"
	barSemi     = "▓"
	barFilled   = "█"
)

// barConfig controls how the proportional bar is drawn.
type barConfig struct {
	size           int
	showPercentage bool
	showCumulative bool
}

// renderedBar is the pre-aligned column text for one report row.
type renderedBar struct {
	count      string
	bar        string
	percentage string
	label      string
}

// renderBarSegment draws one bar. The filled portion is the entry's own
// share, the semi-filled portion the share of everything ranked at or
// below it.
func renderBarSegment(percentage, invCumulative float64, cfg barConfig) string {
	if cfg.size <= 0 {
		return ""
	}

	dec := percentage / 100
	invDec := invCumulative / 100
	var filled, semi int

	switch {
	case cfg.showCumulative && cfg.showPercentage:
		filled = int(math.Round(dec * float64(cfg.size)))
		semi = int(math.Round((invDec - dec) * float64(cfg.size)))
		if filled+semi > cfg.size {
			semi = cfg.size - filled
		}
	case cfg.showPercentage:
		filled = int(math.Round(dec * float64(cfg.size)))
	case cfg.showCumulative:
		semi = int(math.Round(invDec * float64(cfg.size)))
	default:
		return ""
	}

	unfilled := cfg.size - filled - semi
	if unfilled < 0 {
		unfilled = 0
	}

	return "│" + strings.Repeat(barUnfilled, unfilled) +
		strings.Repeat(barSemi, semi) +
		strings.Repeat(barFilled, filled) + "│"
}

// renderBars lays out the ranked entries into aligned columns.
func renderBars(entries []history.RankedEntry, cfg barConfig) []renderedBar {
	if len(entries) == 0 {
		return nil
	}

	countWidth := 0
	for _, entry := range entries {
		if w := len(fmt.Sprint(entry.Count)); w > countWidth {
			countWidth = w
		}
	}

	bars := make([]renderedBar, 0, len(entries))
	for _, entry := range entries {
		bars = append(bars, renderedBar{
			count:      fmt.Sprintf("%*d", countWidth, entry.Count),
			bar:        renderBarSegment(entry.Percentage, entry.InverseCumulativePercentage, cfg),
			percentage: fmt.Sprintf("%.2f%%", entry.Percentage),
			label:      entry.Command,
		})
	}
	return bars
}
