package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
)

// ColorMode controls whether ANSI colors are emitted.
type ColorMode int

const (
	// ColorAuto enables colors only when stdout is a terminal.
	ColorAuto ColorMode = iota
	// ColorAlways forces colors on.
	ColorAlways
	// ColorNever forces colors off.
	ColorNever
)

// parseColorMode converts the --color flag value. An empty value means auto.
func parseColorMode(value string) (ColorMode, error) {
	switch value {
	case "", "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("invalid color mode %q (use auto, always or never)", value)
	}
}

// enabled resolves the mode against the actual stdout.
func (m ColorMode) enabled() bool {
	switch m {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		fd := os.Stdout.Fd()
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
}

// ANSI escape codes used by the text renderer.
const (
	ansiReset  = "\x1b[0m"
	ansiDim    = "\x1b[2m"
	ansiCyan   = "\x1b[36m"
	ansiYellow = "\x1b[33m"
)

// Colorizer wraps report fields in ANSI colors when enabled.
type Colorizer struct {
	enabled bool
}

// NewColorizer creates a colorizer for the given mode.
func NewColorizer(mode ColorMode) *Colorizer {
	return &Colorizer{enabled: mode.enabled()}
}

func (c *Colorizer) wrap(code, s string) string {
	if !c.enabled || s == "" {
		return s
	}
	return code + s + ansiReset
}

// Count colors a count column value.
func (c *Colorizer) Count(s string) string { return c.wrap(ansiCyan, s) }

// Percentage colors a percentage column value.
func (c *Colorizer) Percentage(s string) string { return c.wrap(ansiYellow, s) }

// Bar colors the bar graphic.
func (c *Colorizer) Bar(s string) string { return c.wrap(ansiDim, s) }
