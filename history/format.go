package history

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies the on-disk layout of a shell history file.
type Format int

const (
	// FormatUnknown means no format has been selected yet.
	FormatUnknown Format = iota
	// FormatPlain is one command per line with optional backslash
	// continuation (bash, ash and friends).
	FormatPlain
	// FormatZshExtended is zsh extended history with a
	// ": <timestamp>:<duration>;" prefix per line.
	FormatZshExtended
	// FormatFish is the fish_history block-record format.
	FormatFish
	// FormatTcsh is plain history with "#+<timestamp>" metadata lines.
	FormatTcsh
	// FormatPowerShell is PSReadLine's plain one-command-per-line file.
	FormatPowerShell
)

// String returns the name used for CLI flags and logging.
func (f Format) String() string {
	switch f {
	case FormatPlain:
		return "plain"
	case FormatZshExtended:
		return "zsh"
	case FormatFish:
		return "fish"
	case FormatTcsh:
		return "tcsh"
	case FormatPowerShell:
		return "powershell"
	default:
		return "unknown"
	}
}

// ParseFormat converts a user-supplied format name to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "plain", "bash", "ash", "sh":
		return FormatPlain, nil
	case "zsh":
		return FormatZshExtended, nil
	case "fish":
		return FormatFish, nil
	case "tcsh", "csh":
		return FormatTcsh, nil
	case "powershell", "pwsh":
		return FormatPowerShell, nil
	default:
		return FormatUnknown, fmt.Errorf("unknown history format %q (use plain, zsh, fish, tcsh or powershell)", name)
	}
}

// FormatFromPath guesses a format from the history file path alone.
// It only recognizes paths whose name pins down the owning shell; the
// content heuristics in DetectFormat take precedence over this hint.
func FormatFromPath(path string) Format {
	base := filepath.Base(path)
	switch {
	case base == "ConsoleHost_history.txt" || strings.Contains(path, "PSReadLine"):
		return FormatPowerShell
	case base == ".tcsh_history" || base == ".csh_history":
		return FormatTcsh
	case base == "fish_history":
		return FormatFish
	case base == ".zsh_history":
		return FormatZshExtended
	default:
		return FormatUnknown
	}
}
