package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// resolveHistoryFile finds the history file to read when none was given
// on the command line. $HISTFILE wins when it points at a regular file;
// otherwise the parent shell and $SHELL provide hints, and a fixed list
// of well-known locations is the last resort.
func resolveHistoryFile() (string, error) {
	if histfile := os.Getenv("HISTFILE"); histfile != "" {
		if isRegularFile(histfile) {
			return histfile, nil
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}

	var hints []string
	if shell, err := parentShell(); err == nil {
		hints = append(hints, shell)
	}
	if shellPath := os.Getenv("SHELL"); shellPath != "" {
		hints = appendUnique(hints, filepath.Base(shellPath))
	}

	var candidates []string
	for _, shell := range hints {
		for _, path := range shellHistoryCandidates(homeDir, shell) {
			candidates = appendUnique(candidates, path)
		}
	}
	for _, path := range defaultHistoryCandidates(homeDir) {
		candidates = appendUnique(candidates, path)
	}

	for _, path := range candidates {
		if isRegularFile(path) {
			return path, nil
		}
	}

	return "", fmt.Errorf("could not determine shell history file (checked %s); use --file", strings.Join(candidates, ", "))
}

// parentShell reads the parent process's command name from /proc.
func parentShell() (string, error) {
	ppid := strconv.Itoa(os.Getppid())
	cmdline, err := os.ReadFile(filepath.Join("/proc", ppid, "cmdline"))
	if err != nil {
		return "", fmt.Errorf("failed to read parent cmdline: %w", err)
	}
	return shellNameFromCmdline(cmdline)
}

// shellNameFromCmdline extracts the bare shell name from a
// /proc/<pid>/cmdline blob (NUL-separated argv).
func shellNameFromCmdline(cmdline []byte) (string, error) {
	first, _, _ := strings.Cut(string(cmdline), "\x00")
	name := filepath.Base(strings.TrimSpace(first))
	// Login shells are spawned as "-bash", "-zsh" and so on.
	name = strings.TrimPrefix(name, "-")
	if name == "" || name == "." {
		return "", fmt.Errorf("empty parent cmdline")
	}
	return name, nil
}

// shellHistoryCandidates lists the default history locations for one shell.
func shellHistoryCandidates(homeDir, shell string) []string {
	switch shell {
	case "ash":
		return []string{filepath.Join(homeDir, ".ash_history")}
	case "bash":
		return []string{filepath.Join(homeDir, ".bash_history")}
	case "fish":
		return []string{filepath.Join(homeDir, ".local", "share", "fish", "fish_history")}
	case "zsh":
		return []string{
			filepath.Join(homeDir, ".config", "zsh", ".zsh_history"),
			filepath.Join(homeDir, ".zsh_history"),
		}
	case "pwsh", "powershell":
		return []string{filepath.Join(homeDir, ".local", "share", "powershell", "PSReadLine", "ConsoleHost_history.txt")}
	case "tcsh", "csh":
		return []string{
			filepath.Join(homeDir, ".history"),
			filepath.Join(homeDir, ".csh_history"),
			filepath.Join(homeDir, ".tcsh_history"),
		}
	default:
		return nil
	}
}

// defaultHistoryCandidates lists fallback locations checked when no
// shell hint matched.
func defaultHistoryCandidates(homeDir string) []string {
	return []string{
		filepath.Join(homeDir, ".bash_history"),
		filepath.Join(homeDir, ".zsh_history"),
		filepath.Join(homeDir, ".config", "zsh", ".zsh_history"),
		filepath.Join(homeDir, ".ash_history"),
		filepath.Join(homeDir, ".local", "share", "fish", "fish_history"),
		filepath.Join(homeDir, ".local", "share", "powershell", "PSReadLine", "ConsoleHost_history.txt"),
		filepath.Join(homeDir, ".history"),
	}
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func appendUnique(values []string, value string) []string {
	for _, existing := range values {
		if existing == value {
			return values
		}
	}
	return append(values, value)
}
