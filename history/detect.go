package history

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	// ErrUnknownFormat is returned when no detection heuristic matches
	// and no explicit format override was supplied.
	ErrUnknownFormat = errors.New("unable to determine history format")

	// ErrUnreadableInput is returned when the input cannot be decoded
	// as UTF-8 text at all.
	ErrUnreadableInput = errors.New("input is not readable as text")
)

// Regex for the zsh extended history prefix: ": <timestamp>:<duration>;"
var zshExtendedRegex = regexp.MustCompile(`^:\s*(\d+):(\d+);(.*)$`)

// detectSampleLines caps how many non-empty lines DetectFormat inspects.
const detectSampleLines = 64

// DetectFormat selects a history format from a sample of file content.
// It is a pure function of the sample and the optional path hint.
//
// Heuristics in priority order: fish record markers, zsh extended
// metadata prefixes, a shell-specific path hint, then plain lines as the
// default. An empty sample with no usable hint yields ErrUnknownFormat;
// a sample with lines but no decodable text yields ErrUnreadableInput.
func DetectFormat(sample []byte, pathHint string) (Format, error) {
	var (
		fishScore  int
		shellScore int
		zshLines   int
		inspected  int
		rawLines   int
	)

	scanner := bufio.NewScanner(strings.NewReader(string(sample)))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rawLines++
		if !utf8.ValidString(line) {
			continue
		}

		inspected++
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "- cmd: "):
			fishScore += 4
		case strings.HasPrefix(trimmed, "when: ") || strings.HasPrefix(trimmed, "paths:"):
			fishScore += 2
		case strings.HasPrefix(line, "  when: ") || strings.HasPrefix(line, "  paths:") || strings.HasPrefix(line, "  - "):
			fishScore++
		case zshExtendedRegex.MatchString(line):
			zshLines++
			shellScore++
		default:
			shellScore++
		}

		if inspected >= detectSampleLines {
			break
		}
	}

	if rawLines > 0 && inspected == 0 {
		return FormatUnknown, ErrUnreadableInput
	}

	switch {
	case fishScore > shellScore:
		return FormatFish, nil
	case zshLines > 0:
		return FormatZshExtended, nil
	}

	if hint := FormatFromPath(pathHint); hint != FormatUnknown {
		return hint, nil
	}
	if inspected == 0 {
		return FormatUnknown, ErrUnknownFormat
	}
	return FormatPlain, nil
}

// DetectFile samples the beginning of a history file and detects its format.
func DetectFile(path string) (Format, error) {
	file, err := os.Open(path)
	if err != nil {
		return FormatUnknown, fmt.Errorf("failed to open history file: %w", err)
	}
	defer file.Close()

	sample := make([]byte, 64*1024)
	n, err := io.ReadFull(file, sample)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return FormatUnknown, fmt.Errorf("failed to sample history file: %w", err)
	}

	return DetectFormat(sample[:n], path)
}
