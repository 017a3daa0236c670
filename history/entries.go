package history

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// maxLineBytes bounds a single physical history line.
const maxLineBytes = 1024 * 1024

// Entry is one logical command as the user typed it, with optional
// metadata when the source format records it.
type Entry struct {
	Command   string
	Timestamp time.Time
	Duration  time.Duration
}

// EntryScanner reconstructs logical entries from raw history lines.
// It reads the source exactly once; create a new scanner to re-run.
//
// Usage follows bufio.Scanner:
//
//	sc := NewEntryScanner(r, format)
//	for sc.Scan() {
//		entry := sc.Entry()
//		...
//	}
//	if err := sc.Err(); err != nil { ... }
type EntryScanner struct {
	scanner *bufio.Scanner
	format  Format
	entry   Entry
	err     error
	done    bool

	// continuation buffer for line-oriented formats
	pending     strings.Builder
	pendingMeta Entry

	// fish record state
	fishCmd  string
	fishOpen bool

	validLines int
	badLines   int
}

// NewEntryScanner creates a scanner producing logical entries from r
// according to the given format.
func NewEntryScanner(r io.Reader, format Format) *EntryScanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return &EntryScanner{
		scanner: scanner,
		format:  format,
	}
}

// Entry returns the entry produced by the last successful call to Scan.
func (s *EntryScanner) Entry() Entry {
	return s.entry
}

// Err returns the first fatal error encountered while scanning.
func (s *EntryScanner) Err() error {
	return s.err
}

// Scan advances to the next logical entry. It returns false at end of
// input or on a fatal error; structurally malformed lines and records
// are skipped, not fatal.
func (s *EntryScanner) Scan() bool {
	if s.done || s.err != nil {
		return false
	}
	if s.format == FormatFish {
		return s.scanFish()
	}
	return s.scanLines()
}

// nextLine reads one physical line, dropping a trailing carriage return.
// Lines that are not valid UTF-8 are counted and skipped.
func (s *EntryScanner) nextLine() (string, bool) {
	for s.scanner.Scan() {
		line := strings.TrimSuffix(s.scanner.Text(), "\r")
		if !utf8.ValidString(line) {
			s.badLines++
			continue
		}
		s.validLines++
		return line, true
	}
	if err := s.scanner.Err(); err != nil {
		s.err = fmt.Errorf("failed to read history: %w", err)
	} else if s.badLines > 0 && s.validLines == 0 {
		// Every line in the file was undecodable.
		s.err = ErrUnreadableInput
	}
	s.done = true
	return "", false
}

// scanLines handles the line-oriented formats (plain, zsh extended,
// tcsh, powershell), merging backslash continuations into one entry.
func (s *EntryScanner) scanLines() bool {
	for {
		line, ok := s.nextLine()
		if !ok {
			// A trailing continuation at end of input still yields
			// whatever was accumulated.
			if s.pending.Len() > 0 {
				return s.emitPending()
			}
			return false
		}

		if s.format == FormatTcsh && s.pending.Len() == 0 && strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}

		text := line
		if s.format == FormatZshExtended {
			// Strip the prefix on every physical line; the first line
			// of the entry supplies the metadata.
			text = s.stripZshPrefix(line, s.pending.Len() == 0)
		}

		if hasTrailingContinuation(text) {
			s.pending.WriteString(text[:len(text)-1])
			continue
		}

		s.pending.WriteString(text)
		if strings.TrimSpace(s.pending.String()) == "" {
			s.pending.Reset()
			s.pendingMeta = Entry{}
			continue
		}
		return s.emitPending()
	}
}

func (s *EntryScanner) emitPending() bool {
	command := s.pending.String()
	s.pending.Reset()
	if strings.TrimSpace(command) == "" {
		s.pendingMeta = Entry{}
		return false
	}
	s.entry = Entry{
		Command:   command,
		Timestamp: s.pendingMeta.Timestamp,
		Duration:  s.pendingMeta.Duration,
	}
	s.pendingMeta = Entry{}
	return true
}

// stripZshPrefix removes the ": <timestamp>:<duration>;" metadata prefix
// and, when captureMeta is set, records the metadata for the entry under
// construction. Lines without the prefix are taken verbatim, the way a
// plain history line would be.
func (s *EntryScanner) stripZshPrefix(line string, captureMeta bool) string {
	matches := zshExtendedRegex.FindStringSubmatch(line)
	if len(matches) != 4 {
		return line
	}
	if captureMeta {
		if ts, err := strconv.ParseInt(matches[1], 10, 64); err == nil {
			s.pendingMeta.Timestamp = time.Unix(ts, 0)
		}
		if dur, err := strconv.ParseInt(matches[2], 10, 64); err == nil {
			s.pendingMeta.Duration = time.Duration(dur) * time.Second
		}
	}
	return matches[3]
}

// hasTrailingContinuation reports whether a line ends with an unescaped
// backslash: an odd run of trailing backslashes continues onto the next
// physical line.
func hasTrailingContinuation(line string) bool {
	trailing := 0
	for i := len(line) - 1; i >= 0 && line[i] == '\\'; i-- {
		trailing++
	}
	return trailing%2 == 1
}

// fishCmdPrefix opens a record; the metadata prefixes close it.
const fishCmdPrefix = "- cmd: "

func isFishMetadataLine(line string) bool {
	return strings.HasPrefix(line, "  when: ") ||
		strings.HasPrefix(line, "  paths:") ||
		strings.HasPrefix(line, "  - ")
}

// scanFish reconstructs entries from fish's block-record history. A
// record's command may span lines via a trailing backslash followed by
// an indented continuation line. Records without a command field are
// skipped.
func (s *EntryScanner) scanFish() bool {
	for {
		line, ok := s.nextLine()
		if !ok {
			if s.fishOpen && strings.TrimSpace(s.fishCmd) != "" {
				s.entry = Entry{Command: s.fishCmd}
				s.fishOpen = false
				s.fishCmd = ""
				return true
			}
			return false
		}

		if cmd, found := strings.CutPrefix(line, fishCmdPrefix); found {
			if s.fishOpen && strings.TrimSpace(s.fishCmd) != "" {
				// Previous record had no metadata; emit it before
				// starting the new one.
				s.entry = Entry{Command: s.fishCmd}
				s.fishCmd = cmd
				return true
			}
			s.fishOpen = true
			s.fishCmd = cmd
			continue
		}

		if !s.fishOpen {
			// Metadata or stray content outside a record.
			continue
		}

		if strings.HasSuffix(s.fishCmd, "\\") && strings.HasPrefix(line, "  ") && !isFishMetadataLine(line) {
			joined := strings.TrimRight(s.fishCmd[:len(s.fishCmd)-1], " \t")
			s.fishCmd = joined + " " + strings.TrimSpace(line)
			continue
		}

		if isFishMetadataLine(line) {
			entry := Entry{Command: s.fishCmd}
			if when, found := strings.CutPrefix(line, "  when: "); found {
				if ts, err := strconv.ParseInt(strings.TrimSpace(when), 10, 64); err == nil {
					entry.Timestamp = time.Unix(ts, 0)
				}
			}
			s.fishOpen = false
			s.fishCmd = ""
			if strings.TrimSpace(entry.Command) == "" {
				continue
			}
			s.entry = entry
			return true
		}
	}
}
