package history

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectEntries(t *testing.T, input string, format Format) []Entry {
	t.Helper()
	scanner := NewEntryScanner(strings.NewReader(input), format)
	var entries []Entry
	for scanner.Scan() {
		entries = append(entries, scanner.Entry())
	}
	require.NoError(t, scanner.Err())
	return entries
}

func commands(entries []Entry) []string {
	cmds := make([]string, 0, len(entries))
	for _, e := range entries {
		cmds = append(cmds, e.Command)
	}
	return cmds
}

func TestEntryScannerPlain(t *testing.T) {
	t.Run("one command per line", func(t *testing.T) {
		entries := collectEntries(t, "ls -la\ngit status\n", FormatPlain)
		assert.Equal(t, []string{"ls -la", "git status"}, commands(entries))
	})

	t.Run("empty and whitespace lines dropped", func(t *testing.T) {
		entries := collectEntries(t, "ls\n\n   \n\t\ngit status\n", FormatPlain)
		assert.Equal(t, []string{"ls", "git status"}, commands(entries))
	})

	t.Run("backslash continuation merged", func(t *testing.T) {
		entries := collectEntries(t, "echo foo \\\nbar\nls\n", FormatPlain)
		assert.Equal(t, []string{"echo foo bar", "ls"}, commands(entries))
	})

	t.Run("escaped backslash is not a continuation", func(t *testing.T) {
		entries := collectEntries(t, "echo foo\\\\\nls\n", FormatPlain)
		assert.Equal(t, []string{"echo foo\\\\", "ls"}, commands(entries))
	})

	t.Run("continuation at end of input still emitted", func(t *testing.T) {
		entries := collectEntries(t, "echo foo \\", FormatPlain)
		assert.Equal(t, []string{"echo foo "}, commands(entries))
	})

	t.Run("crlf line endings", func(t *testing.T) {
		entries := collectEntries(t, "ls -la\r\ngit status\r\n", FormatPlain)
		assert.Equal(t, []string{"ls -la", "git status"}, commands(entries))
	})
}

func TestEntryScannerZshExtended(t *testing.T) {
	t.Run("metadata prefix stripped and captured", func(t *testing.T) {
		entries := collectEntries(t, ": 1680820391:2;ls -la\n: 1680820392:0;git status\n", FormatZshExtended)
		require.Len(t, entries, 2)
		assert.Equal(t, "ls -la", entries[0].Command)
		assert.Equal(t, time.Unix(1680820391, 0), entries[0].Timestamp)
		assert.Equal(t, 2*time.Second, entries[0].Duration)
		assert.Equal(t, "git status", entries[1].Command)
	})

	t.Run("continuation merged after prefix strip", func(t *testing.T) {
		entries := collectEntries(t, ": 1680820391:0;echo foo \\\nbar\n", FormatZshExtended)
		assert.Equal(t, []string{"echo foo bar"}, commands(entries))
	})

	t.Run("prefix on continuation lines also stripped", func(t *testing.T) {
		entries := collectEntries(t, ": 1680820391:2;echo foo \\\n: 1680820400:0;bar\n", FormatZshExtended)
		require.Len(t, entries, 1)
		assert.Equal(t, "echo foo bar", entries[0].Command)
		assert.Equal(t, time.Unix(1680820391, 0), entries[0].Timestamp)
		assert.Equal(t, 2*time.Second, entries[0].Duration)
	})

	t.Run("lines without prefix fall back to plain", func(t *testing.T) {
		entries := collectEntries(t, "ls -la\n: 1680820391:0;git status\n", FormatZshExtended)
		assert.Equal(t, []string{"ls -la", "git status"}, commands(entries))
	})

	t.Run("prefix with empty command dropped", func(t *testing.T) {
		entries := collectEntries(t, ": 1680820391:0;\n: 1680820392:0;ls\n", FormatZshExtended)
		assert.Equal(t, []string{"ls"}, commands(entries))
	})
}

func TestEntryScannerTcsh(t *testing.T) {
	entries := collectEntries(t, "#+1680820391\nls -la\n#+1680820392\ngit status\n", FormatTcsh)
	assert.Equal(t, []string{"ls -la", "git status"}, commands(entries))
}

func TestEntryScannerFish(t *testing.T) {
	t.Run("simple records", func(t *testing.T) {
		input := "- cmd: ls -la\n  when: 1680820391\n- cmd: git status\n  when: 1680820392\n"
		entries := collectEntries(t, input, FormatFish)
		require.Len(t, entries, 2)
		assert.Equal(t, "ls -la", entries[0].Command)
		assert.Equal(t, time.Unix(1680820391, 0), entries[0].Timestamp)
		assert.Equal(t, "git status", entries[1].Command)
	})

	t.Run("paths metadata closes record", func(t *testing.T) {
		input := "- cmd: make install\n  when: 1680820391\n  paths:\n    - /usr/local\n- cmd: ls\n  when: 1680820392\n"
		entries := collectEntries(t, input, FormatFish)
		assert.Equal(t, []string{"make install", "ls"}, commands(entries))
	})

	t.Run("multiline command folded", func(t *testing.T) {
		input := "- cmd: doas -- \\\n  systemctl stop sshd\n  when: 1680820391\n"
		entries := collectEntries(t, input, FormatFish)
		assert.Equal(t, []string{"doas -- systemctl stop sshd"}, commands(entries))
	})

	t.Run("record without metadata emitted at next record", func(t *testing.T) {
		input := "- cmd: ls -la\n- cmd: git status\n  when: 1680820392\n"
		entries := collectEntries(t, input, FormatFish)
		assert.Equal(t, []string{"ls -la", "git status"}, commands(entries))
	})

	t.Run("record without metadata emitted at end of input", func(t *testing.T) {
		entries := collectEntries(t, "- cmd: ls -la\n", FormatFish)
		assert.Equal(t, []string{"ls -la"}, commands(entries))
	})

	t.Run("empty command record skipped", func(t *testing.T) {
		input := "- cmd: \n  when: 1680820391\n- cmd: ls\n  when: 1680820392\n"
		entries := collectEntries(t, input, FormatFish)
		assert.Equal(t, []string{"ls"}, commands(entries))
	})

	t.Run("stray lines outside records skipped", func(t *testing.T) {
		input := "  when: 1680820390\ngarbage\n- cmd: ls\n  when: 1680820391\n"
		entries := collectEntries(t, input, FormatFish)
		assert.Equal(t, []string{"ls"}, commands(entries))
	})
}

func TestEntryScannerInvalidUTF8(t *testing.T) {
	t.Run("bad lines skipped", func(t *testing.T) {
		input := "ls -la\n\xff\xfe bad\ngit status\n"
		entries := collectEntries(t, input, FormatPlain)
		assert.Equal(t, []string{"ls -la", "git status"}, commands(entries))
	})

	t.Run("entirely undecodable input is fatal", func(t *testing.T) {
		scanner := NewEntryScanner(strings.NewReader("\xff\xfe\xfd\n\xff\xfe\n"), FormatPlain)
		assert.False(t, scanner.Scan())
		assert.ErrorIs(t, scanner.Err(), ErrUnreadableInput)
	})

	t.Run("empty input succeeds with no entries", func(t *testing.T) {
		entries := collectEntries(t, "", FormatPlain)
		assert.Empty(t, entries)
	})
}
