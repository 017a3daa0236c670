package history

import (
	"strings"
	"unicode"
)

// Token is one lexical word of a command. Quoted marks words that were
// protected by quotes, where pipes and whitespace are literal text.
type Token struct {
	Text   string
	Quoted bool
}

// Segment is one pipeline segment: the ordered tokens between unquoted
// single-pipe operators.
type Segment []Token

// quoteState tracks the tokenizer's position relative to quoting.
type quoteState int

const (
	quoteNone quoteState = iota
	quoteSingle
	quoteDouble
)

// SplitPipeline tokenizes one logical entry into pipeline segments.
//
// The scan is a single left-to-right pass with one character of
// lookahead. Outside quotes a backslash escapes the next character, a
// single "|" closes the current segment, and "||" stays a literal token
// in the current segment (it is logical OR, not data flow). Single
// quotes protect everything; inside double quotes a backslash escapes
// only a double quote or another backslash. An unterminated quote runs
// literally to the end of the entry. Segments with no tokens are dropped.
func SplitPipeline(entry string) []Segment {
	var (
		segments []Segment
		segment  Segment
		current  strings.Builder
		quoted   bool
		hasToken bool
		state    quoteState
		escaped  bool
	)

	flushToken := func() {
		if hasToken || current.Len() > 0 {
			segment = append(segment, Token{Text: current.String(), Quoted: quoted})
		}
		current.Reset()
		quoted = false
		hasToken = false
	}
	flushSegment := func() {
		flushToken()
		if len(segment) > 0 {
			segments = append(segments, segment)
		}
		segment = nil
	}

	runes := []rune(entry)
	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if escaped {
			current.WriteRune(r)
			hasToken = true
			escaped = false
			continue
		}

		switch state {
		case quoteNone:
			switch {
			case r == '\\':
				escaped = true
			case r == '\'':
				state = quoteSingle
				quoted = true
				hasToken = true
			case r == '"':
				state = quoteDouble
				quoted = true
				hasToken = true
			case r == '|':
				if i+1 < len(runes) && runes[i+1] == '|' {
					flushToken()
					segment = append(segment, Token{Text: "||"})
					i++
					continue
				}
				flushSegment()
			case unicode.IsSpace(r):
				flushToken()
			default:
				current.WriteRune(r)
				hasToken = true
			}

		case quoteSingle:
			if r == '\'' {
				state = quoteNone
				continue
			}
			current.WriteRune(r)

		case quoteDouble:
			switch {
			case r == '\\':
				if i+1 < len(runes) && (runes[i+1] == '"' || runes[i+1] == '\\') {
					current.WriteRune(runes[i+1])
					i++
					continue
				}
				current.WriteRune('\\')
			case r == '"':
				state = quoteNone
			default:
				current.WriteRune(r)
			}
		}
	}

	// An unterminated quote that accumulated no text would only produce
	// an empty trailing token; skip it.
	if state != quoteNone && current.Len() == 0 {
		hasToken = false
		quoted = false
	}
	flushSegment()

	return segments
}
