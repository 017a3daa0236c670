package history

// wrapperCommands are privilege-escalation prefixes that never count as
// commands in their own right.
var wrapperCommands = map[string]struct{}{
	"sudo": {},
	"doas": {},
}

// HeadCommand reduces a pipeline segment to its canonical head command.
//
// Leading environment-variable assignments (NAME=value) and wrapper
// commands are peeled off repeatedly, in any interleaving, along with
// the "--" end-of-options marker wrappers accept. The first surviving
// token is returned verbatim. ok is false when the segment reduces to
// nothing, e.g. a bare assignment with no command following.
func HeadCommand(segment Segment) (cmd string, ok bool) {
	for _, token := range segment {
		if !token.Quoted && isPeelable(token.Text) {
			continue
		}
		if token.Text == "" {
			continue
		}
		return token.Text, true
	}
	return "", false
}

func isPeelable(word string) bool {
	if word == "--" {
		return true
	}
	if _, isWrapper := wrapperCommands[word]; isWrapper {
		return true
	}
	return isAssignment(word)
}

// isAssignment reports whether a word has the NAME=value shape, where
// NAME is an identifier (letters, digits, underscore, no leading digit).
func isAssignment(word string) bool {
	eq := -1
	for i := 0; i < len(word); i++ {
		if word[i] == '=' {
			eq = i
			break
		}
	}
	if eq <= 0 {
		return false
	}
	name := word[:eq]
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
