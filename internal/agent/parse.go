package agent

import "strings"

// actionKind classifies a parsed Think reply.
type actionKind int

const (
	actionUnparsable actionKind = iota
	actionCall
	actionFinal
)

// action is the decoded form of one Think reply. The model is not
// schema-constrained, so this parser is a deliberate best-effort text
// adapter: a structured selection channel would replace it for models
// with native tool calling.
type action struct {
	kind  actionKind
	name  string // capability name, for actionCall
	input string // capability input, for actionCall
	final string // answer text, for actionFinal
	raw   string // the unmodified reply
}

// parseAction decomposes a Think reply into a capability call or a final
// answer. A reply containing a "Final Answer:" marker is terminal even if
// it also narrates an action; otherwise the first "Action:" line names
// the capability and the first "Action Input:" line carries its input.
func parseAction(text string) action {
	a := action{raw: text}

	if idx := markerIndex(text, "Final Answer:"); idx >= 0 {
		a.kind = actionFinal
		a.final = strings.TrimSpace(text[idx+len("Final Answer:"):])
		return a
	}

	var name, input string
	var sawAction, sawInput bool
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case !sawAction && strings.HasPrefix(trimmed, "Action:"):
			name = strings.TrimSpace(strings.TrimPrefix(trimmed, "Action:"))
			sawAction = true
		case sawAction && !sawInput && strings.HasPrefix(trimmed, "Action Input:"):
			input = strings.TrimSpace(strings.TrimPrefix(trimmed, "Action Input:"))
			sawInput = true
		}
	}

	if sawAction && name != "" {
		a.kind = actionCall
		a.name = name
		a.input = input
		return a
	}

	a.kind = actionUnparsable
	return a
}

// markerIndex finds marker at the start of any line in text, returning
// the byte offset of the marker or -1.
func markerIndex(text, marker string) int {
	offset := 0
	for _, line := range strings.Split(text, "\n") {
		trimmedLen := len(line) - len(strings.TrimLeft(line, " \t"))
		if strings.HasPrefix(strings.TrimSpace(line), marker) {
			return offset + trimmedLen
		}
		offset += len(line) + 1
	}
	return -1
}
