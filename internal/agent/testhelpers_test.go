package agent

import (
	"context"

	"github.com/sells-group/stockagent/internal/capability"
	"github.com/sells-group/stockagent/pkg/llm"
)

// scriptedLLM returns its replies in order, repeating the last one once
// the script runs out.
type scriptedLLM struct {
	replies []string
	err     error
	calls   int
	prompts []string
}

func (s *scriptedLLM) Complete(_ context.Context, _ string, msgs []llm.Message) (string, error) {
	s.calls++
	if len(msgs) > 0 {
		s.prompts = append(s.prompts, msgs[len(msgs)-1].Content)
	}
	if s.err != nil {
		return "", s.err
	}
	idx := s.calls - 1
	if idx >= len(s.replies) {
		idx = len(s.replies) - 1
	}
	return s.replies[idx], nil
}

// echoRegistry builds a registry with a single Echo tool that records its
// inputs.
func echoRegistry(inputs *[]string) *capability.Registry {
	r := capability.NewRegistry()
	_ = r.Register(&capability.Capability{
		Name:        "Echo",
		InputFormat: "any text",
		Description: "Echoes the input back.",
		Run: func(_ context.Context, input string) string {
			if inputs != nil {
				*inputs = append(*inputs, input)
			}
			return "echo: " + input
		},
	})
	return r
}
