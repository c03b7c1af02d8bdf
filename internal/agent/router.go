package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/stockagent/internal/memory"
	"github.com/sells-group/stockagent/internal/model"
	"github.com/sells-group/stockagent/pkg/llm"
)

// MemoryClearedReply is returned for the reserved memory-reset phrases.
const MemoryClearedReply = "Memory cleared."

// resetPhrases are the reserved control inputs, matched case-insensitively
// against the trimmed prompt. They short-circuit everything else.
var resetPhrases = []string{"clear memory", "reset memory"}

const classifyTemplate = `You are StockAgent. Interpret the user question below.
If the user is requesting data from our store or Alpha Vantage or our data (e.g. 'in our data', 'validate', 'check from our database'), respond only with: USE_AGENT.
If the user just wants general financial knowledge, respond only with: USE_LLM.

User: %s`

const knowledgeTemplate = `You are StockAgent, a financial assistant.
Answer this using only your own knowledge.
Clearly say this is not verified against our store or Alpha Vantage if applicable.

%s`

// Router decides per prompt whether to answer from model knowledge or to
// hand the prompt to the tool orchestrator.
type Router struct {
	llm  llm.Client
	orch *Orchestrator
}

// NewRouter creates a Router in front of the given orchestrator.
func NewRouter(lm llm.Client, orch *Orchestrator) *Router {
	return &Router{llm: lm, orch: orch}
}

// Classify issues one classification request and returns the routing
// decision. The classifier's reply is free text, so the decision is made
// by substring: any reply mentioning USE_AGENT routes to tools.
func (r *Router) Classify(ctx context.Context, prompt string) (model.RoutingDecision, error) {
	reply, err := r.llm.Complete(ctx, "", []llm.Message{
		{Role: "user", Content: fmt.Sprintf(classifyTemplate, prompt)},
	})
	if err != nil {
		return "", eris.Wrap(err, "agent: classify")
	}

	normalized := strings.ToUpper(strings.TrimSpace(reply))
	if strings.Contains(normalized, "USE_AGENT") {
		return model.UseTools, nil
	}
	return model.UseKnowledge, nil
}

// Route answers one prompt against the given session memory. Reserved
// control phrases clear the memory and return the fixed confirmation
// before any classification happens. The session is held exclusively for
// the whole route, so concurrent prompts against the same session cannot
// interleave their turns.
func (r *Router) Route(ctx context.Context, mem *memory.Memory, prompt string) (string, error) {
	mem.Acquire()
	defer mem.Release()

	prompt = strings.TrimSpace(prompt)

	if isResetPhrase(prompt) {
		mem.Clear()
		return MemoryClearedReply, nil
	}

	decision, err := r.Classify(ctx, prompt)
	if err != nil {
		return "", err
	}
	zap.L().Debug("agent: routed prompt",
		zap.String("decision", string(decision)),
	)

	var answer string
	switch decision {
	case model.UseTools:
		res, err := r.orch.Run(ctx, mem, prompt)
		if err != nil {
			return "", err
		}
		answer = res.Answer
	default:
		reply, err := r.llm.Complete(ctx, "", []llm.Message{
			{Role: "user", Content: fmt.Sprintf(knowledgeTemplate, prompt)},
		})
		if err != nil {
			return "", eris.Wrap(err, "agent: knowledge answer")
		}
		mem.Append(model.RoleUser, prompt)
		answer = reply
	}

	mem.Append(model.RoleAssistant, answer)
	return answer, nil
}

func isResetPhrase(prompt string) bool {
	lower := strings.ToLower(prompt)
	for _, p := range resetPhrases {
		if lower == p {
			return true
		}
	}
	return false
}
