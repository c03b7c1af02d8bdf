// Package agent contains the intent router and the think/act/observe
// loop that sequences capability calls to answer a prompt.
package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/stockagent/internal/capability"
	"github.com/sells-group/stockagent/internal/memory"
	"github.com/sells-group/stockagent/internal/model"
	"github.com/sells-group/stockagent/pkg/llm"
)

// DefaultMaxIterations caps the orchestration loop when no explicit limit
// is configured.
const DefaultMaxIterations = 12

const orchestratorSystem = `You are StockAgent, a financial assistant that can use tools to answer questions about stock data.

Available tools:
%s
To use a tool, reply with exactly:
Action: <tool name>
Action Input: <input for the tool>

When you know the final answer, reply with exactly:
Final Answer: <your answer>

Use one tool at a time. Never invent tool output.`

// Result is the outcome of one orchestration loop.
type Result struct {
	Answer          string
	Invocations     []model.ToolInvocation
	Iterations      int
	ParseRecoveries int
	HitCap          bool
}

// Orchestrator runs the reasoning/acting loop over the capability
// registry. One loop is strictly sequential: a capability call completes
// before the next Think step begins.
type Orchestrator struct {
	llm           llm.Client
	registry      *capability.Registry
	maxIterations int
}

// NewOrchestrator creates an orchestrator with the given iteration cap.
// A non-positive cap falls back to DefaultMaxIterations.
func NewOrchestrator(lm llm.Client, registry *capability.Registry, maxIterations int) *Orchestrator {
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}
	return &Orchestrator{
		llm:           lm,
		registry:      registry,
		maxIterations: maxIterations,
	}
}

// Run answers prompt by iterating Think, SelectCapability, Invoke and
// Observe until the model produces a final answer or the iteration cap is
// reached. The question and each observation are appended to mem. The
// returned error is reserved for model-transport failures; capability
// failures are folded into the transcript as text.
func (o *Orchestrator) Run(ctx context.Context, mem *memory.Memory, prompt string) (*Result, error) {
	system := fmt.Sprintf(orchestratorSystem, o.registry.Describe())

	// History is snapshotted before the question is recorded so neither
	// it nor this loop's observations appear twice in the Think prompt.
	history := mem.Render()
	mem.Append(model.RoleUser, prompt)

	res := &Result{}
	var scratchpad strings.Builder
	parseRetried := false

	for res.Iterations = 1; res.Iterations <= o.maxIterations; res.Iterations++ {
		reply, err := o.llm.Complete(ctx, system, []llm.Message{
			{Role: "user", Content: thinkPrompt(history, prompt, scratchpad.String())},
		})
		if err != nil {
			return nil, eris.Wrap(err, "agent: think")
		}

		act := parseAction(reply)
		switch act.kind {
		case actionFinal:
			res.Answer = act.final
			return res, nil

		case actionCall:
			parseRetried = false
			observation := o.invoke(ctx, act, res)
			fmt.Fprintf(&scratchpad, "%s\nObservation: %s\n", reply, observation)
			mem.Append(model.RoleTool, observation)

		case actionUnparsable:
			if parseRetried {
				// Second unparsable reply in a row: degrade to the raw
				// text as a best-effort answer.
				zap.L().Warn("agent: giving up on unparsable reply",
					zap.Int("iteration", res.Iterations),
				)
				res.Answer = strings.TrimSpace(act.raw)
				return res, nil
			}
			parseRetried = true
			res.ParseRecoveries++
			observation := "Could not parse that reply. Respond with either 'Action: <tool name>' and 'Action Input: <input>', or 'Final Answer: <answer>'."
			fmt.Fprintf(&scratchpad, "%s\nObservation: %s\n", reply, observation)
			mem.Append(model.RoleTool, observation)
			zap.L().Debug("agent: parse recovery",
				zap.Int("iteration", res.Iterations),
			)
		}
	}

	// Iteration cap reached: force-terminate with the best partial answer.
	res.Iterations = o.maxIterations
	res.HitCap = true
	res.Answer = bestEffortAnswer(res.Invocations)
	zap.L().Warn("agent: iteration cap reached",
		zap.Int("max_iterations", o.maxIterations),
		zap.Int("invocations", len(res.Invocations)),
	)
	return res, nil
}

// invoke resolves and executes one capability call, returning the
// observation text. Unknown names are recoverable: the observation tells
// the model what is available.
func (o *Orchestrator) invoke(ctx context.Context, act action, res *Result) string {
	c := o.registry.Get(act.name)
	if c == nil {
		return fmt.Sprintf("Unknown tool %q. Available tools: %s",
			act.name, strings.Join(o.registry.Names(), ", "))
	}

	output := c.Run(ctx, act.input)
	res.Invocations = append(res.Invocations, model.ToolInvocation{
		Capability: act.name,
		Input:      act.input,
		Output:     output,
	})
	zap.L().Debug("agent: tool invoked",
		zap.String("tool", act.name),
		zap.String("input", act.input),
	)
	return output
}

// thinkPrompt assembles the user message for one Think step: prior
// conversation history, the question, and the transcript of this loop's
// steps.
func thinkPrompt(history, prompt, scratchpad string) string {
	var sb strings.Builder
	if history != "" {
		sb.WriteString("Conversation so far:\n")
		sb.WriteString(history)
		sb.WriteString("\n")
	}
	sb.WriteString("Question: ")
	sb.WriteString(prompt)
	if scratchpad != "" {
		sb.WriteString("\n\nSteps so far:\n")
		sb.WriteString(scratchpad)
	}
	return sb.String()
}

// bestEffortAnswer summarizes the loop's progress when it is
// force-terminated at the iteration cap. Never returns an empty string.
func bestEffortAnswer(invocations []model.ToolInvocation) string {
	if len(invocations) == 0 {
		return "I could not reach a final answer within the allowed number of steps."
	}
	last := invocations[len(invocations)-1]
	return fmt.Sprintf(
		"I could not reach a final answer within the allowed number of steps. Last tool result (%s): %s",
		last.Capability, last.Output,
	)
}
