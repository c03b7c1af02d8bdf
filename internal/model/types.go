package model

// RoutingDecision is the outcome of intent classification for one prompt.
type RoutingDecision string

const (
	// UseTools routes the prompt through the tool orchestrator.
	UseTools RoutingDecision = "USE_TOOLS"
	// UseKnowledge answers the prompt from model knowledge alone.
	UseKnowledge RoutingDecision = "USE_KNOWLEDGE"
)

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Turn is one entry in a conversation's ordered history.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// ToolInvocation records one step of the orchestration loop: which
// capability ran, with what input, and what it returned. Invocations are
// ephemeral; they live only for the duration of one loop.
type ToolInvocation struct {
	Capability string `json:"capability"`
	Input      string `json:"input"`
	Output     string `json:"output"`
}
