package conversation

import (
	"strings"

	"github.com/google/uuid"

	"github.com/namestorm/server/internal/domain/domaincheck"
)

// Role identifies the author of an internal message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// DisplayMode hints how the presentation layer should render tool results.
type DisplayMode string

const (
	// DisplayAll shows every checked domain, taken ones included.
	DisplayAll DisplayMode = "all"
	// DisplayAvailable shows only the domains found available.
	DisplayAvailable DisplayMode = "available"
)

// ToolInvocation is one structured checkDomains request issued by the
// assistant. Its ID correlates 1:1 with a ToolResult.
type ToolInvocation struct {
	ID   string              `json:"id"`
	Name string              `json:"name"`
	Args domaincheck.Request `json:"args"`
}

// ToolResult satisfies a previously issued ToolInvocation.
type ToolResult struct {
	InvocationID string               `json:"invocation_id"`
	Name         string               `json:"name"`
	Results      []domaincheck.Result `json:"results"`
}

// Message is one turn of the conversation owned by the session. Messages are
// immutable once appended, except that a pending placeholder is replaced by
// its final content.
type Message struct {
	ID              string           `json:"id"`
	Role            Role             `json:"role"`
	Content         string           `json:"content"`
	ToolInvocations []ToolInvocation `json:"tool_invocations,omitempty"`
	ToolResults     []ToolResult     `json:"tool_results,omitempty"`
	Err             bool             `json:"error,omitempty"`
	Pending         bool             `json:"pending,omitempty"`
	DisplayMode     DisplayMode      `json:"display_mode,omitempty"`
}

// NewUserMessage builds a user turn.
func NewUserMessage(text string) Message {
	return Message{
		ID:      uuid.NewString(),
		Role:    RoleUser,
		Content: strings.TrimSpace(text),
	}
}

// NewAssistantMessage builds an assistant turn.
func NewAssistantMessage(text string) Message {
	return Message{
		ID:      uuid.NewString(),
		Role:    RoleAssistant,
		Content: text,
	}
}

// NewPendingMessage builds the assistant placeholder shown while a send
// action is in flight.
func NewPendingMessage() Message {
	return Message{
		ID:      uuid.NewString(),
		Role:    RoleAssistant,
		Pending: true,
	}
}

// NewCallID derives a fixed-length alphanumeric tool-call identifier, used
// for invocations synthesized outside the gateway (the JSON fallback path).
func NewCallID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "call_" + raw[:24]
}
