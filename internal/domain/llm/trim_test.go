package llm_test

import (
	"strings"
	"testing"

	"github.com/namestorm/server/internal/domain/llm"
)

func callID(id string) *string { return &id }

func toolExchange(id, result string) []llm.ChatMessage {
	return []llm.ChatMessage{
		{
			Role: llm.RoleAssistant,
			ToolCalls: []llm.ToolCall{{
				ID:   id,
				Type: "function",
				Function: llm.ToolFunction{Name: "checkDomains", Arguments: []byte(`{"names":["x"]}`)},
			}},
		},
		{Role: llm.RoleTool, Content: result, ToolCallID: callID(id)},
	}
}

func TestTrimHistory_UnderBudgetIsUntouched(t *testing.T) {
	messages := []llm.ChatMessage{
		{Role: llm.RoleUser, Content: "hello"},
		{Role: llm.RoleAssistant, Content: "hi"},
	}

	got := llm.TrimHistory(messages, llm.DefaultContextLength)
	if len(got) != len(messages) {
		t.Errorf("under-budget history was modified: %d turns, want %d", len(got), len(messages))
	}
}

func TestTrimHistory_DropsOldestExchangeWithItsResults(t *testing.T) {
	big := strings.Repeat("x", 400)

	messages := []llm.ChatMessage{{Role: llm.RoleUser, Content: "start"}}
	messages = append(messages, toolExchange("call_a", big)...)
	messages = append(messages, toolExchange("call_b", big)...)
	messages = append(messages, llm.ChatMessage{Role: llm.RoleUser, Content: "more"})

	// Budget fits one exchange, not two.
	got := llm.TrimHistory(messages, 300)

	for _, msg := range got {
		if msg.ToolCallID != nil && *msg.ToolCallID == "call_a" {
			t.Error("the result of the dropped exchange survived")
		}
		for _, tc := range msg.ToolCalls {
			if tc.ID == "call_a" {
				t.Error("the dropped assistant turn survived")
			}
		}
	}

	users := 0
	for _, msg := range got {
		if msg.Role == llm.RoleUser {
			users++
		}
	}
	if users != 2 {
		t.Errorf("user turns = %d, want both preserved", users)
	}
}

func TestTrimHistory_KeepsLastAssistantTurn(t *testing.T) {
	big := strings.Repeat("x", 800)

	messages := []llm.ChatMessage{{Role: llm.RoleUser, Content: "start"}}
	messages = append(messages, toolExchange("call_a", big)...)
	messages = append(messages, toolExchange("call_b", big)...)

	got := llm.TrimHistory(messages, 200)

	lastAssistant := false
	for _, msg := range got {
		for _, tc := range msg.ToolCalls {
			if tc.ID == "call_b" {
				lastAssistant = true
			}
		}
	}
	if !lastAssistant {
		t.Error("the most recent assistant turn must never be dropped")
	}
}

func TestEstimateHistoryTokens_GrowsWithContent(t *testing.T) {
	small := []llm.ChatMessage{{Role: llm.RoleUser, Content: "hi"}}
	large := []llm.ChatMessage{{Role: llm.RoleUser, Content: strings.Repeat("word ", 200)}}

	if llm.EstimateHistoryTokens(small) >= llm.EstimateHistoryTokens(large) {
		t.Error("token estimate must grow with content size")
	}
}
