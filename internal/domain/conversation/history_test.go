package conversation_test

import (
	"errors"
	"testing"

	"github.com/namestorm/server/internal/domain/conversation"
	"github.com/namestorm/server/internal/domain/domaincheck"
	"github.com/namestorm/server/internal/domain/llm"
)

func TestToGatewayMessages_SystemInstructionFirst(t *testing.T) {
	msgs := []conversation.Message{
		conversation.NewUserMessage("find me a name"),
	}

	out, err := conversation.ToGatewayMessages(msgs, "You are a naming assistant.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(out))
	}
	if out[0].Role != llm.RoleSystem || out[0].Content != "You are a naming assistant." {
		t.Errorf("first turn = %+v, want system instruction", out[0])
	}
	if out[1].Role != llm.RoleUser {
		t.Errorf("second turn role = %q, want user", out[1].Role)
	}
}

func TestToGatewayMessages_DropsErrorPendingAndBlankTurns(t *testing.T) {
	errMsg := conversation.NewAssistantMessage("something went wrong")
	errMsg.Err = true

	msgs := []conversation.Message{
		conversation.NewUserMessage("   "),
		errMsg,
		conversation.NewPendingMessage(),
		conversation.NewUserMessage("brainstorm coffee names"),
	}

	out, err := conversation.ToGatewayMessages(msgs, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 turn, got %d: %+v", len(out), out)
	}
	if out[0].Content != "brainstorm coffee names" {
		t.Errorf("kept turn = %q, want the non-blank user message", out[0].Content)
	}
}

func TestToGatewayMessages_ToolInvocationAndResultPairing(t *testing.T) {
	results := []domaincheck.Result{
		{Name: "nova", TLD: ".io", Domain: "nova.io", Status: domaincheck.StatusAvailable},
	}
	assistant := conversation.NewAssistantMessage("")
	assistant.ToolInvocations = []conversation.ToolInvocation{
		{ID: "call_abc", Name: "checkDomains", Args: domaincheck.Request{Names: []string{"nova"}}},
	}
	assistant.ToolResults = []conversation.ToolResult{
		{InvocationID: "call_abc", Name: "checkDomains", Results: results},
	}

	msgs := []conversation.Message{
		conversation.NewUserMessage("check nova"),
		assistant,
	}

	out, err := conversation.ToGatewayMessages(msgs, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 turns, got %d: %+v", len(out), out)
	}
	if len(out[1].ToolCalls) != 1 || out[1].ToolCalls[0].ID != "call_abc" {
		t.Errorf("assistant turn tool calls = %+v, want one call with id call_abc", out[1].ToolCalls)
	}
	if out[2].Role != llm.RoleTool {
		t.Fatalf("trailing turn role = %q, want tool", out[2].Role)
	}
	if out[2].ToolCallID == nil || *out[2].ToolCallID != "call_abc" {
		t.Errorf("tool turn not correlated to call_abc: %+v", out[2])
	}
}

func TestToGatewayMessages_DropsOrphanedToolResults(t *testing.T) {
	assistant := conversation.NewAssistantMessage("here you go")
	assistant.ToolResults = []conversation.ToolResult{
		{InvocationID: "call_never_issued", Name: "checkDomains"},
	}

	msgs := []conversation.Message{
		conversation.NewUserMessage("check nova"),
		assistant,
		conversation.NewUserMessage("and again"),
	}

	out, err := conversation.ToGatewayMessages(msgs, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, turn := range out {
		if turn.Role == llm.RoleTool {
			t.Errorf("orphaned tool result survived: %+v", turn)
		}
	}
}

func TestToGatewayMessages_TrimsTrailingAssistantTurns(t *testing.T) {
	msgs := []conversation.Message{
		conversation.NewUserMessage("hello"),
		conversation.NewAssistantMessage("hi there"),
		conversation.NewAssistantMessage("anything else?"),
	}

	out, err := conversation.ToGatewayMessages(msgs, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].Role != llm.RoleUser {
		t.Errorf("expected only the user turn to remain, got %+v", out)
	}
}

func TestToGatewayMessages_EmptyAfterFiltering(t *testing.T) {
	msgs := []conversation.Message{
		conversation.NewAssistantMessage("hi there"),
	}

	_, err := conversation.ToGatewayMessages(msgs, "")
	if !errors.Is(err, conversation.ErrEmptyHistory) {
		t.Errorf("expected ErrEmptyHistory, got %v", err)
	}
}

func TestNewCallID_Format(t *testing.T) {
	id := conversation.NewCallID()
	if len(id) != len("call_")+24 {
		t.Errorf("call id length = %d, want %d", len(id), len("call_")+24)
	}
	if id[:5] != "call_" {
		t.Errorf("call id prefix = %q, want call_", id[:5])
	}
	if id == conversation.NewCallID() {
		t.Error("call ids must be unique")
	}
}
