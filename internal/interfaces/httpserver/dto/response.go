package dto

import (
	"github.com/namestorm/server/internal/domain/conversation"
	"github.com/namestorm/server/internal/domain/domaincheck"
)

// FunctionCall reports one checkDomains invocation together with its
// results.
type FunctionCall struct {
	ID      string               `json:"id"`
	Name    string               `json:"name"`
	Args    domaincheck.Request  `json:"args"`
	Results []domaincheck.Result `json:"results,omitempty"`
}

// ChatResponse models POST /v1/chat output.
type ChatResponse struct {
	Text          string         `json:"text"`
	FunctionCalls []FunctionCall `json:"functionCalls,omitempty"`
	DisplayMode   string         `json:"displayMode,omitempty"`
}

// FromMessage maps the final assistant message to the HTTP contract.
func FromMessage(msg conversation.Message) ChatResponse {
	resp := ChatResponse{
		Text:        msg.Content,
		DisplayMode: string(msg.DisplayMode),
	}
	resultsByID := make(map[string][]domaincheck.Result, len(msg.ToolResults))
	for _, r := range msg.ToolResults {
		resultsByID[r.InvocationID] = r.Results
	}
	for _, inv := range msg.ToolInvocations {
		resp.FunctionCalls = append(resp.FunctionCalls, FunctionCall{
			ID:      inv.ID,
			Name:    inv.Name,
			Args:    inv.Args,
			Results: resultsByID[inv.ID],
		})
	}
	return resp
}
