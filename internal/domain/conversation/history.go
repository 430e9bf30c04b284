package conversation

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/namestorm/server/internal/domain/domaincheck"
	"github.com/namestorm/server/internal/domain/llm"
)

var (
	// ErrEmptyHistory is returned when filtering leaves no turns to send.
	ErrEmptyHistory = errors.New("conversation: no sendable turns after filtering")
	// ErrBadTrailingTurn is returned when the final turn is neither user-
	// nor tool-authored, which the gateway rejects.
	ErrBadTrailingTurn = errors.New("conversation: last turn must be user- or tool-authored")
)

// ToGatewayMessages translates the internal message sequence into the exact
// turn sequence required by the model gateway.
//
// Rules: a non-blank system instruction becomes the first turn; error-flagged
// and system-role internal messages are dropped; blank user messages are
// dropped; an assistant message without invocations is emitted only if its
// text is non-blank; tool results are emitted only when their invocation id
// was introduced by a preceding assistant turn of this same transformation;
// trailing assistant turns are trimmed since the gateway requires the final
// turn to be user- or tool-authored.
func ToGatewayMessages(messages []Message, systemInstruction string) ([]llm.ChatMessage, error) {
	out := make([]llm.ChatMessage, 0, len(messages)+1)

	if s := strings.TrimSpace(systemInstruction); s != "" {
		out = append(out, llm.ChatMessage{Role: llm.RoleSystem, Content: s})
	}

	introduced := make(map[string]struct{})

	for _, msg := range messages {
		if msg.Err || msg.Pending || msg.Role == RoleSystem {
			continue
		}

		switch msg.Role {
		case RoleUser:
			text := strings.TrimSpace(msg.Content)
			if text == "" {
				continue
			}
			out = append(out, llm.ChatMessage{Role: llm.RoleUser, Content: text})

		case RoleAssistant:
			hasText := strings.TrimSpace(msg.Content) != ""
			if len(msg.ToolInvocations) > 0 {
				turn := llm.ChatMessage{
					Role:      llm.RoleAssistant,
					Content:   msg.Content,
					ToolCalls: make([]llm.ToolCall, 0, len(msg.ToolInvocations)),
				}
				for _, inv := range msg.ToolInvocations {
					args, err := json.Marshal(inv.Args)
					if err != nil {
						continue
					}
					turn.ToolCalls = append(turn.ToolCalls, llm.ToolCall{
						ID:   inv.ID,
						Type: "function",
						Function: llm.ToolFunction{
							Name:      inv.Name,
							Arguments: args,
						},
					})
					introduced[inv.ID] = struct{}{}
				}
				out = append(out, turn)
			} else if hasText {
				out = append(out, llm.ChatMessage{Role: llm.RoleAssistant, Content: msg.Content})
			}

			for _, res := range msg.ToolResults {
				if _, ok := introduced[res.InvocationID]; !ok {
					// Orphaned results violate the gateway's ordering rules.
					continue
				}
				out = append(out, ToolResultMessage(res.InvocationID, res.Results))
			}
		}
	}

	// The gateway rejects a trailing assistant turn.
	for len(out) > 0 && out[len(out)-1].Role == llm.RoleAssistant {
		out = out[:len(out)-1]
	}

	if len(out) == 0 {
		return nil, ErrEmptyHistory
	}
	last := out[len(out)-1]
	if last.Role != llm.RoleUser && last.Role != llm.RoleTool {
		return nil, ErrBadTrailingTurn
	}

	return out, nil
}

// ToolResultMessage encodes checkDomains results as a gateway tool turn.
func ToolResultMessage(invocationID string, results []domaincheck.Result) llm.ChatMessage {
	payload, err := json.Marshal(results)
	if err != nil {
		payload = []byte("[]")
	}
	id := invocationID
	return llm.ChatMessage{
		Role:       llm.RoleTool,
		Content:    string(payload),
		ToolCallID: &id,
	}
}
