package llm

import "unicode/utf8"

const (
	// DefaultContextLength is used when the model context window is unknown.
	DefaultContextLength = 128000

	// TokenEstimateRatio approximates ~4 characters per token.
	TokenEstimateRatio = 4

	// SafetyMarginRatio reserves space for the response and overhead.
	SafetyMarginRatio = 0.80
)

// EstimateTokens gives a rough token count for one message, including the
// structural overhead of tool calls.
func EstimateTokens(msg ChatMessage) int {
	total := 10
	total += utf8.RuneCountInString(msg.Content) / TokenEstimateRatio
	for _, tc := range msg.ToolCalls {
		total += 20
		total += utf8.RuneCountInString(tc.Function.Name) / TokenEstimateRatio
		total += utf8.RuneCountInString(string(tc.Function.Arguments)) / TokenEstimateRatio
	}
	return total
}

// EstimateHistoryTokens sums the estimates across all messages.
func EstimateHistoryTokens(messages []ChatMessage) int {
	total := 0
	for _, msg := range messages {
		total += EstimateTokens(msg)
	}
	return total
}

// TrimHistory drops the oldest assistant tool-call exchanges until the
// history fits the context window. An assistant turn and the tool results
// answering its call ids are removed together so the remaining history stays
// protocol-valid. System and user turns are never removed; if dropping every
// exchange is still not enough the history is returned as is.
func TrimHistory(messages []ChatMessage, contextLength int) []ChatMessage {
	if contextLength <= 0 {
		contextLength = DefaultContextLength
	}
	maxTokens := int(float64(contextLength) * SafetyMarginRatio)

	if EstimateHistoryTokens(messages) <= maxTokens {
		return messages
	}

	result := append([]ChatMessage(nil), messages...)
	for EstimateHistoryTokens(result) > maxTokens {
		idx := oldestExchange(result)
		if idx < 0 {
			break
		}
		ids := make(map[string]struct{}, len(result[idx].ToolCalls))
		for _, tc := range result[idx].ToolCalls {
			ids[tc.ID] = struct{}{}
		}
		kept := result[:idx:idx]
		for _, msg := range result[idx+1:] {
			if msg.Role == RoleTool && msg.ToolCallID != nil {
				if _, ok := ids[*msg.ToolCallID]; ok {
					continue
				}
			}
			kept = append(kept, msg)
		}
		result = kept
	}
	return result
}

// oldestExchange finds the first removable assistant turn, preferring ones
// that issued tool calls. The last assistant turn is kept so the model keeps
// sight of its most recent reasoning.
func oldestExchange(messages []ChatMessage) int {
	last := -1
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == RoleAssistant {
			last = i
			break
		}
	}
	for i, msg := range messages {
		if i == last {
			continue
		}
		if msg.Role == RoleAssistant && len(msg.ToolCalls) > 0 {
			return i
		}
	}
	for i, msg := range messages {
		if i == last {
			continue
		}
		if msg.Role == RoleAssistant {
			return i
		}
	}
	return -1
}
