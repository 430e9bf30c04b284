package chat

import (
	"github.com/namestorm/server/internal/domain/conversation"
	"github.com/namestorm/server/internal/domain/intent"
)

// Session is the in-memory state of one user conversation. It lives for the
// duration of the interaction only; nothing is persisted across sessions.
type Session struct {
	Messages []conversation.Message

	// LastMode is the operating mode of the previous turn, used by the
	// classifier to resolve continuation cues.
	LastMode intent.Mode

	// Constraint is the TLD restriction carried from the previous turn. It
	// survives only across consecutive brainstorm turns.
	Constraint intent.TLDConstraint

	// SelectedTLDs is the user's globally selected TLD set, the fallback
	// when no restriction applies.
	SelectedTLDs []string

	// SystemInstruction optionally overrides the built-in base prompt.
	SystemInstruction string
}

// History returns the committed messages, excluding a trailing pending
// placeholder if one is present.
func (s *Session) History() []conversation.Message {
	msgs := s.Messages
	if n := len(msgs); n > 0 && msgs[n-1].Pending {
		msgs = msgs[:n-1]
	}
	return msgs
}

// ReplacePending swaps the trailing placeholder for the final message.
func (s *Session) ReplacePending(final conversation.Message) {
	if n := len(s.Messages); n > 0 && s.Messages[n-1].Pending {
		s.Messages[n-1] = final
		return
	}
	s.Messages = append(s.Messages, final)
}
