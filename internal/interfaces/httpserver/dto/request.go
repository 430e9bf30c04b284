package dto

// ChatMessage is one prior turn supplied by the client.
type ChatMessage struct {
	Role    string `json:"role" binding:"required,oneof=user assistant system"`
	Content string `json:"content"`
}

// ChatRequest models POST /v1/chat input. The last message must be
// user-authored; it is the utterance being answered.
type ChatRequest struct {
	Messages          []ChatMessage `json:"messages" binding:"required,min=1"`
	SystemInstruction string        `json:"systemInstruction,omitempty"`
}
