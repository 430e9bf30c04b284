package handlers

import (
	"github.com/rs/zerolog"

	"github.com/namestorm/server/internal/domain/chat"
)

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	Chat *ChatHandler
}

// NewProvider constructs the handler provider with domain services.
func NewProvider(chatService chat.Service, defaultTLDs []string, log zerolog.Logger) *Provider {
	return &Provider{
		Chat: NewChatHandler(chatService, defaultTLDs, log),
	}
}
