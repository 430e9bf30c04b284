package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/namestorm/server/internal/domain/chat"
	"github.com/namestorm/server/internal/domain/conversation"
	"github.com/namestorm/server/internal/infrastructure/metrics"
	"github.com/namestorm/server/internal/infrastructure/observability"
	"github.com/namestorm/server/internal/interfaces/httpserver/dto"
	"github.com/namestorm/server/internal/interfaces/httpserver/responses"
)

// ChatHandler exposes the chat endpoint.
type ChatHandler struct {
	service     chat.Service
	defaultTLDs []string
	log         zerolog.Logger
}

// NewChatHandler constructs the handler.
func NewChatHandler(service chat.Service, defaultTLDs []string, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		service:     service,
		defaultTLDs: defaultTLDs,
		log:         log.With().Str("handler", "chat").Logger(),
	}
}

// Chat handles POST /v1/chat. The request carries the prior conversation and
// the latest user utterance as its last message; the response is the final
// assistant text plus the checkDomains invocations made on its behalf.
func (h *ChatHandler) Chat(c *gin.Context) {
	start := time.Now()

	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleBadRequest(c, err)
		h.record(c, start)
		return
	}

	last := req.Messages[len(req.Messages)-1]
	if last.Role != string(conversation.RoleUser) || strings.TrimSpace(last.Content) == "" {
		responses.HandleBadRequest(c, errors.New("last message must be a non-empty user message"))
		h.record(c, start)
		return
	}

	sess := &chat.Session{
		SelectedTLDs:      h.defaultTLDs,
		SystemInstruction: req.SystemInstruction,
	}
	for _, m := range req.Messages[:len(req.Messages)-1] {
		switch conversation.Role(m.Role) {
		case conversation.RoleUser:
			sess.Messages = append(sess.Messages, conversation.NewUserMessage(m.Content))
		case conversation.RoleAssistant:
			sess.Messages = append(sess.Messages, conversation.NewAssistantMessage(m.Content))
		}
	}

	ctx, span := observability.StartChatSpan(c.Request.Context(), len(sess.Messages))
	defer span.End()

	msg, err := h.service.Send(ctx, sess, last.Content)
	if err != nil {
		observability.RecordError(span, err)
		h.log.Error().Err(err).Msg("chat send failed")
		responses.HandleError(c, err, "failed to process chat message")
		h.record(c, start)
		return
	}

	c.JSON(http.StatusOK, dto.FromMessage(msg))
	h.record(c, start)
}

func (h *ChatHandler) record(c *gin.Context, start time.Time) {
	metrics.RecordRequest(
		c.Request.Method,
		c.FullPath(),
		strconv.Itoa(c.Writer.Status()),
		time.Since(start).Seconds(),
	)
}
