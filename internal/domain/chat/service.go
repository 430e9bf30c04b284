package chat

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/namestorm/server/internal/domain/brainstorm"
	"github.com/namestorm/server/internal/domain/conversation"
	"github.com/namestorm/server/internal/domain/domaincheck"
	"github.com/namestorm/server/internal/domain/intent"
)

// ErrGatewayNotConfigured is returned when the model gateway credential is
// missing. Configuration errors are fatal and never retried.
var ErrGatewayNotConfigured = errors.New("chat: model gateway credential is not configured")

// Service handles one user send action end to end.
type Service interface {
	Send(ctx context.Context, sess *Session, text string) (conversation.Message, error)
}

// ServiceImpl provides the domain implementation.
type ServiceImpl struct {
	engine       *brainstorm.Engine
	checker      domaincheck.Checker
	defaultTLDs  []string
	gatewayReady bool
	log          zerolog.Logger
}

// NewService wires dependencies.
func NewService(engine *brainstorm.Engine, checker domaincheck.Checker, defaultTLDs []string, gatewayReady bool, log zerolog.Logger) *ServiceImpl {
	return &ServiceImpl{
		engine:       engine,
		checker:      checker,
		defaultTLDs:  defaultTLDs,
		gatewayReady: gatewayReady,
		log:          log.With().Str("component", "chat-service").Logger(),
	}
}

var _ Service = (*ServiceImpl)(nil)

// Send appends the user utterance and a pending assistant placeholder to the
// session, classifies the utterance, runs the selected mode and replaces the
// placeholder with the final message. On a fatal error the placeholder is
// replaced with a plain apologetic message; the rest of the conversation
// stays intact and resumable.
func (s *ServiceImpl) Send(ctx context.Context, sess *Session, text string) (conversation.Message, error) {
	sess.Messages = append(sess.Messages, conversation.NewUserMessage(text))
	sess.Messages = append(sess.Messages, conversation.NewPendingMessage())

	french := intent.LooksFrench(text)

	if !s.gatewayReady {
		return s.fail(sess, french, ErrGatewayNotConfigured)
	}

	mode := intent.Classify(text, sess.LastMode)
	constraint := intent.ResolveTLDConstraint(text, sess.Constraint)

	var final conversation.Message
	var err error
	switch mode {
	case intent.ModeCheck:
		final = s.runCheck(ctx, sess, text, constraint, french)
	default:
		final, err = s.runBrainstorm(ctx, sess, text, constraint, french)
	}
	if err != nil {
		return s.fail(sess, french, err)
	}

	sess.ReplacePending(final)
	sess.LastMode = mode
	if mode == intent.ModeBrainstorm {
		sess.Constraint = constraint
	} else {
		// The restriction survives only across consecutive brainstorm turns.
		sess.Constraint = intent.TLDConstraint{Kind: intent.ConstraintNone}
	}

	return final, nil
}

// runCheck performs the single-shot availability check for explicit domains
// or a short token combined with the effective TLD set.
func (s *ServiceImpl) runCheck(ctx context.Context, sess *Session, text string, constraint intent.TLDConstraint, french bool) conversation.Message {
	var results []domaincheck.Result
	var checkedNames, checkedTLDs []string

	if reqs := intent.ExtractDomains(text); len(reqs) > 0 {
		for _, req := range reqs {
			results = append(results, s.checker.Check(ctx, req.Names, req.TLDs)...)
			checkedNames = append(checkedNames, req.Names...)
			checkedTLDs = append(checkedTLDs, req.TLDs...)
		}
	} else if name := extractCheckTarget(text); name != "" {
		tlds := constraint.Effective(s.selectedTLDs(sess))
		results = s.checker.Check(ctx, []string{name}, tlds)
		checkedNames = []string{name}
		checkedTLDs = tlds
	}

	msg := conversation.NewAssistantMessage(renderCheckResults(results, french))
	msg.DisplayMode = conversation.DisplayAll
	if len(results) > 0 {
		inv := conversation.ToolInvocation{
			ID:   conversation.NewCallID(),
			Name: brainstorm.ToolCheckDomains,
			Args: domaincheck.Request{Names: checkedNames, TLDs: checkedTLDs},
		}
		msg.ToolInvocations = []conversation.ToolInvocation{inv}
		msg.ToolResults = []conversation.ToolResult{{
			InvocationID: inv.ID,
			Name:         inv.Name,
			Results:      results,
		}}
	}
	return msg
}

// runBrainstorm translates the committed history to gateway format and
// drives the loop engine.
func (s *ServiceImpl) runBrainstorm(ctx context.Context, sess *Session, text string, constraint intent.TLDConstraint, french bool) (conversation.Message, error) {
	history, err := conversation.ToGatewayMessages(sess.History(), "")
	if err != nil {
		return conversation.Message{}, fmt.Errorf("translate history: %w", err)
	}

	params := brainstorm.Params{
		History:      history,
		SystemPrompt: s.systemPrompt(sess),
		TargetCount:  brainstorm.DefaultTarget,
		UserTLDs:     s.selectedTLDs(sess),
		French:       french,
	}
	if count, ok := intent.ExtractRequestedCount(text); ok {
		params.TargetCount = count
		params.HardCap = count
	}
	if constraint.Active() {
		params.ForcedTLDs = constraint.TLDs
	}

	res, err := s.engine.Run(ctx, params)
	if err != nil {
		return conversation.Message{}, err
	}

	msg := conversation.NewAssistantMessage(res.Summary)
	msg.DisplayMode = conversation.DisplayAvailable
	if len(res.Checked) > 0 {
		inv := conversation.ToolInvocation{
			ID:   conversation.NewCallID(),
			Name: brainstorm.ToolCheckDomains,
			Args: domaincheck.Request{Names: res.Checked, TLDs: constraint.Effective(s.selectedTLDs(sess))},
		}
		msg.ToolInvocations = []conversation.ToolInvocation{inv}
		msg.ToolResults = []conversation.ToolResult{{
			InvocationID: inv.ID,
			Name:         inv.Name,
			Results:      res.Available,
		}}
	}
	return msg, nil
}

// selectedTLDs resolves the unrestricted TLD set: the session's selection
// when present, the configured default otherwise.
func (s *ServiceImpl) selectedTLDs(sess *Session) []string {
	if len(sess.SelectedTLDs) > 0 {
		return sess.SelectedTLDs
	}
	return s.defaultTLDs
}

func (s *ServiceImpl) systemPrompt(sess *Session) string {
	if strings.TrimSpace(sess.SystemInstruction) != "" {
		return sess.SystemInstruction
	}
	return DefaultSystemPrompt
}

// fail replaces the placeholder with an apologetic error message and stops
// the send action.
func (s *ServiceImpl) fail(sess *Session, french bool, err error) (conversation.Message, error) {
	s.log.Error().Err(err).Msg("send action failed")
	text := "Sorry, something went wrong while processing your request. Please try again."
	if french {
		text = "Désolé, une erreur est survenue lors du traitement de votre demande. Veuillez réessayer."
	}
	msg := conversation.NewAssistantMessage(text)
	msg.Err = true
	sess.ReplacePending(msg)
	return msg, err
}

var checkStopWords = map[string]struct{}{
	"check": {}, "is": {}, "if": {}, "the": {}, "a": {}, "available": {},
	"free": {}, "taken": {}, "domain": {}, "please": {}, "whether": {},
	"vérifie": {}, "verifie": {}, "disponible": {}, "le": {}, "est": {},
}

var quotedRe = regexp.MustCompile(`["'` + "`" + `]([^"'` + "`" + `]{1,40})["'` + "`" + `]`)

// extractCheckTarget pulls the base name out of a "check X" style utterance:
// a quoted token wins, otherwise the last word that is not checking
// vocabulary.
func extractCheckTarget(text string) string {
	if m := quotedRe.FindStringSubmatch(text); m != nil {
		return domaincheck.NormalizeName(m[1])
	}
	fields := strings.Fields(strings.ToLower(text))
	for i := len(fields) - 1; i >= 0; i-- {
		w := strings.Trim(fields[i], ".,!?;:")
		if _, stop := checkStopWords[w]; stop {
			continue
		}
		return domaincheck.NormalizeName(w)
	}
	return ""
}

func renderCheckResults(results []domaincheck.Result, french bool) string {
	if len(results) == 0 {
		if french {
			return "Je n'ai pas trouvé de domaine à vérifier dans votre message."
		}
		return "I could not find a domain to check in your message."
	}

	var b strings.Builder
	if french {
		b.WriteString("Voici le résultat de la vérification :\n")
	} else {
		b.WriteString("Here is what I found:\n")
	}
	for _, r := range results {
		var status string
		switch r.Status {
		case domaincheck.StatusAvailable:
			status = "available"
			if french {
				status = "disponible"
			}
		case domaincheck.StatusTaken:
			status = "taken"
			if french {
				status = "pris"
			}
		default:
			status = "unknown"
			if french {
				status = "indéterminé"
			}
		}
		fmt.Fprintf(&b, "- %s: %s\n", r.Domain, status)
	}
	return strings.TrimRight(b.String(), "\n")
}
