package brainstorm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"github.com/namestorm/server/internal/domain/conversation"
	"github.com/namestorm/server/internal/domain/domaincheck"
	"github.com/namestorm/server/internal/domain/llm"
	"github.com/namestorm/server/internal/infrastructure/metrics"
	"github.com/namestorm/server/internal/infrastructure/observability"
)

// DefaultTarget is the number of available domains collected when the user
// did not ask for a specific count.
const DefaultTarget = 3

// Options carries the tuning knobs of the loop. The numeric bounds are
// heuristics meant to be re-tuned empirically, not correctness constraints.
type Options struct {
	Model            string
	Temperature      float64
	RetryTemperature float64

	MinBatch     int
	MaxBatch     int
	RareMinBatch int
	RareMaxBatch int

	// TargetMultiplier sizes exploratory batches for minimum-only targets;
	// HardCapMultiplier sizes the more targeted batches of exact requests.
	TargetMultiplier  float64
	HardCapMultiplier float64

	MaxWallTime     time.Duration
	RareMaxWallTime time.Duration

	Now func() time.Time
}

// DefaultOptions returns the tuned defaults.
func DefaultOptions() Options {
	return Options{
		Model:             "gpt-4o-mini",
		Temperature:       0.9,
		RetryTemperature:  0.2,
		MinBatch:          10,
		MaxBatch:          25,
		RareMinBatch:      20,
		RareMaxBatch:      40,
		TargetMultiplier:  2.5,
		HardCapMultiplier: 3.5,
		MaxWallTime:       25 * time.Second,
		RareMaxWallTime:   35 * time.Second,
		Now:               time.Now,
	}
}

// commonTLDs have a high enough hit rate that batches stay small. A forced
// TLD outside this set widens batches and the wall-time budget.
var commonTLDs = map[string]struct{}{
	".com": {}, ".net": {}, ".org": {}, ".io": {}, ".co": {},
	".ai": {}, ".app": {}, ".dev": {},
}

// Params describes one loop invocation.
type Params struct {
	// History is the working conversation in gateway format, ending with a
	// user- or tool-authored turn.
	History []llm.ChatMessage
	// SystemPrompt is the base instruction the per-round directive is
	// appended to.
	SystemPrompt string

	TargetCount int
	// HardCap, when non-zero, is the exact requested count; reaching it
	// terminates the loop immediately.
	HardCap int

	ForcedTLDs []string
	// UserTLDs is the globally selected TLD set, the fallback when no
	// restriction applies.
	UserTLDs []string

	French bool
}

// Result is the outcome of one loop run.
type Result struct {
	Available []domaincheck.Result
	Checked   []string
	Rounds    int
	Elapsed   time.Duration
	Summary   string
}

// Engine drives repeated gateway calls, executes checkDomains invocations
// against the availability checker and accumulates unique available domains
// until the target, the round ceiling or the wall-time budget is hit.
type Engine struct {
	gateway llm.Provider
	checker domaincheck.Checker
	opts    Options
	log     zerolog.Logger
}

// NewEngine wires the loop engine.
func NewEngine(gateway llm.Provider, checker domaincheck.Checker, opts Options, log zerolog.Logger) *Engine {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Engine{
		gateway: gateway,
		checker: checker,
		opts:    opts,
		log:     log.With().Str("component", "brainstorm-engine").Logger(),
	}
}

// loopState is the ephemeral accumulator of one run.
type loopState struct {
	working      []llm.ChatMessage
	checkedSet   map[string]struct{}
	checkedOrder []string
	foundByKey   map[string]domaincheck.Result
	foundOrder   []string
}

func (st *loopState) foundResults() []domaincheck.Result {
	out := make([]domaincheck.Result, 0, len(st.foundOrder))
	for _, key := range st.foundOrder {
		out = append(out, st.foundByKey[key])
	}
	return out
}

// Run executes the brainstorm loop. Gateway failures abort the run; checker
// failures never do, they surface as unknown statuses on individual pairs.
func (e *Engine) Run(ctx context.Context, p Params) (*Result, error) {
	target := p.TargetCount
	if target <= 0 {
		target = DefaultTarget
	}
	if p.HardCap > 0 {
		target = p.HardCap
	}

	rare := rareTLDForced(p.ForcedTLDs)
	maxRounds := clampInt(target*12, 14, 90)
	budget := e.opts.MaxWallTime
	if rare {
		budget = e.opts.RareMaxWallTime
	}

	start := e.opts.Now()
	st := &loopState{
		working:    append([]llm.ChatMessage(nil), p.History...),
		checkedSet: make(map[string]struct{}),
		foundByKey: make(map[string]domaincheck.Result),
	}

	rounds := 0
	streak := 0

	for len(st.foundOrder) < target && rounds < maxRounds && e.opts.Now().Sub(start) < budget {
		instr := RoundInstruction{
			Target:     target,
			HardCap:    p.HardCap,
			Remaining:  target - len(st.foundOrder),
			BatchSize:  e.batchSize(target-len(st.foundOrder), p.HardCap > 0, rare),
			ForcedTLDs: p.ForcedTLDs,
			Found:      st.foundOrder,
			Checked:    st.checkedOrder,
		}

		st.working = llm.TrimHistory(st.working, llm.DefaultContextLength)

		messages := make([]llm.ChatMessage, 0, len(st.working)+1)
		messages = append(messages, llm.ChatMessage{
			Role:    llm.RoleSystem,
			Content: strings.TrimSpace(p.SystemPrompt) + "\n\n" + instr.Render(),
		})
		messages = append(messages, st.working...)

		choice, err := e.complete(ctx, messages)
		if err != nil {
			return nil, fmt.Errorf("model gateway: %w", err)
		}

		// An assistant turn with neither text nor a tool call is invalid on
		// the wire; when the reply stays empty even after the forced-tool
		// retry the turn is dropped and the miss is nudged like any other.
		if !emptyReply(choice) {
			st.working = append(st.working, choice.Message)
		}

		switch {
		case len(choice.Message.ToolCalls) > 0:
			for _, call := range choice.Message.ToolCalls {
				e.executeToolCall(ctx, st, call, p)
			}
			streak = 0

		default:
			names := ParseCandidateNames(choice.Message.Content)
			if len(names) > 0 {
				// Treat the parsed list exactly as a tool invocation. The
				// synthetic call keeps the working history protocol-valid.
				id := conversation.NewCallID()
				args := domaincheck.Request{Names: names}
				raw, _ := json.Marshal(args)
				st.working[len(st.working)-1].ToolCalls = []llm.ToolCall{{
					ID:   id,
					Type: "function",
					Function: llm.ToolFunction{
						Name:      ToolCheckDomains,
						Arguments: raw,
					},
				}}
				e.runCheck(ctx, st, id, args, p)
				streak = 0
			} else {
				streak++
				st.working = append(st.working, llm.ChatMessage{
					Role:    llm.RoleUser,
					Content: NudgeMessage(streak),
				})
				e.log.Debug().Int("streak", streak).Msg("model answered without a tool call")
			}
		}

		rounds++

		if p.HardCap > 0 && len(st.foundOrder) >= p.HardCap {
			break
		}
	}

	found := st.foundResults()
	if p.HardCap > 0 && len(found) > p.HardCap {
		found = found[:p.HardCap]
	}

	elapsed := e.opts.Now().Sub(start)
	res := &Result{
		Available: found,
		Checked:   st.checkedOrder,
		Rounds:    rounds,
		Elapsed:   elapsed,
		Summary:   ComposeSummary(found, target, rounds, elapsed, p.French),
	}

	metrics.RecordBrainstormRun(rounds, len(found))
	observability.AddLoopStats(trace.SpanFromContext(ctx), rounds, len(st.checkedOrder), len(found))
	e.log.Info().
		Int("rounds", rounds).
		Int("found", len(found)).
		Int("checked", len(st.checkedOrder)).
		Dur("elapsed", elapsed).
		Msg("brainstorm loop finished")

	return res, nil
}

// executeToolCall validates and runs one model-issued invocation. Unknown
// tools and malformed arguments are answered with an error payload so every
// call id still receives a correlated result turn.
func (e *Engine) executeToolCall(ctx context.Context, st *loopState, call llm.ToolCall, p Params) {
	if call.Function.Name != ToolCheckDomains {
		st.working = append(st.working, toolErrorMessage(call.ID, "unknown tool: "+call.Function.Name))
		return
	}
	args, err := ParseCheckDomainsArgs(call.Function.Arguments)
	if err != nil {
		st.working = append(st.working, toolErrorMessage(call.ID, err.Error()))
		return
	}
	e.runCheck(ctx, st, call.ID, args, p)
}

// runCheck normalizes the requested names, drops the already-checked ones,
// resolves the effective TLD set, queries the checker and folds available
// results into the ordered accumulator.
func (e *Engine) runCheck(ctx context.Context, st *loopState, callID string, args domaincheck.Request, p Params) {
	names := make([]string, 0, len(args.Names))
	for _, name := range domaincheck.NormalizeNames(args.Names) {
		if _, done := st.checkedSet[name]; done {
			continue
		}
		names = append(names, name)
	}

	tlds := p.ForcedTLDs
	if len(tlds) == 0 {
		tlds = args.TLDs
	}
	if len(tlds) == 0 {
		tlds = p.UserTLDs
	}

	var results []domaincheck.Result
	if len(names) > 0 {
		results = e.checker.Check(ctx, names, tlds)
	}

	for _, name := range names {
		st.checkedSet[name] = struct{}{}
		st.checkedOrder = append(st.checkedOrder, name)
	}

	for _, r := range results {
		if r.Status != domaincheck.StatusAvailable {
			continue
		}
		if p.HardCap > 0 && len(st.foundOrder) >= p.HardCap {
			break
		}
		if _, dup := st.foundByKey[r.Domain]; dup {
			continue
		}
		st.foundByKey[r.Domain] = r
		st.foundOrder = append(st.foundOrder, r.Domain)
	}

	st.working = append(st.working, conversation.ToolResultMessage(callID, results))
}

// complete calls the gateway once, retrying exactly once with a forced tool
// choice and a lower temperature when the reply has neither text nor a tool
// call.
func (e *Engine) complete(ctx context.Context, messages []llm.ChatMessage) (*llm.ChatCompletionChoice, error) {
	temp := e.opts.Temperature
	req := llm.ChatCompletionRequest{
		Model:       e.opts.Model,
		Messages:    messages,
		Tools:       []llm.ToolDefinition{CheckDomainsTool()},
		Temperature: &temp,
	}

	choice, err := e.completeOnce(ctx, req)
	if err != nil {
		return nil, err
	}
	if !emptyReply(choice) {
		return choice, nil
	}

	retryTemp := e.opts.RetryTemperature
	req.ToolChoice = llm.ForceTool(ToolCheckDomains)
	req.Temperature = &retryTemp

	e.log.Warn().Msg("gateway returned an empty reply, retrying with forced tool choice")
	return e.completeOnce(ctx, req)
}

func (e *Engine) completeOnce(ctx context.Context, req llm.ChatCompletionRequest) (*llm.ChatCompletionChoice, error) {
	resp, err := e.gateway.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("gateway returned no choices")
	}
	choice := resp.Choices[0]
	return &choice, nil
}

func emptyReply(choice *llm.ChatCompletionChoice) bool {
	return strings.TrimSpace(choice.Message.Content) == "" && len(choice.Message.ToolCalls) == 0
}

// batchSize implements the next-batch heuristic. Bounds widen when a rare
// TLD is forced; the multiplier grows when an exact count was requested.
func (e *Engine) batchSize(remaining int, hardCap, rare bool) int {
	minBatch, maxBatch := e.opts.MinBatch, e.opts.MaxBatch
	if rare {
		minBatch, maxBatch = e.opts.RareMinBatch, e.opts.RareMaxBatch
	}
	mult := e.opts.TargetMultiplier
	if hardCap {
		mult = e.opts.HardCapMultiplier
	}
	desired := int(math.Ceil(math.Max(float64(minBatch), float64(remaining)*mult)))
	return clampInt(desired, minBatch, maxBatch)
}

func toolErrorMessage(callID, msg string) llm.ChatMessage {
	payload, _ := json.Marshal(map[string]string{"error": msg})
	id := callID
	return llm.ChatMessage{
		Role:       llm.RoleTool,
		Content:    string(payload),
		ToolCallID: &id,
	}
}

func rareTLDForced(forced []string) bool {
	for _, tld := range forced {
		if _, common := commonTLDs[tld]; !common {
			return true
		}
	}
	return false
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
