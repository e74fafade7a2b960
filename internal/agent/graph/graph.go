// Package graph is the dialogue execution engine: a closed set of nodes, a
// pure router and a static transition table driving one turn per Process
// call, with per-session history loaded from and persisted to the session
// store around the run.
package graph

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"

	"github.com/smartcs-core/server/internal/agent/graph/nodes"
	"github.com/smartcs-core/server/internal/agent/model"
	errx "github.com/smartcs-core/server/internal/core/error"
	logx "github.com/smartcs-core/server/pkg/logger"
)

const (
	// EngineFailureResponse is appended to history when a turn fails with an
	// engine error, so conversation continuity survives the failure.
	EngineFailureResponse = "抱歉，系统暂时无法处理您的请求，请稍后再试。"

	defaultMaxSteps       = 10
	defaultRecursionLimit = 50
)

// Config wires the engine's collaborators and budgets.
type Config struct {
	Store      model.SessionStore
	Completion model.CompletionService
	Tools      model.ToolInvoker

	// SessionTimeout bounds session idleness; the store sweeps on access.
	SessionTimeout time.Duration
	// MaxSteps bounds node executions counted by the nodes themselves.
	MaxSteps int
	// RecursionLimit bounds transitions of the run loop as a backstop.
	RecursionLimit int
}

// Engine drives node execution according to the router's decisions until the
// terminal node is reached.
type Engine struct {
	cfg        Config
	nodeFuncs  map[nodes.Node]nodes.Func
	successors map[nodes.Node]map[nodes.Node]bool
}

// New validates dependencies and builds the engine with its transition table.
func New(cfg Config) (*Engine, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("session store is nil")
	}
	if cfg.Completion == nil {
		return nil, fmt.Errorf("completion service is nil")
	}
	if cfg.Tools == nil {
		return nil, fmt.Errorf("tool registry is nil")
	}
	if cfg.MaxSteps <= 0 {
		cfg.MaxSteps = defaultMaxSteps
	}
	if cfg.RecursionLimit <= 0 {
		cfg.RecursionLimit = defaultRecursionLimit
	}

	return &Engine{
		cfg: cfg,
		nodeFuncs: map[nodes.Node]nodes.Func{
			nodes.NodeIntentClassifier: nodes.NewIntentClassifier(cfg.Completion),
			nodes.NodeSlotExtractor:    nodes.NewSlotExtractor(),
			nodes.NodeSlotCollector:    nodes.NewSlotCollector(),
			nodes.NodeToolDispatcher:   nodes.NewToolDispatcher(cfg.Tools),
			nodes.NodeGeneralResponder: nodes.NewGeneralResponder(cfg.Completion),
			nodes.NodeHistoryUpdater:   nodes.NewHistoryUpdater(),
		},
		// The table mirrors the conditional edges of the conversation graph:
		// the router is applied with the same branch order everywhere, but the
		// dispatcher and responder admit only the history updater.
		successors: map[nodes.Node]map[nodes.Node]bool{
			nodes.NodeIntentClassifier: {
				nodes.NodeSlotExtractor:    true,
				nodes.NodeSlotCollector:    true,
				nodes.NodeToolDispatcher:   true,
				nodes.NodeGeneralResponder: true,
				nodes.NodeHistoryUpdater:   true,
			},
			nodes.NodeSlotExtractor: {
				nodes.NodeSlotCollector:    true,
				nodes.NodeToolDispatcher:   true,
				nodes.NodeGeneralResponder: true,
				nodes.NodeHistoryUpdater:   true,
			},
			nodes.NodeSlotCollector: {
				nodes.NodeSlotCollector:    true,
				nodes.NodeSlotExtractor:    true,
				nodes.NodeToolDispatcher:   true,
				nodes.NodeGeneralResponder: true,
				nodes.NodeHistoryUpdater:   true,
			},
			nodes.NodeToolDispatcher: {
				nodes.NodeHistoryUpdater: true,
			},
			nodes.NodeGeneralResponder: {
				nodes.NodeHistoryUpdater: true,
			},
			nodes.NodeHistoryUpdater: {},
		},
	}, nil
}

// Process runs one turn. A missing session id is minted. The returned
// TurnResult is always well-formed: on an internal failure the turn is
// converted into the generic apology, persisted, and returned together with
// the engine error, the only error kind this method surfaces. The caller
// must reject empty input before invoking Process.
func (e *Engine) Process(ctx context.Context, userInput, sessionID string) (*model.TurnResult, error) {
	if strings.TrimSpace(userInput) == "" {
		return nil, errx.WrapEngine(fmt.Errorf("empty user input"))
	}

	if err := e.cfg.Store.SweepExpired(ctx, time.Now(), e.cfg.SessionTimeout); err != nil {
		logx.Warn().Err(err).Msg("session sweep failed")
	}

	if sessionID == "" {
		sessionID = "session_" + uuid.NewString()
	}

	var history []*schema.Message
	var pendingSlots map[string]*string
	sess, err := e.cfg.Store.Get(ctx, sessionID)
	if err != nil {
		return e.failTurn(ctx, sessionID, userInput, nil, nil, err)
	}
	if sess != nil {
		history = sess.History
		pendingSlots = sess.Slots
	}
	if pendingSlots == nil {
		pendingSlots = make(map[string]*string)
	}

	st := &model.TurnState{
		UserInput:     userInput,
		History:       history,
		CurrentIntent: model.IntentUnknown,
		Slots:         pendingSlots,
		MaxSteps:      e.cfg.MaxSteps,
	}

	if err := e.run(ctx, st); err != nil {
		return e.failTurn(ctx, sessionID, userInput, history, pendingSlots, err)
	}

	// A dispatched tool completes the flow; its slots must not leak into the
	// next request on this session.
	persistedSlots := st.Slots
	if st.ToolResult != nil {
		persistedSlots = nil
	}
	if err := e.cfg.Store.Upsert(ctx, sessionID, &model.Session{History: st.History, Slots: persistedSlots}); err != nil {
		return e.failTurn(ctx, sessionID, userInput, history, pendingSlots, err)
	}

	logx.Debug().
		Str("session_id", sessionID).
		Str("intent", string(st.CurrentIntent)).
		Int("steps", st.StepCount).
		Bool("tool_used", st.ToolResult != nil).
		Msg("turn completed")

	return &model.TurnResult{
		Response:      st.Response,
		History:       st.History,
		CurrentIntent: st.CurrentIntent,
		ToolUsed:      st.ToolResult != nil,
		SessionID:     sessionID,
	}, nil
}

// run executes nodes from the fixed entry node until the terminal node,
// validating every router decision against the transition table.
func (e *Engine) run(ctx context.Context, st *model.TurnState) error {
	current := nodes.NodeIntentClassifier
	for transitions := 0; ; transitions++ {
		if transitions >= e.cfg.RecursionLimit {
			return fmt.Errorf("recursion limit %d exhausted at node %s", e.cfg.RecursionLimit, current)
		}

		e.nodeFuncs[current](ctx, st)
		if current == nodes.NodeHistoryUpdater {
			return nil
		}

		next := Route(st)
		if !e.successors[current][next] {
			return fmt.Errorf("invalid transition %s -> %s", current, next)
		}
		current = next
	}
}

// failTurn preserves the "always persist, even on error" contract: the failed
// turn's user message and a generic apology are appended to the pre-run
// history and stored before the engine error is returned.
func (e *Engine) failTurn(ctx context.Context, sessionID, userInput string, history []*schema.Message, slots map[string]*string, cause error) (*model.TurnResult, error) {
	logx.Error().Err(cause).Str("session_id", sessionID).Msg("turn failed")

	history = append(history,
		schema.UserMessage(userInput),
		schema.AssistantMessage(EngineFailureResponse, nil),
	)
	if err := e.cfg.Store.Upsert(ctx, sessionID, &model.Session{History: history, Slots: slots}); err != nil {
		logx.Error().Err(err).Str("session_id", sessionID).Msg("failed to persist session after turn failure")
	}

	return &model.TurnResult{
		Response:      EngineFailureResponse,
		History:       history,
		CurrentIntent: model.IntentUnknown,
		ToolUsed:      false,
		SessionID:     sessionID,
	}, errx.WrapEngine(cause)
}
