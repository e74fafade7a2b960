// Package nodes implements the processing nodes of the dialogue graph. Every
// node is a Func mutating the shared TurnState. Nodes never return errors:
// completion-service and tool failures are recovered in place with fallback
// behavior, so only the engine's run loop can fail a turn.
package nodes

import (
	"context"

	"github.com/smartcs-core/server/internal/agent/model"
)

// Node names the cases of the closed node enumeration. The router returns one
// of these and the engine validates it against the transition table.
type Node string

const (
	NodeIntentClassifier Node = "intent_classifier"
	NodeSlotExtractor    Node = "slot_extractor"
	NodeSlotCollector    Node = "slot_collector"
	NodeToolDispatcher   Node = "tool_dispatcher"
	NodeGeneralResponder Node = "general_responder"
	NodeHistoryUpdater   Node = "history_updater"
)

// Func is one node invocation within a turn.
type Func func(ctx context.Context, st *model.TurnState)

// historyWindow is how many trailing history messages the LLM prompts see.
const historyWindow = 3

// filled reports a slot that is present and non-empty. An explicitly declined
// slot (pointer to "") is present but not filled.
func filled(p *string) bool {
	return p != nil && *p != ""
}
