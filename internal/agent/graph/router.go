package graph

import (
	"github.com/smartcs-core/server/internal/agent/graph/nodes"
	"github.com/smartcs-core/server/internal/agent/model"
)

// StepOverflowResponse terminates a turn whose step counter blew the budget
// after some node other than the classifier.
const StepOverflowResponse = "为了更好的服务体验，本次对话将结束。如有需要请重新咨询。"

// Route decides the next node from the current turn state. It is evaluated
// after every non-terminal node with the same branch order; the transition
// table, not this function, restricts which of its answers a node may follow.
//
// Note the vacuous fifth branch: an intent outside the slot schema has an
// empty required-slot list, so it routes to the tool dispatcher, whose
// successor set then terminates the turn.
func Route(st *model.TurnState) nodes.Node {
	if st.Response != "" {
		return nodes.NodeHistoryUpdater
	}
	if st.Finished {
		return nodes.NodeHistoryUpdater
	}
	if st.StepCount > st.MaxSteps {
		st.Response = StepOverflowResponse
		return nodes.NodeHistoryUpdater
	}
	if st.CurrentIntent == model.IntentGeneralQuery {
		return nodes.NodeGeneralResponder
	}

	st.EnsureSlots()
	if st.AllRequiredSlotsFilled() {
		return nodes.NodeToolDispatcher
	}
	if !st.SlotsExtracted {
		return nodes.NodeSlotExtractor
	}
	return nodes.NodeSlotCollector
}
