package nodes

import (
	"context"

	"github.com/cloudwego/eino/schema"

	"github.com/smartcs-core/server/internal/agent/model"
)

// NewHistoryUpdater builds the terminal node. It appends the turn's user
// message and, when a reply was produced, the assistant message. The engine
// stops after it unconditionally.
func NewHistoryUpdater() Func {
	return func(ctx context.Context, st *model.TurnState) {
		st.History = append(st.History, schema.UserMessage(st.UserInput))
		if st.Response != "" {
			st.History = append(st.History, schema.AssistantMessage(st.Response, nil))
		}
	}
}
