package nodes

import (
	"context"
	"time"

	"github.com/smartcs-core/server/internal/agent/graph/prompts"
	"github.com/smartcs-core/server/internal/agent/model"
	logx "github.com/smartcs-core/server/pkg/logger"
)

// GenerationFallbackResponse is used when the completion service fails during
// general response generation.
const GenerationFallbackResponse = "抱歉，我现在无法处理您的请求，请稍后再试。"

// NewGeneralResponder builds the node producing free-form replies for
// general_query. The prompt embeds the current date/time plus yesterday's and
// tomorrow's dates so relative-date questions can be answered. Always
// terminates the turn.
func NewGeneralResponder(completion model.CompletionService) Func {
	return func(ctx context.Context, st *model.TurnState) {
		st.StepCount++

		if st.CurrentIntent == model.IntentGeneralQuery {
			prompt := prompts.RenderGeneral(time.Now(), st.UserInput, prompts.HistoryContext(st.History, historyWindow))
			reply, err := completion.Complete(ctx, prompt)
			if err != nil {
				logx.Warn().Err(err).Msg("completion failed during general response, using fallback")
				st.Response = GenerationFallbackResponse
			} else {
				st.Response = reply
			}
		}

		st.Finished = true
	}
}
