package nodes

import (
	"context"
	"strings"

	"github.com/smartcs-core/server/internal/agent/graph/prompts"
	"github.com/smartcs-core/server/internal/agent/model"
	logx "github.com/smartcs-core/server/pkg/logger"
)

// TooManyTurnsResponse terminates a turn whose step counter blew the budget
// inside the classifier itself.
const TooManyTurnsResponse = "抱歉，对话轮次过多，请重新开始咨询。"

// intentKeywords is the deterministic fallback when the completion service is
// unavailable. Order matters: the first matching entry wins.
var intentKeywords = []struct {
	intent   model.Intent
	keywords []string
}{
	{model.IntentQueryOrder, []string{"查询", "订单", "查订单"}},
	{model.IntentApplyRefund, []string{"退款", "退货"}},
	{model.IntentCreateInvoice, []string{"发票", "开票", "发票开具"}},
}

// NewIntentClassifier builds the entry node. The completion service's reply is
// stored verbatim (trimmed, lowercased) without validating it against the
// known intent set; an unrecognized label falls through the router's default
// branches and is terminated by the transition table.
func NewIntentClassifier(completion model.CompletionService) Func {
	return func(ctx context.Context, st *model.TurnState) {
		st.StepCount++
		if st.StepCount > st.MaxSteps {
			st.Response = TooManyTurnsResponse
			st.Finished = true
			return
		}

		prompt := prompts.RenderIntent(st.UserInput, prompts.HistoryContext(st.History, historyWindow))
		reply, err := completion.Complete(ctx, prompt)
		if err != nil {
			st.CurrentIntent = classifyByKeywords(st.UserInput)
			logx.Warn().
				Err(err).
				Str("intent", string(st.CurrentIntent)).
				Msg("completion failed during classification, used keyword fallback")
			return
		}

		st.CurrentIntent = model.Intent(strings.ToLower(strings.TrimSpace(reply)))
		logx.Debug().Str("intent", string(st.CurrentIntent)).Msg("intent classified")
	}
}

func classifyByKeywords(userInput string) model.Intent {
	lowered := strings.ToLower(userInput)
	for _, entry := range intentKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(lowered, keyword) {
				return entry.intent
			}
		}
	}
	return model.IntentGeneralQuery
}
