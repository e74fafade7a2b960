package nodes

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/smartcs-core/server/internal/agent/model"
)

var (
	orderIDPattern   = regexp.MustCompile(`[A-Za-z]{3}\d{6,}`)
	taxNumberPattern = regexp.MustCompile(`\d{15,20}`)
)

// refundReasons maps utterance keywords to canonical refund reasons. Scanned
// in declared order; the first match wins.
var refundReasons = []struct {
	keyword string
	reason  string
}{
	{"质量", "商品质量问题"},
	{"损坏", "商品损坏"},
	{"不满意", "对商品不满意"},
	{"错误", "订单信息错误"},
	{"不想要", "不再需要此商品"},
	{"不喜欢", "对商品不喜欢"},
}

// NewSlotExtractor builds the node that fills still-null slots from the
// current utterance only. Filled slots are never overwritten; re-running the
// extractor on the same input is idempotent.
//
// The refund-reason fallback is deliberately greedy: once the order id is
// known, any utterance that matches no reason keyword is recorded verbatim as
// the reason, including the utterance that supplied the order id. Known
// false-positive risk, kept as documented behavior.
func NewSlotExtractor() Func {
	return func(ctx context.Context, st *model.TurnState) {
		st.StepCount++

		switch st.CurrentIntent {
		case model.IntentQueryOrder, model.IntentApplyRefund, model.IntentCreateInvoice:
		default:
			st.SlotsExtracted = true
			return
		}
		st.EnsureSlots()

		orderMatch := orderIDPattern.FindString(st.UserInput)
		if orderMatch != "" && st.Slots[model.SlotOrderID] == nil {
			v := strings.ToUpper(orderMatch)
			st.Slots[model.SlotOrderID] = &v
		}

		if st.CurrentIntent == model.IntentCreateInvoice {
			// An utterance that is neither an order id nor a tax number and is
			// longer than two characters is taken verbatim as the title. Title
			// capture waits for a known order id so the opening request itself
			// ("我要开发票") is never mistaken for one.
			if filled(st.Slots[model.SlotOrderID]) &&
				st.Slots[model.SlotInvoiceTitle] == nil &&
				utf8.RuneCountInString(st.UserInput) > 2 &&
				orderMatch == "" && !taxNumberPattern.MatchString(st.UserInput) {
				v := st.UserInput
				st.Slots[model.SlotInvoiceTitle] = &v
			}

			if tax := taxNumberPattern.FindString(st.UserInput); tax != "" && st.Slots[model.SlotTaxNumber] == nil {
				v := tax
				st.Slots[model.SlotTaxNumber] = &v
			}

			// "无"/"不需要" declines the tax number: record it as explicitly empty.
			if st.Slots[model.SlotTaxNumber] == nil &&
				(strings.Contains(st.UserInput, "无") || strings.Contains(st.UserInput, "不需要")) {
				v := ""
				st.Slots[model.SlotTaxNumber] = &v
			}
		}

		if st.CurrentIntent == model.IntentApplyRefund &&
			filled(st.Slots[model.SlotOrderID]) && st.Slots[model.SlotReason] == nil {
			reason := st.UserInput
			for _, entry := range refundReasons {
				if strings.Contains(st.UserInput, entry.keyword) {
					reason = entry.reason
					break
				}
			}
			st.Slots[model.SlotReason] = &reason
		}

		st.SlotsExtracted = true
	}
}
