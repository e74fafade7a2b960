package nodes

import (
	"context"

	"github.com/smartcs-core/server/internal/agent/model"
)

// slotPrompts holds the follow-up question for each (intent, slot) pair.
var slotPrompts = map[model.Intent]map[string]string{
	model.IntentQueryOrder: {
		model.SlotOrderID: "请问您的订单号是多少？",
	},
	model.IntentApplyRefund: {
		model.SlotOrderID: "请问您要申请退款的订单号是多少？",
		model.SlotReason:  "请问您申请退款的原因是什么？",
	},
	model.IntentCreateInvoice: {
		model.SlotOrderID:      "请问您要为哪个订单开具发票？请提供订单号。",
		model.SlotInvoiceTitle: "请问发票抬头是什么？",
		model.SlotTaxNumber:    "请问纳税人识别号是什么？（如不需要可回复'无'）",
	},
}

// NewSlotCollector builds the node that asks for the first still-null slot in
// schema order, or marks collection complete. Purely a prompt generator; it
// never calls the completion service.
func NewSlotCollector() Func {
	return func(ctx context.Context, st *model.TurnState) {
		st.StepCount++
		st.EnsureSlots()

		for _, name := range model.RequiredSlots(st.CurrentIntent) {
			if st.Slots[name] == nil {
				st.Response = slotPrompts[st.CurrentIntent][name]
				return
			}
		}
		st.SlotsCollected = true
	}
}
