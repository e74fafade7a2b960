package nodes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smartcs-core/server/internal/agent/model"
)

func collect(st *model.TurnState) {
	NewSlotCollector()(context.Background(), st)
}

func TestCollectorAsksForSlotsInSchemaOrder(t *testing.T) {
	st := newTurnState("我要开发票")
	st.CurrentIntent = model.IntentCreateInvoice

	collect(st)
	assert.Equal(t, "请问您要为哪个订单开具发票？请提供订单号。", st.Response)
	assert.False(t, st.SlotsCollected)

	st.Response = ""
	st.Slots[model.SlotOrderID] = strp("ORD123456")
	collect(st)
	assert.Equal(t, "请问发票抬头是什么？", st.Response)

	st.Response = ""
	st.Slots[model.SlotInvoiceTitle] = strp("测试公司")
	collect(st)
	assert.Equal(t, "请问纳税人识别号是什么？（如不需要可回复'无'）", st.Response)
}

func TestCollectorMarksCompletionWithoutResponse(t *testing.T) {
	st := newTurnState("无")
	st.CurrentIntent = model.IntentCreateInvoice
	st.Slots[model.SlotOrderID] = strp("ORD123456")
	st.Slots[model.SlotInvoiceTitle] = strp("测试公司")
	st.Slots[model.SlotTaxNumber] = strp("")

	collect(st)

	assert.True(t, st.SlotsCollected)
	assert.Empty(t, st.Response)
}

func TestCollectorRefundPrompts(t *testing.T) {
	st := newTurnState("我要退款")
	st.CurrentIntent = model.IntentApplyRefund

	collect(st)
	assert.Equal(t, "请问您要申请退款的订单号是多少？", st.Response)

	st.Response = ""
	st.Slots[model.SlotOrderID] = strp("ORD123456")
	collect(st)
	assert.Equal(t, "请问您申请退款的原因是什么？", st.Response)
}

func TestCollectorQueryOrderPrompt(t *testing.T) {
	st := newTurnState("帮我查订单")
	st.CurrentIntent = model.IntentQueryOrder

	collect(st)

	assert.Equal(t, "请问您的订单号是多少？", st.Response)
}
