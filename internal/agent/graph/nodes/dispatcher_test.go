package nodes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcs-core/server/internal/agent/model"
	"github.com/smartcs-core/server/internal/agent/tools"
)

func dispatch(st *model.TurnState) {
	NewToolDispatcher(tools.NewRegistry())(context.Background(), st)
}

func TestDispatcherQueryOrderFormatsShippedOrder(t *testing.T) {
	st := newTurnState("ORD123456")
	st.CurrentIntent = model.IntentQueryOrder
	st.Slots[model.SlotOrderID] = strp("ORD123456")

	dispatch(st)

	require.NotNil(t, st.ToolResult)
	assert.True(t, st.Finished)
	assert.Equal(t,
		"订单状态: 已发货\n商品: 智能手机\n下单日期: 2024-06-10\n预计送达: 2024-06-13\n快递公司: 顺丰速运\n运单号: SF1234567890",
		st.Response)
}

func TestDispatcherQueryOrderOmitsMissingTracking(t *testing.T) {
	st := newTurnState("ORD789012")
	st.CurrentIntent = model.IntentQueryOrder
	st.Slots[model.SlotOrderID] = strp("ORD789012")

	dispatch(st)

	assert.Equal(t,
		"订单状态: 处理中\n商品: 笔记本电脑\n下单日期: 2024-06-11\n预计送达: 2024-06-15",
		st.Response)
}

func TestDispatcherQueryOrderUnknownID(t *testing.T) {
	st := newTurnState("ORD000000")
	st.CurrentIntent = model.IntentQueryOrder
	st.Slots[model.SlotOrderID] = strp("ORD000000")

	dispatch(st)

	require.NotNil(t, st.ToolResult)
	assert.False(t, st.ToolResult.Success)
	assert.Equal(t, "抱歉，未找到订单 ORD000000", st.Response)
	assert.True(t, st.Finished, "tool domain failures still terminate the turn")
}

func TestDispatcherApplyRefund(t *testing.T) {
	st := newTurnState("质量有问题")
	st.CurrentIntent = model.IntentApplyRefund
	st.Slots[model.SlotOrderID] = strp("ORD789012")
	st.Slots[model.SlotReason] = strp("商品质量问题")

	dispatch(st)

	assert.Equal(t, "退款申请已提交，退款单号: REF789012", st.Response)
	assert.True(t, st.Finished)
}

func TestDispatcherCreateInvoiceWithDeclinedTaxNumber(t *testing.T) {
	st := newTurnState("无")
	st.CurrentIntent = model.IntentCreateInvoice
	st.Slots[model.SlotOrderID] = strp("ORD123456")
	st.Slots[model.SlotInvoiceTitle] = strp("测试公司")
	st.Slots[model.SlotTaxNumber] = strp("")

	dispatch(st)

	assert.Equal(t, "发票开具成功，发票号: INV123456", st.Response)
	require.NotNil(t, st.ToolResult)
	assert.Equal(t, "", st.ToolResult.Data["tax_number"])
}

func TestDispatcherNoOpWithoutMatchingPreconditions(t *testing.T) {
	st := newTurnState("随便说点什么")
	st.CurrentIntent = model.Intent("definitely_not_an_intent")

	dispatch(st)

	assert.Nil(t, st.ToolResult)
	assert.Empty(t, st.Response)
	assert.False(t, st.Finished)
}
