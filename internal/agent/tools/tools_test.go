package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcs-core/server/internal/agent/model"
)

func TestQueryOrder(t *testing.T) {
	result := QueryOrder(map[string]string{model.SlotOrderID: "ORD123456"})

	require.True(t, result.Success)
	assert.Equal(t, "已发货", result.Data["status"])
	assert.Equal(t, "智能手机", result.Data["product"])
	assert.Equal(t, "SF1234567890", result.Data["tracking_number"])
}

func TestQueryOrderUnknown(t *testing.T) {
	result := QueryOrder(map[string]string{model.SlotOrderID: "ORD000000"})

	assert.False(t, result.Success)
	assert.Equal(t, "未找到订单 ORD000000", result.Error)
}

func TestApplyRefundDeterministic(t *testing.T) {
	args := map[string]string{
		model.SlotOrderID: "ORD789012",
		model.SlotReason:  "商品质量问题",
	}

	first := ApplyRefund(args)
	second := ApplyRefund(args)

	require.True(t, first.Success)
	assert.Equal(t, "REF789012", first.Data["refund_id"])
	assert.Equal(t, first.Data["refund_id"], second.Data["refund_id"], "same order id must yield the same refund id")
	assert.Equal(t, "退款申请已提交，退款单号: REF789012", first.Message)
	assert.Equal(t, "商品质量问题", first.Data["reason"])
}

func TestCreateInvoice(t *testing.T) {
	result := CreateInvoice(map[string]string{
		model.SlotOrderID:      "ORD123456",
		model.SlotInvoiceTitle: "测试公司",
		model.SlotTaxNumber:    "123456789012345",
	})

	require.True(t, result.Success)
	assert.Equal(t, "INV123456", result.Data["invoice_id"])
	assert.Equal(t, "测试公司", result.Data["invoice_title"])
	assert.Equal(t, "123456789012345", result.Data["tax_number"])
	assert.Equal(t, "发票开具成功，发票号: INV123456", result.Message)
}

func TestCreateInvoiceWithoutTaxNumber(t *testing.T) {
	result := CreateInvoice(map[string]string{
		model.SlotOrderID:      "ORD789012",
		model.SlotInvoiceTitle: "个人用户",
	})

	require.True(t, result.Success)
	assert.Equal(t, "INV789012", result.Data["invoice_id"])
	assert.Equal(t, "", result.Data["tax_number"])
}

func TestQueryInvoice(t *testing.T) {
	result := QueryInvoice(map[string]string{"invoice_id": "INV123456"})

	require.True(t, result.Success)
	assert.Equal(t, "已开具", result.Data["status"])

	missing := QueryInvoice(map[string]string{"invoice_id": "INV000000"})
	assert.False(t, missing.Success)
}

func TestRegistryInvokeUnknownTool(t *testing.T) {
	registry := NewRegistry()

	_, ok := registry.Invoke("definitely_not_a_tool", nil)

	assert.False(t, ok)
}

func TestRegistryNames(t *testing.T) {
	registry := NewRegistry()

	assert.Equal(t, []string{"apply_refund", "create_invoice", "query_invoice", "query_order"}, registry.Names())
}

func TestRegistryReplace(t *testing.T) {
	registry := NewRegistry()

	replaced := registry.Replace("query_order", func(args map[string]string) model.ToolResult {
		return model.ToolResult{Success: true, Message: "替换后的实现"}
	})
	require.True(t, replaced)

	result, ok := registry.Invoke("query_order", map[string]string{model.SlotOrderID: "ORD123456"})
	require.True(t, ok)
	assert.Equal(t, "替换后的实现", result.Message)

	assert.False(t, registry.Replace("definitely_not_a_tool", QueryOrder), "replacing an unregistered name must not register it")
	_, ok = registry.Invoke("definitely_not_a_tool", nil)
	assert.False(t, ok)
}
