package tools

import (
	"fmt"

	"github.com/smartcs-core/server/internal/agent/model"
)

// seededOrders is the demo order book.
var seededOrders = map[string]map[string]any{
	"ORD123456": {
		"status":             "已发货",
		"product":            "智能手机",
		"order_date":         "2024-06-10",
		"estimated_delivery": "2024-06-13",
		"shipping_company":   "顺丰速运",
		"tracking_number":    "SF1234567890",
	},
	"ORD789012": {
		"status":             "处理中",
		"product":            "笔记本电脑",
		"order_date":         "2024-06-11",
		"estimated_delivery": "2024-06-15",
	},
}

// QueryOrder looks up an order by id.
func QueryOrder(args map[string]string) model.ToolResult {
	orderID := args[model.SlotOrderID]
	order, ok := seededOrders[orderID]
	if !ok {
		return model.ToolResult{Success: false, Error: fmt.Sprintf("未找到订单 %s", orderID)}
	}
	return model.ToolResult{Success: true, Data: order}
}

// ApplyRefund submits a refund request. The refund id derives from the order
// id alone, so identical input always yields the identical identifier.
func ApplyRefund(args map[string]string) model.ToolResult {
	orderID := args[model.SlotOrderID]
	refundID := "REF" + trimOrderPrefix(orderID)
	return model.ToolResult{
		Success: true,
		Message: fmt.Sprintf("退款申请已提交，退款单号: %s", refundID),
		Data: map[string]any{
			"refund_id":            refundID,
			"order_id":             orderID,
			"reason":               args[model.SlotReason],
			"estimated_processing": "3-5个工作日",
		},
	}
}

// trimOrderPrefix drops the three-letter prefix of an order id. Order ids
// from the extractor always carry one; anything shorter passes through.
func trimOrderPrefix(orderID string) string {
	if len(orderID) > 3 {
		return orderID[3:]
	}
	return orderID
}
