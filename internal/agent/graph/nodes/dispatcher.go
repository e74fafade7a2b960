package nodes

import (
	"context"
	"fmt"
	"strings"

	"github.com/smartcs-core/server/internal/agent/model"
	logx "github.com/smartcs-core/server/pkg/logger"
)

// Tool names as registered in the registry.
const (
	ToolQueryOrder    = "query_order"
	ToolApplyRefund   = "apply_refund"
	ToolCreateInvoice = "create_invoice"
)

// NewToolDispatcher builds the node that invokes the registry operation
// matching the current intent once its preconditions hold, formats the result
// into user-facing text and terminates the turn. A registry-reported failure
// becomes an apologetic message, never an engine error. When no precondition
// matches (e.g. an unrecognized intent) the node is a no-op and the engine's
// transition table ends the turn through the error path.
func NewToolDispatcher(registry model.ToolInvoker) Func {
	return func(ctx context.Context, st *model.TurnState) {
		st.StepCount++
		st.EnsureSlots()

		switch {
		case st.CurrentIntent == model.IntentQueryOrder && filled(st.Slots[model.SlotOrderID]):
			result, ok := registry.Invoke(ToolQueryOrder, map[string]string{
				model.SlotOrderID: *st.Slots[model.SlotOrderID],
			})
			if !ok {
				logx.Error().Str("tool", ToolQueryOrder).Msg("tool not registered")
				return
			}
			st.ToolResult = &result
			if result.Success {
				st.Response = formatOrder(result.Data)
			} else {
				st.Response = fmt.Sprintf("抱歉，%s", result.Error)
			}
			st.Finished = true

		case st.CurrentIntent == model.IntentApplyRefund &&
			filled(st.Slots[model.SlotOrderID]) && filled(st.Slots[model.SlotReason]):
			result, ok := registry.Invoke(ToolApplyRefund, map[string]string{
				model.SlotOrderID: *st.Slots[model.SlotOrderID],
				model.SlotReason:  *st.Slots[model.SlotReason],
			})
			if !ok {
				logx.Error().Str("tool", ToolApplyRefund).Msg("tool not registered")
				return
			}
			st.ToolResult = &result
			st.Response = resultMessage(result)
			st.Finished = true

		case st.CurrentIntent == model.IntentCreateInvoice &&
			filled(st.Slots[model.SlotOrderID]) && filled(st.Slots[model.SlotInvoiceTitle]):
			taxNumber := ""
			if p := st.Slots[model.SlotTaxNumber]; p != nil {
				taxNumber = *p
			}
			result, ok := registry.Invoke(ToolCreateInvoice, map[string]string{
				model.SlotOrderID:      *st.Slots[model.SlotOrderID],
				model.SlotInvoiceTitle: *st.Slots[model.SlotInvoiceTitle],
				model.SlotTaxNumber:    taxNumber,
			})
			if !ok {
				logx.Error().Str("tool", ToolCreateInvoice).Msg("tool not registered")
				return
			}
			st.ToolResult = &result
			st.Response = resultMessage(result)
			st.Finished = true
		}
	}
}

func resultMessage(result model.ToolResult) string {
	if result.Success {
		return result.Message
	}
	return fmt.Sprintf("抱歉，%s", result.Error)
}

func formatOrder(data map[string]any) string {
	var b strings.Builder
	fmt.Fprintf(&b, "订单状态: %v\n", data["status"])
	fmt.Fprintf(&b, "商品: %v\n", data["product"])
	fmt.Fprintf(&b, "下单日期: %v\n", data["order_date"])
	fmt.Fprintf(&b, "预计送达: %v", data["estimated_delivery"])

	if trackingNumber, ok := data["tracking_number"].(string); ok && trackingNumber != "" {
		fmt.Fprintf(&b, "\n快递公司: %v", data["shipping_company"])
		fmt.Fprintf(&b, "\n运单号: %s", trackingNumber)
	}
	return b.String()
}
