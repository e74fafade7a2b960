package tools

import (
	"fmt"
	"time"

	"github.com/smartcs-core/server/internal/agent/model"
)

var seededInvoices = map[string]map[string]any{
	"INV123456": {
		"status":     "已开具",
		"order_id":   "ORD123456",
		"issue_date": "2024-06-12",
		"amount":     "5999.00",
	},
}

// CreateInvoice issues an invoice for an order. An empty tax number is a
// valid, explicitly declined value.
func CreateInvoice(args map[string]string) model.ToolResult {
	orderID := args[model.SlotOrderID]
	invoiceID := "INV" + trimOrderPrefix(orderID)

	return model.ToolResult{
		Success: true,
		Message: fmt.Sprintf("发票开具成功，发票号: %s", invoiceID),
		Data: map[string]any{
			"invoice_id":    invoiceID,
			"order_id":      orderID,
			"invoice_title": args[model.SlotInvoiceTitle],
			"tax_number":    args[model.SlotTaxNumber],
			"issue_date":    time.Now().Format("2006-01-02"),
			"status":        "已开具",
			"download_url":  fmt.Sprintf("https://example.com/invoices/%s.pdf", invoiceID),
		},
	}
}

// QueryInvoice looks up an issued invoice by id.
func QueryInvoice(args map[string]string) model.ToolResult {
	invoiceID := args["invoice_id"]
	invoice, ok := seededInvoices[invoiceID]
	if !ok {
		return model.ToolResult{Success: false, Error: fmt.Sprintf("未找到发票 %s", invoiceID)}
	}
	return model.ToolResult{Success: true, Data: invoice}
}
