package model

// Intent is the canonical label of what the user wants. The classifier stores
// the completion service's reply verbatim, so values outside this enumeration
// can occur at runtime; downstream code must tolerate them.
type Intent string

const (
	IntentQueryOrder    Intent = "query_order"
	IntentApplyRefund   Intent = "apply_refund"
	IntentCreateInvoice Intent = "create_invoice"
	IntentGeneralQuery  Intent = "general_query"
	IntentUnknown       Intent = "unknown"
)

// Slot names shared between the schema, extractor and tools.
const (
	SlotOrderID      = "order_id"
	SlotReason       = "reason"
	SlotInvoiceTitle = "invoice_title"
	SlotTaxNumber    = "tax_number"
)

// requiredSlots maps each intent to its required slots in collection order.
var requiredSlots = map[Intent][]string{
	IntentQueryOrder:    {SlotOrderID},
	IntentApplyRefund:   {SlotOrderID, SlotReason},
	IntentCreateInvoice: {SlotOrderID, SlotInvoiceTitle, SlotTaxNumber},
	IntentGeneralQuery:  {},
}

// RequiredSlots returns the ordered slot names an intent needs before its tool
// can run. Unknown intents yield an empty list.
func RequiredSlots(intent Intent) []string {
	return requiredSlots[intent]
}
