// Package parser turns the text extracted from a fixed-layout stock status
// report into typed inventory, purchase-order and special-order records.
// PDF text extraction collapses the report's fixed-width table into
// space-joined strings, so every positional decision here works on
// whitespace-split tokens, never on character columns.
package parser

import (
	"github.com/shopspring/decimal"
)

// Confidence is the tier assigned to an item record by the tail recoverer.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Vendor is the parse-time cursor set by a vendor header line and read by
// every item, PO and special-order line until the next header.
type Vendor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// InventoryItem is one product row recovered from an item line.
// Nullable fields stay nil when the source line did not carry them or the
// recoverer could not read them; the record is still emitted so a reviewer
// can inspect RawLine.
type InventoryItem struct {
	VendorID      string           `json:"vendorId"`
	VendorName    string           `json:"vendorName"`
	ProductNumber string           `json:"productNumber"`
	SpecialOrder  bool             `json:"specialOrder"`
	Unit          string           `json:"unit,omitempty"`
	Size          string           `json:"size,omitempty"`
	Brand         string           `json:"brand,omitempty"`
	Description   string           `json:"description,omitempty"`
	YTDSales      *int64           `json:"ytdSales"`
	AvgWeekly     *int64           `json:"avgWeeklySales"`
	Available     *int64           `json:"available"`
	OnOrder       *int64           `json:"onOrder"`
	DaysOfSupply  *decimal.Decimal `json:"daysOfSupply"`
	LandedCost    *decimal.Decimal `json:"landedCost"`
	MarketCost    *decimal.Decimal `json:"marketCost"`
	Slot          *string          `json:"slot"`
	PriorityScore *decimal.Decimal `json:"priorityScore"`
	Confidence    Confidence       `json:"confidence"`

	// NumericColumns is the length of the numeric run, kept as a diagnostic.
	NumericColumns int      `json:"numericColumns"`
	RawLine        string   `json:"rawLine"`
	Notes          []string `json:"notes,omitempty"`
}

// PurchaseOrder is one open order. The urgency fields are always derived
// from (due date, EDI flag, appointment, report date), never taken from the
// source line.
type PurchaseOrder struct {
	PONumber   string `json:"poNumber"`
	VendorID   string `json:"vendorId"`
	VendorName string `json:"vendorName"`
	DueDate    string `json:"dueDate"`
	TotalCases int    `json:"totalCases"`
	Status     string `json:"status,omitempty"`

	// EDIConfirmed is tri-state: nil means the line said nothing either way.
	EDIConfirmed *bool   `json:"ediConfirmed"`
	Appointment  *string `json:"appointment"`
	Pickup       *bool   `json:"pickup"`
	EnteredDate  *string `json:"enteredDate"`

	DaysUntilDue  int      `json:"daysUntilDue"`
	IsUrgent      bool     `json:"isUrgent"`
	UrgentReasons []string `json:"urgentReasons,omitempty"`
}

// SpecialOrderStatus is the state of a customer-driven order line.
type SpecialOrderStatus string

const (
	SpecialOrderReady SpecialOrderStatus = "Ready"
	SpecialOrderDOQ   SpecialOrderStatus = "*DOQ*"
	SpecialOrderOpen  SpecialOrderStatus = "Order"
)

// SpecialOrder is a customer-specific order, distinct from a vendor PO.
type SpecialOrder struct {
	ProductNumber  string             `json:"productNumber"`
	Description    string             `json:"description,omitempty"`
	CustomerNumber string             `json:"customerNumber,omitempty"`
	CustomerName   string             `json:"customerName,omitempty"`
	EnteredDate    *string            `json:"enteredDate"`
	DOQDate        *string            `json:"doqDate"`
	DueDate        *string            `json:"dueDate"`
	PONumber       *string            `json:"poNumber"`
	QtyOrdered     *int64             `json:"qtyOrdered"`
	OnHand         *int64             `json:"onHand"`
	Status         SpecialOrderStatus `json:"status"`
	VendorID       string             `json:"vendorId"`
	VendorName     string             `json:"vendorName"`
}

// Result is the full output of one parse pass: the three record collections
// in first-encountered order, recomputed statistics, and the line-numbered
// errors collected along the way. It carries no behavior and is safe to
// hand straight to a transport encoder.
type Result struct {
	Items          []InventoryItem `json:"items"`
	PurchaseOrders []PurchaseOrder `json:"purchaseOrders"`
	SpecialOrders  []SpecialOrder  `json:"specialOrders"`
	Stats          Stats           `json:"stats"`
	Errors         []string        `json:"errors,omitempty"`
}
