package parser

import (
	"github.com/shopspring/decimal"
)

// Stats is a pure aggregate over the three record collections, recomputed
// on every parse. Days-of-supply thresholds: 5 days flags attention, 2 days
// flags critical; PO arrivals within 7 days count as arriving soon.
type Stats struct {
	TotalItems       int `json:"totalItems"`
	HighConfidence   int `json:"highConfidence"`
	MediumConfidence int `json:"mediumConfidence"`
	LowConfidence    int `json:"lowConfidence"`

	// Attention: high confidence, days-of-supply <= 5.
	Attention int `json:"attention"`
	// Critical: high confidence, days-of-supply <= 2.
	Critical int `json:"critical"`
	// WatchList: medium confidence, days-of-supply <= 5.
	WatchList int `json:"watchList"`
	// NeedsReview: low confidence or days-of-supply unreadable.
	NeedsReview int `json:"needsReview"`

	DistinctVendors   int `json:"distinctVendors"`
	SpecialOrderCount int `json:"specialOrderCount"`

	TotalPOs           int `json:"totalPOs"`
	TotalCases         int `json:"totalCases"`
	POVendors          int `json:"poVendors"`
	ArrivingWithinWeek int `json:"arrivingWithinWeek"`
	UrgentPOs          int `json:"urgentPOs"`
	CasesAtRisk        int `json:"casesAtRisk"`
	MissingEDI         int `json:"missingEDI"`
	MissingAppointment int `json:"missingAppointment"`
	OverduePOs         int `json:"overduePOs"`
}

var (
	attentionThreshold = decimal.NewFromInt(5)
	criticalThreshold  = decimal.NewFromInt(2)
)

// ComputeStats derives the summary aggregate from the record collections.
func ComputeStats(items []InventoryItem, pos []PurchaseOrder, sos []SpecialOrder) Stats {
	s := Stats{
		TotalItems:        len(items),
		SpecialOrderCount: len(sos),
		TotalPOs:          len(pos),
	}

	vendors := make(map[string]bool)
	for _, it := range items {
		if it.VendorID != "" {
			vendors[it.VendorID] = true
		}
		switch it.Confidence {
		case ConfidenceHigh:
			s.HighConfidence++
		case ConfidenceMedium:
			s.MediumConfidence++
		default:
			s.LowConfidence++
		}

		dos := it.DaysOfSupply
		if it.Confidence == ConfidenceLow || dos == nil {
			s.NeedsReview++
			continue
		}
		switch it.Confidence {
		case ConfidenceHigh:
			if dos.LessThanOrEqual(attentionThreshold) {
				s.Attention++
			}
			if dos.LessThanOrEqual(criticalThreshold) {
				s.Critical++
			}
		case ConfidenceMedium:
			if dos.LessThanOrEqual(attentionThreshold) {
				s.WatchList++
			}
		}
	}
	s.DistinctVendors = len(vendors)

	poVendors := make(map[string]bool)
	for _, po := range pos {
		if po.VendorID != "" {
			poVendors[po.VendorID] = true
		}
		s.TotalCases += po.TotalCases
		if po.DaysUntilDue >= 0 && po.DaysUntilDue <= 7 {
			s.ArrivingWithinWeek++
		}
		if po.DaysUntilDue < 0 {
			s.OverduePOs++
		}
		if po.IsUrgent {
			s.UrgentPOs++
			s.CasesAtRisk += po.TotalCases
		}
		if po.EDIConfirmed == nil || !*po.EDIConfirmed {
			s.MissingEDI++
		}
		if po.Appointment == nil {
			s.MissingAppointment++
		}
	}
	s.POVendors = len(poVendors)
	return s
}
