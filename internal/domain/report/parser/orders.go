package parser

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Urgency window: a PO due within this many days needs either an EDI
// confirmation or a scheduled appointment. POs due further out are never
// urgent; the window is a hard gate, not a weight.
const urgencyWindowDays = 5

const (
	reasonNoEDI         = "No EDI confirmation"
	reasonNoAppointment = "No appointment"
)

// ParseReportDate reads the report's MM/DD/YY date format. Two-digit years
// always mean 2000+year in this report family.
func ParseReportDate(s string) (time.Time, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("not a MM/DD/YY date: %q", s)
	}
	mm, err1 := strconv.Atoi(parts[0])
	dd, err2 := strconv.Atoi(parts[1])
	yy, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, fmt.Errorf("not a MM/DD/YY date: %q", s)
	}
	if mm < 1 || mm > 12 || dd < 1 || dd > 31 {
		return time.Time{}, fmt.Errorf("date out of range: %q", s)
	}
	return time.Date(2000+yy, time.Month(mm), dd, 0, 0, 0, 0, time.UTC), nil
}

// recoverPurchaseOrder extracts a PO record from a classified PO data line
// and derives its urgency relative to the report date.
func recoverPurchaseOrder(tokens []string, vendor Vendor, reportDate time.Time) (PurchaseOrder, error) {
	if len(tokens) < 3 {
		return PurchaseOrder{}, fmt.Errorf("po line has %d tokens, need at least 3", len(tokens))
	}
	cases, err := strconv.Atoi(tokens[2])
	if err != nil {
		return PurchaseOrder{}, fmt.Errorf("unreadable case count %q", tokens[2])
	}

	po := PurchaseOrder{
		PONumber:   tokens[0],
		VendorID:   vendor.ID,
		VendorName: vendor.Name,
		DueDate:    tokens[1],
		TotalCases: cases,
	}

	rest := tokens[3:]
	if len(rest) > 0 {
		if strings.HasPrefix(rest[0], statusMarkerPrefix) {
			po.Status = strings.TrimPrefix(rest[0], statusMarkerPrefix)
		} else {
			po.Status = rest[0]
		}
	}

	restText := strings.Join(rest, " ")
	po.EDIConfirmed = ediState(po.Status, restText)

	var dates []string
	var times []string
	for _, tok := range rest {
		switch {
		case isDateToken(tok):
			dates = append(dates, tok)
		case isTimeToken(tok):
			times = append(times, tok)
		}
	}
	if len(dates) > 0 && len(times) > 0 {
		appt := dates[0] + " " + times[0]
		po.Appointment = &appt
	}
	// Last date-shaped token doubles as the entered date. A fallback
	// heuristic, not a labeled field.
	if len(dates) > 0 {
		entered := dates[len(dates)-1]
		po.EnteredDate = &entered
	}
	for _, tok := range rest {
		if u := strings.ToUpper(tok); u == "PU" || u == "PICKUP" {
			yes := true
			po.Pickup = &yes
			break
		}
	}

	due, err := ParseReportDate(po.DueDate)
	if err != nil {
		return PurchaseOrder{}, fmt.Errorf("unreadable due date %q", po.DueDate)
	}
	po.DaysUntilDue, po.IsUrgent, po.UrgentReasons = computeUrgency(due, po.EDIConfirmed, po.Appointment, reportDate)
	return po, nil
}

// ediState derives the tri-state EDI confirmation: confirmed when the status
// carries an EDI marker or the remainder says Yes, denied when the remainder
// says No and the status does not confirm, unknown otherwise.
func ediState(status, restText string) *bool {
	upper := strings.ToUpper(restText)
	confirmed := strings.Contains(strings.ToUpper(status), "EDI") ||
		containsWord(upper, "YES")
	if confirmed {
		yes := true
		return &yes
	}
	if containsWord(upper, "NO") {
		no := false
		return &no
	}
	return nil
}

func containsWord(text, word string) bool {
	for _, tok := range strings.Fields(text) {
		if tok == word {
			return true
		}
	}
	return false
}

// computeUrgency is a pure function of (due date, EDI flag, appointment,
// report date), independent of how those were extracted.
func computeUrgency(due time.Time, edi *bool, appointment *string, reportDate time.Time) (int, bool, []string) {
	report := time.Date(reportDate.Year(), reportDate.Month(), reportDate.Day(), 0, 0, 0, 0, time.UTC)
	days := int(due.Sub(report).Hours() / 24)
	if days > urgencyWindowDays {
		return days, false, nil
	}
	var reasons []string
	if edi == nil || !*edi {
		reasons = append(reasons, reasonNoEDI)
	}
	if appointment == nil {
		reasons = append(reasons, reasonNoAppointment)
	}
	return days, len(reasons) > 0, reasons
}

// recoverSpecialOrder extracts a customer special-order record. The line
// layout is looser than item or PO lines, so every field beyond the product
// number is positional best effort.
func recoverSpecialOrder(tokens []string, line string, vendor Vendor) (SpecialOrder, error) {
	if len(tokens) == 0 {
		return SpecialOrder{}, fmt.Errorf("empty special order line")
	}
	so := SpecialOrder{
		ProductNumber: tokens[0],
		VendorID:      vendor.ID,
		VendorName:    vendor.Name,
		Status:        SpecialOrderOpen,
	}
	if strings.Contains(line, string(SpecialOrderDOQ)) {
		so.Status = SpecialOrderDOQ
	} else if strings.Contains(strings.ToUpper(line), "READY") {
		so.Status = SpecialOrderReady
	}

	// The description ends at the first date or at a 4-digit customer number
	// past position 2.
	boundary := len(tokens)
	for i := 1; i < len(tokens); i++ {
		tok := tokens[i]
		if isDateToken(tok) || (i > 2 && isIntegerToken(tok) && len(tok) == 4) {
			boundary = i
			break
		}
	}
	so.Description = strings.Join(tokens[1:boundary], " ")

	i := boundary
	if i < len(tokens) && isIntegerToken(tokens[i]) && len(tokens[i]) == 4 {
		so.CustomerNumber = tokens[i]
		i++
		var name []string
		for ; i < len(tokens) && !isDateToken(tokens[i]) && !isNumericToken(tokens[i]); i++ {
			name = append(name, tokens[i])
		}
		so.CustomerName = strings.Join(name, " ")
	}

	// Dates appear in entry order: entered, DOQ, due.
	var dates []string
	lastDate := -1
	for j := i; j < len(tokens); j++ {
		if isDateToken(tokens[j]) {
			dates = append(dates, tokens[j])
			lastDate = j
		}
	}
	assign := func(idx int) *string {
		if idx < len(dates) {
			return &dates[idx]
		}
		return nil
	}
	so.EnteredDate = assign(0)
	so.DOQDate = assign(1)
	so.DueDate = assign(2)

	// Quantities trail the dates; a standalone 5-digit token anywhere past
	// the product number is the linked PO number, not a quantity.
	for _, tok := range tokens[1:] {
		if rePONumber.MatchString(tok) {
			po := tok
			so.PONumber = &po
			break
		}
	}
	var qty []int64
	for j := lastDate + 1; j > 0 && j < len(tokens); j++ {
		tok := tokens[j]
		if isIntegerToken(tok) && !rePONumber.MatchString(tok) {
			if n, err := strconv.ParseInt(tok, 10, 64); err == nil {
				qty = append(qty, n)
			}
		}
	}
	if len(qty) > 0 {
		so.QtyOrdered = &qty[0]
	}
	if len(qty) > 1 {
		so.OnHand = &qty[1]
	}
	return so, nil
}
