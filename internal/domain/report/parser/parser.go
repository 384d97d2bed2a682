package parser

import (
	"fmt"
	"strings"
	"time"
)

// Options configures a Parser.
type Options struct {
	// LegacyTail switches the tail recoverer to the strict two-state
	// variant kept for compatibility with older exports.
	LegacyTail bool
}

// Parser drives line-by-line classification and field recovery over one
// extracted report. It holds no per-parse state; concurrent Parse calls do
// not interfere.
type Parser struct {
	classifier *Classifier
	opts       Options
}

// New returns a Parser ready for use.
func New(opts Options) *Parser {
	return &Parser{
		classifier: NewClassifier(),
		opts:       opts,
	}
}

// cursor is the parse-time state threaded through one pass: the current
// vendor and whether we are inside a special-order section. Local by
// design, never package state, so parses of different uploads cannot
// cross-talk.
type cursor struct {
	vendor    *Vendor
	inSpecial bool
}

// ParseText splits text on newlines and parses it.
func (p *Parser) ParseText(text string, reportDate time.Time) *Result {
	return p.Parse(strings.Split(text, "\n"), reportDate)
}

// Parse classifies every line and assembles the three record collections.
// A malformed line is reported with its 1-based line number and skipped;
// it never aborts the pass.
func (p *Parser) Parse(lines []string, reportDate time.Time) *Result {
	res := &Result{
		Items:          []InventoryItem{},
		PurchaseOrders: []PurchaseOrder{},
		SpecialOrders:  []SpecialOrder{},
	}
	cur := cursor{}
	seenPOs := make(map[string]bool)

	for i, raw := range lines {
		lineNo := i + 1
		line := strings.TrimRight(raw, "\r")
		if err := p.processLine(line, lineNo, &cur, seenPOs, reportDate, res); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("line %d: %v", lineNo, err))
		}
	}

	res.Stats = ComputeStats(res.Items, res.PurchaseOrders, res.SpecialOrders)
	return res
}

// processLine dispatches one line. A panic during recovery of a single line
// is converted to an error so the pass continues; the raw line is cheap to
// re-inspect from the emitted error.
func (p *Parser) processLine(line string, lineNo int, cur *cursor, seenPOs map[string]bool, reportDate time.Time, res *Result) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse failure: %v", r)
		}
	}()

	switch p.classifier.Classify(line, cur.inSpecial) {
	case ClassVendorHeader:
		v, ok := ExtractVendor(line)
		if !ok {
			return fmt.Errorf("unreadable vendor header %q", strings.TrimSpace(line))
		}
		cur.vendor = &v
		cur.inSpecial = false

	case ClassSpecialOrderHeader:
		cur.inSpecial = true

	case ClassPOHeader:
		cur.inSpecial = false

	case ClassItemLine:
		if cur.vendor == nil {
			return fmt.Errorf("item line before any vendor header: %q", strings.TrimSpace(line))
		}
		res.Items = append(res.Items, p.recoverItem(line, *cur.vendor))

	case ClassPOLine:
		if cur.vendor == nil {
			return fmt.Errorf("purchase order line before any vendor header: %q", strings.TrimSpace(line))
		}
		po, poErr := recoverPurchaseOrder(strings.Fields(line), *cur.vendor, reportDate)
		if poErr != nil {
			return poErr
		}
		// Overlapping section heuristics can surface the same PO twice;
		// first occurrence wins.
		if !seenPOs[po.PONumber] {
			seenPOs[po.PONumber] = true
			res.PurchaseOrders = append(res.PurchaseOrders, po)
		}

	case ClassSpecialOrderLine:
		if cur.vendor == nil {
			return fmt.Errorf("special order line before any vendor header: %q", strings.TrimSpace(line))
		}
		so, soErr := recoverSpecialOrder(strings.Fields(line), line, *cur.vendor)
		if soErr != nil {
			return soErr
		}
		res.SpecialOrders = append(res.SpecialOrders, so)

	case ClassNoise:
		if cur.inSpecial && p.classifier.SectionExit(line) {
			cur.inSpecial = false
		}
	}
	return nil
}

// recoverItem runs both field recoverers over one item line and merges
// their output into a record.
func (p *Parser) recoverItem(line string, vendor Vendor) InventoryItem {
	tokens := strings.Fields(line)
	front := recoverFront(tokens)

	var tail tailFields
	if p.opts.LegacyTail {
		tail = recoverTailStrict(tokens)
	} else {
		tail = recoverTail(tokens)
	}

	item := InventoryItem{
		VendorID:       vendor.ID,
		VendorName:     vendor.Name,
		ProductNumber:  front.ProductNumber,
		SpecialOrder:   front.SpecialOrder,
		Unit:           front.Unit,
		Size:           front.Size,
		Brand:          front.Brand,
		Description:    front.Description,
		YTDSales:       front.YTDSales,
		AvgWeekly:      tail.AvgWeekly,
		Available:      tail.Available,
		OnOrder:        tail.OnOrder,
		DaysOfSupply:   tail.DaysOfSupply,
		LandedCost:     tail.LandedCost,
		MarketCost:     tail.MarketCost,
		Slot:           tail.Slot,
		PriorityScore:  tail.PriorityScore,
		Confidence:     tail.Confidence,
		NumericColumns: tail.NumericColumns,
		RawLine:        line,
	}
	item.Notes = append(item.Notes, front.Notes...)
	item.Notes = append(item.Notes, tail.Notes...)
	return item
}
