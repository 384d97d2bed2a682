package parser

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// tailFields are the trailing fixed-position fields of an item line plus
// whatever the numeric run yielded.
type tailFields struct {
	PriorityScore *decimal.Decimal
	Slot          *string
	MarketCost    *decimal.Decimal
	LandedCost    *decimal.Decimal
	DaysOfSupply  *decimal.Decimal
	OnOrder       *int64
	Available     *int64
	AvgWeekly     *int64

	Confidence     Confidence
	NumericColumns int
	Notes          []string
}

// recoverTail reads an item line right to left: the four fixed trailing
// fields first (priority score, slot, market cost, landed cost), then the
// variable-length numeric run. The run's rightmost element is always
// days-of-supply; the run length decides the confidence tier and which
// remaining quantities can be named. A failure in any fixed position
// downgrades the record instead of aborting it.
func recoverTail(tokens []string) tailFields {
	t := tailFields{Confidence: ConfidenceHigh}
	idx := len(tokens) - 1

	fixedFailure := false
	fail := func(note string) {
		fixedFailure = true
		t.Notes = append(t.Notes, note)
	}

	// Item-priority score. A trailing dash denotes negation.
	if idx >= 0 {
		if d, ok := parseSignedDecimal(tokens[idx]); ok {
			t.PriorityScore = &d
		} else {
			fail(fmt.Sprintf("unreadable priority score %q", tokens[idx]))
		}
		idx--
	} else {
		fail("line too short for priority score")
	}

	// Warehouse slot: slot code, bare location word, or any alphanumeric
	// token as a final fallback.
	if idx >= 0 {
		tok := tokens[idx]
		switch {
		case isSlotToken(tok):
			t.Slot = &tok
		case reAlnum.MatchString(tok):
			t.Slot = &tok
			t.Notes = append(t.Notes, fmt.Sprintf("slot %q does not match a known slot shape", tok))
		default:
			fail(fmt.Sprintf("unreadable warehouse slot %q", tok))
		}
		idx--
	} else {
		fail("line too short for warehouse slot")
	}

	if idx >= 0 {
		if d, ok := parseSignedDecimal(tokens[idx]); ok {
			t.MarketCost = &d
		} else {
			fail(fmt.Sprintf("unreadable market cost %q", tokens[idx]))
		}
		idx--
	} else {
		fail("line too short for market cost")
	}

	if idx >= 0 {
		if d, ok := parseSignedDecimal(tokens[idx]); ok {
			t.LandedCost = &d
		} else {
			fail(fmt.Sprintf("unreadable landed cost %q", tokens[idx]))
		}
		idx--
	} else {
		fail("line too short for landed cost")
	}

	// Numeric run: everything to the left that still parses as a number.
	// Collection stops at the first non-numeric token, presumed to be the
	// end of the free-text description.
	runStart := idx + 1
	for idx >= 0 && isNumericToken(tokens[idx]) {
		idx--
	}
	run := tokens[idx+1 : runStart]
	k := len(run)
	t.NumericColumns = k

	if k == 0 {
		t.Confidence = ConfidenceLow
		t.Notes = append(t.Notes, "no numeric columns found before cost fields")
		return t
	}

	// The rightmost run element is always days-of-supply, whatever the tier.
	if d, ok := parseSignedDecimal(run[k-1]); ok {
		t.DaysOfSupply = &d
	} else if n, ok := parseRunValue(run[k-1]); ok {
		d := decimal.NewFromInt(n)
		t.DaysOfSupply = &d
	}

	runValue := func(i int) *int64 {
		if i < 0 || i >= k {
			return nil
		}
		if n, ok := parseRunValue(run[i]); ok {
			return &n
		}
		return nil
	}

	switch {
	case k >= 9:
		t.Confidence = ConfidenceHigh
		t.OnOrder = runValue(k - 2)
		t.Available = runValue(k - 3)
		t.AvgWeekly = runValue(k - 4)
	case k == 8:
		// The on-order column was blank on this row.
		t.Confidence = ConfidenceHigh
		t.Available = runValue(k - 2)
		t.AvgWeekly = runValue(k - 3)
	case k == 7:
		t.Confidence = ConfidenceHigh
		t.Available = runValue(k - 2)
	case k >= 5:
		t.Confidence = ConfidenceMedium
		t.Available = runValue(k - 2)
	default:
		t.Confidence = ConfidenceLow
		t.OnOrder, t.Available, t.AvgWeekly = resolveShortRun(run[:k-1], runValue)
		t.Notes = append(t.Notes, fmt.Sprintf("only %d numeric columns; quantity assignment is best-effort", k))
	}

	if fixedFailure {
		t.Confidence = ConfidenceLow
	}
	if t.DaysOfSupply == nil && t.Confidence != ConfidenceLow {
		t.Confidence = ConfidenceLow
		t.Notes = append(t.Notes, "days-of-supply could not be read")
	}
	return t
}

// resolveShortRun names the quantities of a short numeric run (days-of-supply
// already stripped). With three values v1,v2,v3 counted from the right, a
// magnitude comparison decides whether an on-order column is present: weekly
// averages run at or above the nearby availability figures, so v3 >= v2
// reads as average/available/on-order, anything else as average/available
// with no on-order column. Empirically tuned against one report vendor's
// layout; isolated here so it can be swapped without touching the rest of
// the tail recoverer.
func resolveShortRun(rest []string, value func(int) *int64) (onOrder, available, avg *int64) {
	n := len(rest)
	switch {
	case n >= 3:
		v1, v2, v3 := value(n-1), value(n-2), value(n-3)
		if v3 != nil && v2 != nil && *v3 >= *v2 {
			return v1, v2, v3
		}
		return nil, v1, v2
	case n == 2:
		return nil, value(n - 1), value(n - 2)
	case n == 1:
		return nil, value(n - 1), nil
	default:
		return nil, nil, nil
	}
}

// recoverTailStrict is the legacy single-bit variant kept for behavioral
// compatibility with older exports: a strict positional right-to-left
// consumer that expects days-of-supply, on-order, available and average in
// fixed positions and reports plain high/low confidence.
func recoverTailStrict(tokens []string) tailFields {
	t := recoverTail(tokens)
	if t.Confidence == ConfidenceLow {
		return t
	}
	if t.DaysOfSupply == nil || t.OnOrder == nil || t.Available == nil || t.AvgWeekly == nil {
		t.Confidence = ConfidenceLow
		t.Notes = append(t.Notes, "strict mode: incomplete quantity columns")
		return t
	}
	t.Confidence = ConfidenceHigh
	return t
}
