package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Token shapes for the fixed report template. The source report prints in
// caps; patterns accept both cases where the extractor may have folded.
var (
	reDecimal  = regexp.MustCompile(`^\d+\.\d+-?$`)
	reInteger  = regexp.MustCompile(`^\d+$`)
	reDate     = regexp.MustCompile(`^\d{2}/\d{2}/\d{2}$`)
	reTime     = regexp.MustCompile(`^\d{1,2}:\d{2}$`)
	reProduct  = regexp.MustCompile(`^[A-Za-z0-9]{2,8}$`)
	rePONumber = regexp.MustCompile(`^\d{5}$`)
	reSlot     = regexp.MustCompile(`^[A-Za-z]{1,3}\d{3,5}$`)
	reAlnum    = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	reFraction = regexp.MustCompile(`^\d+/\d+(\.\d+)?$`)
)

// specialOrderMarker is the literal printed in the unit column for
// special-order items.
const specialOrderMarker = "SO"

// unitCodes is the unit-of-measure vocabulary of the report.
var unitCodes = map[string]string{
	"CS": "case",
	"EA": "each",
	"BX": "box",
	"PK": "pack",
	"BG": "bag",
	"DZ": "dozen",
	"CT": "carton",
}

// sizeUnits are bare weight/volume tokens that belong to the size column.
var sizeUnits = map[string]bool{
	"OZ": true, "LB": true, "GAL": true, "QT": true, "PT": true,
	"ML": true, "LTR": true, "GR": true, "#": true,
}

// slotWords are bare warehouse locations that appear instead of a slot code.
var slotWords = map[string]bool{
	"COOLER": true, "FREEZE": true, "DRY": true,
}

func isDecimalToken(tok string) bool { return reDecimal.MatchString(tok) }
func isIntegerToken(tok string) bool { return reInteger.MatchString(tok) }
func isDateToken(tok string) bool    { return reDate.MatchString(tok) }
func isTimeToken(tok string) bool    { return reTime.MatchString(tok) }

// isNumericToken reports whether tok belongs to an item line's numeric run.
func isNumericToken(tok string) bool {
	return isIntegerToken(tok) || isDecimalToken(tok)
}

// parseSignedDecimal parses digits.digits with an optional trailing minus,
// the report's convention for negative values.
func parseSignedDecimal(tok string) (decimal.Decimal, bool) {
	neg := strings.HasSuffix(tok, "-")
	tok = strings.TrimSuffix(tok, "-")
	d, err := decimal.NewFromString(tok)
	if err != nil {
		return decimal.Decimal{}, false
	}
	if neg {
		d = d.Neg()
	}
	return d, true
}

// parseRunValue reads one numeric-run token as a quantity. Decimal-shaped
// tokens are truncated; the run carries whole-unit quantities.
func parseRunValue(tok string) (int64, bool) {
	if isIntegerToken(tok) {
		n, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	d, ok := parseSignedDecimal(tok)
	if !ok {
		return 0, false
	}
	return d.IntPart(), true
}

func isSizeToken(tok string) bool {
	upper := strings.ToUpper(tok)
	return reFraction.MatchString(tok) || sizeUnits[upper]
}

func isSlotToken(tok string) bool {
	return reSlot.MatchString(tok) || slotWords[strings.ToUpper(tok)]
}

// countNumeric returns how many of toks are numeric-run shaped.
func countNumeric(toks []string) int {
	n := 0
	for _, t := range toks {
		if isNumericToken(t) {
			n++
		}
	}
	return n
}

func countDecimal(toks []string) int {
	n := 0
	for _, t := range toks {
		if isDecimalToken(t) {
			n++
		}
	}
	return n
}
