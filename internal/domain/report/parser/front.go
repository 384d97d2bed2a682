package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// frontFields are the left-anchored fields of an item line.
type frontFields struct {
	ProductNumber string
	SpecialOrder  bool
	Unit          string
	Size          string
	Brand         string
	Description   string
	YTDSales      *int64
	Notes         []string
}

// recoverFront reads the leading fields left to right, greedy and
// order-fixed: product number, special-order marker or unit code, size run,
// brand, then description until the year-to-date sales block begins.
func recoverFront(tokens []string) frontFields {
	var f frontFields
	if len(tokens) == 0 {
		return f
	}
	f.ProductNumber = tokens[0]
	i := 1

	if i < len(tokens) {
		tok := strings.ToUpper(tokens[i])
		switch {
		case tok == specialOrderMarker:
			f.SpecialOrder = true
			f.Unit = tokens[i]
			i++
		case unitCodes[tok] != "":
			f.Unit = tokens[i]
			i++
		default:
			if suggestion := nearestUnitCode(tok); suggestion != "" {
				f.Notes = append(f.Notes,
					fmt.Sprintf("token %q in unit position resembles unit code %q", tokens[i], suggestion))
			}
		}
	}

	var size []string
	for i < len(tokens) && isSizeToken(tokens[i]) {
		size = append(size, tokens[i])
		i++
	}
	f.Size = strings.Join(size, " ")

	if i < len(tokens) {
		f.Brand = tokens[i]
		i++
	}

	// The description runs until a bare integer that is followed by a mostly
	// numeric window: that integer is the year-to-date sales figure and marks
	// the start of the sales block.
	var desc []string
	for ; i < len(tokens); i++ {
		tok := tokens[i]
		if isIntegerToken(tok) && countNumeric(window(tokens, i+1, 4)) >= 2 {
			if n, err := strconv.ParseInt(tok, 10, 64); err == nil {
				f.YTDSales = &n
			}
			break
		}
		desc = append(desc, tok)
	}
	f.Description = strings.Join(desc, " ")
	return f
}

// unitCodeOrder fixes the probe order so notes are deterministic.
var unitCodeOrder = []string{"CS", "EA", "BX", "PK", "BG", "DZ", "CT"}

// nearestUnitCode returns the unit code within Levenshtein distance 1 of
// tok, or "" when none is close. Diagnostic only: it never changes what the
// recoverer extracts.
func nearestUnitCode(tok string) string {
	if len(tok) < 2 || len(tok) > 3 || isNumericToken(tok) {
		return ""
	}
	for _, code := range unitCodeOrder {
		if d := fuzzy.LevenshteinDistance(tok, code); d >= 0 && d <= 1 {
			return code
		}
	}
	return ""
}

// window returns tokens[from : from+n], clipped to the slice bounds.
func window(tokens []string, from, n int) []string {
	if from >= len(tokens) {
		return nil
	}
	end := from + n
	if end > len(tokens) {
		end = len(tokens)
	}
	return tokens[from:end]
}
