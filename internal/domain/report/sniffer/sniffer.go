// Package sniffer decides whether a blob of extracted text is a stock
// status report at all, and pulls the run date out of it. A text that fails
// the sanity check indicates a wrong document type or a failed extraction
// upstream; parsing it would produce meaningless output, so the whole call
// is rejected rather than degraded.
package sniffer

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/warebridge/stockstatus/internal/domain/report/parser"
)

var (
	ErrTextTooShort = errors.New("extracted text is too short to be a report")
	ErrNotAReport   = errors.New("text does not look like a stock status report")
)

// minTextLength is well below any real report page; anything shorter is a
// failed extraction.
const minTextLength = 64

// Markers that identify the report template. A document missing all of them
// is not this report.
var (
	vendorMarker        = "VENDOR"
	productHeaderMarker = "ITEM DESCRIPTION"
)

var reRunDate = regexp.MustCompile(`RUN DATE:?\s*(\d{2})/(\d{2})/(\d{2})`)

// Validate runs the minimal sanity check on the extracted text. It passes
// when the text is long enough and carries at least one of: a vendor
// marker, the product column header, or an item-shaped line.
func Validate(text string) error {
	if len(strings.TrimSpace(text)) < minTextLength {
		return ErrTextTooShort
	}
	upper := strings.ToUpper(text)
	if strings.Contains(upper, vendorMarker) || strings.Contains(upper, productHeaderMarker) {
		return nil
	}
	for _, line := range strings.Split(text, "\n") {
		if parser.LooksLikeItemLine(line) {
			return nil
		}
	}
	return ErrNotAReport
}

// DetectRunDate finds the report's RUN DATE: MM/DD/YY stamp anywhere in the
// raw text. Two-digit years mean 2000+year. When the stamp is absent the
// supplied clock decides; the parse stays deterministic because the caller
// controls the clock.
func DetectRunDate(text string, now func() time.Time) time.Time {
	m := reRunDate.FindStringSubmatch(strings.ToUpper(text))
	if m == nil {
		return now().UTC().Truncate(24 * time.Hour)
	}
	mm, _ := strconv.Atoi(m[1])
	dd, _ := strconv.Atoi(m[2])
	yy, _ := strconv.Atoi(m[3])
	if mm < 1 || mm > 12 || dd < 1 || dd > 31 {
		return now().UTC().Truncate(24 * time.Hour)
	}
	return time.Date(2000+yy, time.Month(mm), dd, 0, 0, 0, 0, time.UTC)
}
