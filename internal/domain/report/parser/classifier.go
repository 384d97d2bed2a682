package parser

import (
	"strings"

	"github.com/cloudflare/ahocorasick"
)

// LineClass is the category the classifier assigns to one raw line.
type LineClass int

const (
	ClassNoise LineClass = iota
	ClassVendorHeader
	ClassSpecialOrderHeader
	ClassPOHeader
	ClassPOLine
	ClassItemLine
	ClassSpecialOrderLine
)

func (c LineClass) String() string {
	switch c {
	case ClassVendorHeader:
		return "vendor-header"
	case ClassSpecialOrderHeader:
		return "special-order-section-header"
	case ClassPOHeader:
		return "po-section-header"
	case ClassPOLine:
		return "po-data-line"
	case ClassItemLine:
		return "item-line"
	case ClassSpecialOrderLine:
		return "special-order-line"
	default:
		return "noise"
	}
}

// vendorMarker starts every vendor header line in the report template.
const vendorMarker = "VENDOR"

// statusMarkerPrefix precedes the status column on PO data lines.
const statusMarkerPrefix = "Conf:"

// noisePhrases are fixed substrings that identify report metadata, column
// headers, per-item packaging continuations and boilerplate. They are
// matched in a single pass; any hit discards the line before further
// classification.
var noisePhrases = []string{
	"RUN DATE",
	"RUN TIME",
	"PAGE NO",
	"STOCK STATUS",
	"ITEM DESCRIPTION",
	"YTD AVG",
	"LAND MKT",
	"ON HAND ON ORD",
	"SUB-TOTAL",
	"SUBTOTAL",
	"TI:",
	"HI:",
	"CUBE:",
	"TIER:",
	"PALLET:",
	"TOTAL CASES",
	"CONTINUED ON",
	"END OF REPORT",
}

// sectionExitPhrases end a special-order section: subtotals and the column
// headers of whatever block follows.
var sectionExitPhrases = []string{
	"SUB-TOTAL",
	"SUBTOTAL",
	"TOTAL CASES",
	"ITEM DESCRIPTION",
	"YTD AVG",
}

// Classifier decides what kind of record a line represents. It is stateless
// per line except for the caller-supplied special-order-section flag, and is
// safe for concurrent use.
type Classifier struct {
	noise       *ahocorasick.Matcher
	sectionExit *ahocorasick.Matcher
	rules       []classRule
}

type classRule struct {
	name  string
	class LineClass
	match func(c *Classifier, ln lineView) bool
}

type lineView struct {
	raw       string
	upper     string
	tokens    []string
	inSpecial bool
}

// NewClassifier builds the ordered rule table. Evaluation order is a
// deliberate contract: vendor header first (it is unambiguous), then noise,
// then section headers and the context-sensitive PO/special-order checks,
// then the item candidate. The ordering keeps a PO line that happens to
// start with digits from being misread as an item line, and vice versa.
func NewClassifier() *Classifier {
	c := &Classifier{
		noise:       ahocorasick.NewStringMatcher(noisePhrases),
		sectionExit: ahocorasick.NewStringMatcher(sectionExitPhrases),
	}
	c.rules = []classRule{
		{"vendor-header", ClassVendorHeader, (*Classifier).matchVendorHeader},
		{"noise", ClassNoise, (*Classifier).matchNoise},
		{"special-order-header", ClassSpecialOrderHeader, (*Classifier).matchSpecialOrderHeader},
		{"po-header", ClassPOHeader, (*Classifier).matchPOHeader},
		{"po-data", ClassPOLine, (*Classifier).matchPOLine},
		{"special-order", ClassSpecialOrderLine, (*Classifier).matchSpecialOrderLine},
		{"item-candidate", ClassItemLine, (*Classifier).matchItemCandidate},
	}
	return c
}

// Classify assigns a category to one raw line. inSpecialSection is the one
// piece of carried state: whether the caller currently believes it is inside
// a special-order section.
func (c *Classifier) Classify(line string, inSpecialSection bool) LineClass {
	ln := lineView{
		raw:       line,
		upper:     strings.ToUpper(line),
		tokens:    strings.Fields(line),
		inSpecial: inSpecialSection,
	}
	for _, r := range c.rules {
		if r.match(c, ln) {
			return r.class
		}
	}
	// Anything unrecognized is discarded the same way pattern noise is.
	return ClassNoise
}

// SectionExit reports whether a line ends a special-order section: a
// subtotal, a column header, or a divider rule.
func (c *Classifier) SectionExit(line string) bool {
	if isDividerLine(line) {
		return true
	}
	return len(c.sectionExit.Match([]byte(strings.ToUpper(line)))) > 0
}

func (c *Classifier) matchVendorHeader(ln lineView) bool {
	if len(ln.tokens) < 3 {
		return false
	}
	first := strings.TrimSuffix(strings.ToUpper(ln.tokens[0]), ":")
	return first == vendorMarker && isIntegerToken(ln.tokens[1])
}

func (c *Classifier) matchNoise(ln lineView) bool {
	if strings.TrimSpace(ln.raw) == "" {
		return true
	}
	if isDividerLine(ln.raw) {
		return true
	}
	return len(c.noise.Match([]byte(ln.upper))) > 0
}

func (c *Classifier) matchSpecialOrderHeader(ln lineView) bool {
	return strings.Contains(ln.upper, "SPECIAL ORDER")
}

func (c *Classifier) matchPOHeader(ln lineView) bool {
	return strings.Contains(ln.upper, "OPEN PO") || strings.Contains(ln.upper, "PO SUMMARY")
}

// matchPOLine recognizes a PO data line by shape alone. PO lines can appear
// anywhere after a vendor header, not only inside a labeled summary section;
// some report variants omit the section header or interleave sections, so
// labeled-section tracking alone is unreliable.
func (c *Classifier) matchPOLine(ln lineView) bool {
	t := ln.tokens
	if len(t) < 4 {
		return false
	}
	if !rePONumber.MatchString(t[0]) || !isDateToken(t[1]) || !isIntegerToken(t[2]) {
		return false
	}
	rest := t[3:]
	if strings.HasPrefix(rest[0], statusMarkerPrefix) {
		return true
	}
	for _, tok := range rest {
		if isDateToken(tok) || isTimeToken(tok) {
			return true
		}
	}
	return false
}

func (c *Classifier) matchSpecialOrderLine(ln lineView) bool {
	if !ln.inSpecial || len(ln.tokens) == 0 {
		return false
	}
	if !reProduct.MatchString(ln.tokens[0]) {
		return false
	}
	for _, tok := range ln.tokens[1:] {
		if isDateToken(tok) {
			return true
		}
	}
	return false
}

// matchItemCandidate is a necessary, not sufficient, filter: field recovery
// may still fail and degrade the record to low confidence.
func (c *Classifier) matchItemCandidate(ln lineView) bool {
	return LooksLikeItemLine(ln.raw)
}

// LooksLikeItemLine reports whether a line has the shape of an inventory
// item row: a product-number first token, at least 6 tokens, and at least 2
// decimals among the last 6 tokens.
func LooksLikeItemLine(line string) bool {
	tokens := strings.Fields(line)
	if len(tokens) < 6 {
		return false
	}
	if !reProduct.MatchString(tokens[0]) {
		return false
	}
	return countDecimal(tokens[len(tokens)-6:]) >= 2
}

// isDividerLine matches horizontal rules of '=' or '-' characters.
func isDividerLine(line string) bool {
	line = strings.TrimSpace(line)
	if len(line) < 3 {
		return false
	}
	for _, r := range line {
		if r != '=' && r != '-' && r != ' ' {
			return false
		}
	}
	return true
}

// ExtractVendor pulls the vendor id and name out of a vendor header line.
// The name is everything after the id up to an optional trailing marker
// token (broker or minimum-order metadata), trimmed.
func ExtractVendor(line string) (Vendor, bool) {
	tokens := strings.Fields(line)
	if len(tokens) < 3 || !isIntegerToken(tokens[1]) {
		return Vendor{}, false
	}
	name := tokens[2:]
	for i, tok := range name {
		upper := strings.TrimSuffix(strings.ToUpper(tok), ":")
		if upper == "BROKER" || upper == "MIN" {
			name = name[:i]
			break
		}
	}
	if len(name) == 0 {
		return Vendor{}, false
	}
	return Vendor{ID: tokens[1], Name: strings.Join(name, " ")}, true
}
