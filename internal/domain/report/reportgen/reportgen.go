// Package reportgen fabricates stock status report text with a known shape.
// Seeded generators keep the output reproducible, which the parser tests
// rely on for idempotence and attribution checks.
package reportgen

import (
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
)

// Generator produces synthetic report fragments.
type Generator struct {
	faker *gofakeit.Faker
}

// New creates a generator with a fixed seed for reproducibility.
func New(seed int64) *Generator {
	return &Generator{faker: gofakeit.New(seed)}
}

// VendorHeader renders a vendor header line for the given id.
func (g *Generator) VendorHeader(id string) string {
	name := strings.ToUpper(g.faker.Company())
	name = strings.Map(func(r rune) rune {
		if r == ',' || r == '.' || r == '\'' {
			return -1
		}
		return r
	}, name)
	return fmt.Sprintf("VENDOR %s %s", id, name)
}

// ItemLine renders a full-width item line: front fields, sales block,
// quantity columns, costs, slot and priority score. The nine numeric
// columns make it a high-confidence row.
func (g *Generator) ItemLine() string {
	product := fmt.Sprintf("%05d", g.faker.Number(10000, 99999))
	brand := strings.ToUpper(g.faker.LastName())
	desc := strings.ToUpper(g.faker.NounConcrete())
	return fmt.Sprintf("%s CS %d/%d OZ %s %s %d %d %d %d %d %d %d %d %d %d.%02d %d.%02d DL%d %d.%d",
		product,
		g.faker.Number(6, 96), g.faker.Number(1, 4),
		brand, desc,
		g.faker.Number(100, 900), // YTD
		g.faker.Number(10, 90),
		g.faker.Number(10, 90),
		g.faker.Number(1, 9),
		g.faker.Number(1, 9),
		g.faker.Number(10, 40),  // average
		g.faker.Number(10, 90),  // available
		g.faker.Number(10, 90),  // on order
		g.faker.Number(1, 20),   // days of supply
		g.faker.Number(10, 60), g.faker.Number(0, 99), // landed
		g.faker.Number(10, 60), g.faker.Number(0, 99), // market
		g.faker.Number(1000, 9999),
		g.faker.Number(1, 9), g.faker.Number(0, 9), // priority
	)
}

// POLine renders a purchase order line due on the given date.
func (g *Generator) POLine(due string) string {
	return fmt.Sprintf("%05d %s %d Conf:EDI Yes %s %d:%02d",
		g.faker.Number(10000, 99999),
		due,
		g.faker.Number(50, 1500),
		due,
		g.faker.Number(5, 18), g.faker.Number(0, 59),
	)
}

// Report assembles a small but complete report: run-date stamp, vendor
// blocks with items, one PO per vendor, and the usual noise in between.
func (g *Generator) Report(runDate string, vendors, itemsPerVendor int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "STOCK STATUS REPORT          RUN DATE: %s\n", runDate)
	b.WriteString("ITEM DESCRIPTION                 YTD AVG  AVAIL ON-ORD DOS  LAND MKT  SLOT\n")
	b.WriteString(strings.Repeat("=", 78) + "\n")
	for v := 0; v < vendors; v++ {
		id := fmt.Sprintf("%08d", g.faker.Number(1000, 9999))
		b.WriteString(g.VendorHeader(id) + "\n")
		for i := 0; i < itemsPerVendor; i++ {
			b.WriteString(g.ItemLine() + "\n")
			if g.faker.Bool() {
				fmt.Fprintf(&b, "     TI: %d HI: %d CUBE: 1.%d\n",
					g.faker.Number(5, 20), g.faker.Number(3, 10), g.faker.Number(0, 9))
			}
		}
		b.WriteString(g.POLine(runDate) + "\n")
		b.WriteString(strings.Repeat("-", 78) + "\n")
	}
	b.WriteString("END OF REPORT\n")
	return b.String()
}
