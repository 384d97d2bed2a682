package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warebridge/stockstatus/internal/domain/report/reportgen"
)

var reportDate = time.Date(2025, time.December, 29, 0, 0, 0, 0, time.UTC)

const sampleReport = `STOCK STATUS REPORT          RUN DATE: 12/29/25
ITEM DESCRIPTION                 YTD AVG  AVAIL ON-ORD DOS  LAND MKT  SLOT
==============================================================================
VENDOR 00001740 FRITO LAY BROKER: 441
54406 CS 72/1 OZ DORITO CHIP TORTILLA NACHO CHSE 665 39 29 4 1 24 46 48 9 28.79 31.05 DL3400 4.4
     TI: 10 HI: 4 CUBE: 1.25
60649 01/02/26 955 Conf:EDI Costs Yes 01/02/26 06:00 12/23/25
** SPECIAL ORDER ITEMS **
54407 CHIP DISPLAY RACK 1234 SMITH FOODS 12/01/25 12/15/25 60650 5 3
SUB-TOTAL SPECIAL ORDERS 5
VENDOR 00002000 PEPSI CO MIN ORD 500
88123 CS 24/1 LTR PEPSI COLA CLASSIC 420 30 12 2 1 18 22 10 2 14.10 15.25 COOLER 3.1
60651 12/31/25 100 Hold 12/20/25
END OF REPORT
`

func TestParser_Parse(t *testing.T) {
	p := New(Options{})
	res := p.ParseText(sampleReport, reportDate)

	t.Run("record counts", func(t *testing.T) {
		require.Len(t, res.Items, 2)
		require.Len(t, res.PurchaseOrders, 2)
		require.Len(t, res.SpecialOrders, 1)
		assert.Empty(t, res.Errors)
	})

	t.Run("vendor attribution follows the nearest preceding header", func(t *testing.T) {
		assert.Equal(t, "00001740", res.Items[0].VendorID)
		assert.Equal(t, "FRITO LAY", res.Items[0].VendorName)
		assert.Equal(t, "00002000", res.Items[1].VendorID)
		assert.Equal(t, "PEPSI CO", res.Items[1].VendorName)
		assert.Equal(t, "00001740", res.PurchaseOrders[0].VendorID)
		assert.Equal(t, "00002000", res.PurchaseOrders[1].VendorID)
		assert.Equal(t, "00001740", res.SpecialOrders[0].VendorID)
	})

	t.Run("item fields", func(t *testing.T) {
		item := res.Items[0]
		assert.Equal(t, "54406", item.ProductNumber)
		assert.Equal(t, "CS", item.Unit)
		assert.Equal(t, "DORITO", item.Brand)
		assert.Equal(t, ConfidenceHigh, item.Confidence)
		require.NotNil(t, item.DaysOfSupply)
		assert.Equal(t, "9", item.DaysOfSupply.String())
		assert.Contains(t, item.RawLine, "54406 CS 72/1 OZ")
	})

	t.Run("special order section is exited by the subtotal", func(t *testing.T) {
		// The PEPSI item after SUB-TOTAL must be an inventory item, not a
		// special order.
		assert.Equal(t, "88123", res.Items[1].ProductNumber)
	})

	t.Run("urgency", func(t *testing.T) {
		assert.False(t, res.PurchaseOrders[0].IsUrgent)
		assert.True(t, res.PurchaseOrders[1].IsUrgent)
	})

	t.Run("stats", func(t *testing.T) {
		s := res.Stats
		assert.Equal(t, 2, s.TotalItems)
		assert.Equal(t, 2, s.HighConfidence)
		assert.Equal(t, 2, s.DistinctVendors)
		assert.Equal(t, 1, s.SpecialOrderCount)
		assert.Equal(t, 2, s.TotalPOs)
		assert.Equal(t, 1055, s.TotalCases)
		assert.Equal(t, 2, s.POVendors)
		assert.Equal(t, 1, s.UrgentPOs)
		assert.Equal(t, 100, s.CasesAtRisk)
		assert.Equal(t, 1, s.MissingEDI)
		assert.Equal(t, 1, s.MissingAppointment)
		assert.Equal(t, 0, s.OverduePOs)
		assert.Equal(t, 2, s.ArrivingWithinWeek)
		// DOS 9 and 2: the PEPSI row is attention and critical.
		assert.Equal(t, 1, s.Attention)
		assert.Equal(t, 1, s.Critical)
	})
}

func TestParser_ItemBeforeVendorIsAnError(t *testing.T) {
	p := New(Options{})
	lines := []string{
		"54406 CS 72/1 OZ DORITO CHIP TORTILLA NACHO CHSE 665 39 29 4 1 24 46 48 9 28.79 31.05 DL3400 4.4",
	}
	res := p.Parse(lines, reportDate)

	assert.Empty(t, res.Items)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "line 1:")
	assert.Contains(t, res.Errors[0], "vendor header")
}

func TestParser_PODeduplication(t *testing.T) {
	p := New(Options{})
	lines := []string{
		"VENDOR 00001740 FRITO LAY",
		"60649 01/02/26 955 Conf:EDI Yes 01/02/26 06:00",
		"60649 01/02/26 955 Conf:EDI Yes 01/02/26 06:00",
		"60650 01/03/26 10 Hold 12/20/25",
	}
	res := p.Parse(lines, reportDate)

	require.Len(t, res.PurchaseOrders, 2)
	seen := make(map[string]bool)
	for _, po := range res.PurchaseOrders {
		assert.False(t, seen[po.PONumber], "duplicate PO %s", po.PONumber)
		seen[po.PONumber] = true
	}
}

func TestParser_MalformedLineDoesNotAbort(t *testing.T) {
	p := New(Options{})
	lines := []string{
		"VENDOR 00001740 FRITO LAY",
		"60649 13/45/26 955 Conf:EDI Yes 01/02/26 06:00",
		"54406 CS 72/1 OZ DORITO CHIP TORTILLA NACHO CHSE 665 39 29 4 1 24 46 48 9 28.79 31.05 DL3400 4.4",
	}
	res := p.Parse(lines, reportDate)

	require.Len(t, res.Items, 1)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "line 2:")
}

func TestParser_Idempotence(t *testing.T) {
	text := reportgen.New(42).Report("12/29/25", 3, 4)
	p := New(Options{})

	first := p.ParseText(text, reportDate)
	second := p.ParseText(text, reportDate)

	assert.Equal(t, first, second)
	assert.NotEmpty(t, first.Items)
}

func TestParser_GeneratedReportProperties(t *testing.T) {
	text := reportgen.New(7).Report("12/29/25", 5, 6)
	p := New(Options{})
	res := p.ParseText(text, reportDate)

	t.Run("high confidence implies days of supply", func(t *testing.T) {
		for _, item := range res.Items {
			if item.Confidence == ConfidenceHigh {
				assert.NotNil(t, item.DaysOfSupply, "item %s", item.ProductNumber)
			}
		}
	})

	t.Run("tier monotonicity", func(t *testing.T) {
		for _, item := range res.Items {
			if item.NumericColumns < 5 {
				assert.Equal(t, ConfidenceLow, item.Confidence, "item %s", item.ProductNumber)
			}
		}
	})

	t.Run("urgency totality", func(t *testing.T) {
		for _, po := range res.PurchaseOrders {
			inWindow := po.DaysUntilDue <= 5
			missing := po.EDIConfirmed == nil || !*po.EDIConfirmed || po.Appointment == nil
			assert.Equal(t, inWindow && missing, po.IsUrgent, "po %s", po.PONumber)
		}
	})

	t.Run("every record has a vendor", func(t *testing.T) {
		for _, item := range res.Items {
			assert.NotEmpty(t, item.VendorID)
		}
		for _, po := range res.PurchaseOrders {
			assert.NotEmpty(t, po.VendorID)
		}
	})

	t.Run("no duplicate po numbers", func(t *testing.T) {
		seen := make(map[string]bool)
		for _, po := range res.PurchaseOrders {
			assert.False(t, seen[po.PONumber])
			seen[po.PONumber] = true
		}
	})

	t.Run("stats are consistent with the collections", func(t *testing.T) {
		s := res.Stats
		assert.Equal(t, len(res.Items), s.TotalItems)
		assert.Equal(t, s.TotalItems, s.HighConfidence+s.MediumConfidence+s.LowConfidence)
		assert.Equal(t, len(res.PurchaseOrders), s.TotalPOs)
	})
}
