package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifier_Classify(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name      string
		line      string
		inSpecial bool
		want      LineClass
	}{
		{"blank line", "   ", false, ClassNoise},
		{"equals divider", "==========================", false, ClassNoise},
		{"dash divider", "--------------------------", false, ClassNoise},
		{"report metadata", "STOCK STATUS REPORT   RUN DATE: 12/29/25", false, ClassNoise},
		{"column header", "ITEM DESCRIPTION      YTD AVG  AVAIL", false, ClassNoise},
		{"packaging continuation", "   TI: 10 HI: 4 CUBE: 1.25", false, ClassNoise},
		{"vendor header", "VENDOR 00001740 FRITO LAY", false, ClassVendorHeader},
		{"vendor header with broker", "VENDOR 00001740 FRITO LAY BROKER: 441 MIN ORD 500", false, ClassVendorHeader},
		{"special order section header", "** SPECIAL ORDER ITEMS **", false, ClassSpecialOrderHeader},
		{"po section header", "OPEN PO SUMMARY", false, ClassPOHeader},
		{
			"po line with status marker",
			"60649 01/02/26 955 Conf:EDI Costs Yes 01/02/26 06:00 12/23/25",
			false,
			ClassPOLine,
		},
		{
			"po line with trailing date only",
			"60650 12/31/25 100 Hold 12/20/25",
			false,
			ClassPOLine,
		},
		{
			"item line",
			"54406 CS 72/1 OZ DORITO CHIP TORTILLA NACHO CHSE 665 39 29 4 1 24 46 48 9 28.79 31.05 DL3400 4.4",
			false,
			ClassItemLine,
		},
		{
			"five digit product is not a po without dates",
			"54406 CS 12/1 OZ ACME SNACK 10 5 3 12.50 13.75 DRY 2.2",
			false,
			ClassItemLine,
		},
		{
			"special order line inside section",
			"54407 CHIP DISPLAY RACK 1234 SMITH FOODS 12/01/25 12/15/25 60650 5 3",
			true,
			ClassSpecialOrderLine,
		},
		{
			"special order shape outside section is not special order",
			"5A407 CHIP DISPLAY RACK 1234 SMITH 12/01/25",
			false,
			ClassNoise,
		},
		{"short line falls through to noise", "HELLO WORLD", false, ClassNoise},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.line, tt.inSpecial), "line %q", tt.line)
		})
	}
}

func TestClassifier_SectionExit(t *testing.T) {
	c := NewClassifier()

	assert.True(t, c.SectionExit("SUB-TOTAL SPECIAL ORDERS 12"))
	assert.True(t, c.SectionExit("------------------------------"))
	assert.True(t, c.SectionExit("ITEM DESCRIPTION      YTD AVG"))
	assert.False(t, c.SectionExit("54407 CHIP DISPLAY RACK 1234 SMITH 12/01/25"))
}

func TestExtractVendor(t *testing.T) {
	t.Run("plain header", func(t *testing.T) {
		v, ok := ExtractVendor("VENDOR 00001740 FRITO LAY")
		require.True(t, ok)
		assert.Equal(t, "00001740", v.ID)
		assert.Equal(t, "FRITO LAY", v.Name)
	})

	t.Run("name stops at broker metadata", func(t *testing.T) {
		v, ok := ExtractVendor("VENDOR 00001740 FRITO LAY BROKER: 441")
		require.True(t, ok)
		assert.Equal(t, "FRITO LAY", v.Name)
	})

	t.Run("name stops at min order metadata", func(t *testing.T) {
		v, ok := ExtractVendor("VENDOR 00002000 PEPSI CO MIN ORD 500")
		require.True(t, ok)
		assert.Equal(t, "PEPSI CO", v.Name)
	})

	t.Run("rejects header without name", func(t *testing.T) {
		_, ok := ExtractVendor("VENDOR 00001740")
		assert.False(t, ok)
	})
}

func TestLooksLikeItemLine(t *testing.T) {
	assert.True(t, LooksLikeItemLine("54406 CS 72/1 OZ DORITO CHIP 665 24 46 9 28.79 31.05 DL3400 4.4"))
	assert.False(t, LooksLikeItemLine("54406 CS 72/1"), "too few tokens")
	assert.False(t, LooksLikeItemLine("PRODUCT-X CS A B C D E F 1.0 2.0"), "first token not a product number")
	assert.False(t, LooksLikeItemLine("54406 AA BB CC DD EE FF GG"), "no decimals in the tail")
}
