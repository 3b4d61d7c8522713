package tui

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const currencyCode = "THB"

var printer = message.NewPrinter(language.English)

// FormatPrice renders a whole-baht price with digit grouping, e.g.
// "THB 2,500,000".
func FormatPrice(price float64) string {
	return currencyCode + " " + printer.Sprintf("%v", number.Decimal(math.Round(price), number.MaxFractionDigits(0)))
}

// FormatArea groups digits and keeps up to three fraction digits.
func FormatArea(sqm float64) string {
	return printer.Sprintf("%v", number.Decimal(sqm, number.MaxFractionDigits(3)))
}

func FormatCount(n int) string {
	return printer.Sprintf("%v", number.Decimal(n))
}
