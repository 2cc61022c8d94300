// Package money formats minor-unit amounts for display.
package money

import (
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Format renders amount (minor units) as a major-unit currency string with two
// fraction digits, e.g. Format(1999, "usd") == "$19.99". Currencies without an
// en-US symbol are prefixed with their ISO code and a space.
func Format(amount int64, currencyCode string) string {
	code := strings.ToUpper(strings.TrimSpace(currencyCode))

	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	number := printer.Sprintf("%.2f", float64(amount)/100)

	if code == "" {
		return sign + number
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return sign + code + " " + number
	}
	sym := printer.Sprint(currency.Symbol(unit))
	if sym == unit.String() {
		return sign + sym + " " + number
	}
	return sign + sym + number
}
