package charts

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var currencyPrinter = message.NewPrinter(language.English)

// FormatCurrency renders an amount with two decimals: 1234.5 -> "$1,234.50".
func FormatCurrency(v float64) string {
	return currencyPrinter.Sprintf("$%.2f", v)
}
