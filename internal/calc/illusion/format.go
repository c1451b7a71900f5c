package illusion

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Money formats v as dollars with thousands separators, e.g. $6,000.00.
func Money(v float64) string {
	return printer.Sprintf("$%.2f", v)
}

// Amount formats a table value with four decimals, e.g. 2,477,443.6090.
func Amount(v float64) string {
	return printer.Sprintf("%.4f", v)
}
