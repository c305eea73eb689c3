package display

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatResource renders a resource amount with one decimal and grouped
// thousands, e.g. 12345.67 -> "12,345.7".
func FormatResource(v float64) string {
	return printer.Sprintf("%.1f", v)
}

// FormatGain renders a signed resource delta, e.g. "+5.0".
func FormatGain(v float64) string {
	if v >= 0 {
		return "+" + FormatResource(v)
	}
	return FormatResource(v)
}
