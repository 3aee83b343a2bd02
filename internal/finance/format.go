package finance

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.French)

// Currency é a moeda exibida nos rótulos.
const Currency = "MAD"

// FormatAmount formata valores como "120 000 MAD".
func FormatAmount(amount float64) string {
	return printer.Sprintf("%v %s", number.Decimal(amount, number.MaxFractionDigits(2)), Currency)
}

// FormatRate formata uma razão em [0,1] como porcentagem inteira.
func FormatRate(rate float64) string {
	return printer.Sprintf("%v", number.Percent(rate, number.MaxFractionDigits(0)))
}
