package types

// DefaultCurrency is the fallback currency code used before the user
// has saved any invoice.
const DefaultCurrency = "USD"

// CURRENCY_CODES_SYMBOLS maps 3 letter ISO currency codes to their symbols
var CURRENCY_CODES_SYMBOLS = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"AUD": "AU$",
	"CAD": "CA$",
	"CHF": "CHF",
	"SEK": "kr",
	"NZD": "NZ$",
	"HKD": "HK$",
	"SGD": "S$",
	"JPY": "¥",
	"CNY": "¥",
	"INR": "₹",
	"BRL": "R$",
	"RUB": "₽",
	"MXN": "MX$",
	"KRW": "₩",
	"TRY": "₺",
	"ZAR": "R",
	"MYR": "RM",
}

// GetCurrencySymbol returns the symbol for a given currency code
// if the code is not found, it returns the code itself
func GetCurrencySymbol(code string) string {
	if symbol, ok := CURRENCY_CODES_SYMBOLS[code]; ok {
		return symbol
	}
	return code
}
