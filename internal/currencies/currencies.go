// Package currencies holds the fixed set of supported currencies together
// with display metadata and alias resolution. The tables are built once and
// are read-only for the process lifetime.
package currencies

import (
	"sort"
	"strings"
)

// Info describes one supported currency.
type Info struct {
	Code      string
	Name      string
	Symbol    string
	Precision int // conventional number of decimal places for display
}

// table covers the currency set served by the Frankfurter rate source.
var table = map[string]Info{
	"AUD": {"AUD", "Australian Dollar", "A$", 2},
	"BGN": {"BGN", "Bulgarian Lev", "лв", 2},
	"BRL": {"BRL", "Brazilian Real", "R$", 2},
	"CAD": {"CAD", "Canadian Dollar", "C$", 2},
	"CHF": {"CHF", "Swiss Franc", "CHF", 2},
	"CNY": {"CNY", "Chinese Renminbi Yuan", "¥", 2},
	"CZK": {"CZK", "Czech Koruna", "Kč", 2},
	"DKK": {"DKK", "Danish Krone", "kr", 2},
	"EUR": {"EUR", "Euro", "€", 2},
	"GBP": {"GBP", "British Pound", "£", 2},
	"HKD": {"HKD", "Hong Kong Dollar", "HK$", 2},
	"HUF": {"HUF", "Hungarian Forint", "Ft", 2},
	"IDR": {"IDR", "Indonesian Rupiah", "Rp", 2},
	"ILS": {"ILS", "Israeli New Sheqel", "₪", 2},
	"INR": {"INR", "Indian Rupee", "₹", 2},
	"ISK": {"ISK", "Icelandic Króna", "kr", 0},
	"JPY": {"JPY", "Japanese Yen", "¥", 0},
	"KRW": {"KRW", "South Korean Won", "₩", 0},
	"MXN": {"MXN", "Mexican Peso", "MX$", 2},
	"MYR": {"MYR", "Malaysian Ringgit", "RM", 2},
	"NOK": {"NOK", "Norwegian Krone", "kr", 2},
	"NZD": {"NZD", "New Zealand Dollar", "NZ$", 2},
	"PHP": {"PHP", "Philippine Peso", "₱", 2},
	"PLN": {"PLN", "Polish Złoty", "zł", 2},
	"RON": {"RON", "Romanian Leu", "lei", 2},
	"SEK": {"SEK", "Swedish Krona", "kr", 2},
	"SGD": {"SGD", "Singapore Dollar", "S$", 2},
	"THB": {"THB", "Thai Baht", "฿", 2},
	"TRY": {"TRY", "Turkish Lira", "₺", 2},
	"USD": {"USD", "United States Dollar", "$", 2},
	"ZAR": {"ZAR", "South African Rand", "R", 2},
}

// aliases maps common currency symbols and English names to codes. Keys are
// lower case; plural forms are listed explicitly.
var aliases = map[string]string{
	"$": "USD", "€": "EUR", "£": "GBP", "¥": "JPY", "₹": "INR", "₩": "KRW",

	"dollar": "USD", "dollars": "USD", "buck": "USD", "bucks": "USD",
	"euro": "EUR", "euros": "EUR",
	"pound": "GBP", "pounds": "GBP", "sterling": "GBP", "quid": "GBP",
	"yen": "JPY",
	"rupee": "INR", "rupees": "INR",
	"franc": "CHF", "francs": "CHF",
	"yuan": "CNY", "renminbi": "CNY",
	"won": "KRW",
	"krona": "SEK", "kronor": "SEK",
	"zloty": "PLN",
	"real": "BRL", "reais": "BRL",
	"peso": "MXN", "pesos": "MXN",
	"shekel": "ILS", "shekels": "ILS",
	"rand": "ZAR",
	"baht": "THB",
	"ringgit": "MYR",
	"rupiah": "IDR",
	"forint": "HUF",
	"koruna": "CZK",
	"lira": "TRY",
}

// Lookup returns metadata for a supported currency code.
func Lookup(code string) (Info, bool) {
	info, ok := table[strings.ToUpper(code)]
	return info, ok
}

// IsSupported reports whether the rate source serves the given code.
func IsSupported(code string) bool {
	_, ok := table[strings.ToUpper(code)]
	return ok
}

// Resolve normalizes a raw text token into a currency code. Symbols and
// English names resolve through the alias table; any 3-letter alphabetic
// token is accepted as a code regardless of supportedness, since the rate
// layer owns that judgement.
func Resolve(token string) (string, bool) {
	t := strings.ToLower(strings.TrimSpace(token))
	if t == "" {
		return "", false
	}
	if code, ok := aliases[t]; ok {
		return code, true
	}
	if isCode(t) {
		return strings.ToUpper(t), true
	}
	return "", false
}

func isCode(t string) bool {
	if len(t) != 3 {
		return false
	}
	for _, r := range t {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

// Precision returns the conventional number of display decimals for a code,
// defaulting to 2 for codes outside the table.
func Precision(code string) int {
	if info, ok := table[strings.ToUpper(code)]; ok {
		return info.Precision
	}
	return 2
}

// All returns every supported currency ordered by code.
func All() []Info {
	out := make([]Info, 0, len(table))
	for _, info := range table {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
