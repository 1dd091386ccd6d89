package utils

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when no priced item carries a currency symbol.
const DefaultCurrency = "£"

// ParsePrice reads a display price such as "£544" or "From £1,250.50".
// The amount is every digit and '.' in the string, read as a decimal.
// The currency is the run of symbol characters right before the first digit.
// ok is false when no amount can be read ("POA", "", "1.2.3").
func ParsePrice(display string) (currency string, amount decimal.Decimal, ok bool) {
	var digits strings.Builder
	first := -1
	for i, r := range display {
		if unicode.IsDigit(r) || r == '.' {
			if first < 0 && unicode.IsDigit(r) {
				first = i
			}
			digits.WriteRune(r)
		}
	}
	if first < 0 {
		return "", decimal.Zero, false
	}
	amount, err := decimal.NewFromString(digits.String())
	if err != nil {
		return "", decimal.Zero, false
	}
	return currencyBefore(display[:first]), amount, true
}

func currencyBefore(s string) string {
	s = strings.TrimRightFunc(strings.TrimRight(s, "."), unicode.IsSpace)
	runes := []rune(s)
	i := len(runes)
	for i > 0 {
		r := runes[i-1]
		if unicode.IsSpace(r) || unicode.IsLetter(r) || unicode.IsDigit(r) {
			break
		}
		i--
	}
	return string(runes[i:])
}

// FormatPrice renders amount with the currency prefix and no thousands
// separators. Whole amounts have no decimals.
func FormatPrice(currency string, amount decimal.Decimal) string {
	if amount.Equal(amount.Truncate(0)) {
		return currency + amount.StringFixed(0)
	}
	return currency + amount.StringFixed(2)
}

// SumPrices adds display prices and renders the total in the currency of
// the first parseable price. Unparseable prices count as zero.
func SumPrices(prices []string) string {
	total := decimal.Zero
	currency := ""
	for _, p := range prices {
		cur, amount, ok := ParsePrice(p)
		if !ok {
			continue
		}
		if currency == "" {
			currency = cur
		}
		total = total.Add(amount)
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	return FormatPrice(currency, total)
}
