// README: Cent formatting shared across modules.
package types

import "github.com/shopspring/decimal"

// FormatPrice renders cents as "$X.XX". Negative amounts render as "-$X.XX".
func FormatPrice(cents int64) string {
	amount := decimal.New(cents, -2)
	if cents < 0 {
		return "-$" + amount.Abs().StringFixed(2)
	}
	return "$" + amount.StringFixed(2)
}
