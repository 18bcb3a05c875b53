package output

import (
	"fmt"
	"strconv"

	"github.com/finfreedom/fincalc/pkg/decimal"
)

// FormatCurrency formats an amount as USD with cents and thousands separators.
func FormatCurrency(amount float64) string { return decimal.NewMoney(amount).Format() }

// FormatDollars formats an amount rounded to whole dollars.
func FormatDollars(amount float64) string { return decimal.NewMoney(amount).FormatDollars() }

// FormatPercentage formats a percent value with 2 decimals.
func FormatPercentage(percent float64) string { return fmt.Sprintf("%.2f%%", percent) }

// csvAmount renders an amount for CSV: cents, no symbol, no separators.
func csvAmount(amount float64) string { return decimal.NewMoney(amount).Round().String() }

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }
