package utils

import "strconv"

// FormatNaira renders an amount with the naira sign, trimming trailing
// zeros the way the sheets and invoices display money.
func FormatNaira(amount float64) string {
	return "₦" + strconv.FormatFloat(amount, 'f', -1, 64)
}

// KoboToNaira converts a gateway minor-unit amount to naira.
func KoboToNaira(kobo int64) float64 {
	return float64(kobo) / 100
}
