package pricing

import "fmt"

// Cents is a monetary amount in US cents. All quote arithmetic is integral;
// rounding to two fraction digits happens at presentation time only.
type Cents int64

// FormatUSD renders the amount for display, e.g. "$120.00".
func FormatUSD(c Cents) string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s$%d.%02d", sign, c/100, c%100)
}
