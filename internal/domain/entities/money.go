package entities

import "fmt"

// Paise is a monetary amount in integer minor units (1 rupee = 100 paise).
//
// All persistence and arithmetic in the service happens in paise; rupee
// formatting exists only at the notification-message edge. This avoids the
// rounding drift of float arithmetic on decimal currency values.
type Paise int64

// Rupees returns the whole-rupee part and the remaining paise.
func (p Paise) Rupees() (int64, int64) {
	return int64(p) / 100, int64(p) % 100
}

// FormatINR renders an amount as a user-facing rupee string, e.g. "₹850.00".
func FormatINR(p Paise) string {
	neg := ""
	if p < 0 {
		neg = "-"
		p = -p
	}
	r, ps := p.Rupees()
	return fmt.Sprintf("%s₹%d.%02d", neg, r, ps)
}
