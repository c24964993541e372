package stripe

import (
	"strings"

	"celerium-registration/internal/domain/billing"
)

// NormalizePaymentStatus maps a Checkout Session payment_status onto billing statuses.
func NormalizePaymentStatus(s string) string {
	switch strings.TrimSpace(s) {
	case "paid", "no_payment_required":
		return billing.StatusSettled
	case "unpaid", "":
		return billing.StatusPending
	default:
		return billing.StatusFailed
	}
}
