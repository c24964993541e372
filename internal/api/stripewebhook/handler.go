package stripewebhooks

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"celerium-registration/internal/domain/billing"
	stripestatus "celerium-registration/internal/infra/stripe"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/webhook"
	"gorm.io/gorm"
)

// CheckoutSettler updates the payment attempt behind a Checkout Session.
type CheckoutSettler interface {
	SettleCheckout(ctx context.Context, sessionID, status, settled string) error
}

// StripeWebhook settles payments opened through Stripe Checkout.
func StripeWebhook(endpointSecret string, ledger CheckoutSettler) gin.HandlerFunc {
	return func(c *gin.Context) {
		if endpointSecret == "" {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "STRIPE_WEBHOOK_SECRET not configured"})
			return
		}

		payload, err := readStripeBody(c, 65536)
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Error reading request body"})
			return
		}

		event, err := webhook.ConstructEventWithOptions(
			payload,
			c.GetHeader("Stripe-Signature"),
			endpointSecret,
			webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
		)
		if err != nil {
			slog.Warn("❌ Stripe signature verification failed", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Signature verification failed"})
			return
		}

		var status string
		switch event.Type {
		case "checkout.session.completed", "checkout.session.async_payment_succeeded":
		case "checkout.session.async_payment_failed", "checkout.session.expired":
			status = billing.StatusFailed
		default:
			// Acknowledge unknown events to avoid retries
			c.JSON(http.StatusOK, gin.H{"status": "ignored"})
			return
		}

		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse session"})
			return
		}
		if status == "" {
			status = stripestatus.NormalizePaymentStatus(string(session.PaymentStatus))
		}

		settled := ""
		if status == billing.StatusSettled {
			settled = strconv.FormatInt(session.AmountTotal/100, 10)
		}

		if err := ledger.SettleCheckout(c.Request.Context(), session.ID, status, settled); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// not one of ours; a retry will not change that
				c.JSON(http.StatusOK, gin.H{"status": "unknown session"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		slog.Info("checkout session settled", "session_id", session.ID, "status", status)
		c.JSON(http.StatusOK, gin.H{"status": "received"})
	}
}

func readStripeBody(c *gin.Context, maxBytes int64) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	return io.ReadAll(c.Request.Body)
}
