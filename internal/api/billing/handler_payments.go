package billing

import (
	"context"
	"net/http"

	"celerium-registration/internal/app/http/middleware"
	"celerium-registration/internal/domain/billing"

	"github.com/gin-gonic/gin"
)

type HistoryReader interface {
	History(ctx context.Context, browserID string) ([]billing.Payment, error)
}

// GetPaymentHistory lists the payment attempts made from this browser.
func GetPaymentHistory(ledger HistoryReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		browserID := middleware.BrowserID(c)
		if browserID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Browser not identified"})
			return
		}

		payments, err := ledger.History(c.Request.Context(), browserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payments"})
			return
		}
		if payments == nil {
			payments = []billing.Payment{}
		}

		c.JSON(http.StatusOK, payments)
	}
}
