package payment

import (
	"context"
	"fmt"

	"celerium-registration/internal/domain/billing"

	"gorm.io/gorm"
)

// GormLedger records payment attempts in the payments table.
type GormLedger struct {
	db *gorm.DB
}

func NewGormLedger(db *gorm.DB) *GormLedger {
	return &GormLedger{db: db}
}

func (l *GormLedger) Record(ctx context.Context, p *billing.Payment) error {
	return l.db.WithContext(ctx).Create(p).Error
}

// History lists a browser's payment attempts, newest first.
func (l *GormLedger) History(ctx context.Context, browserID string) ([]billing.Payment, error) {
	var payments []billing.Payment
	err := l.db.WithContext(ctx).
		Where("browser_id = ?", browserID).
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}

// SettleCheckout updates the attempt that opened the given Checkout Session.
func (l *GormLedger) SettleCheckout(ctx context.Context, sessionID, status, settled string) error {
	updates := map[string]interface{}{"status": status}
	if settled != "" {
		updates["settled"] = settled
	}

	res := l.db.WithContext(ctx).
		Model(&billing.Payment{}).
		Where("checkout_session_id = ?", sessionID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("checkout session %s: %w", sessionID, gorm.ErrRecordNotFound)
	}
	return nil
}
