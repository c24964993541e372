package billing

import "time"

// Payment statuses.
const (
	StatusSettled  = "settled"
	StatusPending  = "pending"
	StatusRejected = "rejected"
	StatusFailed   = "failed"
)

// Payment is one Pay attempt made from a registration summary.
type Payment struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	BrowserID         string    `gorm:"index;type:varchar(64)" json:"-"`
	Provider          string    `gorm:"type:varchar(20)" json:"provider"`
	Amount            int64     `json:"amount"`
	Settled           *string   `json:"settled,omitempty"`
	Status            string    `gorm:"type:varchar(20);index" json:"status"`
	CheckoutSessionID *string   `gorm:"uniqueIndex" json:"checkout_session_id,omitempty"`
	Error             *string   `json:"error,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}
