package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Donation statuses. The reference is the locally generated correlation key
// with the payment processor; status only ever moves out of pending.
const (
	DonationStatusPending  = "pending"
	DonationStatusPaid     = "paid"
	DonationStatusFailed   = "failed"
	DonationStatusCanceled = "canceled"
)

// Donation represents a single donation attempt. Records are never deleted,
// they are kept for audit and dashboard counts.
type Donation struct {
	ID                    uint64    `gorm:"primaryKey" json:"id"`
	Reference             string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"reference" validate:"required,max=64"`
	Amount                int64     `gorm:"not null" json:"amount" validate:"required,gt=0"`
	Currency              string    `gorm:"type:varchar(8);default:'XOF'" json:"currency" validate:"required,max=8"`
	Email                 string    `gorm:"type:varchar(255)" json:"email" validate:"omitempty,email"`
	Phone                 string    `gorm:"type:varchar(24)" json:"phone" validate:"omitempty,max=24"`
	Status                string    `gorm:"type:varchar(12);default:'pending';index" json:"status" validate:"required,oneof=pending paid failed canceled"`
	ExternalTransactionID string    `gorm:"type:varchar(64)" json:"external_transaction_id"`
	CreatedAt             time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the Donation model
func (Donation) TableName() string {
	return "donations"
}

func (d *Donation) Validate() error {
	v := validator.New()
	return v.Struct(d)
}
