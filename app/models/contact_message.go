package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Contact request types.
const (
	RequestTypeInfo        = "info"
	RequestTypePartnership = "partnership"
	RequestTypeSupport     = "support"
	RequestTypeUrgent      = "urgent"
)

// ContactMessage is an inbound message from the public contact form.
type ContactMessage struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(120);not null" json:"name" validate:"required,max=120"`
	Email       string    `gorm:"type:varchar(255);not null" json:"email" validate:"required,email"`
	Phone       string    `gorm:"type:varchar(30)" json:"phone" validate:"omitempty,max=30"`
	RequestType string    `gorm:"type:varchar(20);default:'info'" json:"request_type" validate:"required,oneof=info partnership support urgent"`
	Subject     string    `gorm:"type:varchar(200)" json:"subject" validate:"omitempty,max=200"`
	Message     string    `gorm:"type:text;not null" json:"message" validate:"required,max=2000"`
	Handled     bool      `gorm:"default:false;index" json:"handled"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the ContactMessage model
func (ContactMessage) TableName() string {
	return "contact_messages"
}

func (m *ContactMessage) Validate() error {
	v := validator.New()
	return v.Struct(m)
}

// RequestTypeOption pairs a request type value with its form label.
type RequestTypeOption struct {
	Value string
	Label string
}

// RequestTypes lists the selectable request types in form order.
func RequestTypes() []RequestTypeOption {
	return []RequestTypeOption{
		{Value: RequestTypeInfo, Label: "Information"},
		{Value: RequestTypePartnership, Label: "Partenariat"},
		{Value: RequestTypeSupport, Label: "Soutien / Bénévolat"},
		{Value: RequestTypeUrgent, Label: "Urgent"},
	}
}

// RequestTypeLabel returns the human readable label used in templates and
// acknowledgment emails.
func (m *ContactMessage) RequestTypeLabel() string {
	switch m.RequestType {
	case RequestTypePartnership:
		return "Partenariat"
	case RequestTypeSupport:
		return "Soutien / Bénévolat"
	case RequestTypeUrgent:
		return "Urgent"
	default:
		return "Information"
	}
}
