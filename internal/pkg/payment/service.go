package payment

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/enfantsenjoie/eejsite/app/models"
	"github.com/enfantsenjoie/eejsite/app/repository"
	"github.com/enfantsenjoie/eejsite/internal/pkg/token"
)

// Checkout bounds, in minor currency units (XOF has none, so these are
// whole francs).
const (
	DefaultAmount   = 1000
	MinimumAmount   = 100
	DefaultCurrency = "XOF"

	referenceBytes = 10 // 80 bits of entropy
)

// statusMapping translates the processor's status vocabulary to ours.
// Anything missing from this table is a deliberate no-op: processors send
// intermediate statuses not worth modeling.
var statusMapping = map[string]string{
	"approved": models.DonationStatusPaid,
	"paid":     models.DonationStatusPaid,
	"canceled": models.DonationStatusCanceled,
	"failed":   models.DonationStatusFailed,
}

// CheckoutSession is the descriptor the donate page hands to the external
// checkout widget. No synchronous processor API call happens here; the
// processor calls back through the webhook.
type CheckoutSession struct {
	PublicKey   string
	Environment string
	Amount      int64
	Currency    string
	Description string
	Reference   string
	SuccessURL  string
	CancelURL   string
}

// WebhookOutcome reports what a delivery did, for logging and metrics.
type WebhookOutcome struct {
	Reference string
	Status    string
	Applied   bool
}

// Service implements the donation checkout and webhook reconciliation
// flows on top of the donation repository.
type Service struct {
	cfg       Config
	donations repository.DonationRepository
}

// NewService creates a payment service.
func NewService(cfg Config, donations repository.DonationRepository) *Service {
	return &Service{cfg: cfg, donations: donations}
}

// Config exposes the processor configuration (for the debug page).
func (s *Service) Config() Config {
	return s.cfg
}

// StartCheckout creates a pending donation and returns the widget
// descriptor. Amounts are coerced to an integer with a fallback and
// floored at the minimum; the currency defaults when empty.
func (s *Service) StartCheckout(amountRaw, currency, email, phone, successURL, cancelURL string) (*CheckoutSession, error) {
	amount, err := strconv.ParseInt(strings.TrimSpace(amountRaw), 10, 64)
	if err != nil {
		amount = DefaultAmount
	}
	if amount < MinimumAmount {
		amount = MinimumAmount
	}

	currency = strings.TrimSpace(currency)
	if currency == "" {
		currency = DefaultCurrency
	}

	reference, err := token.NewHex(referenceBytes)
	if err != nil {
		return nil, err
	}

	donation := &models.Donation{
		Reference: reference,
		Amount:    amount,
		Currency:  currency,
		Email:     strings.TrimSpace(email),
		Phone:     strings.TrimSpace(phone),
		Status:    models.DonationStatusPending,
	}
	if err := s.donations.Create(donation); err != nil {
		return nil, err
	}

	return &CheckoutSession{
		PublicKey:   s.cfg.PublicKey,
		Environment: s.cfg.Mode,
		Amount:      amount,
		Currency:    currency,
		Description: "Don ONG EEJ",
		Reference:   reference,
		SuccessURL:  successURL,
		CancelURL:   cancelURL,
	}, nil
}

// HandleWebhook verifies, parses and applies one webhook delivery.
//
// A nil error means "answer 2xx, do not redeliver" — including the
// unknown-status no-op and the diagnostic-mode shortcuts. The sentinel
// errors in errors.go mean "answer 400, processor may retry".
func (s *Service) HandleWebhook(body []byte, signatureHeader string) (*WebhookOutcome, error) {
	if s.cfg.VerificationActive() {
		if !VerifySignature(body, signatureHeader, s.cfg.WebhookSecret) {
			return nil, ErrInvalidSignature
		}
	} else {
		// Must be loud: this state hides real integration errors and is
		// only acceptable while diagnosing sandbox deliveries.
		log.Println("[payments] webhook signature verification DISABLED, accepting delivery unverified")
	}

	event, err := ExtractEvent(body)
	if err != nil {
		return nil, err
	}

	log.Printf("[payments] webhook ref=%s status=%s id=%s", event.Reference, event.Status, event.ExternalTransactionID)

	if event.Reference == "" {
		// Never block the processor's retry loop during manual testing.
		if !s.cfg.VerificationActive() {
			return &WebhookOutcome{}, nil
		}
		return nil, ErrMissingReference
	}

	if _, err := s.donations.GetByReference(event.Reference); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if !s.cfg.VerificationActive() {
				return &WebhookOutcome{Reference: event.Reference}, nil
			}
			return nil, ErrUnknownDonation
		}
		return nil, err
	}

	mapped, recognized := statusMapping[event.Status]
	if !recognized {
		// Intermediate or unknown processor status: acknowledge without
		// touching the record.
		return &WebhookOutcome{Reference: event.Reference, Status: event.Status}, nil
	}

	// Single conditional UPDATE: status, transaction id and updated_at
	// land together, so concurrent duplicate deliveries can interleave
	// but never mix fields. Re-applying the same mapped status is a
	// no-op by value.
	if _, err := s.donations.Reconcile(event.Reference, mapped, event.ExternalTransactionID); err != nil {
		return nil, err
	}

	return &WebhookOutcome{Reference: event.Reference, Status: mapped, Applied: true}, nil
}
