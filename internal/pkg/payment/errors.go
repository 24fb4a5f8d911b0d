package payment

import "errors"

// Webhook rejection kinds. Each maps to a 400-class response so the
// processor retries per its own policy; anything else answers 200 which
// tells the processor to stop redelivering.
var (
	ErrInvalidSignature = errors.New("invalid signature")
	ErrInvalidPayload   = errors.New("invalid payload")
	ErrMissingReference = errors.New("missing reference")
	ErrUnknownDonation  = errors.New("unknown donation")
)
