package payment

import (
	"context"
	"fmt"
	"time"
)

// Gateway payment statuses as reported by Paystack verification.
const (
	StatusSuccess   = "success"
	StatusFailed    = "failed"
	StatusAbandoned = "abandoned"
)

// Gateway is the capability the booking engine needs from the payment
// provider. Amounts cross this boundary in minor currency units (kobo).
type Gateway interface {
	Initialize(ctx context.Context, req InitializeRequest) (*InitializeResult, error)
	// Verify returns the gateway's view of a transaction. A legitimately
	// failed or abandoned payment is a normal result, not an error.
	Verify(ctx context.Context, reference string) (*VerifyResult, error)
	Refund(ctx context.Context, req RefundRequest) (*RefundResult, error)
	// VerifyWebhookSignature checks the HMAC-SHA512 signature of a raw
	// webhook payload.
	VerifyWebhookSignature(payload []byte, signature string) bool
}

// InitializeRequest starts a hosted checkout for a booking.
type InitializeRequest struct {
	Email       string
	Amount      int64
	Reference   string
	CallbackURL string
	Metadata    map[string]string
}

// InitializeResult carries the redirect URL the client completes payment on.
type InitializeResult struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

// VerifyResult is the gateway's record of a transaction.
type VerifyResult struct {
	Reference string
	Status    string
	Amount    int64
	Channel   string
	PaidAt    time.Time
	Currency  string
}

// RefundRequest issues a (partial) refund against an earlier transaction.
type RefundRequest struct {
	Reference    string
	Amount       int64
	MerchantNote string
	CustomerNote string
}

// RefundResult identifies the refund on the gateway side.
type RefundResult struct {
	RefundReference string
	Status          string
}

// GatewayError wraps any failure talking to the payment provider, including
// non-success response envelopes.
type GatewayError struct {
	Op      string
	Message string
	Err     error
}

func (e *GatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("paystack %s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("paystack %s: %s", e.Op, e.Message)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
