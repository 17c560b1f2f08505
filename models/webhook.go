package models

// Paystack webhook event names the booking engine reacts to.
const (
	EventChargeSuccess   = "charge.success"
	EventChargeFailed    = "charge.failed"
	EventRefundProcessed = "refund.processed"
	EventRefundFailed    = "refund.failed"
)

// WebhookEvent is the raw Paystack event envelope.
type WebhookEvent struct {
	Event string           `json:"event"`
	Data  WebhookEventData `json:"data"`
}

// WebhookEventData carries the transaction fields of an event. Amount is in
// minor currency units (kobo).
type WebhookEventData struct {
	ID        int64             `json:"id"`
	Reference string            `json:"reference"`
	Amount    int64             `json:"amount"`
	Status    string            `json:"status"`
	Message   string            `json:"message"`
	Channel   string            `json:"channel"`
	Currency  string            `json:"currency"`
	PaidAt    string            `json:"paid_at"`
	Metadata  map[string]any    `json:"metadata"`
	Customer  WebhookCustomer   `json:"customer"`
}

type WebhookCustomer struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}
