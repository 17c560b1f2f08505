package notification

import "context"

// Message is a single outbound email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers booking emails. Every caller treats delivery as
// best-effort: failures are logged, never propagated into a state transition.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
