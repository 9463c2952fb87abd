package domain

import "context"

// Notifier defines the contract for delivering a message to a contact
// address (infrastructure port). A nil error means the message was accepted
// for delivery, not that it arrived.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}
