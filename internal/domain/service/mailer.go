package service

import "context"

// Mailer defines the interface for outbound mail delivery.
type Mailer interface {
	// SendPasswordReset delivers a password-reset mail containing resetURL
	// to the given address. A non-nil error means the mail was not handed
	// off to the transport.
	SendPasswordReset(ctx context.Context, to string, resetURL string) error
}
