package mailer

import "context"

// Sender delivers a fully built Email. Implementations live in the smtp
// and resend subpackages.
type Sender interface {
	Send(ctx context.Context, email *Email) error
}
