package smtp

import "errors"

var (
	// ErrNotConfigured indicates the relay host is missing.
	ErrNotConfigured = errors.New("smtp: relay not configured")

	// ErrStartTLSUnsupported indicates TLS was required but the server
	// does not advertise STARTTLS.
	ErrStartTLSUnsupported = errors.New("smtp: server does not support STARTTLS")

	// ErrAuthUnsupported indicates credentials were set but the server
	// does not advertise AUTH.
	ErrAuthUnsupported = errors.New("smtp: server does not support AUTH")

	// ErrInvalidAddress indicates a sender or recipient address could not be parsed.
	ErrInvalidAddress = errors.New("smtp: invalid address")
)
