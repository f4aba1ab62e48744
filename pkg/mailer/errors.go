package mailer

import "errors"

// Message validation.
var (
	ErrNoRecipient = errors.New("mailer: no recipient")
	ErrNoSender    = errors.New("mailer: no sender")
	ErrNoSubject   = errors.New("mailer: no subject")
	ErrNoContent   = errors.New("mailer: empty body")
)

// Template rendering.
var (
	ErrTemplateNotFound   = errors.New("mailer: template not found")
	ErrLayoutNotFound     = errors.New("mailer: layout not found")
	ErrInvalidFrontmatter = errors.New("mailer: invalid front matter")
	ErrRenderFailed       = errors.New("mailer: render failed")
)

// ErrSendFailed is joined with the transport error by Mailer.
var ErrSendFailed = errors.New("mailer: send failed")
