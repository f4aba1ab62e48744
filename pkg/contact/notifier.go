package contact

import (
	"context"
	"time"

	"github.com/glconseil/vitrine/pkg/mailer"
)

// Notifier delivers an accepted submission to the site owner.
type Notifier interface {
	Notify(ctx context.Context, sub Submission) error
	// Enabled reports whether Notify does any I/O.
	Enabled() bool
}

// NopNotifier discards submissions. Used when no transport is configured.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, Submission) error { return nil }

func (NopNotifier) Enabled() bool { return false }

// MailConfig configures MailNotifier.
type MailConfig struct {
	To       string // Recipient, the site owner
	From     string // Sender, "Name <email>" allowed
	Template string // Default: "contact.md"
	SiteName string
	Location *time.Location // Timezone for dates in the body. Default: Europe/Paris
}

// MailNotifier emails submissions through a mailer.
type MailNotifier struct {
	mailer *mailer.Mailer
	cfg    MailConfig
}

// NewMailNotifier creates a notifier sending through m.
func NewMailNotifier(m *mailer.Mailer, cfg MailConfig) *MailNotifier {
	if cfg.Template == "" {
		cfg.Template = "contact.md"
	}
	if cfg.Location == nil {
		cfg.Location = paris()
	}
	return &MailNotifier{mailer: m, cfg: cfg}
}

// mailData is the template data for the notification email.
type mailData struct {
	Submission
	SiteName   string
	ReceivedAt string
}

// Notify sends one plain-text email with Reply-To set to the submitter.
func (n *MailNotifier) Notify(ctx context.Context, sub Submission) error {
	return n.mailer.Send(ctx, mailer.SendParams{
		To:       n.cfg.To,
		From:     n.cfg.From,
		ReplyTo:  mailer.Recipient(sub.FullName, sub.Email),
		Template: n.cfg.Template,
		Headers:  map[string]string{"X-Submission-Id": sub.ID},
		Tags:     mailer.Tags{"form": "contact"},
		Data: mailData{
			Submission: sub,
			SiteName:   n.cfg.SiteName,
			ReceivedAt: sub.ReceivedAt.In(n.cfg.Location).Format("02/01/2006 15:04 MST"),
		},
	})
}

// Enabled reports true.
func (n *MailNotifier) Enabled() bool { return true }

func paris() *time.Location {
	loc, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		return time.UTC
	}
	return loc
}
