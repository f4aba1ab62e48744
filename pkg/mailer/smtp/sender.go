package smtp

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-sasl"
	gosmtp "github.com/emersion/go-smtp"

	"github.com/glconseil/vitrine/pkg/mailer"
)

// Sender implements mailer.Sender over an SMTP relay.
//
// Each Send opens a fresh connection. The whole exchange, dial included,
// is bounded by Config.Timeout: when it elapses the connection is closed
// under the client and the pending command fails.
type Sender struct {
	tlsConfig *tls.Config
	now       func() time.Time
	config    Config
}

// Option configures a Sender.
type Option func(*Sender)

// WithClock sets the time source used for the Date header.
func WithClock(now func() time.Time) Option {
	return func(s *Sender) {
		s.now = now
	}
}

// New creates an SMTP sender.
func New(cfg Config, opts ...Option) *Sender {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.HeloName == "" {
		cfg.HeloName = "localhost"
	}

	s := &Sender{
		config: cfg,
		now:    time.Now,
		tlsConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
			ServerName: cfg.Host,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	from, rcpts, err := s.envelope(email)
	if err != nil {
		return err
	}

	msg, err := buildMessage(email, from, s.now())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	c, stop, err := s.dial(ctx)
	if err != nil {
		return err
	}
	defer stop()
	defer c.Close()

	if err := c.Mail(from.Address, nil); err != nil {
		return s.wrap(ctx, "MAIL FROM", err)
	}
	for _, rcpt := range rcpts {
		if err := c.Rcpt(rcpt, nil); err != nil {
			return s.wrap(ctx, "RCPT TO", err)
		}
	}

	w, err := c.Data()
	if err != nil {
		return s.wrap(ctx, "DATA", err)
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return s.wrap(ctx, "DATA", err)
	}
	if err := w.Close(); err != nil {
		return s.wrap(ctx, "DATA", err)
	}

	if err := c.Quit(); err != nil {
		return s.wrap(ctx, "QUIT", err)
	}
	return nil
}

// Ping connects, negotiates TLS and authenticates, then quits without
// sending anything. Used as a readiness probe.
func (s *Sender) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	c, stop, err := s.dial(ctx)
	if err != nil {
		return err
	}
	defer stop()
	defer c.Close()

	if err := c.Quit(); err != nil {
		return s.wrap(ctx, "QUIT", err)
	}
	return nil
}

// dial opens a connection and runs the session up to a successful AUTH.
// The returned stop func detaches the context watchdog.
func (s *Sender) dial(ctx context.Context) (*gosmtp.Client, func() bool, error) {
	if s.config.Host == "" {
		return nil, nil, ErrNotConfigured
	}

	addr := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
	dialer := &net.Dialer{Timeout: s.config.Timeout}

	var (
		conn net.Conn
		err  error
	)
	if s.config.implicitTLS() {
		conn, err = (&tls.Dialer{NetDialer: dialer, Config: s.tlsConfig}).DialContext(ctx, "tcp", addr)
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("smtp: dial %s: %w", addr, err)
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	stop := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})

	c, err := s.connect(conn)
	if err != nil {
		stop()
		_ = conn.Close()
		return nil, nil, s.wrap(ctx, "handshake", err)
	}

	if err := s.authenticate(c); err != nil {
		stop()
		_ = c.Close()
		return nil, nil, s.wrap(ctx, "handshake", err)
	}

	return c, stop, nil
}

// startTLSMissing is the message go-smtp reports when the server does not
// advertise STARTTLS. The library does not export a sentinel for it.
const startTLSMissing = "doesn't support STARTTLS"

// connect greets the server and upgrades the session to TLS when required.
// On the STARTTLS path the first EHLO is sent by go-smtp itself; Hello then
// introduces the client again over the encrypted channel.
func (s *Sender) connect(conn net.Conn) (*gosmtp.Client, error) {
	if !s.config.UseTLS || s.config.implicitTLS() {
		c := gosmtp.NewClient(conn)
		s.limit(c)
		if err := c.Hello(s.config.HeloName); err != nil {
			_ = c.Close()
			return nil, err
		}
		return c, nil
	}

	c, err := gosmtp.NewClientStartTLS(conn, s.tlsConfig)
	if err != nil {
		if strings.Contains(err.Error(), startTLSMissing) {
			return nil, ErrStartTLSUnsupported
		}
		return nil, err
	}
	s.limit(c)
	if err := c.Hello(s.config.HeloName); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

func (s *Sender) limit(c *gosmtp.Client) {
	c.CommandTimeout = s.config.Timeout
	c.SubmissionTimeout = s.config.Timeout
}

func (s *Sender) authenticate(c *gosmtp.Client) error {
	if s.config.User == "" {
		return nil
	}
	if ok, _ := c.Extension("AUTH"); !ok {
		return ErrAuthUnsupported
	}
	return c.Auth(sasl.NewPlainClient("", s.config.User, s.config.Password))
}

// envelope resolves the envelope sender and every recipient, BCC included.
func (s *Sender) envelope(email *mailer.Email) (*mail.Address, []string, error) {
	rawFrom := email.From
	if rawFrom == "" {
		rawFrom = s.config.User
	}
	if rawFrom == "" {
		return nil, nil, mailer.ErrNoSender
	}
	from, err := mail.ParseAddress(rawFrom)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: from: %v", ErrInvalidAddress, err)
	}

	var rcpts []string
	for _, list := range [][]string{email.To, email.CC, email.BCC} {
		for _, raw := range list {
			addr, err := mail.ParseAddress(raw)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: %q: %v", ErrInvalidAddress, raw, err)
			}
			rcpts = append(rcpts, addr.Address)
		}
	}
	if len(rcpts) == 0 {
		return nil, nil, mailer.ErrNoRecipient
	}

	return from, rcpts, nil
}

// wrap labels err with the failing stage and reports a timeout as such.
func (s *Sender) wrap(ctx context.Context, stage string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
		return fmt.Errorf("smtp: %s: %w (%w)", stage, ctxErr, err)
	}
	return fmt.Errorf("smtp: %s: %w", stage, err)
}

var _ mailer.Sender = (*Sender)(nil)
