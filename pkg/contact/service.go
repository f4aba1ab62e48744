package contact

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/glconseil/vitrine/pkg/ratelimit"
)

// User-facing messages.
const (
	MessageSent    = "Merci, votre message a bien été envoyé. Nous vous répondrons dans les meilleurs délais."
	MessageLimited = "Vous avez envoyé plusieurs messages récemment. Merci de patienter quelques minutes avant de réessayer."
	MessageFailed  = "Une erreur est survenue lors de l'envoi de votre message. Merci de réessayer plus tard."
)

// DefaultDispatchTimeout bounds a single notification.
const DefaultDispatchTimeout = 10 * time.Second

// ErrDispatch wraps notifier failures returned by Submit.
var ErrDispatch = errors.New("contact: dispatch failed")

// Outcome classifies how a submission was handled.
type Outcome int

const (
	// OutcomeSent means the submission passed and was handed to the notifier.
	OutcomeSent Outcome = iota
	// OutcomeSpam means the honeypot was filled; nothing else happened.
	OutcomeSpam
	// OutcomeLimited means the per-address or global limit refused it.
	OutcomeLimited
	// OutcomeInvalid means validation failed.
	OutcomeInvalid
	// OutcomeFailed means the notifier returned an error.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSent:
		return "sent"
	case OutcomeSpam:
		return "spam"
	case OutcomeLimited:
		return "limited"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeFailed:
		return "failed"
	}
	return "unknown"
}

// Result is the outcome of Submit along with the message to show the user.
type Result struct {
	Err        error // Validation errors for OutcomeInvalid
	ID         string
	Message    string
	RetryAfter time.Duration
	Outcome    Outcome
}

// Service applies the submission policy.
type Service struct {
	limiter  ratelimit.Limiter
	global   *ratelimit.Global
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
	timeout  time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithGlobalLimit caps dispatches across all clients. A nil Global disables it.
func WithGlobalLimit(g *ratelimit.Global) Option {
	return func(s *Service) {
		s.global = g
	}
}

// WithLogger sets the logger. Default discards.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDispatchTimeout bounds each Notify call.
func WithDispatchTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithClock sets the time source for ReceivedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates a Service. A nil notifier is treated as NopNotifier.
func NewService(limiter ratelimit.Limiter, notifier Notifier, opts ...Option) *Service {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	s := &Service{
		limiter:  limiter,
		notifier: notifier,
		logger:   slog.New(slog.DiscardHandler),
		now:      time.Now,
		timeout:  DefaultDispatchTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit runs the policy on sub. sub.IP keys the rate limit.
// The returned error is non-nil only for OutcomeFailed and wraps ErrDispatch.
func (s *Service) Submit(ctx context.Context, sub Submission) (Result, error) {
	if sub.IsSpam() {
		s.logger.InfoContext(ctx, "contact submission dropped", slog.String("reason", "honeypot"))
		return Result{Outcome: OutcomeSpam}, nil
	}

	if res := s.limiter.Allow(sub.IP); !res.Allowed {
		s.logger.WarnContext(ctx, "contact submission rate limited",
			slog.String("ip", sub.IP),
			slog.Duration("retry_after", res.RetryAfter),
		)
		return Result{Outcome: OutcomeLimited, Message: MessageLimited, RetryAfter: res.RetryAfter}, nil
	}

	if err := sub.Validate(); err != nil {
		return Result{Outcome: OutcomeInvalid, Message: ErrorMessage(err), Err: err}, nil
	}

	sub.ID = uuid.NewString()
	sub.ReceivedAt = s.now()

	if !s.notifier.Enabled() {
		s.logger.InfoContext(ctx, "contact submission accepted without transport",
			slog.String("submission_id", sub.ID),
		)
		return Result{Outcome: OutcomeSent, Message: MessageSent, ID: sub.ID}, nil
	}

	if !s.global.Allow() {
		s.logger.WarnContext(ctx, "contact dispatch throttled", slog.String("submission_id", sub.ID))
		return Result{Outcome: OutcomeLimited, Message: MessageLimited, RetryAfter: time.Minute, ID: sub.ID}, nil
	}

	dctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.notifier.Notify(dctx, sub); err != nil {
		s.logger.ErrorContext(ctx, "contact dispatch failed",
			slog.String("submission_id", sub.ID),
			slog.String("error", err.Error()),
		)
		return Result{Outcome: OutcomeFailed, Message: MessageFailed, ID: sub.ID}, errors.Join(ErrDispatch, err)
	}

	s.logger.InfoContext(ctx, "contact submission sent", slog.String("submission_id", sub.ID))
	return Result{Outcome: OutcomeSent, Message: MessageSent, ID: sub.ID}, nil
}
