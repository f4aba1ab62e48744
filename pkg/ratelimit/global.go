package ratelimit

import (
	"time"

	"golang.org/x/time/rate"
)

// Global is a process-wide token bucket shared by every caller.
// A nil *Global allows everything.
type Global struct {
	limiter *rate.Limiter
}

// NewGlobal allows perMinute events per minute with a burst of the same size.
// Returns nil when perMinute is not positive, which disables the throttle.
func NewGlobal(perMinute int) *Global {
	if perMinute <= 0 {
		return nil
	}
	return &Global{
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute),
	}
}

// Allow consumes one token if available.
func (g *Global) Allow() bool {
	if g == nil {
		return true
	}
	return g.limiter.Allow()
}
