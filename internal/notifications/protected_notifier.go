package notifications

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker open")

type breakerState string

const (
	stateClosed   breakerState = "closed"
	stateOpen     breakerState = "open"
	stateHalfOpen breakerState = "half_open"
)

type ProtectedNotifierConfig struct {
	Timeout          time.Duration // hard timeout per send
	FailureThreshold int           // consecutive failures that open the circuit
	Cooldown         time.Duration // time spent open before a trial call
	HalfOpenMaxCalls int           // concurrent trial calls while half open

	// OnStateChange is called after every transition, outside the lock.
	OnStateChange func(from, to string)
}

// ProtectedNotifier guards a Notifier with a per-send timeout and a circuit
// breaker, so a dead provider fails outbox jobs fast instead of stalling them.
type ProtectedNotifier struct {
	inner Notifier
	cfg   ProtectedNotifierConfig
	now   func() time.Time

	mu                  sync.Mutex
	state               breakerState
	consecutiveFailures int
	openedAt            time.Time
	trials              int
}

func NewProtectedNotifier(inner Notifier, cfg ProtectedNotifierConfig) *ProtectedNotifier {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 3 * time.Second
	}
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 3
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 15 * time.Second
	}
	if cfg.HalfOpenMaxCalls <= 0 {
		cfg.HalfOpenMaxCalls = 1
	}

	return &ProtectedNotifier{
		inner: inner,
		cfg:   cfg,
		state: stateClosed,
		now:   time.Now,
	}
}

func (n *ProtectedNotifier) SendEnrollmentConfirmation(ctx context.Context, in EnrollmentConfirmationInput) error {
	return n.call(ctx, func(ctx context.Context) error {
		return n.inner.SendEnrollmentConfirmation(ctx, in)
	})
}

func (n *ProtectedNotifier) SendCertificateIssued(ctx context.Context, in CertificateIssuedInput) error {
	return n.call(ctx, func(ctx context.Context) error {
		return n.inner.SendCertificateIssued(ctx, in)
	})
}

// State reports the breaker state: closed, open or half_open.
func (n *ProtectedNotifier) State() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return string(n.state)
}

func (n *ProtectedNotifier) call(ctx context.Context, send func(context.Context) error) error {
	allowed, from, to := n.acquire()
	n.notify(from, to)
	if !allowed {
		return ErrCircuitOpen
	}

	sendCtx, cancel := context.WithTimeout(ctx, n.cfg.Timeout)
	defer cancel()

	err := send(sendCtx)

	from, to = n.release(err)
	n.notify(from, to)
	return err
}

// acquire decides whether a send may go out. An open circuit whose cooldown
// has passed moves to half open and admits up to HalfOpenMaxCalls trials.
func (n *ProtectedNotifier) acquire() (allowed bool, from, to breakerState) {
	n.mu.Lock()
	defer n.mu.Unlock()

	from = n.state

	if n.state == stateOpen && n.now().Sub(n.openedAt) >= n.cfg.Cooldown {
		n.state = stateHalfOpen
		n.trials = 0
	}

	switch n.state {
	case stateOpen:
		allowed = false
	case stateHalfOpen:
		allowed = n.trials < n.cfg.HalfOpenMaxCalls
		if allowed {
			n.trials++
		}
	default:
		allowed = true
	}
	return allowed, from, n.state
}

// release records the outcome. Any success closes the circuit; a failed trial
// or FailureThreshold consecutive failures open it.
func (n *ProtectedNotifier) release(err error) (from, to breakerState) {
	n.mu.Lock()
	defer n.mu.Unlock()

	from = n.state
	if n.state == stateHalfOpen && n.trials > 0 {
		n.trials--
	}

	switch {
	case err == nil:
		n.consecutiveFailures = 0
		n.state = stateClosed
	case n.state == stateHalfOpen:
		n.consecutiveFailures++
		n.trip()
	default:
		n.consecutiveFailures++
		if n.consecutiveFailures >= n.cfg.FailureThreshold {
			n.trip()
		}
	}
	return from, n.state
}

func (n *ProtectedNotifier) trip() {
	n.state = stateOpen
	n.openedAt = n.now()
}

func (n *ProtectedNotifier) notify(from, to breakerState) {
	if from != to && n.cfg.OnStateChange != nil {
		n.cfg.OnStateChange(string(from), string(to))
	}
}

var _ Notifier = (*ProtectedNotifier)(nil)
