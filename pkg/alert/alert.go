package alert

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/geoapi/pkg/email"
	"github.com/dmitrymomot/geoapi/pkg/logger"
)

// Alert results reported to the Recorder.
const (
	ResultSent      = "sent"
	ResultThrottled = "throttled"
	ResultFailed    = "failed"
)

// Incident describes one critical fault.
type Incident struct {
	Reason        string
	ErrorCode     string
	Component     string
	Path          string
	Address       string
	Port          int
	TimeDetected  time.Time
	DashboardLink string
}

// Recorder receives alert outcomes. *metrics.Metrics implements it.
type Recorder interface {
	AlertResult(result string)
}

// Notifier sends throttled incident emails to the administrator.
type Notifier struct {
	sender   email.Sender
	cfg      Config
	logger   *slog.Logger
	recorder Recorder
	now      func() time.Time
	address  string
	port     int

	mu   sync.Mutex
	last map[string]time.Time
	wg   sync.WaitGroup
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithLogger sets the logger used for delivery failures.
func WithLogger(l *slog.Logger) Option {
	return func(n *Notifier) {
		if l != nil {
			n.logger = l
		}
	}
}

// WithRecorder reports every Notify outcome to r.
func WithRecorder(r Recorder) Option {
	return func(n *Notifier) {
		n.recorder = r
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(n *Notifier) {
		if now != nil {
			n.now = now
		}
	}
}

// WithOrigin sets the address and port reported for incidents that leave
// them empty.
func WithOrigin(address string, port int) Option {
	return func(n *Notifier) {
		n.address = address
		n.port = port
	}
}

// New creates a Notifier. A nil sender or an empty AdminEmail yields a
// disabled notifier.
func New(sender email.Sender, cfg Config, opts ...Option) *Notifier {
	n := &Notifier{
		sender: sender,
		cfg:    cfg,
		logger: slog.Default(),
		now:    time.Now,
		last:   make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Enabled reports whether Notify will send anything.
func (n *Notifier) Enabled() bool {
	return n != nil && n.sender != nil && n.cfg.AdminEmail != ""
}

// Notify dispatches inc in the background and reports whether it was
// dispatched. Incidents for a component still in its cooldown are dropped.
// The send outlives ctx cancellation but is bounded by Config.SendTimeout.
func (n *Notifier) Notify(ctx context.Context, inc Incident) bool {
	if !n.Enabled() {
		return false
	}

	now := n.now()
	if !n.allow(inc.Component, now) {
		n.record(ResultThrottled)
		return false
	}

	if inc.TimeDetected.IsZero() {
		inc.TimeDetected = now
	}
	if inc.DashboardLink == "" {
		inc.DashboardLink = n.cfg.DashboardURL
	}
	if inc.Address == "" {
		inc.Address = n.address
	}
	if inc.Port == 0 {
		inc.Port = n.port
	}

	sendCtx := context.WithoutCancel(ctx)
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		if err := n.send(sendCtx, inc); err != nil {
			n.record(ResultFailed)
			n.logger.ErrorContext(sendCtx, "failed to send alert email",
				logger.Component("alert"),
				slog.String("incident_component", inc.Component),
				slog.String("error_code", inc.ErrorCode),
				logger.Error(err),
			)
			return
		}
		n.record(ResultSent)
	}()
	return true
}

// Wait blocks until all dispatched alerts have finished.
func (n *Notifier) Wait() {
	if n == nil {
		return
	}
	n.wg.Wait()
}

func (n *Notifier) allow(component string, now time.Time) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if last, ok := n.last[component]; ok && n.cfg.Cooldown > 0 && now.Sub(last) < n.cfg.Cooldown {
		return false
	}
	n.last[component] = now
	return true
}

func (n *Notifier) send(ctx context.Context, inc Incident) error {
	if n.cfg.SendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.cfg.SendTimeout)
		defer cancel()
	}

	body, err := email.Render(ctx, IncidentEmail(inc))
	if err != nil {
		return errors.Join(ErrRenderFailed, err)
	}

	return n.sender.Send(ctx, email.Message{
		To:      n.cfg.AdminEmail,
		Subject: Subject,
		HTML:    body,
		Tag:     "critical-alert",
	})
}

func (n *Notifier) record(result string) {
	if n.recorder != nil {
		n.recorder.AlertResult(result)
	}
}
