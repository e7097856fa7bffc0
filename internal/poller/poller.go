package poller

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/M1DES1/aigenimgtovid/internal/logging"
	"github.com/M1DES1/aigenimgtovid/internal/models"
)

// StatusSource answers one status query per call.
type StatusSource interface {
	Status(ctx context.Context, jobID string) (models.Job, error)
}

// State is the lifecycle state of a poll session.
type State int

const (
	StatePending State = iota
	StateProcessing
	StateCompleted
	StateFailed
	StateTimedOut
	StateErrored
	StateCanceled
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateProcessing:
		return "processing"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	case StateTimedOut:
		return "timed_out"
	case StateErrored:
		return "errored"
	case StateCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether the session has stopped ticking.
func (s State) IsTerminal() bool {
	return s >= StateCompleted
}

// Update is delivered to the observer after every tick and once on termination.
type Update struct {
	JobID       string
	State       State
	Attempt     int
	MaxAttempts int
	Progress    int
	Message     string
	Job         models.Job
	At          time.Time
}

// Options configures a Poller.
type Options struct {
	Interval        time.Duration
	MaxAttempts     int
	ProgressFloor   int
	ProgressCeiling int
	Clock           Clock
	Logger          *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Interval <= 0 {
		o.Interval = 5 * time.Second
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = 60
	}
	if o.ProgressFloor <= 0 {
		o.ProgressFloor = 40
	}
	if o.ProgressCeiling <= 0 {
		o.ProgressCeiling = 99
	}
	if o.Clock == nil {
		o.Clock = SystemClock
	}
	return o
}

// Poller runs at most one poll session at a time.
type Poller struct {
	source StatusSource
	opts   Options

	mu      sync.Mutex
	current *Session
}

// New constructs a poller querying source.
func New(source StatusSource, opts Options) *Poller {
	return &Poller{source: source, opts: opts.withDefaults()}
}

// Poll starts a session for jobID. A session that is still running is canceled and
// drained first, so only one timer is ever armed. onUpdate runs on the session goroutine
// and must not call Poll.
func (p *Poller) Poll(ctx context.Context, jobID string, onUpdate func(Update)) *Session {
	p.mu.Lock()
	defer p.mu.Unlock()

	if prev := p.current; prev != nil {
		prev.Cancel()
		<-prev.done
	}

	logger := p.opts.Logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}

	sessionCtx, cancel := context.WithCancel(ctx)
	s := &Session{
		jobID:    jobID,
		opts:     p.opts,
		source:   p.source,
		onUpdate: onUpdate,
		logger:   logger.With("jobId", jobID),
		cancel:   cancel,
		done:     make(chan struct{}),
		state:    StatePending,
		job:      models.Job{JobID: jobID, Status: models.JobStatusPending},
	}
	p.current = s

	go s.run(sessionCtx)
	return s
}

// Cancel stops the active session, if any.
func (p *Poller) Cancel() {
	p.mu.Lock()
	current := p.current
	p.mu.Unlock()
	if current != nil {
		current.Cancel()
	}
}

// Session is a cancellable handle on one poll loop.
type Session struct {
	jobID    string
	opts     Options
	source   StatusSource
	onUpdate func(Update)
	logger   *slog.Logger
	cancel   context.CancelFunc
	done     chan struct{}

	mu    sync.Mutex
	state State
	job   models.Job
	err   error
}

// JobID returns the polled job id.
func (s *Session) JobID() string { return s.jobID }

// Cancel stops ticking. Waiters receive ErrCanceled unless the session already finished.
func (s *Session) Cancel() { s.cancel() }

// Done is closed once the session reaches a terminal state.
func (s *Session) Done() <-chan struct{} { return s.done }

// State returns the current session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Snapshot returns the most recently observed job.
func (s *Session) Snapshot() models.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.job
}

// Wait blocks until the session ends or ctx is done. It resolves with the completed job
// or rejects with the terminal error.
func (s *Session) Wait(ctx context.Context) (models.Job, error) {
	select {
	case <-s.done:
	case <-ctx.Done():
		return s.Snapshot(), ctx.Err()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.job, s.err
}

func (s *Session) run(ctx context.Context) {
	defer close(s.done)
	defer s.cancel()

	prog := newProgress(s.opts.ProgressFloor, s.opts.ProgressCeiling, s.opts.MaxAttempts)
	s.logger.Debug("poll session started", "interval", s.opts.Interval, "maxAttempts", s.opts.MaxAttempts)

	for attempt := 1; attempt <= s.opts.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			s.finish(StateCanceled, ErrCanceled, attempt-1, prog.last)
			return
		case <-s.opts.Clock.After(s.opts.Interval):
		}

		job, err := s.source.Status(ctx, s.jobID)
		if ctx.Err() != nil {
			s.finish(StateCanceled, ErrCanceled, attempt, prog.last)
			return
		}
		if err != nil {
			s.logger.Warn("status query failed", "attempt", attempt, "error", err)
			s.finish(StateErrored, err, attempt, prog.last)
			return
		}
		if job.JobID == "" {
			job.JobID = s.jobID
		}
		s.observe(job)

		switch job.Status {
		case models.JobStatusCompleted:
			if models.Deref(job.VideoURL) == "" {
				s.finish(StateErrored, ErrMissingVideoURL, attempt, prog.last)
				return
			}
			s.finish(StateCompleted, nil, attempt, 100)
			return
		case models.JobStatusFailed:
			var failure error = ErrUnknownJob
			if msg := models.Deref(job.ErrorMessage); msg != "" {
				failure = &JobFailedError{JobID: s.jobID, Message: msg}
			}
			s.finish(StateFailed, failure, attempt, prog.last)
			return
		default:
			pct := prog.at(attempt)
			s.setState(StateProcessing)
			s.emit(StateProcessing, attempt, pct, fmt.Sprintf("Generating video... (%d/%d)", attempt, s.opts.MaxAttempts))
		}
	}

	s.finish(StateTimedOut, &TimeoutError{Attempts: s.opts.MaxAttempts}, s.opts.MaxAttempts, prog.last)
}

func (s *Session) observe(job models.Job) {
	s.mu.Lock()
	s.job = job
	s.mu.Unlock()
}

func (s *Session) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func (s *Session) finish(state State, err error, attempt, pct int) {
	s.mu.Lock()
	s.state = state
	s.err = err
	s.mu.Unlock()

	message := "Video ready"
	if err != nil {
		message = err.Error()
		s.logger.Info("poll session ended", "state", state.String(), "attempts", attempt, "error", err)
	} else {
		s.logger.Info("poll session ended", "state", state.String(), "attempts", attempt)
	}
	s.emit(state, attempt, pct, message)
}

func (s *Session) emit(state State, attempt, pct int, message string) {
	if s.onUpdate == nil {
		return
	}
	s.onUpdate(Update{
		JobID:       s.jobID,
		State:       state,
		Attempt:     attempt,
		MaxAttempts: s.opts.MaxAttempts,
		Progress:    pct,
		Message:     message,
		Job:         s.Snapshot(),
		At:          s.opts.Clock.Now(),
	})
}
