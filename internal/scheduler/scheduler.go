package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// ErrRunInProgress is returned by RunNow while another run is active.
var ErrRunInProgress = errors.New("subscribe run already in progress")

// Scheduler runs the subscribe job on a daily cron schedule. At most one
// run executes at a time in this process; overlapping ticks are skipped.
type Scheduler struct {
	runner *Runner
	spec   string
	log    zerolog.Logger

	cron    *cron.Cron
	entryID cron.EntryID

	mu         sync.RWMutex
	ctx        context.Context
	cancel     context.CancelFunc
	isStarted  bool
	isRunning  bool
	lastResult *Result
}

// Status is a point-in-time view of the scheduler.
type Status struct {
	Started    bool       `json:"started"`
	Running    bool       `json:"running"`
	Schedule   string     `json:"schedule"`
	NextRun    *time.Time `json:"next_run,omitempty"`
	LastResult *Result    `json:"last_result,omitempty"`
}

// Option configures a Scheduler
type Option func(*Scheduler)

// WithLocation evaluates the schedule in loc instead of local time.
func WithLocation(loc *time.Location) Option {
	return func(s *Scheduler) {
		s.cron = cron.New(cron.WithParser(standardParser), cron.WithLocation(loc))
	}
}

var standardParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// New creates a scheduler for a five-field cron spec.
func New(runner *Runner, spec string, log zerolog.Logger, opts ...Option) *Scheduler {
	s := &Scheduler{
		runner: runner,
		spec:   spec,
		log:    log,
		cron:   cron.New(cron.WithParser(standardParser)),
		ctx:    context.Background(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start schedules the job. Runs use a context derived from ctx; cancelling
// ctx stops the scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isStarted {
		return nil
	}

	entryID, err := s.cron.AddFunc(s.spec, func() {
		if _, err := s.run(); errors.Is(err, ErrRunInProgress) {
			s.log.Warn().Msg("eFaktura subscribe skipped: previous run still active")
		}
	})
	if err != nil {
		return fmt.Errorf("schedule subscribe job %q: %w", s.spec, err)
	}
	s.entryID = entryID

	s.ctx, s.cancel = context.WithCancel(ctx)
	s.cron.Start()
	s.isStarted = true

	s.log.Info().
		Str("schedule", s.spec).
		Time("next_run", s.cron.Entry(entryID).Next).
		Msg("eFaktura subscribe scheduler started")

	go func(done <-chan struct{}) {
		<-done
		s.Stop()
	}(s.ctx.Done())

	return nil
}

// Stop stops scheduling and waits for an active run to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.isStarted {
		s.mu.Unlock()
		return
	}
	s.isStarted = false
	s.cron.Remove(s.entryID)
	cancel := s.cancel
	s.mu.Unlock()

	<-s.cron.Stop().Done()
	if cancel != nil {
		cancel()
	}
	s.log.Info().Msg("eFaktura subscribe scheduler stopped")
}

// RunNow runs the job immediately and waits for it.
func (s *Scheduler) RunNow() (Result, error) {
	return s.run()
}

func (s *Scheduler) run() (Result, error) {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return Result{}, ErrRunInProgress
	}
	s.isRunning = true
	ctx := s.ctx
	s.mu.Unlock()

	res := s.runner.Run(ctx)

	s.mu.Lock()
	s.isRunning = false
	s.lastResult = &res
	s.mu.Unlock()

	return res, nil
}

// Status reports the schedule, the next tick and the last result.
func (s *Scheduler) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Status{
		Started:    s.isStarted,
		Running:    s.isRunning,
		Schedule:   s.spec,
		LastResult: s.lastResult,
	}
	if s.isStarted {
		if next := s.cron.Entry(s.entryID).Next; !next.IsZero() {
			st.NextRun = &next
		}
	}
	return st
}
