// Package scheduler renews the daily eFaktura notification subscription.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/rezonia/efaktura/internal/transport"
)

const (
	ExitSuccess = 0
	ExitFailure = 1
)

// Subscriber is the one operation a run needs.
type Subscriber interface {
	Subscribe(ctx context.Context) (string, error)
}

// Result describes one subscribe run.
type Result struct {
	Message    string    `json:"message"`
	Output     string    `json:"output,omitempty"`
	ExitCode   int       `json:"exit_code"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Err        error     `json:"-"`
}

// OK reports whether the run succeeded.
func (r Result) OK() bool {
	return r.ExitCode == ExitSuccess
}

// Runner calls Subscribe once per Run and logs the outcome.
type Runner struct {
	sub        Subscriber
	log        zerolog.Logger
	logResults bool
	now        func() time.Time
}

func NewRunner(sub Subscriber, log zerolog.Logger, logResults bool) *Runner {
	return &Runner{sub: sub, log: log, logResults: logResults, now: time.Now}
}

// Run subscribes for the next day.
func (r *Runner) Run(ctx context.Context) Result {
	res := Result{StartedAt: r.now()}
	output, err := r.sub.Subscribe(ctx)
	res.FinishedAt = r.now()

	if err == nil {
		res.Output = output
		res.Message = "eFaktura subscribe successful: " + output
		res.ExitCode = ExitSuccess
		if r.logResults {
			r.log.Info().Msg(res.Message)
		}
		return res
	}

	res.Err = err
	res.ExitCode = ExitFailure

	var apiErr *transport.Error
	var reqErr *transport.RequestError
	switch {
	case errors.As(err, &apiErr):
		res.Message = "eFaktura subscribe failed: " + apiErr.Message
		if r.logResults {
			r.log.Error().
				Int("http_status", apiErr.StatusCode).
				Interface("response", apiErr.Body).
				Msg(res.Message)
		}
	case errors.As(err, &reqErr):
		res.Message = "eFaktura subscribe failed: " + reqErr.Error()
		if r.logResults {
			r.log.Error().Int("attempts", reqErr.Attempts).Msg(res.Message)
		}
	default:
		res.Message = fmt.Sprintf("eFaktura subscribe error: %v", err)
		if r.logResults {
			r.log.Error().Err(err).Msg(res.Message)
		}
	}
	return res
}
