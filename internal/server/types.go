package server

import (
	"time"

	"github.com/rezonia/efaktura/internal/scheduler"
)

// HealthResponse is the response for the health endpoint
type HealthResponse struct {
	Status      string `json:"status"`
	Time        string `json:"time"`
	Environment string `json:"environment,omitempty"`
}

// RunResponse is the response for a manual subscribe run
type RunResponse struct {
	OK         bool      `json:"ok"`
	Message    string    `json:"message"`
	Output     string    `json:"output,omitempty"`
	ExitCode   int       `json:"exit_code"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

func newRunResponse(res scheduler.Result) RunResponse {
	return RunResponse{
		OK:         res.OK(),
		Message:    res.Message,
		Output:     res.Output,
		ExitCode:   res.ExitCode,
		StartedAt:  res.StartedAt,
		FinishedAt: res.FinishedAt,
	}
}

// NotificationResponse acknowledges a webhook delivery
type NotificationResponse struct {
	Received int `json:"received"`
}

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
