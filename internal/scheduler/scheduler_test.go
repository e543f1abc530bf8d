package scheduler_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/efaktura/internal/scheduler"
	"github.com/rezonia/efaktura/internal/transport"
)

type fakeSubscriber struct {
	mu      sync.Mutex
	calls   int
	output  string
	err     error
	block   chan struct{}
	started chan struct{}
}

func (f *fakeSubscriber) Subscribe(ctx context.Context) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.started != nil {
		close(f.started)
	}
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.output, f.err
}

func (f *fakeSubscriber) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func apiError(status int, body string) error {
	resp := &http.Response{StatusCode: status, Header: http.Header{}}
	return transport.NewError(http.MethodPost, "/api/publicApi/subscribe", resp, []byte(body))
}

func TestRunner_Success(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	sub := &fakeSubscriber{output: "Subscribed"}

	res := scheduler.NewRunner(sub, log, true).Run(context.Background())

	assert.True(t, res.OK())
	assert.Equal(t, scheduler.ExitSuccess, res.ExitCode)
	assert.Equal(t, "eFaktura subscribe successful: Subscribed", res.Message)
	assert.Contains(t, buf.String(), `"level":"info"`)
	assert.Contains(t, buf.String(), "eFaktura subscribe successful: Subscribed")
}

func TestRunner_Failures(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantMessage string
		wantLog     string
	}{
		{
			name:        "api error",
			err:         apiError(http.StatusUnauthorized, `{"message":"Invalid API key"}`),
			wantMessage: "eFaktura subscribe failed: Invalid API key",
			wantLog:     `"http_status":401`,
		},
		{
			name: "connection error",
			err: &transport.RequestError{
				Method: http.MethodPost, Endpoint: "/api/publicApi/subscribe", Attempts: 3,
				Err: errors.New("connection refused"),
			},
			wantMessage: "eFaktura subscribe failed: ",
			wantLog:     `"attempts":3`,
		},
		{
			name:        "other error",
			err:         errors.New("boom"),
			wantMessage: "eFaktura subscribe error: boom",
			wantLog:     `"error":"boom"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			sub := &fakeSubscriber{err: tt.err}

			res := scheduler.NewRunner(sub, zerolog.New(&buf), true).Run(context.Background())

			assert.False(t, res.OK())
			assert.Equal(t, scheduler.ExitFailure, res.ExitCode)
			assert.Contains(t, res.Message, tt.wantMessage)
			assert.ErrorIs(t, res.Err, tt.err)
			assert.Contains(t, buf.String(), `"level":"error"`)
			assert.Contains(t, buf.String(), tt.wantLog)
		})
	}
}

func TestRunner_ResultLoggingDisabled(t *testing.T) {
	var buf bytes.Buffer
	runner := scheduler.NewRunner(&fakeSubscriber{err: errors.New("boom")}, zerolog.New(&buf), false)

	res := runner.Run(context.Background())
	assert.Equal(t, scheduler.ExitFailure, res.ExitCode)
	assert.Empty(t, buf.String())
}

func TestScheduler_RunNowRecordsResult(t *testing.T) {
	sub := &fakeSubscriber{output: "ok"}
	s := scheduler.New(scheduler.NewRunner(sub, zerolog.Nop(), false), "5 0 * * *", zerolog.Nop())

	assert.Nil(t, s.Status().LastResult)

	res, err := s.RunNow()
	require.NoError(t, err)
	assert.True(t, res.OK())

	st := s.Status()
	require.NotNil(t, st.LastResult)
	assert.Equal(t, "ok", st.LastResult.Output)
	assert.False(t, st.Running)
	assert.False(t, st.Started)
	assert.Nil(t, st.NextRun)
}

func TestScheduler_SkipsOverlappingRun(t *testing.T) {
	sub := &fakeSubscriber{block: make(chan struct{}), started: make(chan struct{})}
	s := scheduler.New(scheduler.NewRunner(sub, zerolog.Nop(), false), "5 0 * * *", zerolog.Nop())

	done := make(chan scheduler.Result, 1)
	go func() {
		res, _ := s.RunNow()
		done <- res
	}()

	select {
	case <-sub.started:
	case <-time.After(2 * time.Second):
		t.Fatal("first run did not start")
	}
	assert.True(t, s.Status().Running)

	_, err := s.RunNow()
	assert.ErrorIs(t, err, scheduler.ErrRunInProgress)

	close(sub.block)
	select {
	case res := <-done:
		assert.True(t, res.OK())
	case <-time.After(2 * time.Second):
		t.Fatal("first run did not finish")
	}
	assert.Equal(t, 1, sub.Calls())
}

func TestScheduler_StartAndStop(t *testing.T) {
	s := scheduler.New(scheduler.NewRunner(&fakeSubscriber{}, zerolog.Nop(), false), "30 7 * * *",
		zerolog.Nop(), scheduler.WithLocation(time.UTC))

	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Start(context.Background()))

	st := s.Status()
	assert.True(t, st.Started)
	assert.Equal(t, "30 7 * * *", st.Schedule)
	require.NotNil(t, st.NextRun)
	assert.Equal(t, 7, st.NextRun.UTC().Hour())
	assert.Equal(t, 30, st.NextRun.UTC().Minute())

	s.Stop()
	assert.False(t, s.Status().Started)
	s.Stop()
}

func TestScheduler_StopsWhenContextCancelled(t *testing.T) {
	s := scheduler.New(scheduler.NewRunner(&fakeSubscriber{}, zerolog.Nop(), false), "5 0 * * *", zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))
	cancel()

	assert.Eventually(t, func() bool { return !s.Status().Started }, 2*time.Second, 10*time.Millisecond)
}

func TestScheduler_InvalidSpec(t *testing.T) {
	s := scheduler.New(scheduler.NewRunner(&fakeSubscriber{}, zerolog.Nop(), false), "every day", zerolog.Nop())
	assert.Error(t, s.Start(context.Background()))
	assert.False(t, s.Status().Started)
}
