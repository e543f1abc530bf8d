package cmd

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/efaktura/internal/model"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := runRootStderr(t, args...)
	return out, err
}

func runRootStderr(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		subscribeForce = false
		envOverride = ""
		outputFormat = "json"
	})
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func fakeSubscribeAPI(t *testing.T, status int, body string) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/publicApi/subscribe" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	t.Setenv("EFAKTURA_API_KEY", "test-key")
	t.Setenv("EFAKTURA_ENVIRONMENT", "demo")
	t.Setenv("EFAKTURA_DEMO_URL", srv.URL)
	t.Setenv("EFAKTURA_RETRY_TIMES", "1")
	t.Setenv("EFAKTURA_CACHE_ENABLED", "false")
	t.Setenv("EFAKTURA_SCHEDULER_LOG", "false")
}

func TestSubscribe_SkippedWhenDisabled(t *testing.T) {
	t.Setenv("EFAKTURA_SCHEDULER_ENABLED", "false")

	out, errOut, err := runRootStderr(t, "subscribe")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "skipped")
}

func TestSubscribe_Force(t *testing.T) {
	fakeSubscribeAPI(t, http.StatusOK, "Subscribed")

	out, err := runRoot(t, "subscribe", "--force")
	require.NoError(t, err)
	assert.Equal(t, "eFaktura subscribe successful: Subscribed\n", out)
}

func TestSubscribe_FailureExitCode(t *testing.T) {
	fakeSubscribeAPI(t, http.StatusUnauthorized, `{"message": "Invalid API key"}`)
	t.Setenv("EFAKTURA_SCHEDULER_ENABLED", "true")

	_, err := runRoot(t, "subscribe")
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 1, exitErr.Code)
}

func TestWriteOutput(t *testing.T) {
	v := map[string]int{"received": 2}
	tbl := func() *table {
		t := &table{header: []string{"ID", "STATUS"}}
		t.add("42", "Approved")
		return t
	}

	var buf bytes.Buffer
	outputFormat = "json"
	require.NoError(t, writeOutput(&buf, v, tbl))
	assert.JSONEq(t, `{"received": 2}`, buf.String())

	buf.Reset()
	outputFormat = "table"
	defer func() { outputFormat = "json" }()
	require.NoError(t, writeOutput(&buf, v, tbl))
	assert.Equal(t, "ID  STATUS\n--  ------\n42  Approved\n", buf.String())

	buf.Reset()
	require.NoError(t, writeOutput(&buf, v, nil))
	assert.JSONEq(t, `{"received": 2}`, buf.String())

	outputFormat = "csv"
	assert.Error(t, writeOutput(&buf, v, tbl))
}

func TestStr(t *testing.T) {
	status := model.SalesStatusApproved
	date := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	amount := decimal.RequireFromString("1200.5")
	yes := true

	assert.Equal(t, "", str[string](nil))
	assert.Equal(t, "Approved", str(&status))
	assert.Equal(t, "2024-03-01", str(&date))
	assert.Equal(t, "1200.50", str(&amount))
	assert.Equal(t, "yes", str(&yes))
	assert.Equal(t, "42", str(model.Ptr(int64(42))))
}

func TestParseArgs(t *testing.T) {
	ids, err := parseIDs([]string{"1", "22"})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 22}, ids)

	_, err = parseID("abc")
	assert.Error(t, err)
	_, err = parseID("-3")
	assert.Error(t, err)

	d, err := optionalDate("")
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = optionalDate("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, 2024, d.Year())

	_, err = parseDate("01.03.2024")
	assert.Error(t, err)
}
