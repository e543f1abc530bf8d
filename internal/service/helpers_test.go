package service_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/rezonia/efaktura/internal/transport"
)

// call is one request seen by the fake API.
type call struct {
	Method      string
	Path        string
	Query       url.Values
	ContentType string
	Body        []byte
}

type reply struct {
	status int
	body   string
}

// fakeAPI answers by "METHOD /path" and records every request.
type fakeAPI struct {
	mu     sync.Mutex
	routes map[string]reply
	calls  []call
	server *httptest.Server
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	api := &fakeAPI{routes: map[string]reply{}}
	api.server = httptest.NewServer(http.HandlerFunc(api.serve))
	t.Cleanup(api.server.Close)
	return api
}

func (a *fakeAPI) on(method, path string, status int, body string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.routes[method+" "+path] = reply{status: status, body: body}
}

func (a *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	a.mu.Lock()
	a.calls = append(a.calls, call{
		Method:      r.Method,
		Path:        r.URL.Path,
		Query:       r.URL.Query(),
		ContentType: r.Header.Get("Content-Type"),
		Body:        body,
	})
	rep, ok := a.routes[r.Method+" "+r.URL.Path]
	a.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"no route"}`))
		return
	}
	w.WriteHeader(rep.status)
	_, _ = w.Write([]byte(rep.body))
}

func (a *fakeAPI) client() *transport.Client {
	return transport.New("test-key", a.server.URL, transport.WithRetry(1, 0))
}

func (a *fakeAPI) last() call {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.calls) == 0 {
		return call{}
	}
	return a.calls[len(a.calls)-1]
}

func (a *fakeAPI) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.calls)
}
