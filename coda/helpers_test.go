package coda

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// recordedRequest is what the fake service saw.
type recordedRequest struct {
	Method        string
	Path          string
	RawPath       string
	Query         string
	Body          string
	Authorization string
	ContentType   string
}

type fakeService struct {
	mu       sync.Mutex
	requests []recordedRequest
}

func (f *fakeService) record(r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, recordedRequest{
		Method:        r.Method,
		Path:          r.URL.Path,
		RawPath:       r.URL.EscapedPath(),
		Query:         r.URL.RawQuery,
		Body:          string(body),
		Authorization: r.Header.Get("Authorization"),
		ContentType:   r.Header.Get("Content-Type"),
	})
}

func (f *fakeService) all() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedRequest(nil), f.requests...)
}

func (f *fakeService) last(t *testing.T) recordedRequest {
	t.Helper()
	reqs := f.all()
	require.NotEmpty(t, reqs, "no request reached the server")
	return reqs[len(reqs)-1]
}

// newTestAPI starts a server answering every request with status and body, and returns a client
// pointed at its /apis/v1/ path.
func newTestAPI(t *testing.T, status int, body string) (*API, *fakeService) {
	t.Helper()
	return newTestAPIWithHandler(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	})
}

func newTestAPIWithHandler(t *testing.T, handler http.HandlerFunc) (*API, *fakeService) {
	t.Helper()

	fake := &fakeService{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fake.record(r)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	api, err := NewAPI(srv.URL+"/apis/v1", "test-token")
	require.NoError(t, err)
	api.Client = srv.Client()

	return api, fake
}

func boolPtr(b bool) *bool { return &b }
