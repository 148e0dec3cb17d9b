package localdump

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toothbrush/coda-tools/coda"
)

type answer func(w http.ResponseWriter, serverURL string)

func reply(status int, body string) answer {
	return func(w http.ResponseWriter, _ string) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

var (
	notFound   = reply(http.StatusNotFound, `{"message":"Not found"}`)
	inProgress = reply(http.StatusOK, `{"id":"r1","status":"inProgress"}`)
	failed     = reply(http.StatusOK, `{"id":"r1","status":"failed","error":"Page too large"}`)
	serverDown = reply(http.StatusInternalServerError, `oops`)
)

func complete(w http.ResponseWriter, serverURL string) {
	reply(http.StatusOK, `{"id":"r1","status":"complete","downloadLink":"`+serverURL+`/download"}`)(w, serverURL)
}

// statusServer answers export status polls from a script, repeating the last answer forever.
func statusServer(t *testing.T, script ...answer) (*coda.API, *int32) {
	t.Helper()

	var polls int32
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/download" {
			_, _ = io.WriteString(w, "# Exported")
			return
		}
		assert.Equal(t, "/docs/d1/pages/p1/export/r1", r.URL.Path)

		n := int(atomic.AddInt32(&polls, 1))
		if n > len(script) {
			n = len(script)
		}
		script[n-1](w, srv.URL)
	}))
	t.Cleanup(srv.Close)

	api, err := coda.NewAPI(srv.URL, "test-token")
	require.NoError(t, err)
	api.Client = srv.Client()
	api.DownloadClient = srv.Client()

	return api, &polls
}

func TestPollExport(t *testing.T) {
	tests := []struct {
		name      string
		script    []answer
		polls     int32
		wantErr   string
		wantFound bool
	}{
		{
			name:   "complete straight away",
			script: []answer{complete},
			polls:  1,
		},
		{
			name:   "retries not found and in progress",
			script: []answer{notFound, notFound, inProgress, complete},
			polls:  4,
		},
		{
			name:    "failed export stops polling",
			script:  []answer{notFound, failed},
			polls:   2,
			wantErr: "Page too large",
		},
		{
			name:    "server errors aren't retried",
			script:  []answer{inProgress, serverDown},
			polls:   2,
			wantErr: "oops",
		},
		{
			name:      "gives up when the schedule runs out",
			script:    []answer{notFound},
			polls:     6,
			wantErr:   "Not found",
			wantFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, polls := statusServer(t, tt.script...)

			result, err := PollExport(context.Background(), api, "d1", "p1", "r1", fastBackOff())
			assert.Equal(t, tt.polls, atomic.LoadInt32(polls))

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Equal(t, tt.wantFound, coda.IsNotFound(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "r1", result.RequestID())
			assert.Equal(t, "# Exported", result.Content)
		})
	}
}

func TestPollExportInProgressError(t *testing.T) {
	api, _ := statusServer(t, inProgress)

	_, err := PollExport(context.Background(), api, "d1", "p1", "r1", fastBackOff())
	assert.ErrorIs(t, err, errExportInProgress)
}

func TestPollExportCancelled(t *testing.T) {
	api, polls := statusServer(t, inProgress)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := PollExport(ctx, api, "d1", "p1", "r1", backoff.NewConstantBackOff(time.Hour))
	require.Error(t, err)
	assert.LessOrEqual(t, atomic.LoadInt32(polls), int32(1))
}

func TestNewExportBackOff(t *testing.T) {
	b := NewExportBackOff(time.Minute)

	first := b.NextBackOff()
	assert.GreaterOrEqual(t, first, time.Second, "2s, give or take the jitter")
	assert.LessOrEqual(t, first, 3*time.Second)
}
