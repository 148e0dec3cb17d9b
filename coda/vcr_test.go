package coda

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/dnaeon/go-vcr.v3/cassette"
	"gopkg.in/dnaeon/go-vcr.v3/recorder"
)

// TestRecordedSession replays a session captured with `coda-tools --with-vcr`.
func TestRecordedSession(t *testing.T) {
	r, err := recorder.NewWithOptions(&recorder.Options{
		CassetteName:       "testdata/fixtures/coda-whoami",
		Mode:               recorder.ModeReplayOnly,
		SkipRequestLatency: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Stop() })

	r.SetMatcher(func(req *http.Request, i cassette.Request) bool {
		return req.Method == i.Method && req.URL.String() == i.URL
	})

	api, err := NewAPI(DefaultBaseURL, "not-a-real-token")
	require.NoError(t, err)
	api.Client = r.GetDefaultClient()

	ctx := context.Background()

	user, err := api.WhoAmI(ctx)
	require.NoError(t, err)
	assert.Equal(t, "paul@denknerd.org", user.LoginID)
	require.NotNil(t, user.Workspace)
	assert.Equal(t, "ws-Zz8F4a2Jbq", user.Workspace.ID)

	docs, err := api.ListDocs(ctx, ListDocsQuery{IsOwner: boolPtr(true), IsPublished: boolPtr(false), Limit: 2})
	require.NoError(t, err)
	require.Len(t, docs.Items, 2)
	assert.Equal(t, "Team handbook", docs.Items[0].Name)
	assert.Equal(t, "eyJsaW1pd", docs.NextPageToken)
}
