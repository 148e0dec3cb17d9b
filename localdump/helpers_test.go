package localdump

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toothbrush/coda-tools/coda"
)

const testDocID = "d1"

type fakePage struct {
	ID          string
	Name        string
	ContentType string
	Parent      string
	UpdatedAt   string
	HTML        string
}

func (p fakePage) JSON() map[string]any {
	out := map[string]any{
		"id":          p.ID,
		"type":        "page",
		"href":        "https://coda.io/apis/v1/docs/d1/pages/" + p.ID,
		"browserLink": "https://coda.io/d/_dd1/" + p.ID,
		"name":        p.Name,
		"contentType": p.ContentType,
		"updatedAt":   p.UpdatedAt,
		"children":    []any{},
	}
	if p.Parent != "" {
		out["parent"] = map[string]any{"id": p.Parent, "type": "page", "name": "parent"}
	}
	return out
}

// fakeCoda answers the handful of endpoints a doc dump needs.  Export status is 404 on the first
// poll of every request, and complete after that.
type fakeCoda struct {
	t   *testing.T
	srv *httptest.Server

	mu      sync.Mutex
	pages   [][]fakePage
	exports map[string]int
	polls   map[string]int
	failing map[string]bool
}

func newFakeCoda(t *testing.T, pages ...[]fakePage) *fakeCoda {
	t.Helper()

	f := &fakeCoda{
		t:       t,
		pages:   pages,
		exports: map[string]int{},
		polls:   map[string]int{},
		failing: map[string]bool{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /apis/v1/docs/{doc}", f.getDoc)
	mux.HandleFunc("GET /apis/v1/docs/{doc}/pages", f.listPages)
	mux.HandleFunc("POST /apis/v1/docs/{doc}/pages/{page}/export", f.beginExport)
	mux.HandleFunc("GET /apis/v1/docs/{doc}/pages/{page}/export/{req}", f.exportStatus)
	mux.HandleFunc("GET /download/{page}", f.download)

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeCoda) API() *coda.API {
	api, err := coda.NewAPI(f.srv.URL+"/apis/v1", "test-token")
	require.NoError(f.t, err)
	api.Client = f.srv.Client()
	api.DownloadClient = f.srv.Client()
	return api
}

func (f *fakeCoda) find(id string) (fakePage, bool) {
	for _, batch := range f.pages {
		for _, p := range batch {
			if p.ID == id {
				return p, true
			}
		}
	}
	return fakePage{}, false
}

func (f *fakeCoda) exportCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.exports {
		total += n
	}
	return total
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (f *fakeCoda) getDoc(w http.ResponseWriter, r *http.Request) {
	if r.PathValue("doc") != testDocID {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "Doc not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":          testDocID,
		"type":        "doc",
		"name":        "Planning",
		"browserLink": "https://coda.io/d/_dd1",
	})
}

func (f *fakeCoda) listPages(w http.ResponseWriter, r *http.Request) {
	batch := 0
	if token := r.URL.Query().Get("pageToken"); token != "" {
		_, err := fmt.Sscanf(token, "t%d", &batch)
		assert.NoError(f.t, err)
	}

	items := []any{}
	for _, p := range f.pages[batch] {
		items = append(items, p.JSON())
	}
	out := map[string]any{"items": items}
	if batch+1 < len(f.pages) {
		out["nextPageToken"] = fmt.Sprintf("t%d", batch+1)
	}
	writeJSON(w, http.StatusOK, out)
}

func (f *fakeCoda) beginExport(w http.ResponseWriter, r *http.Request) {
	page := r.PathValue("page")

	f.mu.Lock()
	f.exports[page]++
	n := f.exports[page]
	f.mu.Unlock()

	writeJSON(w, http.StatusAccepted, map[string]any{
		"id":     fmt.Sprintf("req-%s-%d", page, n),
		"status": coda.ExportStatusInProgress,
		"href":   "https://coda.io/apis/v1/docs/d1/pages/" + page + "/export/req",
	})
}

func (f *fakeCoda) exportStatus(w http.ResponseWriter, r *http.Request) {
	page, req := r.PathValue("page"), r.PathValue("req")

	f.mu.Lock()
	f.polls[req]++
	n := f.polls[req]
	failing := f.failing[page]
	f.mu.Unlock()

	switch {
	case n == 1:
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "Export not found"})
	case failing:
		writeJSON(w, http.StatusOK, map[string]any{"id": req, "status": coda.ExportStatusFailed, "error": "render blew up"})
	default:
		writeJSON(w, http.StatusOK, map[string]any{
			"id":           req,
			"status":       coda.ExportStatusComplete,
			"downloadLink": f.srv.URL + "/download/" + page,
		})
	}
}

func (f *fakeCoda) download(w http.ResponseWriter, r *http.Request) {
	assert.Empty(f.t, r.Header.Get("Authorization"), "download links are pre-signed")

	p, ok := f.find(r.PathValue("page"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	_, _ = io.WriteString(w, p.HTML)
}

func fastBackOff() backoff.BackOff {
	return backoff.WithMaxRetries(backoff.NewConstantBackOff(time.Millisecond), 5)
}

// planningPages is a three-level tree split over two listing pages, with an embed in it.
func planningPages() [][]fakePage {
	return [][]fakePage{
		{
			{ID: "canvas-root", Name: "Roadmap", ContentType: coda.ContentTypeCanvas, UpdatedAt: "2024-03-01T10:00:00.000Z",
				HTML: `<h1>Roadmap</h1><p>See <a href="/d/Launch-notes">launch</a></p>`},
			{ID: "canvas-child", Name: "Q1 Plans", ContentType: coda.ContentTypeCanvas, Parent: "canvas-root", UpdatedAt: "2024-03-02T10:00:00.000Z",
				HTML: `<p>Ship it</p>`},
		},
		{
			{ID: "embed-video", Name: "Demo video", ContentType: coda.ContentTypeEmbed, Parent: "canvas-root", UpdatedAt: "2024-03-03T10:00:00.000Z"},
			{ID: "canvas-grand", Name: "Launch notes", ContentType: coda.ContentTypeCanvas, Parent: "canvas-child", UpdatedAt: "2024-03-04T10:00:00.000Z",
				HTML: `<table><tr><th>When</th><th>What</th></tr><tr><td>May</td><td>Beta</td></tr></table>`},
		},
	}
}
