package localdump

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toothbrush/coda-tools/coda"
)

func TestCanonicalise(t *testing.T) {
	tests := []struct {
		title   string
		want    string
		wantErr bool
	}{
		{title: "Roadmap", want: "roadmap"},
		{title: "Q1 Plans!", want: "q1-plans"},
		{title: "  Hello,   World  ", want: "hello-world"},
		{title: "Ünïcödé notes", want: "n-c-d-notes"},
		{title: "🚀 Launch", want: "launch"},
		{title: strings.Repeat("a", 150), want: strings.Repeat("a", 100)},
		{title: "A", wantErr: true},
		{title: "🚀", wantErr: true},
		{title: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			got, err := canonicalise(tt.title)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, "untitled", slugFor(tt.title))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, slugFor(tt.title))
		})
	}
}

func page(id, name, parent string) coda.Page {
	p := coda.Page{ID: id, Type: "page", Name: name, ContentType: coda.ContentTypeCanvas}
	if parent != "" {
		p.Parent = &coda.PageReference{ID: parent, Type: "page"}
	}
	return p
}

func dumperWithPages(pages ...coda.Page) *DocDumper {
	dumper := &DocDumper{
		doc:                &coda.Doc{ID: "d1", Name: "Planning"},
		remotePageMetadata: map[PageID]RemotePageMetadata{},
	}
	for _, p := range pages {
		dumper.remotePageMetadata[PageID(p.ID)] = RemotePageMetadata{Page: p}
	}
	return dumper
}

func TestBuildCacheFromPagelist(t *testing.T) {
	dumper := dumperWithPages(
		page("p1", "Roadmap", ""),
		page("p2", "Q1 Plans", "p1"),
		page("p3", "Launch notes", "p2"),
		page("p4", "🎉", "p1"),
	)
	require.NoError(t, dumper.BuildCacheFromPagelist())

	assert.Empty(t, dumper.remotePageMetadata["p1"].AncestorIDs)
	assert.Equal(t, []PageID{"p1"}, dumper.remotePageMetadata["p2"].AncestorIDs)
	assert.Equal(t, []PageID{"p1", "p2"}, dumper.remotePageMetadata["p3"].AncestorIDs)
	assert.Equal(t, "q1-plans", dumper.remotePageMetadata["p2"].Slug)
	assert.Equal(t, "untitled", dumper.remotePageMetadata["p4"].Slug)

	for id, want := range map[PageID]RelativePath{
		"p1": "d1/p1-roadmap.md",
		"p3": "d1/roadmap/q1-plans/p3-launch-notes.md",
		"p4": "d1/roadmap/p4-untitled.md",
	} {
		got, err := dumper.pagePath(dumper.remotePageMetadata[id])
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestDetermineAncestorsBroken(t *testing.T) {
	t.Run("missing parent", func(t *testing.T) {
		dumper := dumperWithPages(page("p1", "Orphan", "gone"))
		_, err := dumper.determineAncestors("p1")
		assert.ErrorContains(t, err, "ancestor gone of page p1 doesn't exist")
	})

	t.Run("cycle", func(t *testing.T) {
		dumper := dumperWithPages(page("p1", "Chicken", "p2"), page("p2", "Egg", "p1"))
		_, err := dumper.determineAncestors("p1")
		assert.ErrorContains(t, err, "maximum depth")
		assert.Error(t, dumper.BuildCacheFromPagelist())
	})

	t.Run("unknown page", func(t *testing.T) {
		_, err := dumperWithPages().determineAncestors("p9")
		assert.Error(t, err)
	})
}

func TestLocalVersionIsRecent(t *testing.T) {
	dumper := dumperWithPages(page("p1", "Roadmap", ""), page("p2", "Q1 Plans", "p1"))
	require.NoError(t, dumper.BuildCacheFromPagelist())

	p2 := dumper.remotePageMetadata["p2"]
	p2.Page.UpdatedAt = "2024-03-02T10:00:00.000Z"
	dumper.remotePageMetadata["p2"] = p2

	tests := []struct {
		name  string
		local *LocalMarkdown
		want  bool
	}{
		{name: "never dumped"},
		{
			name:  "unchanged",
			local: &LocalMarkdown{ID: "p2", UpdatedAt: "2024-03-02T10:00:00.000Z", AncestorIDs: []PageID{"p1"}},
			want:  true,
		},
		{
			name:  "edited",
			local: &LocalMarkdown{ID: "p2", UpdatedAt: "2024-03-01T10:00:00.000Z", AncestorIDs: []PageID{"p1"}},
		},
		{
			name:  "moved",
			local: &LocalMarkdown{ID: "p2", UpdatedAt: "2024-03-02T10:00:00.000Z", AncestorIDs: []PageID{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dumper.localMarkdownCache = map[PageID]LocalMarkdown{}
			if tt.local != nil {
				dumper.localMarkdownCache["p2"] = *tt.local
			}

			_, fresh, err := dumper.LocalVersionIsRecent("p2")
			require.NoError(t, err)
			assert.Equal(t, tt.want, fresh)
		})
	}

	_, _, err := dumper.LocalVersionIsRecent("p9")
	assert.Error(t, err)
}
