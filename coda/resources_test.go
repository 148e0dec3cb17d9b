package coda

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	docJSON     = `{"id":"d1","type":"doc","href":"h","browserLink":"b","name":"Roadmap","owner":"ada@example.com","ownerName":"Ada","createdAt":"2024-01-02T03:04:05.000Z","updatedAt":"2024-02-03T04:05:06.000Z"}`
	pageJSON    = `{"id":"canvas-1","type":"page","href":"h","browserLink":"b","name":"Intro","contentType":"canvas","isHidden":false,"isEffectivelyHidden":false,"children":[],"parent":{"id":"canvas-0","type":"page","browserLink":"b","href":"h","name":"Root"}}`
	tableJSON   = `{"id":"grid-1","type":"table","tableType":"table","href":"h","browserLink":"b","name":"Tasks","rowCount":3}`
	columnJSON  = `{"id":"c-1","type":"column","href":"h","name":"Status","format":{"type":"text","isArray":false}}`
	rowJSON     = `{"id":"i-1","type":"row","href":"h","name":"Write docs","index":0,"browserLink":"b","createdAt":"x","updatedAt":"y","values":{"c-1":"Done"}}`
	formulaJSON = `{"id":"f-1","type":"formula","href":"h","name":"Total","value":42}`
)

// TestRequestTemplates checks that each operation hits the right method and path with the right
// body, and decodes what comes back.
func TestRequestTemplates(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		response string
		call     func(api *API) (any, error)
		method   string
		path     string
		query    string
		body     string
		check    func(t *testing.T, got any)
	}{
		{
			name:     "ListDocs",
			response: `{"items":[` + docJSON + `],"nextPageToken":"next"}`,
			call: func(api *API) (any, error) {
				return api.ListDocs(ctx, ListDocsQuery{IsOwner: boolPtr(true), IsPublished: boolPtr(false)})
			},
			method: http.MethodGet,
			path:   "/apis/v1/docs",
			query:  "isOwner=true&isPublished=false",
			check: func(t *testing.T, got any) {
				docs := got.(*DocList)
				require.Len(t, docs.Items, 1)
				assert.Equal(t, "Roadmap", docs.Items[0].Name)
				assert.Equal(t, "Ada", docs.Items[0].OwnerName)
				assert.Equal(t, "next", docs.NextPageToken)
			},
		},
		{
			name:     "CreateDoc",
			response: docJSON,
			call: func(api *API) (any, error) {
				return api.CreateDoc(ctx, DocCreate{
					Title:       "Roadmap",
					InitialPage: &PageCreate{Name: "Intro", PageContent: CanvasPage(FormatMarkdown, "# Hi")},
				})
			},
			method: http.MethodPost,
			path:   "/apis/v1/docs",
			body:   `{"title":"Roadmap","initialPage":{"name":"Intro","pageContent":{"type":"canvas","canvasContent":{"format":"markdown","content":"# Hi"}}}}`,
			check: func(t *testing.T, got any) {
				assert.Equal(t, "d1", got.(*DocumentCreationResult).ID)
			},
		},
		{
			name:     "GetDoc",
			response: docJSON,
			call:     func(api *API) (any, error) { return api.GetDoc(ctx, "d1") },
			method:   http.MethodGet,
			path:     "/apis/v1/docs/d1",
			check: func(t *testing.T, got any) {
				doc := got.(*Doc)
				assert.Equal(t, "2024-02-03T04:05:06.000Z", doc.UpdatedAt)
			},
		},
		{
			name:     "UpdateDoc",
			response: `{}`,
			call:     func(api *API) (any, error) { return api.UpdateDoc(ctx, "d1", DocUpdate{Title: "New"}) },
			method:   http.MethodPatch,
			path:     "/apis/v1/docs/d1",
			body:     `{"title":"New"}`,
		},
		{
			name:     "DeleteDoc",
			response: ``,
			call:     func(api *API) (any, error) { return api.DeleteDoc(ctx, "d1") },
			method:   http.MethodDelete,
			path:     "/apis/v1/docs/d1",
		},
		{
			name:     "ListPages",
			response: `{"items":[` + pageJSON + `]}`,
			call:     func(api *API) (any, error) { return api.ListPages(ctx, "d1", ListPagesQuery{Limit: 10}) },
			method:   http.MethodGet,
			path:     "/apis/v1/docs/d1/pages",
			query:    "limit=10",
			check: func(t *testing.T, got any) {
				pages := got.(*PageList)
				require.Len(t, pages.Items, 1)
				assert.Equal(t, "canvas-0", pages.Items[0].Parent.ID)
			},
		},
		{
			name:     "GetPage",
			response: pageJSON,
			call:     func(api *API) (any, error) { return api.GetPage(ctx, "d1", "canvas-1") },
			method:   http.MethodGet,
			path:     "/apis/v1/docs/d1/pages/canvas-1",
			check: func(t *testing.T, got any) {
				assert.Equal(t, ContentTypeCanvas, got.(*Page).ContentType)
			},
		},
		{
			name:     "CreateEmbedPage",
			response: `{"requestId":"mut-1","id":"canvas-9"}`,
			call: func(api *API) (any, error) {
				return api.CreatePage(ctx, "d1", PageCreate{Name: "Site", PageContent: EmbedPage("https://example.com")})
			},
			method: http.MethodPost,
			path:   "/apis/v1/docs/d1/pages",
			body:   `{"name":"Site","pageContent":{"type":"embed","url":"https://example.com"}}`,
			check: func(t *testing.T, got any) {
				assert.Equal(t, "canvas-9", got.(*PageCreateResult).ID)
			},
		},
		{
			name:     "UpdatePageAppendAfterElement",
			response: `{"requestId":"mut-2","id":"canvas-1"}`,
			call: func(api *API) (any, error) {
				return api.UpdatePage(ctx, "d1", "canvas-1", PageUpdate{
					IsHidden: boolPtr(false),
					ContentUpdate: &PageContentUpdate{
						InsertionMode: InsertionAppend,
						CanvasContent: PageContent{Format: FormatHTML, Content: "<p>more</p>"},
						ElementID:     "cl-1",
					},
				})
			},
			method: http.MethodPut,
			path:   "/apis/v1/docs/d1/pages/canvas-1",
			body:   `{"isHidden":false,"contentUpdate":{"insertionMode":"append","canvasContent":{"format":"html","content":"<p>more</p>"},"elementId":"cl-1"}}`,
		},
		{
			name:     "DeletePage",
			response: `{"requestId":"mut-3","id":"canvas-1"}`,
			call:     func(api *API) (any, error) { return api.DeletePage(ctx, "d1", "canvas-1") },
			method:   http.MethodDelete,
			path:     "/apis/v1/docs/d1/pages/canvas-1",
		},
		{
			name:     "GetTable",
			response: tableJSON,
			call:     func(api *API) (any, error) { return api.GetTable(ctx, "d1", "grid-1") },
			method:   http.MethodGet,
			path:     "/apis/v1/docs/d1/tables/grid-1",
			check: func(t *testing.T, got any) {
				assert.Equal(t, 3, got.(*Table).RowCount)
			},
		},
		{
			name:     "ListColumns",
			response: `{"items":[` + columnJSON + `]}`,
			call: func(api *API) (any, error) {
				return api.ListColumns(ctx, "d1", "grid-1", ListColumnsQuery{VisibleOnly: boolPtr(true)})
			},
			method: http.MethodGet,
			path:   "/apis/v1/docs/d1/tables/grid-1/columns",
			query:  "visibleOnly=true",
		},
		{
			name:     "GetColumn",
			response: columnJSON,
			call:     func(api *API) (any, error) { return api.GetColumn(ctx, "d1", "grid-1", "c-1") },
			method:   http.MethodGet,
			path:     "/apis/v1/docs/d1/tables/grid-1/columns/c-1",
			check: func(t *testing.T, got any) {
				assert.Equal(t, "text", got.(*Column).Format.Type)
			},
		},
		{
			name:     "PushButton",
			response: `{"requestId":"mut-4","rowId":"i-1","columnId":"c-2"}`,
			call:     func(api *API) (any, error) { return api.PushButton(ctx, "d1", "grid-1", "i-1", "c-2") },
			method:   http.MethodPost,
			path:     "/apis/v1/docs/d1/tables/grid-1/rows/i-1/buttons/c-2",
		},
		{
			name:     "ListRows",
			response: `{"items":[` + rowJSON + `],"nextSyncToken":"sync"}`,
			call: func(api *API) (any, error) {
				return api.ListRows(ctx, "d1", "grid-1", ListRowsQuery{UseColumnNames: boolPtr(true), ValueFormat: ValueFormatSimple})
			},
			method: http.MethodGet,
			path:   "/apis/v1/docs/d1/tables/grid-1/rows",
			query:  "useColumnNames=true&valueFormat=simple",
			check: func(t *testing.T, got any) {
				rows := got.(*RowList)
				assert.Equal(t, "sync", rows.NextSyncToken)
				assert.Equal(t, "Done", rows.Items[0].Values["c-1"])
			},
		},
		{
			name:     "GetRow",
			response: rowJSON,
			call:     func(api *API) (any, error) { return api.GetRow(ctx, "d1", "grid-1", "i-1", GetRowQuery{}) },
			method:   http.MethodGet,
			path:     "/apis/v1/docs/d1/tables/grid-1/rows/i-1",
		},
		{
			name:     "UpsertRows",
			response: `{"requestId":"mut-5","addedRowIds":["i-2"]}`,
			call: func(api *API) (any, error) {
				return api.UpsertRows(ctx, "d1", "grid-1", RowsUpsertRequest{
					Rows:       []RowEdit{{Cells: []CellEdit{{Column: "c-1", Value: "Todo"}}}},
					KeyColumns: []string{"c-1"},
				}, RowWriteQuery{DisableParsing: boolPtr(true)})
			},
			method: http.MethodPost,
			path:   "/apis/v1/docs/d1/tables/grid-1/rows",
			query:  "disableParsing=true",
			body:   `{"rows":[{"cells":[{"column":"c-1","value":"Todo"}]}],"keyColumns":["c-1"]}`,
			check: func(t *testing.T, got any) {
				assert.Equal(t, []string{"i-2"}, got.(*RowsUpsertResult).AddedRowIDs)
			},
		},
		{
			name:     "UpdateRow",
			response: `{"requestId":"mut-6","id":"i-1"}`,
			call: func(api *API) (any, error) {
				return api.UpdateRow(ctx, "d1", "grid-1", "i-1", RowUpdateRequest{
					Row: RowEdit{Cells: []CellEdit{{Column: "Status", Value: 3}}},
				}, RowWriteQuery{})
			},
			method: http.MethodPut,
			path:   "/apis/v1/docs/d1/tables/grid-1/rows/i-1",
			body:   `{"row":{"cells":[{"column":"Status","value":3}]}}`,
		},
		{
			name:     "DeleteRow",
			response: `{"requestId":"mut-7","id":"i-1"}`,
			call:     func(api *API) (any, error) { return api.DeleteRow(ctx, "d1", "grid-1", "i-1") },
			method:   http.MethodDelete,
			path:     "/apis/v1/docs/d1/tables/grid-1/rows/i-1",
		},
		{
			name:     "DeleteRows",
			response: `{"requestId":"mut-8","rowIds":["i-1","i-2"]}`,
			call: func(api *API) (any, error) {
				return api.DeleteRows(ctx, "d1", "grid-1", RowsDeleteRequest{RowIDs: []string{"i-1", "i-2"}})
			},
			method: http.MethodDelete,
			path:   "/apis/v1/docs/d1/tables/grid-1/rows",
			body:   `{"rowIds":["i-1","i-2"]}`,
		},
		{
			name:     "ListFormulas",
			response: `{"items":[{"id":"f-1","type":"formula","href":"h","name":"Total"}]}`,
			call: func(api *API) (any, error) {
				return api.ListFormulas(ctx, "d1", ListFormulasQuery{SortBy: "name"})
			},
			method: http.MethodGet,
			path:   "/apis/v1/docs/d1/formulas",
			query:  "sortBy=name",
		},
		{
			name:     "GetFormula",
			response: formulaJSON,
			call:     func(api *API) (any, error) { return api.GetFormula(ctx, "d1", "Total") },
			method:   http.MethodGet,
			path:     "/apis/v1/docs/d1/formulas/Total",
			check: func(t *testing.T, got any) {
				f := got.(*Formula)
				assert.Equal(t, "Total", f.Name)
				assert.Equal(t, float64(42), f.Value)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, fake := newTestAPI(t, http.StatusOK, tt.response)

			got, err := tt.call(api)
			require.NoError(t, err)

			req := fake.last(t)
			assert.Equal(t, tt.method, req.Method)
			assert.Equal(t, tt.path, req.Path)
			assert.Equal(t, tt.query, req.Query)
			if tt.body == "" {
				assert.Empty(t, req.Body)
			} else {
				assert.JSONEq(t, tt.body, req.Body)
				assert.Equal(t, "application/json", req.ContentType)
			}
			assert.Len(t, fake.all(), 1)

			if tt.check != nil {
				tt.check(t, got)
			}
		})
	}
}
