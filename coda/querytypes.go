package coda

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Query parameter sets.  Everything is omitempty: anything left unset never makes it onto the wire.
// Booleans are pointers so that an explicit false still gets sent.

// ListDocsQuery defines the query parameters for:
// https://coda.io/developers/apis/v1#operation/listDocs
type ListDocsQuery struct {
	IsOwner     *bool  `url:"isOwner,omitempty"`     // only docs owned by the user
	IsPublished *bool  `url:"isPublished,omitempty"` // only published docs
	Query       string `url:"query,omitempty"`       // search term
	SourceDoc   string `url:"sourceDoc,omitempty"`   // only docs copied from this doc ID
	IsStarred   *bool  `url:"isStarred,omitempty"`
	InGallery   *bool  `url:"inGallery,omitempty"`
	WorkspaceID string `url:"workspaceId,omitempty"`
	FolderID    string `url:"folderId,omitempty"`

	// 'PageToken' is used for pagination; this opaque token is returned as nextPageToken.
	Limit     int    `url:"limit,omitempty"`
	PageToken string `url:"pageToken,omitempty"`
}

func (q ListDocsQuery) Validate() error {
	return validation.ValidateStruct(&q, validation.Field(&q.Limit, validation.Min(1)))
}

// ListPagesQuery defines the query parameters for:
// https://coda.io/developers/apis/v1#operation/listPages
type ListPagesQuery struct {
	Limit     int    `url:"limit,omitempty"`
	PageToken string `url:"pageToken,omitempty"`
}

func (q ListPagesQuery) Validate() error {
	return validation.ValidateStruct(&q, validation.Field(&q.Limit, validation.Min(1)))
}

// ListTablesQuery defines the query parameters for:
// https://coda.io/developers/apis/v1#operation/listTables
type ListTablesQuery struct {
	Limit      int      `url:"limit,omitempty"`
	PageToken  string   `url:"pageToken,omitempty"`
	SortBy     string   `url:"sortBy,omitempty"`           // only "name"
	TableTypes []string `url:"tableTypes,omitempty,comma"` // "table", "view"
}

func (q ListTablesQuery) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Limit, validation.Min(1)),
		validation.Field(&q.SortBy, validation.In("name")),
		validation.Field(&q.TableTypes, validation.Each(validation.In("table", "view"))),
	)
}

// ListColumnsQuery defines the query parameters for:
// https://coda.io/developers/apis/v1#operation/listColumns
type ListColumnsQuery struct {
	Limit       int    `url:"limit,omitempty"`
	PageToken   string `url:"pageToken,omitempty"`
	VisibleOnly *bool  `url:"visibleOnly,omitempty"`
}

func (q ListColumnsQuery) Validate() error {
	return validation.ValidateStruct(&q, validation.Field(&q.Limit, validation.Min(1)))
}

// Value formats for row values.
const (
	ValueFormatSimple           = "simple"
	ValueFormatSimpleWithArrays = "simpleWithArrays"
	ValueFormatRich             = "rich"
)

// ListRowsQuery defines the query parameters for:
// https://coda.io/developers/apis/v1#operation/listRows
type ListRowsQuery struct {
	Query          string `url:"query,omitempty"`  // e.g. `"Status":"Complete"`
	SortBy         string `url:"sortBy,omitempty"` // createdAt, natural, updatedAt
	UseColumnNames *bool  `url:"useColumnNames,omitempty"`
	ValueFormat    string `url:"valueFormat,omitempty"`
	VisibleOnly    *bool  `url:"visibleOnly,omitempty"`
	Limit          int    `url:"limit,omitempty"`
	PageToken      string `url:"pageToken,omitempty"`

	// Returned as nextSyncToken on the last page; pass it back to get only rows changed since.
	SyncToken string `url:"syncToken,omitempty"`
}

func (q ListRowsQuery) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.ValueFormat, validation.In(ValueFormatSimple, ValueFormatSimpleWithArrays, ValueFormatRich)),
		validation.Field(&q.Limit, validation.Min(1)),
	)
}

// GetRowQuery defines the query parameters for:
// https://coda.io/developers/apis/v1#operation/getRow
type GetRowQuery struct {
	UseColumnNames *bool  `url:"useColumnNames,omitempty"`
	ValueFormat    string `url:"valueFormat,omitempty"`
}

func (q GetRowQuery) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.ValueFormat, validation.In(ValueFormatSimple, ValueFormatSimpleWithArrays, ValueFormatRich)),
	)
}

// RowWriteQuery is shared by upsert and update.  With DisableParsing set, values are stored as-is
// (e.g. URLs won't become links).
type RowWriteQuery struct {
	DisableParsing *bool `url:"disableParsing,omitempty"`
}

// ListFormulasQuery defines the query parameters for:
// https://coda.io/developers/apis/v1#operation/listFormulas
type ListFormulasQuery struct {
	Limit     int    `url:"limit,omitempty"`
	PageToken string `url:"pageToken,omitempty"`
	SortBy    string `url:"sortBy,omitempty"`
}

func (q ListFormulasQuery) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Limit, validation.Min(1)),
		validation.Field(&q.SortBy, validation.In("name")),
	)
}
