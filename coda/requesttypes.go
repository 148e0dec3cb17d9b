package coda

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Request bodies.  Optional fields are omitted from the JSON when unset, so Coda applies its own
// defaults.

// DocCreate is the payload for https://coda.io/developers/apis/v1#operation/createDoc
type DocCreate struct {
	Title       string      `json:"title,omitempty"`
	SourceDoc   string      `json:"sourceDoc,omitempty"`
	Timezone    string      `json:"timezone,omitempty"`
	FolderID    string      `json:"folderId,omitempty"`
	InitialPage *PageCreate `json:"initialPage,omitempty"`
}

func (d DocCreate) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.InitialPage),
	)
}

type DocUpdate struct {
	Title    string `json:"title,omitempty"`
	IconName string `json:"iconName,omitempty"`
}

// PageContent is raw canvas content.
type PageContent struct {
	Format  string `json:"format"`
	Content string `json:"content"`
}

func (c PageContent) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Format, validation.Required, validation.In(FormatHTML, FormatMarkdown)),
	)
}

// PageContentInit is what a new page starts out with: either canvas content or an embedded URL,
// selected by Type.  Use CanvasPage or EmbedPage to build one.
type PageContentInit struct {
	Type          string       `json:"type"`
	CanvasContent *PageContent `json:"canvasContent,omitempty"`
	URL           string       `json:"url,omitempty"`
	RenderMethod  string       `json:"renderMethod,omitempty"`
}

func CanvasPage(format, content string) *PageContentInit {
	return &PageContentInit{
		Type:          ContentTypeCanvas,
		CanvasContent: &PageContent{Format: format, Content: content},
	}
}

func EmbedPage(url string) *PageContentInit {
	return &PageContentInit{Type: ContentTypeEmbed, URL: url}
}

func (c PageContentInit) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Type, validation.Required, validation.In(ContentTypeCanvas, ContentTypeEmbed)),
		validation.Field(&c.CanvasContent,
			validation.When(c.Type == ContentTypeCanvas, validation.Required),
			validation.When(c.Type == ContentTypeEmbed, validation.Nil)),
		validation.Field(&c.URL,
			validation.When(c.Type == ContentTypeEmbed, validation.Required, is.URL),
			validation.When(c.Type == ContentTypeCanvas, validation.Empty)),
		validation.Field(&c.RenderMethod,
			validation.In("compatibility", "standard"),
			validation.When(c.Type == ContentTypeCanvas, validation.Empty)),
	)
}

// PageCreate is the payload for https://coda.io/developers/apis/v1#operation/createPage, and also
// the initialPage of a new doc.
type PageCreate struct {
	Name         string           `json:"name,omitempty"`
	Subtitle     string           `json:"subtitle,omitempty"`
	IconName     string           `json:"iconName,omitempty"`
	ImageURL     string           `json:"imageUrl,omitempty"`
	ParentPageID string           `json:"parentPageId,omitempty"`
	PageContent  *PageContentInit `json:"pageContent,omitempty"`
}

func (p PageCreate) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ImageURL, is.URL),
		validation.Field(&p.PageContent),
	)
}

// Insertion modes for PageContentUpdate.
const (
	InsertionAppend  = "append"
	InsertionReplace = "replace"
)

type PageContentUpdate struct {
	InsertionMode string      `json:"insertionMode"`
	CanvasContent PageContent `json:"canvasContent"`

	// With InsertionAppend, content goes right after this element instead of at the end.
	ElementID string `json:"elementId,omitempty"`
}

func (u PageContentUpdate) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.InsertionMode, validation.Required, validation.In(InsertionAppend, InsertionReplace)),
		validation.Field(&u.CanvasContent),
	)
}

// PageUpdate is the payload for https://coda.io/developers/apis/v1#operation/updatePage
type PageUpdate struct {
	Name          string             `json:"name,omitempty"`
	Subtitle      string             `json:"subtitle,omitempty"`
	IconName      string             `json:"iconName,omitempty"`
	ImageURL      string             `json:"imageUrl,omitempty"`
	IsHidden      *bool              `json:"isHidden,omitempty"`
	ContentUpdate *PageContentUpdate `json:"contentUpdate,omitempty"`
}

func (p PageUpdate) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ImageURL, is.URL),
		validation.Field(&p.ContentUpdate),
	)
}

type BeginPageContentExportRequest struct {
	OutputFormat string `json:"outputFormat"`
}

func (r BeginPageContentExportRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.OutputFormat, validation.Required, validation.In(FormatHTML, FormatMarkdown)),
	)
}

type DeletePageContentRequest struct {
	ElementIDs []string `json:"elementIds"`
}

func (r DeletePageContentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ElementIDs, validation.Required, validation.Each(validation.Required)),
	)
}

// CellEdit sets one cell; Column is a column ID or name.
type CellEdit struct {
	Column string `json:"column"`
	Value  any    `json:"value"`
}

func (c CellEdit) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Column, validation.Required),
	)
}

type RowEdit struct {
	Cells []CellEdit `json:"cells"`
}

func (r RowEdit) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Cells, validation.Required),
	)
}

type RowsUpsertRequest struct {
	Rows []RowEdit `json:"rows"`

	// Rows whose key column values match an existing row update it instead of being added.
	KeyColumns []string `json:"keyColumns,omitempty"`
}

func (r RowsUpsertRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Rows, validation.Required),
		validation.Field(&r.KeyColumns, validation.Each(validation.Required)),
	)
}

type RowUpdateRequest struct {
	Row RowEdit `json:"row"`
}

func (r RowUpdateRequest) Validate() error {
	return validation.ValidateStruct(&r, validation.Field(&r.Row))
}

type RowsDeleteRequest struct {
	RowIDs []string `json:"rowIds"`
}

func (r RowsDeleteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RowIDs, validation.Required, validation.Each(validation.Required)),
	)
}
