package coda

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Page content types, see https://coda.io/developers/apis/v1#tag/Pages
const (
	ContentTypeCanvas   = "canvas"
	ContentTypeEmbed    = "embed"
	ContentTypeSyncPage = "syncPage"
)

// Formats understood by canvas content and page exports.
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
)

// See https://coda.io/developers/apis/v1#operation/whoami
type User struct {
	Name        string              `json:"name"`
	LoginID     string              `json:"loginId"`
	Type        string              `json:"type"`
	Scoped      bool                `json:"scoped"`
	TokenName   string              `json:"tokenName"`
	Href        string              `json:"href"`
	PictureLink string              `json:"pictureLink,omitempty"`
	Workspace   *WorkspaceReference `json:"workspace,omitempty"`
}

func (u User) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.Name, validation.Required),
		validation.Field(&u.LoginID, validation.Required),
		validation.Field(&u.Type, validation.Required, validation.In("user")),
	)
}

type WorkspaceReference struct {
	ID             string `json:"id"`
	Type           string `json:"type"`
	OrganizationID string `json:"organizationId,omitempty"`
	BrowserLink    string `json:"browserLink,omitempty"`
	Name           string `json:"name,omitempty"`
}

type FolderReference struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	BrowserLink string `json:"browserLink,omitempty"`
	Name        string `json:"name,omitempty"`
}

type DocReference struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	BrowserLink string `json:"browserLink,omitempty"`
	Href        string `json:"href,omitempty"`
}

type Icon struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	BrowserLink string `json:"browserLink"`
}

type Image struct {
	BrowserLink string  `json:"browserLink"`
	Type        string  `json:"type,omitempty"`
	Width       float64 `json:"width,omitempty"`
	Height      float64 `json:"height,omitempty"`
}

type DocSize struct {
	TotalRowCount     int  `json:"totalRowCount"`
	TableAndViewCount int  `json:"tableAndViewCount"`
	PageCount         int  `json:"pageCount"`
	OverAPISizeLimit  bool `json:"overApiSizeLimit"`
}

type DocPublished struct {
	BrowserLink  string   `json:"browserLink"`
	Description  string   `json:"description,omitempty"`
	Discoverable bool     `json:"discoverable"`
	EarnCredit   bool     `json:"earnCredit"`
	Mode         string   `json:"mode"`
	Categories   []string `json:"categories,omitempty"`
}

// Doc is the metadata for one Coda doc:
// https://coda.io/developers/apis/v1#operation/getDoc
//
// Timestamps are kept as the service's ISO 8601 strings, same as we get them.
type Doc struct {
	ID          string              `json:"id"`
	Type        string              `json:"type"`
	Href        string              `json:"href"`
	BrowserLink string              `json:"browserLink"`
	Icon        *Icon               `json:"icon,omitempty"`
	Name        string              `json:"name"`
	Owner       string              `json:"owner"`
	OwnerName   string              `json:"ownerName"`
	DocSize     *DocSize            `json:"docSize,omitempty"`
	SourceDoc   *DocReference       `json:"sourceDoc,omitempty"`
	CreatedAt   string              `json:"createdAt"`
	UpdatedAt   string              `json:"updatedAt"`
	Published   *DocPublished       `json:"published,omitempty"`
	Folder      *FolderReference    `json:"folder,omitempty"`
	Workspace   *WorkspaceReference `json:"workspace,omitempty"`
	WorkspaceID string              `json:"workspaceId,omitempty"`
	FolderID    string              `json:"folderId,omitempty"`
}

func (d Doc) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.ID, validation.Required),
		validation.Field(&d.Type, validation.Required, validation.In("doc")),
		validation.Field(&d.Name, validation.Required),
	)
}

type PageReference struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	BrowserLink string `json:"browserLink"`
	Href        string `json:"href"`
	Name        string `json:"name"`
}

func (p PageReference) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ID, validation.Required),
		validation.Field(&p.Type, validation.Required, validation.In("page")),
	)
}

// PersonValue shows up as createdBy/updatedBy on pages.
type PersonValue struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Page is one node of a doc's page tree:
// https://coda.io/developers/apis/v1#operation/getPage
type Page struct {
	ID                  string          `json:"id"`
	Type                string          `json:"type"`
	Href                string          `json:"href"`
	BrowserLink         string          `json:"browserLink"`
	Name                string          `json:"name"`
	Subtitle            string          `json:"subtitle,omitempty"`
	Icon                *Icon           `json:"icon,omitempty"`
	Image               *Image          `json:"image,omitempty"`
	ContentType         string          `json:"contentType"`
	IsHidden            bool            `json:"isHidden"`
	IsEffectivelyHidden bool            `json:"isEffectivelyHidden"`
	Parent              *PageReference  `json:"parent,omitempty"`
	Children            []PageReference `json:"children"`
	CreatedAt           string          `json:"createdAt,omitempty"`
	UpdatedAt           string          `json:"updatedAt,omitempty"`
	CreatedBy           *PersonValue    `json:"createdBy,omitempty"`
	UpdatedBy           *PersonValue    `json:"updatedBy,omitempty"`
}

func (p Page) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ID, validation.Required),
		validation.Field(&p.Type, validation.Required, validation.In("page")),
		validation.Field(&p.Name, validation.Required),
		validation.Field(&p.ContentType, validation.Required,
			validation.In(ContentTypeCanvas, ContentTypeEmbed, ContentTypeSyncPage)),
		validation.Field(&p.Parent),
		validation.Field(&p.Children),
	)
}

// PageContentElement is an addressable piece of a canvas.  IDs look like "cl-L80qn4IXoO".
type PageContentElement struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Content string `json:"content,omitempty"`
}

type TableReference struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	TableType   string         `json:"tableType"`
	Href        string         `json:"href"`
	BrowserLink string         `json:"browserLink"`
	Name        string         `json:"name"`
	Parent      *PageReference `json:"parent,omitempty"`
}

func (t TableReference) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.ID, validation.Required),
		validation.Field(&t.Type, validation.Required, validation.In("table")),
		validation.Field(&t.TableType, validation.In("table", "view")),
	)
}

type ColumnReference struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Href string `json:"href"`
}

type Sort struct {
	Column    ColumnReference `json:"column"`
	Direction string          `json:"direction"`
}

type TableFilter struct {
	Valid           bool `json:"valid"`
	IsVolatile      bool `json:"isVolatile"`
	HasUserFormula  bool `json:"hasUserFormula"`
	HasTodayFormula bool `json:"hasTodayFormula"`
	HasNowFormula   bool `json:"hasNowFormula"`
}

// Table is the full metadata of a table or view:
// https://coda.io/developers/apis/v1#operation/getTable
type Table struct {
	ID            string           `json:"id"`
	Type          string           `json:"type"`
	TableType     string           `json:"tableType"`
	Href          string           `json:"href"`
	BrowserLink   string           `json:"browserLink"`
	Name          string           `json:"name"`
	Parent        *PageReference   `json:"parent,omitempty"`
	ParentTable   *TableReference  `json:"parentTable,omitempty"`
	DisplayColumn *ColumnReference `json:"displayColumn,omitempty"`
	RowCount      int              `json:"rowCount"`
	Sorts         []Sort           `json:"sorts,omitempty"`
	Layout        string           `json:"layout,omitempty"`
	Filter        *TableFilter     `json:"filter,omitempty"`
	CreatedAt     string           `json:"createdAt,omitempty"`
	UpdatedAt     string           `json:"updatedAt,omitempty"`
}

func (t Table) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.ID, validation.Required),
		validation.Field(&t.Type, validation.Required, validation.In("table")),
		validation.Field(&t.TableType, validation.In("table", "view")),
		validation.Field(&t.Name, validation.Required),
	)
}

// ColumnFormat only carries the fields every format has; the rest depends on the type.
type ColumnFormat struct {
	Type    string `json:"type"`
	IsArray bool   `json:"isArray"`
	Label   string `json:"label,omitempty"`
}

type Column struct {
	ID           string          `json:"id"`
	Type         string          `json:"type"`
	Href         string          `json:"href"`
	Name         string          `json:"name"`
	Display      bool            `json:"display,omitempty"`
	Calculated   bool            `json:"calculated,omitempty"`
	Formula      string          `json:"formula,omitempty"`
	DefaultValue string          `json:"defaultValue,omitempty"`
	Format       ColumnFormat    `json:"format"`
	Parent       *TableReference `json:"parent,omitempty"`
}

func (c Column) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ID, validation.Required),
		validation.Field(&c.Type, validation.Required, validation.In("column")),
		validation.Field(&c.Name, validation.Required),
	)
}

// Row values are keyed by column ID (or name with useColumnNames) and their shape depends on the
// valueFormat requested, so they stay untyped.
type Row struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Href        string          `json:"href"`
	Name        string          `json:"name"`
	Index       int             `json:"index"`
	BrowserLink string          `json:"browserLink"`
	CreatedAt   string          `json:"createdAt"`
	UpdatedAt   string          `json:"updatedAt"`
	Values      map[string]any  `json:"values"`
	Parent      *TableReference `json:"parent,omitempty"`
}

func (r Row) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required),
		validation.Field(&r.Type, validation.Required, validation.In("row")),
	)
}

type FormulaReference struct {
	ID     string         `json:"id"`
	Type   string         `json:"type"`
	Href   string         `json:"href"`
	Name   string         `json:"name"`
	Parent *PageReference `json:"parent,omitempty"`
}

func (f FormulaReference) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.ID, validation.Required),
		validation.Field(&f.Type, validation.Required, validation.In("formula")),
	)
}

type Formula struct {
	FormulaReference
	Value any `json:"value"`
}
