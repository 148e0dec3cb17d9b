package coda

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// List responses all share the same envelope.  NextPageToken is absent on the last page; feed it
// back as PageToken to get the next set of results.

type DocList struct {
	Items         []Doc  `json:"items"`
	Href          string `json:"href,omitempty"`
	NextPageToken string `json:"nextPageToken,omitempty"`
	NextPageLink  string `json:"nextPageLink,omitempty"`
}

func (l DocList) Validate() error {
	return validation.ValidateStruct(&l, validation.Field(&l.Items, validation.NotNil))
}

type PageList struct {
	Items         []Page `json:"items"`
	Href          string `json:"href,omitempty"`
	NextPageToken string `json:"nextPageToken,omitempty"`
	NextPageLink  string `json:"nextPageLink,omitempty"`
}

func (l PageList) Validate() error {
	return validation.ValidateStruct(&l, validation.Field(&l.Items, validation.NotNil))
}

type TableList struct {
	Items         []TableReference `json:"items"`
	Href          string           `json:"href,omitempty"`
	NextPageToken string           `json:"nextPageToken,omitempty"`
	NextPageLink  string           `json:"nextPageLink,omitempty"`
}

func (l TableList) Validate() error {
	return validation.ValidateStruct(&l, validation.Field(&l.Items, validation.NotNil))
}

type ColumnList struct {
	Items         []Column `json:"items"`
	Href          string   `json:"href,omitempty"`
	NextPageToken string   `json:"nextPageToken,omitempty"`
	NextPageLink  string   `json:"nextPageLink,omitempty"`
}

func (l ColumnList) Validate() error {
	return validation.ValidateStruct(&l, validation.Field(&l.Items, validation.NotNil))
}

type RowList struct {
	Items         []Row  `json:"items"`
	Href          string `json:"href,omitempty"`
	NextPageToken string `json:"nextPageToken,omitempty"`
	NextPageLink  string `json:"nextPageLink,omitempty"`
	NextSyncToken string `json:"nextSyncToken,omitempty"`
}

func (l RowList) Validate() error {
	return validation.ValidateStruct(&l, validation.Field(&l.Items, validation.NotNil))
}

type FormulaList struct {
	Items         []FormulaReference `json:"items"`
	Href          string             `json:"href,omitempty"`
	NextPageToken string             `json:"nextPageToken,omitempty"`
	NextPageLink  string             `json:"nextPageLink,omitempty"`
}

func (l FormulaList) Validate() error {
	return validation.ValidateStruct(&l, validation.Field(&l.Items, validation.NotNil))
}

type PageContentElementList struct {
	Items []PageContentElement `json:"items"`
	Href  string               `json:"href,omitempty"`
}

// Mutations are applied asynchronously on Coda's end; RequestID can be used with the mutation
// status endpoint.

type DocumentCreationResult struct {
	Doc
	RequestID string `json:"requestId,omitempty"`
}

type DocUpdateResult struct{}

type DocDeleteResult struct{}

type PageCreateResult struct {
	RequestID string `json:"requestId"`
	ID        string `json:"id"`
}

func (r PageCreateResult) Validate() error {
	return validation.ValidateStruct(&r, validation.Field(&r.ID, validation.Required))
}

type PageUpdateResult struct {
	RequestID string `json:"requestId"`
	ID        string `json:"id"`
}

func (r PageUpdateResult) Validate() error {
	return validation.ValidateStruct(&r, validation.Field(&r.ID, validation.Required))
}

type PageDeleteResult struct {
	RequestID string `json:"requestId"`
	ID        string `json:"id"`
}

func (r PageDeleteResult) Validate() error {
	return validation.ValidateStruct(&r, validation.Field(&r.ID, validation.Required))
}

type DeletePageContentResult struct {
	DeletedElementIDs []string `json:"deletedElementIds"`
}

type PushButtonResult struct {
	RequestID string `json:"requestId"`
	RowID     string `json:"rowId"`
	ColumnID  string `json:"columnId"`
}

type RowsUpsertResult struct {
	RequestID   string   `json:"requestId"`
	AddedRowIDs []string `json:"addedRowIds,omitempty"`
}

type RowUpdateResult struct {
	RequestID string `json:"requestId"`
	ID        string `json:"id"`
}

type RowDeleteResult struct {
	RequestID string `json:"requestId"`
	ID        string `json:"id"`
}

type RowsDeleteResult struct {
	RequestID string   `json:"requestId"`
	RowIDs    []string `json:"rowIds"`
}
