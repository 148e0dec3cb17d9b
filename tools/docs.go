package tools

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/toothbrush/coda-tools/coda"
)

type noParams struct{}

type docParams struct {
	DocID string `json:"doc_id" jsonschema_description:"ID of the doc."`
}

func (p docParams) Validate() error {
	return validation.ValidateStruct(&p, validation.Field(&p.DocID, validation.Required))
}

type listDocsParams struct {
	IsOwner     *bool  `json:"is_owner,omitempty" jsonschema:"default=true" jsonschema_description:"Show only docs owned by the user."`
	IsPublished *bool  `json:"is_published,omitempty" jsonschema:"default=false" jsonschema_description:"Show only published docs."`
	Query       string `json:"query,omitempty" jsonschema_description:"Search term used to filter down results."`
	SourceDoc   string `json:"source_doc,omitempty" jsonschema_description:"Show only docs copied from the specified doc ID."`
	IsStarred   *bool  `json:"is_starred,omitempty" jsonschema_description:"If true, only starred docs; if false, only docs that are not starred."`
	InGallery   *bool  `json:"in_gallery,omitempty" jsonschema_description:"Show only docs visible within the gallery."`
	WorkspaceID string `json:"workspace_id,omitempty" jsonschema_description:"Show only docs belonging to the given workspace."`
	FolderID    string `json:"folder_id,omitempty" jsonschema_description:"Show only docs belonging to the given folder."`
	Limit       int    `json:"limit,omitempty" jsonschema:"minimum=1" jsonschema_description:"Maximum number of results to return (default 25)."`
	PageToken   string `json:"page_token,omitempty" jsonschema_description:"Opaque token from nextPageToken to fetch the next page of results."`
}

func (p *listDocsParams) setDefaults() {
	p.IsOwner = boolPtr(true)
	p.IsPublished = boolPtr(false)
}

func (p listDocsParams) query() coda.ListDocsQuery {
	return coda.ListDocsQuery{
		IsOwner:     p.IsOwner,
		IsPublished: p.IsPublished,
		Query:       p.Query,
		SourceDoc:   p.SourceDoc,
		IsStarred:   p.IsStarred,
		InGallery:   p.InGallery,
		WorkspaceID: p.WorkspaceID,
		FolderID:    p.FolderID,
		Limit:       p.Limit,
		PageToken:   p.PageToken,
	}
}

type createDocParams struct {
	Title       string            `json:"title" jsonschema_description:"Title of the new doc."`
	SourceDoc   string            `json:"source_doc,omitempty" jsonschema_description:"ID of a doc to copy."`
	Timezone    string            `json:"timezone,omitempty" jsonschema_description:"Timezone for the doc, e.g. 'America/Los_Angeles'."`
	FolderID    string            `json:"folder_id,omitempty" jsonschema_description:"ID of the folder to place the doc in."`
	InitialPage *pageCreateParams `json:"initial_page,omitempty" jsonschema_description:"The first page of the doc."`
}

func (p createDocParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required),
		validation.Field(&p.InitialPage),
	)
}

type updateDocParams struct {
	DocID    string `json:"doc_id" jsonschema_description:"ID of the doc."`
	Title    string `json:"title,omitempty" jsonschema_description:"New title."`
	IconName string `json:"icon_name,omitempty" jsonschema_description:"Name of the icon."`
}

func (p updateDocParams) Validate() error {
	return validation.ValidateStruct(&p, validation.Field(&p.DocID, validation.Required))
}

func docTools(api *coda.API) []Tool {
	return []Tool{
		newTool("whoami",
			"Get information about the current authenticated Coda user including name, email, and scoped token info",
			func(ctx context.Context, _ noParams) (any, error) {
				return api.WhoAmI(ctx)
			}),
		newTool("get_doc_info",
			"Get detailed metadata about a specific Coda doc by its ID",
			func(ctx context.Context, p docParams) (any, error) {
				return api.GetDoc(ctx, p.DocID)
			}),
		newTool("delete_doc",
			"Permanently delete a Coda doc by ID - use with extreme caution as this cannot be undone",
			func(ctx context.Context, p docParams) (any, error) {
				return api.DeleteDoc(ctx, p.DocID)
			}),
		newTool("update_doc",
			"Update properties of a Coda doc including title and icon",
			func(ctx context.Context, p updateDocParams) (any, error) {
				return api.UpdateDoc(ctx, p.DocID, coda.DocUpdate{Title: p.Title, IconName: p.IconName})
			}),
		newTool("list_docs",
			"List Coda docs accessible by the user (defaults to your own unpublished docs) - "+
				"returns docs in reverse chronological order by most recent activity",
			func(ctx context.Context, p listDocsParams) (any, error) {
				return api.ListDocs(ctx, p.query())
			}),
		newTool("create_doc",
			"Create a new Coda doc with optional configuration including title, timezone, "+
				"folder placement, and initial page content",
			func(ctx context.Context, p createDocParams) (any, error) {
				return api.CreateDoc(ctx, coda.DocCreate{
					Title:       p.Title,
					SourceDoc:   p.SourceDoc,
					Timezone:    p.Timezone,
					FolderID:    p.FolderID,
					InitialPage: p.InitialPage.toCoda(),
				})
			}),
	}
}
