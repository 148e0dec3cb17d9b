package tools

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/toothbrush/coda-tools/coda"
)

type canvasContentParams struct {
	Format  string `json:"format" jsonschema:"enum=html,enum=markdown" jsonschema_description:"Format of the content."`
	Content string `json:"content" jsonschema_description:"The content itself."`
}

func (p canvasContentParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Format, validation.Required, validation.In(coda.FormatHTML, coda.FormatMarkdown)),
	)
}

func (p canvasContentParams) toCoda() coda.PageContent {
	return coda.PageContent{Format: p.Format, Content: p.Content}
}

// pageContentParams is either canvas content or an embedded URL, depending on type.
type pageContentParams struct {
	Type          string               `json:"type" jsonschema:"enum=canvas,enum=embed" jsonschema_description:"canvas for rich text, embed for an embedded URL."`
	CanvasContent *canvasContentParams `json:"canvas_content,omitempty" jsonschema_description:"Content of a canvas page."`
	URL           string               `json:"url,omitempty" jsonschema_description:"URL to embed, for embed pages."`
	RenderMethod  string               `json:"render_method,omitempty" jsonschema:"enum=compatibility,enum=standard" jsonschema_description:"How an embed is rendered."`
}

func (p *pageContentParams) toCoda() *coda.PageContentInit {
	if p == nil {
		return nil
	}
	content := &coda.PageContentInit{Type: p.Type, URL: p.URL, RenderMethod: p.RenderMethod}
	if p.CanvasContent != nil {
		canvas := p.CanvasContent.toCoda()
		content.CanvasContent = &canvas
	}
	return content
}

type pageCreateParams struct {
	Name         string             `json:"name,omitempty" jsonschema_description:"Name of the page."`
	Subtitle     string             `json:"subtitle,omitempty" jsonschema_description:"Subtitle of the page."`
	IconName     string             `json:"icon_name,omitempty" jsonschema_description:"Name of the icon."`
	ImageURL     string             `json:"image_url,omitempty" jsonschema_description:"URL of the cover image."`
	ParentPageID string             `json:"parent_page_id,omitempty" jsonschema_description:"ID of the parent page, to create a subpage."`
	PageContent  *pageContentParams `json:"page_content,omitempty" jsonschema_description:"Initial content of the page."`
}

func (p *pageCreateParams) toCoda() *coda.PageCreate {
	if p == nil {
		return nil
	}
	return &coda.PageCreate{
		Name:         p.Name,
		Subtitle:     p.Subtitle,
		IconName:     p.IconName,
		ImageURL:     p.ImageURL,
		ParentPageID: p.ParentPageID,
		PageContent:  p.PageContent.toCoda(),
	}
}

func (p pageCreateParams) Validate() error {
	return p.toCoda().Validate()
}

type createPageParams struct {
	DocID        string             `json:"doc_id" jsonschema_description:"ID of the doc."`
	Name         string             `json:"name" jsonschema_description:"Name of the page."`
	Subtitle     string             `json:"subtitle,omitempty" jsonschema_description:"Subtitle of the page."`
	IconName     string             `json:"icon_name,omitempty" jsonschema_description:"Name of the icon."`
	ImageURL     string             `json:"image_url,omitempty" jsonschema_description:"URL of the cover image."`
	ParentPageID string             `json:"parent_page_id,omitempty" jsonschema_description:"ID of the parent page, to create a subpage."`
	PageContent  *pageContentParams `json:"page_content,omitempty" jsonschema_description:"Initial content of the page."`
}

func (p createPageParams) toCoda() coda.PageCreate {
	return coda.PageCreate{
		Name:         p.Name,
		Subtitle:     p.Subtitle,
		IconName:     p.IconName,
		ImageURL:     p.ImageURL,
		ParentPageID: p.ParentPageID,
		PageContent:  p.PageContent.toCoda(),
	}
}

func (p createPageParams) Validate() error {
	if err := validation.ValidateStruct(&p,
		validation.Field(&p.DocID, validation.Required),
		validation.Field(&p.Name, validation.Required),
	); err != nil {
		return err
	}
	return p.toCoda().Validate()
}

type listPagesParams struct {
	DocID     string `json:"doc_id" jsonschema_description:"ID of the doc."`
	Limit     int    `json:"limit,omitempty" jsonschema:"minimum=1" jsonschema_description:"Maximum number of results to return."`
	PageToken string `json:"page_token,omitempty" jsonschema_description:"Opaque token from nextPageToken to fetch the next page of results."`
}

func (p listPagesParams) Validate() error {
	return validation.ValidateStruct(&p, validation.Field(&p.DocID, validation.Required))
}

type pageParams struct {
	DocID        string `json:"doc_id" jsonschema_description:"ID of the doc."`
	PageIDOrName string `json:"page_id_or_name" jsonschema_description:"ID or name of the page. IDs are preferred, names may be ambiguous."`
}

func (p pageParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.DocID, validation.Required),
		validation.Field(&p.PageIDOrName, validation.Required),
	)
}

type contentUpdateParams struct {
	InsertionMode string              `json:"insertion_mode" jsonschema:"enum=append,enum=replace" jsonschema_description:"Append to, or replace, the page content."`
	CanvasContent canvasContentParams `json:"canvas_content" jsonschema_description:"The content to insert."`
	ElementID     string              `json:"element_id,omitempty" jsonschema_description:"With append, insert after this element (from list_page_content_elements) instead of at the end."`
}

func (p *contentUpdateParams) toCoda() *coda.PageContentUpdate {
	if p == nil {
		return nil
	}
	return &coda.PageContentUpdate{
		InsertionMode: p.InsertionMode,
		CanvasContent: p.CanvasContent.toCoda(),
		ElementID:     p.ElementID,
	}
}

type updatePageParams struct {
	DocID         string               `json:"doc_id" jsonschema_description:"ID of the doc."`
	PageIDOrName  string               `json:"page_id_or_name" jsonschema_description:"ID or name of the page."`
	Name          string               `json:"name,omitempty" jsonschema_description:"New name of the page."`
	Subtitle      string               `json:"subtitle,omitempty" jsonschema_description:"New subtitle."`
	IconName      string               `json:"icon_name,omitempty" jsonschema_description:"Name of the icon."`
	ImageURL      string               `json:"image_url,omitempty" jsonschema_description:"URL of the cover image."`
	IsHidden      *bool                `json:"is_hidden,omitempty" jsonschema_description:"Hide or unhide the page."`
	ContentUpdate *contentUpdateParams `json:"content_update,omitempty" jsonschema_description:"Content to append or replace."`
}

func (p updatePageParams) toCoda() coda.PageUpdate {
	return coda.PageUpdate{
		Name:          p.Name,
		Subtitle:      p.Subtitle,
		IconName:      p.IconName,
		ImageURL:      p.ImageURL,
		IsHidden:      p.IsHidden,
		ContentUpdate: p.ContentUpdate.toCoda(),
	}
}

func (p updatePageParams) Validate() error {
	if err := (pageParams{DocID: p.DocID, PageIDOrName: p.PageIDOrName}).Validate(); err != nil {
		return err
	}
	return p.toCoda().Validate()
}

type exportParams struct {
	DocID        string `json:"doc_id" jsonschema_description:"ID of the doc."`
	PageIDOrName string `json:"page_id_or_name" jsonschema_description:"ID or name of the page."`
	OutputFormat string `json:"output_format,omitempty" jsonschema:"enum=html,enum=markdown,default=html" jsonschema_description:"Format to export to."`
}

func (p *exportParams) setDefaults() {
	p.OutputFormat = coda.FormatHTML
}

type exportStatusParams struct {
	DocID        string `json:"doc_id" jsonschema_description:"ID of the doc."`
	PageIDOrName string `json:"page_id_or_name" jsonschema_description:"ID or name of the page."`
	RequestID    string `json:"request_id" jsonschema_description:"The id returned by begin_page_content_export."`
}

func (p exportStatusParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.DocID, validation.Required),
		validation.Field(&p.PageIDOrName, validation.Required),
		validation.Field(&p.RequestID, validation.Required),
	)
}

type deleteContentParams struct {
	DocID        string   `json:"doc_id" jsonschema_description:"ID of the doc."`
	PageIDOrName string   `json:"page_id_or_name" jsonschema_description:"ID or name of the page."`
	ElementIDs   []string `json:"element_ids" jsonschema_description:"IDs of the elements to delete, e.g. cl-L80qn4IXoO."`
}

func (p deleteContentParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.DocID, validation.Required),
		validation.Field(&p.PageIDOrName, validation.Required),
		validation.Field(&p.ElementIDs, validation.Required, validation.Each(validation.Required)),
	)
}

func pageTools(api *coda.API) []Tool {
	return []Tool{
		newTool("list_pages",
			"List all pages in a Coda doc with pagination support",
			func(ctx context.Context, p listPagesParams) (any, error) {
				return api.ListPages(ctx, p.DocID, coda.ListPagesQuery{Limit: p.Limit, PageToken: p.PageToken})
			}),
		newTool("get_page",
			"Get detailed metadata about a specific page by its ID or name",
			func(ctx context.Context, p pageParams) (any, error) {
				return api.GetPage(ctx, p.DocID, p.PageIDOrName)
			}),
		newTool("create_page",
			"Create a new page in a Coda doc with optional subtitle, icon, parent page, and initial HTML/markdown content",
			func(ctx context.Context, p createPageParams) (any, error) {
				return api.CreatePage(ctx, p.DocID, p.toCoda())
			}),
		newTool("update_page",
			"Update properties and content of a page including name, subtitle, icon, visibility, and HTML/markdown content. "+
				"To insert after a specific element, pass its ID (from list_page_content_elements) as content_update.element_id",
			func(ctx context.Context, p updatePageParams) (any, error) {
				return api.UpdatePage(ctx, p.DocID, p.PageIDOrName, p.toCoda())
			}),
		newTool("delete_page",
			"Delete a page from a Coda doc by its ID or name",
			func(ctx context.Context, p pageParams) (any, error) {
				return api.DeletePage(ctx, p.DocID, p.PageIDOrName)
			}),
		newTool("begin_page_content_export",
			"Start an async export of page content in HTML or markdown format - "+
				"returns request ID to poll for completion with get_page_content_export_status. "+
				"The request may not be visible on every Coda server straight away: wait 2-3 seconds before polling",
			func(ctx context.Context, p exportParams) (any, error) {
				return api.BeginPageContentExport(ctx, p.DocID, p.PageIDOrName, p.OutputFormat)
			}),
		newTool("get_page_content_export_status",
			"Check status of a page export and auto-download content when ready - "+
				"poll this after starting export with begin_page_content_export. "+
				"A 404 is expected at first: wait 2-3 seconds and retry with exponential backoff. "+
				"While status is inProgress, wait 1-2 seconds and poll again",
			func(ctx context.Context, p exportStatusParams) (any, error) {
				return api.GetPageContentExportStatus(ctx, p.DocID, p.PageIDOrName, p.RequestID)
			}),
		newTool("list_page_content_elements",
			"List all content elements on a page with their element IDs - "+
				"use this to get element IDs for surgical page updates or deletions",
			func(ctx context.Context, p pageParams) (any, error) {
				return api.ListPageContentElements(ctx, p.DocID, p.PageIDOrName)
			}),
		newTool("delete_page_content_elements",
			"Delete specific content elements from a page by their element IDs - "+
				"enables surgical removal without affecting other content like embedded tables/views",
			func(ctx context.Context, p deleteContentParams) (any, error) {
				return api.DeletePageContentElements(ctx, p.DocID, p.PageIDOrName,
					coda.DeletePageContentRequest{ElementIDs: p.ElementIDs})
			}),
	}
}
