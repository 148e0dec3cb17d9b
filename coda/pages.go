package coda

import (
	"context"
	"fmt"
	"net/http"
)

func (api *API) ListPages(ctx context.Context, docID string, opts ListPagesQuery) (*PageList, error) {
	if err := requireIDs("list_pages", "docId", docID); err != nil {
		return nil, err
	}
	if err := validateInput("list_pages", opts); err != nil {
		return nil, err
	}

	ep, err := api.endpoint(opts, "docs", docID, "pages")
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't get pages endpoint: %w", err)
	}

	pages, err := call[PageList](ctx, api, http.MethodGet, ep, nil)
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't list pages: %w", err)
	}
	return pages, nil
}

func (api *API) GetPage(ctx context.Context, docID, pageIDOrName string) (*Page, error) {
	if err := requireIDs("get_page", "docId", docID, "pageIdOrName", pageIDOrName); err != nil {
		return nil, err
	}

	ep, err := api.endpoint(nil, "docs", docID, "pages", pageIDOrName)
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't get single page endpoint: %w", err)
	}

	page, err := call[Page](ctx, api, http.MethodGet, ep, nil)
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't get page: %w", err)
	}
	return page, nil
}

func (api *API) CreatePage(ctx context.Context, docID string, page PageCreate) (*PageCreateResult, error) {
	if err := requireIDs("create_page", "docId", docID); err != nil {
		return nil, err
	}
	if err := validateInput("create_page", page); err != nil {
		return nil, err
	}

	ep, err := api.endpoint(nil, "docs", docID, "pages")
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't get pages endpoint: %w", err)
	}

	result, err := call[PageCreateResult](ctx, api, http.MethodPost, ep, page)
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't create page: %w", err)
	}
	return result, nil
}

func (api *API) UpdatePage(ctx context.Context, docID, pageIDOrName string, update PageUpdate) (*PageUpdateResult, error) {
	if err := requireIDs("update_page", "docId", docID, "pageIdOrName", pageIDOrName); err != nil {
		return nil, err
	}
	if err := validateInput("update_page", update); err != nil {
		return nil, err
	}

	ep, err := api.endpoint(nil, "docs", docID, "pages", pageIDOrName)
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't get single page endpoint: %w", err)
	}

	result, err := call[PageUpdateResult](ctx, api, http.MethodPut, ep, update)
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't update page: %w", err)
	}
	return result, nil
}

func (api *API) DeletePage(ctx context.Context, docID, pageIDOrName string) (*PageDeleteResult, error) {
	if err := requireIDs("delete_page", "docId", docID, "pageIdOrName", pageIDOrName); err != nil {
		return nil, err
	}

	ep, err := api.endpoint(nil, "docs", docID, "pages", pageIDOrName)
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't get single page endpoint: %w", err)
	}

	result, err := call[PageDeleteResult](ctx, api, http.MethodDelete, ep, nil)
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't delete page: %w", err)
	}
	return result, nil
}
