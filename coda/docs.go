package coda

import (
	"context"
	"fmt"
	"net/http"
)

// WhoAmI returns the user the API token belongs to.
func (api *API) WhoAmI(ctx context.Context) (*User, error) {
	ep, err := api.endpoint(nil, "whoami")
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't get whoami endpoint: %w", err)
	}

	user, err := call[User](ctx, api, http.MethodGet, ep, nil)
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't query current user: %w", err)
	}
	return user, nil
}

// ListDocs lists docs the user can access, most recently active first.
func (api *API) ListDocs(ctx context.Context, opts ListDocsQuery) (*DocList, error) {
	if err := validateInput("list_docs", opts); err != nil {
		return nil, err
	}

	ep, err := api.endpoint(opts, "docs")
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't get docs endpoint: %w", err)
	}

	docs, err := call[DocList](ctx, api, http.MethodGet, ep, nil)
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't list docs: %w", err)
	}
	return docs, nil
}

func (api *API) CreateDoc(ctx context.Context, doc DocCreate) (*DocumentCreationResult, error) {
	if err := validateInput("create_doc", doc); err != nil {
		return nil, err
	}

	ep, err := api.endpoint(nil, "docs")
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't get docs endpoint: %w", err)
	}

	created, err := call[DocumentCreationResult](ctx, api, http.MethodPost, ep, doc)
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't create doc: %w", err)
	}
	return created, nil
}

func (api *API) GetDoc(ctx context.Context, docID string) (*Doc, error) {
	if err := requireIDs("get_doc_info", "docId", docID); err != nil {
		return nil, err
	}

	ep, err := api.endpoint(nil, "docs", docID)
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't get doc endpoint: %w", err)
	}

	doc, err := call[Doc](ctx, api, http.MethodGet, ep, nil)
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't get doc: %w", err)
	}
	return doc, nil
}

func (api *API) UpdateDoc(ctx context.Context, docID string, update DocUpdate) (*DocUpdateResult, error) {
	if err := requireIDs("update_doc", "docId", docID); err != nil {
		return nil, err
	}

	ep, err := api.endpoint(nil, "docs", docID)
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't get doc endpoint: %w", err)
	}

	result, err := call[DocUpdateResult](ctx, api, http.MethodPatch, ep, update)
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't update doc: %w", err)
	}
	return result, nil
}

// DeleteDoc deletes a doc for good.  There's no undo.
func (api *API) DeleteDoc(ctx context.Context, docID string) (*DocDeleteResult, error) {
	if err := requireIDs("delete_doc", "docId", docID); err != nil {
		return nil, err
	}

	ep, err := api.endpoint(nil, "docs", docID)
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't get doc endpoint: %w", err)
	}

	result, err := call[DocDeleteResult](ctx, api, http.MethodDelete, ep, nil)
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't delete doc: %w", err)
	}
	return result, nil
}
