package coda

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// PageContentPlaceholderID is the element ID given to a page whose content came back as one blob
// rather than a list of elements.
const PageContentPlaceholderID = "page-content"

// ListPageContentElements lists the addressable elements of a page's canvas.  Element IDs can be
// used with DeletePageContentElements, or as PageContentUpdate.ElementID to insert after them.
func (api *API) ListPageContentElements(ctx context.Context, docID, pageIDOrName string) (*PageContentElementList, error) {
	if err := requireIDs("list_page_content_elements", "docId", docID, "pageIdOrName", pageIDOrName); err != nil {
		return nil, err
	}

	ep, err := api.endpoint(nil, "docs", docID, "pages", pageIDOrName, "content")
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't get page content endpoint: %w", err)
	}

	body, err := api.request(ctx, http.MethodGet, ep, nil)
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't list page content elements: %w", err)
	}

	elements, err := parseContentElements(body)
	if err != nil {
		return nil, &ShapeError{URL: ep.String(), Err: err}
	}
	return elements, nil
}

// parseContentElements copes with both shapes the content endpoint hands back: a list of items,
// or a single content blob.
func parseContentElements(body []byte) (*PageContentElementList, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}

	list := &PageContentElementList{Items: []PageContentElement{}}
	if href, ok := raw["href"]; ok {
		list.Href = rawString(href)
	}

	if items, ok := raw["items"]; ok {
		var entries []map[string]json.RawMessage
		if err := json.Unmarshal(items, &entries); err != nil {
			return nil, fmt.Errorf("items: %w", err)
		}
		for _, entry := range entries {
			element := PageContentElement{Type: "unknown"}
			if id, ok := entry["id"]; ok {
				element.ID = rawString(id)
			}
			if typ, ok := entry["type"]; ok && !isNull(typ) {
				element.Type = rawString(typ)
			}
			if content, ok := entry["content"]; ok {
				element.Content = rawString(content)
			}
			list.Items = append(list.Items, element)
		}
		return list, nil
	}

	if content, ok := raw["content"]; ok {
		list.Items = append(list.Items, PageContentElement{
			ID:      PageContentPlaceholderID,
			Type:    FormatHTML,
			Content: rawString(content),
		})
	}

	return list, nil
}

// rawString gives the string a JSON value holds, or the JSON text itself if it isn't a string.
// null is "".
func rawString(v json.RawMessage) string {
	if isNull(v) {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	return string(v)
}

func isNull(v json.RawMessage) bool {
	return len(v) == 0 || string(v) == "null"
}

// DeletePageContentElements removes the given elements from a page, leaving everything else (such
// as embedded tables) alone.  The service doesn't echo anything useful, so the result lists the
// IDs that were asked for.
func (api *API) DeletePageContentElements(ctx context.Context, docID, pageIDOrName string, req DeletePageContentRequest) (*DeletePageContentResult, error) {
	if err := requireIDs("delete_page_content_elements", "docId", docID, "pageIdOrName", pageIDOrName); err != nil {
		return nil, err
	}
	if err := validateInput("delete_page_content_elements", req); err != nil {
		return nil, err
	}

	ep, err := api.endpoint(nil, "docs", docID, "pages", pageIDOrName, "content")
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't get page content endpoint: %w", err)
	}

	if _, err := api.request(ctx, http.MethodDelete, ep, req); err != nil {
		return nil, fmt.Errorf("coda: couldn't delete page content elements: %w", err)
	}

	deleted := make([]string, len(req.ElementIDs))
	copy(deleted, req.ElementIDs)
	return &DeletePageContentResult{DeletedElementIDs: deleted}, nil
}
