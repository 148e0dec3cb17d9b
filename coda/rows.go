package coda

import (
	"context"
	"fmt"
	"net/http"
)

// ListRows lists rows of a table.  With a SyncToken from a previous listing, only rows changed
// since then come back.
func (api *API) ListRows(ctx context.Context, docID, tableIDOrName string, opts ListRowsQuery) (*RowList, error) {
	if err := requireIDs("list_rows", "docId", docID, "tableIdOrName", tableIDOrName); err != nil {
		return nil, err
	}
	if err := validateInput("list_rows", opts); err != nil {
		return nil, err
	}

	ep, err := api.endpoint(opts, "docs", docID, "tables", tableIDOrName, "rows")
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't get rows endpoint: %w", err)
	}

	rows, err := call[RowList](ctx, api, http.MethodGet, ep, nil)
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't list rows: %w", err)
	}
	return rows, nil
}

func (api *API) GetRow(ctx context.Context, docID, tableIDOrName, rowIDOrName string, opts GetRowQuery) (*Row, error) {
	if err := requireIDs("get_row", "docId", docID, "tableIdOrName", tableIDOrName, "rowIdOrName", rowIDOrName); err != nil {
		return nil, err
	}
	if err := validateInput("get_row", opts); err != nil {
		return nil, err
	}

	ep, err := api.endpoint(opts, "docs", docID, "tables", tableIDOrName, "rows", rowIDOrName)
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't get single row endpoint: %w", err)
	}

	row, err := call[Row](ctx, api, http.MethodGet, ep, nil)
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't get row: %w", err)
	}
	return row, nil
}

// UpsertRows inserts rows, or updates existing ones where KeyColumns match.  Only works on base
// tables, not views.
func (api *API) UpsertRows(ctx context.Context, docID, tableIDOrName string, req RowsUpsertRequest, opts RowWriteQuery) (*RowsUpsertResult, error) {
	if err := requireIDs("upsert_rows", "docId", docID, "tableIdOrName", tableIDOrName); err != nil {
		return nil, err
	}
	if err := validateInput("upsert_rows", req); err != nil {
		return nil, err
	}

	ep, err := api.endpoint(opts, "docs", docID, "tables", tableIDOrName, "rows")
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't get rows endpoint: %w", err)
	}

	result, err := call[RowsUpsertResult](ctx, api, http.MethodPost, ep, req)
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't upsert rows: %w", err)
	}
	return result, nil
}

func (api *API) UpdateRow(ctx context.Context, docID, tableIDOrName, rowIDOrName string, req RowUpdateRequest, opts RowWriteQuery) (*RowUpdateResult, error) {
	if err := requireIDs("update_row", "docId", docID, "tableIdOrName", tableIDOrName, "rowIdOrName", rowIDOrName); err != nil {
		return nil, err
	}
	if err := validateInput("update_row", req); err != nil {
		return nil, err
	}

	ep, err := api.endpoint(opts, "docs", docID, "tables", tableIDOrName, "rows", rowIDOrName)
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't get single row endpoint: %w", err)
	}

	result, err := call[RowUpdateResult](ctx, api, http.MethodPut, ep, req)
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't update row: %w", err)
	}
	return result, nil
}

func (api *API) DeleteRow(ctx context.Context, docID, tableIDOrName, rowIDOrName string) (*RowDeleteResult, error) {
	if err := requireIDs("delete_row", "docId", docID, "tableIdOrName", tableIDOrName, "rowIdOrName", rowIDOrName); err != nil {
		return nil, err
	}

	ep, err := api.endpoint(nil, "docs", docID, "tables", tableIDOrName, "rows", rowIDOrName)
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't get single row endpoint: %w", err)
	}

	result, err := call[RowDeleteResult](ctx, api, http.MethodDelete, ep, nil)
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't delete row: %w", err)
	}
	return result, nil
}

func (api *API) DeleteRows(ctx context.Context, docID, tableIDOrName string, req RowsDeleteRequest) (*RowsDeleteResult, error) {
	if err := requireIDs("delete_rows", "docId", docID, "tableIdOrName", tableIDOrName); err != nil {
		return nil, err
	}
	if err := validateInput("delete_rows", req); err != nil {
		return nil, err
	}

	ep, err := api.endpoint(nil, "docs", docID, "tables", tableIDOrName, "rows")
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't get rows endpoint: %w", err)
	}

	result, err := call[RowsDeleteResult](ctx, api, http.MethodDelete, ep, req)
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't delete rows: %w", err)
	}
	return result, nil
}
