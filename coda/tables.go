package coda

import (
	"context"
	"fmt"
	"net/http"
)

// ListTables lists tables and views in a doc.
func (api *API) ListTables(ctx context.Context, docID string, opts ListTablesQuery) (*TableList, error) {
	if err := requireIDs("list_tables", "docId", docID); err != nil {
		return nil, err
	}
	if err := validateInput("list_tables", opts); err != nil {
		return nil, err
	}

	ep, err := api.endpoint(opts, "docs", docID, "tables")
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't get tables endpoint: %w", err)
	}

	tables, err := call[TableList](ctx, api, http.MethodGet, ep, nil)
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't list tables: %w", err)
	}
	return tables, nil
}

func (api *API) GetTable(ctx context.Context, docID, tableIDOrName string) (*Table, error) {
	if err := requireIDs("get_table", "docId", docID, "tableIdOrName", tableIDOrName); err != nil {
		return nil, err
	}

	ep, err := api.endpoint(nil, "docs", docID, "tables", tableIDOrName)
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't get single table endpoint: %w", err)
	}

	table, err := call[Table](ctx, api, http.MethodGet, ep, nil)
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't get table: %w", err)
	}
	return table, nil
}

func (api *API) ListColumns(ctx context.Context, docID, tableIDOrName string, opts ListColumnsQuery) (*ColumnList, error) {
	if err := requireIDs("list_columns", "docId", docID, "tableIdOrName", tableIDOrName); err != nil {
		return nil, err
	}
	if err := validateInput("list_columns", opts); err != nil {
		return nil, err
	}

	ep, err := api.endpoint(opts, "docs", docID, "tables", tableIDOrName, "columns")
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't get columns endpoint: %w", err)
	}

	columns, err := call[ColumnList](ctx, api, http.MethodGet, ep, nil)
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't list columns: %w", err)
	}
	return columns, nil
}

func (api *API) GetColumn(ctx context.Context, docID, tableIDOrName, columnIDOrName string) (*Column, error) {
	if err := requireIDs("get_column",
		"docId", docID, "tableIdOrName", tableIDOrName, "columnIdOrName", columnIDOrName); err != nil {
		return nil, err
	}

	ep, err := api.endpoint(nil, "docs", docID, "tables", tableIDOrName, "columns", columnIDOrName)
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't get single column endpoint: %w", err)
	}

	column, err := call[Column](ctx, api, http.MethodGet, ep, nil)
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't get column: %w", err)
	}
	return column, nil
}

// PushButton presses the button in the given row and column, as if a user clicked it.
func (api *API) PushButton(ctx context.Context, docID, tableIDOrName, rowIDOrName, columnIDOrName string) (*PushButtonResult, error) {
	if err := requireIDs("push_button",
		"docId", docID, "tableIdOrName", tableIDOrName,
		"rowIdOrName", rowIDOrName, "columnIdOrName", columnIDOrName); err != nil {
		return nil, err
	}

	ep, err := api.endpoint(nil, "docs", docID, "tables", tableIDOrName, "rows", rowIDOrName, "buttons", columnIDOrName)
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't get button endpoint: %w", err)
	}

	result, err := call[PushButtonResult](ctx, api, http.MethodPost, ep, nil)
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't push button: %w", err)
	}
	return result, nil
}
