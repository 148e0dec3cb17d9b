package tools

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/toothbrush/coda-tools/coda"
)

type listRowsParams struct {
	DocID          string `json:"doc_id" jsonschema_description:"ID of the doc."`
	TableIDOrName  string `json:"table_id_or_name" jsonschema_description:"ID or name of the table."`
	Query          string `json:"query,omitempty" jsonschema_description:"Filter rows, in the form <column_id_or_name>:<value>, e.g. Status:Complete. Quote names and values containing spaces."`
	SortBy         string `json:"sort_by,omitempty" jsonschema:"enum=createdAt,enum=natural,enum=updatedAt" jsonschema_description:"Sort order of the rows."`
	UseColumnNames *bool  `json:"use_column_names,omitempty" jsonschema_description:"Key values by column name instead of column ID."`
	ValueFormat    string `json:"value_format,omitempty" jsonschema:"enum=simple,enum=simpleWithArrays,enum=rich" jsonschema_description:"Format of the cell values."`
	VisibleOnly    *bool  `json:"visible_only,omitempty" jsonschema_description:"Only return visible rows and columns."`
	Limit          int    `json:"limit,omitempty" jsonschema:"minimum=1" jsonschema_description:"Maximum number of results to return."`
	PageToken      string `json:"page_token,omitempty" jsonschema_description:"Opaque token from nextPageToken to fetch the next page of results."`
	SyncToken      string `json:"sync_token,omitempty" jsonschema_description:"Token from nextSyncToken, to only get rows changed since."`
}

func (p listRowsParams) Validate() error {
	return (tableParams{DocID: p.DocID, TableIDOrName: p.TableIDOrName}).Validate()
}

type rowParams struct {
	DocID         string `json:"doc_id" jsonschema_description:"ID of the doc."`
	TableIDOrName string `json:"table_id_or_name" jsonschema_description:"ID or name of the table."`
	RowIDOrName   string `json:"row_id_or_name" jsonschema_description:"ID or name of the row. Names are the display column value, and may not be unique."`
}

func (p rowParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.DocID, validation.Required),
		validation.Field(&p.TableIDOrName, validation.Required),
		validation.Field(&p.RowIDOrName, validation.Required),
	)
}

type getRowParams struct {
	DocID          string `json:"doc_id" jsonschema_description:"ID of the doc."`
	TableIDOrName  string `json:"table_id_or_name" jsonschema_description:"ID or name of the table."`
	RowIDOrName    string `json:"row_id_or_name" jsonschema_description:"ID or name of the row."`
	UseColumnNames *bool  `json:"use_column_names,omitempty" jsonschema_description:"Key values by column name instead of column ID."`
	ValueFormat    string `json:"value_format,omitempty" jsonschema:"enum=simple,enum=simpleWithArrays,enum=rich" jsonschema_description:"Format of the cell values."`
}

func (p getRowParams) Validate() error {
	return (rowParams{DocID: p.DocID, TableIDOrName: p.TableIDOrName, RowIDOrName: p.RowIDOrName}).Validate()
}

type upsertRowsParams struct {
	DocID          string         `json:"doc_id" jsonschema_description:"ID of the doc."`
	TableIDOrName  string         `json:"table_id_or_name" jsonschema_description:"ID or name of the table. Must be a base table, not a view."`
	RowsData       []coda.RowEdit `json:"rows_data" jsonschema_description:"Rows to insert or update, each a list of cells {column, value}."`
	KeyColumns     []string       `json:"key_columns,omitempty" jsonschema_description:"Columns to match existing rows on; matching rows are updated instead of added."`
	DisableParsing *bool          `json:"disable_parsing,omitempty" jsonschema_description:"Store values as-is, without parsing them (e.g. as links or dates)."`
}

func (p upsertRowsParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.DocID, validation.Required),
		validation.Field(&p.TableIDOrName, validation.Required),
		validation.Field(&p.RowsData, validation.Required),
	)
}

type updateRowParams struct {
	DocID          string       `json:"doc_id" jsonschema_description:"ID of the doc."`
	TableIDOrName  string       `json:"table_id_or_name" jsonschema_description:"ID or name of the table."`
	RowIDOrName    string       `json:"row_id_or_name" jsonschema_description:"ID or name of the row."`
	Row            coda.RowEdit `json:"row" jsonschema_description:"The cells to change, each {column, value}."`
	DisableParsing *bool        `json:"disable_parsing,omitempty" jsonschema_description:"Store values as-is, without parsing them."`
}

func (p updateRowParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.DocID, validation.Required),
		validation.Field(&p.TableIDOrName, validation.Required),
		validation.Field(&p.RowIDOrName, validation.Required),
		validation.Field(&p.Row),
	)
}

type deleteRowsParams struct {
	DocID         string   `json:"doc_id" jsonschema_description:"ID of the doc."`
	TableIDOrName string   `json:"table_id_or_name" jsonschema_description:"ID or name of the table."`
	RowIDs        []string `json:"row_ids" jsonschema_description:"IDs of the rows to delete."`
}

func (p deleteRowsParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.DocID, validation.Required),
		validation.Field(&p.TableIDOrName, validation.Required),
		validation.Field(&p.RowIDs, validation.Required, validation.Each(validation.Required)),
	)
}

func rowTools(api *coda.API) []Tool {
	return []Tool{
		newTool("list_rows",
			"List rows in a table with optional filtering, sorting, and pagination - returns row data with cell values",
			func(ctx context.Context, p listRowsParams) (any, error) {
				return api.ListRows(ctx, p.DocID, p.TableIDOrName, coda.ListRowsQuery{
					Query:          p.Query,
					SortBy:         p.SortBy,
					UseColumnNames: p.UseColumnNames,
					ValueFormat:    p.ValueFormat,
					VisibleOnly:    p.VisibleOnly,
					Limit:          p.Limit,
					PageToken:      p.PageToken,
					SyncToken:      p.SyncToken,
				})
			}),
		newTool("get_row",
			"Get a specific row from a table by its ID or name with all cell values",
			func(ctx context.Context, p getRowParams) (any, error) {
				return api.GetRow(ctx, p.DocID, p.TableIDOrName, p.RowIDOrName, coda.GetRowQuery{
					UseColumnNames: p.UseColumnNames,
					ValueFormat:    p.ValueFormat,
				})
			}),
		newTool("upsert_rows",
			"Insert new rows or update existing rows in a table based on key columns - ideal for bulk operations",
			func(ctx context.Context, p upsertRowsParams) (any, error) {
				return api.UpsertRows(ctx, p.DocID, p.TableIDOrName,
					coda.RowsUpsertRequest{Rows: p.RowsData, KeyColumns: p.KeyColumns},
					coda.RowWriteQuery{DisableParsing: p.DisableParsing})
			}),
		newTool("update_row",
			"Update cell values in a specific row by its ID or name",
			func(ctx context.Context, p updateRowParams) (any, error) {
				return api.UpdateRow(ctx, p.DocID, p.TableIDOrName, p.RowIDOrName,
					coda.RowUpdateRequest{Row: p.Row},
					coda.RowWriteQuery{DisableParsing: p.DisableParsing})
			}),
		newTool("delete_row",
			"Delete a specific row from a table by its ID or name",
			func(ctx context.Context, p rowParams) (any, error) {
				return api.DeleteRow(ctx, p.DocID, p.TableIDOrName, p.RowIDOrName)
			}),
		newTool("delete_rows",
			"Delete multiple rows from a table at once using a list of row IDs",
			func(ctx context.Context, p deleteRowsParams) (any, error) {
				return api.DeleteRows(ctx, p.DocID, p.TableIDOrName, coda.RowsDeleteRequest{RowIDs: p.RowIDs})
			}),
	}
}
