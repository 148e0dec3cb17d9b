package tools

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/toothbrush/coda-tools/coda"
)

type listTablesParams struct {
	DocID      string   `json:"doc_id" jsonschema_description:"ID of the doc."`
	Limit      int      `json:"limit,omitempty" jsonschema:"minimum=1" jsonschema_description:"Maximum number of results to return."`
	PageToken  string   `json:"page_token,omitempty" jsonschema_description:"Opaque token from nextPageToken to fetch the next page of results."`
	SortBy     string   `json:"sort_by,omitempty" jsonschema:"enum=name" jsonschema_description:"Sort order."`
	TableTypes []string `json:"table_types,omitempty" jsonschema_description:"Kinds of tables to include: table, view."`
}

func (p listTablesParams) Validate() error {
	return validation.ValidateStruct(&p, validation.Field(&p.DocID, validation.Required))
}

type tableParams struct {
	DocID         string `json:"doc_id" jsonschema_description:"ID of the doc."`
	TableIDOrName string `json:"table_id_or_name" jsonschema_description:"ID or name of the table. IDs are preferred, names may change."`
}

func (p tableParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.DocID, validation.Required),
		validation.Field(&p.TableIDOrName, validation.Required),
	)
}

type listColumnsParams struct {
	DocID         string `json:"doc_id" jsonschema_description:"ID of the doc."`
	TableIDOrName string `json:"table_id_or_name" jsonschema_description:"ID or name of the table."`
	Limit         int    `json:"limit,omitempty" jsonschema:"minimum=1" jsonschema_description:"Maximum number of results to return."`
	PageToken     string `json:"page_token,omitempty" jsonschema_description:"Opaque token from nextPageToken to fetch the next page of results."`
	VisibleOnly   *bool  `json:"visible_only,omitempty" jsonschema_description:"Only return columns visible in the table."`
}

func (p listColumnsParams) Validate() error {
	return (tableParams{DocID: p.DocID, TableIDOrName: p.TableIDOrName}).Validate()
}

type columnParams struct {
	DocID          string `json:"doc_id" jsonschema_description:"ID of the doc."`
	TableIDOrName  string `json:"table_id_or_name" jsonschema_description:"ID or name of the table."`
	ColumnIDOrName string `json:"column_id_or_name" jsonschema_description:"ID or name of the column."`
}

func (p columnParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.DocID, validation.Required),
		validation.Field(&p.TableIDOrName, validation.Required),
		validation.Field(&p.ColumnIDOrName, validation.Required),
	)
}

type pushButtonParams struct {
	DocID          string `json:"doc_id" jsonschema_description:"ID of the doc."`
	TableIDOrName  string `json:"table_id_or_name" jsonschema_description:"ID or name of the table."`
	RowIDOrName    string `json:"row_id_or_name" jsonschema_description:"ID or name of the row."`
	ColumnIDOrName string `json:"column_id_or_name" jsonschema_description:"ID or name of the button column."`
}

func (p pushButtonParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.DocID, validation.Required),
		validation.Field(&p.TableIDOrName, validation.Required),
		validation.Field(&p.RowIDOrName, validation.Required),
		validation.Field(&p.ColumnIDOrName, validation.Required),
	)
}

func tableTools(api *coda.API) []Tool {
	return []Tool{
		newTool("list_tables",
			"List all tables and views in a Coda doc with optional filtering and sorting",
			func(ctx context.Context, p listTablesParams) (any, error) {
				return api.ListTables(ctx, p.DocID, coda.ListTablesQuery{
					Limit:      p.Limit,
					PageToken:  p.PageToken,
					SortBy:     p.SortBy,
					TableTypes: p.TableTypes,
				})
			}),
		newTool("get_table",
			"Get detailed information about a specific table including its schema, columns, and metadata",
			func(ctx context.Context, p tableParams) (any, error) {
				return api.GetTable(ctx, p.DocID, p.TableIDOrName)
			}),
		newTool("list_columns",
			"List all columns in a table with their properties, formats, and formulas",
			func(ctx context.Context, p listColumnsParams) (any, error) {
				return api.ListColumns(ctx, p.DocID, p.TableIDOrName, coda.ListColumnsQuery{
					Limit:       p.Limit,
					PageToken:   p.PageToken,
					VisibleOnly: p.VisibleOnly,
				})
			}),
		newTool("get_column",
			"Get detailed information about a specific column including its type, format, and formula",
			func(ctx context.Context, p columnParams) (any, error) {
				return api.GetColumn(ctx, p.DocID, p.TableIDOrName, p.ColumnIDOrName)
			}),
		newTool("push_button",
			"Trigger a button column in a table row to execute its automation or action "+
				"(buttons can run formulas, modify data, or trigger workflows)",
			func(ctx context.Context, p pushButtonParams) (any, error) {
				return api.PushButton(ctx, p.DocID, p.TableIDOrName, p.RowIDOrName, p.ColumnIDOrName)
			}),
	}
}
