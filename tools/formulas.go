package tools

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/toothbrush/coda-tools/coda"
)

type listFormulasParams struct {
	DocID     string `json:"doc_id" jsonschema_description:"ID of the doc."`
	Limit     int    `json:"limit,omitempty" jsonschema:"minimum=1" jsonschema_description:"Maximum number of results to return."`
	PageToken string `json:"page_token,omitempty" jsonschema_description:"Opaque token from nextPageToken to fetch the next page of results."`
	SortBy    string `json:"sort_by,omitempty" jsonschema:"enum=name" jsonschema_description:"Sort order."`
}

func (p listFormulasParams) Validate() error {
	return validation.ValidateStruct(&p, validation.Field(&p.DocID, validation.Required))
}

type formulaParams struct {
	DocID           string `json:"doc_id" jsonschema_description:"ID of the doc."`
	FormulaIDOrName string `json:"formula_id_or_name" jsonschema_description:"ID or name of the named formula."`
}

func (p formulaParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.DocID, validation.Required),
		validation.Field(&p.FormulaIDOrName, validation.Required),
	)
}

func formulaTools(api *coda.API) []Tool {
	return []Tool{
		newTool("list_formulas",
			"List all named formulas in a Coda doc with their names and IDs",
			func(ctx context.Context, p listFormulasParams) (any, error) {
				return api.ListFormulas(ctx, p.DocID, coda.ListFormulasQuery{
					Limit:     p.Limit,
					PageToken: p.PageToken,
					SortBy:    p.SortBy,
				})
			}),
		newTool("get_formula",
			"Get details about a specific named formula including its computed value",
			func(ctx context.Context, p formulaParams) (any, error) {
				return api.GetFormula(ctx, p.DocID, p.FormulaIDOrName)
			}),
	}
}
