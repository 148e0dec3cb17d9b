package coda

import (
	"context"
	"fmt"
	"net/http"
)

// ListFormulas lists the named formulas in a doc.
func (api *API) ListFormulas(ctx context.Context, docID string, opts ListFormulasQuery) (*FormulaList, error) {
	if err := requireIDs("list_formulas", "docId", docID); err != nil {
		return nil, err
	}
	if err := validateInput("list_formulas", opts); err != nil {
		return nil, err
	}

	ep, err := api.endpoint(opts, "docs", docID, "formulas")
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't get formulas endpoint: %w", err)
	}

	formulas, err := call[FormulaList](ctx, api, http.MethodGet, ep, nil)
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't list formulas: %w", err)
	}
	return formulas, nil
}

// GetFormula returns a named formula along with its current value.
func (api *API) GetFormula(ctx context.Context, docID, formulaIDOrName string) (*Formula, error) {
	if err := requireIDs("get_formula", "docId", docID, "formulaIdOrName", formulaIDOrName); err != nil {
		return nil, err
	}

	ep, err := api.endpoint(nil, "docs", docID, "formulas", formulaIDOrName)
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't get single formula endpoint: %w", err)
	}

	formula, err := call[Formula](ctx, api, http.MethodGet, ep, nil)
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't get formula: %w", err)
	}
	return formula, nil
}
