package localdump

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/toothbrush/coda-tools/coda"
)

var errExportInProgress = errors.New("localdump: export still in progress")

// NewExportBackOff is the schedule we poll export status on.  Exports usually take a few seconds,
// so there's no sense asking sooner than that.
func NewExportBackOff(maxElapsed time.Duration) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 2 * time.Second
	b.MaxInterval = 15 * time.Second
	b.MaxElapsedTime = maxElapsed
	b.Reset()
	return b
}

// PollExport asks for the status of an export until it completes, fails, or b gives up.  A 404 is
// retried like an in-progress status: the request isn't always visible straight after it was made.
func PollExport(ctx context.Context, api *coda.API, docID, pageIDOrName, requestID string, b backoff.BackOff) (*coda.ExportComplete, error) {
	var complete *coda.ExportComplete

	operation := func() error {
		status, err := api.GetPageContentExportStatus(ctx, docID, pageIDOrName, requestID)
		if err != nil {
			if coda.IsNotFound(err) {
				return err
			}
			return backoff.Permanent(err)
		}

		switch s := status.(type) {
		case *coda.ExportComplete:
			complete = s
			return nil
		case *coda.ExportFailed:
			return backoff.Permanent(fmt.Errorf("localdump: export %s failed: %s", requestID, s.Error))
		default:
			return errExportInProgress
		}
	}

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return nil, fmt.Errorf("localdump: couldn't export page %s: %w", pageIDOrName, err)
	}

	return complete, nil
}

// ExportPage starts an export and waits for its content.
func ExportPage(ctx context.Context, api *coda.API, docID, pageIDOrName, format string, b backoff.BackOff) (*coda.ExportComplete, error) {
	req, err := api.BeginPageContentExport(ctx, docID, pageIDOrName, format)
	if err != nil {
		return nil, fmt.Errorf("localdump: couldn't begin export of %s: %w", pageIDOrName, err)
	}

	return PollExport(ctx, api, docID, pageIDOrName, req.ID, b)
}
