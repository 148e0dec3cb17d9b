package coda

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Export states, owned by the service.  complete and failed are terminal.
const (
	ExportStatusInProgress = "inProgress"
	ExportStatusComplete   = "complete"
	ExportStatusFailed     = "failed"
)

// ExportRequest is what starting an export hands back.  Hold on to ID to poll with.
type ExportRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Href   string `json:"href"`
}

func (r ExportRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required),
		validation.Field(&r.Status, validation.Required),
	)
}

// ExportStatus is one observation of an export job.  It is exactly one of *ExportInProgress,
// *ExportComplete or *ExportFailed:
//
//	switch s := status.(type) {
//	case *coda.ExportComplete:
//		fmt.Println(s.Content)
//	case *coda.ExportFailed:
//		return errors.New(s.Error)
//	case *coda.ExportInProgress:
//		// poll again later
//	}
type ExportStatus interface {
	RequestID() string
	State() string
	exportStatus()
}

type exportHeader struct {
	ID   string `json:"id"`
	Href string `json:"href"`
}

func (h exportHeader) RequestID() string { return h.ID }

type ExportInProgress struct {
	exportHeader
}

func (*ExportInProgress) State() string { return ExportStatusInProgress }
func (*ExportInProgress) exportStatus() {}

// ExportComplete carries the exported page.  Content is what was fetched from DownloadLink.
type ExportComplete struct {
	exportHeader
	DownloadLink string
	Content      string
}

func (*ExportComplete) State() string { return ExportStatusComplete }
func (*ExportComplete) exportStatus() {}

// ExportFailed carries the service's error message as-is.
type ExportFailed struct {
	exportHeader
	Error string
}

func (*ExportFailed) State() string { return ExportStatusFailed }
func (*ExportFailed) exportStatus() {}

// exportStatusRecord is the wire form shared by all three variants.
type exportStatusRecord struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	Href         string `json:"href"`
	DownloadLink string `json:"downloadLink,omitempty"`
	Content      string `json:"content,omitempty"`
	Error        string `json:"error,omitempty"`
}

func (s *ExportInProgress) MarshalJSON() ([]byte, error) {
	return json.Marshal(exportStatusRecord{ID: s.ID, Status: ExportStatusInProgress, Href: s.Href})
}

func (s *ExportComplete) MarshalJSON() ([]byte, error) {
	return json.Marshal(exportStatusRecord{
		ID:           s.ID,
		Status:       ExportStatusComplete,
		Href:         s.Href,
		DownloadLink: s.DownloadLink,
		Content:      s.Content,
	})
}

func (s *ExportFailed) MarshalJSON() ([]byte, error) {
	return json.Marshal(exportStatusRecord{ID: s.ID, Status: ExportStatusFailed, Href: s.Href, Error: s.Error})
}

// BeginPageContentExport kicks off an asynchronous export of a page as html or markdown.
//
// The request ID may not be known to every Coda server straight away, so polling it can 404 for
// a few seconds.
func (api *API) BeginPageContentExport(ctx context.Context, docID, pageIDOrName, outputFormat string) (*ExportRequest, error) {
	if err := requireIDs("begin_page_content_export", "docId", docID, "pageIdOrName", pageIDOrName); err != nil {
		return nil, err
	}
	payload := BeginPageContentExportRequest{OutputFormat: outputFormat}
	if err := validateInput("begin_page_content_export", payload); err != nil {
		return nil, err
	}

	ep, err := api.endpoint(nil, "docs", docID, "pages", pageIDOrName, "export")
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't get page export endpoint: %w", err)
	}

	req, err := call[ExportRequest](ctx, api, http.MethodPost, ep, payload)
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't begin page export: %w", err)
	}
	return req, nil
}

// GetPageContentExportStatus polls an export.  Once it's complete the content is downloaded
// straight away (without our credentials, the link is pre-signed) and returned along with the
// status.  Nothing is retried: a 404 comes back as an *APIError for the caller to deal with.
func (api *API) GetPageContentExportStatus(ctx context.Context, docID, pageIDOrName, requestID string) (ExportStatus, error) {
	if err := requireIDs("get_page_content_export_status",
		"docId", docID, "pageIdOrName", pageIDOrName, "requestId", requestID); err != nil {
		return nil, err
	}

	ep, err := api.endpoint(nil, "docs", docID, "pages", pageIDOrName, "export", requestID)
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't get page export status endpoint: %w", err)
	}

	body, err := api.request(ctx, http.MethodGet, ep, nil)
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't get page export status: %w", err)
	}

	var record exportStatusRecord
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, &ShapeError{URL: ep.String(), Err: err}
	}
	if err := validation.ValidateStruct(&record,
		validation.Field(&record.ID, validation.Required),
		validation.Field(&record.Status, validation.Required,
			validation.In(ExportStatusInProgress, ExportStatusComplete, ExportStatusFailed)),
	); err != nil {
		return nil, &ShapeError{URL: ep.String(), Err: err}
	}

	header := exportHeader{ID: record.ID, Href: record.Href}

	switch record.Status {
	case ExportStatusComplete:
		complete := &ExportComplete{exportHeader: header, DownloadLink: record.DownloadLink}
		if record.DownloadLink != "" {
			content, err := api.download(ctx, record.DownloadLink)
			if err != nil {
				return nil, fmt.Errorf("coda: couldn't download exported page content: %w", err)
			}
			complete.Content = content
		}
		return complete, nil
	case ExportStatusFailed:
		return &ExportFailed{exportHeader: header, Error: record.Error}, nil
	default:
		return &ExportInProgress{exportHeader: header}, nil
	}
}
