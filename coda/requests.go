package coda

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// request performs one authenticated call against the API.  payload, when not nil, is sent as the
// JSON body.  Anything but a 2xx comes back as an *APIError.
func (api *API) request(ctx context.Context, method string, url *url.URL, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("coda: couldn't encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url.String(), reqBody)
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't instantiate http request: %w", err)
	}

	req.Header.Add("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+api.token)

	return api.do(req)
}

// download fetches an export's download link.  These links are pre-signed, so no Authorization
// header goes along.
func (api *API) download(ctx context.Context, link string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", fmt.Errorf("coda: couldn't instantiate download request: %w", err)
	}

	client := api.DownloadClient
	if client == nil {
		client = http.DefaultClient
	}

	// the query string carries the link's signature
	logged := *req.URL
	logged.RawQuery = ""

	body, err := api.send(client, req, logged.Redacted())
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (api *API) do(req *http.Request) ([]byte, error) {
	return api.send(api.Client, req, req.URL.Redacted())
}

// send performs req with client.  logURL stands in for the request URL in logs and errors.
func (api *API) send(client *http.Client, req *http.Request, logURL string) ([]byte, error) {
	start := time.Now()

	response, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't perform http request: %w", err)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		response.Body.Close()
		return nil, fmt.Errorf("coda: couldn't read http response body: %w", err)
	}

	if err := response.Body.Close(); err != nil {
		return nil, fmt.Errorf("coda: couldn't close response body: %w", err)
	}

	if api.Logger != nil {
		api.Logger.Debug("http request",
			"method", req.Method,
			"url", logURL,
			"status", response.StatusCode,
			"duration", time.Since(start))
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return body, nil
	}

	return nil, &APIError{
		StatusCode: response.StatusCode,
		Status:     response.Status,
		Method:     req.Method,
		URL:        logURL,
		Body:       string(body),
	}
}

// call runs a request and decodes the response into T, validating it on the way if T knows how.
func call[T any](ctx context.Context, api *API, method string, ep *url.URL, payload any) (*T, error) {
	body, err := api.request(ctx, method, ep, payload)
	if err != nil {
		return nil, err
	}
	return decode[T](ep, body)
}

func decode[T any](ep *url.URL, body []byte) (*T, error) {
	var result T

	// e.g. 202 Accepted on doc deletion comes back with nothing useful.
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &result); err != nil {
			return nil, &ShapeError{URL: ep.String(), Err: err}
		}
	}

	if v, ok := any(result).(validation.Validatable); ok {
		if err := v.Validate(); err != nil {
			return nil, &ShapeError{URL: ep.String(), Err: err}
		}
	}

	return &result, nil
}
