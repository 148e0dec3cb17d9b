package coda

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// DefaultBaseURL is the root of the Coda REST API, v1.
const DefaultBaseURL = "https://coda.io/apis/v1/"

func NewAPI(baseURL string, token string) (*API, error) {
	if token == "" {
		return nil, fmt.Errorf("coda: API token is empty, please set CODA_API_KEY or api-token-cmd")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	// Endpoints are resolved relative to the base, so it needs the trailing slash or the last path
	// element ("v1") gets eaten.
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	u, err := url.ParseRequestURI(baseURL)
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't parse REST API URL: %w", err)
	}

	a := &API{
		BaseURI: u,
		token:   token,
		Logger:  hclog.NewNullLogger(),
	}
	a.Client = &http.Client{}
	a.DownloadClient = &http.Client{}

	return a, nil
}

type API struct {
	// Where the API lives, e.g. https://coda.io/apis/v1/
	BaseURI *url.URL

	// An HTTP client - you can substitute VCR or whatnot.
	Client *http.Client

	// Export download links are pre-signed and live on another host.  They're fetched with this
	// client, never with our bearer token attached.
	DownloadClient *http.Client

	Logger hclog.Logger

	// Auth info
	token string
}
