package coda

import (
	"fmt"
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/go-querystring/query"
)

// endpoint returns the API endpoint made up of the given path segments, each escaped on its own
// (page and table names may contain spaces or slashes), with opts encoded as the query string.
func (a *API) endpoint(opts any, segments ...string) (*url.URL, error) {
	escaped := make([]string, 0, len(segments))
	for _, s := range segments {
		escaped = append(escaped, escapeSegment(s))
	}

	ep, err := a.resolveEndpoint(strings.Join(escaped, "/"))
	if err != nil {
		return nil, fmt.Errorf("coda: couldn't resolve endpoint: %w", err)
	}

	if opts != nil {
		v, err := query.Values(opts)
		if err != nil {
			return nil, fmt.Errorf("coda: couldn't encode query params: %w", err)
		}
		ep.RawQuery = v.Encode()
	}

	return ep, nil
}

// escapeSegment path-escapes s.  PathEscape leaves "." and ".." alone, and resolving would then
// drop them as dot-segments, so those get percent-encoded too.
func escapeSegment(s string) string {
	if s == "." || s == ".." {
		return strings.ReplaceAll(s, ".", "%2E")
	}
	return url.PathEscape(s)
}

// Do a bit of error checking on endpoint format, and return it relative to the base URI.
func (a *API) resolveEndpoint(endpoint string) (*url.URL, error) {
	baseUri := a.BaseURI

	ref, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("coda: failed to parse endpoint ref: %w", err)
	}

	return baseUri.ResolveReference(ref), nil
}

// requireIDs takes name/value pairs of path parameters and complains about any that are blank.
func requireIDs(op string, pairs ...string) error {
	errs := validation.Errors{}
	for i := 0; i+1 < len(pairs); i += 2 {
		errs[pairs[i]] = validation.Validate(pairs[i+1], validation.Required)
	}
	if err := errs.Filter(); err != nil {
		return &ValidationError{Op: op, Err: err}
	}
	return nil
}

func validateInput(op string, v validation.Validatable) error {
	if err := v.Validate(); err != nil {
		return &ValidationError{Op: op, Err: err}
	}
	return nil
}
