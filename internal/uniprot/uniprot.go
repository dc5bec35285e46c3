// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package uniprot resolves UniProt identifiers to primary accession numbers
// through the UniProtKB REST search endpoint.
package uniprot

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/bioenrich/internal/httputil"
	"github.com/pdiddy/bioenrich/pkg/types"
)

const serviceName = "UniProt"

// errMalformed is wrapped when a 200 response lacks the expected fields.
var errMalformed = errors.New("unexpected response structure")

// Client queries UniProtKB for one identifier at a time.
type Client struct {
	HTTP      *http.Client
	BaseURL   string
	UserAgent string
}

// NewClient builds a client from the accession pipeline configuration.
func NewClient(cfg types.AccessionConfig) *Client {
	cfg = cfg.WithDefaults()
	return &Client{
		HTTP:      httputil.NewClient(cfg.Timeout),
		BaseURL:   cfg.BaseURL,
		UserAgent: cfg.UserAgent,
	}
}

// FetchAccession looks up id and returns the primary accession of the first
// result. Multiple matches are not ranked: the service's first entry wins.
// A 200 with no results is NoMatch. Anything else, including a body that
// does not decode into the expected shape, is TransportError. A blank id is
// NoMatch without a request.
func (c *Client) FetchAccession(ctx context.Context, id string) types.LookupOutcome {
	id = strings.TrimSpace(id)
	if id == "" {
		return types.NoMatch()
	}

	var sr searchResponse
	if err := httputil.GetJSON(ctx, c.HTTP, c.queryURL(id), c.UserAgent, serviceName, &sr); err != nil {
		return types.TransportError(err)
	}

	if sr.Results == nil {
		return types.TransportError(fmt.Errorf("%w: no results field", errMalformed))
	}
	if len(*sr.Results) == 0 {
		return types.NoMatch()
	}

	first := (*sr.Results)[0]
	if first.PrimaryAccession == "" {
		return types.TransportError(fmt.Errorf("%w: first result has no primaryAccession", errMalformed))
	}
	return types.Found(first.PrimaryAccession)
}

// queryURL builds the exact-identifier search restricted to the accession field.
func (c *Client) queryURL(id string) string {
	params := url.Values{
		"query":  {"id:" + id},
		"fields": {"accession"},
		"format": {"json"},
	}
	return c.BaseURL + "?" + params.Encode()
}

// UniProtKB search JSON structures.
type searchResponse struct {
	Results *[]searchEntry `json:"results"`
}

type searchEntry struct {
	PrimaryAccession string `json:"primaryAccession"`
}
