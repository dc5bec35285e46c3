// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pubmed searches PubMed through the NCBI E-utilities esearch
// endpoint and returns matching PubMed IDs in relevance order.
package pubmed

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/bioenrich/internal/httputil"
	"github.com/pdiddy/bioenrich/pkg/types"
)

const serviceName = "PubMed"

// ErrNoEmail is returned by NewClient when no contact email is configured.
// NCBI asks every E-utilities caller to identify itself with one.
var ErrNoEmail = errors.New("NCBI contact email is not configured")

// Client runs esearch queries against the pubmed database. Its settings are
// fixed at construction and shared by every query in a run.
type Client struct {
	HTTP       *http.Client
	BaseURL    string
	UserAgent  string
	Email      string
	Tool       string
	APIKey     string
	Keyword    string
	MaxResults int
}

// NewClient builds a client from the literature pipeline configuration.
func NewClient(cfg types.LiteratureConfig) (*Client, error) {
	cfg = cfg.WithDefaults()
	if strings.TrimSpace(cfg.Email) == "" {
		return nil, ErrNoEmail
	}
	return &Client{
		HTTP:       httputil.NewClient(cfg.Timeout),
		BaseURL:    cfg.BaseURL,
		UserAgent:  cfg.UserAgent,
		Email:      strings.TrimSpace(cfg.Email),
		Tool:       cfg.Tool,
		APIKey:     cfg.APIKey,
		Keyword:    cfg.Keyword,
		MaxResults: cfg.MaxResults,
	}, nil
}

// Term returns the search term for gene: the gene name ANDed with the
// topical keyword.
func (c *Client) Term(gene string) string {
	gene = strings.TrimSpace(gene)
	if c.Keyword == "" {
		return gene
	}
	return gene + " AND " + c.Keyword
}

// Search returns up to MaxResults PubMed IDs for gene in the order the
// service ranks them. A search with no hits returns an empty slice and no
// error. A failed request, a non-200 status, an undecodable body, or an
// ERROR element in the response is returned as an error.
func (c *Client) Search(ctx context.Context, gene string) ([]string, error) {
	var res eSearchResult
	if err := httputil.GetXML(ctx, c.HTTP, c.queryURL(gene), c.UserAgent, serviceName, &res); err != nil {
		return nil, err
	}
	if msg := strings.TrimSpace(res.Error); msg != "" {
		return nil, fmt.Errorf("%s search for %q: %s", serviceName, gene, msg)
	}

	ids := make([]string, 0, len(res.IDs))
	for _, id := range res.IDs {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (c *Client) queryURL(gene string) string {
	params := url.Values{
		"db":     {"pubmed"},
		"term":   {c.Term(gene)},
		"retmax": {strconv.Itoa(c.MaxResults)},
		"email":  {c.Email},
	}
	if c.Tool != "" {
		params.Set("tool", c.Tool)
	}
	if c.APIKey != "" {
		params.Set("api_key", c.APIKey)
	}
	return c.BaseURL + "?" + params.Encode()
}

// esearch XML structures.
type eSearchResult struct {
	XMLName xml.Name `xml:"eSearchResult"`
	Count   int      `xml:"Count"`
	IDs     []string `xml:"IdList>Id"`
	Error   string   `xml:"ERROR"`
}
