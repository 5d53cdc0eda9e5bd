// Package commerce wraps the remote commerce platform's storefront GraphQL
// endpoint behind a small typed client.
package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// AccessTokenHeader carries the storefront access token on every request.
const AccessTokenHeader = "X-Storefront-Access-Token"

// Client posts GraphQL documents to the commerce platform. It does not
// retry; retries, if any, belong to the caller.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

// WithEndpoint overrides the derived GraphQL URL. Used by tests.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if strings.TrimSpace(endpoint) != "" {
			c.endpoint = endpoint
		}
	}
}

// New builds a client for the given store domain, API version, and access
// token. The endpoint is https://{domain}/api/{version}/graphql.json.
func New(storeDomain, apiVersion, accessToken string, opts ...Option) (*Client, error) {
	storeDomain = strings.TrimSpace(storeDomain)
	apiVersion = strings.TrimSpace(apiVersion)
	accessToken = strings.TrimSpace(accessToken)
	if storeDomain == "" {
		return nil, errors.New("commerce store domain is required")
	}
	if apiVersion == "" {
		return nil, errors.New("commerce API version is required")
	}
	if accessToken == "" {
		return nil, errors.New("commerce access token is required")
	}
	c := &Client{
		endpoint: fmt.Sprintf("https://%s/api/%s/graphql.json", storeDomain, apiVersion),
		token:    accessToken,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLEnvelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

// Do executes the document and decodes the data payload into out. A non-2xx
// transport response or a service-level errors payload surfaces as a single
// descriptive error.
func (c *Client) Do(ctx context.Context, query string, variables map[string]any, out any) error {
	if c == nil || c.http == nil {
		return errors.New("commerce client not configured")
	}
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("encode commerce request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build commerce request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(AccessTokenHeader, c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call commerce API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("commerce API error: %s", resp.Status)
	}

	var envelope graphQLEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode commerce response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		return fmt.Errorf("commerce API error: %s", envelope.Errors[0].Message)
	}
	if out == nil {
		return nil
	}
	if len(envelope.Data) == 0 {
		return errors.New("commerce API returned an empty response")
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("decode commerce data: %w", err)
	}
	return nil
}
