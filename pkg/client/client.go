// Package client implements the GraphQL-over-HTTP wire types and transport
// shared by generated code and the run command.
//
// The package is transport-only: it knows how to POST a query body and decode
// the response envelope, nothing about schemas or code generation.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const defaultMaxBodyBytes = 4 * 1024 * 1024 // 4MB

// Request is the standard GraphQL POST body.
type Request struct {
	Query         string `json:"query"`
	OperationName string `json:"operationName,omitempty"`
	Variables     any    `json:"variables,omitempty"`
}

// Location points into the query document of a failed request.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Error is a single entry of the response "errors" array.
type Error struct {
	Message   string     `json:"message"`
	Locations []Location `json:"locations,omitempty"`
	Path      []any      `json:"path,omitempty"`
}

func (e Error) Error() string {
	if len(e.Path) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Path))
	for _, p := range e.Path {
		parts = append(parts, fmt.Sprint(p))
	}
	return fmt.Sprintf("%s (path: %s)", e.Message, strings.Join(parts, "."))
}

// Errors is the full "errors" array. It satisfies error so callers can return
// it directly when Data is absent or partial.
type Errors []Error

func (es Errors) Error() string {
	msgs := make([]string, 0, len(es))
	for _, e := range es {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

// Response is the GraphQL response envelope. Data is kept raw so callers
// decide the concrete shape (generated response structs, or any for run).
type Response struct {
	Data   json.RawMessage `json:"data"`
	Errors Errors          `json:"errors,omitempty"`
}

// Doer is the subset of *http.Client the transport needs.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client POSTs GraphQL requests to a fixed endpoint.
type Client struct {
	endpoint     string
	httpClient   Doer
	headers      http.Header
	maxBodyBytes int64
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(d Doer) Option {
	return func(c *Client) { c.httpClient = d }
}

// WithHeader adds a header sent on every request.
func WithHeader(key, value string) Option {
	return func(c *Client) { c.headers.Add(key, value) }
}

// WithBearerToken sets the Authorization header.
func WithBearerToken(token string) Option {
	return func(c *Client) { c.headers.Set("Authorization", "Bearer "+token) }
}

// WithMaxBodyBytes bounds how much of a response body is read.
func WithMaxBodyBytes(n int64) Option {
	return func(c *Client) { c.maxBodyBytes = n }
}

// New builds a Client for endpoint.
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:     endpoint,
		httpClient:   http.DefaultClient,
		headers:      http.Header{},
		maxBodyBytes: defaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do executes req and decodes the "data" field into out when out is non-nil.
// A response carrying GraphQL errors returns them as the error; when the
// server also returned partial data, out is still populated.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	envelope, err := c.post(ctx, req)
	if err != nil {
		return err
	}

	if out != nil && len(envelope.Data) > 0 && string(envelope.Data) != "null" {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}

	if len(envelope.Errors) > 0 {
		return envelope.Errors
	}
	return nil
}

// Raw executes req and returns the undecoded response envelope. GraphQL
// errors are reported through the envelope, not the returned error.
func (c *Client) Raw(ctx context.Context, req Request) (Response, error) {
	return c.post(ctx, req)
}

func (c *Client) post(ctx context.Context, req Request) (Response, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return Response{}, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return Response{}, fmt.Errorf("build request: %w", err)
	}
	for k, vs := range c.headers {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes))
	if err != nil {
		return Response{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Response{}, fmt.Errorf("server returned %s: %s", resp.Status, firstLine(body))
	}

	var envelope Response
	if err := json.Unmarshal(body, &envelope); err != nil {
		return Response{}, fmt.Errorf("decode response: %w", err)
	}
	return envelope, nil
}

func firstLine(b []byte) string {
	s := strings.TrimSpace(string(b))
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 200 {
		s = s[:200] + "…"
	}
	return s
}
