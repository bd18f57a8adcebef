// Package http provides the HTTP transport for the NocoDB API, including
// authentication headers and translation of error responses.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/nocodb-client/pkg/nocodb"
)

// Request represents an API request.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    []byte
	Headers map[string]string
}

// Response represents an API response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client is the low-level HTTP client for a NocoDB endpoint. It issues
// requests with the xc-auth token header and translates 4xx/5xx responses
// into *nocodb.APIError values.
type Client struct {
	baseURL    string
	authToken  string
	userAgent  string
	debug      bool
	logger     nocodb.Logger
	httpClient *retryablehttp.Client
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for debug output.
func WithLogger(logger nocodb.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTimeout sets the underlying HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// WithRetryConfig opts into retries for transient failures. Retries are
// disabled by default; create and bulk operations are not idempotent, so
// enabling retries is the caller's decision.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// NewClient creates a new HTTP client for the given endpoint URL.
func NewClient(baseURL, authToken string, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil

	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		authToken:  authToken,
		userAgent:  "nocodb-client/1.0",
		httpClient: retryClient,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Do executes a request against the API.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	requestURL := c.baseURL
	if req.Path != "" {
		requestURL = nocodb.BuildURL(c.baseURL, req.Path)
	}

	if len(req.Query) > 0 {
		requestURL += "?" + req.Query.Encode()
	}

	var body interface{}
	if req.Body != nil {
		body = req.Body
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, requestURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("xc-auth", c.authToken)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    requestURL,
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status": httpResp.StatusCode,
			"url":    requestURL,
		})
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}

	if httpResp.StatusCode >= http.StatusBadRequest {
		return resp, translateError(httpResp, requestURL, respBody)
	}

	return resp, nil
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body []byte) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body []byte) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Delete issues a DELETE request, optionally with a JSON body.
func (c *Client) Delete(ctx context.Context, path string, body []byte) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path, Body: body})
}

// translateError converts a 4xx/5xx response into an APIError carrying the
// status, reason phrase, request URL, and the server-provided message. The
// message lives in the body's "msg" field; when the body is not JSON the
// raw text is kept instead.
func translateError(resp *http.Response, requestURL string, body []byte) error {
	kind := nocodb.KindClientError
	if resp.StatusCode >= http.StatusInternalServerError {
		kind = nocodb.KindServerError
	}

	apiErr := &nocodb.APIError{
		StatusCode: resp.StatusCode,
		Kind:       kind,
		Reason:     reasonPhrase(resp),
		URL:        requestURL,
	}

	var payload map[string]any

	err := json.Unmarshal(body, &payload)
	if err == nil {
		if msg, ok := payload["msg"].(string); ok {
			apiErr.Message = msg

			return apiErr
		}
	}

	apiErr.Body = string(body)

	return apiErr
}

// reasonPhrase extracts the reason phrase from the status line, coerced to
// valid UTF-8. Falls back to the standard text for the status code.
func reasonPhrase(resp *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason == "" {
		reason = http.StatusText(resp.StatusCode)
	}

	return strings.ToValidUTF8(reason, "�")
}
