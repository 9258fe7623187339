package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
)

// TokenSource supplies the bearer token attached to non-anonymous requests.
// The session store satisfies it.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client is the single HTTP entry point to the upstream REST API.
type Client struct {
	baseURL string
	httpc   *http.Client
	tokens  TokenSource
}

func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{},
		tokens:  tokens,
	}
}

// Request describes one upstream call. Body is JSON-encoded unless Form is
// set, in which case the multipart payload is passed through as-is.
// Anonymous skips the bearer token; only login uses it.
type Request struct {
	Method    string
	Path      string
	Query     url.Values
	Body      any
	Form      *Form
	Anonymous bool
}

// envelope is the upstream's uniform response shape.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Do performs the request and decodes the envelope's data field into out
// when out is non-nil. Any non-2xx status returns a *Error carrying the
// parsed body; a non-JSON or empty error body degrades to a generic message
// rather than a parse failure.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	var body io.Reader
	contentType := ""

	switch {
	case req.Form != nil:
		encoded, ct, err := req.Form.encode()
		if err != nil {
			return err
		}
		body = encoded
		contentType = ct
	case req.Body != nil:
		data, err := json.Marshal(req.Body)
		if err != nil {
			return fmt.Errorf("api: encode request body: %w", err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.requestURL(req), body)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("Accept", "application/json")

	if !req.Anonymous {
		if err := c.attachToken(ctx, httpReq); err != nil {
			return err
		}
	}

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", req.Method, req.Path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Best-effort parse of the error shape; garbage in, empty map out.
		parsed := map[string]any{}
		_ = json.Unmarshal(raw, &parsed)
		return newError(resp.StatusCode, parsed)
	}

	if out == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("api: decode response: %w", err)
	}
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("api: decode response data: %w", err)
	}
	return nil
}

// SaveMode routes one payload to the create or update endpoint shape.
type SaveMode int

const (
	ModeCreate SaveMode = iota
	ModeUpdate
)

// Save posts the form to the resource's create endpoint or puts it to the
// update endpoint for id. Updating without an id fails before any network
// call.
func (c *Client) Save(ctx context.Context, resource string, mode SaveMode, id int64, form *Form, out any) error {
	if mode == ModeUpdate {
		if id == 0 {
			return ErrMissingID
		}
		return c.Do(ctx, Request{
			Method: http.MethodPut,
			Path:   fmt.Sprintf("/%s/%d", resource, id),
			Form:   form,
		}, out)
	}

	return c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/" + resource,
		Form:   form,
	}, out)
}

// Download fetches binary content outside the JSON path, attaching the
// bearer token manually. The caller owns the returned body.
func (c *Client) Download(ctx context.Context, path string) (body io.ReadCloser, contentType, filename string, err error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(Request{Path: path}), nil)
	if err != nil {
		return nil, "", "", fmt.Errorf("api: build request: %w", err)
	}
	if err := c.attachToken(ctx, httpReq); err != nil {
		return nil, "", "", err
	}

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return nil, "", "", fmt.Errorf("api: download %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		raw, _ := io.ReadAll(resp.Body)
		parsed := map[string]any{}
		_ = json.Unmarshal(raw, &parsed)
		return nil, "", "", newError(resp.StatusCode, parsed)
	}

	filename = dispositionFilename(resp.Header.Get("Content-Disposition"))
	return resp.Body, resp.Header.Get("Content-Type"), filename, nil
}

func (c *Client) requestURL(req Request) string {
	u := c.baseURL + req.Path
	if len(req.Query) > 0 {
		u += "?" + req.Query.Encode()
	}
	return u
}

func (c *Client) attachToken(ctx context.Context, httpReq *http.Request) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("api: read token: %w", err)
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
	return nil
}

func dispositionFilename(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	return params["filename"]
}
