package medclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"sync"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
)

// Params holds query parameters for GET requests. Values that are nil or
// render to the empty string are omitted entirely, so callers send "no
// filter" by leaving a value unset.
type Params map[string]any

// UploadFile describes one file part of a multipart upload.
type UploadFile struct {
	Field   string
	Name    string
	Content io.Reader
}

// Client wraps every call to the backend. It attaches the stored bearer
// credential, parses the response envelope regardless of HTTP status, and
// classifies unauthorized responses: the credential is removed, the
// registered on-unauthorized handler runs, and the call fails with the
// ErrUnauthorized sentinel.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore
	logger  Logger
	debug   bool

	mu             sync.Mutex
	onUnauthorized func()
}

// NewClient returns a Client rooted at baseURL reading credentials from
// tokens.
func NewClient(baseURL string, tokens TokenStore) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		tokens:  tokens,
		logger:  defLogger{},
	}
}

func (c *Client) WithLogger(logger Logger) *Client {
	c.logger = logger
	return c
}

// WithHTTPClient swaps the underlying transport. Timeouts live there; this
// layer does not enforce one.
func (c *Client) WithHTTPClient(httpClient *http.Client) *Client {
	if httpClient != nil {
		c.http = httpClient
	}
	return c
}

func (c *Client) WithDebug(debug bool) *Client {
	c.debug = debug
	return c
}

// OnUnauthorized registers the handler invoked after a response is
// classified unauthorized. There is exactly one slot: registering again
// replaces the previous handler. Intentional: one session lifecycle exists
// per application and must be reachable from every call site.
func (c *Client) OnUnauthorized(handler func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = handler
}

// BaseURL returns the backend root this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get issues a GET with cleaned query parameters.
func (c *Client) Get(ctx context.Context, path string, params Params) (*Envelope, error) {
	if query := cleanQuery(params).Encode(); query != "" {
		path = path + "?" + query
	}
	return c.Do(ctx, http.MethodGet, path, nil)
}

func (c *Client) Post(ctx context.Context, path string, body any) (*Envelope, error) {
	return c.Do(ctx, http.MethodPost, path, body)
}

func (c *Client) Put(ctx context.Context, path string, body any) (*Envelope, error) {
	return c.Do(ctx, http.MethodPut, path, body)
}

func (c *Client) Delete(ctx context.Context, path string) (*Envelope, error) {
	return c.Do(ctx, http.MethodDelete, path, nil)
}

// Do issues a JSON request and runs the shared response pipeline.
func (c *Client) Do(ctx context.Context, method, path string, body any) (*Envelope, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "unable to encode request body")
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "unable to build request")
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.roundTrip(req)
}

// Upload issues a multipart POST with the given form fields and files.
func (c *Client) Upload(ctx context.Context, path string, fields map[string]string, files ...UploadFile) (*Envelope, error) {
	buf := &bytes.Buffer{}
	form := multipart.NewWriter(buf)

	for field, value := range fields {
		if err := form.WriteField(field, value); err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "unable to encode form field")
		}
	}

	for _, file := range files {
		part, err := form.CreateFormFile(file.Field, file.Name)
		if err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "unable to create form file")
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "unable to read upload content")
		}
	}

	if err := form.Close(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "unable to finalize multipart body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, buf)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "unable to build upload request")
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	return c.roundTrip(req)
}

func (c *Client) roundTrip(req *http.Request) (*Envelope, error) {
	c.authorize(req)

	// Transport failures propagate unchanged: the caller decides messaging.
	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "unable to read response body")
	}

	env := &Envelope{}
	if err := json.Unmarshal(raw, env); err != nil {
		// Non-JSON body: keep whatever text came back as the message so the
		// status handling below can still surface something useful.
		env = &Envelope{Message: strings.TrimSpace(string(raw))}
	}

	if c.debug {
		c.logger.Debug("%s %s -> %d %s", req.Method, req.URL.Path, res.StatusCode, print.MaybePrettyJSON(env))
	}

	if res.StatusCode == http.StatusUnauthorized || (!env.Success && IsUnauthorizedMessage(env.Message)) {
		c.forceLogout()
		return nil, ErrUnauthorized
	}

	// Application-level failures surface the server message whether they
	// arrive as a non-2xx status or a success:false envelope on a 200.
	if res.StatusCode < 200 || res.StatusCode >= 300 || !env.Success {
		return env, goerrors.New(env.FailureMessage(), goerrors.CategoryOperation).
			WithMetadata(map[string]any{"status": res.StatusCode, "path": req.URL.Path})
	}

	return env, nil
}

func (c *Client) authorize(req *http.Request) {
	if token, ok := c.tokens.Get(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// forceLogout clears the credential and fires the registered handler. Safe
// under concurrent in-flight 401s: removal is idempotent and the handler is
// expected to tolerate repeat invocations.
func (c *Client) forceLogout() {
	if err := c.tokens.Remove(); err != nil {
		c.logger.Warn("unable to clear rejected credential: %v", err)
	}

	c.mu.Lock()
	handler := c.onUnauthorized
	c.mu.Unlock()

	if handler != nil {
		handler()
	}
}

func cleanQuery(params Params) url.Values {
	values := url.Values{}
	for key, value := range params {
		if value == nil {
			continue
		}
		rendered := fmt.Sprintf("%v", value)
		if rendered == "" {
			continue
		}
		values.Set(key, rendered)
	}
	return values
}
