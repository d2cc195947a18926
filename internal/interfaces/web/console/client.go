// Package console is a programmatic client for the admin site.
// It drives the same workflow as the admin page: load the listing,
// edit a draft, submit it and reload.
package console

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	catalogapp "github.com/edusite/backend/internal/application/catalog"
	"github.com/edusite/backend/internal/interfaces/http/dto"
	"github.com/edusite/backend/internal/interfaces/web/view"
	"go.uber.org/zap"
)

const (
	defaultTimeout  = 10 * time.Second
	maxResponseSize = 4 << 20

	adminPath  = "/admin"
	loginPath  = "/login"
	logoutPath = "/logout"
)

// ErrUnknownProduct is returned by Edit when the listing has no product with that id
var ErrUnknownProduct = errors.New("console: product is not in the listing")

// RequestError is a request the site answered with an unexpected status
type RequestError struct {
	Status  int
	Code    string
	Message string
}

func (e *RequestError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("console: %d %s", e.Status, e.Message)
	}
	return fmt.Sprintf("console: %d %s: %s", e.Status, e.Code, e.Message)
}

// Option configures a Client
type Option func(*Client)

// WithTimeout sets the timeout of every request
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = timeout
	}
}

// WithTransport replaces the HTTP transport
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.http.Transport = rt
	}
}

// WithLogger sets the client logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// Client holds one admin session: the listing it last loaded and the form being edited.
// It is not safe for concurrent use; one request is in flight at a time.
type Client struct {
	baseURL  *url.URL
	http     *http.Client
	logger   *zap.Logger
	products []catalogapp.ProductResponse
	form     *view.Form
}

// New creates a client for the site at baseURL
func New(baseURL string, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("console: invalid base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("console: base URL %q needs a scheme and host", baseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("console: failed to create cookie jar: %w", err)
	}

	c := &Client{
		baseURL: base,
		http: &http.Client{
			Jar:     jar,
			Timeout: defaultTimeout,
			// Redirects are the success signal of every write
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		logger: zap.NewNop(),
		form:   view.NewForm(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SignIn opens an admin session; the cookie is kept for later requests
func (c *Client) SignIn(ctx context.Context, username, password string) error {
	resp, err := c.send(ctx, http.MethodPost, loginPath, url.Values{
		"username": {username},
		"password": {password},
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return readRequestError(resp)
	}
	return nil
}

// SignOut ends the admin session
func (c *Client) SignOut(ctx context.Context) error {
	resp, err := c.send(ctx, http.MethodPost, logoutPath, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusSeeOther {
		return readRequestError(resp)
	}
	return nil
}

// Load fetches the listing and returns the form to viewing
func (c *Client) Load(ctx context.Context) error {
	resp, err := c.send(ctx, http.MethodGet, adminPath, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return readRequestError(resp)
	}

	var envelope struct {
		Data []catalogapp.ProductResponse `json:"data"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&envelope); err != nil {
		return fmt.Errorf("console: failed to decode listing: %w", err)
	}

	c.products = envelope.Data
	c.form.Reset()
	c.logger.Debug("Listing loaded", zap.Int("products", len(c.products)))
	return nil
}

// Reload discards the draft and loads the listing again
func (c *Client) Reload(ctx context.Context) error {
	c.form.Reset()
	return c.Load(ctx)
}

// Products returns the listing of the last load
func (c *Client) Products() []catalogapp.ProductResponse {
	out := make([]catalogapp.ProductResponse, len(c.products))
	copy(out, c.products)
	return out
}

// Edit copies the listed product into the draft
func (c *Client) Edit(id int64) error {
	for _, p := range c.products {
		if p.ID == id {
			c.form.Edit(p)
			return nil
		}
	}
	return fmt.Errorf("%w: %d", ErrUnknownProduct, id)
}

// Change sets one draft field
func (c *Client) Change(field, value string) error {
	return c.form.Change(field, value)
}

// Draft returns a copy of the draft
func (c *Client) Draft() view.Draft {
	return c.form.Draft()
}

// State returns the form state
func (c *Client) State() view.State {
	return c.form.State()
}

// SubmitLabel returns the label the submit button would show
func (c *Client) SubmitLabel() string {
	return c.form.SubmitLabel()
}

// Submit posts the draft and reloads on success.
// On failure the draft and listing are left as they were before the submit.
func (c *Client) Submit(ctx context.Context) error {
	values, err := c.form.Submit()
	if err != nil {
		return err
	}

	if err := c.write(ctx, http.MethodPost, values); err != nil {
		c.form.Fail()
		return err
	}
	return c.Reload(ctx)
}

// Delete removes a product and reloads on success
func (c *Client) Delete(ctx context.Context, id int64) error {
	values := url.Values{view.FieldID: {strconv.FormatInt(id, 10)}}
	if err := c.write(ctx, http.MethodDelete, values); err != nil {
		return err
	}
	return c.Reload(ctx)
}

// write sends a form to the admin endpoint and expects the redirect back to it
func (c *Client) write(ctx context.Context, method string, values url.Values) error {
	resp, err := c.send(ctx, method, adminPath, values)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusSeeOther {
		return readRequestError(resp)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, form url.Values) (*http.Response, error) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, body)
	if err != nil {
		return nil, fmt.Errorf("console: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("console: %s %s failed: %w", method, path, err)
	}
	c.logger.Debug("Request done",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)
	return resp, nil
}

// readRequestError builds a RequestError from the response, using the error envelope when there is one
func readRequestError(resp *http.Response) error {
	reqErr := &RequestError{
		Status:  resp.StatusCode,
		Code:    dto.ErrCodeUnknown,
		Message: http.StatusText(resp.StatusCode),
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return reqErr
	}
	var envelope dto.Response
	if json.Unmarshal(body, &envelope) == nil && envelope.Error != nil {
		reqErr.Code = envelope.Error.Code
		reqErr.Message = envelope.Error.Message
	}
	return reqErr
}
