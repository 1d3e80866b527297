package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rogerio-castellano/finance-tracker/internal/http/handlers"
)

// ErrSuperseded is returned for a filter request that was overtaken by a newer one.
var ErrSuperseded = errors.New("request superseded by a newer one")

// APIError carries a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("finance api error: %d - %s", e.Status, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
	filters    Latest
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login authenticates and keeps the returned token for later calls.
func (c *Client) Login(ctx context.Context, username, password string) (handlers.LoginResult, error) {
	var res handlers.LoginResult
	err := c.do(ctx, http.MethodPost, "/login", handlers.UserLogin{Username: username, Password: password}, &res)
	if err != nil {
		return res, err
	}
	c.token = res.Token
	return res, nil
}

// Filter runs a listing query. Starting another Filter call while this one is
// in flight cancels it, and it then returns ErrSuperseded.
func (c *Client) Filter(ctx context.Context, params url.Values) (handlers.TransactionsSearchResult, error) {
	ctx, token := c.filters.Begin(ctx)
	defer c.filters.Done(token)

	var res handlers.TransactionsSearchResult
	err := c.do(ctx, http.MethodGet, "/api/transactions?"+params.Encode(), nil, &res)
	if !c.filters.Current(token) {
		return handlers.TransactionsSearchResult{}, ErrSuperseded
	}
	return res, err
}

func (c *Client) CreateTransaction(ctx context.Context, req handlers.TransactionRequest) (int64, error) {
	var res handlers.MessageResult
	if err := c.do(ctx, http.MethodPost, "/api/transactions", req, &res); err != nil {
		return 0, err
	}
	return res.ID, nil
}

func (c *Client) UpdateTransaction(ctx context.Context, id int64, req handlers.TransactionRequest) error {
	return c.do(ctx, http.MethodPut, "/api/transactions/"+strconv.FormatInt(id, 10), req, nil)
}

func (c *Client) DeleteTransaction(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/api/transactions/"+strconv.FormatInt(id, 10), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e handlers.ErrorResult
		raw, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(raw, &e) != nil || e.Message == "" {
			e.Message = strings.TrimSpace(string(raw))
		}
		return &APIError{Status: resp.StatusCode, Message: e.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
