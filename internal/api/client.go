// Package api implements the HTTP client for the BrickBase listings
// backend: token auth plus CRUD on the properties resource.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/GoldCat07/BrickBase-sub000/internal/listing"
)

// Lister is the subset of the client the poller and cache warm-up need.
// Implemented by *Client; fakes implement it in tests.
type Lister interface {
	Listings(ctx context.Context, query ListQuery) ([]listing.Listing, error)
}

var _ Lister = (*Client)(nil)

// Client talks to the BrickBase HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string

	mu    sync.RWMutex // guards token; SetToken may race with in-flight requests
	token string
}

const (
	defaultUserAgent = "brickbase/0.1"
	requestTimeout   = 10 * time.Second
)

// NewClient builds a Client for the given base URL (scheme optional,
// http assumed). token may be empty for the auth endpoints themselves.
func NewClient(base, token string) (*Client, error) {
	parsed, err := parseBaseURL(base)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: parsed,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
		token:     token,
	}, nil
}

// SetToken replaces the bearer token used on subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// User identifies an authenticated agent.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
}

// Session is the token payload returned by login and register.
type Session struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	var session Session
	err := c.do(ctx, http.MethodPost, "/api/auth/login", credentials{email, password}, &session)
	return session, err
}

// Register creates an account and returns its first session.
func (c *Client) Register(ctx context.Context, email, password string) (Session, error) {
	var session Session
	err := c.do(ctx, http.MethodPost, "/api/auth/register", credentials{email, password}, &session)
	return session, err
}

// Me returns the authenticated user.
func (c *Client) Me(ctx context.Context) (User, error) {
	var user User
	err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &user)
	return user, err
}

// ListQuery configures /api/properties filters. Zero values are omitted.
type ListQuery struct {
	MinPrice    float64
	MaxPrice    float64
	Type        string
	Category    string
	CaseType    string
	AgeType     string
	IncludeSold bool
}

// Listings fetches the agent's listings, newest first.
func (c *Client) Listings(ctx context.Context, query ListQuery) ([]listing.Listing, error) {
	values := url.Values{}
	if query.MinPrice > 0 {
		values.Set("min_price", strconv.FormatFloat(query.MinPrice, 'f', -1, 64))
	}
	if query.MaxPrice > 0 {
		values.Set("max_price", strconv.FormatFloat(query.MaxPrice, 'f', -1, 64))
	}
	if t := strings.TrimSpace(query.Type); t != "" {
		values.Set("property_type", t)
	}
	if cat := strings.TrimSpace(query.Category); cat != "" {
		values.Set("property_category", cat)
	}
	if ct := strings.TrimSpace(query.CaseType); ct != "" {
		values.Set("case_type", ct)
	}
	if at := strings.TrimSpace(query.AgeType); at != "" {
		values.Set("age_type", at)
	}
	if query.IncludeSold {
		values.Set("include_sold", "true")
	}
	rel := &url.URL{Path: "/api/properties", RawQuery: values.Encode()}
	var listings []listing.Listing
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

// Create submits a new listing and returns the server's record with its
// assigned id.
func (c *Client) Create(ctx context.Context, payload json.RawMessage) (listing.Listing, error) {
	var created listing.Listing
	err := c.do(ctx, http.MethodPost, "/api/properties", payload, &created)
	return created, err
}

// Get fetches one listing by id.
func (c *Client) Get(ctx context.Context, id string) (listing.Listing, error) {
	var got listing.Listing
	err := c.do(ctx, http.MethodGet, "/api/properties/"+url.PathEscape(id), nil, &got)
	return got, err
}

// Update replaces a listing's attributes.
func (c *Client) Update(ctx context.Context, id string, l listing.Listing) (listing.Listing, error) {
	var updated listing.Listing
	err := c.do(ctx, http.MethodPut, "/api/properties/"+url.PathEscape(id), l, &updated)
	return updated, err
}

// Delete removes a listing.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/properties/"+url.PathEscape(id), nil, nil)
}

// MarkSold marks a whole listing sold, or a single floor when
// floorNumber is non-nil.
func (c *Client) MarkSold(ctx context.Context, id string, floorNumber *int) error {
	rel := &url.URL{Path: "/api/properties/" + url.PathEscape(id) + "/sold"}
	if floorNumber != nil {
		values := url.Values{}
		values.Set("floor_number", strconv.Itoa(*floorNumber))
		rel.RawQuery = values.Encode()
	}
	return c.doURL(ctx, http.MethodPatch, rel, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, method, rel, body, dest)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d: %s", rel.Path, resp.StatusCode, apiDetail(resp.Body))
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// apiDetail extracts the backend's {"detail": "..."} error message.
func apiDetail(body io.Reader) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(io.LimitReader(body, 4096)).Decode(&payload); err != nil {
		return "unknown error"
	}
	if payload.Detail == "" {
		return "unknown error"
	}
	return payload.Detail
}

func parseBaseURL(base string) (*url.URL, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		return nil, fmt.Errorf("api base is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base %q: %w", base, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
