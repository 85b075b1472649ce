package wordpress

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
	"time"

	"go.uber.org/zap"
)

const (
	pathCategories = "/wp-json/wp/v2/categories"
	pathTags       = "/wp-json/wp/v2/tags"
	pathPosts      = "/wp-json/wp/v2/posts"
	pathMedia      = "/wp-json/wp/v2/media"
	pathUserPosts  = "/wp-json/custom/v1/user/posts"
)

// Client talks to the upstream WordPress REST API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// New creates an upstream client. timeout bounds each individual call.
func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// CategoryBySlug looks up a category by its slug. Returns (nil, nil) when the
// upstream knows no such category.
func (c *Client) CategoryBySlug(ctx context.Context, slug string) (*Term, error) {
	q := url.Values{"slug": {slug}}
	var terms []Term
	if err := c.do(ctx, http.MethodGet, pathCategories, q, "", nil, &terms, nil); err != nil {
		return nil, err
	}
	if len(terms) == 0 {
		return nil, nil
	}
	return &terms[0], nil
}

// Categories lists upstream categories (up to 100).
func (c *Client) Categories(ctx context.Context) ([]Term, error) {
	q := url.Values{"per_page": {"100"}}
	var terms []Term
	if err := c.do(ctx, http.MethodGet, pathCategories, q, "", nil, &terms, nil); err != nil {
		return nil, err
	}
	return terms, nil
}

// SearchTags runs a fuzzy tag search; callers pick exact matches themselves.
func (c *Client) SearchTags(ctx context.Context, name string) ([]Term, error) {
	q := url.Values{"search": {name}}
	var terms []Term
	if err := c.do(ctx, http.MethodGet, pathTags, q, "", nil, &terms, nil); err != nil {
		return nil, err
	}
	return terms, nil
}

// CreateTag creates a tag with the literal name and returns the new term.
func (c *Client) CreateTag(ctx context.Context, name string) (*Term, error) {
	body := map[string]string{"name": name}
	var term Term
	if err := c.do(ctx, http.MethodPost, pathTags, nil, "", body, &term, nil); err != nil {
		return nil, err
	}
	return &term, nil
}

// CreatePost issues the authenticated post creation call.
func (c *Client) CreatePost(ctx context.Context, token string, payload PostPayload) (*Post, error) {
	var post Post
	if err := c.do(ctx, http.MethodPost, pathPosts, nil, token, payload, &post, nil); err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost issues the authenticated post update call.
func (c *Client) UpdatePost(ctx context.Context, token string, id int, payload PostPayload) (*Post, error) {
	var post Post
	path := fmt.Sprintf("%s/%d", pathPosts, id)
	if err := c.do(ctx, http.MethodPut, path, nil, token, payload, &post, nil); err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPost re-fetches a post by id. token may be empty for public posts.
func (c *Client) GetPost(ctx context.Context, token string, id int) (*Post, error) {
	var post Post
	path := fmt.Sprintf("%s/%d", pathPosts, id)
	if err := c.do(ctx, http.MethodGet, path, nil, token, nil, &post, nil); err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost deletes a post, optionally bypassing trash.
func (c *Client) DeletePost(ctx context.Context, token string, id int, force bool) (*DeleteResult, error) {
	q := url.Values{"force": {strconv.FormatBool(force)}}
	path := fmt.Sprintf("%s/%d", pathPosts, id)
	var result DeleteResult
	if err := c.do(ctx, http.MethodDelete, path, q, token, nil, &result, nil); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListQuery filters the public post listing.
type ListQuery struct {
	Page     int
	PerPage  int
	Category int // 0 = no filter
	Search   string
}

// ListPosts fetches the public post listing plus pagination totals.
func (c *Client) ListPosts(ctx context.Context, lq ListQuery) ([]Post, ListTotals, error) {
	q := url.Values{
		"page":     {strconv.Itoa(max(lq.Page, 1))},
		"per_page": {strconv.Itoa(max(lq.PerPage, 1))},
	}
	if lq.Category > 0 {
		q.Set("categories", strconv.Itoa(lq.Category))
	}
	if lq.Search != "" {
		q.Set("search", lq.Search)
	}

	var posts []Post
	var totals ListTotals
	if err := c.do(ctx, http.MethodGet, pathPosts, q, "", nil, &posts, &totals); err != nil {
		return nil, ListTotals{}, err
	}
	return posts, totals, nil
}

// UserPosts fetches the authenticated author's own posts across statuses.
func (c *Client) UserPosts(ctx context.Context, token string, page, perPage int, status string) ([]Post, ListTotals, error) {
	q := url.Values{
		"page":     {strconv.Itoa(max(page, 1))},
		"per_page": {strconv.Itoa(max(perPage, 1))},
		"status":   {status},
	}
	var out struct {
		Posts []Post `json:"posts"`
		Total int    `json:"total"`
		Pages int    `json:"pages"`
	}
	if err := c.do(ctx, http.MethodGet, pathUserPosts, q, token, nil, &out, nil); err != nil {
		return nil, ListTotals{}, err
	}
	return out.Posts, ListTotals{Total: out.Total, TotalPages: out.Pages}, nil
}

// ListMedia fetches the authenticated user's media library. mediaType is
// "image", "video" or empty.
func (c *Client) ListMedia(ctx context.Context, token string, page, perPage int, mediaType string) ([]MediaItem, ListTotals, error) {
	q := url.Values{
		"page":     {strconv.Itoa(max(page, 1))},
		"per_page": {strconv.Itoa(max(perPage, 1))},
	}
	if mediaType != "" {
		q.Set("media_type", mediaType)
	}
	var items []MediaItem
	var totals ListTotals
	if err := c.do(ctx, http.MethodGet, pathMedia, q, token, nil, &items, &totals); err != nil {
		return nil, ListTotals{}, err
	}
	return items, totals, nil
}

// Ping probes upstream reachability with a minimal taxonomy read.
func (c *Client) Ping(ctx context.Context) error {
	q := url.Values{"per_page": {"1"}}
	var terms []Term
	return c.do(ctx, http.MethodGet, pathCategories, q, "", nil, &terms, nil)
}

// do performs one upstream call. Non-2xx answers come back as *UpstreamError
// with the response body attached verbatim.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, token string, body, out interface{}, totals *ListTotals) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("upstream request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read upstream response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		upErr := newUpstreamError(resp.StatusCode, respBody)
		c.logger.Warn("upstream rejected request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("code", upErr.Code),
		)
		return upErr
	}

	if totals != nil {
		totals.Total, _ = strconv.Atoi(resp.Header.Get("X-WP-Total"))
		totals.TotalPages, _ = strconv.Atoi(resp.Header.Get("X-WP-TotalPages"))
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode upstream response: %w", err)
		}
	}
	return nil
}
