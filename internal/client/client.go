package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mediavault/internal/domain/entity"
)

// Filters is the asset list query the client sends.
type Filters struct {
	Search       string
	Tags         []string
	CollectionID string
	SortBy       string
	SortOrder    string
}

func (f Filters) values() url.Values {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if len(f.Tags) > 0 {
		q.Set("tags", strings.Join(f.Tags, ","))
	}
	if f.CollectionID != "" {
		q.Set("collectionId", f.CollectionID)
	}
	if f.SortBy != "" {
		q.Set("sortBy", f.SortBy)
	}
	if f.SortOrder != "" {
		q.Set("sortOrder", f.SortOrder)
	}
	return q
}

// APIError is a non-2xx response.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return e.Message
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken sends token as a bearer credential on every request.
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

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var errBody struct {
			Error string `json:"error"`
			Code  string `json:"code"`
		}
		if json.NewDecoder(resp.Body).Decode(&errBody) == nil {
			apiErr.Message = errBody.Error
			apiErr.Code = errBody.Code
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

type messageResponse struct {
	Message string `json:"message"`
	Deleted *int   `json:"deleted"`
}

func (c *Client) ListAssets(ctx context.Context, filters Filters) ([]entity.Asset, error) {
	var assets []entity.Asset
	if err := c.do(ctx, http.MethodGet, "/api/assets", filters.values(), nil, &assets); err != nil {
		return nil, err
	}
	return assets, nil
}

func (c *Client) GetAsset(ctx context.Context, id string) (*entity.Asset, error) {
	var asset entity.Asset
	if err := c.do(ctx, http.MethodGet, "/api/assets/"+url.PathEscape(id), nil, nil, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

func (c *Client) CreateAsset(ctx context.Context, draft entity.AssetDraft) (*entity.Asset, error) {
	var asset entity.Asset
	if err := c.do(ctx, http.MethodPost, "/api/assets", nil, draft, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

func (c *Client) UpdateAsset(ctx context.Context, id string, patch entity.AssetPatch) (*entity.Asset, error) {
	var asset entity.Asset
	if err := c.do(ctx, http.MethodPut, "/api/assets/"+url.PathEscape(id), nil, patch, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

func (c *Client) DeleteAsset(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/assets/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) BulkUpdateAssets(ctx context.Context, ids []string, patch entity.AssetPatch) ([]entity.Asset, error) {
	if ids == nil {
		ids = []string{}
	}
	body := struct {
		AssetIDs []string          `json:"assetIds"`
		Updates  entity.AssetPatch `json:"updates"`
	}{ids, patch}

	var assets []entity.Asset
	if err := c.do(ctx, http.MethodPatch, "/api/assets/bulk", nil, body, &assets); err != nil {
		return nil, err
	}
	return assets, nil
}

// BulkDeleteAssets returns how many assets the server removed.
func (c *Client) BulkDeleteAssets(ctx context.Context, ids []string) (int, error) {
	if ids == nil {
		ids = []string{}
	}
	body := struct {
		AssetIDs []string `json:"assetIds"`
	}{ids}

	var resp messageResponse
	if err := c.do(ctx, http.MethodPost, "/api/assets/bulk-delete", nil, body, &resp); err != nil {
		return 0, err
	}
	if resp.Deleted == nil {
		return 0, nil
	}
	return *resp.Deleted, nil
}

func (c *Client) ListCollections(ctx context.Context) ([]entity.Collection, error) {
	var collections []entity.Collection
	if err := c.do(ctx, http.MethodGet, "/api/collections", nil, nil, &collections); err != nil {
		return nil, err
	}
	return collections, nil
}

func (c *Client) GetCollection(ctx context.Context, id string) (*entity.CollectionDetail, error) {
	var detail entity.CollectionDetail
	if err := c.do(ctx, http.MethodGet, "/api/collections/"+url.PathEscape(id), nil, nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (c *Client) CreateCollection(ctx context.Context, draft entity.CollectionDraft) (*entity.Collection, error) {
	var collection entity.Collection
	if err := c.do(ctx, http.MethodPost, "/api/collections", nil, draft, &collection); err != nil {
		return nil, err
	}
	return &collection, nil
}

func (c *Client) UpdateCollection(ctx context.Context, id string, patch entity.CollectionPatch) (*entity.Collection, error) {
	var collection entity.Collection
	if err := c.do(ctx, http.MethodPut, "/api/collections/"+url.PathEscape(id), nil, patch, &collection); err != nil {
		return nil, err
	}
	return &collection, nil
}

func (c *Client) DeleteCollection(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/collections/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) ListTags(ctx context.Context) ([]entity.Tag, error) {
	var tags []entity.Tag
	if err := c.do(ctx, http.MethodGet, "/api/tags", nil, nil, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func (c *Client) CreateTag(ctx context.Context, name string) (*entity.Tag, error) {
	body := struct {
		Name string `json:"name"`
	}{name}

	var tag entity.Tag
	if err := c.do(ctx, http.MethodPost, "/api/tags", nil, body, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

func (c *Client) DeleteTag(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tags/"+url.PathEscape(id), nil, nil, nil)
}
