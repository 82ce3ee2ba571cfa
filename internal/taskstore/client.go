// Package taskstore is the HTTP client for the external task store.
// The store owns persistence; this client only reads task collections
// and requests mutations, and never retries failed mutations itself.
package taskstore

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

	"github.com/sandeepkv93/remindd/internal/metrics"
	"github.com/sandeepkv93/remindd/internal/model"
)

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ListOptions are forwarded to the store; the pipeline re-applies them
// locally, so a store that ignores them still yields correct results.
type ListOptions struct {
	Filter model.Filter
	Sort   model.Sort
	Search string
}

func (o ListOptions) query() url.Values {
	params := url.Values{}
	if o.Filter != "" && o.Filter != model.FilterAll {
		params.Set("filter", string(o.Filter))
	}
	if o.Sort != "" {
		params.Set("sort", string(o.Sort))
	}
	if o.Search != "" {
		params.Set("search", o.Search)
	}
	return params
}

func (c *Client) LoadTasks(ctx context.Context, ownerID string, opts ListOptions) (model.TasksResponse, error) {
	var out model.TasksResponse
	path := fmt.Sprintf("/api/users/%s/tasks", url.PathEscape(ownerID))
	err := c.do(ctx, "load_tasks", http.MethodGet, path, opts.query(), nil, &out)
	return out, err
}

func (c *Client) GetTask(ctx context.Context, ownerID, taskID string) (model.Task, error) {
	var out model.Task
	path := fmt.Sprintf("/api/users/%s/tasks/%s", url.PathEscape(ownerID), url.PathEscape(taskID))
	err := c.do(ctx, "get_task", http.MethodGet, path, nil, nil, &out)
	return out, err
}

func (c *Client) CreateTask(ctx context.Context, ownerID string, in model.TaskCreate) (model.Task, error) {
	var out model.Task
	if err := in.Validate(); err != nil {
		return out, err
	}
	path := fmt.Sprintf("/api/users/%s/tasks", url.PathEscape(ownerID))
	err := c.do(ctx, "create_task", http.MethodPost, path, nil, in, &out)
	return out, err
}

func (c *Client) UpdateTask(ctx context.Context, ownerID, taskID string, in model.TaskUpdate) (model.Task, error) {
	var out model.Task
	if err := in.Validate(); err != nil {
		return out, err
	}
	path := fmt.Sprintf("/api/users/%s/tasks/%s", url.PathEscape(ownerID), url.PathEscape(taskID))
	err := c.do(ctx, "update_task", http.MethodPut, path, nil, in, &out)
	return out, err
}

func (c *Client) DeleteTask(ctx context.Context, ownerID, taskID string) error {
	path := fmt.Sprintf("/api/users/%s/tasks/%s", url.PathEscape(ownerID), url.PathEscape(taskID))
	return c.do(ctx, "delete_task", http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) ToggleCompletion(ctx context.Context, ownerID, taskID string) (model.Task, error) {
	var out model.Task
	path := fmt.Sprintf("/api/users/%s/tasks/%s/complete", url.PathEscape(ownerID), url.PathEscape(taskID))
	err := c.do(ctx, "toggle_completion", http.MethodPatch, path, nil, nil, &out)
	return out, err
}

// countedTasks is the count-keyed envelope the store uses for its
// upcoming and overdue views, unlike the total-keyed list envelope.
type countedTasks struct {
	Tasks []model.Task `json:"tasks"`
	Count int          `json:"count"`
}

func (c *Client) Upcoming(ctx context.Context, ownerID string) (model.TasksResponse, error) {
	var raw countedTasks
	path := fmt.Sprintf("/api/users/%s/tasks/upcoming", url.PathEscape(ownerID))
	if err := c.do(ctx, "upcoming", http.MethodGet, path, nil, nil, &raw); err != nil {
		return model.TasksResponse{}, err
	}
	return model.TasksResponse{Tasks: raw.Tasks, Total: raw.Count}, nil
}

func (c *Client) Overdue(ctx context.Context, ownerID string) (model.TasksResponse, error) {
	var raw countedTasks
	path := fmt.Sprintf("/api/users/%s/tasks/overdue", url.PathEscape(ownerID))
	if err := c.do(ctx, "overdue", http.MethodGet, path, nil, nil, &raw); err != nil {
		return model.TasksResponse{}, err
	}
	return model.TasksResponse{Tasks: raw.Tasks, Total: raw.Count}, nil
}

func (c *Client) Stats(ctx context.Context, ownerID string) (model.TaskStats, error) {
	var out model.TaskStats
	path := fmt.Sprintf("/api/users/%s/tasks/stats", url.PathEscape(ownerID))
	err := c.do(ctx, "stats", http.MethodGet, path, nil, nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, operation, method, path string, params url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.StoreRequests.WithLabelValues(operation, "network_error").Inc()
		return &RequestError{Detail: err.Error(), wrapped: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.StoreRequests.WithLabelValues(operation, "error").Inc()
		return decodeError(resp)
	}
	metrics.StoreRequests.WithLabelValues(operation, "ok").Inc()

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
