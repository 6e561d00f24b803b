// Package client wraps the opensearch-go transport used to index and
// query resolved citations.
package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/opensearch-project/opensearch-go/v2"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"

	"lexcite/internal/config"
)

// Client wraps the OpenSearch client with connection pooling and a cached
// health flag.
type Client struct {
	client    *opensearch.Client
	index     string
	isHealthy bool
}

// HealthStatus is the cluster health reported by OpenSearch.
type HealthStatus struct {
	ClusterName   string `json:"cluster_name"`
	Status        string `json:"status"`
	TimedOut      bool   `json:"timed_out"`
	NumberOfNodes int    `json:"number_of_nodes"`
	ActiveShards  int    `json:"active_primary_shards"`
}

// NewClient builds a Client from cfg, pinging the cluster once to seed its
// health flag.
func NewClient(cfg *config.OpenSearchConfig) (*Client, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("opensearch host is required")
	}

	protocol := "http"
	if cfg.UseSSL {
		protocol = "https"
	}
	addr := fmt.Sprintf("%s://%s:%d", protocol, cfg.Host, cfg.Port)

	osConfig := opensearch.Config{
		Addresses: []string{addr},
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: 30 * time.Second,
			IdleConnTimeout:       90 * time.Second,
		},
	}
	if cfg.Username != "" && cfg.Password != "" {
		osConfig.Username = cfg.Username
		osConfig.Password = cfg.Password
	}

	osClient, err := opensearch.NewClient(osConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create opensearch client: %w", err)
	}

	c := &Client{client: osClient, index: cfg.Index}
	if err := c.ping(context.Background()); err != nil {
		return nil, fmt.Errorf("opensearch ping failed: %w", err)
	}
	c.isHealthy = true
	return c, nil
}

// GetClient returns the underlying OpenSearch client.
func (c *Client) GetClient() *opensearch.Client { return c.client }

// GetIndex returns the configured index name.
func (c *Client) GetIndex() string { return c.index }

// IsHealthy returns the last-observed health status.
func (c *Client) IsHealthy() bool { return c.isHealthy }

func (c *Client) ping(ctx context.Context) error {
	req := opensearchapi.InfoRequest{}
	res, err := req.Do(ctx, c.client)
	if err != nil {
		return fmt.Errorf("ping request failed: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("ping failed with status: %s", res.Status())
	}
	return nil
}

// Health returns detailed cluster health, updating the cached flag.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	req := opensearchapi.ClusterHealthRequest{Timeout: 10 * time.Second}
	res, err := req.Do(ctx, c.client)
	if err != nil {
		c.isHealthy = false
		return nil, fmt.Errorf("health check request failed: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		c.isHealthy = false
		return nil, fmt.Errorf("health check failed with status: %s", res.Status())
	}

	var health HealthStatus
	if err := parseResponse(res, &health); err != nil {
		c.isHealthy = false
		return nil, fmt.Errorf("failed to parse health response: %w", err)
	}
	c.isHealthy = health.Status == "green" || health.Status == "yellow"
	return &health, nil
}

// IndexExists reports whether the configured index exists.
func (c *Client) IndexExists(ctx context.Context) (bool, error) {
	req := opensearchapi.IndicesExistsRequest{Index: []string{c.index}}
	res, err := req.Do(ctx, c.client)
	if err != nil {
		return false, fmt.Errorf("index exists check failed: %w", err)
	}
	defer res.Body.Close()
	switch res.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("unexpected status code: %d", res.StatusCode)
	}
}

// CreateIndex creates the index with mapping if it does not already exist.
func (c *Client) CreateIndex(ctx context.Context, mapping map[string]interface{}) error {
	exists, err := c.IndexExists(ctx)
	if err != nil {
		return fmt.Errorf("failed to check if index exists: %w", err)
	}
	if exists {
		return nil
	}

	req := opensearchapi.IndicesCreateRequest{
		Index: c.index,
		Body:  buildRequestBody(mapping),
	}
	res, err := req.Do(ctx, c.client)
	if err != nil {
		return fmt.Errorf("create index request failed: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("create index failed with status: %s", res.Status())
	}
	return nil
}

// DeleteIndex deletes the configured index.
func (c *Client) DeleteIndex(ctx context.Context) error {
	req := opensearchapi.IndicesDeleteRequest{Index: []string{c.index}}
	res, err := req.Do(ctx, c.client)
	if err != nil {
		return fmt.Errorf("delete index request failed: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("delete index failed with status: %s", res.Status())
	}
	return nil
}

// RefreshIndex forces a refresh so just-indexed documents are searchable.
func (c *Client) RefreshIndex(ctx context.Context) error {
	req := opensearchapi.IndicesRefreshRequest{Index: []string{c.index}}
	res, err := req.Do(ctx, c.client)
	if err != nil {
		return fmt.Errorf("refresh index request failed: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("refresh index failed with status: %s", res.Status())
	}
	return nil
}

// Close is a no-op; the underlying opensearch-go client owns no resources
// that require explicit closing.
func (c *Client) Close() error { return nil }
