package client_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexcite/internal/config"
	"lexcite/pkg/search/client"
)

func TestNewClientValidConfig(t *testing.T) {
	cfg := &config.OpenSearchConfig{
		Host:     "localhost",
		Port:     9200,
		Username: "admin",
		Password: "admin",
		UseSSL:   false,
		Index:    "test-documents",
	}

	// Requires a running OpenSearch instance; skip otherwise.
	c, err := client.NewClient(cfg)
	if err != nil {
		t.Skipf("skipping test - OpenSearch not available: %v", err)
		return
	}

	assert.NotNil(t, c)
	assert.True(t, c.IsHealthy())
	assert.Equal(t, "test-documents", c.GetIndex())
	c.Close()
}

func TestNewClientInvalidConfig(t *testing.T) {
	testCases := []struct {
		name   string
		config *config.OpenSearchConfig
	}{
		{
			name:   "empty host",
			config: &config.OpenSearchConfig{Host: "", Port: 9200, Index: "test"},
		},
		{
			name:   "invalid host",
			config: &config.OpenSearchConfig{Host: "nonexistent-host-12345", Port: 9200, Index: "test"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := client.NewClient(tc.config)
			assert.Error(t, err)
			assert.Nil(t, c)
		})
	}
}

func TestClientHealth(t *testing.T) {
	cfg := &config.OpenSearchConfig{
		Host: "localhost", Port: 9200, Username: "admin", Password: "admin",
		UseSSL: false, Index: "test-documents",
	}

	c, err := client.NewClient(cfg)
	if err != nil {
		t.Skipf("skipping test - OpenSearch not available: %v", err)
		return
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	health, err := c.Health(ctx)
	require.NoError(t, err)
	assert.NotNil(t, health)
	assert.NotEmpty(t, health.ClusterName)
	assert.Contains(t, []string{"green", "yellow", "red"}, health.Status)
}

func TestClientIndexOperations(t *testing.T) {
	cfg := &config.OpenSearchConfig{
		Host: "localhost", Port: 9200, Username: "admin", Password: "admin",
		UseSSL: false, Index: "test-documents-ops",
	}

	c, err := client.NewClient(cfg)
	if err != nil {
		t.Skipf("skipping test - OpenSearch not available: %v", err)
		return
	}
	defer c.Close()

	ctx := context.Background()
	c.DeleteIndex(ctx)

	exists, err := c.IndexExists(ctx)
	require.NoError(t, err)
	assert.False(t, exists)

	mapping := map[string]interface{}{
		"mappings": map[string]interface{}{
			"properties": map[string]interface{}{
				"title": map[string]interface{}{"type": "text"},
			},
		},
	}

	require.NoError(t, c.CreateIndex(ctx, mapping))

	exists, err = c.IndexExists(ctx)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, c.RefreshIndex(ctx))
	require.NoError(t, c.DeleteIndex(ctx))
}
