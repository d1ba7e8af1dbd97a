package container

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/garyjia/finance-console/internal/config"
	"github.com/garyjia/finance-console/pkg/database"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 18080},
		Platform: config.PlatformConfig{
			BaseURL:   "http://platform.local/api",
			Timeout:   time.Second,
			RateLimit: 5,
			Burst:     5,
		},
		Auth:     config.AuthConfig{AdminRole: "admin"},
		Database: config.DatabaseConfig{Path: database.MemoryPath, MaxOpenConns: 1},
		Export:   config.ExportConfig{Locale: "en-US"},
	}
}

func TestNewContainer_Validation(t *testing.T) {
	_, err := NewContainer(nil, zap.NewNop())
	assert.Error(t, err)

	_, err = NewContainer(testConfig(), nil)
	assert.Error(t, err)

	bad := testConfig()
	bad.Platform.BaseURL = "not a url"
	_, err = NewContainer(bad, zap.NewNop())
	assert.Error(t, err)
}

func TestContainer_Lifecycle(t *testing.T) {
	c, err := NewContainer(testConfig(), zap.NewNop())
	require.NoError(t, err)

	health := c.Health()
	assert.False(t, health.Overall)
	assert.False(t, c.Ready())

	require.NoError(t, c.Start(context.Background()))
	assert.True(t, c.Ready())
	assert.Error(t, c.Start(context.Background()))

	health = c.Health()
	assert.True(t, health.Overall)
	assert.Equal(t, "http://platform.local/api/v1", health.Components["platform"].Message)
	require.NotNil(t, c.Services())
	assert.NotNil(t, c.Services().Dashboard)
	require.NotNil(t, c.Server())

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	assert.False(t, c.Ready())
	assert.Error(t, c.Start(context.Background()))
}

func TestZapLoggerAdapter(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	adapter := &zapLoggerAdapter{logger: zap.New(core)}

	adapter.Info("Task action performed", "task_id", "T1", 42, "ignored", "dangling")
	adapter.Error("Task action rejected", "error", errors.New("conflict"))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, map[string]interface{}{"task_id": "T1"}, entries[0].ContextMap())
	assert.Equal(t, "conflict", entries[1].ContextMap()["error"])
}
