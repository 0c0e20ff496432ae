package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "http://localhost:8080", config.ServerURL)
	assert.Equal(t, "table", config.Format)
	assert.False(t, config.Quiet)
	assert.Equal(t, 30*time.Second, config.RequestTimeout)
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	config, err := LoadConfig("http://example.com:9090", "json", true, true)
	require.NoError(t, err)

	assert.Equal(t, "http://example.com:9090", config.ServerURL)
	assert.Equal(t, "json", config.Format)
	assert.True(t, config.Quiet)
	assert.True(t, config.NoColor)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("INVOICE_MATCHER_SERVER", "http://envhost:8081")
	t.Setenv("INVOICE_MATCHER_FORMAT", "json")
	t.Setenv("INVOICE_MATCHER_TIMEOUT", "60s")

	config, err := LoadConfig("", "", false, false)
	require.NoError(t, err)

	assert.Equal(t, "http://envhost:8081", config.ServerURL)
	assert.Equal(t, "json", config.Format)
	assert.Equal(t, 60*time.Second, config.RequestTimeout)
}

func TestLoadConfigRejectsBadFormat(t *testing.T) {
	_, err := LoadConfig("", "yaml", false, false)
	assert.Error(t, err)
}

func TestValidateRejectsEmptyServerURL(t *testing.T) {
	config := DefaultConfig()
	config.ServerURL = "   "
	assert.Error(t, config.validate())
}
