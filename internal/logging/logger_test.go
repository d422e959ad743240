package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "proteinflip.log")
	logger, err := New("info", path)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("ledger loaded")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.True(t, strings.Contains(out, `"msg":"ledger loaded"`), out)
	assert.False(t, strings.Contains(out, "hidden"), "debug entries are below info")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("chatty", "")
	assert.Error(t, err)
}

func TestForUI_WithoutFileDiscards(t *testing.T) {
	logger, err := ForUI("debug", "")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(-1), "nop logger is never enabled")
}
