package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "https://www.googleapis.com/drive/v3", cfg.DriveBaseURL)
	assert.Equal(t, "https://oauth2.googleapis.com/token", cfg.TokenURL)
	assert.Equal(t, 100, cfg.ListPageSize)
	assert.Equal(t, 30, cfg.SearchMaxPages)
	assert.Equal(t, 300, cfg.SearchMaxResults)
	assert.Equal(t, 100, cfg.ZipMaxFiles)
	assert.Equal(t, int64(200*1024*1024), cfg.ZipMaxBytes)
	assert.Equal(t, 60*time.Second, cfg.UpstreamTimeout)
}

func TestNew_TestEnvironment(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.ServerHost)
	assert.Zero(t, cfg.ServerPort)
	require.NoError(t, cfg.Validate())
}

func TestNew_DevelopmentReadsEnv(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("PORT", "9999")
	t.Setenv("ROOT_FOLDER_ID", "folder-123")
	t.Setenv("GOOGLE_CLIENT_ID", "cid")
	t.Setenv("GOOGLE_CLIENT_SECRET", "secret")
	t.Setenv("GOOGLE_REFRESH_TOKEN", "refresh")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.ServerPort)
	assert.Equal(t, "folder-123", cfg.RootFolderID)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("ROOT_FOLDER_ID", "")
	t.Setenv("GOOGLE_CLIENT_ID", "cid")
	t.Setenv("GOOGLE_CLIENT_SECRET", "secret")
	t.Setenv("GOOGLE_REFRESH_TOKEN", "refresh")

	cfg, err := New()
	require.NoError(t, err)
	require.Error(t, cfg.Validate())
	assert.Contains(t, cfg.Validate().Error(), "ROOT_FOLDER_ID")

	t.Setenv("ROOT_FOLDER_ID", "folder-123")
	t.Setenv("GOOGLE_REFRESH_TOKEN", "")
	cfg, err = New()
	require.NoError(t, err)
	assert.Error(t, cfg.Validate())
}
