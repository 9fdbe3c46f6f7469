package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/haierkeys/bitshared-cli/internal/api/apitest"
	"github.com/haierkeys/bitshared-cli/internal/domain"
	"github.com/haierkeys/bitshared-cli/internal/dto"
	"github.com/haierkeys/bitshared-cli/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	f := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(f, []byte(body), 0644))
	return f
}

func TestLoadConfig_Defaults(t *testing.T) {
	f := writeConfig(t, "server:\n  base-url: http://localhost:8080\n")
	c, abs, err := LoadConfig(f)
	require.NoError(t, err)
	assert.Equal(t, f, abs)

	assert.Equal(t, "http://localhost:8080", c.Server.BaseURL)
	assert.Equal(t, 30*time.Second, c.GetTimeout())
	assert.Equal(t, "warn", c.Log.Level)
	assert.Equal(t, "file", c.GetSessionDriver())
	assert.Equal(t, storage.LOCAL, c.Storage.Type)
	assert.True(t, c.Storage.IsEnabled)
	assert.Equal(t, 4, c.Transfer.UploadConcurrency)
	assert.Equal(t, int64(0), c.GetRateLimit())
	assert.Equal(t, 20, c.App.DefaultPageSize)
	assert.True(t, c.Tracer.Enabled)
	assert.Equal(t, "X-Trace-ID", c.Tracer.Header)

	wp := c.GetWorkerPoolConfig()
	assert.Equal(t, 4, wp.MaxWorkers)
	assert.Equal(t, 64, wp.QueueSize)
}

func TestLoadConfig_Overrides(t *testing.T) {
	f := writeConfig(t, `
server:
  timeout: 5s
transfer:
  rate-limit: 512KB
tracer:
  enabled: false
storage:
  type: localfs
  save-path: out
session:
  driver: sqlite
  path: data/session.db
`)
	c, _, err := LoadConfig(f)
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, c.GetTimeout())
	assert.Equal(t, int64(512*1024), c.GetRateLimit())
	assert.False(t, c.Tracer.Enabled)
	assert.Equal(t, filepath.Join(filepath.Dir(f), "out"), c.GetStorageConfig().SavePath)
	assert.Equal(t, filepath.Join(filepath.Dir(f), "data/session.db"), c.GetSessionPath())

	api := c.GetAPIConfig()
	assert.Equal(t, 5*time.Second, api.Timeout)
	assert.Equal(t, int64(512*1024), api.RateLimit)
}

func TestLoadConfig_Missing(t *testing.T) {
	_, _, err := LoadConfig(filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
}

func TestConfigSave(t *testing.T) {
	f := writeConfig(t, "app:\n  lang: en\n")
	c, _, err := LoadConfig(f)
	require.NoError(t, err)

	c.App.Lang = "zh_cn"
	require.NoError(t, c.Save())

	reloaded, _, err := LoadConfig(f)
	require.NoError(t, err)
	assert.Equal(t, "zh_cn", reloaded.App.Lang)
}

func TestNewApp_WiresServices(t *testing.T) {
	b := apitest.New()
	defer b.Close()
	b.AddUser("alice", "pw", domain.RoleSystemAdmin)

	f := writeConfig(t, "server:\n  base-url: "+b.URL()+"\n")
	c, _, err := LoadConfig(f)
	require.NoError(t, err)

	ctx := context.Background()
	a, err := NewApp(ctx, c, zap.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, a.Sink)
	assert.False(t, a.Session.IsLoggedIn())

	_, err = a.UserService.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	assert.True(t, a.Permission.CanEdit(ctx, 101))
	require.NoError(t, a.Shutdown(ctx))

	// 新容器从会话文件恢复登录状态
	again, err := NewApp(ctx, c, zap.NewNop())
	require.NoError(t, err)
	defer again.Shutdown(ctx)
	assert.True(t, again.Session.IsLoggedIn())
	assert.Equal(t, "alice", again.Session.Current().Username)
}
