package cmd

import (
	"context"
	"os"

	internalApp "github.com/haierkeys/bitshared-cli/internal/app"
	"github.com/haierkeys/bitshared-cli/pkg/fileurl"
	"github.com/haierkeys/bitshared-cli/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// resolveConfig finds the config file, writing the embedded default to
// config/config.yaml when none exists.
// resolveConfig 查找配置文件，不存在时写入内置默认配置
func resolveConfig(path string) (string, error) {
	if len(path) > 0 {
		return path, nil
	}
	for _, candidate := range []string{"config/config-dev.yaml", "config.yaml", "config/config.yaml"} {
		if fileurl.IsExist(candidate) {
			return candidate, nil
		}
	}

	bootstrapLogger.Warn("config file not found, creating default config")
	path = "config/config.yaml"

	if err := fileurl.CreatePath(path, os.ModePerm); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(configDefault), 0644); err != nil {
		return "", err
	}
	bootstrapLogger.Info("config file auto create successfully", zap.String("path", path))
	return path, nil
}

// withApp builds the app container for one command run and shuts it down afterwards
// withApp 为一次命令执行创建应用容器，结束后关闭
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *internalApp.App) error) error {
	path, err := resolveConfig(rootEnv.config)
	if err != nil {
		bootstrapLogger.Error("config file auto create error", zap.Error(err))
		return err
	}

	cfg, realpath, err := internalApp.LoadConfig(path)
	if err != nil {
		bootstrapLogger.Error("config load failed", zap.String("path", realpath), zap.Error(err))
		return err
	}

	lg, err := logger.NewLogger(cfg.GetLoggerConfig())
	if err != nil {
		bootstrapLogger.Error("logger init failed", zap.Error(err))
		return err
	}
	defer lg.Sync()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := internalApp.NewApp(ctx, cfg, lg)
	if err != nil {
		lg.Error("app init failed", zap.Error(err))
		return err
	}
	defer func() {
		if err := a.Shutdown(context.Background()); err != nil {
			lg.Warn("app shutdown error", zap.Error(err))
		}
	}()

	return fn(ctx, a)
}
