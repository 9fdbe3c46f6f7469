// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/haierkeys/bitshared-cli/internal/api"
	"github.com/haierkeys/bitshared-cli/internal/dao"
	"github.com/haierkeys/bitshared-cli/internal/domain"
	"github.com/haierkeys/bitshared-cli/internal/service"
	"github.com/haierkeys/bitshared-cli/pkg/code"
	"github.com/haierkeys/bitshared-cli/pkg/storage"
	"github.com/haierkeys/bitshared-cli/pkg/validator"
	"github.com/haierkeys/bitshared-cli/pkg/workerpool"

	"go.uber.org/zap"
)

// App 应用容器，封装所有依赖和服务
type App struct {
	// 基础设施（注入的依赖）
	config *AppConfig
	logger *zap.Logger

	API         *api.Client
	SessionRepo domain.SessionRepository
	Sink        storage.Storager
	Validator   *validator.Validator

	// 并发控制组件
	workerPool *workerpool.Pool

	// Service 层
	Session        service.SessionStore
	CatalogService service.CatalogService
	UserService    service.UserService
	FileTree       service.FileTreeService
	Forum          service.ForumService
	Permission     service.PermissionGate
	AdminService   service.AdminService

	apiOpts []api.Option
	closed  bool
}

// Option App 构造选项
type Option func(*App)

// WithAPIOptions 传递给 API 客户端的选项（测试中注入 http.Client）
func WithAPIOptions(opts ...api.Option) Option {
	return func(a *App) {
		a.apiOpts = append(a.apiOpts, opts...)
	}
}

// NewApp 创建应用容器实例
// 初始化所有依赖并进行依赖注入，随后从仓储恢复登录会话
func NewApp(ctx context.Context, cfg *AppConfig, logger *zap.Logger, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	if err := code.SetGlobalDefaultLang(cfg.App.Lang); err != nil {
		logger.Warn("unsupported language, using default", zap.String("lang", cfg.App.Lang))
	}

	a := &App{config: cfg, logger: logger}
	for _, opt := range opts {
		opt(a)
	}

	client, err := api.NewClient(cfg.GetAPIConfig(), logger, a.apiOpts...)
	if err != nil {
		return nil, err
	}
	a.API = client

	a.SessionRepo, err = dao.NewSessionRepository(cfg.GetSessionDriver(), cfg.GetSessionPath())
	if err != nil {
		return nil, err
	}

	a.Validator, err = validator.New(cfg.App.Lang)
	if err != nil {
		_ = a.SessionRepo.Close()
		return nil, err
	}

	// 存储不可用时仅影响下载
	a.Sink, err = storage.NewClient(cfg.GetStorageConfig())
	if err != nil {
		logger.Warn("download storage unavailable", zap.String("type", cfg.Storage.Type), zap.Error(err))
		a.Sink = nil
	}

	wpConfig := cfg.GetWorkerPoolConfig()
	a.workerPool = workerpool.New(&wpConfig, logger)

	svcConfig := &service.ServiceConfig{
		Lang:            cfg.App.Lang,
		DefaultPageSize: cfg.App.DefaultPageSize,
	}

	// 初始化 Service 层（依赖注入）
	a.Session = service.NewSessionStore(a.SessionRepo, logger)
	a.CatalogService = service.NewCatalogService(a.API, logger)
	a.UserService = service.NewUserService(a.API, a.Session, a.Validator, logger)
	a.FileTree = service.NewFileTreeService(a.API, a.Sink, a.workerPool, logger)
	a.Forum = service.NewForumService(a.API, a.Session, a.Validator, a.Sink, a.workerPool, svcConfig, logger)
	a.Permission = service.NewPermissionGate(a.API, a.Session, logger)
	a.AdminService = service.NewAdminService(a.API, a.Session, a.Validator, svcConfig, logger)

	if _, err := a.Session.Load(ctx); err != nil {
		logger.Warn("restore session failed, starting logged out", zap.Error(err))
	}

	logger.Debug("App container initialized successfully",
		zap.String("baseUrl", a.API.BaseURL()),
		zap.String("sessionDriver", cfg.GetSessionDriver()),
		zap.Int("workerPoolMaxWorkers", wpConfig.MaxWorkers))

	return a, nil
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// WorkerPool 获取 Worker Pool
func (a *App) WorkerPool() *workerpool.Pool {
	return a.workerPool
}

// DefaultShutdownTimeout 默认关闭超时时间
const DefaultShutdownTimeout = 30 * time.Second

// Shutdown 关闭应用容器
// 按顺序关闭：Worker Pool -> 会话仓储
func (a *App) Shutdown(ctx context.Context) error {
	if a.closed {
		return nil
	}
	a.closed = true

	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
	}

	var errs []error
	if a.workerPool != nil {
		if err := a.workerPool.Shutdown(ctx); err != nil {
			a.logger.Warn("Worker pool shutdown error", zap.Error(err))
			errs = append(errs, fmt.Errorf("worker pool shutdown: %w", err))
		}
	}
	if a.SessionRepo != nil {
		if err := a.SessionRepo.Close(); err != nil {
			errs = append(errs, fmt.Errorf("session repository close: %w", err))
		}
	}
	return errors.Join(errs...)
}
