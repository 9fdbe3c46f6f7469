// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/haierkeys/bitshared-cli/internal/api"
	"github.com/haierkeys/bitshared-cli/internal/dao"
	"github.com/haierkeys/bitshared-cli/pkg/logger"
	"github.com/haierkeys/bitshared-cli/pkg/storage"
	"github.com/haierkeys/bitshared-cli/pkg/util"
	"github.com/haierkeys/bitshared-cli/pkg/workerpool"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// AppConfig 应用配置
type AppConfig struct {
	File     string         `yaml:"-"` // 配置文件路径，不序列化
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Session  SessionConfig  `yaml:"session"`
	Storage  storage.Config `yaml:"storage"`
	Transfer TransferConfig `yaml:"transfer"`
	App      AppSettings    `yaml:"app"`
	Tracer   TracerConfig   `yaml:"tracer"`
}

// ServerConfig 后端服务配置
type ServerConfig struct {
	// BaseURL 后端地址
	BaseURL string `yaml:"base-url" default:"http://47.94.122.20:8080/"`
	// Timeout 请求超时，支持格式：30s、2m
	Timeout string `yaml:"timeout" default:"30s"`
}

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别，参见 zapcore.ParseLevel
	Level string `yaml:"level" default:"warn"`
	// File 日志文件路径，为空输出到 stderr
	File string `yaml:"file"`
	// Production 是否启用 JSON 输出
	Production bool `yaml:"production" default:"false"`
}

// SessionConfig 登录会话存储配置
type SessionConfig struct {
	// Driver file 或 sqlite
	Driver string `yaml:"driver" default:"file"`
	// Path 会话文件或数据库路径
	Path string `yaml:"path" default:"storage/session.yaml"`
}

// TransferConfig 上传下载配置
type TransferConfig struct {
	// RateLimit 每秒字节数，支持 512KB、2MB，0 不限速
	RateLimit string `yaml:"rate-limit" default:"0"`
	// UploadConcurrency 批量上传并发数
	UploadConcurrency int `yaml:"upload-concurrency" default:"4"`
}

// AppSettings 应用设置
type AppSettings struct {
	// Lang 提示语言 en / zh_cn
	Lang string `yaml:"lang" default:"en"`
	// DefaultPageSize 评论默认分页大小
	DefaultPageSize int `yaml:"default-page-size" default:"20"`

	// Worker Pool 配置
	WorkerPoolMaxWorkers int `yaml:"worker-pool-max-workers" default:"4"`
	WorkerPoolQueueSize  int `yaml:"worker-pool-queue-size" default:"64"`
}

// TracerConfig 请求追踪配置
type TracerConfig struct {
	// Enabled 是否附带追踪 ID
	Enabled bool `yaml:"enabled" default:"true"`
	// Header 追踪 ID 请求头名称，默认 X-Trace-ID
	Header string `yaml:"header" default:"X-Trace-ID"`
}

// NewDefaultConfig 返回填充默认值的配置
func NewDefaultConfig() (*AppConfig, error) {
	c := new(AppConfig)
	if err := defaults.Set(c); err != nil {
		return nil, errors.Wrap(err, "set default config failed")
	}
	return c, nil
}

// LoadConfig 从文件加载配置
// 返回配置实例和配置文件的绝对路径
func LoadConfig(f string) (*AppConfig, string, error) {
	realpath, err := filepath.Abs(f)
	if err != nil {
		return nil, "", err
	}
	realpath = filepath.Clean(realpath)

	c, err := NewDefaultConfig()
	if err != nil {
		return nil, realpath, err
	}
	c.File = realpath

	file, err := os.ReadFile(realpath)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "read config file failed")
	}

	if err := yaml.Unmarshal(file, c); err != nil {
		return nil, realpath, errors.Wrap(err, "parse config file failed")
	}

	// 只在解析前设置一次默认值，YAML 中显式的 false 不会被默认值覆盖
	return c, realpath, nil
}

// Save 保存配置到文件
func (c *AppConfig) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config failed")
	}

	if err := os.MkdirAll(filepath.Dir(c.File), 0755); err != nil {
		return errors.Wrap(err, "create config dir failed")
	}
	if err := os.WriteFile(c.File, data, 0644); err != nil {
		return errors.Wrap(err, "write config file failed")
	}

	return nil
}

// GetTimeout 请求超时，解析失败时 30 秒
func (c *AppConfig) GetTimeout() time.Duration {
	if d, err := util.ParseDuration(c.Server.Timeout); err == nil && d > 0 {
		return d
	}
	return 30 * time.Second
}

// GetRateLimit 每秒字节数，0 不限速
func (c *AppConfig) GetRateLimit() int64 {
	return util.ParseSize(c.Transfer.RateLimit, 0)
}

// GetWorkerPoolConfig 获取 Worker Pool 配置
func (c *AppConfig) GetWorkerPoolConfig() workerpool.Config {
	cfg := workerpool.DefaultConfig()

	if c.App.WorkerPoolMaxWorkers > 0 {
		cfg.MaxWorkers = c.App.WorkerPoolMaxWorkers
	}
	if c.App.WorkerPoolQueueSize > 0 {
		cfg.QueueSize = c.App.WorkerPoolQueueSize
	}

	return cfg
}

// GetAPIConfig 获取 API 客户端配置
func (c *AppConfig) GetAPIConfig() api.Config {
	return api.Config{
		BaseURL:      c.Server.BaseURL,
		Timeout:      c.GetTimeout(),
		TraceEnabled: c.Tracer.Enabled,
		TraceHeader:  c.Tracer.Header,
		RateLimit:    c.GetRateLimit(),
		UserAgent:    UserAgent(),
	}
}

// GetLoggerConfig 获取日志配置
func (c *AppConfig) GetLoggerConfig() logger.Config {
	return logger.Config{
		Level:      c.Log.Level,
		File:       c.resolve(c.Log.File),
		Production: c.Log.Production,
	}
}

// GetSessionPath 会话路径，相对路径基于配置文件目录
func (c *AppConfig) GetSessionPath() string {
	return c.resolve(c.Session.Path)
}

// GetSessionDriver 会话驱动
func (c *AppConfig) GetSessionDriver() string {
	if c.Session.Driver == "" {
		return dao.DriverFile
	}
	return c.Session.Driver
}

// GetStorageConfig 下载存储配置，本地存储的相对路径基于配置文件目录
func (c *AppConfig) GetStorageConfig() *storage.Config {
	sc := c.Storage
	if sc.Type == storage.LOCAL {
		sc.SavePath = c.resolve(sc.SavePath)
	}
	return &sc
}

// resolve 相对路径基于配置文件所在目录
func (c *AppConfig) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.File == "" {
		return p
	}
	return filepath.Join(filepath.Dir(c.File), p)
}
