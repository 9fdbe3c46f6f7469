// Package api is the typed client of the course-sharing backend.
// It owns no state beyond its configuration.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/haierkeys/bitshared-cli/internal/dto"
	"github.com/haierkeys/bitshared-cli/pkg/code"
	apperrors "github.com/haierkeys/bitshared-cli/pkg/errors"
	"github.com/haierkeys/bitshared-cli/pkg/fileurl"
	"github.com/haierkeys/bitshared-cli/pkg/logger"
	"github.com/juju/ratelimit"
	"go.uber.org/zap"
)

// DefaultTraceHeader 默认追踪请求头
const DefaultTraceHeader = "X-Trace-ID"

// Config API 客户端配置
type Config struct {
	// BaseURL 后端地址，如 http://47.94.122.20:8080/
	BaseURL string
	// Timeout 普通请求超时；流式下载只限制响应头等待时间
	Timeout time.Duration
	// TraceEnabled 是否附带追踪请求头
	TraceEnabled bool
	// TraceHeader 追踪请求头名称
	TraceHeader string
	// RateLimit 上传/下载限速，字节每秒，0 不限速
	RateLimit int64
	// UserAgent 为空时使用 Go 默认值
	UserAgent string
}

// Client 后端 REST 客户端
type Client struct {
	cfg     Config
	baseURL *url.URL
	http    *http.Client
	bucket  *ratelimit.Bucket
	logger  *zap.Logger
}

// Option 配置选项函数类型
type Option func(*Client)

// WithHTTPClient 替换底层 http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// NewClient 创建 API 客户端
func NewClient(cfg Config, lg *zap.Logger, opts ...Option) (*Client, error) {
	base, err := url.Parse(fileurl.PathSuffixCheckAdd(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, code.ErrorInvalidParams.WithDetails("invalid server base-url: " + cfg.BaseURL)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.TraceHeader == "" {
		cfg.TraceHeader = DefaultTraceHeader
	}
	if lg == nil {
		lg = zap.NewNop()
	}

	c := &Client{
		cfg:     cfg,
		baseURL: base,
		http: &http.Client{
			Transport: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				ResponseHeaderTimeout: cfg.Timeout,
				IdleConnTimeout:       90 * time.Second,
			},
		},
		logger: lg,
	}
	if cfg.RateLimit > 0 {
		c.bucket = ratelimit.NewBucketWithRate(float64(cfg.RateLimit), cfg.RateLimit)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL 返回规范化后的后端地址
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// limit wraps r with the shared token bucket when rate limiting is on
func (c *Client) limit(r io.Reader) io.Reader {
	if c.bucket == nil {
		return r
	}
	return ratelimit.Reader(r, c.bucket)
}

// request 描述一次调用
type request struct {
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
	// stream 为 true 时不设置整体超时，由调用方读取响应体
	stream bool
}

func (c *Client) endpoint(p string, q url.Values) string {
	u := c.baseURL.ResolveReference(&url.URL{Path: p})
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// do sends the request. Transport failures become ErrorNetwork; a non-2xx
// status becomes ErrorServer carrying the server message when one decodes.
// The caller owns the returned body.
func (c *Client) do(ctx context.Context, r request) (*http.Response, string, context.CancelFunc, error) {
	cancel := context.CancelFunc(func() {})
	if !r.stream {
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
	}

	traceID := uuid.New().String()
	target := c.endpoint(r.path, r.query)

	req, err := http.NewRequestWithContext(ctx, r.method, target, r.body)
	if err != nil {
		cancel()
		return nil, traceID, nil, apperrors.NewAppError(code.ErrorInvalidParams, err).WithTraceID(traceID)
	}
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	req.Header.Set("Accept", "application/json, */*")
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}
	if c.cfg.TraceEnabled {
		req.Header.Set(c.cfg.TraceHeader, traceID)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		cancel()
		c.logger.Debug("api request failed",
			zap.String(logger.FieldMethod, r.method),
			zap.String(logger.FieldURL, target),
			zap.Duration(logger.FieldDuration, elapsed),
			zap.String(logger.FieldTraceID, traceID),
			zap.Error(err))
		return nil, traceID, nil, apperrors.NewAppError(code.ErrorNetwork, err).WithTraceID(traceID)
	}

	c.logger.Debug("api request",
		zap.String(logger.FieldMethod, r.method),
		zap.String(logger.FieldURL, target),
		zap.Int(logger.FieldStatus, resp.StatusCode),
		zap.Duration(logger.FieldDuration, elapsed),
		zap.String(logger.FieldTraceID, traceID))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		defer cancel()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return nil, traceID, nil, c.statusError(resp.StatusCode, body, traceID)
	}
	return resp, traceID, cancel, nil
}

// statusError 把非 2xx 响应转换为 ErrorServer
func (c *Client) statusError(status int, body []byte, traceID string) error {
	httpErr := &HTTPError{StatusCode: status, Body: string(body)}
	msg := fmt.Sprintf("HTTP %d", status)

	var env dto.Envelope[any]
	if len(body) > 0 && sonic.Unmarshal(body, &env) == nil && env.Message != nil && *env.Message != "" {
		msg = *env.Message
	}
	return apperrors.NewAppError(code.ErrorServer, httpErr).WithDetails(msg).WithTraceID(traceID)
}

// call 发送请求并把响应体解码到 out
func (c *Client) call(ctx context.Context, r request, out any) error {
	resp, traceID, cancel, err := c.do(ctx, r)
	if err != nil {
		return err
	}
	defer cancel()
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.NewAppError(code.ErrorNetwork, err).WithTraceID(traceID)
	}
	if err := sonic.Unmarshal(body, out); err != nil {
		return apperrors.NewAppError(code.ErrorDecode, err).WithTraceID(traceID)
	}
	return nil
}

// callEnvelope decodes an enveloped response and returns the payload.
// success:false becomes ErrorServer with the server message as detail.
func callEnvelope[T any](ctx context.Context, c *Client, r request) (*T, string, error) {
	var env dto.Envelope[T]
	if err := c.call(ctx, r, &env); err != nil {
		return nil, "", err
	}
	if !env.Success {
		return nil, "", apperrors.NewAppError(code.ErrorServer, nil).WithDetails(env.Msg(code.ErrorServer.Msg()))
	}
	return env.Data, env.Msg(""), nil
}

// callEnvelopeData is callEnvelope for endpoints whose payload must be present
func callEnvelopeData[T any](ctx context.Context, c *Client, r request) (*T, error) {
	data, _, err := callEnvelope[T](ctx, c, r)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, apperrors.NewAppError(code.ErrorDecode, nil).WithDetails("response data is null")
	}
	return data, nil
}

func jsonBody(v any) (io.Reader, error) {
	b, err := sonic.Marshal(v)
	if err != nil {
		return nil, apperrors.NewAppError(code.ErrorInvalidParams, err)
	}
	return bytes.NewReader(b), nil
}

func formBody(values url.Values) io.Reader {
	return bytes.NewBufferString(values.Encode())
}

const (
	contentTypeJSON = "application/json; charset=utf-8"
	contentTypeForm = "application/x-www-form-urlencoded"
)
