// Package service implements the client controllers over the api client
// Package service 实现客户端业务控制器
package service

import (
	"context"
	"errors"
	"time"

	"github.com/haierkeys/bitshared-cli/internal/api"
	"github.com/haierkeys/bitshared-cli/pkg/code"
	apperrors "github.com/haierkeys/bitshared-cli/pkg/errors"
	"github.com/haierkeys/bitshared-cli/pkg/fileurl"
	"github.com/haierkeys/bitshared-cli/pkg/logger"
	"github.com/haierkeys/bitshared-cli/pkg/storage"
	"github.com/haierkeys/bitshared-cli/pkg/validator"
	"github.com/haierkeys/bitshared-cli/pkg/workerpool"
	"go.uber.org/zap"
)

// ServiceConfig service layer configuration
// ServiceConfig 服务层配置
type ServiceConfig struct {
	Lang            string // Message language // 提示语言
	DefaultPageSize int    // Page size for comment lists // 评论分页大小
}

// downloader copies server streams into the download sink on the worker pool
// downloader 在工作池中把下载流写入存储
type downloader struct {
	sink   storage.Storager
	pool   *workerpool.Pool
	logger *zap.Logger
}

// save opens the stream inside a pool task and stores it under key.
// A failed copy removes the partial object. Errors are logged and returned.
func (d *downloader) save(ctx context.Context, key string, open func(ctx context.Context) (*api.Stream, error)) (string, error) {
	if d.sink == nil {
		return "", code.ErrorStorageNotEnabled
	}
	key = fileurl.GetFileNameOrRandom(key)

	var location string
	task := func(ctx context.Context) error {
		stream, err := open(ctx)
		if err != nil {
			return err
		}
		defer stream.Close()

		loc, err := d.sink.SendFile(key, stream, stream.ContentType, time.Now())
		if err != nil {
			if delErr := d.sink.Delete(key); delErr != nil {
				d.logger.Debug("remove partial download failed", zap.String(logger.FieldFileKey, key), zap.Error(delErr))
			}
			return err
		}
		location = loc
		return nil
	}

	var err error
	if d.pool != nil {
		err = d.pool.Submit(ctx, task)
	} else {
		err = task(ctx)
	}
	if err != nil {
		d.logger.Warn("download failed", zap.String(logger.FieldFileKey, key), zap.Error(err))
		if apperrors.IsAppError(err) {
			return "", err
		}
		return "", apperrors.NewAppError(code.ErrorDownloadFailed, err)
	}
	return location, nil
}

// validate runs v when set
func validate(v *validator.Validator, obj any) error {
	if v == nil {
		return nil
	}
	return v.Struct(obj)
}

// joinErrs 合并多个错误，全部为 nil 时返回 nil
func joinErrs(errs ...error) error {
	return errors.Join(errs...)
}
