package service

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/haierkeys/bitshared-cli/internal/api"
	"github.com/haierkeys/bitshared-cli/internal/domain"
	"github.com/haierkeys/bitshared-cli/internal/dto"
	"github.com/haierkeys/bitshared-cli/pkg/code"
	apperrors "github.com/haierkeys/bitshared-cli/pkg/errors"
	"github.com/haierkeys/bitshared-cli/pkg/fileurl"
	"github.com/haierkeys/bitshared-cli/pkg/logger"
	"github.com/haierkeys/bitshared-cli/pkg/storage"
	"github.com/haierkeys/bitshared-cli/pkg/workerpool"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// FileTreeService course material tree controller.
// Empty -> Loading -> Populated; every successful mutation refetches,
// a failed fetch clears the tree back to Empty.
// FileTreeService 课程资料文件树控制器
type FileTreeService interface {
	// Fetch 拉取并规范化整棵树，失败时清空
	Fetch(ctx context.Context, courseNo int64) ([]*domain.FileNode, error)
	// Refresh 供调用方在变更失败后主动对齐服务端
	Refresh(ctx context.Context, courseNo int64) ([]*domain.FileNode, error)
	CreateDirectory(ctx context.Context, parentPath, name string, courseNo int64) error
	Delete(ctx context.Context, path string, courseNo int64) error
	Upload(ctx context.Context, file dto.FilePart, targetDir string, courseNo int64) error
	// Download 下载到存储，返回保存位置
	Download(ctx context.Context, path string) (string, error)

	Tree() []*domain.FileNode
	State() domain.TreeState
	Find(path string) *domain.FileNode
	Walk(fn func(n *domain.FileNode, depth int) bool)
}

type fileTreeAPI interface {
	FileTree(ctx context.Context, courseNo int64) ([]*domain.FileNode, error)
	CreateDirectory(ctx context.Context, dir string) (string, error)
	DeleteNode(ctx context.Context, dir string) (string, error)
	UploadFile(ctx context.Context, file dto.FilePart, targetDir string) (string, error)
	DownloadFile(ctx context.Context, path string) (*api.Stream, error)
}

type fileTreeService struct {
	api        fileTreeAPI
	downloader *downloader
	logger     *zap.Logger
	sf         *singleflight.Group

	mu    sync.RWMutex
	tree  []*domain.FileNode
	state domain.TreeState
}

func NewFileTreeService(api fileTreeAPI, sink storage.Storager, pool *workerpool.Pool, lg *zap.Logger) FileTreeService {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &fileTreeService{
		api:        api,
		downloader: &downloader{sink: sink, pool: pool, logger: lg},
		logger:     lg,
		sf:         &singleflight.Group{},
		tree:       []*domain.FileNode{},
		state:      domain.TreeStateEmpty,
	}
}

func (s *fileTreeService) setState(state domain.TreeState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// Fetch joins concurrent fetches of one course. The shared request is
// detached from any single caller, so one caller giving up does not fail
// the others; each caller still returns early on its own ctx.
func (s *fileTreeService) Fetch(ctx context.Context, courseNo int64) ([]*domain.FileNode, error) {
	s.setState(domain.TreeStateLoading)

	key := strconv.FormatInt(courseNo, 10)
	ch := s.sf.DoChan(key, func() (interface{}, error) {
		raw, err := s.api.FileTree(context.WithoutCancel(ctx), courseNo)
		return s.apply(courseNo, raw, err)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return domain.CloneTree(res.Val.([]*domain.FileNode)), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// apply 写入拉取结果，失败时清空
func (s *fileTreeService) apply(courseNo int64, raw []*domain.FileNode, err error) ([]*domain.FileNode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.tree = []*domain.FileNode{}
		s.state = domain.TreeStateEmpty
		s.logger.Warn("fetch file tree failed",
			zap.Int64(logger.FieldCourseNo, courseNo),
			zap.Error(err))
		return nil, err
	}

	s.tree = domain.NormalizeTree(raw)
	s.state = domain.TreeStatePopulated
	return domain.CloneTree(s.tree), nil
}

func (s *fileTreeService) Refresh(ctx context.Context, courseNo int64) ([]*domain.FileNode, error) {
	return s.Fetch(ctx, courseNo)
}

func checkName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" || strings.Contains(name, "/") || name == "." || name == ".." {
		return code.ErrorInvalidParams.WithDetails("invalid name: " + name)
	}
	return nil
}

func (s *fileTreeService) CreateDirectory(ctx context.Context, parentPath, name string, courseNo int64) error {
	if err := checkName(name); err != nil {
		return err
	}
	full := domain.JoinPath(strings.Trim(parentPath, "/"), strings.TrimSpace(name))

	if _, err := s.api.CreateDirectory(ctx, full); err != nil {
		s.logger.Warn("create directory failed", zap.String(logger.FieldPath, full), zap.Error(err))
		return err
	}
	_, err := s.Fetch(ctx, courseNo)
	return err
}

// Delete removes the node locally first, then refetches; the refetch
// overwrites the local projection. A business failure leaves the tree as is.
func (s *fileTreeService) Delete(ctx context.Context, path string, courseNo int64) error {
	path = strings.Trim(path, "/")
	if path == "" {
		return code.ErrorInvalidParams.WithDetails("empty path")
	}

	if _, err := s.api.DeleteNode(ctx, path); err != nil {
		s.logger.Warn("delete node failed", zap.String(logger.FieldPath, path), zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.tree = domain.RemoveByPath(s.tree, path)
	s.mu.Unlock()

	_, err := s.Fetch(ctx, courseNo)
	return err
}

func (s *fileTreeService) Upload(ctx context.Context, file dto.FilePart, targetDir string, courseNo int64) error {
	if file.Reader == nil {
		return code.ErrorInvalidParams.WithDetails("no file content")
	}
	targetDir = strings.Trim(targetDir, "/")

	if _, err := s.api.UploadFile(ctx, file, targetDir); err != nil {
		s.logger.Warn("upload failed",
			zap.String(logger.FieldPath, fileurl.JoinTreePath(targetDir, file.FileName)),
			zap.Error(err))
		if apperrors.IsAppError(err) {
			return err
		}
		return apperrors.NewAppError(code.ErrorUploadFailed, err)
	}
	_, err := s.Fetch(ctx, courseNo)
	return err
}

// Download stores the file under the last path segment
func (s *fileTreeService) Download(ctx context.Context, path string) (string, error) {
	path = strings.Trim(path, "/")
	if path == "" {
		return "", code.ErrorInvalidParams.WithDetails("empty path")
	}
	return s.downloader.save(ctx, fileurl.BaseName(path), func(ctx context.Context) (*api.Stream, error) {
		return s.api.DownloadFile(ctx, path)
	})
}

func (s *fileTreeService) Tree() []*domain.FileNode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.CloneTree(s.tree)
}

func (s *fileTreeService) State() domain.TreeState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *fileTreeService) Find(path string) *domain.FileNode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := domain.FindByPath(s.tree, path)
	if n == nil {
		return nil
	}
	return domain.CloneTree([]*domain.FileNode{n})[0]
}

func (s *fileTreeService) Walk(fn func(n *domain.FileNode, depth int) bool) {
	domain.WalkTree(s.Tree(), fn)
}
