package local_fs

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

type Config struct {
	SavePath   string `yaml:"save-path" default:"downloads"`
	CustomPath string `yaml:"custom-path"`
}

type LocalFS struct {
	Config *Config
}

func NewClient(conf *Config) (*LocalFS, error) {
	if conf == nil {
		return nil, errors.New("local_fs: config is required")
	}
	return &LocalFS{Config: conf}, nil
}

func (p *LocalFS) getSavePath(fileKey string) string {
	return filepath.Join(p.Config.SavePath, p.Config.CustomPath, filepath.FromSlash(fileKey))
}

// SendFile 将数据流写入本地目录，自动创建父级目录
func (p *LocalFS) SendFile(fileKey string, file io.Reader, cType string, modTime time.Time) (string, error) {
	dst := p.getSavePath(fileKey)

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}

	out, err := os.Create(dst)
	if err != nil {
		return "", errors.Wrap(err, "local_fs")
	}

	if _, err := io.Copy(out, file); err != nil {
		out.Close()
		return "", errors.Wrap(err, "local_fs")
	}
	if err := out.Close(); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}

	if !modTime.IsZero() {
		if err := os.Chtimes(dst, modTime, modTime); err != nil {
			return "", errors.Wrap(err, "local_fs")
		}
	}

	abs, err := filepath.Abs(dst)
	if err != nil {
		return dst, nil
	}
	return abs, nil
}

func (p *LocalFS) Delete(fileKey string) error {
	dst := p.getSavePath(fileKey)
	if _, err := os.Stat(dst); err != nil {
		return nil
	}
	return os.Remove(dst)
}
