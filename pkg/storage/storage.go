package storage

import (
	"io"
	"time"

	"github.com/haierkeys/bitshared-cli/pkg/code"
	"github.com/haierkeys/bitshared-cli/pkg/storage/aliyun_oss"
	"github.com/haierkeys/bitshared-cli/pkg/storage/aws_s3"
	"github.com/haierkeys/bitshared-cli/pkg/storage/local_fs"
	"github.com/haierkeys/bitshared-cli/pkg/storage/webdav"
)

type Type = string

const LOCAL Type = "localfs"
const S3 Type = "s3"
const OSS Type = "oss"
const WebDAV Type = "webdav"

var StorageTypeMap = map[Type]bool{
	LOCAL:  true,
	S3:     true,
	OSS:    true,
	WebDAV: true,
}

// Config is the download sink configuration
// Config 下载存储的统一配置
type Config struct {
	Type Type `yaml:"type" default:"localfs"`

	IsEnabled  bool   `yaml:"is-enable" default:"true"`
	CustomPath string `yaml:"custom-path"`

	// Cloud Storage (S3 / MinIO / R2 / OSS)
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`

	// WebDAV
	User     string `yaml:"user"`
	Password string `yaml:"password"`

	// Local FS
	SavePath string `yaml:"save-path" default:"downloads"`
}

// Storager is where downloaded course files and attachments end up
type Storager interface {
	// SendFile stores the stream under pathKey and returns the final location
	SendFile(pathKey string, file io.Reader, cType string, modTime time.Time) (string, error)
	Delete(pathKey string) error
}

func NewClient(config *Config) (Storager, error) {
	if config == nil {
		return nil, code.ErrorInvalidStorageType
	}
	if !config.IsEnabled {
		return nil, code.ErrorStorageNotEnabled
	}

	switch config.Type {
	case LOCAL:
		return local_fs.NewClient(&local_fs.Config{
			SavePath:   config.SavePath,
			CustomPath: config.CustomPath,
		})
	case S3:
		return aws_s3.NewClient(&aws_s3.Config{
			Endpoint:        config.Endpoint,
			Region:          config.Region,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			CustomPath:      config.CustomPath,
		})
	case OSS:
		return aliyun_oss.NewClient(&aliyun_oss.Config{
			Endpoint:        config.Endpoint,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			CustomPath:      config.CustomPath,
		})
	case WebDAV:
		return webdav.NewClient(&webdav.Config{
			Endpoint:   config.Endpoint,
			User:       config.User,
			Password:   config.Password,
			CustomPath: config.CustomPath,
		})
	}
	return nil, code.ErrorInvalidStorageType.WithDetails(config.Type)
}
