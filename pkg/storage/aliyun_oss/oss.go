package aliyun_oss

import (
	"fmt"
	"io"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/haierkeys/bitshared-cli/pkg/fileurl"
	"github.com/pkg/errors"
)

type Config struct {
	Endpoint        string `yaml:"endpoint"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	CustomPath      string `yaml:"custom-path"`
}

type OSS struct {
	Client *oss.Client
	Bucket *oss.Bucket
	Config *Config
}

// NewClient 创建阿里云 OSS 存储实例
func NewClient(conf *Config) (*OSS, error) {
	if conf == nil || conf.Endpoint == "" || conf.BucketName == "" {
		return nil, errors.New("aliyun_oss: endpoint and bucket-name are required")
	}
	client, err := oss.New(conf.Endpoint, conf.AccessKeyID, conf.AccessKeySecret)
	if err != nil {
		return nil, errors.Wrap(err, "aliyun_oss")
	}
	return &OSS{Client: client, Config: conf}, nil
}

func (p *OSS) getBucket() error {
	if p.Bucket != nil {
		return nil
	}
	var err error
	p.Bucket, err = p.Client.Bucket(p.Config.BucketName)
	return err
}

func (p *OSS) SendFile(fileKey string, file io.Reader, cType string, modTime time.Time) (string, error) {
	if err := p.getBucket(); err != nil {
		return "", errors.Wrap(err, "aliyun_oss")
	}
	fileKey = fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + fileKey

	options := []oss.Option{}
	if cType != "" {
		options = append(options, oss.ContentType(cType))
	}
	if err := p.Bucket.PutObject(fileKey, file, options...); err != nil {
		return "", errors.Wrap(err, "aliyun_oss")
	}
	return fileKey, nil
}

func (p *OSS) Delete(fileKey string) error {
	if err := p.getBucket(); err != nil {
		return errors.Wrap(err, "aliyun_oss")
	}
	fileKey = fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + fileKey
	if err := p.Bucket.DeleteObject(fileKey); err != nil {
		return fmt.Errorf("删除文件失败: %v", err)
	}
	return nil
}
