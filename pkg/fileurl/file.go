package fileurl

import (
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// DefaultMimeType is used when nothing better can be inferred
const DefaultMimeType = "application/octet-stream"

// IsDir determines if the given path is a directory
// IsDir 判断所给路径是否为文件夹
func IsDir(p string) bool {
	s, err := os.Stat(p)
	if err != nil {
		return false
	}
	return s.IsDir()
}

// IsExist determines if the given path exists
// IsExist 判断所给路径是否存在
func IsExist(dst string) bool {
	_, err := os.Stat(dst)
	if err != nil {
		return os.IsExist(err)
	}
	return true
}

// CreatePath creates the parent directory of dst
// CreatePath 创建 dst 的父级目录
func CreatePath(dst string, perm os.FileMode) error {
	return os.MkdirAll(filepath.Dir(dst), perm)
}

// PathSuffixCheckAdd checks path suffix, adds it if not exists
// PathSuffixCheckAdd 检查路径后缀，如果没有则添加
func PathSuffixCheckAdd(p string, suffix string) string {
	if !strings.HasSuffix(p, suffix) {
		p = p + suffix
	}
	return p
}

// JoinTreePath joins a parent tree path and a child name with "/".
// An empty parent is the tree root, so the name is returned as is.
// JoinTreePath 拼接文件树路径，父路径为空时直接返回名称
func JoinTreePath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "/" + name
}

// BaseName returns everything after the last "/" (the whole string if none)
// BaseName 返回最后一个 "/" 之后的部分
func BaseName(p string) string {
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}

// GetFileExt gets file extension
// GetFileExt 获取文件后缀
func GetFileExt(name string) string {
	return path.Ext(name)
}

// GetFileNameOrRandom keeps a usable name or generates file_<uuid>
// GetFileNameOrRandom 文件名不可用时生成随机名
func GetFileNameOrRandom(fileName string) string {
	fileName = strings.TrimSpace(filepath.Base(fileName))
	switch fileName {
	case "", ".", "..", string(filepath.Separator):
		return "file_" + uuid.New().String()
	}
	return fileName
}

// DetectMimeType infers a content type from the extension first,
// then from the leading bytes of the content.
// DetectMimeType 先按后缀推断类型，再按内容嗅探
func DetectMimeType(name string, head []byte) string {
	if t := mime.TypeByExtension(strings.ToLower(GetFileExt(name))); t != "" {
		return t
	}
	if len(head) > 0 {
		return mimetype.Detect(head).String()
	}
	return DefaultMimeType
}
