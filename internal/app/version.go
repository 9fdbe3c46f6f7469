// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/haierkeys/bitshared-cli/pkg/util"
)

// 版本信息变量，由构建时注入
var (
	Version   string = "0.3.0"
	GitTag    string = "2000.01.01.release"
	BuildTime string = "2000-01-01T00:00:00+0800"
)

// 应用名称常量
const (
	// Name 应用名称
	Name = "BitShared CLI"
)

// VersionInfo 版本信息
type VersionInfo struct {
	Version   string `json:"version"`
	GitTag    string `json:"gitTag"`
	BuildTime string `json:"buildTime"`
}

// GetVersion 获取版本信息
func GetVersion() VersionInfo {
	return VersionInfo{Version: Version, GitTag: GitTag, BuildTime: BuildTime}
}

var userAgent = sync.OnceValue(func() string {
	return fmt.Sprintf("bitshared-cli/%s (%s; %s)", Version, util.GetOSPrettyName(), runtime.GOARCH)
})

// UserAgent 请求使用的 User-Agent，如 bitshared-cli/0.3.0 (Ubuntu 24.04 LTS; amd64)
func UserAgent() string {
	return userAgent()
}
