package util

import (
	"strconv"
	"strings"
)

// ParseSize parses size string like "128MB", "512KB", "1024B" to bytes
// ParseSize 将大小字符串（如 "128MB", "512KB", "1024B"）解析为字节数
// "0" or an empty string yields defaultSize.
func ParseSize(sizeStr string, defaultSize int64) int64 {
	if sizeStr == "" {
		return defaultSize
	}

	sizeStr = strings.ToUpper(strings.TrimSpace(sizeStr))
	var multiplier int64 = 1

	switch {
	case strings.HasSuffix(sizeStr, "GB"):
		multiplier = 1024 * 1024 * 1024
		sizeStr = strings.TrimSuffix(sizeStr, "GB")
	case strings.HasSuffix(sizeStr, "MB"):
		multiplier = 1024 * 1024
		sizeStr = strings.TrimSuffix(sizeStr, "MB")
	case strings.HasSuffix(sizeStr, "KB"):
		multiplier = 1024
		sizeStr = strings.TrimSuffix(sizeStr, "KB")
	case strings.HasSuffix(sizeStr, "B"):
		sizeStr = strings.TrimSuffix(sizeStr, "B")
	}

	size, err := strconv.ParseInt(strings.TrimSpace(sizeStr), 10, 64)
	if err != nil || size <= 0 {
		return defaultSize
	}

	return size * multiplier
}

// FormatSize renders a byte count for humans
// FormatSize 将字节数格式化为易读字符串
func FormatSize(size int64) string {
	switch {
	case size >= 1024*1024*1024:
		return strconv.FormatFloat(float64(size)/(1024*1024*1024), 'f', 1, 64) + "GB"
	case size >= 1024*1024:
		return strconv.FormatFloat(float64(size)/(1024*1024), 'f', 1, 64) + "MB"
	case size >= 1024:
		return strconv.FormatFloat(float64(size)/1024, 'f', 1, 64) + "KB"
	}
	return strconv.FormatInt(size, 10) + "B"
}
