package api

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError 非 2xx 响应，作为 ErrorServer 的 Cause
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}

// StatusCode returns the HTTP status carried in err, or 0
func StatusCode(err error) int {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.StatusCode
	}
	return 0
}

// IsNotFound 是否为 404 响应
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}
