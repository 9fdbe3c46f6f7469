// Package dto Defines data transfer objects (request parameters and response envelopes)
// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

// Envelope is the common response wrapper of the backend.
// Envelope 后端统一响应包装
type Envelope[T any] struct {
	Success bool    `json:"success"` // Whether the call succeeded // 是否成功
	Message *string `json:"message"` // Server message, may be null // 服务端消息，可为空
	Data    *T      `json:"data"`    // Payload, may be null // 数据，可为空
}

// Msg returns the server message or fallback when it is null or empty
// Msg 返回服务端消息，为空时返回 fallback
func (e *Envelope[T]) Msg(fallback string) string {
	if e.Message == nil || *e.Message == "" {
		return fallback
	}
	return *e.Message
}
