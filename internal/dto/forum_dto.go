package dto

import "io"

// FilePart A file sent as a multipart part
// 以 multipart 发送的文件
type FilePart struct {
	FileName string    // File name; empty falls back to a random name // 文件名
	MimeType string    // Content type; empty is inferred // 文件类型
	Reader   io.Reader // Content // 内容
}

// CreateTopicRequest Topic creation parameters
// 创建话题参数
type CreateTopicRequest struct {
	ForumNo       int64   `json:"forumNo" validate:"required"`       // Forum // 论坛编号
	Title         string  `json:"title" validate:"required,max=200"` // Title // 标题
	Content       string  `json:"content" validate:"required"`       // Body // 内容
	ReferencePath *string `json:"referencePath"`                     // Quoted file path // 引用路径
}

// CreateCommentRequest Comment creation parameters; ParentID nil posts a root comment
// 创建评论参数，ParentID 为空表示根评论
type CreateCommentRequest struct {
	TopicID  int64  `json:"topicId" validate:"required"` // Topic // 话题
	Content  string `json:"content" validate:"required"` // Body // 内容
	ParentID *int64 `json:"parentId"`                    // Replied comment // 被回复的评论
}

// PageRequest Page parameters, zero-based
// 分页参数，从 0 开始
type PageRequest struct {
	Page int `json:"page" validate:"min=0"`
	Size int `json:"size" validate:"min=1,max=100"`
}

// DefaultPageSize 默认每页数量
const DefaultPageSize = 20

// DefaultPage 返回第 0 页，每页 20 条
func DefaultPage() PageRequest {
	return PageRequest{Page: 0, Size: DefaultPageSize}
}
