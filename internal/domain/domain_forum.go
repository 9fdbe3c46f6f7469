package domain

// Forum 课程论坛概览
type Forum struct {
	ForumNo    int64  `json:"forumNo"`
	CourseName string `json:"courseName"`
	TopicCount int    `json:"topicCount"`
}

// Attachment 话题或评论附件
type Attachment struct {
	ID           int64  `json:"id"`
	OriginalName string `json:"originalName"`
	AccessURL    string `json:"accessUrl"`
	FileType     string `json:"fileType"`
	FileSize     int64  `json:"fileSize"`
	TopicID      int64  `json:"topicId"`
	CreatedAt    string `json:"createdAt"`
}

// StoredName is the server-side file name, the last segment of AccessURL.
// StoredName 服务器存储文件名，取 accessUrl 最后一段
func (a *Attachment) StoredName() string {
	_, name := SplitPath(a.AccessURL)
	return name
}

// Topic 论坛话题
type Topic struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	ForumNo int64  `json:"forumNo"`
	// 引用的文件树路径，仅为文本，不是外键
	ReferencePath *string       `json:"referencePath"`
	Author        Profile       `json:"author"`
	Attachments   []*Attachment `json:"attachments"`
	ViewCount     int           `json:"viewCount"`
	ReplyCount    int           `json:"replyCount"`
	LikeCount     int           `json:"likeCount"`
	CreatedAt     string        `json:"createdAt"`
	UpdatedAt     string        `json:"updatedAt"`
}

// Normalize 补齐缺省字段
func (t *Topic) Normalize() *Topic {
	if t.Attachments == nil {
		t.Attachments = []*Attachment{}
	}
	return t
}

// TopicPage 话题分页
type TopicPage struct {
	Content       []*Topic `json:"content"`
	TotalElements int64    `json:"totalElements"`
	Last          bool     `json:"last"`
}

func (p *TopicPage) Normalize() *TopicPage {
	if p.Content == nil {
		p.Content = []*Topic{}
	}
	for _, t := range p.Content {
		t.Normalize()
	}
	return p
}

// Comment is either a root comment (ParentID nil, Level 0) or a reply
// in the flat reply list of one root.
// Comment 评论，两级结构：根评论与其下的平铺回复
type Comment struct {
	ID             int64         `json:"id"`
	TopicID        int64         `json:"topicId"`
	Content        string        `json:"content"`
	ParentID       *int64        `json:"parentId"`
	Level          int           `json:"level"`
	LikeCount      int           `json:"likeCount"`
	ReplyCount     int           `json:"replyCount"`
	Status         int           `json:"status"`
	CreatedAt      string        `json:"createdAt"`
	UpdatedAt      string        `json:"updatedAt"`
	Author         Profile       `json:"author"`
	TargetUserID   *int64        `json:"targetUserId"`
	TargetUsername *string       `json:"targetUsername"`
	Attachments    []*Attachment `json:"attachments"`
}

// IsRoot 是否为根评论
func (c *Comment) IsRoot() bool {
	return c.ParentID == nil
}

func (c *Comment) Normalize() *Comment {
	if c.Attachments == nil {
		c.Attachments = []*Attachment{}
	}
	return c
}

// CommentPage 评论分页
type CommentPage struct {
	Content       []*Comment `json:"content"`
	PageNumber    int        `json:"pageNumber"`
	PageSize      int        `json:"pageSize"`
	TotalElements int64      `json:"totalElements"`
	Last          bool       `json:"last"`
}

func (p *CommentPage) Normalize() *CommentPage {
	if p.Content == nil {
		p.Content = []*Comment{}
	}
	for _, c := range p.Content {
		c.Normalize()
	}
	return p
}

// CommentDetail 评论详情，包含预览回复
type CommentDetail struct {
	Comment            *Comment   `json:"comment"`
	ReplyCount         int        `json:"replyCount"`
	PreviewReplies     []*Comment `json:"previewReplies"`
	ReplyTotalElements int64      `json:"replyTotalElements"`
}

func (d *CommentDetail) Normalize() *CommentDetail {
	if d.Comment != nil {
		d.Comment.Normalize()
	}
	if d.PreviewReplies == nil {
		d.PreviewReplies = []*Comment{}
	}
	for _, c := range d.PreviewReplies {
		c.Normalize()
	}
	return d
}
