package apitest

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/haierkeys/bitshared-cli/internal/domain"
)

const timestamp = "2025-03-01T10:00:00"

// attachments stores uploaded parts named "attachments"
func (b *Backend) attachments(form *multipart.Form, forumNo, topicID int64) []*domain.Attachment {
	out := []*domain.Attachment{}
	if form == nil {
		return out
	}
	for _, fh := range form.File["attachments"] {
		f, err := fh.Open()
		if err != nil {
			continue
		}
		data, _ := io.ReadAll(f)
		f.Close()

		id := b.id()
		stored := fmt.Sprintf("att%d_%s", id, fh.Filename)
		b.stored[stored] = data
		out = append(out, &domain.Attachment{
			ID:           id,
			OriginalName: fh.Filename,
			AccessURL:    fmt.Sprintf("/api/attachments/download/%d/%s", forumNo, stored),
			FileType:     fh.Header.Get("Content-Type"),
			FileSize:     int64(len(data)),
			TopicID:      topicID,
			CreatedAt:    timestamp,
		})
	}
	return out
}

func (b *Backend) handleForum(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	f, exists := b.forums[pathInt(r, "no")]
	if !exists {
		fail(w, "论坛不存在")
		return
	}
	ok(w, f)
}

func (b *Backend) handleTopics(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	forumNo := pathInt(r, "id")
	content := []*domain.Topic{}
	ids := sortedIDs(b.topics)
	for i := len(ids) - 1; i >= 0; i-- {
		if t := b.topics[ids[i]]; t.ForumNo == forumNo {
			content = append(content, t)
		}
	}
	ok(w, map[string]any{"content": content, "totalElements": len(content), "last": true})
}

func (b *Backend) handleTopic(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t, exists := b.topics[pathInt(r, "id")]
	if !exists {
		fail(w, "话题不存在")
		return
	}
	t.ViewCount++
	ok(w, t)
}

func (b *Backend) handleCreateTopic(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		fail(w, "invalid multipart")
		return
	}
	forumNo, _ := strconv.ParseInt(r.FormValue("forumNo"), 10, 64)
	userID := pathInt(r, "userId")

	b.mu.Lock()
	defer b.mu.Unlock()

	var forum *domain.Forum
	for _, f := range b.forums {
		if f.ForumNo == forumNo {
			forum = f
		}
	}
	if forum == nil {
		fail(w, "论坛不存在")
		return
	}

	id := b.id()
	t := &domain.Topic{
		ID:        id,
		Title:     r.FormValue("title"),
		Content:   r.FormValue("content"),
		ForumNo:   forumNo,
		Author:    b.author(userID),
		CreatedAt: timestamp,
		UpdatedAt: timestamp,
	}
	if _, has := r.MultipartForm.Value["referencePath"]; has {
		ref := r.FormValue("referencePath")
		t.ReferencePath = &ref
	}
	t.Attachments = b.attachments(r.MultipartForm, forumNo, id)
	b.topics[id] = t
	forum.TopicCount++
	ok(w, t)
}

func (b *Backend) handleDeleteTopic(w http.ResponseWriter, r *http.Request) {
	userID, _ := strconv.ParseInt(r.URL.Query().Get("userId"), 10, 64)
	b.mu.Lock()
	defer b.mu.Unlock()
	t, exists := b.topics[pathInt(r, "id")]
	if !exists {
		fail(w, "话题不存在")
		return
	}
	if t.Author.UserID != userID {
		fail(w, "无权删除")
		return
	}
	delete(b.topics, t.ID)
	for id, c := range b.comments {
		if c.TopicID == t.ID {
			delete(b.comments, id)
		}
	}
	ok(w, nil)
}

func (b *Backend) handleAttachment(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	data, exists := b.stored[r.PathValue("filename")]
	b.mu.Unlock()
	if !exists {
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "附件不存在"})
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = w.Write(data)
}

// ---------------- comments ----------------

func (b *Backend) page(list []*domain.Comment, r *http.Request) map[string]any {
	page := queryInt(r, "page", 0)
	size := queryInt(r, "size", 20)
	start := page * size
	if start > len(list) {
		start = len(list)
	}
	end := start + size
	if end > len(list) {
		end = len(list)
	}
	return map[string]any{
		"content":       list[start:end],
		"pageNumber":    page,
		"pageSize":      size,
		"totalElements": len(list),
		"last":          end >= len(list),
	}
}

func (b *Backend) sortedComments(keep func(c *comment) bool) []*domain.Comment {
	out := []*domain.Comment{}
	for _, id := range sortedIDs(b.comments) {
		if c := b.comments[id]; keep(c) {
			out = append(out, &c.Comment)
		}
	}
	return out
}

func (b *Backend) handleRootComments(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	topicID := pathInt(r, "topicId")
	roots := b.sortedComments(func(c *comment) bool { return c.TopicID == topicID && c.ParentID == nil })
	ok(w, b.page(roots, r))
}

func (b *Backend) handleReplies(w http.ResponseWriter, r *http.Request) {
	if r.PathValue("kind") != "replies" {
		http.NotFound(w, r)
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	rootID := pathInt(r, "rootId")
	replies := b.sortedComments(func(c *comment) bool { return c.rootID == rootID && c.ParentID != nil })
	ok(w, b.page(replies, r))
}

func (b *Backend) handleCommentDetail(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, exists := b.comments[pathInt(r, "id")]
	if !exists {
		fail(w, "评论不存在")
		return
	}
	replies := b.sortedComments(func(x *comment) bool { return x.rootID == c.ID && x.ParentID != nil })
	preview := replies
	if len(preview) > 3 {
		preview = preview[:3]
	}
	ok(w, map[string]any{
		"comment":            c.Comment,
		"replyCount":         len(replies),
		"previewReplies":     preview,
		"replyTotalElements": len(replies),
	})
}

func (b *Backend) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		fail(w, "invalid multipart")
		return
	}
	topicID, _ := strconv.ParseInt(r.FormValue("topicId"), 10, 64)
	userID := pathInt(r, "userId")

	b.mu.Lock()
	defer b.mu.Unlock()

	t, exists := b.topics[topicID]
	if !exists {
		fail(w, "话题不存在")
		return
	}

	id := b.id()
	c := &comment{Comment: domain.Comment{
		ID:        id,
		TopicID:   topicID,
		Content:   r.FormValue("content"),
		Status:    1,
		Author:    b.author(userID),
		CreatedAt: timestamp,
		UpdatedAt: timestamp,
	}}

	if raw := r.FormValue("parentId"); raw != "" {
		parentID, _ := strconv.ParseInt(raw, 10, 64)
		parent, found := b.comments[parentID]
		if !found || parent.TopicID != topicID {
			fail(w, "父评论不存在")
			return
		}
		c.ParentID = &parentID
		c.Level = parent.Level + 1
		c.rootID = parent.rootID
		if parent.ParentID == nil {
			c.rootID = parent.ID
		}
		uid, name := parent.Author.UserID, parent.Author.Username
		c.TargetUserID, c.TargetUsername = &uid, &name
		if root, found := b.comments[c.rootID]; found {
			root.ReplyCount++
		}
	}

	c.Attachments = b.attachments(r.MultipartForm, t.ForumNo, topicID)
	b.comments[id] = c
	t.ReplyCount++
	ok(w, c.Comment)
}

func (b *Backend) handleLike(delta int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		c, exists := b.comments[pathInt(r, "id")]
		if !exists {
			fail(w, "评论不存在")
			return
		}
		c.LikeCount += delta
		if c.LikeCount < 0 {
			c.LikeCount = 0
		}
		ok(w, nil)
	}
}

func (b *Backend) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	userID, _ := strconv.ParseInt(r.URL.Query().Get("userId"), 10, 64)
	b.mu.Lock()
	defer b.mu.Unlock()
	c, exists := b.comments[pathInt(r, "id")]
	if !exists {
		fail(w, "评论不存在")
		return
	}
	if c.Author.UserID != userID {
		fail(w, "无权删除")
		return
	}
	delete(b.comments, c.ID)
	if c.ParentID == nil {
		for id, x := range b.comments {
			if x.rootID == c.ID {
				delete(b.comments, id)
			}
		}
	}
	ok(w, nil)
}

// LikeCount 返回评论点赞数
func (b *Backend) LikeCount(commentID int64) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if c, exists := b.comments[commentID]; exists {
		return c.LikeCount
	}
	return -1
}
