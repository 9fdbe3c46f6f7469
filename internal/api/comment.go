package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/haierkeys/bitshared-cli/internal/domain"
	"github.com/haierkeys/bitshared-cli/internal/dto"
)

// RootComments GET api/comments/root/{topicId}?page&size
func (c *Client) RootComments(ctx context.Context, topicID int64, page dto.PageRequest) (*domain.CommentPage, error) {
	return c.commentPage(ctx, "api/comments/root/"+itoa(topicID), page)
}

// Replies GET api/comments/{rootId}/replies?page&size
func (c *Client) Replies(ctx context.Context, rootID int64, page dto.PageRequest) (*domain.CommentPage, error) {
	return c.commentPage(ctx, "api/comments/"+itoa(rootID)+"/replies", page)
}

func (c *Client) commentPage(ctx context.Context, p string, page dto.PageRequest) (*domain.CommentPage, error) {
	out, err := callEnvelopeData[domain.CommentPage](ctx, c, request{method: http.MethodGet, path: p, query: pageQuery(page)})
	if err != nil {
		return nil, err
	}
	return out.Normalize(), nil
}

// CreateComment POST api/comments/create/{userId} as multipart
func (c *Client) CreateComment(ctx context.Context, userID int64, req *dto.CreateCommentRequest, attachments []dto.FilePart) (*domain.Comment, error) {
	fields := []formField{
		{name: "topicId", value: itoa(req.TopicID)},
		{name: "content", value: req.Content},
	}
	if req.ParentID != nil {
		fields = append(fields, formField{name: "parentId", value: itoa(*req.ParentID)})
	}
	body, ct := c.multipartBody(fields, "attachments", attachments)

	out, err := callEnvelopeData[domain.Comment](ctx, c, request{
		method:      http.MethodPost,
		path:        "api/comments/create/" + itoa(userID),
		body:        body,
		contentType: ct,
		stream:      true,
	})
	if err != nil {
		return nil, err
	}
	return out.Normalize(), nil
}

// LikeComment POST api/comments/like/{id}
func (c *Client) LikeComment(ctx context.Context, commentID int64) error {
	_, _, err := callEnvelope[any](ctx, c, request{method: http.MethodPost, path: "api/comments/like/" + itoa(commentID)})
	return err
}

// UnlikeComment POST api/comments/unlike/{id}
func (c *Client) UnlikeComment(ctx context.Context, commentID int64) error {
	_, _, err := callEnvelope[any](ctx, c, request{method: http.MethodPost, path: "api/comments/unlike/" + itoa(commentID)})
	return err
}

// DeleteComment DELETE api/comments/delete/{id}?userId=
func (c *Client) DeleteComment(ctx context.Context, commentID, userID int64) error {
	_, _, err := callEnvelope[any](ctx, c, request{
		method: http.MethodDelete,
		path:   "api/comments/delete/" + itoa(commentID),
		query:  url.Values{"userId": {itoa(userID)}},
	})
	return err
}

// CommentDetail GET api/comments/detail/{id}
func (c *Client) CommentDetail(ctx context.Context, commentID int64) (*domain.CommentDetail, error) {
	out, err := callEnvelopeData[domain.CommentDetail](ctx, c, request{method: http.MethodGet, path: "api/comments/detail/" + itoa(commentID)})
	if err != nil {
		return nil, err
	}
	return out.Normalize(), nil
}
