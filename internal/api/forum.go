package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/haierkeys/bitshared-cli/internal/domain"
	"github.com/haierkeys/bitshared-cli/internal/dto"
)

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}

func pageQuery(page dto.PageRequest) url.Values {
	if page.Size <= 0 {
		page.Size = dto.DefaultPageSize
	}
	if page.Page < 0 {
		page.Page = 0
	}
	return url.Values{
		"page": {strconv.Itoa(page.Page)},
		"size": {strconv.Itoa(page.Size)},
	}
}

// ForumByCourse GET api/forums/by-course/{no}
func (c *Client) ForumByCourse(ctx context.Context, courseNo int64) (*domain.Forum, error) {
	return callEnvelopeData[domain.Forum](ctx, c, request{method: http.MethodGet, path: "api/forums/by-course/" + itoa(courseNo)})
}

// TopicsByForum GET api/topics/by-forum/{id}
func (c *Client) TopicsByForum(ctx context.Context, forumNo int64) (*domain.TopicPage, error) {
	page, err := callEnvelopeData[domain.TopicPage](ctx, c, request{method: http.MethodGet, path: "api/topics/by-forum/" + itoa(forumNo)})
	if err != nil {
		return nil, err
	}
	return page.Normalize(), nil
}

// Topic GET api/topics/by-topic/{id}
func (c *Client) Topic(ctx context.Context, topicID int64) (*domain.Topic, error) {
	t, err := callEnvelopeData[domain.Topic](ctx, c, request{method: http.MethodGet, path: "api/topics/by-topic/" + itoa(topicID)})
	if err != nil {
		return nil, err
	}
	return t.Normalize(), nil
}

// CreateTopic POST api/topics/create/{userId} as multipart
func (c *Client) CreateTopic(ctx context.Context, userID int64, req *dto.CreateTopicRequest, attachments []dto.FilePart) (*domain.Topic, error) {
	fields := []formField{
		{name: "forumNo", value: itoa(req.ForumNo)},
		{name: "title", value: req.Title},
		{name: "content", value: req.Content},
	}
	if req.ReferencePath != nil {
		fields = append(fields, formField{name: "referencePath", value: *req.ReferencePath})
	}
	body, ct := c.multipartBody(fields, "attachments", attachments)

	t, err := callEnvelopeData[domain.Topic](ctx, c, request{
		method:      http.MethodPost,
		path:        "api/topics/create/" + itoa(userID),
		body:        body,
		contentType: ct,
		stream:      true,
	})
	if err != nil {
		return nil, err
	}
	return t.Normalize(), nil
}

// DeleteTopic DELETE api/topics/delete/{id}?userId=
func (c *Client) DeleteTopic(ctx context.Context, topicID, userID int64) error {
	_, _, err := callEnvelope[any](ctx, c, request{
		method: http.MethodDelete,
		path:   "api/topics/delete/" + itoa(topicID),
		query:  url.Values{"userId": {itoa(userID)}},
	})
	return err
}

// DownloadAttachment GET api/attachments/download/{forumNo}/{filename}?download=true
func (c *Client) DownloadAttachment(ctx context.Context, forumNo int64, filename string) (*Stream, error) {
	return c.stream(ctx, request{
		method: http.MethodGet,
		path:   "api/attachments/download/" + itoa(forumNo) + "/" + filename,
		query:  url.Values{"download": {"true"}},
		stream: true,
	})
}
