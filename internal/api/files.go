package api

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/haierkeys/bitshared-cli/internal/domain"
	"github.com/haierkeys/bitshared-cli/internal/dto"
)

// Stream 流式响应，调用方负责 Close
type Stream struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
	cancel        func()
}

func (s *Stream) Read(p []byte) (int, error) {
	return s.Body.Read(p)
}

func (s *Stream) Close() error {
	err := s.Body.Close()
	if s.cancel != nil {
		s.cancel()
	}
	return err
}

type limitedBody struct {
	io.Reader
	io.Closer
}

// FileTree GET api/course/{no}/file-tree
// The response is a bare JSON array whose nested paths are not joined.
func (c *Client) FileTree(ctx context.Context, courseNo int64) ([]*domain.FileNode, error) {
	var nodes []*domain.FileNode
	err := c.call(ctx, request{
		method: http.MethodGet,
		path:   "api/course/" + strconv.FormatInt(courseNo, 10) + "/file-tree",
	}, &nodes)
	if err != nil {
		return nil, err
	}
	if nodes == nil {
		nodes = []*domain.FileNode{}
	}
	return nodes, nil
}

// CreateDirectory POST api/files/create_dir, dir is the full path
func (c *Client) CreateDirectory(ctx context.Context, dir string) (string, error) {
	return c.fileCommand(ctx, "api/files/create_dir", dir)
}

// DeleteNode POST api/files/delete, dir is the full path
func (c *Client) DeleteNode(ctx context.Context, dir string) (string, error) {
	return c.fileCommand(ctx, "api/files/delete", dir)
}

func (c *Client) fileCommand(ctx context.Context, p, dir string) (string, error) {
	data, msg, err := callEnvelope[string](ctx, c, request{
		method:      http.MethodPost,
		path:        p,
		body:        formBody(url.Values{"dir": {dir}}),
		contentType: contentTypeForm,
	})
	if err != nil {
		return "", err
	}
	if data != nil && *data != "" {
		return *data, nil
	}
	return msg, nil
}

// UploadFile POST api/files/upload with parts file and targetDir
func (c *Client) UploadFile(ctx context.Context, file dto.FilePart, targetDir string) (string, error) {
	body, ct := c.multipartBody([]formField{{name: "targetDir", value: targetDir}}, "file", []dto.FilePart{file})
	data, msg, err := callEnvelope[string](ctx, c, request{
		method:      http.MethodPost,
		path:        "api/files/upload",
		body:        body,
		contentType: ct,
		stream:      true,
	})
	if err != nil {
		return "", err
	}
	if data != nil && *data != "" {
		return *data, nil
	}
	return msg, nil
}

// DownloadFile GET api/files/download?path=
func (c *Client) DownloadFile(ctx context.Context, path string) (*Stream, error) {
	return c.stream(ctx, request{
		method: http.MethodGet,
		path:   "api/files/download",
		query:  url.Values{"path": {path}},
		stream: true,
	})
}

func (c *Client) stream(ctx context.Context, r request) (*Stream, error) {
	ctx, cancel := context.WithCancel(ctx)
	resp, _, _, err := c.do(ctx, r)
	if err != nil {
		cancel()
		return nil, err
	}
	return &Stream{
		Body:          limitedBody{Reader: c.limit(resp.Body), Closer: resp.Body},
		ContentType:   resp.Header.Get("Content-Type"),
		ContentLength: resp.ContentLength,
		cancel:        cancel,
	}, nil
}
