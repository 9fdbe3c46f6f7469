package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/haierkeys/bitshared-cli/internal/api/apitest"
	"github.com/haierkeys/bitshared-cli/internal/domain"
	"github.com/haierkeys/bitshared-cli/internal/dto"
	"github.com/haierkeys/bitshared-cli/pkg/code"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := NewClient(Config{BaseURL: baseURL, Timeout: 5 * time.Second, TraceEnabled: true}, nil)
	require.NoError(t, err)
	return c
}

func TestNewClient_InvalidBaseURL(t *testing.T) {
	_, err := NewClient(Config{BaseURL: "not a url"}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, code.ErrorInvalidParams))
}

func TestNewClient_AddsTrailingSlash(t *testing.T) {
	c, err := NewClient(Config{BaseURL: "http://example.com:8080"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "http://example.com:8080/", c.BaseURL())
	assert.Equal(t, "http://example.com:8080/api/majors", c.endpoint("api/majors", nil))
}

func TestClient_MajorsAndCourses(t *testing.T) {
	b := apitest.New()
	defer b.Close()
	b.AddMajor(&domain.Major{MajorNo: 1, MajorName: "Computer Science"},
		&domain.Course{CourseNo: 101, CourseName: "Data Structures"})

	c := newTestClient(t, b.URL())
	majors, err := c.Majors(context.Background())
	require.NoError(t, err)
	require.Len(t, majors, 1)
	assert.Equal(t, "Computer Science", majors[0].MajorName)

	courses, err := c.Courses(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, int64(101), courses[0].CourseNo)

	courses, err = c.Courses(context.Background(), 99)
	require.NoError(t, err)
	assert.NotNil(t, courses)
	assert.Empty(t, courses)
}

func TestClient_TraceHeader(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get(DefaultTraceHeader)
		_, _ = io.WriteString(w, `{"success":true,"data":[]}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Majors(context.Background())
	require.NoError(t, err)
	_, err = uuid.Parse(got)
	assert.NoError(t, err, "trace header should carry a uuid, got %q", got)
}

func TestClient_UserAgent(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
		_, _ = io.WriteString(w, `{"success":true,"data":[]}`)
	}))
	defer srv.Close()

	c, err := NewClient(Config{BaseURL: srv.URL, UserAgent: "bitshared-cli/test"}, nil)
	require.NoError(t, err)
	_, err = c.Majors(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "bitshared-cli/test", got)
}

func TestClient_ErrorClasses(t *testing.T) {
	b := apitest.New()
	defer b.Close()
	c := newTestClient(t, b.URL())
	ctx := context.Background()

	// success:false
	b.FailNext("/api/majors", apitest.Fault{Message: "维护中"})
	_, err := c.Majors(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, code.ErrorServer))
	assert.Contains(t, err.Error(), "维护中")

	// HTTP status
	b.FailNext("/api/majors", apitest.Fault{Status: http.StatusInternalServerError, Message: "boom"})
	_, err = c.Majors(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, code.ErrorServer))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(err))
	assert.Contains(t, err.Error(), "boom")

	// decode
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `<html>oops</html>`)
	}))
	defer srv.Close()
	_, err = newTestClient(t, srv.URL).Majors(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, code.ErrorDecode))

	// network
	dead := httptest.NewServer(http.NotFoundHandler())
	deadURL := dead.URL
	dead.Close()
	_, err = newTestClient(t, deadURL).Majors(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, code.ErrorNetwork))
}

func TestClient_FileTreeIsRaw(t *testing.T) {
	b := apitest.New()
	defer b.Close()
	b.AddCourseRoot("101_DataStructures")
	c := newTestClient(t, b.URL())
	ctx := context.Background()

	_, err := c.CreateDirectory(ctx, "101_DataStructures/docs")
	require.NoError(t, err)

	tree, err := c.FileTree(ctx, 101)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Children, 1)
	// the server only sends leaf names
	assert.Equal(t, "docs", tree[0].Children[0].Path)

	empty, err := c.FileTree(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestClient_FileCommandFailure(t *testing.T) {
	b := apitest.New()
	defer b.Close()
	c := newTestClient(t, b.URL())

	_, err := c.DeleteNode(context.Background(), "nope/none")
	require.Error(t, err)
	assert.True(t, errors.Is(err, code.ErrorServer))
	assert.Contains(t, err.Error(), "不存在")
}

func TestClient_UploadMultipartShape(t *testing.T) {
	type seen struct {
		targetDir, targetDirType, fileName, fileType, content string
	}
	var s seen
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mr, err := r.MultipartReader()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		for {
			p, err := mr.NextPart()
			if err != nil {
				break
			}
			data, _ := io.ReadAll(p)
			switch p.FormName() {
			case "targetDir":
				s.targetDir, s.targetDirType = string(data), p.Header.Get("Content-Type")
			case "file":
				s.fileName, s.fileType, s.content = p.FileName(), p.Header.Get("Content-Type"), string(data)
			}
		}
		_, _ = io.WriteString(w, `{"success":true,"message":"上传成功","data":"ok"}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	msg, err := c.UploadFile(context.Background(), dto.FilePart{
		FileName: "notes.txt",
		Reader:   strings.NewReader("hello"),
	}, "101_DS/docs")
	require.NoError(t, err)
	assert.Equal(t, "ok", msg)

	assert.Equal(t, "101_DS/docs", s.targetDir)
	assert.True(t, strings.HasPrefix(s.targetDirType, "text/plain"))
	assert.Equal(t, "notes.txt", s.fileName)
	assert.True(t, strings.HasPrefix(s.fileType, "text/plain"))
	assert.Equal(t, "hello", s.content)
}

func TestClient_UploadAndDownload(t *testing.T) {
	b := apitest.New()
	defer b.Close()
	b.AddCourseRoot("101_DS")
	c := newTestClient(t, b.URL())
	ctx := context.Background()

	_, err := c.UploadFile(ctx, dto.FilePart{FileName: "a.bin", Reader: strings.NewReader("payload")}, "101_DS")
	require.NoError(t, err)

	s, err := c.DownloadFile(ctx, "101_DS/a.bin")
	require.NoError(t, err)
	data, err := io.ReadAll(s)
	require.NoError(t, err)
	require.NoError(t, s.Close())
	assert.Equal(t, "payload", string(data))

	_, err = c.DownloadFile(ctx, "101_DS/missing.bin")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestClient_CommentPageQuery(t *testing.T) {
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		_, _ = io.WriteString(w, `{"success":true,"data":{"content":null,"pageNumber":0,"pageSize":20,"totalElements":0,"last":true}}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	page, err := c.RootComments(context.Background(), 5, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, "page=0&size=20", query)
	assert.NotNil(t, page.Content)
}

func TestClient_NullFieldsDefault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success":true,"message":null,"data":{"id":9,"title":"t","content":"c","forumNo":3,
			"referencePath":null,"author":{"userId":1,"username":"u","email":"e","role":1},"attachments":null,
			"createdAt":"x","updatedAt":"y"}}`)
	}))
	defer srv.Close()

	topic, err := newTestClient(t, srv.URL).Topic(context.Background(), 9)
	require.NoError(t, err)
	assert.Nil(t, topic.ReferencePath)
	assert.NotNil(t, topic.Attachments)
	assert.Empty(t, topic.Attachments)
	assert.Equal(t, 0, topic.LikeCount)
	assert.Nil(t, topic.Author.Nickname)
}

func TestClient_NullDataIsDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success":true,"message":"ok","data":null}`)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Login(context.Background(), &dto.LoginRequest{Username: "a", Password: "b"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, code.ErrorDecode))
}

func TestClient_PermissionCheckQuery(t *testing.T) {
	b := apitest.New()
	defer b.Close()
	b.SetPermission(7, 101, true)

	c := newTestClient(t, b.URL())
	res, err := c.CheckPermission(context.Background(), 7, 101)
	require.NoError(t, err)
	assert.True(t, res.HasPermission)

	res, err = c.CheckPermission(context.Background(), 7, 102)
	require.NoError(t, err)
	assert.False(t, res.HasPermission)
}

func TestClient_RateLimitedDownload(t *testing.T) {
	b := apitest.New()
	defer b.Close()
	b.AddCourseRoot("101_DS")

	c, err := NewClient(Config{BaseURL: b.URL(), RateLimit: 1 << 20}, nil)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = c.UploadFile(ctx, dto.FilePart{FileName: "a.txt", Reader: strings.NewReader("limited")}, "101_DS")
	require.NoError(t, err)

	s, err := c.DownloadFile(ctx, "101_DS/a.txt")
	require.NoError(t, err)
	defer s.Close()
	data, err := io.ReadAll(s)
	require.NoError(t, err)
	assert.Equal(t, "limited", string(data))
}
