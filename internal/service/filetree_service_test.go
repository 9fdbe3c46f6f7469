package service

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/haierkeys/bitshared-cli/internal/api/apitest"
	"github.com/haierkeys/bitshared-cli/internal/domain"
	"github.com/haierkeys/bitshared-cli/internal/dto"
	"github.com/haierkeys/bitshared-cli/pkg/code"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCourse = int64(101)

// seedTree builds 101_DS/{docs/{a.txt}, slides}
func seedTree(t *testing.T) (*apitest.Backend, FileTreeService) {
	t.Helper()
	b := apitest.New()
	t.Cleanup(b.Close)
	b.AddCourseRoot("101_DS")

	c := newClient(t, b)
	ctx := context.Background()
	_, err := c.CreateDirectory(ctx, "101_DS/docs")
	require.NoError(t, err)
	_, err = c.CreateDirectory(ctx, "101_DS/slides")
	require.NoError(t, err)
	_, err = c.UploadFile(ctx, dto.FilePart{FileName: "a.txt", Reader: strings.NewReader("hello")}, "101_DS/docs")
	require.NoError(t, err)

	return b, NewFileTreeService(c, newSink(t), newPool(t), nil)
}

func paths(nodes []*domain.FileNode) []string {
	var out []string
	domain.WalkTree(nodes, func(n *domain.FileNode, _ int) bool {
		out = append(out, n.Path)
		return true
	})
	return out
}

func TestFileTree_FetchNormalizesPaths(t *testing.T) {
	_, svc := seedTree(t)
	assert.Equal(t, domain.TreeStateEmpty, svc.State())

	tree, err := svc.Fetch(context.Background(), testCourse)
	require.NoError(t, err)
	assert.Equal(t, domain.TreeStatePopulated, svc.State())
	assert.ElementsMatch(t,
		[]string{"101_DS", "101_DS/docs", "101_DS/docs/a.txt", "101_DS/slides"},
		paths(tree))

	file := svc.Find("101_DS/docs/a.txt")
	require.NotNil(t, file)
	assert.False(t, file.IsDir())
	assert.NotNil(t, file.Children)
}

func TestFileTree_FetchFailureClears(t *testing.T) {
	b, svc := seedTree(t)
	ctx := context.Background()
	_, err := svc.Fetch(ctx, testCourse)
	require.NoError(t, err)

	b.FailNext("/api/course/101/file-tree", apitest.Fault{Status: http.StatusInternalServerError})
	_, err = svc.Fetch(ctx, testCourse)
	require.Error(t, err)
	assert.True(t, errors.Is(err, code.ErrorServer))
	assert.Equal(t, domain.TreeStateEmpty, svc.State())
	assert.Empty(t, svc.Tree())
}

func TestFileTree_CreateDirectoryAppearsAfterRefetch(t *testing.T) {
	_, svc := seedTree(t)
	ctx := context.Background()

	require.NoError(t, svc.CreateDirectory(ctx, "101_DS/docs", "new", testCourse))
	node := svc.Find("101_DS/docs/new")
	require.NotNil(t, node)
	assert.True(t, node.IsDir())
}

func TestFileTree_CreateDirectoryRejectsBadName(t *testing.T) {
	b, svc := seedTree(t)
	for _, name := range []string{"", "  ", "a/b", ".."} {
		err := svc.CreateDirectory(context.Background(), "101_DS", name, testCourse)
		assert.True(t, errors.Is(err, code.ErrorInvalidParams), name)
	}
	assert.Equal(t, 2, b.Calls("/api/files/create_dir"))
}

func TestFileTree_CreateDirectoryFailureNoRefetch(t *testing.T) {
	b, svc := seedTree(t)
	ctx := context.Background()
	_, err := svc.Fetch(ctx, testCourse)
	require.NoError(t, err)
	before := b.Calls("/api/course")

	err = svc.CreateDirectory(ctx, "101_DS", "docs", testCourse)
	require.Error(t, err)
	assert.True(t, errors.Is(err, code.ErrorServer))
	assert.Equal(t, before, b.Calls("/api/course"))
}

func TestFileTree_DeleteThenRefetch(t *testing.T) {
	_, svc := seedTree(t)
	ctx := context.Background()
	_, err := svc.Fetch(ctx, testCourse)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "101_DS/docs", testCourse))
	assert.NotContains(t, paths(svc.Tree()), "101_DS/docs")
	assert.NotContains(t, paths(svc.Tree()), "101_DS/docs/a.txt")
	assert.Contains(t, paths(svc.Tree()), "101_DS/slides")

	// 删除不存在的路径只返回错误
	err = svc.Delete(ctx, "101_DS/missing", testCourse)
	require.Error(t, err)
	assert.Equal(t, domain.TreeStatePopulated, svc.State())
}

func TestFileTree_UploadAndDownload(t *testing.T) {
	b, svc := seedTree(t)
	ctx := context.Background()

	err := svc.Upload(ctx, dto.FilePart{FileName: "b.md", Reader: strings.NewReader("# notes")}, "/101_DS/slides/", testCourse)
	require.NoError(t, err)
	require.NotNil(t, svc.Find("101_DS/slides/b.md"))
	data, ok := b.StoredFile("101_DS/slides/b.md")
	require.True(t, ok)
	assert.Equal(t, "# notes", string(data))

	loc, err := svc.Download(ctx, "101_DS/slides/b.md")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(loc, "b.md"))
	saved, err := os.ReadFile(loc)
	require.NoError(t, err)
	assert.Equal(t, "# notes", string(saved))
}

func TestFileTree_DownloadMissing(t *testing.T) {
	_, svc := seedTree(t)
	_, err := svc.Download(context.Background(), "101_DS/none.pdf")
	require.Error(t, err)
	assert.True(t, errors.Is(err, code.ErrorServer))
}

func TestFileTree_DownloadWithoutSink(t *testing.T) {
	b := apitest.New()
	defer b.Close()
	svc := NewFileTreeService(newClient(t, b), nil, nil, nil)
	_, err := svc.Download(context.Background(), "x/y.txt")
	assert.True(t, errors.Is(err, code.ErrorStorageNotEnabled))
}

func TestFileTree_ConcurrentFetch(t *testing.T) {
	_, svc := seedTree(t)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Fetch(context.Background(), testCourse)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, domain.TreeStatePopulated, svc.State())
	assert.Len(t, paths(svc.Tree()), 4)
}

func TestFileTree_MutationFailures(t *testing.T) {
	tests := []struct {
		name    string
		fault   string
		run     func(ctx context.Context, svc FileTreeService) error
		refetch int
		state   domain.TreeState
	}{
		{
			name:  "upload rejected",
			fault: "/api/files/upload",
			run: func(ctx context.Context, svc FileTreeService) error {
				return svc.Upload(ctx, dto.FilePart{FileName: "c.txt", Reader: strings.NewReader("c")}, "101_DS", testCourse)
			},
			refetch: 0,
			state:   domain.TreeStatePopulated,
		},
		{
			name:  "delete ok refetch fails",
			fault: "/api/course/101/file-tree",
			run: func(ctx context.Context, svc FileTreeService) error {
				return svc.Delete(ctx, "101_DS/slides", testCourse)
			},
			refetch: 1,
			state:   domain.TreeStateEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, svc := seedTree(t)
			ctx := context.Background()
			_, err := svc.Fetch(ctx, testCourse)
			require.NoError(t, err)
			before := b.Calls("/api/course")

			b.FailNext(tt.fault, apitest.Fault{Status: http.StatusInternalServerError, Message: "boom"})
			err = tt.run(ctx, svc)
			require.Error(t, err)
			assert.True(t, errors.Is(err, code.ErrorServer))
			assert.Equal(t, before+tt.refetch, b.Calls("/api/course"))
			assert.Equal(t, tt.state, svc.State())
			if tt.state == domain.TreeStateEmpty {
				assert.Empty(t, svc.Tree())
			} else {
				assert.Nil(t, svc.Find("101_DS/c.txt"))
				assert.NotNil(t, svc.Find("101_DS/slides"))
			}
		})
	}
}

// gatedTree blocks FileTree until release is closed or its ctx ends
type gatedTree struct {
	fileTreeAPI
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *gatedTree) FileTree(ctx context.Context, courseNo int64) ([]*domain.FileNode, error) {
	g.once.Do(func() { close(g.started) })
	select {
	case <-g.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return g.fileTreeAPI.FileTree(ctx, courseNo)
}

func TestFileTree_FetchSurvivesOtherCallerCancel(t *testing.T) {
	b, _ := seedTree(t)
	gate := &gatedTree{
		fileTreeAPI: newClient(t, b),
		started:     make(chan struct{}),
		release:     make(chan struct{}),
	}
	svc := NewFileTreeService(gate, nil, nil, nil)

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := svc.Fetch(ctxA, testCourse)
		errA <- err
	}()
	<-gate.started

	errB := make(chan error, 1)
	go func() {
		_, err := svc.Fetch(context.Background(), testCourse)
		errB <- err
	}()
	time.Sleep(20 * time.Millisecond)

	cancelA()
	assert.ErrorIs(t, <-errA, context.Canceled)

	close(gate.release)
	require.NoError(t, <-errB)
	assert.Equal(t, domain.TreeStatePopulated, svc.State())
	assert.Len(t, paths(svc.Tree()), 4)
}
