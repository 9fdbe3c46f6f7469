package fileurl

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinTreePath(t *testing.T) {
	assert.Equal(t, "new", JoinTreePath("", "new"))
	assert.Equal(t, "docs/new", JoinTreePath("docs", "new"))
	assert.Equal(t, "a/b/c", JoinTreePath("a/b", "c"))
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "file.pdf", BaseName("a/b/file.pdf"))
	assert.Equal(t, "file.pdf", BaseName("file.pdf"))
	assert.Equal(t, "x.png", BaseName("/uploads/forum/12/x.png"))
	assert.Equal(t, "", BaseName("dir/"))
}

func TestGetFileNameOrRandom(t *testing.T) {
	assert.Equal(t, "notes.txt", GetFileNameOrRandom("/tmp/notes.txt"))
	for _, in := range []string{"", " ", ".", "..", " .. ", "/", "a/..", "../.."} {
		name := GetFileNameOrRandom(in)
		assert.True(t, strings.HasPrefix(name, "file_"), "%q -> %q", in, name)
	}
}

func TestDetectMimeType(t *testing.T) {
	assert.Equal(t, "application/pdf", DetectMimeType("a.PDF", nil))
	assert.Equal(t, "image/png", DetectMimeType("noext", []byte("\x89PNG\r\n\x1a\n0000")))
	assert.Equal(t, DefaultMimeType, DetectMimeType("noext", nil))
}

func TestCreatePathAndIsExist(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "a", "b", "c.txt")
	assert.False(t, IsExist(dst))
	assert.NoError(t, CreatePath(dst, 0755))
	assert.True(t, IsDir(filepath.Dir(dst)))
	assert.NoError(t, os.WriteFile(dst, []byte("x"), 0644))
	assert.True(t, IsExist(dst))
}
