package apitest

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/haierkeys/bitshared-cli/internal/domain"
)

// lookup walks the stored tree by "/" separated path; returns the node,
// the slice holding it and its index there.
func (b *Backend) lookup(p string) (*domain.FileNode, *[]*domain.FileNode, int) {
	level := &b.roots
	var found *domain.FileNode
	idx := -1
	for i, seg := range strings.Split(p, "/") {
		if i > 0 {
			if found == nil || !found.IsDir() {
				return nil, nil, -1
			}
			level = &found.Children
		}
		found, idx = nil, -1
		for j, n := range *level {
			if n.Name == seg {
				found, idx = n, j
				break
			}
		}
		if found == nil {
			return nil, nil, -1
		}
	}
	return found, level, idx
}

// serverShape mimics the backend: only the leaf name in path for nested
// nodes and null children for files.
func serverShape(n *domain.FileNode) *domain.FileNode {
	out := &domain.FileNode{Name: n.Name, Path: n.Name, Type: n.Type}
	if n.IsDir() {
		out.Children = []*domain.FileNode{}
		for _, c := range n.Children {
			out.Children = append(out.Children, serverShape(c))
		}
	}
	return out
}

func (b *Backend) handleFileTree(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	prefix := r.PathValue("no")
	for _, root := range b.roots {
		if strings.HasPrefix(root.Name, prefix) {
			shaped := serverShape(root)
			shaped.Path = ""
			writeJSON(w, http.StatusOK, []*domain.FileNode{shaped})
			return
		}
	}
	writeJSON(w, http.StatusOK, []*domain.FileNode{})
}

func (b *Backend) handleCreateDir(w http.ResponseWriter, r *http.Request) {
	dir := strings.Trim(r.FormValue("dir"), "/")
	if dir == "" {
		fail(w, "目录不能为空")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if n, _, _ := b.lookup(dir); n != nil {
		fail(w, "目录已存在")
		return
	}
	parent, name := domain.SplitPath(dir)
	node := &domain.FileNode{Name: name, Type: domain.NodeTypeDirectory, Children: []*domain.FileNode{}}
	if parent == "" {
		b.roots = append(b.roots, node)
		ok(w, "创建成功")
		return
	}
	p, _, _ := b.lookup(parent)
	if p == nil || !p.IsDir() {
		fail(w, "父目录不存在")
		return
	}
	p.Children = append(p.Children, node)
	ok(w, "创建成功")
}

func (b *Backend) handleDelete(w http.ResponseWriter, r *http.Request) {
	dir := strings.Trim(r.FormValue("dir"), "/")
	b.mu.Lock()
	defer b.mu.Unlock()

	n, level, idx := b.lookup(dir)
	if n == nil {
		fail(w, "文件或目录不存在")
		return
	}
	*level = append((*level)[:idx], (*level)[idx+1:]...)
	for k := range b.files {
		if k == dir || strings.HasPrefix(k, dir+"/") {
			delete(b.files, k)
		}
	}
	ok(w, "删除成功")
}

func (b *Backend) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		fail(w, "invalid multipart")
		return
	}
	targetDir := strings.Trim(r.FormValue("targetDir"), "/")
	file, header, err := r.FormFile("file")
	if err != nil {
		fail(w, "缺少文件")
		return
	}
	defer file.Close()
	content, err := io.ReadAll(file)
	if err != nil {
		fail(w, "读取失败")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	dir, _, _ := b.lookup(targetDir)
	if dir == nil || !dir.IsDir() {
		fail(w, "目标目录不存在")
		return
	}
	full := domain.JoinPath(targetDir, header.Filename)
	if existing, _, _ := b.lookup(full); existing == nil {
		dir.Children = append(dir.Children, &domain.FileNode{Name: header.Filename, Type: domain.NodeTypeFile})
	}
	b.files[full] = content
	ok(w, "上传成功")
}

func (b *Backend) handleDownload(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	data, exists := b.files[r.URL.Query().Get("path")]
	b.mu.Unlock()

	if !exists {
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "文件不存在"})
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}
