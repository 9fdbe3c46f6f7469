package domain

import "strings"

// NodeType 文件树节点类型
type NodeType string

const (
	NodeTypeFile      NodeType = "file"
	NodeTypeDirectory NodeType = "directory"
)

// FileNode 课程资料文件树节点
// The server does not supply correct paths for nested nodes;
// NormalizeTree rebuilds them from ancestor names.
type FileNode struct {
	Name     string      `json:"name"`
	Path     string      `json:"path"`
	Type     NodeType    `json:"type"`
	Children []*FileNode `json:"children"`
}

// IsDir 是否为目录
func (n *FileNode) IsDir() bool {
	return n.Type == NodeTypeDirectory
}

// TreeState 文件树状态
type TreeState int

const (
	TreeStateEmpty TreeState = iota
	TreeStateLoading
	TreeStatePopulated
)

func (s TreeState) String() string {
	switch s {
	case TreeStateLoading:
		return "loading"
	case TreeStatePopulated:
		return "populated"
	default:
		return "empty"
	}
}

// JoinPath 拼接父路径与名称，根目录为空前缀
func JoinPath(parentPath, name string) string {
	if parentPath == "" {
		return name
	}
	return parentPath + "/" + name
}

// NormalizeTree returns a copy of nodes whose Path is the "/" join of all
// ancestor names plus the node name. Nil children become empty slices.
// NormalizeTree 按祖先名称重建每个节点的路径，返回新树
func NormalizeTree(nodes []*FileNode) []*FileNode {
	return normalize(nodes, "")
}

func normalize(nodes []*FileNode, parentPath string) []*FileNode {
	out := make([]*FileNode, 0, len(nodes))
	for _, n := range nodes {
		if n == nil {
			continue
		}
		p := JoinPath(parentPath, n.Name)
		out = append(out, &FileNode{
			Name:     n.Name,
			Path:     p,
			Type:     n.Type,
			Children: normalize(n.Children, p),
		})
	}
	return out
}

// RemoveByPath drops every node whose Path equals target at any depth.
// An absent target leaves the tree unchanged.
// RemoveByPath 递归移除路径匹配的节点
func RemoveByPath(nodes []*FileNode, target string) []*FileNode {
	out := make([]*FileNode, 0, len(nodes))
	for _, n := range nodes {
		if n.Path == target {
			continue
		}
		out = append(out, &FileNode{
			Name:     n.Name,
			Path:     n.Path,
			Type:     n.Type,
			Children: RemoveByPath(n.Children, target),
		})
	}
	return out
}

// FindByPath 查找节点，不存在返回 nil
func FindByPath(nodes []*FileNode, target string) *FileNode {
	var found *FileNode
	WalkTree(nodes, func(n *FileNode, _ int) bool {
		if n.Path == target {
			found = n
			return false
		}
		return true
	})
	return found
}

// CloneTree 深拷贝
func CloneTree(nodes []*FileNode) []*FileNode {
	out := make([]*FileNode, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, &FileNode{
			Name:     n.Name,
			Path:     n.Path,
			Type:     n.Type,
			Children: CloneTree(n.Children),
		})
	}
	return out
}

// WalkTree visits nodes depth-first in order; returning false stops the walk.
func WalkTree(nodes []*FileNode, fn func(n *FileNode, depth int) bool) {
	walk(nodes, 0, fn)
}

func walk(nodes []*FileNode, depth int, fn func(n *FileNode, depth int) bool) bool {
	for _, n := range nodes {
		if !fn(n, depth) {
			return false
		}
		if !walk(n.Children, depth+1, fn) {
			return false
		}
	}
	return true
}

// SplitPath 将路径拆分为父路径和名称
func SplitPath(p string) (parent, name string) {
	i := strings.LastIndex(p, "/")
	if i < 0 {
		return "", p
	}
	return p[:i], p[i+1:]
}
