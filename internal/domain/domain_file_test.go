package domain

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomTree builds a server-shaped tree: unique sibling names, wrong paths,
// and a mix of nil and empty children.
func randomTree(r *rand.Rand, depth int) []*FileNode {
	n := r.Intn(4)
	nodes := make([]*FileNode, 0, n)
	for i := 0; i < n; i++ {
		node := &FileNode{
			Name: fmt.Sprintf("n%d_%d", i, r.Intn(100)),
			Path: fmt.Sprintf("bogus/%d", r.Intn(10)),
			Type: NodeTypeFile,
		}
		if depth > 0 && r.Intn(2) == 0 {
			node.Type = NodeTypeDirectory
			node.Children = randomTree(r, depth-1)
			if len(node.Children) == 0 && r.Intn(2) == 0 {
				node.Children = nil
			}
		}
		nodes = append(nodes, node)
	}
	return nodes
}

func checkPaths(t *testing.T, nodes []*FileNode, ancestors []string, seen map[string]bool) bool {
	for _, n := range nodes {
		want := strings.Join(append(append([]string{}, ancestors...), n.Name), "/")
		if n.Path != want {
			t.Logf("path mismatch: got %q want %q", n.Path, want)
			return false
		}
		if seen[n.Path] {
			t.Logf("duplicate path %q", n.Path)
			return false
		}
		seen[n.Path] = true
		if n.Children == nil {
			t.Logf("nil children at %q", n.Path)
			return false
		}
		if !checkPaths(t, n.Children, append(append([]string{}, ancestors...), n.Name), seen) {
			return false
		}
	}
	return true
}

// 每个节点路径等于祖先名称的拼接，且路径唯一
func TestProperty_NormalizeTreePaths(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("normalized path equals ancestor join", prop.ForAll(
		func(seed int64, depth int) bool {
			r := rand.New(rand.NewSource(seed))
			tree := NormalizeTree(randomTree(r, depth))
			return checkPaths(t, tree, nil, map[string]bool{})
		},
		gen.Int64(),
		gen.IntRange(0, 5),
	))

	properties.Property("removing a path leaves no node with that path", prop.ForAll(
		func(seed int64) bool {
			r := rand.New(rand.NewSource(seed))
			tree := NormalizeTree(randomTree(r, 3))

			var paths []string
			WalkTree(tree, func(n *FileNode, _ int) bool {
				paths = append(paths, n.Path)
				return true
			})
			if len(paths) == 0 {
				return len(RemoveByPath(tree, "missing")) == 0
			}
			target := paths[r.Intn(len(paths))]
			return FindByPath(RemoveByPath(tree, target), target) == nil
		},
		gen.Int64(),
	))

	properties.TestingRun(t)
}

func TestNormalizeTree(t *testing.T) {
	raw := []*FileNode{
		{Name: "docs", Path: "docs", Type: NodeTypeDirectory, Children: []*FileNode{
			{Name: "new", Path: "new", Type: NodeTypeDirectory},
			{Name: "a.pdf", Path: "a.pdf", Type: NodeTypeFile},
		}},
		{Name: "readme.md", Path: "x", Type: NodeTypeFile},
	}

	tree := NormalizeTree(raw)
	require.Len(t, tree, 2)
	assert.Equal(t, "docs", tree[0].Path)
	assert.Equal(t, "docs/new", tree[0].Children[0].Path)
	assert.Equal(t, "docs/a.pdf", tree[0].Children[1].Path)
	assert.Equal(t, "readme.md", tree[1].Path)
	assert.NotNil(t, tree[0].Children[0].Children)
	// 原始输入不被修改
	assert.Equal(t, "new", raw[0].Children[0].Path)
}

func TestRemoveByPath(t *testing.T) {
	tree := NormalizeTree([]*FileNode{
		{Name: "docs", Type: NodeTypeDirectory, Children: []*FileNode{
			{Name: "new", Type: NodeTypeDirectory},
		}},
	})

	out := RemoveByPath(tree, "docs/new")
	require.Len(t, out, 1)
	assert.Empty(t, out[0].Children)
	assert.NotNil(t, FindByPath(tree, "docs/new"), "source tree must be untouched")

	assert.Len(t, RemoveByPath(tree, "nope"), 1)
	assert.Empty(t, RemoveByPath(nil, "docs"))
}

func TestJoinAndSplitPath(t *testing.T) {
	assert.Equal(t, "new", JoinPath("", "new"))
	assert.Equal(t, "docs/new", JoinPath("docs", "new"))

	parent, name := SplitPath("docs/sub/a.pdf")
	assert.Equal(t, "docs/sub", parent)
	assert.Equal(t, "a.pdf", name)

	parent, name = SplitPath("a.pdf")
	assert.Equal(t, "", parent)
	assert.Equal(t, "a.pdf", name)
}

func TestCloneTree(t *testing.T) {
	tree := NormalizeTree([]*FileNode{{Name: "docs", Type: NodeTypeDirectory}})
	c := CloneTree(tree)
	c[0].Name = "changed"
	assert.Equal(t, "docs", tree[0].Name)
}
