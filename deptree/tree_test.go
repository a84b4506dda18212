package deptree

import (
	"errors"
	"testing"

	sent "github.com/revelaction/reval/sentence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The quick fox jumped over the lazy dog .
var (
	foxTokens = []string{"The", "quick", "fox", "jumped", "over", "the", "lazy", "dog", "."}
	foxHeads  = []int{3, 3, 4, 0, 8, 8, 8, 4, 4}
	foxRels   = []string{"det", "amod", "nsubj", "root", "case", "det", "amod", "obl", "punct"}
)

func foxTree(t *testing.T) *Tree {
	t.Helper()
	tree, err := Build(foxHeads, foxRels, foxTokens)
	require.NoError(t, err)
	return tree
}

// countEdges returns the number of nodes without parent and the number of
// parent edges of tree.
func countEdges(tree *Tree) (roots, edges int) {
	for _, n := range tree.Nodes() {
		if _, ok := tree.Parent(n); ok {
			edges++
			continue
		}
		roots++
	}
	return roots, edges
}

func TestBuild(t *testing.T) {
	tree, err := Build([]int{2, 0, 2}, []string{"nsubj", "root", "dobj"}, []string{"John", "saw", "Mary"})
	require.NoError(t, err)

	assert.Equal(t, 1, tree.Root())
	assert.Equal(t, 3, tree.Len())
	assert.Equal(t, []int{0, 2}, tree.Children(1))
	assert.Equal(t, "dobj", tree.Rel(2))
	assert.Equal(t, "Mary", tree.Text(2))
	assert.Equal(t, 2, tree.Governor(0))
	assert.Equal(t, 0, tree.Governor(1))

	p, ok := tree.Parent(0)
	assert.True(t, ok)
	assert.Equal(t, 1, p)

	_, ok = tree.Parent(1)
	assert.False(t, ok)

	roots, edges := countEdges(tree)
	assert.Equal(t, 1, roots)
	assert.Equal(t, 2, edges)
}

func TestBuildWithoutLabels(t *testing.T) {
	tree, err := Build([]int{0, 1}, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "", tree.Rel(1))
	assert.Equal(t, "", tree.Text(1))
	assert.Equal(t, 1, tree.Depth())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		heads []int
		n     int
		node  int
	}{
		{"length mismatch", []int{0, 1}, 3, -1},
		{"empty", []int{}, 0, -1},
		{"out of range", []int{0, 4, 1}, 3, 1},
		{"negative", []int{0, -1}, 2, 1},
		{"no root", []int{2, 1}, 2, -1},
		{"two roots", []int{0, 1, 0}, 3, 2},
		{"self loop", []int{0, 2}, 2, 1},
		{"cycle", []int{0, 3, 2}, 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.heads, tt.n)
			var tce *TreeConstructionError
			require.True(t, errors.As(err, &tce), "expected TreeConstructionError, got %v", err)
			assert.Equal(t, tt.node, tce.Node)
		})
	}

	assert.NoError(t, Validate(foxHeads, len(foxHeads)))
}

func TestBuildRejectsLabelMismatch(t *testing.T) {
	_, err := Build([]int{0, 1}, []string{"root"}, nil)
	var tce *TreeConstructionError
	assert.True(t, errors.As(err, &tce))
}

func TestFromExample(t *testing.T) {
	ex := &sent.Example{Id: "e", Tokens: foxTokens, DepHead: foxHeads, Dep: foxRels}
	tree, err := FromExample(ex)
	require.NoError(t, err)
	assert.Equal(t, 3, tree.Root())

	ex = &sent.Example{Id: "e", Tokens: foxTokens, Dep: foxRels}
	_, err = FromExample(ex)
	var dfe *sent.DataFormatError
	assert.True(t, errors.As(err, &dfe))

	ex = &sent.Example{Id: "bad", Tokens: []string{"a", "b"}, DepHead: []int{2, 1}, Dep: []string{"x", "y"}}
	_, err = FromExample(ex)
	var tce *TreeConstructionError
	require.True(t, errors.As(err, &tce))
	assert.Contains(t, err.Error(), "example bad")
}

func TestDepth(t *testing.T) {
	assert.Equal(t, 2, foxTree(t).Depth())

	single, err := Build([]int{0}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, single.Depth())

	chain, err := Build([]int{0, 1, 2, 3, 4}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, chain.Depth())
}

func TestAncestorPath(t *testing.T) {
	tree := foxTree(t)

	assert.Equal(t, []int{3, 2, 0}, tree.AncestorPath(0))
	assert.Equal(t, []int{3}, tree.AncestorPath(3))
	assert.Equal(t, []int{3, 7, 4}, tree.AncestorPath(4))
	assert.Nil(t, tree.AncestorPath(42))
}

func TestLowestCommonAncestor(t *testing.T) {
	tree := foxTree(t)

	tests := []struct {
		name  string
		nodes []int
		want  int
	}{
		{"single node", []int{4}, 4},
		{"siblings", []int{0, 1}, 2},
		{"node and its ancestor", []int{0, 2}, 2},
		{"across the root", []int{0, 4}, 3},
		{"whole noun phrase", []int{5, 6, 7}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tree.LowestCommonAncestor(tt.nodes)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := tree.LowestCommonAncestor(nil)
	assert.ErrorIs(t, err, ErrNoNodes)

	_, err = tree.LowestCommonAncestor([]int{1, 20})
	assert.ErrorIs(t, err, ErrNodeNotFound)
}
