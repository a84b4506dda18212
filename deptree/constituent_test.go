package deptree

import (
	"testing"

	sent "github.com/revelaction/reval/sentence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommonHead(t *testing.T) {
	tree := foxTree(t)

	tests := []struct {
		name string
		span sent.Span
		want Constituent
		ok   bool
	}{
		{"noun phrase subject", sent.Span{Start: 0, End: 2}, Constituent{Index: 2, Governor: 4, Rel: "nsubj"}, true},
		{"single token", sent.Span{Start: 6, End: 6}, Constituent{Index: 6, Governor: 8, Rel: "amod"}, true},
		{"span containing the root", sent.Span{Start: 1, End: 3}, Constituent{Index: 3, Governor: 0, Rel: "root"}, true},
		{"two outside governors", sent.Span{Start: 2, End: 4}, Constituent{}, false},
		{"last attached token wins", sent.Span{Start: 7, End: 8}, Constituent{Index: 8, Governor: 4, Rel: "punct"}, true},
		{"outside the sentence", sent.Span{Start: 8, End: 9}, Constituent{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tree.CommonHead(tt.span)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCommonHeadJohnSawMary(t *testing.T) {
	tree, err := Build([]int{2, 0, 2}, []string{"nsubj", "root", "dobj"}, []string{"John", "saw", "Mary"})
	require.NoError(t, err)

	c, ok := tree.CommonHead(sent.Span{Start: 0, End: 0})
	require.True(t, ok)
	assert.Equal(t, Constituent{Index: 0, Governor: 2, Rel: "nsubj"}, c)
}
