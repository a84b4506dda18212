package deptree

import (
	"fmt"
	"sort"

	sent "github.com/revelaction/reval/sentence"
)

// Prune restricts t to the part connecting the head and tail spans.
//
//   - k < 0 returns t unchanged.
//   - k == 0 keeps the shortest dependency path: the ancestor path of every
//     span token, cut at the lowest common ancestor of all span tokens.
//   - k > 0 additionally keeps every node within k hops, over parent and
//     child edges, of the shortest dependency path.
//
// The result is rooted at the kept node closest to the root of t, and each
// kept node hangs from its nearest kept ancestor.
func Prune(t *Tree, head, tail sent.Span, k int) (*Tree, error) {
	if k < 0 {
		return t, nil
	}

	nodes := spanNodes(head, tail)
	lca, err := t.LowestCommonAncestor(nodes)
	if err != nil {
		return nil, fmt.Errorf("prune head %s tail %s: %w", head, tail, err)
	}

	keep := make([]bool, len(t.parent))
	for _, n := range nodes {
		for j := n; ; j = t.parent[j] {
			keep[j] = true
			if j == lca {
				break
			}
		}
	}

	if k > 0 {
		t.expand(keep, k)
	}

	return t.induce(keep), nil
}

// spanNodes returns the union of the token indexes of both spans, sorted.
func spanNodes(head, tail sent.Span) []int {
	seen := map[int]bool{}
	nodes := []int{}
	for _, s := range []sent.Span{head, tail} {
		for _, i := range s.Indices() {
			if !seen[i] {
				seen[i] = true
				nodes = append(nodes, i)
			}
		}
	}

	sort.Ints(nodes)
	return nodes
}

// expand adds to keep every node reachable from a kept node in at most
// maxHops steps over the undirected tree.
func (t *Tree) expand(keep []bool, maxHops int) {
	dist := make([]int, len(keep))
	queue := []int{}
	for i, k := range keep {
		dist[i] = none
		if k {
			dist[i] = 0
			queue = append(queue, i)
		}
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if dist[current] >= maxHops {
			continue
		}

		neighbors := t.children[current]
		if p := t.parent[current]; p != none {
			neighbors = append([]int{p}, neighbors...)
		}

		for _, n := range neighbors {
			if dist[n] != none {
				continue
			}

			dist[n] = dist[current] + 1
			keep[n] = true
			queue = append(queue, n)
		}
	}
}

// induce returns the subtree of t made of the kept nodes. keep must select
// a connected set of nodes of t.
func (t *Tree) induce(keep []bool) *Tree {
	sub := newTree(len(t.parent))
	sub.rel = t.rel
	sub.text = t.text

	for i, k := range keep {
		if !k || !t.kept[i] {
			continue
		}

		sub.kept[i] = true
		sub.size++

		p := t.parent[i]
		for p != none && !keep[p] {
			p = t.parent[p]
		}

		if p == none {
			sub.root = i
			continue
		}

		sub.parent[i] = p
		sub.children[p] = append(sub.children[p], i)
	}

	return sub
}
