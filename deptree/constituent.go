package deptree

import (
	sent "github.com/revelaction/reval/sentence"
)

// Constituent is the attachment point of a span that is governed from
// outside by a single token.
type Constituent struct {
	// Index is the span token attached to the outside governor.
	Index int

	// Governor is the 1-based head value of Index, 0 if Index is the root.
	Governor int

	// Rel is the relation label of Index, the grammatical role of the whole
	// span.
	Rel string
}

// CommonHead tests whether span is governed from outside by exactly one
// token. The governors of the span tokens that fall outside the span are
// collected; if there is not exactly one distinct value the span is not a
// constituent and ok is false.
//
// When several span tokens attach to the outside governor, the last one
// in token order is returned.
func (t *Tree) CommonHead(span sent.Span) (c Constituent, ok bool) {
	if span.End < span.Start {
		return Constituent{}, false
	}

	outside := map[int]struct{}{}
	for i := span.Start; i <= span.End; i++ {
		if !t.Contains(i) {
			return Constituent{}, false
		}

		if !span.Contains(t.Governor(i) - 1) {
			outside[t.Governor(i)] = struct{}{}
		}
	}

	if len(outside) != 1 {
		return Constituent{}, false
	}

	var g int
	for v := range outside {
		g = v
	}

	last := none
	for i := span.Start; i <= span.End; i++ {
		if t.Governor(i) == g {
			last = i
		}
	}

	return Constituent{Index: last, Governor: g, Rel: t.Rel(last)}, true
}
