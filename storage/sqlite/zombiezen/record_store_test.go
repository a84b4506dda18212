package zombiezen

import (
	"path/filepath"
	"testing"

	"github.com/revelaction/reval/probe"
	sent "github.com/revelaction/reval/sentence"
	"github.com/revelaction/reval/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *RecordStore {
	t.Helper()
	pool, err := NewPool(filepath.Join(t.TempDir(), "reval.db"))
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })

	return NewRecordStore(pool)
}

func records(n int) []probe.Record {
	out := make([]probe.Record, n)
	for i := range out {
		out[i] = probe.Record{
			Split: probe.Split(i % 3),
			Label: "1",
			Example: &sent.Example{
				Id:      string(rune('a' + i)),
				Tokens:  []string{"John", "saw", "Mary"},
				Head:    sent.Span{Start: 0, End: 0},
				Tail:    sent.Span{Start: 2, End: 2},
				Dep:     []string{"nsubj", "root", "dobj"},
				DepHead: []int{2, 0, 2},
			},
		}
	}
	return out
}

func TestRecordStore(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.Write("argument_head_grammatical_role", records(4)))
	require.NoError(t, s.Write("tree_depth", records(1)))

	got, err := s.Read("argument_head_grammatical_role")
	require.NoError(t, err)
	require.Len(t, got, 4)

	for i, r := range got {
		assert.Equal(t, probe.Split(i%3), r.Split)
		assert.Equal(t, "1", r.Label)
		assert.Equal(t, records(4)[i].Example, r.Example)
	}

	tasks, err := s.Tasks()
	require.NoError(t, err)
	assert.Equal(t, []string{"argument_head_grammatical_role", "tree_depth"}, tasks)
}

func TestRecordStoreReplacesTask(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.Write("tree_depth", records(5)))
	require.NoError(t, s.Write("tree_depth", records(2)))

	got, err := s.Read("tree_depth")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestRecordStoreMissingTask(t *testing.T) {
	s := newStore(t)

	_, err := s.Read("tree_depth")
	assert.ErrorIs(t, err, storage.ErrTaskNotFound)

	tasks, err := s.Tasks()
	require.NoError(t, err)
	assert.Empty(t, tasks)
}
