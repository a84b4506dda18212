package stat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler(t *testing.T) {
	h := NewHandler()
	h.Add("tr", "0")
	h.Add("tr", "1")
	h.Add("tr", "0")
	h.Discard("tr")
	h.Add("te", "1")

	all := h.Get()
	require.Len(t, all, 2)

	assert.Equal(t, "tr", all[0].Split)
	assert.Equal(t, 4, all[0].Examples)
	assert.Equal(t, 3, all[0].Kept)
	assert.Equal(t, 1, all[0].Discarded)
	assert.Equal(t, map[string]int{"0": 2, "1": 1}, all[0].Classes)

	assert.Equal(t, "te", all[1].Split)

	total := h.Total()
	assert.Equal(t, 5, total.Examples)
	assert.Equal(t, 1, total.Discarded)
	assert.Equal(t, map[string]int{"0": 2, "1": 2}, total.Classes)
}

func TestDistribution(t *testing.T) {
	s := Stats{Classes: map[string]int{"b": 2, "a": 2, "c": 5, "d": 1}}

	want := []Count{{"c", 5}, {"a", 2}, {"b", 2}, {"d", 1}}
	assert.Equal(t, want, s.Distribution())
}

func TestDistributionEmpty(t *testing.T) {
	assert.Empty(t, NewHandler().Total().Distribution())
}
