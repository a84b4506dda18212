package stat

import (
	"sort"
)

// Handler aggregates class distributions of generated examples, per split.
// A Handler is not safe for concurrent use.
type Handler struct {
	stats map[string]*Stats
	order []string
}

type Stats struct {
	Split     string
	Examples  int
	Kept      int
	Discarded int
	Classes   map[string]int
}

// Count is the number of examples of one class.
type Count struct {
	Label string `json:"label"`
	N     int    `json:"count"`
}

func NewHandler() *Handler {
	return &Handler{
		stats: map[string]*Stats{},
	}
}

func (h *Handler) split(name string) *Stats {
	s, ok := h.stats[name]
	if !ok {
		s = &Stats{Split: name, Classes: map[string]int{}}
		h.stats[name] = s
		h.order = append(h.order, name)
	}
	return s
}

// Touch registers split without counting any example.
func (h *Handler) Touch(split string) {
	h.split(split)
}

// Add counts a kept example of class label.
func (h *Handler) Add(split, label string) {
	s := h.split(split)
	s.Examples++
	s.Kept++
	s.Classes[label]++
}

// Discard counts an example left out of the dataset.
func (h *Handler) Discard(split string) {
	s := h.split(split)
	s.Examples++
	s.Discarded++
}

// Get returns the stats of every split in order of first appearance.
func (h *Handler) Get() []Stats {
	all := make([]Stats, 0, len(h.order))
	for _, name := range h.order {
		all = append(all, *h.stats[name])
	}
	return all
}

// Total merges the stats of all splits.
func (h *Handler) Total() Stats {
	total := Stats{Split: "all", Classes: map[string]int{}}
	for _, name := range h.order {
		s := h.stats[name]
		total.Examples += s.Examples
		total.Kept += s.Kept
		total.Discarded += s.Discarded
		for l, n := range s.Classes {
			total.Classes[l] += n
		}
	}
	return total
}

// Distribution returns the class counts, most common first. Ties are
// ordered by label.
func (s Stats) Distribution() []Count {
	dis := make([]Count, 0, len(s.Classes))
	for l, n := range s.Classes {
		dis = append(dis, Count{Label: l, N: n})
	}

	sort.Slice(dis, func(i, j int) bool {
		if dis[i].N != dis[j].N {
			return dis[i].N > dis[j].N
		}
		return dis[i].Label < dis[j].Label
	})

	return dis
}
