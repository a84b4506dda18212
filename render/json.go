package render

import (
	"encoding/json"
	"io"

	"github.com/revelaction/reval/stat"
)

// JSONRenderer writes class distributions as JSON to a writer.
type JSONRenderer struct {
	W io.Writer
}

// NewJSONRenderer creates a JSONRenderer writing to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{W: w}
}

type jsonStats struct {
	Split        string       `json:"split"`
	Examples     int          `json:"examples"`
	Kept         int          `json:"kept"`
	Discarded    int          `json:"discarded"`
	Distribution []stat.Count `json:"distribution"`
}

// Render serializes the stats of each split as a JSON array, class counts
// most common first.
func (r *JSONRenderer) Render(stats []stat.Stats) error {
	out := make([]jsonStats, len(stats))
	for i, s := range stats {
		out[i] = jsonStats{
			Split:        s.Split,
			Examples:     s.Examples,
			Kept:         s.Kept,
			Discarded:    s.Discarded,
			Distribution: s.Distribution(),
		}
	}

	return json.NewEncoder(r.W).Encode(out)
}
