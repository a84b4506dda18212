package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/revelaction/reval/stat"
)

func TestJSONRendererRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONRenderer(&buf)
	if err := r.Render(nil); err != nil {
		t.Fatalf("render: %v", err)
	}

	var results []jsonStats
	if err := json.Unmarshal(buf.Bytes(), &results); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if len(results) != 0 {
		t.Fatalf("expected 0 results, got %d", len(results))
	}
}

func TestJSONRendererRenderStats(t *testing.T) {
	h := stat.NewHandler()
	h.Add("tr", "1")
	h.Add("tr", "0")
	h.Add("tr", "1")
	h.Discard("tr")
	h.Add("te", "0")

	var buf bytes.Buffer
	r := NewJSONRenderer(&buf)
	if err := r.Render(h.Get()); err != nil {
		t.Fatalf("render: %v", err)
	}

	var results []jsonStats
	if err := json.Unmarshal(buf.Bytes(), &results); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	tr := results[0]
	if tr.Split != "tr" || tr.Examples != 4 || tr.Kept != 3 || tr.Discarded != 1 {
		t.Errorf("unexpected train stats: %+v", tr)
	}

	want := []stat.Count{{Label: "1", N: 2}, {Label: "0", N: 1}}
	if len(tr.Distribution) != len(want) {
		t.Fatalf("expected %d classes, got %d", len(want), len(tr.Distribution))
	}
	for i, c := range want {
		if tr.Distribution[i] != c {
			t.Errorf("class %d: expected %+v, got %+v", i, c, tr.Distribution[i])
		}
	}

	if !bytes.Contains(buf.Bytes(), []byte(`"count":2`)) {
		t.Errorf("expected count field in %s", buf.String())
	}
}
