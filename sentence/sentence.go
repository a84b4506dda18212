package sentence

import (
	"encoding/json"
	"fmt"
)

// Span is an inclusive, 0-based run of tokens of a sentence.
type Span struct {
	Start int
	End   int
}

// Len returns the number of tokens covered by the span.
func (s Span) Len() int {
	return s.End - s.Start + 1
}

func (s Span) Contains(i int) bool {
	return i >= s.Start && i <= s.End
}

// Indices returns the token indexes of the span in increasing order.
func (s Span) Indices() []int {
	if s.End < s.Start {
		return nil
	}

	idx := make([]int, 0, s.Len())
	for i := s.Start; i <= s.End; i++ {
		idx = append(idx, i)
	}

	return idx
}

// Overlaps reports whether both spans share at least one token.
func (s Span) Overlaps(o Span) bool {
	return s.Start <= o.End && o.Start <= s.End
}

func (s Span) String() string {
	return fmt.Sprintf("(%d,%d)", s.Start, s.End)
}

// MarshalJSON encodes the span as a two element array, the layout used by
// the jsonl datasets.
func (s Span) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{s.Start, s.End})
}

func (s *Span) UnmarshalJSON(data []byte) error {
	var pair []int
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}

	if len(pair) != 2 {
		return fmt.Errorf("span must have two elements, got %d", len(pair))
	}

	s.Start, s.End = pair[0], pair[1]
	return nil
}

// Example is a sentence with a dependency parse and two marked arguments
// (head and tail) of a candidate relation.
type Example struct {
	// Id of the example in the source dataset, empty if the dataset has none.
	Id string `json:"id,omitempty"`

	Tokens []string `json:"tokens"`

	// Label is the relation label of the source dataset. Used to stratify
	// the train/validation split.
	Label string `json:"label"`

	Head Span `json:"head"`
	Tail Span `json:"tail"`

	Ner []string `json:"ner,omitempty"`
	Pos []string `json:"pos,omitempty"`

	// Dep is the relation label of each token to its governor.
	Dep []string `json:"dep,omitempty"`

	// DepHead is the 1-based governor of each token, 0 marks the root.
	DepHead []int `json:"dep_head,omitempty"`

	HeadType string `json:"head_type,omitempty"`
	TailType string `json:"tail_type,omitempty"`
}

// Len returns the number of tokens of the example.
func (e *Example) Len() int {
	return len(e.Tokens)
}

// Validate checks that the annotation sequences present in the example
// agree in length with the tokens and that both spans lie inside the
// sentence.
func (e *Example) Validate() error {
	if len(e.Tokens) == 0 {
		return &DataFormatError{Id: e.Id, Field: FieldTokens, Reason: "no tokens"}
	}

	n := len(e.Tokens)
	lengths := []struct {
		field Field
		len   int
		set   bool
	}{
		{FieldNer, len(e.Ner), e.Ner != nil},
		{FieldPos, len(e.Pos), e.Pos != nil},
		{FieldDep, len(e.Dep), e.Dep != nil},
		{FieldDepHead, len(e.DepHead), e.DepHead != nil},
	}

	for _, l := range lengths {
		if l.set && l.len != n {
			return &DataFormatError{
				Id:     e.Id,
				Field:  l.field,
				Reason: fmt.Sprintf("has %d elements, tokens has %d", l.len, n),
			}
		}
	}

	if err := e.checkSpan(FieldHead, e.Head); err != nil {
		return err
	}

	return e.checkSpan(FieldTail, e.Tail)
}

func (e *Example) checkSpan(f Field, s Span) error {
	if s.Start < 0 || s.End < s.Start || s.End >= len(e.Tokens) {
		return &DataFormatError{
			Id:     e.Id,
			Field:  f,
			Reason: fmt.Sprintf("span %s outside of sentence with %d tokens", s, len(e.Tokens)),
		}
	}

	return nil
}

// Require returns a DataFormatError for the first of fields the example
// does not carry.
func (e *Example) Require(fields ...Field) error {
	for _, f := range fields {
		var missing bool
		switch f {
		case FieldTokens:
			missing = len(e.Tokens) == 0
		case FieldNer:
			missing = e.Ner == nil
		case FieldPos:
			missing = e.Pos == nil
		case FieldDep:
			missing = e.Dep == nil
		case FieldDepHead:
			missing = e.DepHead == nil
		case FieldHeadType:
			missing = e.HeadType == ""
		case FieldTailType:
			missing = e.TailType == ""
		}

		if missing {
			return &DataFormatError{Id: e.Id, Field: f, Reason: "missing"}
		}
	}

	return nil
}
