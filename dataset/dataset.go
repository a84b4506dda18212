package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/revelaction/reval/probe"
	sent "github.com/revelaction/reval/sentence"
)

// Format is the layout of a dataset file.
type Format int

const (
	// JSONL has one json object per line, with the spans of both
	// arguments in "entities".
	JSONL Format = iota

	// TACRED is a json array of examples with the stanford annotations.
	TACRED
)

func (f Format) String() string {
	switch f {
	case JSONL:
		return "jsonl"
	case TACRED:
		return "tacred"
	}
	return "unknown"
}

func ParseFormat(s string) (Format, error) {
	switch s {
	case "jsonl":
		return JSONL, nil
	case "tacred":
		return TACRED, nil
	}
	return 0, &probe.ConfigurationError{Field: "format", Value: s, Reason: "not a valid dataset format"}
}

// Load reads the dataset at path in the given format.
func Load(format Format, path string) ([]*sent.Example, error) {
	switch format {
	case JSONL:
		return LoadJSONL(path)
	case TACRED:
		return LoadTACRED(path)
	}
	return nil, &probe.ConfigurationError{Field: "format", Value: format.String(), Reason: "not a valid dataset format"}
}

type jsonlExample struct {
	Id       string      `json:"id"`
	Tokens   []string    `json:"tokens"`
	Entities []sent.Span `json:"entities"`
	Label    string      `json:"label"`
	Ner      []string    `json:"ner"`
	Pos      []string    `json:"pos"`
	Dep      []string    `json:"dep"`
	DepHead  []int       `json:"dep_head"`
	HeadType string      `json:"head_type"`
	TailType string      `json:"tail_type"`
}

// maxLine is the longest line LoadJSONL accepts.
const maxLine = 4 * 1024 * 1024

// LoadJSONL reads a file with one json example per line. Empty lines are
// skipped.
func LoadJSONL(path string) ([]*sent.Example, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var examples []*sent.Example

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLine)

	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}

		var je jsonlExample
		if err := json.Unmarshal(scanner.Bytes(), &je); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}

		if len(je.Entities) != 2 {
			return nil, &sent.DataFormatError{
				Id:     je.Id,
				Field:  sent.FieldHead,
				Reason: fmt.Sprintf("line %d: entities must hold two spans, got %d", line, len(je.Entities)),
			}
		}

		examples = append(examples, &sent.Example{
			Id:       je.Id,
			Tokens:   je.Tokens,
			Label:    je.Label,
			Head:     je.Entities[0],
			Tail:     je.Entities[1],
			Ner:      je.Ner,
			Pos:      je.Pos,
			Dep:      je.Dep,
			DepHead:  je.DepHead,
			HeadType: je.HeadType,
			TailType: je.TailType,
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return examples, nil
}

type tacredExample struct {
	Id       string   `json:"id"`
	Token    []string `json:"token"`
	Relation string   `json:"relation"`

	SubjStart int    `json:"subj_start"`
	SubjEnd   int    `json:"subj_end"`
	ObjStart  int    `json:"obj_start"`
	ObjEnd    int    `json:"obj_end"`
	SubjType  string `json:"subj_type"`
	ObjType   string `json:"obj_type"`

	Ner    []string `json:"stanford_ner"`
	Pos    []string `json:"stanford_pos"`
	Deprel []string `json:"stanford_deprel"`
	Head   []int    `json:"stanford_head"`
}

// LoadTACRED reads a TACRED json file.
func LoadTACRED(path string) ([]*sent.Example, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw []tacredExample
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	examples := make([]*sent.Example, len(raw))
	for i, te := range raw {
		examples[i] = &sent.Example{
			Id:       te.Id,
			Tokens:   te.Token,
			Label:    te.Relation,
			Head:     sent.Span{Start: te.SubjStart, End: te.SubjEnd},
			Tail:     sent.Span{Start: te.ObjStart, End: te.ObjEnd},
			Ner:      te.Ner,
			Pos:      te.Pos,
			Dep:      te.Deprel,
			DepHead:  te.Head,
			HeadType: te.SubjType,
			TailType: te.ObjType,
		}
	}

	return examples, nil
}
