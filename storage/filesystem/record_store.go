package filesystem

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/revelaction/reval/probe"
	sent "github.com/revelaction/reval/sentence"
	"github.com/revelaction/reval/storage"
)

// Ext is the extension of the dataset files of a RecordStore.
const Ext = ".txt"

// noId is written for examples without id.
const noId = "None"

const numFields = 12

// RecordStore keeps each task in a tab separated file <dir>/<task>.txt.
type RecordStore struct {
	dir string
}

var _ storage.RecordRepository = (*RecordStore)(nil)

func NewRecordStore(dir string) *RecordStore {
	return &RecordStore{dir: dir}
}

func (s *RecordStore) Path(task string) string {
	return filepath.Join(s.dir, task+Ext)
}

func (s *RecordStore) Write(task string, records []probe.Record) error {
	return WriteFile(s.Path(task), records)
}

func (s *RecordStore) Read(task string) ([]probe.Record, error) {
	records, err := ReadFile(s.Path(task))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", task, storage.ErrTaskNotFound)
	}
	return records, err
}

func (s *RecordStore) Tasks() ([]string, error) {
	files, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	names := []string{}
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != Ext {
			continue
		}

		names = append(names, strings.TrimSuffix(file.Name(), Ext))
	}

	sort.Strings(names)
	return names, nil
}

// WriteFile writes records to path, one tab separated row per record,
// creating the parent directories. Rows hold the split, id, label, both
// spans and the space joined ner, pos, dep, dep_head and tokens.
func WriteFile(path string, records []probe.Record) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return Encode(f, records)
}

// Encode writes records to w in the dataset file layout.
func Encode(w io.Writer, records []probe.Record) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	cw.UseCRLF = true

	for _, r := range records {
		if err := cw.Write(row(r)); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func row(r probe.Record) []string {
	ex := r.Example

	id := ex.Id
	if id == "" {
		id = noId
	}

	heads := make([]string, len(ex.DepHead))
	for i, h := range ex.DepHead {
		heads[i] = strconv.Itoa(h)
	}

	return []string{
		r.Split.String(),
		id,
		r.Label,
		strconv.Itoa(ex.Head.Start),
		strconv.Itoa(ex.Head.End),
		strconv.Itoa(ex.Tail.Start),
		strconv.Itoa(ex.Tail.End),
		strings.Join(ex.Ner, " "),
		strings.Join(ex.Pos, " "),
		strings.Join(ex.Dep, " "),
		strings.Join(heads, " "),
		strings.Join(ex.Tokens, " "),
	}
}

// ReadFile reads the records of a dataset file written by WriteFile.
func ReadFile(path string) ([]probe.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return records, nil
}

// Decode reads records in the dataset file layout from r.
func Decode(r io.Reader) ([]probe.Record, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = numFields

	var records []probe.Record
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		rec, err := parseRow(fields)
		if err != nil {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		records = append(records, rec)
	}

	return records, nil
}

func parseRow(fields []string) (probe.Record, error) {
	split, err := probe.ParseSplit(fields[0])
	if err != nil {
		return probe.Record{}, err
	}

	id := fields[1]
	if id == noId {
		id = ""
	}

	var bounds [4]int
	for i := range bounds {
		bounds[i], err = strconv.Atoi(fields[3+i])
		if err != nil {
			return probe.Record{}, &sent.DataFormatError{Id: id, Field: sent.FieldHead, Reason: "span bound is not a number"}
		}
	}

	var heads []int
	for _, h := range splitField(fields[10]) {
		v, err := strconv.Atoi(h)
		if err != nil {
			return probe.Record{}, &sent.DataFormatError{Id: id, Field: sent.FieldDepHead, Reason: fmt.Sprintf("%q is not a number", h)}
		}
		heads = append(heads, v)
	}

	ex := &sent.Example{
		Id:      id,
		Tokens:  splitField(fields[11]),
		Head:    sent.Span{Start: bounds[0], End: bounds[1]},
		Tail:    sent.Span{Start: bounds[2], End: bounds[3]},
		Ner:     splitField(fields[7]),
		Pos:     splitField(fields[8]),
		Dep:     splitField(fields[9]),
		DepHead: heads,
	}

	return probe.Record{Split: split, Label: fields[2], Example: ex}, nil
}

func splitField(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, " ")
}
