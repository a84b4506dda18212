package probe

import (
	sent "github.com/revelaction/reval/sentence"
)

// Split is one of the train, validation and test partitions of a dataset.
type Split int

const (
	Train Split = iota
	Validation
	Test
)

var splitNames = []string{
	Train:      "tr",
	Validation: "va",
	Test:       "te",
}

// String returns the short name written to the split column.
func (s Split) String() string {
	if s < 0 || int(s) >= len(splitNames) {
		return "unknown"
	}
	return splitNames[s]
}

// ParseSplit parses a split name as written by String.
func ParseSplit(s string) (Split, error) {
	for i, n := range splitNames {
		if n == s {
			return Split(i), nil
		}
	}
	return 0, &ConfigurationError{Field: "split", Value: s, Reason: "must be tr, va or te"}
}

// Splits holds the examples of the three partitions of a dataset.
type Splits struct {
	Train      []*sent.Example
	Validation []*sent.Example
	Test       []*sent.Example
}

// Get returns the examples of split s.
func (ss Splits) Get(s Split) []*sent.Example {
	switch s {
	case Train:
		return ss.Train
	case Validation:
		return ss.Validation
	case Test:
		return ss.Test
	}
	return nil
}

func (ss Splits) Len() int {
	return len(ss.Train) + len(ss.Validation) + len(ss.Test)
}

// each calls fn for every example, train first, then validation, then
// test, in input order.
func (ss Splits) each(fn func(ex *sent.Example)) {
	for _, s := range []Split{Train, Validation, Test} {
		for _, ex := range ss.Get(s) {
			fn(ex)
		}
	}
}

// Record is a labeled example of a probing dataset.
type Record struct {
	Split   Split
	Label   string
	Example *sent.Example
}
