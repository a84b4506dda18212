package probe

import (
	"fmt"
	"strconv"
	"strings"
)

// Bucket is an inclusive integer range mapped to a class id.
type Bucket struct {
	Min int `yaml:"min" json:"min" validate:"ltefield=Max"`
	Max int `yaml:"max" json:"max"`
}

func (b Bucket) Contains(v int) bool {
	return b.Min <= v && v <= b.Max
}

func (b Bucket) String() string {
	return fmt.Sprintf("%d-%d", b.Min, b.Max)
}

// Buckets is an ordered list of buckets. Buckets may overlap, the first
// containing bucket wins.
type Buckets []Bucket

// Index returns the position of the first bucket containing v. ok is false
// when no bucket contains v, in which case the example is discarded.
func (bs Buckets) Index(v int) (idx int, ok bool) {
	for i, b := range bs {
		if b.Contains(v) {
			return i, true
		}
	}
	return -1, false
}

// Validate rejects buckets whose minimum exceeds their maximum.
func (bs Buckets) Validate() error {
	for _, b := range bs {
		if b.Min > b.Max {
			return &ConfigurationError{Field: "buckets", Value: b.String(), Reason: "min greater than max"}
		}
	}
	return nil
}

func (bs Buckets) String() string {
	s := make([]string, len(bs))
	for i, b := range bs {
		s[i] = b.String()
	}
	return strings.Join(s, ",")
}

// Or returns bs, or def if bs is empty.
func (bs Buckets) Or(def Buckets) Buckets {
	if len(bs) == 0 {
		return def
	}
	return bs
}

// ParseBuckets parses a comma separated list of ranges, f.ex.
// "4-15,16-23,24-27". A single number n stands for the range n-n.
func ParseBuckets(s string) (Buckets, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var bs Buckets
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		lo, hi, found := strings.Cut(part, "-")
		if !found {
			hi = lo
		}

		from, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, &ConfigurationError{Field: "buckets", Value: part, Reason: "not a range"}
		}

		to, err := strconv.Atoi(strings.TrimSpace(hi))
		if err != nil {
			return nil, &ConfigurationError{Field: "buckets", Value: part, Reason: "not a range"}
		}

		bs = append(bs, Bucket{Min: from, Max: to})
	}

	if err := bs.Validate(); err != nil {
		return nil, err
	}

	return bs, nil
}

// Default bucket lists.
var (
	DefaultSentenceLengthBuckets = Buckets{
		{4, 15}, {16, 23}, {24, 27}, {28, 31}, {32, 35},
		{36, 39}, {40, 43}, {44, 47}, {48, 55}, {55, 70},
	}

	DefaultEntityDistanceBuckets = Buckets{
		{1, 1}, {2, 2}, {3, 3}, {4, 4}, {5, 6},
		{7, 8}, {9, 11}, {12, 15}, {16, 20}, {21, 25},
	}

	DefaultTreeDepthBuckets = Buckets{
		{1, 2}, {3, 3}, {4, 4}, {5, 5}, {6, 6},
		{7, 7}, {8, 8}, {9, 9}, {10, 10}, {11, 15},
	}

	DefaultSDPTreeDepthBuckets = Buckets{
		{1, 1}, {2, 2}, {3, 3}, {4, 4}, {5, 5}, {6, 10},
	}
)
