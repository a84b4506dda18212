package dataset

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/revelaction/reval/probe"
	sent "github.com/revelaction/reval/sentence"
)

const (
	DefaultValidationSize = 0.1
	DefaultSeed           = 1111
)

// SplitTrainValidation moves a stratified share size of examples into a
// validation set. Labels seen fewer than two times are dropped first. The
// split depends only on examples and seed, and both sets keep the input
// order. The dropped labels are returned in order of first appearance.
func SplitTrainValidation(examples []*sent.Example, size float64, seed int64) (train, validation []*sent.Example, dropped []string, err error) {
	if size <= 0 || size >= 1 {
		return nil, nil, nil, &probe.ConfigurationError{Field: "validation-size", Value: fmt.Sprint(size), Reason: "must be between 0 and 1"}
	}

	counts := map[string]int{}
	var labels []string
	for _, ex := range examples {
		if counts[ex.Label] == 0 {
			labels = append(labels, ex.Label)
		}
		counts[ex.Label]++
	}

	var kept []*sent.Example
	var classes []string
	for _, l := range labels {
		if counts[l] < 2 {
			dropped = append(dropped, l)
			continue
		}
		classes = append(classes, l)
	}

	byLabel := map[string][]int{}
	for _, ex := range examples {
		if counts[ex.Label] < 2 {
			continue
		}
		byLabel[ex.Label] = append(byLabel[ex.Label], len(kept))
		kept = append(kept, ex)
	}

	if len(kept) == 0 {
		return nil, nil, dropped, nil
	}

	quota := allocate(classes, counts, int(math.Ceil(size*float64(len(kept)))))

	rnd := rand.New(rand.NewSource(seed))
	isValidation := make([]bool, len(kept))
	for _, l := range classes {
		idx := byLabel[l]
		rnd.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
		for _, i := range idx[:quota[l]] {
			isValidation[i] = true
		}
	}

	for i, ex := range kept {
		if isValidation[i] {
			validation = append(validation, ex)
		} else {
			train = append(train, ex)
		}
	}

	return train, validation, dropped, nil
}

// allocate distributes n validation slots over classes proportionally to
// their counts, handing the remainder to the largest fractional parts.
// Every class keeps at least one example in train.
func allocate(classes []string, counts map[string]int, n int) map[string]int {
	total := 0
	for _, l := range classes {
		total += counts[l]
	}

	type share struct {
		label string
		rest  float64
	}

	quota := map[string]int{}
	shares := make([]share, 0, len(classes))
	assigned := 0
	for _, l := range classes {
		exact := float64(n) * float64(counts[l]) / float64(total)
		q := int(math.Floor(exact))
		quota[l] = q
		assigned += q
		shares = append(shares, share{l, exact - float64(q)})
	}

	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].rest > shares[j].rest
	})

	for _, s := range shares {
		if assigned >= n {
			break
		}
		if quota[s.label] < counts[s.label]-1 {
			quota[s.label]++
			assigned++
		}
	}

	for _, l := range classes {
		quota[l] = min(quota[l], counts[l]-1)
	}

	return quota
}

// Source names the files of a dataset.
type Source struct {
	Format Format

	Train string
	Test  string

	// Validation is optional. Without it a validation set is split off
	// the train set.
	Validation string

	ValidationSize float64
	Seed           int64
}

// Load reads the files of s into the three splits.
func (s Source) Load(logger *logrus.Logger) (probe.Splits, error) {
	var splits probe.Splits

	train, err := Load(s.Format, s.Train)
	if err != nil {
		return splits, err
	}

	test, err := Load(s.Format, s.Test)
	if err != nil {
		return splits, err
	}

	var validation []*sent.Example
	if s.Validation != "" {
		validation, err = Load(s.Format, s.Validation)
		if err != nil {
			return splits, err
		}
	} else {
		size := s.ValidationSize
		if size == 0 {
			size = DefaultValidationSize
		}

		var dropped []string
		train, validation, dropped, err = SplitTrainValidation(train, size, s.Seed)
		if err != nil {
			return splits, err
		}

		if logger != nil {
			logger.Infof("split train into train and validation size=%v seed=%d dropped labels=%v", size, s.Seed, dropped)
		}
	}

	splits.Train = train
	splits.Validation = validation
	splits.Test = test

	return splits, nil
}
