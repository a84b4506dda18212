package probe

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/revelaction/reval/deptree"
	sent "github.com/revelaction/reval/sentence"
	"github.com/revelaction/reval/stat"
)

// Generator builds the probing dataset of a Task.
type Generator struct {
	Task   Task
	Logger *logrus.Logger

	// Isolate discards examples with malformed fields or head arrays
	// instead of failing the whole run. Discarded examples are counted in
	// Report.Errors.
	Isolate bool

	// OnExample, if set, is called after each example is processed. It is
	// called concurrently from one goroutine per split.
	OnExample func(s Split)
}

// Report summarizes a generation run.
type Report struct {
	Task string

	// Splits holds the counts of the train, validation and test splits, in
	// that order.
	Splits []stat.Stats
	Total  stat.Stats

	// Errors is the number of examples discarded for a data or tree error.
	// Always zero unless Isolate is set.
	Errors int
}

type splitResult struct {
	records   []Record
	discarded int
	errors    int
}

// Prepare returns a copy of t ready to label examples of splits. Tasks
// with a vocabulary build it in one pass over train, validation and test,
// in input order. Other tasks are returned unchanged.
func Prepare(t Task, splits Splits) Task {
	if p, ok := t.(interface{ prepare(Splits) Task }); ok {
		return p.prepare(splits)
	}
	return t
}

func (g *Generator) logger() *logrus.Logger {
	if g.Logger != nil {
		return g.Logger
	}

	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Generate labels the examples of splits. The records of each split keep
// the input order, and are returned train first, then validation, then
// test. On error no records are returned.
func (g *Generator) Generate(ctx context.Context, splits Splits) ([]Record, *Report, error) {
	if g.Task == nil {
		return nil, nil, &ConfigurationError{Field: "task", Reason: "no task"}
	}

	logger := g.logger()
	task := Prepare(g.Task, splits)

	logger.Infof("generating task=%s train=%d validation=%d test=%d", task.Name(), len(splits.Train), len(splits.Validation), len(splits.Test))

	all := []Split{Train, Validation, Test}
	results := make([]splitResult, len(all))

	eg, ctx := errgroup.WithContext(ctx)
	for i, s := range all {
		eg.Go(func() error {
			res, err := g.label(ctx, logger, task, s, splits.Get(s))
			if err != nil {
				return fmt.Errorf("task %s: split %s: %w", task.Name(), s, err)
			}

			results[i] = res
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}

	h := stat.NewHandler()
	report := &Report{Task: task.Name()}

	var records []Record
	for i, s := range all {
		res := results[i]
		h.Touch(s.String())
		for _, r := range res.records {
			h.Add(s.String(), r.Label)
		}

		for range res.discarded {
			h.Discard(s.String())
		}

		records = append(records, res.records...)
		report.Errors += res.errors
	}

	report.Splits = h.Get()
	report.Total = h.Total()

	for _, st := range report.Splits {
		logger.Infof("split=%s examples=%d kept=%d discarded=%d", st.Split, st.Examples, st.Kept, st.Discarded)
	}

	for _, c := range report.Total.Distribution() {
		logger.Debugf("class label=%s count=%d", c.Label, c.N)
	}

	if report.Errors > 0 {
		logger.Warnf("discarded examples with errors count=%d", report.Errors)
	}

	return records, report, nil
}

func (g *Generator) label(ctx context.Context, logger *logrus.Logger, task Task, s Split, examples []*sent.Example) (splitResult, error) {
	var res splitResult
	res.records = make([]Record, 0, len(examples))

	for _, ex := range examples {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		label, ok, err := labelExample(task, ex)
		if err != nil {
			if !g.Isolate || !isExampleError(err) {
				return res, err
			}

			logger.WithError(err).Warnf("discarding example id=%s", ex.Id)
			res.errors++
			ok = false
		}

		if ok {
			res.records = append(res.records, Record{Split: s, Label: label, Example: ex})
		} else {
			res.discarded++
		}

		if g.OnExample != nil {
			g.OnExample(s)
		}
	}

	return res, nil
}

func labelExample(task Task, ex *sent.Example) (string, bool, error) {
	if err := ex.Validate(); err != nil {
		return "", false, err
	}

	return task.Label(ex)
}

func isExampleError(err error) bool {
	var dfe *sent.DataFormatError
	var tce *deptree.TreeConstructionError
	return errors.As(err, &dfe) || errors.As(err, &tce) || errors.Is(err, deptree.ErrNodeNotFound)
}
