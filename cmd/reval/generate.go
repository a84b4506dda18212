package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/reval/dataset"
	"github.com/revelaction/reval/probe"
	"github.com/revelaction/reval/render"
	"github.com/revelaction/reval/storage/filesystem"
)

func sourceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "train",
			Usage:    "train set `FILE`",
			EnvVars:  []string{"REVAL_TRAIN"},
			Required: true,
		},
		&cli.StringFlag{
			Name:     "test",
			Usage:    "test set `FILE`",
			EnvVars:  []string{"REVAL_TEST"},
			Required: true,
		},
		&cli.StringFlag{
			Name:    "validation",
			Usage:   "validation set `FILE`, split off the train set if empty",
			EnvVars: []string{"REVAL_VALIDATION"},
		},
		&cli.StringFlag{
			Name:    "format",
			Usage:   "dataset format, jsonl or tacred",
			EnvVars: []string{"REVAL_FORMAT"},
		},
		&cli.Float64Flag{
			Name:  "validation-size",
			Usage: "share of the train set split off as validation set",
			Value: dataset.DefaultValidationSize,
		},
		&cli.Int64Flag{
			Name:  "seed",
			Usage: "seed of the train/validation split",
			Value: dataset.DefaultSeed,
		},
		&cli.StringFlag{
			Name:    "to-db",
			Usage:   "store the generated datasets in the SQLite `FILE` instead of TSV files",
			EnvVars: []string{"REVAL_DB"},
		},
		&cli.BoolFlag{
			Name:  "isolate",
			Usage: "discard malformed examples instead of failing",
		},
		&cli.BoolFlag{
			Name:  "no-color",
			Usage: "plain report output",
		},
	}
}

func taskFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "task",
			Aliases:  []string{"t"},
			Usage:    "probing task, see the tasks command",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "output",
			Aliases:  []string{"o"},
			Usage:    "output `FILE`, or the dataset name with --to-db",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "buckets",
			Usage: "label buckets, f.ex. 4-15,16-23",
		},
		&cli.StringFlag{
			Name:  "argument",
			Usage: "head or tail",
		},
		&cli.StringFlag{
			Name:  "position",
			Usage: "left or right",
		},
		&cli.StringFlag{
			Name:  "ner-tag",
			Usage: "entity type counted between the arguments",
		},
		&cli.StringSliceFlag{
			Name:  "keep",
			Usage: "pos tags or argument types with their own class",
		},
		&cli.StringSliceFlag{
			Name:  "roles",
			Usage: "dependency relations with their own class",
		},
		&cli.IntFlag{
			Name:  "prune",
			Usage: "hops kept around the shortest dependency path",
		},
	}
}

func generateCmd(ui UI) *cli.Command {
	return &cli.Command{
		Name:   "generate",
		Usage:  "generate the dataset of one probing task",
		Flags:  append(sourceFlags(), taskFlags()...),
		Action: func(c *cli.Context) error { return generateCommand(c, ui) },
	}
}

func generateCommand(c *cli.Context, ui UI) error {
	logger := newLogger(c, ui)

	task, err := taskFromFlags(c)
	if err != nil {
		return err
	}

	if c.String("format") == "" {
		return &probe.ConfigurationError{Field: "format", Reason: "must be jsonl or tacred"}
	}

	src, err := sourceFromFlags(c, c.String("format"))
	if err != nil {
		return err
	}

	splits, err := src.Load(logger)
	if err != nil {
		return err
	}

	records, report, err := generate(c, ui, logger, task, splits)
	if err != nil {
		return err
	}

	out := c.String("output")
	if db := c.String("to-db"); db != "" {
		d := &dbStore{path: db}
		defer d.Close()

		store, err := d.Store()
		if err != nil {
			return err
		}

		if err := store.Write(out, records); err != nil {
			return err
		}
	} else if err := filesystem.WriteFile(out, records); err != nil {
		return err
	}

	logger.Infof("wrote dataset=%s records=%d", out, len(records))

	newRenderer(c, ui).Report(report)
	return nil
}

func taskFromFlags(c *cli.Context) (probe.Task, error) {
	kind, err := probe.ParseKind(c.String("task"))
	if err != nil {
		return nil, err
	}

	opts := probe.Options{
		NerTag:    c.String("ner-tag"),
		KeepTags:  c.StringSlice("keep"),
		KeepTypes: c.StringSlice("keep"),
		Roles:     c.StringSlice("roles"),
		Prune:     c.Int("prune"),
	}

	if s := c.String("buckets"); s != "" {
		if opts.Buckets, err = probe.ParseBuckets(s); err != nil {
			return nil, err
		}
	}

	if s := c.String("argument"); s != "" {
		if opts.Argument, err = probe.ParseArgument(s); err != nil {
			return nil, err
		}
	}

	if s := c.String("position"); s != "" {
		if opts.Position, err = probe.ParsePosition(s); err != nil {
			return nil, err
		}
	}

	return probe.NewTask(kind, opts)
}

func sourceFromFlags(c *cli.Context, format string) (dataset.Source, error) {
	f, err := dataset.ParseFormat(format)
	if err != nil {
		return dataset.Source{}, err
	}

	return dataset.Source{
		Format:         f,
		Train:          c.String("train"),
		Test:           c.String("test"),
		Validation:     c.String("validation"),
		ValidationSize: c.Float64("validation-size"),
		Seed:           c.Int64("seed"),
	}, nil
}

// generate runs the generator of task, with a progress bar per split
// unless --quiet.
func generate(c *cli.Context, ui UI, logger *logrus.Logger, task probe.Task, splits probe.Splits) ([]probe.Record, *probe.Report, error) {
	g := &probe.Generator{
		Task:    task,
		Logger:  logger,
		Isolate: c.Bool("isolate"),
	}

	if !c.Bool("quiet") {
		p := newProgress(ui, task.Name(), splits)
		g.OnExample = p.incr
		p.start()
		defer p.stop()
	}

	return g.Generate(c.Context, splits)
}

func newRenderer(c *cli.Context, ui UI) *render.Renderer {
	return render.NewRenderer(ui.Out, !color.NoColor && !c.Bool("no-color"))
}

func splitSizes(splits probe.Splits) string {
	return fmt.Sprintf("train=%d validation=%d test=%d", len(splits.Train), len(splits.Validation), len(splits.Test))
}
