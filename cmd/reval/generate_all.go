package main

import (
	"github.com/urfave/cli/v2"

	"github.com/revelaction/reval/plan"
	"github.com/revelaction/reval/probe"
	"github.com/revelaction/reval/storage"
	"github.com/revelaction/reval/storage/filesystem"
)

func generateAllCmd(ui UI) *cli.Command {
	flags := append(sourceFlags(),
		&cli.StringFlag{
			Name:    "output-dir",
			Usage:   "`DIR` of the generated TSV files",
			EnvVars: []string{"REVAL_OUTPUT_DIR"},
		},
		&cli.StringFlag{
			Name:  "plan",
			Usage: "yaml plan `FILE`",
		},
		&cli.StringFlag{
			Name:  "preset",
			Usage: "built-in plan, tacred or semeval",
		},
	)

	return &cli.Command{
		Name:   "generate-all",
		Usage:  "generate the datasets of every task of a plan",
		Flags:  flags,
		Action: func(c *cli.Context) error { return generateAllCommand(c, ui) },
	}
}

func loadPlan(c *cli.Context) (*plan.Plan, error) {
	file, preset := c.String("plan"), c.String("preset")
	switch {
	case file != "" && preset != "":
		return nil, &probe.ConfigurationError{Field: "plan", Reason: "--plan and --preset are exclusive"}
	case file != "":
		return plan.Load(file)
	case preset != "":
		return plan.Preset(preset)
	}

	return nil, &probe.ConfigurationError{Field: "plan", Reason: "one of --plan or --preset is required"}
}

func generateAllCommand(c *cli.Context, ui UI) error {
	logger := newLogger(c, ui)

	p, err := loadPlan(c)
	if err != nil {
		return err
	}

	jobs, err := p.Jobs()
	if err != nil {
		return err
	}

	format := c.String("format")
	if format == "" {
		format = p.Format
	}

	src, err := sourceFromFlags(c, format)
	if err != nil {
		return err
	}

	var writer storage.RecordWriter
	if db := c.String("to-db"); db != "" {
		d := &dbStore{path: db}
		defer d.Close()

		store, err := d.Store()
		if err != nil {
			return err
		}
		writer = store
	} else {
		dir := c.String("output-dir")
		if dir == "" {
			return &probe.ConfigurationError{Field: "output-dir", Reason: "required without --to-db"}
		}
		writer = filesystem.NewRecordStore(dir)
	}

	// one load for all the jobs, the split of the train set stays the same
	splits, err := src.Load(logger)
	if err != nil {
		return err
	}

	logger.Infof("plan=%s jobs=%d %s", p.Name, len(jobs), splitSizes(splits))

	r := newRenderer(c, ui)
	for _, job := range jobs {
		records, report, err := generate(c, ui, logger, job.Task, splits)
		if err != nil {
			return err
		}

		if err := writer.Write(job.Output, records); err != nil {
			return err
		}

		logger.Infof("wrote dataset=%s records=%d", job.Output, len(records))
		r.Report(report)
	}

	return nil
}
