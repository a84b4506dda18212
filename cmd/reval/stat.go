package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/reval/probe"
	"github.com/revelaction/reval/render"
	"github.com/revelaction/reval/stat"
	"github.com/revelaction/reval/storage/filesystem"
)

func statCmd(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "stat",
		Usage:     "class distribution of a generated dataset",
		ArgsUsage: "[file.txt]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "db",
				Usage:   "read from the SQLite `FILE`",
				EnvVars: []string{"REVAL_DB"},
			},
			&cli.StringFlag{
				Name:  "task",
				Usage: "dataset name in the database, all names are listed if empty",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "json output",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "plain output",
			},
		},
		Action: func(c *cli.Context) error { return statCommand(c, ui) },
	}
}

func statCommand(c *cli.Context, ui UI) error {
	var (
		records []probe.Record
		err     error
	)

	if db := c.String("db"); db != "" {
		d := &dbStore{path: db}
		defer d.Close()

		store, err := d.Store()
		if err != nil {
			return err
		}

		task := c.String("task")
		if task == "" {
			tasks, err := store.Tasks()
			if err != nil {
				return err
			}
			for _, t := range tasks {
				fmt.Fprintln(ui.Out, t)
			}
			return nil
		}

		if records, err = store.Read(task); err != nil {
			return err
		}
	} else {
		if c.NArg() != 1 {
			return fmt.Errorf("stat needs one dataset file or --db")
		}

		if records, err = filesystem.ReadFile(c.Args().First()); err != nil {
			return err
		}
	}

	h := aggregate(records)

	if c.Bool("json") {
		return render.NewJSONRenderer(ui.Out).Render(h.Get())
	}

	r := newRenderer(c, ui)
	total := h.Total()
	r.Splits(h.Get(), total)
	r.Distribution(total)
	return nil
}

// aggregate counts the classes of records per split, in train, validation,
// test order.
func aggregate(records []probe.Record) *stat.Handler {
	h := stat.NewHandler()
	for _, s := range []probe.Split{probe.Train, probe.Validation, probe.Test} {
		h.Touch(s.String())
	}

	for _, r := range records {
		h.Add(r.Split.String(), r.Label)
	}

	return h
}
