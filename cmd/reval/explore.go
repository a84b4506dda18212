package main

import (
	"github.com/urfave/cli/v2"

	"github.com/revelaction/reval/dataset"
	"github.com/revelaction/reval/explore"
)

func exploreCmd(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "explore",
		Usage: "inspect the examples of a dataset file interactively",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "dataset `FILE`",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "format",
				Usage:   "dataset format, jsonl or tacred",
				EnvVars: []string{"REVAL_FORMAT"},
				Value:   "jsonl",
			},
			&cli.StringSliceFlag{
				Name:  "roles",
				Usage: "dependency relations with their own class in the role command",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "no highlighting of the arguments",
			},
		},
		Action: func(c *cli.Context) error { return exploreCommand(c, ui) },
	}
}

func exploreCommand(c *cli.Context, ui UI) error {
	format, err := dataset.ParseFormat(c.String("format"))
	if err != nil {
		return err
	}

	examples, err := dataset.Load(format, c.String("file"))
	if err != nil {
		return err
	}

	h := explore.NewHandler(examples, newRenderer(c, ui), ui.Out)
	if roles := c.StringSlice("roles"); len(roles) > 0 {
		h.Roles = roles
	}

	return h.Run()
}
