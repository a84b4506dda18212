package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/reval/plan"
	"github.com/revelaction/reval/probe"
)

func tasksCmd(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "tasks",
		Usage: "list the probing tasks and the built-in plans",
		Action: func(c *cli.Context) error {
			w := tabwriter.NewWriter(ui.Out, 0, 0, 2, ' ', 0)
			for _, k := range probe.Kinds() {
				fmt.Fprintf(w, "%s\t%s\n", k, k.Description())
			}
			if err := w.Flush(); err != nil {
				return err
			}

			_, err := fmt.Fprintf(ui.Out, "\npresets: %s\n", strings.Join(plan.Presets(), ", "))
			return err
		},
	}
}
