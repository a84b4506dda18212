package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// UI contains the output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	Out io.Writer
	Err io.Writer
}

func main() {
	ui := UI{Out: os.Stdout, Err: os.Stderr}

	if err := newApp(ui).Run(os.Args); err != nil {
		fprintErr(ui.Err, err)
		os.Exit(1)
	}
}

func fprintErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "reval: %v\n", err)
}

func newApp(ui UI) *cli.App {
	return &cli.App{
		Name:                 "reval",
		Usage:                "generate probing datasets for relation extraction",
		Version:              fmt.Sprintf("%s (commit: %s)", BuildTag, BuildCommit),
		HideVersion:          true,
		Writer:               ui.Out,
		ErrWriter:            ui.Err,
		EnableBashCompletion: true,
		// errors are printed once, by main
		ExitErrHandler: func(*cli.Context, error) {},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Usage:   "log at debug level",
				EnvVars: []string{"REVAL_VERBOSE"},
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "no progress bars",
				EnvVars: []string{"REVAL_QUIET"},
			},
		},
		Commands: []*cli.Command{
			generateCmd(ui),
			generateAllCmd(ui),
			statCmd(ui),
			exploreCmd(ui),
			tasksCmd(ui),
			versionCmd(ui),
			bashCmd(ui),
		},
	}
}

// newLogger logs to the error stream of ui, at debug level with --verbose.
func newLogger(c *cli.Context, ui UI) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(ui.Err)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if c.Bool("verbose") {
		logger.SetLevel(logrus.DebugLevel)
	}

	return logger
}
