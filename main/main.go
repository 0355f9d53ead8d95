// Command chunkdiff reconciles a trusted and a candidate component set and
// prints the correction the server would send back.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "chunkdiff:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "chunkdiff",
		Usage: "compute correction streams between trusted and candidate component state",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "debug, info, warn or error",
				EnvVars: []string{"CHUNKDIFF_LOG_LEVEL"},
			},
			formatFlag,
		},
		Commands: []*cli.Command{
			demoCommand(),
			reconcileCommand(),
		},
		Action: demoAction,
	}
}
