package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/rawbytedev/chunkdiff/internal/config"
	"github.com/rawbytedev/chunkdiff/internal/log"
	"github.com/rawbytedev/chunkdiff/internal/reconcile"
	"github.com/rawbytedev/chunkdiff/internal/render"
	"github.com/rawbytedev/chunkdiff/pkg/frame"
)

var (
	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format: json, table, yaml",
	}
	modeFlag = &cli.StringFlag{
		Name:  "mode",
		Usage: "Diff mode: positional or keyed (overrides the scenario)",
	}
	frameFlag = &cli.StringFlag{
		Name:  "frame",
		Usage: "Also write the correction as a framed blob to `FILE`",
	}
	compressFlag = &cli.BoolFlag{
		Name:  "compress",
		Usage: "zstd-compress the framed correction",
	}
)

func demoCommand() *cli.Command {
	return &cli.Command{
		Name:   "demo",
		Usage:  "Run the built-in Health/Stamina scenario",
		Flags:  []cli.Flag{formatFlag},
		Action: demoAction,
	}
}

func reconcileCommand() *cli.Command {
	return &cli.Command{
		Name:  "reconcile",
		Usage: "Run a scenario loaded from YAML",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    "Scenario `FILE`",
				Required: true,
			},
			modeFlag,
			formatFlag,
			frameFlag,
			compressFlag,
		},
		Action: reconcileAction,
	}
}

func demoAction(c *cli.Context) error {
	return run(c, config.Default())
}

func reconcileAction(c *cli.Context) error {
	sc, err := config.Load(c.String("config"))
	if err != nil {
		return cli.Exit(err, 1)
	}
	if c.IsSet("mode") {
		sc.Mode = c.String("mode")
	}
	if c.IsSet("compress") {
		sc.Frame.Compress = c.Bool("compress")
	}
	if err := sc.Validate(); err != nil {
		return cli.Exit(err, 1)
	}
	return run(c, sc)
}

func run(c *cli.Context, sc *config.Scenario) error {
	levelName := sc.LogLevel
	if c.IsSet("log-level") {
		levelName = c.String("log-level")
	}
	level, err := log.ParseLevel(levelName)
	if err != nil {
		return cli.Exit(err, 1)
	}
	logger := log.NewLogger(level)
	defer func() { _ = logger.Sync() }()

	format, err := render.ParseFormat(c.String("format"))
	if err != nil {
		return cli.Exit(err, 1)
	}

	trusted, candidate, err := sc.Components()
	if err != nil {
		return cli.Exit(err, 1)
	}
	r, err := reconcile.New(logger, reconcile.Options{Mode: sc.Mode})
	if err != nil {
		return cli.Exit(err, 1)
	}
	rep, err := r.Reconcile(trusted, candidate)
	if err != nil {
		return cli.Exit(err, 1)
	}

	if path := c.String("frame"); path != "" {
		blob, err := frame.Encode(rep.Correction, frame.Options{Compress: sc.Frame.Compress})
		if err != nil {
			return cli.Exit(err, 1)
		}
		if err := os.WriteFile(path, blob, 0o644); err != nil {
			return cli.Exit(fmt.Errorf("write frame: %w", err), 1)
		}
		logger.Sugar().Infof("wrote %d byte frame to %s", len(blob), path)
	}

	return render.NewRenderer(format, c.App.Writer).Render(rep)
}
