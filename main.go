package main

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"

	"github.com/nvr-ai/go-weave/images"
	"github.com/nvr-ai/go-weave/logger"
	"github.com/nvr-ai/go-weave/util"
	"github.com/nvr-ai/go-weave/weave"
)

func main() {
	if err := newCommand(run).Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newCommand builds the weave command with every flag group and the given action.
func newCommand(action cli.ActionFunc) *cli.Command {
	var flags []cli.Flag
	flags = append(flags, imageFlags()...)
	flags = append(flags, tuningFlags()...)
	flags = append(flags, loggingFlags()...)

	return &cli.Command{
		Name:   "weave",
		Usage:  "Interleave the pixels of two same-format images into one",
		Flags:  flags,
		Action: action,
	}
}

func run(_ context.Context, cmd *cli.Command) error {
	cfg, err := weave.LoadConfig(configPath)
	if err != nil {
		return err
	}
	applyFlags(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	for _, path := range []string{imageAPath, imageBPath} {
		if err := util.ValidateInputFile(path); err != nil {
			return err
		}
	}

	pipeline := weave.NewPipeline(images.NewFileCodec(cfg.EncodeOptions()), cfg, log)
	report, err := pipeline.Run(weave.Request{
		ImageA: imageAPath,
		ImageB: imageBPath,
		Output: outputName,
	})
	if err != nil {
		return err
	}

	if printReport {
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return errors.Wrap(err, "marshal report")
		}
		_, _ = fmt.Fprintln(os.Stdout, string(out))
	}

	return nil
}

// applyFlags overrides config values with flags the user set explicitly.
func applyFlags(cmd *cli.Command, cfg *weave.Config) {
	if cmd.IsSet("resampler") {
		cfg.Resampler = images.Resampler(resampler)
	}
	if cmd.IsSet("max-buffer-bytes") {
		cfg.MaxBufferBytes = int(maxBufferBytes)
	}
	if cmd.IsSet("no-capacity-limit") {
		enforce := !noLimit
		cfg.EnforceCapacity = &enforce
	}
	if cmd.IsSet("jpeg-quality") {
		cfg.JPEGQuality = int(jpegQuality)
	}
	if cmd.IsSet("log-level") {
		cfg.LogLevel = logLevel
	}
	if cmd.IsSet("log-format") {
		cfg.LogFormat = logFormat
	}
}
