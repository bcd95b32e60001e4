package main

import "github.com/urfave/cli/v3"

var (
	imageAPath     string
	imageBPath     string
	outputName     string
	configPath     string
	resampler      string
	maxBufferBytes int64
	noLimit        bool
	jpegQuality    int64
	logLevel       string
	logFormat      string
	printReport    bool
)

func imageFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "image-1",
			Aliases:     []string{"a"},
			Usage:       "path to the first image; its pixels lead each group",
			Required:    true,
			Destination: &imageAPath,
		},
		&cli.StringFlag{
			Name:        "image-2",
			Aliases:     []string{"b"},
			Usage:       "path to the second image",
			Required:    true,
			Destination: &imageBPath,
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "output file; the input format's extension is added when missing",
			Required:    true,
			Destination: &outputName,
		},
	}
}

func tuningFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "path to a YAML config file",
			Destination: &configPath,
		},
		&cli.StringFlag{
			Name:        "resampler",
			Usage:       "resize implementation (nfnt, xdraw)",
			Value:       "nfnt",
			Destination: &resampler,
		},
		&cli.Int64Flag{
			Name:        "max-buffer-bytes",
			Usage:       "output buffer reservation in bytes",
			Value:       8 * 1024 * 1024,
			Destination: &maxBufferBytes,
		},
		&cli.BoolFlag{
			Name:        "no-capacity-limit",
			Usage:       "accept combined buffers larger than the reservation",
			Destination: &noLimit,
		},
		&cli.Int64Flag{
			Name:        "jpeg-quality",
			Usage:       "JPEG and lossy WebP quality (1-100)",
			Value:       90,
			Destination: &jpegQuality,
		},
		&cli.BoolFlag{
			Name:        "report",
			Usage:       "print a JSON run report to stdout",
			Destination: &printReport,
		},
	}
}

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (auto, console, json)",
			Value:       "auto",
			Destination: &logFormat,
		},
	}
}
