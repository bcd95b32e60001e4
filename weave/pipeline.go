package weave

import (
	"image"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/nvr-ai/go-weave/images"
	"github.com/nvr-ai/go-weave/profiler"
	"github.com/nvr-ai/go-weave/util"
)

// Codec decodes the two sources and encodes the combined output.
type Codec interface {
	Decode(path string) (image.Image, images.ImageFormat, error)
	Encode(path string, buf []byte, d images.Dimension, format images.ImageFormat) error
}

// Request names the two sources and the output of a run.
type Request struct {
	ImageA string
	ImageB string
	Output string
}

// Report summarizes a successful run.
type Report struct {
	RunID     string             `json:"run_id"`
	Format    images.ImageFormat `json:"format"`
	SourceA   images.Dimension   `json:"source_a"`
	SourceB   images.Dimension   `json:"source_b"`
	Target    images.Dimension   `json:"target"`
	Output    string             `json:"output"`
	Bytes     int                `json:"bytes"`
	Checksum  string             `json:"checksum"`
	Stages    []profiler.Stage   `json:"stages"`
	TotalTime time.Duration      `json:"total_ns"`
}

// Pipeline runs format guard, size normalization, RGBA extraction, interleaving
// and encoding, in that order. Any error halts the run; nothing is written unless
// every stage before encoding succeeded.
type Pipeline struct {
	codec  Codec
	cfg    Config
	logger *zap.Logger
}

// NewPipeline creates a pipeline. A nil logger discards output.
func NewPipeline(codec Codec, cfg Config, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		codec:  codec,
		cfg:    cfg.withDefaults(),
		logger: logger,
	}
}

// Run executes one combine.
func (p *Pipeline) Run(req Request) (*Report, error) {
	if err := p.cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config")
	}

	runID := uuid.NewString()
	log := p.logger.With(zap.String("run_id", runID))
	timer := profiler.NewStageTimer()

	imgA, formatA, err := p.decode(timer, log, "image-1", req.ImageA)
	if err != nil {
		return nil, err
	}
	imgB, formatB, err := p.decode(timer, log, "image-2", req.ImageB)
	if err != nil {
		return nil, err
	}

	if err := images.EnsureFormatCompatibility(formatA, formatB); err != nil {
		return nil, errors.Wrap(err, "format guard")
	}

	srcA, srcB := images.DimensionOf(imgA), images.DimensionOf(imgB)
	stop := timer.StartOperation("normalize")
	imgA, imgB, err = images.NormalizeSizes(imgA, imgB, p.cfg.Resampler)
	stop()
	if err != nil {
		return nil, errors.Wrap(err, "normalize")
	}
	target := images.DimensionOf(imgA)
	log.Debug("normalized sizes",
		zap.Stringer("source_a", srcA),
		zap.Stringer("source_b", srcB),
		zap.Stringer("target", target),
		zap.String("resampler", string(p.cfg.Resampler)),
	)

	output := NewOutputContainer(target.Width, target.Height,
		util.ResolveOutputPath(req.Output, formatA), p.containerOptions()...)
	if !formatA.MatchesExtension(output.Name) {
		log.Warn("output extension does not match encoding; writing anyway",
			zap.String("output", output.Name),
			zap.String("format", string(formatA)),
		)
	}

	stop = timer.StartOperation("extract")
	bufA, bufB := images.ToRGBABuffer(imgA), images.ToRGBABuffer(imgB)
	stop()

	stop = timer.StartOperation("interleave")
	combined := Combine(bufA, bufB)
	stop()
	log.Debug("interleaved", zap.Int("bytes", len(combined)))

	if err := output.SetData(combined); err != nil {
		return nil, errors.Wrap(err, "set data")
	}

	stop = timer.StartOperation("encode")
	err = p.codec.Encode(output.Name, output.Data(), output.Dimension(), formatA)
	stop()
	if err != nil {
		return nil, errors.Wrap(err, "encode")
	}

	report := &Report{
		RunID:     runID,
		Format:    formatA,
		SourceA:   srcA,
		SourceB:   srcB,
		Target:    target,
		Output:    output.Name,
		Bytes:     len(output.Data()),
		Checksum:  images.Checksum(output.Data()),
		Stages:    timer.Stages(),
		TotalTime: timer.Elapsed(),
	}
	log.Info("combined images",
		zap.String("output", report.Output),
		zap.String("format", string(report.Format)),
		zap.Stringer("target", report.Target),
		zap.Duration("elapsed", report.TotalTime),
	)

	return report, nil
}

func (p *Pipeline) decode(timer *profiler.StageTimer, log *zap.Logger, label, path string) (image.Image, images.ImageFormat, error) {
	stop := timer.StartOperation("decode " + label)
	img, format, err := p.codec.Decode(path)
	stop()
	if err != nil {
		return nil, "", errors.Wrapf(err, "decode %s", label)
	}

	log.Debug("decoded",
		zap.String("image", label),
		zap.String("path", path),
		zap.String("format", string(format)),
		zap.Stringer("dimension", images.DimensionOf(img)),
	)
	return img, format, nil
}

func (p *Pipeline) containerOptions() []ContainerOption {
	opts := []ContainerOption{WithCapacity(p.cfg.MaxBufferBytes)}
	if !*p.cfg.EnforceCapacity {
		opts = append(opts, WithoutCapacityLimit())
	}
	return opts
}
