// Package pipeline turns free-form prompt text into one image-generation
// call and renders the outcome.
package pipeline

import (
	"context"
	"log/slog"

	"ideogram-ai-bot/internal/params"
	"ideogram-ai-bot/internal/replicate"
)

// Generator runs one image generation against the remote API.
type Generator interface {
	Generate(ctx context.Context, input replicate.Input) (replicate.Result, error)
}

type Options struct {
	Generator Generator
	Defaults  params.Defaults
	Logger    *slog.Logger
}

type Pipeline struct {
	gen      Generator
	defaults params.Defaults
	logger   *slog.Logger
}

func New(opts Options) *Pipeline {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Pipeline{
		gen:      opts.Generator,
		defaults: opts.Defaults,
		logger:   logger,
	}
}

// Result is one finished run.
type Result struct {
	Request  params.Request
	ImageURL string
}

// Generate parses raw text, validates it and performs the remote call.
func (p *Pipeline) Generate(ctx context.Context, text string) (Result, error) {
	return p.GenerateWith(ctx, text, params.Defaults{})
}

// GenerateWith is Generate with per-call defaults layered over the
// pipeline-wide ones. Zero fields in defs fall through.
func (p *Pipeline) GenerateWith(ctx context.Context, text string, defs params.Defaults) (Result, error) {
	if defs.Style == "" {
		defs.Style = p.defaults.Style
	}
	if defs.AspectRatio == "" {
		defs.AspectRatio = p.defaults.AspectRatio
	}
	if defs.Resolution == "" {
		defs.Resolution = p.defaults.Resolution
	}

	req, err := params.Resolve(text, defs)
	if err != nil {
		return Result{}, err
	}

	p.logger.Info("generating image",
		"style", req.Style,
		"aspect", req.AspectRatio,
		"resolution", req.Resolution.String(),
		"explicit_resolution", req.ExplicitResolution,
	)

	out, err := p.gen.Generate(ctx, buildInput(req))
	if err != nil {
		return Result{}, err
	}

	return Result{Request: req, ImageURL: out.ImageURL}, nil
}

// Run executes one prompt end to end and renders the outcome as a single
// markdown string, folding every failure into an error line.
func (p *Pipeline) Run(ctx context.Context, text string) string {
	res, err := p.Generate(ctx, text)
	if err != nil {
		return FormatError(err)
	}
	return FormatImage(res.ImageURL)
}
