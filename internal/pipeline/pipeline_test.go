package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"ideogram-ai-bot/internal/params"
	"ideogram-ai-bot/internal/replicate"
)

type fakeGenerator struct {
	calls  int
	input  replicate.Input
	result replicate.Result
	err    error
}

func (f *fakeGenerator) Generate(ctx context.Context, input replicate.Input) (replicate.Result, error) {
	f.calls++
	f.input = input
	return f.result, f.err
}

func newTestPipeline(gen Generator) *Pipeline {
	return New(Options{
		Generator: gen,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func TestRunSuccess(t *testing.T) {
	gen := &fakeGenerator{result: replicate.Result{ImageURL: "https://replicate.delivery/img.png"}}
	p := newTestPipeline(gen)

	got := p.Run(context.Background(), "a banana in space --style anime")

	want := "![image](https://replicate.delivery/img.png)"
	if got != want {
		t.Errorf("Run() = %q, want %q", got, want)
	}
	if gen.calls != 1 {
		t.Errorf("generator called %d times, want 1", gen.calls)
	}
}

func TestRunEmptyPromptSkipsRemoteCall(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "whitespace", input: "  \t "},
		{name: "flags only", input: "--style anime"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{}
			p := newTestPipeline(gen)

			got := p.Run(context.Background(), tt.input)

			if got != "Error: prompt is required" {
				t.Errorf("Run(%q) = %q, want %q", tt.input, got, "Error: prompt is required")
			}
			if gen.calls != 0 {
				t.Errorf("generator called %d times, want 0", gen.calls)
			}
		})
	}
}

func TestRunRemoteFailureVerbatim(t *testing.T) {
	gen := &fakeGenerator{err: &replicate.APIError{Status: 429, Message: "rate limited"}}
	p := newTestPipeline(gen)

	got := p.Run(context.Background(), "a castle")

	if got != "Error: rate limited" {
		t.Errorf("Run() = %q, want %q", got, "Error: rate limited")
	}
}

func TestGenerateBuildsInput(t *testing.T) {
	gen := &fakeGenerator{result: replicate.Result{ImageURL: "https://example.com/x.png"}}
	p := newTestPipeline(gen)

	res, err := p.Generate(context.Background(), `"neon city" --style realistc --res 1280x960 --aspect 4:3`)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	want := replicate.Input{
		Prompt:            "neon city",
		StyleType:         "Realistic",
		AspectRatio:       "4:3",
		Width:             1280,
		Height:            960,
		MagicPromptOption: "Auto",
	}
	if gen.input != want {
		t.Errorf("input = %+v, want %+v", gen.input, want)
	}
	if !res.Request.ExplicitResolution {
		t.Error("ExplicitResolution = false, want true")
	}
}

func TestGenerateOmitsNoneStyle(t *testing.T) {
	gen := &fakeGenerator{result: replicate.Result{ImageURL: "https://example.com/x.png"}}
	p := newTestPipeline(gen)

	if _, err := p.Generate(context.Background(), "a castle"); err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if gen.input.StyleType != "" {
		t.Errorf("StyleType = %q, want empty for the None style", gen.input.StyleType)
	}
	if gen.input.AspectRatio != "1:1" {
		t.Errorf("AspectRatio = %q, want 1:1", gen.input.AspectRatio)
	}
}

func TestGenerateWithLayersDefaults(t *testing.T) {
	gen := &fakeGenerator{result: replicate.Result{ImageURL: "https://example.com/x.png"}}
	p := New(Options{
		Generator: gen,
		Defaults:  params.Defaults{Style: "General", AspectRatio: "16:9"},
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	// Per-call defaults win over pipeline-wide ones; flags win over both.
	res, err := p.GenerateWith(context.Background(), "a castle", params.Defaults{Style: "Anime"})
	if err != nil {
		t.Fatalf("GenerateWith returned error: %v", err)
	}
	if res.Request.Style != "Anime" {
		t.Errorf("Style = %q, want Anime", res.Request.Style)
	}
	if res.Request.AspectRatio != "16:9" {
		t.Errorf("AspectRatio = %q, want 16:9", res.Request.AspectRatio)
	}
}

func TestFormatError(t *testing.T) {
	got := FormatError(errors.New("something broke"))
	if got != "Error: something broke" {
		t.Errorf("FormatError = %q", got)
	}
}
