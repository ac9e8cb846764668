package pipeline

import (
	"ideogram-ai-bot/internal/params"
	"ideogram-ai-bot/internal/replicate"
)

// buildInput maps a resolved request onto the Replicate parameter shape.
// The aspect ratio travels alongside an explicit resolution; the "None"
// style is expressed by omitting style_type.
func buildInput(req params.Request) replicate.Input {
	input := replicate.Input{
		Prompt:            req.Prompt,
		AspectRatio:       req.AspectRatio,
		Width:             req.Resolution.Width,
		Height:            req.Resolution.Height,
		MagicPromptOption: "Auto",
	}
	if req.Style != "None" {
		input.StyleType = req.Style
	}
	return input
}
