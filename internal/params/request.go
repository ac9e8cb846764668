package params

import (
	"errors"
	"strings"
)

// ErrEmptyPrompt is returned when no prompt text remains after flag
// extraction.
var ErrEmptyPrompt = errors.New("prompt is required")

// Defaults are the raw fallback values substituted when a flag is absent or
// unresolvable. Zero values fall through to the built-in defaults.
type Defaults struct {
	Style       string
	AspectRatio string
	Resolution  string
}

// Request is a fully resolved image request. It is built once per prompt and
// not mutated afterwards.
type Request struct {
	Prompt      string
	Style       string
	AspectRatio string
	Resolution  Resolution

	// ExplicitResolution records that Resolution came from a validated
	// --res value rather than the aspect table.
	ExplicitResolution bool

	// Flags are the raw values as parsed, kept so callers can tell which
	// tunables the user set explicitly.
	Flags Flags
}

// Resolve turns raw prompt text into a validated Request. Fuzzy-match misses
// and resolution problems fall back to defaults; only a missing prompt is an
// error.
func Resolve(input string, defs Defaults) (Request, error) {
	prompt, flags := Parse(input)
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return Request{}, ErrEmptyPrompt
	}

	style := resolveWithDefault(Styles, flags.Style, defs.Style, DefaultStyle)
	aspect := resolveWithDefault(AspectRatios, flags.Aspect, defs.AspectRatio, DefaultAspectRatio)

	rawRes := flags.Res
	if !flags.ResSet {
		rawRes = defs.Resolution
	}
	size, explicit := ResolveResolution(rawRes, aspect)

	return Request{
		Prompt:             prompt,
		Style:              style,
		AspectRatio:        aspect,
		Resolution:         size,
		ExplicitResolution: explicit,
		Flags:              flags,
	}, nil
}

func resolveWithDefault(set OptionSet, raw, def, builtin string) string {
	if name, ok := set.Resolve(raw); ok {
		return name
	}
	if name, ok := set.Resolve(def); ok {
		return name
	}
	return builtin
}
