package params

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// matchThreshold is the minimum normalized similarity for a fuzzy hit.
const matchThreshold = 0.6

// Option is one canonical value of a tunable together with the extra
// spellings it accepts. The canonical name itself always matches.
type Option struct {
	Name    string
	Aliases []string
}

// OptionSet is a fixed, ordered list of options for one tunable.
type OptionSet struct {
	label   string
	options []Option
}

// Styles are the style presets the Ideogram model accepts.
var Styles = OptionSet{
	label: "style",
	options: []Option{
		{Name: "None", Aliases: []string{"default"}},
		{Name: "Auto"},
		{Name: "General"},
		{Name: "Realistic", Aliases: []string{"photo", "photorealistic"}},
		{Name: "Design"},
		{Name: "Render 3D", Aliases: []string{"3d", "render3d"}},
		{Name: "Anime"},
	},
}

// AspectRatios are the aspect ratios the model accepts.
var AspectRatios = OptionSet{
	label: "aspect ratio",
	options: []Option{
		{Name: "1:1", Aliases: []string{"square"}},
		{Name: "16:9", Aliases: []string{"widescreen", "landscape"}},
		{Name: "9:16", Aliases: []string{"portrait", "vertical"}},
		{Name: "4:3"},
		{Name: "3:4"},
		{Name: "3:2"},
		{Name: "2:3"},
		{Name: "16:10"},
		{Name: "10:16"},
		{Name: "3:1", Aliases: []string{"banner"}},
		{Name: "1:3"},
	},
}

// Label names the tunable for help and log output.
func (s OptionSet) Label() string {
	return s.label
}

// Names returns the canonical option names in declaration order.
func (s OptionSet) Names() []string {
	names := make([]string, len(s.options))
	for i, opt := range s.options {
		names[i] = opt.Name
	}
	return names
}

// Resolve maps raw user input to a canonical option name. An exact match
// against any alias (case- and whitespace-insensitive) wins; otherwise the
// highest-similarity alias at or above matchThreshold is taken, with ties
// going to the earliest declared alias. ok is false when the input is empty
// or nothing reaches the threshold.
func (s OptionSet) Resolve(raw string) (string, bool) {
	norm := normalize(raw)
	if norm == "" {
		return "", false
	}

	for _, opt := range s.options {
		for _, alias := range opt.spellings() {
			if normalize(alias) == norm {
				return opt.Name, true
			}
		}
	}

	best := ""
	bestScore := 0.0
	for _, opt := range s.options {
		for _, alias := range opt.spellings() {
			if score := similarity(norm, normalize(alias)); score > bestScore {
				best, bestScore = opt.Name, score
			}
		}
	}
	if bestScore >= matchThreshold {
		return best, true
	}
	return "", false
}

func (o Option) spellings() []string {
	return append([]string{o.Name}, o.Aliases...)
}

// normalize lowercases and collapses whitespace runs to single spaces.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}
