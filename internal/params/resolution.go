package params

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Resolution is a validated width/height pair in pixels.
type Resolution struct {
	Width  int
	Height int
}

func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// Built-in fallbacks when neither the user nor the deployment configuration
// supplies a value.
const (
	DefaultStyle       = "None"
	DefaultAspectRatio = "1:1"
)

// supportedResolutions lists every pair the model accepts, grouped by aspect
// family.
var supportedResolutions = map[Resolution]bool{
	// 1:1
	{512, 512}: true, {768, 768}: true, {1024, 1024}: true, {1280, 1280}: true,
	// 16:9
	{1024, 576}: true, {1280, 720}: true, {1600, 900}: true, {1920, 1080}: true,
	// 9:16
	{576, 1024}: true, {720, 1280}: true, {900, 1600}: true, {1080, 1920}: true,
	// 4:3
	{800, 600}: true, {1024, 768}: true, {1280, 960}: true, {1600, 1200}: true,
	// 3:4
	{600, 800}: true, {768, 1024}: true, {960, 1280}: true, {1200, 1600}: true,
	// 3:2
	{1152, 768}: true, {1440, 960}: true, {1800, 1200}: true,
	// 2:3
	{768, 1152}: true, {960, 1440}: true, {1200, 1800}: true,
	// 16:10
	{1280, 800}: true, {1680, 1050}: true, {1920, 1200}: true,
	// 10:16
	{800, 1280}: true, {1050, 1680}: true, {1200, 1920}: true,
	// 3:1
	{1536, 512}: true, {1920, 640}: true,
	// 1:3
	{512, 1536}: true, {640, 1920}: true,
}

// aspectSizes maps each aspect ratio to the size used when no explicit
// resolution survives validation.
var aspectSizes = map[string]Resolution{
	"1:1":   {1024, 1024},
	"16:9":  {1280, 720},
	"9:16":  {720, 1280},
	"4:3":   {1024, 768},
	"3:4":   {768, 1024},
	"3:2":   {1440, 960},
	"2:3":   {960, 1440},
	"16:10": {1280, 800},
	"10:16": {800, 1280},
	"3:1":   {1536, 512},
	"1:3":   {512, 1536},
}

// ParseResolution parses a raw "<width>x<height>" value. The separator is a
// case-insensitive 'x'; both parts must be positive integers.
func ParseResolution(raw string) (Resolution, bool) {
	raw = strings.ToLower(strings.TrimSpace(raw))

	w, h, found := strings.Cut(raw, "x")
	if !found {
		return Resolution{}, false
	}
	width, err := strconv.Atoi(w)
	if err != nil {
		return Resolution{}, false
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return Resolution{}, false
	}
	if width <= 0 || height <= 0 {
		return Resolution{}, false
	}
	return Resolution{Width: width, Height: height}, true
}

// ResolveResolution picks the width/height to send. A supplied value that
// parses and appears in the supported table wins and is reported as
// explicit; anything else falls back to the size derived from aspect, and an
// unknown aspect falls back to the DefaultAspectRatio size.
func ResolveResolution(raw, aspect string) (Resolution, bool) {
	if strings.TrimSpace(raw) != "" {
		if res, ok := ParseResolution(raw); ok && supportedResolutions[res] {
			return res, true
		}
	}
	if size, ok := aspectSizes[aspect]; ok {
		return size, false
	}
	return aspectSizes[DefaultAspectRatio], false
}

// AspectSize returns the table size for an aspect ratio.
func AspectSize(aspect string) (Resolution, bool) {
	size, ok := aspectSizes[aspect]
	return size, ok
}

// SupportedResolutions returns the supported pairs sorted by width, then
// height.
func SupportedResolutions() []Resolution {
	out := make([]Resolution, 0, len(supportedResolutions))
	for r := range supportedResolutions {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Width != out[j].Width {
			return out[i].Width < out[j].Width
		}
		return out[i].Height < out[j].Height
	})
	return out
}
