package params

import "strings"

// Flag markers recognized inside the prompt text.
const (
	flagStyle  = "--style"
	flagAspect = "--aspect"
	flagRes    = "--res"
)

// Flags holds the raw values pulled out of a prompt. The Set booleans
// distinguish an absent flag from one given with an empty value.
type Flags struct {
	Style     string
	StyleSet  bool
	Aspect    string
	AspectSet bool
	Res       string
	ResSet    bool
}

func (f *Flags) set(marker, value string) {
	switch marker {
	case flagStyle:
		f.Style, f.StyleSet = value, true
	case flagAspect:
		f.Aspect, f.AspectSet = value, true
	case flagRes:
		f.Res, f.ResSet = value, true
	}
}

// Parse splits raw input into the free-text prompt and the recognized flags.
// Flags may appear anywhere and in any order; the single token following a
// flag is its value, consumed greedily; the last occurrence of a duplicated
// flag wins. Unrecognized --flag-shaped tokens stay in the prompt verbatim.
// A trailing flag with no value token gets an empty value. If the input has
// malformed quoting the whole raw string becomes the prompt and no flags are
// extracted.
func Parse(input string) (string, Flags) {
	var flags Flags

	tokens, err := Tokenize(input)
	if err != nil {
		return strings.TrimSpace(input), flags
	}

	const (
		scanning = iota
		expectValue
	)

	var promptTokens []string
	state := scanning
	marker := ""

	for _, tok := range tokens {
		switch state {
		case scanning:
			switch tok {
			case flagStyle, flagAspect, flagRes:
				marker = tok
				state = expectValue
			default:
				promptTokens = append(promptTokens, tok)
			}
		case expectValue:
			flags.set(marker, tok)
			state = scanning
		}
	}
	if state == expectValue {
		flags.set(marker, "")
	}

	return strings.Join(promptTokens, " "), flags
}
