package params

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantPrompt string
		wantFlags  Flags
	}{
		{
			name:       "no flags",
			input:      "simple prompt without parameters",
			wantPrompt: "simple prompt without parameters",
		},
		{
			name:       "all flags after prompt",
			input:      `a painting of a sunset --style "Render 3D" --aspect 16:9 --res 1280x720`,
			wantPrompt: "a painting of a sunset",
			wantFlags: Flags{
				Style: "Render 3D", StyleSet: true,
				Aspect: "16:9", AspectSet: true,
				Res: "1280x720", ResSet: true,
			},
		},
		{
			name:       "flags anywhere in the input",
			input:      "--aspect 4:3 a lighthouse --style anime at dusk",
			wantPrompt: "a lighthouse at dusk",
			wantFlags: Flags{
				Style: "anime", StyleSet: true,
				Aspect: "4:3", AspectSet: true,
			},
		},
		{
			name:       "duplicate flag last wins",
			input:      "castle --style anime --style realistic",
			wantPrompt: "castle",
			wantFlags:  Flags{Style: "realistic", StyleSet: true},
		},
		{
			name:       "unrecognized flag stays in prompt",
			input:      "castle --foo bar --style anime",
			wantPrompt: "castle --foo bar",
			wantFlags:  Flags{Style: "anime", StyleSet: true},
		},
		{
			name:       "trailing flag without value gets empty value",
			input:      "castle --style",
			wantPrompt: "castle",
			wantFlags:  Flags{StyleSet: true},
		},
		{
			name:       "flag value consumed greedily even when flag-shaped",
			input:      "castle --style --aspect 4:3",
			wantPrompt: "castle 4:3",
			wantFlags:  Flags{Style: "--aspect", StyleSet: true},
		},
		{
			name:       "malformed quoting falls back to whole input as prompt",
			input:      `castle "unterminated --style anime`,
			wantPrompt: `castle "unterminated --style anime`,
		},
		{
			name:       "quoted flag marker is still a flag",
			input:      `"--style" anime castle`,
			wantPrompt: "castle",
			wantFlags:  Flags{Style: "anime", StyleSet: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt, flags := Parse(tt.input)
			if prompt != tt.wantPrompt {
				t.Errorf("prompt = %q, want %q", prompt, tt.wantPrompt)
			}
			if flags != tt.wantFlags {
				t.Errorf("flags = %+v, want %+v", flags, tt.wantFlags)
			}
		})
	}
}
