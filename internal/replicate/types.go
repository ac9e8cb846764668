package replicate

// Input is the parameter payload for one Ideogram prediction. StyleType is
// omitted for the model's "None" style; AspectRatio is always sent, even
// when Width/Height carry an explicit resolution.
type Input struct {
	Prompt            string `json:"prompt"`
	StyleType         string `json:"style_type,omitempty"`
	AspectRatio       string `json:"aspect_ratio,omitempty"`
	Width             int    `json:"width,omitempty"`
	Height            int    `json:"height,omitempty"`
	MagicPromptOption string `json:"magic_prompt_option,omitempty"`
}

// Result is a finished prediction.
type Result struct {
	ID       string
	ImageURL string
}
