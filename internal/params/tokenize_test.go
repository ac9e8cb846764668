package params

import (
	"errors"
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "plain words",
			input: "a painting of a sunset",
			want:  []string{"a", "painting", "of", "a", "sunset"},
		},
		{
			name:  "double quoted span with spaces is one token",
			input: `a "neon city at night" poster`,
			want:  []string{"a", "neon city at night", "poster"},
		},
		{
			name:  "single quoted span with spaces is one token",
			input: "'neon city' poster",
			want:  []string{"neon city", "poster"},
		},
		{
			name:  "quotes are stripped",
			input: `--style "Render 3D"`,
			want:  []string{"--style", "Render 3D"},
		},
		{
			name:  "quote glued to unquoted text",
			input: `foo"bar baz"qux`,
			want:  []string{"foobar bazqux"},
		},
		{
			name:  "whitespace runs collapse",
			input: "  a \t b\n c  ",
			want:  []string{"a", "b", "c"},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "empty quoted string is an empty token",
			input: `""`,
			want:  []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tokenize(tt.input)
			if err != nil {
				t.Fatalf("Tokenize(%q) returned error: %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTokenizeUnterminatedQuote(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantOffset int
		wantQuote  byte
	}{
		{name: "double quote", input: `hello "world`, wantOffset: 6, wantQuote: '"'},
		{name: "single quote", input: "it's broken", wantOffset: 2, wantQuote: '\''},
		{name: "quote at end", input: `x "`, wantOffset: 2, wantQuote: '"'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.input)
			if err == nil {
				t.Fatalf("Tokenize(%q) expected error, got nil", tt.input)
			}

			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("Tokenize(%q) error = %T, want *ParseError", tt.input, err)
			}
			if parseErr.Offset != tt.wantOffset {
				t.Errorf("Offset = %d, want %d", parseErr.Offset, tt.wantOffset)
			}
			if parseErr.Quote != tt.wantQuote {
				t.Errorf("Quote = %c, want %c", parseErr.Quote, tt.wantQuote)
			}
		})
	}
}
