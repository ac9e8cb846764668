// Package params extracts and validates image options embedded in free-form
// prompt text: quote-aware tokenizing, --style/--aspect/--res flag
// extraction, fuzzy option matching and resolution validation.
package params

import (
	"fmt"
	"strings"
)

// ParseError reports malformed quoting in the raw input.
type ParseError struct {
	Offset int
	Quote  byte
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unterminated %c quote at offset %d", e.Quote, e.Offset)
}

// Tokenize splits raw input into tokens. A single- or double-quoted span
// becomes part of one token with the quotes stripped and inner whitespace
// preserved; unquoted text splits on runs of whitespace. An unterminated
// quote fails with a *ParseError carrying the offset of the opening quote.
func Tokenize(input string) ([]string, error) {
	var tokens []string
	var buf strings.Builder

	inToken := false
	var quote byte
	quoteStart := 0

	for i := 0; i < len(input); i++ {
		c := input[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			} else {
				buf.WriteByte(c)
			}
		case c == '\'' || c == '"':
			quote = c
			quoteStart = i
			inToken = true
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			if inToken {
				tokens = append(tokens, buf.String())
				buf.Reset()
				inToken = false
			}
		default:
			buf.WriteByte(c)
			inToken = true
		}
	}

	if quote != 0 {
		return nil, &ParseError{Offset: quoteStart, Quote: quote}
	}
	if inToken {
		tokens = append(tokens, buf.String())
	}
	return tokens, nil
}
