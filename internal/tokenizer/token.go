// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tokenizer

import (
	"strings"
	"unicode"
)

// Kind is the type of a token.
type Kind int

// Token kinds.
const (
	Value        Kind = iota // a bare or quoted word
	LongArgument             // --name
	Flags                    // -abc
	ParamsMarker             // --
	Pipe                     // |
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case Value:
		return "Value"
	case LongArgument:
		return "LongArgument"
	case Flags:
		return "Flags"
	case ParamsMarker:
		return "ParamsMarker"
	case Pipe:
		return "Pipe"
	default:
		return "Unknown"
	}
}

// Token is one lexical unit of a command line.
type Token struct {
	Kind Kind
	// Text is the unquoted value, or the argument name without its dashes.
	Text string
	// Offset is the byte offset in the input string, or the index of the
	// argument for pre-split input.
	Offset int
}

// String renders the token so that tokenizing the result yields the same token.
func (t Token) String() string {
	switch t.Kind {
	case LongArgument:
		return "--" + t.Text
	case Flags:
		return "-" + t.Text
	case ParamsMarker:
		return "--"
	case Pipe:
		return "|"
	default:
		if needsQuotes(t.Text) {
			return `"` + t.Text + `"`
		}

		return t.Text
	}
}

// Join renders tokens separated by single spaces.
func Join(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.String()
	}

	return strings.Join(parts, " ")
}

func needsQuotes(s string) bool {
	if s == "" || strings.HasPrefix(s, "-") {
		return true
	}

	return strings.ContainsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '|'
	})
}
