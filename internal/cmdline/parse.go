// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cmdline

import "github.com/matt-FFFFFF/relay/internal/tokenizer"

// Parse tokenizes input and groups the tokens into command lines.
// The only possible error is a *tokenizer.Error.
func Parse(input string) ([]*CommandLine, error) {
	tokens, err := tokenizer.Tokenize(input)
	if err != nil {
		return nil, err
	}

	return ParseTokens(tokens), nil
}

// ParseArgs is Parse for pre-split arguments.
func ParseArgs(args []string) ([]*CommandLine, error) {
	tokens, err := tokenizer.TokenizeArgs(args)
	if err != nil {
		return nil, err
	}

	return ParseTokens(tokens), nil
}

// ParseTokens groups tokens into command lines. Lines with no tokens are dropped.
func ParseTokens(tokens []tokenizer.Token) []*CommandLine {
	var (
		lines  []*CommandLine
		line   = &CommandLine{}
		cursor *CommandArgument
	)

	reset := func() {
		line = &CommandLine{Position: len(lines)}
		cursor = &CommandArgument{Name: Anonymous, Kind: tokenizer.Value}
		line.Arguments = append(line.Arguments, cursor)
	}

	yield := func() {
		if !line.empty() {
			lines = append(lines, line)
		}
	}

	reset()

	for _, tok := range tokens {
		switch tok.Kind {
		case tokenizer.Value:
			cursor.Values = append(cursor.Values, tok.Text)
		case tokenizer.LongArgument, tokenizer.Flags:
			name := MustName(tok.Text)
			if existing, ok := line.Get(name); ok {
				cursor = existing
				continue
			}

			cursor = &CommandArgument{Name: name, Kind: tok.Kind, Values: []string{}}
			line.Arguments = append(line.Arguments, cursor)
		case tokenizer.ParamsMarker:
			// values keep flowing into the current argument
		case tokenizer.Pipe:
			yield()
			reset()
		}
	}

	yield()

	return lines
}
