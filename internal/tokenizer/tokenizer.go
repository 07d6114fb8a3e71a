// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tokenizer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	quote     = '"'
	pipe      = '|'
	dash      = "-"
	dashDash  = "--"
	pipeToken = "|"
)

// machine holds the state shared by Tokenize and TokenizeArgs.
type machine struct {
	state  State
	params bool
	tokens []Token
}

func (m *machine) emit(t Token, raw string) error {
	next := stateOf(t.Kind)
	if !CanTransition(m.state, next) {
		return &Error{Offset: t.Offset, Text: raw, State: m.state, Reason: ErrUnexpectedToken}
	}

	switch t.Kind {
	case ParamsMarker:
		m.params = true
	case Pipe:
		m.params = false
	}

	m.state = next
	m.tokens = append(m.tokens, t)

	return nil
}

// classify turns an unquoted word into a token.
func (m *machine) classify(word string, offset int) (Token, error) {
	if m.params {
		return Token{Kind: Value, Text: word, Offset: offset}, nil
	}

	switch {
	case word == dashDash:
		return Token{Kind: ParamsMarker, Text: dashDash, Offset: offset}, nil
	case strings.HasPrefix(word, dashDash):
		if name := word[2:]; isLongName(name) {
			return Token{Kind: LongArgument, Text: name, Offset: offset}, nil
		}
	case strings.HasPrefix(word, dash):
		if name := word[1:]; isFlagCluster(name) {
			return Token{Kind: Flags, Text: name, Offset: offset}, nil
		}
	default:
		return Token{Kind: Value, Text: word, Offset: offset}, nil
	}

	return Token{}, &Error{Offset: offset, Text: word, State: m.state, Reason: ErrMalformedToken}
}

// Tokenize splits a raw command line.
//
// Words are separated by whitespace; "|" is always a token of its own; a
// double-quoted run is part of the surrounding word without its quotes, and a
// word containing one is always a Value.
func Tokenize(input string) ([]Token, error) {
	m := &machine{}
	pos := 0

	for {
		pos = skipSpace(input, pos)
		if pos >= len(input) {
			return m.tokens, nil
		}

		start := pos

		if input[pos] == pipe {
			pos++

			if err := m.emit(Token{Kind: Pipe, Text: pipeToken, Offset: start}, pipeToken); err != nil {
				return nil, err
			}

			continue
		}

		end, text, quoted, err := m.scanWord(input, pos)
		if err != nil {
			return nil, err
		}

		pos = end
		raw := input[start:end]

		var tok Token

		switch {
		case !quoted:
			if tok, err = m.classify(text, start); err != nil {
				return nil, err
			}
		case strings.HasPrefix(raw, dash) && !m.params:
			return nil, &Error{Offset: start, Text: raw, State: m.state, Reason: ErrMalformedToken}
		default:
			tok = Token{Kind: Value, Text: text, Offset: start}
		}

		if err := m.emit(tok, raw); err != nil {
			return nil, err
		}
	}
}

// scanWord reads the word starting at pos up to whitespace or a pipe outside
// quotes. It returns the end offset, the text with quotes removed and whether
// the word contained a quoted run.
func (m *machine) scanWord(s string, pos int) (int, string, bool, error) {
	var (
		sb     strings.Builder
		quoted bool
	)

	for pos < len(s) {
		if s[pos] == quote {
			end := strings.IndexByte(s[pos+1:], quote)
			if end < 0 {
				return 0, "", false, &Error{Offset: pos, Text: s[pos:], State: m.state, Reason: ErrUnterminatedQuote}
			}

			sb.WriteString(s[pos+1 : pos+1+end])
			pos += end + 2
			quoted = true

			continue
		}

		r, size := utf8.DecodeRuneInString(s[pos:])
		if unicode.IsSpace(r) || r == pipe {
			break
		}

		sb.WriteString(s[pos : pos+size])
		pos += size
	}

	return pos, sb.String(), quoted, nil
}

// TokenizeArgs classifies already split arguments, e.g. os.Args.
// No quote processing happens; an argument that is exactly "|" is a Pipe.
func TokenizeArgs(args []string) ([]Token, error) {
	m := &machine{}

	for i, arg := range args {
		var (
			tok Token
			err error
		)

		if arg == pipeToken {
			tok = Token{Kind: Pipe, Text: pipeToken, Offset: i}
		} else if tok, err = m.classify(arg, i); err != nil {
			return nil, err
		}

		if err := m.emit(tok, arg); err != nil {
			return nil, err
		}
	}

	return m.tokens, nil
}

func skipSpace(s string, pos int) int {
	for pos < len(s) {
		r, size := utf8.DecodeRuneInString(s[pos:])
		if !unicode.IsSpace(r) {
			break
		}

		pos += size
	}

	return pos
}

// isLongName matches [A-Za-z0-9][A-Za-z0-9+.-]*.
func isLongName(s string) bool {
	if s == "" || !isAlnum(rune(s[0])) {
		return false
	}

	for _, r := range s {
		if !isAlnum(r) && r != '+' && r != '.' && r != '-' {
			return false
		}
	}

	return true
}

// isFlagCluster matches one or more letters.
func isFlagCluster(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}

	return true
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
