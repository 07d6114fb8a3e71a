// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package script

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-getter/v2"
)

// CommentPrefix starts a line that is not executed.
const CommentPrefix = "#"

var (
	// ErrFetch is returned when a script cannot be retrieved.
	ErrFetch = errors.New("failed to fetch script")
	// ErrRead is returned when a script cannot be split into lines.
	ErrRead = errors.New("failed to read script")
)

// Line is one command line of a script.
type Line struct {
	// Number is the 1-based line number in the source file.
	Number int
	Text   string
}

func (l Line) String() string {
	return fmt.Sprintf("%d: %s", l.Number, l.Text)
}

// Script is a fetched script.
type Script struct {
	Source string
	Lines  []Line
}

// Load fetches the script at url and splits it into lines.
func Load(ctx context.Context, url string) (*Script, error) {
	src, err := Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	lines, err := Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrRead, url, err)
	}

	return &Script{Source: url, Lines: lines}, nil
}

// Parse returns the executable lines of src.
func Parse(src []byte) ([]Line, error) {
	var lines []Line

	sc := bufio.NewScanner(bytes.NewReader(src))
	n := 0

	for sc.Scan() {
		n++

		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, CommentPrefix) {
			continue
		}

		lines = append(lines, Line{Number: n, Text: text})
	}

	if err := sc.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

// Fetch retrieves the content of url using go-getter.
// The temporary download directory is removed before returning.
func Fetch(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("%w: empty URL", ErrFetch)
	}

	tmpDir, err := os.MkdirTemp("", "relay-getter-*")
	if err != nil {
		return nil, errors.Join(ErrFetch, err)
	}

	defer os.RemoveAll(tmpDir) //nolint:errcheck

	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Join(ErrFetch, err)
	}

	client := getter.Client{
		DisableSymlinks: true,
	}

	req := &getter.Request{
		Src:     url,
		Dst:     filepath.Join(tmpDir, "g"),
		Pwd:     wd,
		GetMode: getter.ModeDir,
	}

	var fileName string

	// Remote sources are fetched as a directory and the file read from it.
	// https://github.com/hashicorp/go-getter/issues/98
	if ok, err := getter.Detect(req, &getter.FileGetter{}); !ok || err != nil {
		if err != nil {
			return nil, errors.Join(ErrFetch, err)
		}

		var dirURL string

		dirURL, fileName = splitFileName(url)
		if dirURL == "" || fileName == "" {
			return nil, fmt.Errorf("%w: invalid URL format: %s", ErrFetch, url)
		}

		req.Src = dirURL
	}

	if fileName == "" {
		req.Src = filepath.Dir(url)
		fileName = filepath.Base(url)
	}

	res, err := client.Get(ctx, req)
	if err != nil {
		return nil, errors.Join(ErrFetch, err)
	}

	b, err := os.ReadFile(filepath.Join(res.Dst, fileName))
	if err != nil {
		return nil, errors.Join(ErrFetch, err)
	}

	return b, nil
}

const (
	getterPathSeparator = "//"
	getterRefSeparator  = "?"
	minimumGetterParts  = 3
)

// splitFileName splits a go-getter URL into the URL of the enclosing
// directory and the file name. A query string is kept on the directory URL.
func splitFileName(url string) (string, string) {
	var query string

	parts := strings.Split(url, getterPathSeparator)
	if len(parts) < minimumGetterParts {
		return "", ""
	}

	last := parts[len(parts)-1]

	if before, after, ok := strings.Cut(last, getterRefSeparator); ok {
		query = after
		last = before
	}

	if filepath.Clean(last) == filepath.Dir(last) {
		return "", ""
	}

	fileName := filepath.Base(last)

	if dir := filepath.Dir(last); dir == "." {
		parts = parts[:len(parts)-1]
	} else {
		parts[len(parts)-1] = dir
	}

	dirURL := strings.Join(parts, getterPathSeparator)

	if query != "" {
		dirURL += getterRefSeparator + query
	}

	return dirURL, fileName
}
