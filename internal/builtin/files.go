// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package builtin

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/matt-FFFFFF/relay/internal/command"
	"github.com/spf13/afero"
)

const sixFourFour = 0o644

type catParams struct {
	Files []string `position:"1" desc:"files to print"`
}

var catHandler = command.HandlerFunc[catParams](func(ctx context.Context, p *catParams) error {
	for _, f := range p.Files {
		if err := ctx.Err(); err != nil {
			return err
		}

		b, err := afero.ReadFile(FS, f)
		if err != nil {
			return err
		}

		if _, err := Stdout.Write(b); err != nil {
			return err
		}
	}

	return nil
})

type writeParams struct {
	Path    string   `position:"1" desc:"file to write"`
	Content []string `position:"2" default:"" desc:"text to write, joined by spaces"`
	Append  bool     `arg:"append,a" desc:"append instead of truncating"`
}

var writeHandler = command.HandlerFunc[writeParams](func(_ context.Context, p *writeParams) error {
	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if p.Append {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}

	f, err := FS.OpenFile(p.Path, flags, sixFourFour)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintln(f, strings.Join(p.Content, " ")); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
})

type lsParams struct {
	Dir  string `position:"1" default:"." desc:"directory to list"`
	All  bool   `arg:"all,a" desc:"include entries starting with a dot"`
	Long bool   `arg:"long,l" desc:"show mode and size"`
}

var lsHandler = command.HandlerFunc[lsParams](func(_ context.Context, p *lsParams) error {
	entries, err := afero.ReadDir(FS, p.Dir)
	if err != nil {
		return err
	}

	for _, e := range entries {
		if !p.All && strings.HasPrefix(e.Name(), ".") {
			continue
		}

		name := e.Name()
		if e.IsDir() {
			name += "/"
		}

		if p.Long {
			_, err = fmt.Fprintf(Stdout, "%s %8d %s\n", e.Mode(), e.Size(), name)
		} else {
			_, err = fmt.Fprintln(Stdout, name)
		}

		if err != nil {
			return err
		}
	}

	return nil
})
