// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package list provides the list command, which describes the registered commands.
package list

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/matt-FFFFFF/relay/cmd/relay/appstate"
	"github.com/matt-FFFFFF/relay/internal/binding"
	"github.com/matt-FFFFFF/relay/internal/command"
	"github.com/urfave/cli/v3"
)

const commandArg = "command"

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// NewListCmd returns the command that lists commands and their parameters.
func NewListCmd() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List the available commands, or the parameters of one command",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name:      commandArg,
				UsageText: "[COMMAND]",
			},
		},
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	s, err := appstate.FromContext(ctx)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	w := cmd.Root().Writer

	name := cmd.StringArg(commandArg)
	if name == "" {
		fmt.Fprintln(w, CommandsTable(s.Registry.Commands())) //nolint:errcheck
		return nil
	}

	c, err := s.Registry.Resolve(name, 0)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	fmt.Fprintf(w, "%s\n\n%s\n", c.Description(), ParametersTable(c)) //nolint:errcheck

	return nil
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			return cellStyle
		}).
		Headers(headers...)
}

// CommandsTable renders one row per command.
func CommandsTable(cmds []command.Command) string {
	t := newTable("COMMAND", "ALIASES", "DESCRIPTION", "USAGE")

	for _, c := range cmds {
		aliases := c.ID().Aliases()
		t.Row(aliases[0], strings.Join(aliases[1:], ", "), c.Description(), Usage(c))
	}

	return t.String()
}

// ParametersTable renders one row per parameter of c.
func ParametersTable(c command.Command) string {
	t := newTable("PARAMETER", "ALIASES", "POSITION", "TYPE", "REQUIRED", "DEFAULT", "DESCRIPTION")

	for _, p := range c.Schema().Parameters {
		aliases := named(p)

		position := ""
		if p.Position > 0 {
			position = strconv.Itoa(p.Position)
		}

		def := ""
		if p.HasDefault() {
			def = formatDefault(p.DefaultValue)
		}

		t.Row(aliases[0], strings.Join(aliases[1:], ", "), position, p.TypeName(), strconv.FormatBool(p.Required && !p.HasDefault()), def, p.Description)
	}

	return t.String()
}

// Usage returns a one-line synopsis of the command's parameters, e.g.
// "echo [<words>...] [--no-newline]".
func Usage(c command.Command) string {
	parts := []string{c.ID().Primary()}

	var flags []string

	for _, p := range c.Schema().Parameters {
		name := named(p)[0]
		optional := !p.Required || p.HasDefault()

		var s string

		switch {
		case p.Position > 0:
			s = "<" + name + ">"
			if p.IsCollection {
				s += "..."
			}
		case p.Type.Kind() == reflect.Bool:
			s = "--" + name
		default:
			s = "--" + name + " <" + p.TypeName() + ">"
		}

		if optional {
			s = "[" + s + "]"
		}

		if p.Position > 0 {
			parts = append(parts, s)
		} else {
			flags = append(flags, s)
		}
	}

	return strings.Join(append(parts, flags...), " ")
}

// named returns the aliases of p without the synthetic positional alias.
func named(p *binding.ParameterMetadata) []string {
	var out []string

	for _, a := range p.Name.Aliases() {
		if !strings.HasPrefix(a, "#") {
			out = append(out, a)
		}
	}

	if len(out) == 0 {
		return p.Name.Aliases()
	}

	return out
}

func formatDefault(v any) string {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return fmt.Sprint(v)
	}

	items := make([]string, rv.Len())
	for i := range items {
		items[i] = fmt.Sprint(rv.Index(i).Interface())
	}

	return strings.Join(items, ",")
}
