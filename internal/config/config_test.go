// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlConfig = `
parallelism: 4
log:
  level: info
  format: json
  file: relay.log
macros:
  - name: ship
    aliases: [s]
    description: Build and deploy
    command_line: build -verbose | deploy --env prod
  - name: nightly
    command_line: ship | echo done
`

const hclConfig = `
parallelism = 4

log {
  level  = "info"
  format = "json"
  file   = "relay.log"
}

macro "ship" {
  aliases      = ["s"]
  description  = "Build and deploy"
  command_line = "build -verbose | deploy --env prod"
}

macro "nightly" {
  command_line = "ship | echo done"
}
`

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/cfg/relay.yaml", []byte(yamlConfig), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/cfg/relay.hcl", []byte(hclConfig), 0o644))

	for _, path := range []string{"/cfg/relay.yaml", "/cfg/relay.hcl"} {
		t.Run(path, func(t *testing.T) {
			c, err := Load(fs, path)
			require.NoError(t, err)

			assert.Equal(t, 4, c.Parallelism)
			require.NotNil(t, c.Log)
			assert.Equal(t, "info", c.Log.Level)
			assert.Equal(t, "json", c.Log.Format)
			assert.Equal(t, "relay.log", c.Log.File)
			assert.Equal(t, defaultMaxSizeMB, c.Log.MaxSizeMB)
			assert.Equal(t, defaultMaxBackups, c.Log.MaxBackups)

			require.Len(t, c.Macros, 2)
			assert.Equal(t, []string{"ship", "s"}, c.Macros[0].Names())
			assert.Equal(t, "Build and deploy", c.Macros[0].Description)
			assert.Equal(t, "build -verbose | deploy --env prod", c.Macros[0].CommandLine)
			assert.Equal(t, "nightly", c.Macros[1].Name)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "bad.yaml", []byte("parallelism: [1"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "unknown.yaml", []byte("paralelism: 1"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "bad.hcl", []byte("macro {"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "relay.toml", []byte(""), 0o644))

	_, err := Load(fs, "missing.yaml")
	require.ErrorIs(t, err, ErrReadConfig)

	_, err = Load(fs, "bad.yaml")
	require.ErrorIs(t, err, ErrInvalidYaml)

	_, err = Load(fs, "unknown.yaml")
	require.ErrorIs(t, err, ErrInvalidYaml)

	_, err = Load(fs, "bad.hcl")
	require.ErrorIs(t, err, ErrInvalidHcl)

	_, err = Load(fs, "relay.toml")
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, 0, c.Parallelism)
	assert.Equal(t, defaultMaxSizeMB, c.Log.MaxSizeMB)
}

func TestDiscover(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, ok := Discover(fs, "/p")
	assert.False(t, ok)

	require.NoError(t, afero.WriteFile(fs, "/p/relay.hcl", nil, 0o644))
	require.NoError(t, afero.WriteFile(fs, "/p/relay.yml", nil, 0o644))

	path, ok := Discover(fs, "/p")
	assert.True(t, ok)
	assert.Equal(t, "/p/relay.yml", path)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *Config
		contains []string
	}{
		{
			name: "negative parallelism and bad log settings",
			cfg: &Config{
				Parallelism: -1,
				Log:         &LogConfig{Level: "loud", Format: "xml"},
			},
			contains: []string{"parallelism", `"loud"`, `"xml"`},
		},
		{
			name: "macro problems",
			cfg: &Config{Macros: []*Macro{
				{Name: "", CommandLine: "echo"},
				{Name: "a", Aliases: []string{"x"}, CommandLine: `echo "unterminated`},
				{Name: "b", Aliases: []string{"X"}, CommandLine: "   "},
			}},
			contains: []string{"macro 0 has no name", `macro "a"`, `name "x" is already used by macro "a"`, `macro "b" has an empty command line`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.ErrorIs(t, err, ErrInvalidConfig)

			for _, s := range tt.contains {
				assert.Contains(t, err.Error(), s)
			}
		})
	}
}

func TestValidate_CircularMacros(t *testing.T) {
	t.Run("self reference", func(t *testing.T) {
		c := &Config{Macros: []*Macro{{Name: "loop", CommandLine: "echo | LOOP"}}}

		err := c.Validate()
		require.ErrorIs(t, err, ErrCircularMacro)
		assert.Contains(t, err.Error(), "loop → loop")
	})

	t.Run("three way through an alias", func(t *testing.T) {
		c := &Config{Macros: []*Macro{
			{Name: "start", CommandLine: "a"},
			{Name: "a", CommandLine: "b"},
			{Name: "b", CommandLine: "echo | c-alias"},
			{Name: "c", Aliases: []string{"c-alias"}, CommandLine: "a"},
		}}

		err := c.Validate()
		require.ErrorIs(t, err, ErrCircularMacro)
		assert.Contains(t, err.Error(), "a → b → c → a")
		assert.NotContains(t, err.Error(), "start →")
	})

	t.Run("diamond is not a cycle", func(t *testing.T) {
		c := &Config{Macros: []*Macro{
			{Name: "top", CommandLine: "left | right"},
			{Name: "left", CommandLine: "bottom"},
			{Name: "right", CommandLine: "bottom"},
			{Name: "bottom", CommandLine: "echo"},
		}}

		require.NoError(t, c.Validate())
	})

	t.Run("too deep", func(t *testing.T) {
		c := &Config{}
		for i := range MaxMacroDepth + 1 {
			c.Macros = append(c.Macros, &Macro{Name: fmt.Sprintf("m%d", i), CommandLine: fmt.Sprintf("m%d", i+1)})
		}

		err := c.Validate()
		require.ErrorIs(t, err, ErrMacroTooDeep)
		assert.True(t, strings.HasPrefix(err.Error(), ErrInvalidConfig.Error()))
	})
}
