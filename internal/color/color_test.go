// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsColorCapable(t *testing.T) {
	t.Setenv(NoColor, "1")
	assert.False(t, isColorCapable(), "NO_COLOR should disable color")

	t.Setenv(ForceColor, "1")
	assert.False(t, isColorCapable(), "NO_COLOR should still win over FORCE_COLOR")

	t.Setenv(NoColor, "")
	assert.True(t, isColorCapable(), "FORCE_COLOR should enable color")
}

func TestColorize(t *testing.T) {
	prev := Enabled()
	t.Cleanup(func() { SetEnabled(prev) })

	SetEnabled(false)
	assert.Equal(t, "plain", Colorize("plain", FgRed))

	SetEnabled(true)
	assert.Equal(t, "\033[1;31mbold\033[0m", Colorize("bold", Bold, FgRed))
	assert.Equal(t, "none", Colorize("none"))
}

func TestControlString(t *testing.T) {
	assert.Equal(t, "\033[0m", ControlString(Reset))
	assert.Equal(t, "\033[1;92m", ControlString(Bold, FgHiGreen))
}
