// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package builtin

import (
	"io"
	"os"

	"github.com/matt-FFFFFF/relay/internal/command"
	"github.com/spf13/afero"
)

var (
	// FS is the filesystem used by cat, write and ls.
	FS = afero.NewOsFs()
	// Stdout receives the output of the built-in commands.
	Stdout io.Writer = os.Stdout
	// Stderr receives the error output of executed programs.
	Stderr io.Writer = os.Stderr
)

// Commands returns a fresh set of the built-in commands.
func Commands() []command.Command {
	return []command.Command{
		command.Must(command.New(command.ID("echo", "print"), "Print the arguments", echoHandler, command.Logged)),
		command.Must(command.New(command.ID("sleep", "wait"), "Wait for a duration or until cancelled", sleepHandler, command.Logged)),
		command.Must(command.New(command.ID("fail"), "Fail with a message", failHandler, command.Logged)),
		command.Must(command.New(command.ID("exec", "run"), "Run a program", execHandler, command.Logged)),
		command.Must(command.New(command.ID("cat"), "Print the contents of files", catHandler, command.Logged)),
		command.Must(command.New(command.ID("write"), "Write text to a file", writeHandler, command.Logged)),
		command.Must(command.New(command.ID("ls", "dir"), "List a directory", lsHandler, command.Logged)),
	}
}
