// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cmdline

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ErrEmptyName is returned when an ArgumentName is built without any alias.
var ErrEmptyName = errors.New("argument name needs at least one non-empty alias")

var (
	// Anonymous holds the command name and the positional values of a line.
	Anonymous = MustName("#0")
	// AsyncName is the well-known argument that marks a line as concurrent.
	AsyncName = MustName("async")
)

// ArgumentName is an immutable set of case-insensitive aliases.
// The zero value is not valid; use NewName or MustName.
type ArgumentName struct {
	aliases []string
}

// NewName builds a name from one or more aliases. Aliases are lower-cased
// and de-duplicated, keeping the order in which they were declared.
func NewName(aliases ...string) (ArgumentName, error) {
	out := make([]string, 0, len(aliases))

	for _, a := range aliases {
		a = strings.ToLower(strings.TrimSpace(a))
		if a == "" || slices.Contains(out, a) {
			continue
		}

		out = append(out, a)
	}

	if len(out) == 0 {
		return ArgumentName{}, ErrEmptyName
	}

	return ArgumentName{aliases: out}, nil
}

// MustName is NewName that panics on error.
func MustName(aliases ...string) ArgumentName {
	n, err := NewName(aliases...)
	if err != nil {
		panic(err)
	}

	return n
}

// PositionalName is the synthetic alias carried by the parameter bound to
// anonymous value n.
func PositionalName(n int) string {
	return "#" + strconv.Itoa(n)
}

// Primary returns the first declared alias.
func (n ArgumentName) Primary() string {
	if len(n.aliases) == 0 {
		return ""
	}

	return n.aliases[0]
}

// Aliases returns a copy of all aliases.
func (n ArgumentName) Aliases() []string {
	return slices.Clone(n.aliases)
}

// Has reports whether alias is one of the aliases, ignoring case.
func (n ArgumentName) Has(alias string) bool {
	return slices.Contains(n.aliases, strings.ToLower(alias))
}

// Equal reports whether the two names share at least one alias.
func (n ArgumentName) Equal(other ArgumentName) bool {
	return slices.ContainsFunc(other.aliases, n.Has)
}

// IsZero reports whether n was never initialised.
func (n ArgumentName) IsZero() bool {
	return len(n.aliases) == 0
}

// String implements fmt.Stringer.
func (n ArgumentName) String() string {
	if len(n.aliases) <= 1 {
		return n.Primary()
	}

	return fmt.Sprintf("%s (%s)", n.Primary(), strings.Join(n.aliases[1:], ", "))
}

// MarshalText renders the primary alias.
func (n ArgumentName) MarshalText() ([]byte, error) {
	return []byte(n.Primary()), nil
}
