// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package binding maps the raw values of a command line onto a typed
// parameter struct.
//
// The parameters of a command are described by a Schema, normally derived
// from struct tags by StructSchema:
//
//	type deployParams struct {
//		Target string        `position:"1" desc:"what to deploy"`
//		Env    string        `arg:"env,e" default:"dev"`
//		Wait   time.Duration `default:"30s"`
//		Tags   []string      `arg:"tag,t"`
//		DryRun bool
//	}
//
// A Binder then resolves every parameter against a cmdline.CommandLine and
// converts the values with a Converter. All problems found while binding
// one line are reported together in a single *BindError.
package binding
