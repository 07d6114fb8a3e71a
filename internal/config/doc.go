// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config loads the relay configuration file.
//
// The file is YAML (.yaml, .yml) or HCL (.hcl):
//
//	parallelism: 4
//	log:
//	  level: info
//	  file: relay.log
//	macros:
//	  - name: ship
//	    aliases: [s]
//	    command_line: build -verbose | deploy --env prod
//
// or, equivalently,
//
//	parallelism = 4
//	log {
//	  level = "info"
//	  file  = "relay.log"
//	}
//	macro "ship" {
//	  aliases      = ["s"]
//	  command_line = "build -verbose | deploy --env prod"
//	}
package config
