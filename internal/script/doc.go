// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package script loads relay scripts.
//
// A script is a text file where every line is a command line. Blank lines
// and lines starting with # are ignored. Scripts are fetched using
// Hashicorp's go-getter, so they can live on disk, in a git repository or
// behind an HTTP URL:
//
//	./deploy.relay
//	git::https://github.com/org/repo//scripts/deploy.relay?ref=v1.0.0
//	https://example.com/scripts/deploy.relay
package script
