//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

// Package env implements the run configuration shared by the xtabs
// packages.
package env

import (
	"crypto/rand"
	"fmt"
	"io"
)

// Config defines the configuration of one aggregation run. Config
// must not be modified after being passed to any module. It is safe
// for concurrent use as the modules only read it.
type Config struct {
	// Rand is the source of entropy for garbling and OT. If unset,
	// crypto/rand is used.
	Rand io.Reader

	// Verbose enables progress output.
	Verbose bool

	// Diagnostics enables circuit and protocol diagnostics.
	Diagnostics bool
}

// GetRandom returns the source of entropy for garbling, OT, and other
// cryptography operations.
func (config *Config) GetRandom() io.Reader {
	if config.Rand != nil {
		return config.Rand
	}
	return rand.Reader
}

// Printf prints progress output if the configuration is verbose.
func (config *Config) Printf(format string, a ...interface{}) {
	if config.Verbose {
		fmt.Printf(format, a...)
	}
}

// Debugf prints diagnostics output if diagnostics are enabled.
func (config *Config) Debugf(format string, a ...interface{}) {
	if config.Diagnostics {
		fmt.Printf(format, a...)
	}
}
