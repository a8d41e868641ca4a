// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import "github.com/spf13/pflag"

// Flags holds command-line values. They take precedence over every other
// source; empty values leave the configuration untouched.
type Flags struct {
	ConfigFile string
	Root       string
	LogLevel   string
}

// BindFlags registers the configuration flags on fs.
func (f *Flags) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&f.ConfigFile, "config", "", "Path to a localepipe configuration file in YAML format (default ./localepipe.yaml).")
	fs.StringVar(&f.Root, "root", "", "Project root containing src/ and locale/ (overrides paths.root).")
	fs.StringVar(&f.LogLevel, "log-level", "", "Log level: debug, info, warn or error (overrides log.logLevel).")
}

func (f Flags) apply(cfg *Config) {
	if f.Root != "" {
		cfg.Paths.Root = f.Root
	}

	if f.LogLevel != "" {
		cfg.Log.Level = f.LogLevel
	}
}
