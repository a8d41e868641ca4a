// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"fmt"
	"maps"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const redactedValue = "[redacted]"

func (cfg *Config) print() {
	log.Info().
		Str("version", BuildVersion).
		Str("revision", cfg.Build.Revision()).
		Str("project", cfg.Project.Name).
		Str("root", cfg.Paths.Root).
		Msg("Starting localepipe")

	if zerolog.GlobalLevel() > zerolog.DebugLevel {
		return
	}

	// Tool environment overrides may carry credentials.
	printableConfig := *cfg
	printableConfig.Tools.Env = maps.Clone(cfg.Tools.Env)

	for k := range printableConfig.Tools.Env {
		printableConfig.Tools.Env[k] = redactedValue
	}

	configYAML, err := yaml.MarshalWithOptions(printableConfig, yaml.Indent(2))
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal config to YAML for printing")

		return
	}

	log.Debug().
		Msg("Application configuration:")
	fmt.Fprintln(os.Stderr, string(configYAML))
}
