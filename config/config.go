// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package config loads the localepipe configuration.

Values are layered, later sources overriding earlier ones:

 1. built-in defaults ([Config.SetDefaults])
 2. a YAML file (--config, LOCALEPIPE_CONFIGFILE, or ./localepipe.yaml)
 3. a .env file in the working directory or next to the binary
 4. LOCALEPIPE_* environment variables
 5. command-line flags

The result is validated and returned as a value; nothing is kept in package
state, so several configurations can coexist in one process.
*/
package config

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"codeberg.org/localepipe/localepipe/locales"
	"codeberg.org/localepipe/localepipe/pipeline"
)

const (
	configFileEnv      = "LOCALEPIPE_CONFIGFILE"
	defaultConfigFile  = "./localepipe.yaml"
	fallbackConfigFile = "./localepipe.yml"
)

// Config holds the application configuration.
type Config struct {
	Build BuildInfo `yaml:"-"`

	Project struct {
		Name  string `env:"LOCALEPIPE_PROJECT_NAME,overwrite"  validate:"required"   yaml:"name"`
		Owner string `env:"LOCALEPIPE_PROJECT_OWNER,overwrite" validate:"required"   yaml:"owner"`
		// Year stamped into template headers; 0 means the current year.
		Year int `env:"LOCALEPIPE_PROJECT_YEAR,overwrite" validate:"gte=0,lte=9999" yaml:"year"`
	} `yaml:"project"`

	Paths struct {
		Root string `env:"LOCALEPIPE_ROOT,overwrite" validate:"required" yaml:"root"`
		// SourceDir and LocaleDir are resolved against Root when relative.
		SourceDir   string `env:"LOCALEPIPE_SOURCE_DIR,overwrite"   validate:"required"          yaml:"sourceDir"`
		LocaleDir   string `env:"LOCALEPIPE_LOCALE_DIR,overwrite"   validate:"required"          yaml:"localeDir"`
		TemplateExt string `env:"LOCALEPIPE_TEMPLATE_EXT,overwrite" validate:"required,alphanum" yaml:"templateExt"`
	} `yaml:"paths"`

	Locales []string `env:"LOCALEPIPE_LOCALES,overwrite" validate:"dive,required" yaml:"locales"`

	Extract struct {
		Extensions     []string `env:"LOCALEPIPE_EXTENSIONS,overwrite"      validate:"min=1,dive,required" yaml:"extensions"`
		PackageVersion string   `env:"LOCALEPIPE_PACKAGE_VERSION,overwrite" validate:"required"            yaml:"packageVersion"`
	} `yaml:"extract"`

	Tools struct {
		Xgettext string `env:"LOCALEPIPE_XGETTEXT,overwrite" validate:"required" yaml:"xgettext"`
		Babel    string `env:"LOCALEPIPE_PYBABEL,overwrite"  validate:"required" yaml:"pybabel"`
		// Env overrides environment variables of every tool. YAML only.
		Env map[string]string `yaml:"env"`
	} `yaml:"tools"`

	Log struct {
		Level   string   `env:"LOCALEPIPE_LOG_LEVEL,overwrite"   validate:"oneof=debug info warn error" yaml:"logLevel"`
		Outputs []string `env:"LOCALEPIPE_LOG_OUTPUTS,overwrite"                                        yaml:"logOutputs"`
		Format  string   `env:"LOCALEPIPE_LOG_FORMAT,overwrite"  validate:"oneof=console json"          yaml:"logFormat"`
	} `yaml:"log"`
}

// LoadConfig loads the configuration from all sources, flags last, and validates it.
func (cfg *Config) LoadConfig(flags Flags) error {
	cfg.SetDefaults()

	cfg.Build.load()

	configFilePath, required := resolveConfigFile(flags)

	if err := cfg.readYAML(configFilePath, required); err != nil {
		return fmt.Errorf("error loading YAML config: %w", err)
	}

	if err := useDotEnv(); err != nil {
		return fmt.Errorf("error using .env file: %w", err)
	}

	if err := readEnv(cfg); err != nil {
		return fmt.Errorf("error loading environment variables: %w", err)
	}

	flags.apply(cfg)

	if err := cfg.validateAndSet(); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	cfg.setupAudit()

	cfg.print()

	return nil
}

// resolveConfigFile picks the YAML file with the precedence:
//  1. command-line flag (--config)
//  2. environment variable (LOCALEPIPE_CONFIGFILE)
//  3. ./localepipe.yaml, falling back to ./localepipe.yml
//
// It also reports whether the file was named explicitly and must exist.
func resolveConfigFile(flags Flags) (string, bool) {
	if flags.ConfigFile != "" {
		return flags.ConfigFile, true
	}

	if envVar := os.Getenv(configFileEnv); envVar != "" {
		return envVar, true
	}

	if _, err := os.Stat(defaultConfigFile); os.IsNotExist(err) {
		if _, statErr := os.Stat(fallbackConfigFile); statErr == nil {
			return fallbackConfigFile, false
		}
	}

	return defaultConfigFile, false
}

// Identity returns the project identity. Valid after LoadConfig.
func (cfg *Config) Identity() locales.Identity {
	return locales.Identity{
		Name:  cfg.Project.Name,
		Owner: cfg.Project.Owner,
		Year:  cfg.Project.Year,
	}
}

// Layout returns the on-disk layout. Valid after LoadConfig.
func (cfg *Config) Layout() locales.Layout {
	return locales.Layout{
		Root:        cfg.Paths.Root,
		SourceDir:   cfg.Paths.SourceDir,
		LocaleDir:   cfg.Paths.LocaleDir,
		TemplateExt: cfg.Paths.TemplateExt,
		Domain:      cfg.Identity().DomainKey(),
	}
}

// PipelineOptions returns pipeline options for this configuration. The
// caller supplies the runner and logger.
func (cfg *Config) PipelineOptions() (pipeline.Options, error) {
	set, err := locales.NewSet(cfg.Locales...)
	if err != nil {
		return pipeline.Options{}, err
	}

	log.Debug().Strs("locales", set.IDs()).Msg("Target locales")

	return pipeline.Options{
		Identity: cfg.Identity(),
		Locales:  set,
		Layout:   cfg.Layout(),
		Tools: pipeline.Tools{
			Xgettext:       cfg.Tools.Xgettext,
			Babel:          cfg.Tools.Babel,
			PackageVersion: cfg.Extract.PackageVersion,
			Env:            cfg.Tools.Env,
		},
		Extensions: cfg.Extract.Extensions,
	}, nil
}
