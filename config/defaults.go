// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"slices"

	"codeberg.org/localepipe/localepipe/locales"
	"codeberg.org/localepipe/localepipe/pipeline"
)

// SetDefaults populates the configuration with default values.
func (cfg *Config) SetDefaults() {
	cfg.Project.Name = "Sunshine"
	cfg.Project.Owner = "LizardByte"
	cfg.Project.Year = 0

	cfg.Paths.Root = "."
	cfg.Paths.SourceDir = "src"
	cfg.Paths.LocaleDir = "locale"
	cfg.Paths.TemplateExt = locales.DefaultTemplateExt

	cfg.Locales = slices.Clone(locales.DefaultLocales)

	tools := pipeline.DefaultTools()

	cfg.Extract.Extensions = slices.Clone(locales.SourceExtensions)
	cfg.Extract.PackageVersion = tools.PackageVersion

	cfg.Tools.Xgettext = tools.Xgettext
	cfg.Tools.Babel = tools.Babel
	cfg.Tools.Env = nil

	cfg.Log.Level = "info"
	cfg.Log.Outputs = []string{"/dev/stderr"}
	cfg.Log.Format = "console"
}
