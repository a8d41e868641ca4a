// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package pipeline

import (
	"context"

	"codeberg.org/localepipe/localepipe/process"
)

// InitCommand builds the Babel invocation that seeds the catalog of locale.
func (p *Pipeline) InitCommand(locale string) process.Command {
	return process.Command{
		Args: []string{
			p.tools.Babel, "init",
			"-i", p.layout.TemplatePath(),
			"-d", p.layout.LocaleDir,
			"-D", p.layout.Domain,
			"-l", locale,
		},
		Dir: p.layout.Root,
		Env: p.tools.Env,
	}
}

// Init seeds a catalog for every target locale whose catalog directory does
// not exist yet, and returns the locales it initialised.
//
// A locale with an existing directory is skipped whatever the directory holds,
// so running Init again never overwrites a catalog.
func (p *Pipeline) Init(ctx context.Context) ([]string, error) {
	var (
		created         []string
		templateChecked bool
	)

	for _, locale := range p.locales.IDs() {
		exists, err := isDir(p.layout.CatalogDir(locale))
		if err != nil {
			return created, err
		}

		if exists {
			p.logger.Debug().Str("locale", locale).Msg("Catalog already initialised")

			continue
		}

		if !templateChecked {
			if err := p.requireTemplate(); err != nil {
				return nil, err
			}

			templateChecked = true
		}

		p.logger.Info().Str("locale", locale).Msg("Initialising catalog")

		if err := p.runner.Run(ctx, p.InitCommand(locale)); err != nil {
			return created, err
		}

		created = append(created, locale)
	}

	if len(created) == 0 {
		p.logger.Info().Msg("All catalogs already initialised")
	}

	return created, nil
}
