// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package pipeline

import (
	"context"

	"codeberg.org/localepipe/localepipe/process"
)

// UpdateCommand builds the single Babel invocation that merges the template
// into every existing catalog.
func (p *Pipeline) UpdateCommand() process.Command {
	return process.Command{
		Args: []string{
			p.tools.Babel, "update",
			"-i", p.layout.TemplatePath(),
			"-d", p.layout.LocaleDir,
			"-D", p.layout.Domain,
			"--update-header-comment",
		},
		Dir: p.layout.Root,
		Env: p.tools.Env,
	}
}

// Update merges new and changed template entries into all catalogs,
// keeping existing translations. With no catalogs it does nothing.
func (p *Pipeline) Update(ctx context.Context) error {
	catalogs, err := p.catalogLocales()
	if err != nil {
		return err
	}

	if len(catalogs) == 0 {
		p.logger.Info().Msg("No catalogs to update")

		return nil
	}

	if err := p.requireTemplate(); err != nil {
		return err
	}

	p.logger.Info().Strs("locales", catalogs).Msg("Updating catalogs")

	return p.runner.Run(ctx, p.UpdateCommand())
}
