// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package pipeline

import (
	"context"

	"codeberg.org/localepipe/localepipe/process"
)

// CompileCommand builds the single Babel invocation that compiles every catalog.
func (p *Pipeline) CompileCommand() process.Command {
	return process.Command{
		Args: []string{
			p.tools.Babel, "compile",
			"-d", p.layout.LocaleDir,
			"-D", p.layout.Domain,
		},
		Dir: p.layout.Root,
		Env: p.tools.Env,
	}
}

// Compile writes the compiled form of every catalog. With no catalogs it
// does nothing.
func (p *Pipeline) Compile(ctx context.Context) error {
	catalogs, err := p.catalogLocales()
	if err != nil {
		return err
	}

	if len(catalogs) == 0 {
		p.logger.Info().Msg("No catalogs to compile")

		return nil
	}

	p.logger.Info().Strs("locales", catalogs).Msg("Compiling catalogs")

	if err := p.runner.Run(ctx, p.CompileCommand()); err != nil {
		return err
	}

	for _, locale := range catalogs {
		if !fileExists(p.layout.CompiledPath(locale)) {
			// Babel skips catalogs whose header is marked fuzzy.
			p.logger.Warn().
				Str("locale", locale).
				Str("path", p.layout.CompiledPath(locale)).
				Msg("Compiled catalog not produced")
		}
	}

	return nil
}
