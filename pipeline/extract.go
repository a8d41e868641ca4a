// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"codeberg.org/localepipe/localepipe/process"
)

// Keywords tells xgettext which calls mark translatable text and which
// arguments hold the context (c), singular and plural forms, and how many
// arguments a match must have (t).
var Keywords = []string{
	"translate:1,1t",
	"translate:1c,2,2t",
	"translate:1,2,3t",
	"translate:1c,2,3,4t",
	"gettext:1",
	"pgettext:1c,2",
	"ngettext:1,2",
	"npgettext:1c,2,3",
}

const (
	sourceLanguage = "C++"
	sourceEncoding = "utf-8"

	localeDirPermissions = 0o755
)

// ExtractCommand builds the xgettext invocation for the current source tree.
//
// Input files are given relative to the layout root, in walk order, so the
// references recorded in the template do not depend on where the tree lives.
// It reports how many source files were found.
func (p *Pipeline) ExtractCommand() (process.Command, int, error) {
	sources, err := discoverSources(p.layout.SourceDir, p.extensions)
	if err != nil {
		return process.Command{}, 0, err
	}

	args := make([]string, 0, len(Keywords)+len(sources)+11)
	args = append(args, p.tools.Xgettext)

	for _, kw := range Keywords {
		args = append(args, "--keyword="+kw)
	}

	args = append(args,
		"--default-domain="+p.layout.Domain,
		"--output="+p.layout.TemplatePath(),
		"--language="+sourceLanguage,
		"--boost",
		"--from-code="+sourceEncoding,
		"-F",
		"--msgid-bugs-address="+p.identity.BugsAddress(),
		"--copyright-holder="+p.identity.Owner,
		"--package-name="+p.identity.Name,
		"--package-version="+p.tools.PackageVersion,
	)

	for _, src := range sources {
		args = append(args, p.layout.Rel(src))
	}

	return process.Command{Args: args, Dir: p.layout.Root, Env: p.tools.Env}, len(sources), nil
}

// Extract regenerates the translations template from the sources and
// normalises its header.
//
// A tree with no recognised sources is not an error; the tool is not run and
// a template left by an earlier run is removed, since none of its messages
// can still be referenced. If the tool finds no messages and writes nothing,
// the header rewrite is skipped.
func (p *Pipeline) Extract(ctx context.Context) error {
	cmd, n, err := p.ExtractCommand()
	if err != nil {
		return err
	}

	if n == 0 {
		p.logger.Warn().
			Str("path", p.layout.SourceDir).
			Strs("extensions", p.extensions).
			Msg("No source files found, skipping extraction")

		return p.removeStaleTemplate()
	}

	if err := os.MkdirAll(p.layout.LocaleDir, localeDirPermissions); err != nil {
		return fmt.Errorf("failed to create locale directory: %w", err)
	}

	p.logger.Info().Int("sources", n).Msg("Extracting messages")

	if err := p.runner.Run(ctx, cmd); err != nil {
		return err
	}

	rewritten, err := rewriteTemplateFile(p.layout.TemplatePath(), p.identity)
	if err != nil {
		return err
	}

	if !rewritten {
		p.logger.Info().
			Str("path", p.layout.TemplatePath()).
			Msg("No template produced, header rewrite skipped")

		return nil
	}

	p.logger.Info().Str("path", p.layout.TemplatePath()).Msg("Wrote translations template")

	return nil
}

// removeStaleTemplate deletes the template if one exists.
func (p *Pipeline) removeStaleTemplate() error {
	path := p.layout.TemplatePath()

	err := os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to remove stale template %s: %w", path, err)
	}

	p.logger.Warn().Str("path", path).Msg("Removed template left by an earlier extraction")

	return nil
}
