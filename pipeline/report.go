// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/leonelquinteros/gotext"
	"golang.org/x/sync/errgroup"
)

// reportConcurrency bounds how many catalogs are parsed at once.
const reportConcurrency = 4

var (
	moMagicLE = []byte{0xde, 0x12, 0x04, 0x95}
	moMagicBE = []byte{0x95, 0x04, 0x12, 0xde}
)

// CatalogReport summarises one locale's catalogs.
type CatalogReport struct {
	Locale string
	// Messages counts the non-header entries of the text catalog.
	Messages int
	// Translated counts entries with at least one non-empty translation.
	Translated int
	// Compiled is true when a compiled catalog exists and decodes.
	Compiled bool
	// CompiledMessages counts non-header entries of the compiled catalog.
	CompiledMessages int
}

// Coverage is the translated share of messages in [0, 1].
// A catalog with no messages is fully covered.
func (r CatalogReport) Coverage() float64 {
	if r.Messages == 0 {
		return 1
	}

	return float64(r.Translated) / float64(r.Messages)
}

// Report parses every existing catalog and returns a summary per locale in
// directory order. It never runs external tools.
func (p *Pipeline) Report(ctx context.Context) ([]CatalogReport, error) {
	catalogs, err := p.catalogLocales()
	if err != nil {
		return nil, err
	}

	reports := make([]CatalogReport, len(catalogs))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(reportConcurrency)

	for i, locale := range catalogs {
		g.Go(func() error {
			r, err := p.reportCatalog(locale)
			if err != nil {
				return err
			}

			reports[i] = r

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, r := range reports {
		p.logger.Info().
			Str("locale", r.Locale).
			Int("messages", r.Messages).
			Int("translated", r.Translated).
			Str("coverage", fmt.Sprintf("%.0f%%", r.Coverage()*100)).
			Bool("compiled", r.Compiled).
			Msg("Catalog")
	}

	return reports, nil
}

func (p *Pipeline) reportCatalog(locale string) (CatalogReport, error) {
	r := CatalogReport{Locale: locale}

	path := p.layout.CatalogPath(locale)

	data, err := os.ReadFile(path) // #nosec G304 -- catalog discovered under the locale directory
	if err != nil {
		return r, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	po := gotext.NewPo()
	po.Parse(data)

	r.Messages, r.Translated = countTranslations(po.GetDomain())

	compiledPath := p.layout.CompiledPath(locale)

	data, err = os.ReadFile(compiledPath) // #nosec G304 -- compiled catalog next to the text catalog
	if errors.Is(err, fs.ErrNotExist) {
		return r, nil
	}

	if err != nil {
		return r, fmt.Errorf("failed to read compiled catalog %s: %w", compiledPath, err)
	}

	if !isCompiledCatalog(data) {
		p.logger.Warn().Str("path", compiledPath).Msg("Compiled catalog is not a valid MO file")

		return r, nil
	}

	mo := gotext.NewMo()
	mo.Parse(data)

	r.Compiled = true
	r.CompiledMessages, _ = countTranslations(mo.GetDomain())

	return r, nil
}

// countTranslations counts the entries of d other than the header, and how
// many of them carry a translation. Entries with a context count once per
// context.
func countTranslations(d *gotext.Domain) (total, translated int) {
	tally := func(t *gotext.Translation) {
		total++

		for _, s := range t.Trs {
			if s != "" {
				translated++

				break
			}
		}
	}

	for id, t := range d.GetTranslations() {
		if id == "" {
			continue
		}

		tally(t)
	}

	for _, entries := range d.GetCtxTranslations() {
		for _, t := range entries {
			tally(t)
		}
	}

	return total, translated
}

// isCompiledCatalog checks the GNU MO magic number in either byte order.
func isCompiledCatalog(data []byte) bool {
	if len(data) < len(moMagicLE) {
		return false
	}

	magic := data[:len(moMagicLE)]

	return bytes.Equal(magic, moMagicLE) || bytes.Equal(magic, moMagicBE)
}
