// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// ErrMissingArtifact is returned when a stage needs a file an earlier stage
// should have produced.
var ErrMissingArtifact = errors.New("missing artifact")

// catalogLocales lists the locales under the locale directory that hold a
// text catalog for the domain, in directory order. These are exactly the
// catalogs Babel's update and compile commands visit.
func (p *Pipeline) catalogLocales() ([]string, error) {
	entries, err := os.ReadDir(p.layout.LocaleDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to list catalogs in %s: %w", p.layout.LocaleDir, err)
	}

	var out []string

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}

		if fileExists(p.layout.CatalogPath(e.Name())) {
			out = append(out, e.Name())
		}
	}

	return out, nil
}

// requireTemplate fails with ErrMissingArtifact when the template is absent.
func (p *Pipeline) requireTemplate() error {
	path := p.layout.TemplatePath()
	if !fileExists(path) {
		return fmt.Errorf("%w: translations template %s not found, run extraction first", ErrMissingArtifact, path)
	}

	return nil
}
