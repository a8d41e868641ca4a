// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package locales

import (
	"path/filepath"
	"strings"
)

const (
	// DefaultTemplateExt is the extension of the translations template.
	DefaultTemplateExt = "po"

	messagesDir = "LC_MESSAGES"
)

// SourceExtensions are the file extensions scanned for translatable strings.
var SourceExtensions = []string{"cpp", "h", "m", "mm"}

// Layout locates the inputs and outputs of a run on disk.
type Layout struct {
	Root        string
	SourceDir   string
	LocaleDir   string
	TemplateExt string
	Domain      string
}

// NewLayout returns a Layout rooted at root using the default src/ and locale/ directories.
func NewLayout(root string, id Identity) Layout {
	return Layout{
		Root:        root,
		SourceDir:   filepath.Join(root, "src"),
		LocaleDir:   filepath.Join(root, "locale"),
		TemplateExt: DefaultTemplateExt,
		Domain:      id.DomainKey(),
	}
}

// TemplatePath is the path of the translations template.
func (l Layout) TemplatePath() string {
	return filepath.Join(l.LocaleDir, l.Domain+"."+l.TemplateExt)
}

// CatalogDir is the directory that holds the catalogs of locale.
//
// Its existence alone decides whether locale still needs initialising.
func (l Layout) CatalogDir(locale string) string {
	return filepath.Join(l.LocaleDir, locale)
}

// CatalogPath is the text catalog of locale.
func (l Layout) CatalogPath(locale string) string {
	return filepath.Join(l.CatalogDir(locale), messagesDir, l.Domain+".po")
}

// CompiledPath is the compiled catalog of locale.
func (l Layout) CompiledPath(locale string) string {
	return filepath.Join(l.CatalogDir(locale), messagesDir, l.Domain+".mo")
}

// Rel returns path relative to the layout root using forward slashes.
// Paths outside the root are returned unchanged.
func (l Layout) Rel(path string) string {
	rel, err := filepath.Rel(l.Root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}

	return filepath.ToSlash(rel)
}
