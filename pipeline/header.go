// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"codeberg.org/localepipe/localepipe/locales"
)

const (
	placeholderTitle   = "# SOME DESCRIPTIVE TITLE."
	placeholderYear    = "YEAR"
	placeholderPackage = "PACKAGE"
	languageField      = `"Language:`
)

// RewriteTemplateHeader fills in the placeholders xgettext leaves in the
// header of a fresh template and returns the result.
//
// Only the header entry, up to the first blank line, is touched:
//
//   - the generic title comment becomes "# Translations template for <name>."
//   - YEAR and PACKAGE in comment lines become the year and project name
//   - the "Language:" field is removed, since it belongs to catalogs
//
// Everything else, including line endings, is copied unchanged.
func RewriteTemplateHeader(src []byte, id locales.Identity) []byte {
	var out bytes.Buffer

	out.Grow(len(src))

	year := strconv.Itoa(id.Year)
	inHeader := true

	for _, line := range bytes.SplitAfter(src, []byte("\n")) {
		if len(line) == 0 {
			continue
		}

		if !inHeader {
			out.Write(line)

			continue
		}

		content := strings.TrimRight(string(line), "\r\n")
		eol := string(line[len(content):])

		switch {
		case content == "":
			inHeader = false

			out.Write(line)
		case strings.HasPrefix(content, languageField):
			// dropped
		case content == placeholderTitle:
			out.WriteString("# Translations template for " + id.Name + "." + eol)
		case strings.HasPrefix(content, "#"):
			content = strings.ReplaceAll(content, placeholderYear, year)
			content = strings.ReplaceAll(content, placeholderPackage, id.Name)

			out.WriteString(content + eol)
		default:
			out.Write(line)
		}
	}

	return out.Bytes()
}

// rewriteTemplateFile applies RewriteTemplateHeader to the file at path in place.
// It reports false without error when the file does not exist.
func rewriteTemplateFile(path string, id locales.Identity) (bool, error) {
	src, err := os.ReadFile(path) // #nosec G304 -- path is the configured template
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("failed to read template %s: %w", path, err)
	}

	fi, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("failed to stat template %s: %w", path, err)
	}

	if err := os.WriteFile(path, RewriteTemplateHeader(src, id), fi.Mode().Perm()); err != nil {
		return false, fmt.Errorf("failed to write template %s: %w", path, err)
	}

	return true, nil
}
