// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/localepipe/localepipe/locales"
)

func TestDiscoverSources(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	for _, rel := range []string{
		"main.cpp",
		"b/z.mm",
		"b/a.h",
		"a/view.m",
		"a/readme.md",
		"a/h",
		"noext",
		"c/deep/x.cpp",
		"c/deep/x.hpp",
	} {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0o644))
	}

	got, err := discoverSources(dir, locales.SourceExtensions)
	require.NoError(t, err)

	want := []string{
		filepath.Join(dir, "a", "view.m"),
		filepath.Join(dir, "b", "a.h"),
		filepath.Join(dir, "b", "z.mm"),
		filepath.Join(dir, "c", "deep", "x.cpp"),
		filepath.Join(dir, "main.cpp"),
	}
	assert.Equal(t, want, got)

	again, err := discoverSources(dir, locales.SourceExtensions)
	require.NoError(t, err)
	assert.Equal(t, got, again, "walk order must be stable")
}

func TestDiscoverSourcesMissingDir(t *testing.T) {
	t.Parallel()

	got, err := discoverSources(filepath.Join(t.TempDir(), "absent"), locales.SourceExtensions)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDiscoverSourcesAcceptsDottedExtensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.cc"), nil, 0o644))

	got, err := discoverSources(dir, []string{".cc"})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.cc")}, got)
}
