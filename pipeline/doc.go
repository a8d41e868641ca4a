// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package pipeline orchestrates the four localization stages over a source tree:

  - Extract runs xgettext over the recognised sources and normalises the
    header of the resulting translations template.
  - Init seeds a catalog for every target locale that has no catalog
    directory yet.
  - Update merges the template into every existing catalog.
  - Compile turns every text catalog into its runtime form.

A fifth, read-only stage, Report, summarises catalog coverage.

[Pipeline.Run] executes any subset of the stages, always in that order and
one at a time. The first failing stage stops the run; artifacts written by
earlier stages stay on disk, and every stage may simply be run again.

All external programs are started through a [process.Runner], so each stage
can be exercised in tests without the gettext or Babel tools installed.
*/
package pipeline
