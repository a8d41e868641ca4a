// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package pipeline

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/leonelquinteros/gotext"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/localepipe/localepipe/locales"
	"codeberg.org/localepipe/localepipe/process"
)

func subcommands(cmds []process.Command) []string {
	out := make([]string, 0, len(cmds))

	for _, c := range cmds {
		if c.Args[0] == "pybabel" {
			out = append(out, c.Args[1])
		} else {
			out = append(out, c.Args[0])
		}
	}

	return out
}

func TestRunOrdersStages(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{t: t}
	p := newTestPipeline(t, runner, "fr")
	writeSource(t, p, "main.cpp", `translate("Hello")`)

	err := p.Run(context.Background(), StageCompile, StageUpdate, StageExtract, StageInit, StageInit)
	require.NoError(t, err)

	assert.Equal(t, []string{"xgettext", "init", "update", "compile"}, subcommands(runner.commands))
	assert.Equal(t, StateDone, p.State())
}

func TestRunStopsAtFailedStage(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{t: t, failOn: "update", failCode: 2}
	p := newTestPipeline(t, runner, "fr")
	writeSource(t, p, "main.cpp", `translate("Hello")`)

	err := p.Run(context.Background(), StageExtract, StageInit, StageUpdate, StageCompile)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "update stage: "), err.Error())

	var failure *process.ProcessFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, 2, failure.ExitCode)

	assert.Equal(t, StateFailed, p.State())
	assert.Equal(t, []string{"xgettext", "init", "update"}, subcommands(runner.commands))

	// Earlier artifacts stay on disk.
	assert.FileExists(t, p.layout.TemplatePath())
	assert.FileExists(t, p.layout.CatalogPath("fr"))
	assert.NoFileExists(t, p.layout.CompiledPath("fr"))
}

func TestRunWithoutStages(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(t, &fakeRunner{t: t})

	require.ErrorIs(t, p.Run(context.Background()), ErrNoStages)
	assert.Equal(t, StateIdle, p.State())
}

func TestRunRejectsUnknownStage(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(t, &fakeRunner{t: t})

	require.ErrorIs(t, p.Run(context.Background(), Stage(42)), ErrUnknownStage)
}

func TestParseStage(t *testing.T) {
	t.Parallel()

	for _, s := range []Stage{StageExtract, StageInit, StageUpdate, StageCompile, StageReport} {
		got, err := ParseStage(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := ParseStage("translate")
	require.ErrorIs(t, err, ErrUnknownStage)
}

func TestNewRequiresRunner(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Logger: zerolog.Nop()})
	require.ErrorIs(t, err, ErrNoRunner)
}

func TestNewFillsDefaults(t *testing.T) {
	t.Parallel()

	id := locales.Identity{Name: "Sunshine", Owner: "LizardByte", Year: 2026}

	p, err := New(Options{
		Identity: id,
		Layout:   locales.Layout{Root: t.TempDir()},
		Runner:   &fakeRunner{t: t},
	})
	require.NoError(t, err)

	assert.Equal(t, DefaultTools().Babel, p.tools.Babel)
	assert.Equal(t, "sunshine", p.Layout().Domain)
	assert.Equal(t, locales.DefaultTemplateExt, p.Layout().TemplateExt)
	assert.Equal(t, locales.SourceExtensions, p.extensions)
}

// TestEndToEnd follows one message from source to compiled catalog.
func TestEndToEnd(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{t: t}
	p := newTestPipeline(t, runner, "fr")
	writeSource(t, p, "main.cpp", "void f() { translate(\"Hello\"); }\n")

	ctx := context.Background()

	require.NoError(t, p.Run(ctx, StageExtract))

	template, err := os.ReadFile(p.layout.TemplatePath())
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(template), "\nmsgid \"Hello\""))
	assert.Contains(t, string(template), "# Translations template for Sunshine.")
	assert.Contains(t, string(template), "2026")
	assert.NotContains(t, string(template), "SOME DESCRIPTIVE TITLE")

	require.NoError(t, p.Run(ctx, StageInit))
	assert.DirExists(t, p.layout.CatalogDir("fr"))

	require.NoError(t, p.Run(ctx, StageUpdate))

	reports, err := p.Report(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, 1, reports[0].Messages)
	assert.Equal(t, 0, reports[0].Translated)

	require.NoError(t, p.Run(ctx, StageCompile, StageReport))

	reports, err = p.Report(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.True(t, reports[0].Compiled)
	assert.Equal(t, 1, reports[0].CompiledMessages)
	assert.Equal(t, StateDone, p.State())

	compiled, err := os.ReadFile(p.layout.CompiledPath("fr"))
	require.NoError(t, err)

	mo := gotext.NewMo()
	mo.Parse(compiled)

	hello, ok := mo.GetDomain().GetTranslations()["Hello"]
	require.True(t, ok, "compiled catalog holds the extracted message")
	require.NotEmpty(t, hello.Trs)
	assert.Empty(t, hello.Trs[0])
	assert.False(t, hello.IsTranslated())
}
