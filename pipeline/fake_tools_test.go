// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package pipeline

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"codeberg.org/localepipe/localepipe/locales"
	"codeberg.org/localepipe/localepipe/process"
)

var translateCall = regexp.MustCompile(`translate\("([^"]*)"\)`)

// fakeRunner records every command and imitates xgettext and pybabel on disk.
type fakeRunner struct {
	t        *testing.T
	commands []process.Command
	// failOn makes the named subcommand ("xgettext", "init", "update",
	// "compile") exit with failCode.
	failOn   string
	failCode int
	// silentExtract makes xgettext write nothing, as it does when no
	// messages are found.
	silentExtract bool
}

func (f *fakeRunner) Run(_ context.Context, cmd process.Command) error {
	f.t.Helper()

	f.commands = append(f.commands, cmd)

	name := filepath.Base(cmd.Args[0])
	if name == "pybabel" {
		name = cmd.Args[1]
	}

	if f.failOn == name {
		return &process.ProcessFailure{Args: cmd.Args, ExitCode: f.failCode}
	}

	switch name {
	case "xgettext":
		f.xgettext(cmd)
	case "init":
		f.babelInit(cmd)
	case "update":
		// Catalogs already hold every message in these tests.
	case "compile":
		f.babelCompile(cmd)
	default:
		f.t.Fatalf("unexpected command %v", cmd.Args)
	}

	return nil
}

func flagValue(args []string, prefix string) string {
	for _, a := range args {
		if v, ok := strings.CutPrefix(a, prefix); ok {
			return v
		}
	}

	return ""
}

func argAfter(args []string, name string) string {
	for i, a := range args {
		if a == name && i+1 < len(args) {
			return args[i+1]
		}
	}

	return ""
}

const fakeTemplateHeader = `# SOME DESCRIPTIVE TITLE.
# Copyright (C) YEAR %s
# This file is distributed under the same license as the PACKAGE package.
# FIRST AUTHOR <EMAIL@ADDRESS>, YEAR.
#
#, fuzzy
msgid ""
msgstr ""
"Project-Id-Version: %s v0\n"
"Report-Msgid-Bugs-To: %s\n"
"POT-Creation-Date: 2026-01-01 00:00+0000\n"
"PO-Revision-Date: YEAR-MO-DA HO:MI+ZONE\n"
"Last-Translator: FULL NAME <EMAIL@ADDRESS>\n"
"Language-Team: LANGUAGE <LL@li.org>\n"
"Language: \n"
"MIME-Version: 1.0\n"
"Content-Type: text/plain; charset=UTF-8\n"
"Content-Transfer-Encoding: 8bit\n"
`

func (f *fakeRunner) xgettext(cmd process.Command) {
	f.t.Helper()

	if f.silentExtract {
		return
	}

	type entry struct{ ref, msg string }

	var entries []entry

	for _, a := range cmd.Args[1:] {
		if strings.HasPrefix(a, "-") {
			continue
		}

		src, err := os.ReadFile(filepath.Join(cmd.Dir, filepath.FromSlash(a)))
		require.NoError(f.t, err)

		for i, line := range strings.Split(string(src), "\n") {
			for _, m := range translateCall.FindAllStringSubmatch(line, -1) {
				entries = append(entries, entry{ref: fmt.Sprintf("%s:%d", a, i+1), msg: m[1]})
			}
		}
	}

	if len(entries) == 0 {
		return
	}

	var b strings.Builder

	fmt.Fprintf(&b, fakeTemplateHeader,
		flagValue(cmd.Args, "--copyright-holder="),
		flagValue(cmd.Args, "--package-name="),
		flagValue(cmd.Args, "--msgid-bugs-address="))

	seen := map[string]bool{}

	for _, e := range entries {
		if seen[e.msg] {
			continue
		}

		seen[e.msg] = true

		fmt.Fprintf(&b, "\n#: %s\nmsgid %q\nmsgstr \"\"\n", e.ref, e.msg)
	}

	out := flagValue(cmd.Args, "--output=")
	require.NoError(f.t, os.WriteFile(out, []byte(b.String()), 0o644))
}

func (f *fakeRunner) babelInit(cmd process.Command) {
	f.t.Helper()

	template, err := os.ReadFile(argAfter(cmd.Args, "-i"))
	require.NoError(f.t, err)

	locale := argAfter(cmd.Args, "-l")
	dir := filepath.Join(argAfter(cmd.Args, "-d"), locale, "LC_MESSAGES")
	require.NoError(f.t, os.MkdirAll(dir, 0o755))

	catalog := strings.Replace(string(template), `"MIME-Version`, `"Language: `+locale+`\n"`+"\n"+`"MIME-Version`, 1)
	catalog = strings.Replace(catalog, "#, fuzzy\n", "", 1)

	path := filepath.Join(dir, argAfter(cmd.Args, "-D")+".po")
	require.NoError(f.t, os.WriteFile(path, []byte(catalog), 0o644))
}

var poEntry = regexp.MustCompile(`(?m)^msgid "(.*)"\nmsgstr "(.*)"$`)

func (f *fakeRunner) babelCompile(cmd process.Command) {
	f.t.Helper()

	localeDir := argAfter(cmd.Args, "-d")
	domain := argAfter(cmd.Args, "-D")

	entries, err := os.ReadDir(localeDir)
	require.NoError(f.t, err)

	for _, e := range entries {
		po := filepath.Join(localeDir, e.Name(), "LC_MESSAGES", domain+".po")

		src, err := os.ReadFile(po)
		if err != nil {
			continue
		}

		messages := map[string]string{"": "Content-Type: text/plain; charset=UTF-8\n"}
		for _, m := range poEntry.FindAllStringSubmatch(string(src), -1) {
			if m[1] != "" {
				messages[m[1]] = m[2]
			}
		}

		mo := strings.TrimSuffix(po, ".po") + ".mo"
		require.NoError(f.t, os.WriteFile(mo, encodeMO(messages), 0o644))
	}
}

// encodeMO writes a little-endian GNU MO file without a hash table.
func encodeMO(messages map[string]string) []byte {
	ids := make([]string, 0, len(messages))
	for id := range messages {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	const headerSize = 28

	n := uint32(len(ids))
	origTable := uint32(headerSize)
	transTable := origTable + 8*n
	dataStart := transTable + 8*n

	var header, tables, data bytes.Buffer

	le := binary.LittleEndian
	for _, v := range []uint32{0x950412de, 0, n, origTable, transTable, 0, dataStart} {
		_ = binary.Write(&header, le, v)
	}

	orig := make([]uint32, 0, 2*n)
	trans := make([]uint32, 0, 2*n)

	for _, id := range ids {
		orig = append(orig, uint32(len(id)), dataStart+uint32(data.Len()))
		data.WriteString(id)
		data.WriteByte(0)
	}

	for _, id := range ids {
		s := messages[id]
		trans = append(trans, uint32(len(s)), dataStart+uint32(data.Len()))
		data.WriteString(s)
		data.WriteByte(0)
	}

	for _, v := range append(orig, trans...) {
		_ = binary.Write(&tables, le, v)
	}

	return append(append(header.Bytes(), tables.Bytes()...), data.Bytes()...)
}

// newTestPipeline lays out an empty project under a temp dir.
func newTestPipeline(t *testing.T, runner process.Runner, ids ...string) *Pipeline {
	t.Helper()

	if len(ids) == 0 {
		ids = []string{"fr"}
	}

	id := locales.Identity{Name: "Sunshine", Owner: "LizardByte", Year: 2026}

	p, err := New(Options{
		Identity: id,
		Locales:  locales.MustNewSet(ids...),
		Layout:   locales.NewLayout(t.TempDir(), id),
		Runner:   runner,
		Logger:   zerolog.Nop(),
	})
	require.NoError(t, err)

	return p
}

// writeSource creates a file below the source directory.
func writeSource(t *testing.T, p *Pipeline, rel, content string) {
	t.Helper()

	path := filepath.Join(p.layout.SourceDir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
