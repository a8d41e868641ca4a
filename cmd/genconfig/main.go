// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

// genconfig writes the example configuration files under deploy/ from the
// defaults in package config.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"

	"codeberg.org/localepipe/localepipe/audit"
	"codeberg.org/localepipe/localepipe/config"
)

const (
	envOutputFile  = "deploy/.env.example"
	yamlOutputFile = "deploy/localepipe.yaml.example"
	filePerm       = 0o644
	dirPerm        = 0o755

	envFileHeader = `# localepipe configuration (via environment variables)
#
# Copy this file to .env and customize the values below.
#
# This file was auto-generated using go run ./cmd/genconfig.

`
	yamlFileHeader = `# localepipe configuration (via configuration file)
#
# Copy this file to localepipe.yaml and customize the values below.
#
# This file was auto-generated using go run ./cmd/genconfig.
`
	toolEnvComment = `
## Environment passed to xgettext and pybabel
## Only settable in the YAML file (tools.env).`

	projectYAMLComment = `  # -- Used for the template title, the copyright holder and the catalog domain`
)

func main() {
	audit.SetDefaultLogger()

	if err := os.MkdirAll(filepath.Dir(envOutputFile), dirPerm); err != nil {
		log.Fatal().Err(err).Msg("Failed to create deploy directory")
	}

	generateEnvFile()
	generateYAMLFile()
}

// envLine renders one commented-out variable. Slices are joined the way
// the environment reader splits them.
func envLine(name string, value reflect.Value) string {
	switch {
	case value.Kind() == reflect.Slice && value.Type().Elem().Kind() == reflect.String:
		parts := make([]string, value.Len())
		for i := range parts {
			parts[i] = value.Index(i).String()
		}

		return fmt.Sprintf("# %s=%s\n", name, strings.Join(parts, ","))
	case value.Kind() == reflect.String && value.Len() == 0:
		return fmt.Sprintf("# %s=\n", name)
	case value.Kind() == reflect.Int && value.Int() == 0:
		return fmt.Sprintf("# %s=\n", name)
	default:
		return fmt.Sprintf("# %s=%v\n", name, value.Interface())
	}
}

// writeEnvFields appends every env-tagged field of val.
func writeEnvFields(sb *strings.Builder, val reflect.Value) {
	typ := val.Type()

	for j := range typ.NumField() {
		tag, ok := typ.Field(j).Tag.Lookup("env")
		if !ok {
			continue
		}

		sb.WriteString(envLine(strings.Split(tag, ",")[0], val.Field(j)))
	}
}

// generateEnvFile generates the deploy/.env.example file.
func generateEnvFile() {
	cfg := &config.Config{}
	cfg.SetDefaults()

	var sb strings.Builder
	sb.WriteString(envFileHeader)

	val := reflect.ValueOf(*cfg)
	typ := val.Type()

	for i := range typ.NumField() {
		structField := typ.Field(i)
		structValue := val.Field(i)

		if structField.Name == "Build" {
			continue
		}

		fmt.Fprintf(&sb, "## %s\n", structField.Name)

		if structValue.Kind() == reflect.Struct {
			writeEnvFields(&sb, structValue)
		} else if tag, ok := structField.Tag.Lookup("env"); ok {
			sb.WriteString(envLine(strings.Split(tag, ",")[0], structValue))
		}

		sb.WriteString("\n")
	}

	sb.WriteString(strings.TrimSpace(toolEnvComment) + "\n\n")

	if err := os.WriteFile(envOutputFile, []byte(sb.String()), filePerm); err != nil {
		log.Fatal().Err(err).Str("path", envOutputFile).Msg("Failed to write .env.example file")
	}

	log.Info().Str("path", envOutputFile).Msg("Successfully generated .env.example")
}

// generateYAMLFile generates the deploy/localepipe.yaml.example file.
func generateYAMLFile() {
	cfg := &config.Config{}
	cfg.SetDefaults()

	cfg.Tools.Env = map[string]string{"PYTHONUTF8": "1"}

	var yamlContent strings.Builder
	if err := yaml.NewEncoder(&yamlContent, yaml.Indent(2), yaml.IndentSequence(true)).Encode(cfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to marshal config to YAML")
	}

	var sb strings.Builder
	sb.WriteString(yamlFileHeader)

	for line := range strings.SplitSeq(yamlContent.String(), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		// Top-level keys (e.g., "project:") are section headers.
		if !strings.HasPrefix(line, " ") {
			if strings.HasSuffix(trimmed, ":") {
				fmt.Fprintf(&sb, "\n%s\n", line)
			} else {
				fmt.Fprintf(&sb, "\n# %s\n", trimmed)
			}

			continue
		}

		// The project identity is the one thing every user must set.
		if strings.HasPrefix(trimmed, "name:") {
			sb.WriteString(projectYAMLComment + "\n")
			sb.WriteString(line + "\n")

			continue
		}

		indentSize := len(line) - len(strings.TrimLeft(line, " "))
		fmt.Fprintf(&sb, "%s# %s\n", strings.Repeat(" ", indentSize), trimmed)
	}

	if err := os.WriteFile(yamlOutputFile, []byte(sb.String()), filePerm); err != nil {
		log.Fatal().Err(err).Str("path", yamlOutputFile).Msg("Failed to write config file")
	}

	log.Info().Str("path", yamlOutputFile).Msg("Successfully generated localepipe.yaml.example")
}
