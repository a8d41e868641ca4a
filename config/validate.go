// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"codeberg.org/localepipe/localepipe/locales"
)

// validation errors.
var (
	errRootNotDirectory = errors.New("paths.root is not a directory")
	errEmptyExtension   = errors.New("extract.extensions contains an empty extension")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateAndSet validates the configuration and resolves derived fields.
func (cfg *Config) validateAndSet() error {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("invalid %s: failed %q check", verrs[0].Namespace(), verrs[0].Tag())
		}

		return err
	}

	// Resolve the root so tool working directories and template
	// references do not depend on where localepipe was started.
	root, err := filepath.Abs(cfg.Paths.Root)
	if err != nil {
		return fmt.Errorf("failed to resolve paths.root: %w", err)
	}

	if ok, err := isDirectory(root); err != nil || !ok {
		return fmt.Errorf("%w: %s", errRootNotDirectory, root)
	}

	cfg.Paths.Root = root
	cfg.Paths.SourceDir = resolveUnder(root, cfg.Paths.SourceDir)
	cfg.Paths.LocaleDir = resolveUnder(root, cfg.Paths.LocaleDir)

	if _, err := locales.NewSet(cfg.Locales...); err != nil {
		return fmt.Errorf("invalid locales: %w", err)
	}

	for i, ext := range cfg.Extract.Extensions {
		ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
		if ext == "" {
			return errEmptyExtension
		}

		cfg.Extract.Extensions[i] = ext
	}

	if cfg.Project.Year == 0 {
		cfg.Project.Year = time.Now().Year()

		log.Debug().
			Int("year", cfg.Project.Year).
			Msg("Using current year for template headers")
	}

	return nil
}

// resolveUnder joins a relative path onto root.
func resolveUnder(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}

	return filepath.Join(root, path)
}

func isDirectory(path string) (bool, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return false, err
	}

	return fi.IsDir(), nil
}
