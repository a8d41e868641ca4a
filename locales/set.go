// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package locales

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

var (
	ErrEmptyLocale     = errors.New("empty locale identifier")
	ErrDuplicateLocale = errors.New("duplicate locale identifier")
	ErrInvalidLocale   = errors.New("invalid locale identifier")
)

// DefaultLocales are the target locales used when no configuration overrides them.
var DefaultLocales = []string{
	"de",    // German
	"en",    // English
	"en_GB", // English (United Kingdom)
	"en_US", // English (United States)
	"es",    // Spanish
	"fr",    // French
	"it",    // Italian
	"ja",    // Japanese
	"pt",    // Portuguese
	"ru",    // Russian
	"sv",    // Swedish
	"zh",    // Chinese
}

// Set is an ordered, duplicate-free list of locale identifiers.
//
// Identifiers keep the spelling they were given (for example "en_GB"), since
// that spelling names the catalog directory on disk.
type Set struct {
	ids []string
}

// NewSet validates ids and returns them as a Set.
//
// Every identifier must parse as a BCP 47 tag once underscores are read as
// hyphens. Two identifiers that differ only in separator or case are duplicates.
func NewSet(ids ...string) (Set, error) {
	seen := make(map[string]string, len(ids))
	out := make([]string, 0, len(ids))

	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			return Set{}, ErrEmptyLocale
		}

		tag, err := Tag(id)
		if err != nil {
			return Set{}, err
		}

		canonical := tag.String()
		if prev, ok := seen[canonical]; ok {
			return Set{}, fmt.Errorf("%w: %q and %q", ErrDuplicateLocale, prev, id)
		}

		seen[canonical] = id
		out = append(out, id)
	}

	return Set{ids: out}, nil
}

// MustNewSet is like NewSet but panics on error.
func MustNewSet(ids ...string) Set {
	s, err := NewSet(ids...)
	if err != nil {
		panic(err)
	}

	return s
}

// IDs returns a copy of the identifiers in their configured order.
func (s Set) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)

	return out
}

// Len reports the number of locales in the set.
func (s Set) Len() int {
	return len(s.ids)
}

// Contains reports whether id is a member of the set, comparing spellings exactly.
func (s Set) Contains(id string) bool {
	for _, v := range s.ids {
		if v == id {
			return true
		}
	}

	return false
}

// Tag parses a locale identifier such as "pt_BR" into a language tag.
func Tag(id string) (language.Tag, error) {
	t, err := language.Parse(strings.ReplaceAll(id, "_", "-"))
	if err != nil {
		return language.Und, fmt.Errorf("%w %q: %w", ErrInvalidLocale, id, err)
	}

	return t, nil
}
