// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package locales

import (
	"strings"
	"time"
)

// Identity is the project metadata written into template headers.
type Identity struct {
	Name  string
	Owner string
	Year  int
}

// NewIdentity returns an Identity whose Year is taken from now.
func NewIdentity(name, owner string, now time.Time) Identity {
	return Identity{Name: name, Owner: owner, Year: now.Year()}
}

// DomainKey is the lower-cased project name used to name the template and catalogs.
func (id Identity) DomainKey() string {
	return strings.ToLower(id.Name)
}

// BugsAddress is the value passed to xgettext as --msgid-bugs-address.
func (id Identity) BugsAddress() string {
	return "github.com/" + strings.ToLower(id.Owner) + "/" + strings.ToLower(id.Name)
}
