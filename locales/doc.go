// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package locales describes what a localization run operates on: the project
identity baked into template headers, the ordered set of target locales, and
the on-disk layout of the template and per-locale catalogs.

The layout follows the Babel convention:

	<root>/src/**.{cpp,h,m,mm}                  sources scanned by xgettext
	<root>/locale/<domain>.<ext>               translations template
	<root>/locale/<locale>/LC_MESSAGES/<domain>.po
	<root>/locale/<locale>/LC_MESSAGES/<domain>.mo

where <domain> is the lower-cased project name.

Values in this package are immutable once built and are passed explicitly
into package pipeline; nothing here is held as package state.
*/
package locales
