// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"runtime/debug"
	"strings"
)

// BuildVersion is the latest tagged release of localepipe.
const BuildVersion string = "v0.3.0"

const revisionLength = 8

// BuildInfo is the VCS state embedded in the binary by the Go toolchain.
type BuildInfo struct {
	VcsRevision string
	VcsTime     string
	VcsModified bool
}

// Revision describes the VCS state the binary was built from, for example
// "2025-06-01-0123abcd+dirty".
func (b BuildInfo) Revision() string {
	if b.VcsRevision == "" {
		return "unknown"
	}

	rev := b.VcsRevision
	if len(rev) > revisionLength {
		rev = rev[:revisionLength]
	}

	s := strings.Split(b.VcsTime, "T")[0] + "-" + rev
	if b.VcsModified {
		s += "+dirty"
	}

	return s
}

// ReadBuildInfo returns the VCS information embedded in the running binary.
func ReadBuildInfo() BuildInfo {
	var b BuildInfo

	b.load()

	return b
}

func (b *BuildInfo) load() {
	if info, ok := debug.ReadBuildInfo(); ok {
		b.VcsRevision = getBuildSetting(info.Settings, "vcs.revision")
		b.VcsTime = getBuildSetting(info.Settings, "vcs.time")
		b.VcsModified = getBuildSetting(info.Settings, "vcs.modified") == "true"
	}
}

func getBuildSetting(settings []debug.BuildSetting, key string) string {
	for _, kv := range settings {
		if key == kv.Key {
			return kv.Value
		}
	}

	return ""
}
