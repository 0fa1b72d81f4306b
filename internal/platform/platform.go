// Package platform defines the closed set of packaging targets and the
// per-target capabilities the pipeline consults. Adding a target is a table
// edit, not a logic change.
package platform

import (
	"fmt"
	"runtime"
	"strings"
)

// Platform is one of the supported packaging targets. The zero value is
// Unknown so an unset configuration field never passes for a real target.
type Platform int

const (
	Unknown Platform = iota
	Win32
	Linux
	Darwin
)

// caps describes everything target-dependent in the pipeline.
type caps struct {
	name        string // canonical name, matches Node's process.platform
	exeSuffix   string
	iconCapable bool
	segmentHint string // Mach-O segment name for the injector, empty elsewhere
}

var capsTable = map[Platform]caps{
	Win32:  {name: "win32", exeSuffix: ".exe", iconCapable: true},
	Linux:  {name: "linux"},
	Darwin: {name: "darwin", segmentHint: "NODE_SEA"},
}

// Parse converts a user-supplied platform name into a Platform. Canonical
// names follow Node's process.platform values; a few conventional aliases
// are accepted.
func Parse(s string) (Platform, error) {
	switch strings.ToLower(s) {
	case "win32", "windows", "win":
		return Win32, nil
	case "linux":
		return Linux, nil
	case "darwin", "macos", "osx", "mac":
		return Darwin, nil
	default:
		return Unknown, fmt.Errorf("unsupported platform %q (expected win32, linux or darwin)", s)
	}
}

// Host returns the Platform this process runs on. Hosts outside the
// supported set fold into Linux, which shares its (empty) capability row.
func Host() Platform {
	switch runtime.GOOS {
	case "windows":
		return Win32
	case "darwin":
		return Darwin
	default:
		return Linux
	}
}

// String returns the canonical name.
func (p Platform) String() string {
	if c, ok := capsTable[p]; ok {
		return c.name
	}
	return "unknown"
}

// ExeSuffix returns the conventional executable filename suffix for the
// target, which is empty everywhere except win32.
func (p Platform) ExeSuffix() string {
	return capsTable[p].exeSuffix
}

// IconCapable reports whether the target's executable format carries icon
// resources the pipeline can rewrite.
func (p Platform) IconCapable() bool {
	return capsTable[p].iconCapable
}

// SegmentHint returns the named-segment hint the injector needs on targets
// with segmented binary images (Mach-O). It is empty for all other targets,
// in which case the injector must not be given the parameter at all.
func (p Platform) SegmentHint() string {
	return capsTable[p].segmentHint
}
