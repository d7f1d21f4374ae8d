// SPDX-License-Identifier: GPL-3.0-or-later
package app

import (
	"path/filepath"
	"strings"
	"time"
)

const (
	recipientsPrefix = "recipients"
	contactsPrefix   = "contacts"
)

// outputBase returns the explicit output base or a timestamped default.
func outputBase(output, prefix string, now time.Time) string {
	if len(output) > 0 {
		return output
	}
	return prefix + "_" + now.Format("20060102_150405")
}

// outputPath replaces an existing extension of base with ext, or appends ext.
func outputPath(base, ext string) string {
	if current := filepath.Ext(base); len(current) > 0 {
		return strings.TrimSuffix(base, current) + ext
	}
	return base + ext
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
