// Package path normalizes candidate and query paths and classifies them as
// test or implementation files.
package path

import (
	"os"
	"strings"
	"unicode"
)

// Path is an immutable, normalized and classified path string.
type Path struct {
	raw        string
	normalized string
	isTest     bool
}

// New normalizes raw and classifies it with the default rules.
func New(raw string) Path {
	return defaultClassifier.New(raw)
}

// Raw returns the path exactly as supplied.
func (p Path) Raw() string { return p.raw }

// String returns the normalized path.
func (p Path) String() string { return p.normalized }

// IsTest reports whether the path was classified as a test file.
func (p Path) IsTest() bool { return p.isTest }

// IsEmpty reports whether nothing is left after normalization.
func (p Path) IsEmpty() bool { return p.normalized == "" }

// IsDirectory probes the file system relative to the working directory.
func (p Path) IsDirectory() bool { return IsDirectory(p.normalized) }

// Normalize strips one leading "./" and any trailing whitespace or newlines.
// Internal "//" and ".." segments are left alone.
func Normalize(raw string) string {
	return strings.TrimRightFunc(strings.TrimPrefix(raw, "./"), unicode.IsSpace)
}

// IsTestFile classifies an already normalized path with the default rules.
func IsTestFile(normalized string) bool {
	return defaultClassifier.IsTestFile(normalized)
}

// IsDirectory reports whether p names an existing directory. Missing paths and
// stat failures such as permission denial report false.
func IsDirectory(p string) bool {
	info, err := os.Stat(p)
	if err != nil {
		return false
	}
	return info.IsDir()
}
