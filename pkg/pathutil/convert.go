// Package pathutil converts between file system paths and the slash
// separated, root relative form candidates are matched in.
//
// Candidates discovered by walking a tree and a query path handed over by an
// editor (often absolute) must share one representation before they are
// compared, otherwise the common substring of every pair is dominated by the
// shared root prefix.
package pathutil

import (
	"path/filepath"
	"strings"
)

// ToRelative converts an absolute path to relative based on a root directory.
// Falls back to the original path if conversion fails or path is already relative.
//
// Examples:
//   - ToRelative("/home/user/project/src/main.go", "/home/user/project") → "src/main.go"
//   - ToRelative("/other/location/file.go", "/home/user/project") → "/other/location/file.go" (outside root)
//   - ToRelative("src/main.go", "/home/user/project") → "src/main.go" (already relative)
func ToRelative(absPath, rootDir string) string {
	if absPath == "" || rootDir == "" {
		return absPath
	}

	if !filepath.IsAbs(absPath) {
		return absPath
	}

	absPath = filepath.Clean(absPath)
	rootDir = filepath.Clean(rootDir)

	relPath, err := filepath.Rel(rootDir, absPath)
	if err != nil {
		// e.g. different drives on Windows
		return absPath
	}

	// outside the root: the absolute path is clearer
	if relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
		return absPath
	}

	return relPath
}

// ToCandidate converts p into the candidate form: relative to rootDir when
// it lies inside it, with forward slashes.
func ToCandidate(p, rootDir string) string {
	return filepath.ToSlash(ToRelative(p, rootDir))
}

// QueryPath resolves an editor supplied query path against rootDir. Relative
// queries are taken relative to the working directory, so they are first
// made absolute and then re-expressed relative to rootDir. Resolution
// failures return the query unchanged.
func QueryPath(query, rootDir string) string {
	if query == "" || rootDir == "" {
		return query
	}

	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return query
	}
	absQuery := query
	if !filepath.IsAbs(query) {
		if absQuery, err = filepath.Abs(query); err != nil {
			return query
		}
	}

	rel := ToRelative(absQuery, absRoot)
	if filepath.IsAbs(rel) {
		// outside the root; keep what the caller typed
		return filepath.ToSlash(query)
	}
	return filepath.ToSlash(rel)
}
