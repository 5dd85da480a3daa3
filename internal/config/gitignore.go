package config

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// GitignoreParser matches relative, slash separated paths against the
// patterns of a .gitignore file. Later patterns override earlier ones, so a
// negated pattern can re-include a path.
type GitignoreParser struct {
	patterns []GitignorePattern
}

type GitignorePattern struct {
	Pattern   string
	Negate    bool
	Directory bool // trailing slash: only directories and their contents
	Anchored  bool // leading or inner slash: matched from the root

	self     string // doublestar glob for the path itself
	contents string // doublestar glob for everything below it
}

// NewGitignoreParser creates a new gitignore parser
func NewGitignoreParser() *GitignoreParser {
	return &GitignoreParser{}
}

// LoadGitignore loads patterns from <rootPath>/.gitignore. A missing file
// loads nothing.
func (gp *GitignoreParser) LoadGitignore(rootPath string) error {
	file, err := os.Open(filepath.Join(rootPath, ".gitignore"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	defer file.Close()

	return gp.Parse(file)
}

// Parse reads one pattern per line, skipping blanks and comments.
func (gp *GitignoreParser) Parse(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		gp.AddPattern(line)
	}
	return scanner.Err()
}

// AddPattern adds a single pattern line.
func (gp *GitignoreParser) AddPattern(line string) {
	p := GitignorePattern{}

	if strings.HasPrefix(line, "!") {
		p.Negate = true
		line = line[1:]
	}
	if strings.HasSuffix(line, "/") {
		p.Directory = true
		line = strings.TrimSuffix(line, "/")
	}
	if strings.HasPrefix(line, "/") {
		p.Anchored = true
		line = line[1:]
	} else if strings.Contains(line, "/") {
		p.Anchored = true
	}
	if line == "" {
		return
	}
	p.Pattern = line

	if p.Anchored {
		p.self = line
	} else {
		p.self = "**/" + line
	}
	p.contents = p.self + "/**"

	gp.patterns = append(gp.patterns, p)
}

// Patterns returns the parsed patterns in file order.
func (gp *GitignoreParser) Patterns() []GitignorePattern {
	return gp.patterns
}

// ShouldIgnore reports whether path (relative to the .gitignore directory)
// is ignored.
func (gp *GitignoreParser) ShouldIgnore(path string, isDir bool) bool {
	path = filepath.ToSlash(path)

	ignored := false
	for _, p := range gp.patterns {
		if p.matches(path, isDir) {
			ignored = !p.Negate
		}
	}
	return ignored
}

func (p GitignorePattern) matches(path string, isDir bool) bool {
	if (!p.Directory || isDir) && globMatch(p.self, path) {
		return true
	}
	return globMatch(p.contents, path)
}

// globMatch treats malformed patterns as non-matching.
func globMatch(pattern, path string) bool {
	ok, err := doublestar.Match(pattern, path)
	return err == nil && ok
}
