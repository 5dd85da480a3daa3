package source

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/standardbeagle/alt/internal/config"
	"github.com/standardbeagle/alt/internal/debug"
	alterrors "github.com/standardbeagle/alt/internal/errors"
	"github.com/standardbeagle/alt/pkg/pathutil"
)

// Ignorer reports whether a root relative, slash separated path is ignored.
// *config.GitignoreParser implements it.
type Ignorer interface {
	ShouldIgnore(path string, isDir bool) bool
}

// Walker discovers candidate files below Root. Paths are reported relative to
// Root with forward slashes, in lexical walk order.
type Walker struct {
	Root     string
	Include  []string // doublestar globs; empty includes every file
	Exclude  []string // doublestar globs, checked for directories and files
	Ignore   Ignorer  // optional
	MaxDepth int      // 0 = unlimited; 1 = files directly in Root
}

// FromConfig builds a walker over the configured project root, loading the
// root .gitignore when the configuration asks for it.
func FromConfig(cfg *config.Config) (*Walker, error) {
	w := &Walker{
		Root:     cfg.Project.Root,
		Include:  cfg.Include,
		Exclude:  cfg.Exclude,
		MaxDepth: cfg.Walk.MaxDepth,
	}

	gp, err := cfg.Gitignore()
	if err != nil {
		return nil, alterrors.NewSourceError("load gitignore", cfg.Project.Root, err)
	}
	if gp != nil {
		w.Ignore = gp
	}
	return w, nil
}

// Walk returns the candidate files. Unreadable subdirectories are skipped;
// an unreadable root is an error.
func (w *Walker) Walk(ctx context.Context) ([]string, error) {
	root, err := filepath.Abs(w.Root)
	if err != nil {
		return nil, alterrors.NewSourceError("walk", w.Root, err)
	}

	var files []string
	skipped := 0
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if p == root {
				return alterrors.NewSourceError("walk", w.Root, walkErr)
			}
			debug.LogSource("skipping %s: %v", p, walkErr)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if p == root {
			return nil
		}

		rel := pathutil.ToCandidate(p, root)
		depth := strings.Count(rel, "/") + 1

		if d.IsDir() {
			if w.MaxDepth > 0 && depth >= w.MaxDepth {
				return filepath.SkipDir
			}
			// trailing slash variant for directory patterns
			if w.excluded(rel) || w.excluded(rel+"/") || w.ignored(rel, true) {
				skipped++
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() && d.Type()&fs.ModeSymlink == 0 {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			// WalkDir does not follow links; a link to a directory is no candidate
			if info, err := os.Stat(p); err != nil || info.IsDir() {
				return nil
			}
		}
		if w.excluded(rel) || w.ignored(rel, false) || !w.included(rel) {
			return nil
		}

		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	debug.LogSource("walked %s: %d candidates, %d directories pruned", root, len(files), skipped)
	return files, nil
}

func (w *Walker) excluded(rel string) bool {
	return matchAny(w.Exclude, rel)
}

// included reports whether rel passes the include filter.
func (w *Walker) included(rel string) bool {
	return len(w.Include) == 0 || matchAny(w.Include, rel)
}

func (w *Walker) ignored(rel string, isDir bool) bool {
	return w.Ignore != nil && w.Ignore.ShouldIgnore(rel, isDir)
}

// matchAny skips malformed patterns rather than failing the walk.
func matchAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, rel)
		if err != nil {
			continue
		}
		if matched {
			return true
		}
	}
	return false
}
