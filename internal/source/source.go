// Package source produces the ordered raw candidate strings a query is
// matched against: newline separated lists from a reader or file, or the
// files found by walking a project tree.
package source

import (
	"bufio"
	"io"
	"os"

	"github.com/standardbeagle/alt/internal/debug"
	alterrors "github.com/standardbeagle/alt/internal/errors"
)

// Stdin is the file name that selects standard input.
const Stdin = "-"

// maxLineSize bounds a single candidate line.
const maxLineSize = 1024 * 1024

// ReadLines splits r into lines without interpreting them. Blank lines are
// kept, so line numbers stay aligned with candidate indexes; the matcher
// drops them.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// ReadFile reads candidates from name, or from stdin when name is "-".
func ReadFile(name string, stdin io.Reader) ([]string, error) {
	if name == Stdin {
		lines, err := ReadLines(stdin)
		if err != nil {
			return nil, alterrors.NewSourceError("read", "stdin", err)
		}
		debug.LogSource("read %d candidate lines from stdin", len(lines))
		return lines, nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, alterrors.NewSourceError("open", name, err)
	}
	defer f.Close()

	lines, err := ReadLines(f)
	if err != nil {
		return nil, alterrors.NewSourceError("read", name, err)
	}
	debug.LogSource("read %d candidate lines from %s", len(lines), name)
	return lines, nil
}

// IsPiped reports whether f is a pipe or redirected file rather than a
// terminal.
func IsPiped(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice == 0
}
