package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Build flag for debug mode - can be overridden at build time
// go build -ldflags "-X github.com/standardbeagle/alt/internal/debug.EnableDebug=true"
var EnableDebug = "false"

// forced is set by the --debug flag
var forced = false

// debugOutput is the writer for debug output (nil means stderr)
var debugOutput io.Writer

// debugFile holds the open file handle if debug output goes to a file
var debugFile *os.File

// debugMutex protects access to debug output
var debugMutex sync.Mutex

// Enable turns debug output on regardless of build flag and environment.
// Output goes to stderr unless SetDebugOutput or InitDebugLogFile chose a writer.
// Stdout is never used: it carries the match result.
func Enable(enabled bool) {
	debugMutex.Lock()
	defer debugMutex.Unlock()
	forced = enabled
}

// SetDebugOutput sets a custom writer for debug output.
// Pass nil to restore the stderr default, or io.Discard to drop output.
func SetDebugOutput(w io.Writer) {
	debugMutex.Lock()
	defer debugMutex.Unlock()
	debugOutput = w
}

// InitDebugLogFile initializes debug logging to a file.
// Returns the path to the log file, or an error if initialization fails.
// Call CloseDebugLog when done to ensure the file is properly closed.
func InitDebugLogFile() (string, error) {
	debugMutex.Lock()
	defer debugMutex.Unlock()

	logDir := filepath.Join(os.TempDir(), "alt-debug-logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create debug log directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02T150405")
	logPath := filepath.Join(logDir, fmt.Sprintf("debug-%s.log", timestamp))

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create debug log file: %w", err)
	}

	debugFile = file
	debugOutput = file
	return logPath, nil
}

// CloseDebugLog closes the debug log file if one is open.
func CloseDebugLog() error {
	debugMutex.Lock()
	defer debugMutex.Unlock()

	if debugFile != nil {
		err := debugFile.Close()
		debugFile = nil
		debugOutput = nil
		return err
	}
	return nil
}

// IsDebugEnabled returns true if debug mode is enabled by flag, build or environment
func IsDebugEnabled() bool {
	debugMutex.Lock()
	on := forced
	debugMutex.Unlock()
	if on {
		return true
	}

	// Check build flag first
	if EnableDebug == "true" {
		return true
	}

	// Allow runtime override via environment variable
	if os.Getenv("DEBUG") == "1" || os.Getenv("DEBUG") == "true" {
		return true
	}

	return false
}

// getDebugWriter returns the configured writer, falling back to stderr.
// Callers hold debugMutex.
func getDebugWriter() io.Writer {
	if debugOutput == nil {
		return os.Stderr
	}
	return debugOutput
}

// write serializes writes so concurrent shards never interleave a line
func write(format string, args ...interface{}) {
	debugMutex.Lock()
	defer debugMutex.Unlock()
	fmt.Fprintf(getDebugWriter(), format, args...)
}

// Printf prints debug information only when debug mode is enabled
func Printf(format string, args ...interface{}) {
	if !IsDebugEnabled() {
		return
	}
	write("[DEBUG] "+format, args...)
}

// Log provides structured debug logging with component names
func Log(component, format string, args ...interface{}) {
	if !IsDebugEnabled() {
		return
	}
	write("[DEBUG:%s] "+format+"\n", append([]interface{}{component}, args...)...)
}

// LogMatch provides debug logging specifically for matching and scoring
func LogMatch(format string, args ...interface{}) {
	Log("MATCH", format, args...)
}

// LogSource provides debug logging specifically for candidate sources
func LogSource(format string, args ...interface{}) {
	Log("SOURCE", format, args...)
}

// LogConfig provides debug logging specifically for configuration loading
func LogConfig(format string, args ...interface{}) {
	Log("CONFIG", format, args...)
}
