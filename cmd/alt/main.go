package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/standardbeagle/alt/internal/config"
	"github.com/standardbeagle/alt/internal/debug"
	"github.com/standardbeagle/alt/internal/judge"
	"github.com/standardbeagle/alt/internal/match"
	"github.com/standardbeagle/alt/internal/source"
	"github.com/standardbeagle/alt/internal/version"
	"github.com/standardbeagle/alt/pkg/pathutil"

	"github.com/urfave/cli/v2"
)

// Exit statuses
const (
	exitMatch   = 0
	exitNoMatch = 1
	exitError   = 2
)

// env is the process boundary the app runs against.
type env struct {
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer
	stdinPiped bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args, &env{
		stdin:      os.Stdin,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		stdinPiped: source.IsPiped(os.Stdin),
	})
	stop()
	os.Exit(code)
}

// run executes the app and maps its outcome to an exit status.
func run(ctx context.Context, args []string, e *env) int {
	err := newApp(e).RunContext(ctx, args)
	if err == nil {
		return exitMatch
	}

	code := exitError
	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		code = ec.ExitCode()
	}
	if msg := err.Error(); msg != "" {
		fmt.Fprintf(e.stderr, "alt: %s\n", msg)
	}
	return code
}

func newApp(e *env) *cli.App {
	cli.VersionPrinter = func(c *cli.Context) {
		fmt.Fprintln(c.App.Writer, version.Banner())
	}

	return &cli.App{
		Name:                   "alt",
		Usage:                  "Find the alternate file (test or implementation) for a path",
		UsageText:              "alt [flags] PATH\n   git ls-files | alt app/models/user.rb",
		Version:                version.Version,
		UseShortOptionHandling: true,
		HideHelpCommand:        true,
		Reader:                 e.stdin,
		Writer:                 e.stdout,
		ErrWriter:              e.stderr,
		// run reports errors; the default handler would exit the process
		ExitErrHandler: func(*cli.Context, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Read newline separated candidates from `FILE` (- for stdin)",
			},
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Walk `DIR` for candidates when no list is given (overrides config)",
			},
			&cli.StringSliceFlag{
				Name:  "include",
				Usage: "Only walk files matching glob patterns (e.g., --include '**/*.rb')",
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "Skip files matching glob patterns (e.g., --exclude '**/fixtures/**')",
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Usage:   "Scoring goroutines (0=NumCPU, 1=sequential)",
			},
			&cli.IntFlag{
				Name:  "threshold",
				Usage: "Eligible candidate count at which scoring is sharded",
			},
			&cli.StringFlag{
				Name:  "judge",
				Usage: "Scoring function: " + strings.Join(judge.Names, ", "),
			},
			&cli.Float64Flag{
				Name:  "filename-weight",
				Usage: "Weight of file name similarity for the weighted judge",
			},
			&cli.Float64Flag{
				Name:  "path-weight",
				Usage: "Weight of directory similarity for the weighted judge",
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Print the top `N` ranked candidates instead of the single best",
			},
			&cli.BoolFlag{
				Name:    "scores",
				Aliases: []string{"s"},
				Usage:   "Prefix each printed path with its score",
			},
			&cli.BoolFlag{
				Name:  "any",
				Usage: "Ignore test/implementation classification",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file path (default: <root>/" + config.FileName + ")",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "Write debug output to stderr",
			},
			&cli.BoolFlag{
				Name:  "debug-log",
				Usage: "Write debug output to a log file under the temp directory",
			},
		},
		Action: func(c *cli.Context) error {
			return findAlternate(c, e)
		},
	}
}

// loadConfigWithOverrides loads configuration and applies CLI flag overrides
func loadConfigWithOverrides(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadWithRoot(c.String("config"), c.String("root"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if includeFlags := c.StringSlice("include"); len(includeFlags) > 0 {
		cfg.Include = includeFlags
	}
	if excludeFlags := c.StringSlice("exclude"); len(excludeFlags) > 0 {
		cfg.Exclude = append(cfg.Exclude, excludeFlags...)
	}
	if rootFlag := c.String("root"); rootFlag != "" {
		absRoot, err := filepath.Abs(rootFlag)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve root path %q: %w", rootFlag, err)
		}
		cfg.Project.Root = absRoot
	}
	if c.IsSet("workers") {
		cfg.Match.Workers = c.Int("workers")
	}
	if c.IsSet("threshold") {
		cfg.Match.ParallelThreshold = c.Int("threshold")
	}
	if c.IsSet("judge") {
		cfg.Match.Judge = c.String("judge")
	}
	if c.IsSet("filename-weight") {
		cfg.Match.FilenameWeight = c.Float64("filename-weight")
	}
	if c.IsSet("path-weight") {
		cfg.Match.PathWeight = c.Float64("path-weight")
	}
	if c.IsSet("limit") {
		cfg.Match.Limit = c.Int("limit")
	}
	if c.Bool("any") {
		cfg.Match.IgnoreClassification = true
	}

	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findAlternate(c *cli.Context, e *env) error {
	switch {
	case c.Bool("debug-log"):
		logPath, err := debug.InitDebugLogFile()
		if err != nil {
			return cli.Exit(err.Error(), exitError)
		}
		defer debug.CloseDebugLog()
		debug.Enable(true)
		fmt.Fprintf(e.stderr, "debug log: %s\n", logPath)
	case c.Bool("debug"):
		debug.SetDebugOutput(e.stderr)
		debug.Enable(true)
	}
	debug.Printf("%s\n", version.FullInfo())

	if c.NArg() != 1 {
		return cli.Exit("expected exactly one PATH argument (see --help)", exitError)
	}

	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return cli.Exit(err.Error(), exitError)
	}

	candidates, walked, err := loadCandidates(c, e, cfg)
	if err != nil {
		return cli.Exit(err.Error(), exitError)
	}

	query := c.Args().First()
	if walked || filepath.IsAbs(query) {
		query = pathutil.QueryPath(query, cfg.Project.Root)
	}

	opts, err := cfg.MatchOptions()
	if err != nil {
		return cli.Exit(err.Error(), exitError)
	}
	m := match.New(opts)
	q := opts.Classifier.New(query)
	paths := m.Paths(candidates)

	if cfg.Match.Limit > 0 {
		ranked, err := m.Rank(c.Context, q, paths, cfg.Match.Limit)
		if err != nil {
			return cli.Exit(err.Error(), exitError)
		}
		if len(ranked) == 0 {
			return cli.Exit("", exitNoMatch)
		}
		for _, r := range ranked {
			printMatch(e.stdout, r, c.Bool("scores"))
		}
		return nil
	}

	best, err := m.BestMatch(c.Context, q, paths)
	if err != nil {
		return cli.Exit(err.Error(), exitError)
	}
	if best == nil {
		return cli.Exit("", exitNoMatch)
	}
	printMatch(e.stdout, *best, c.Bool("scores"))
	return nil
}

// loadCandidates reads --file, then piped stdin, and walks the project root
// otherwise. walked reports whether candidates are root relative.
func loadCandidates(c *cli.Context, e *env, cfg *config.Config) (candidates []string, walked bool, err error) {
	if file := c.String("file"); file != "" {
		candidates, err = source.ReadFile(file, e.stdin)
		return candidates, false, err
	}
	if e.stdinPiped {
		candidates, err = source.ReadFile(source.Stdin, e.stdin)
		return candidates, false, err
	}

	cfg.EnrichExclusionsWithBuildArtifacts()
	w, err := source.FromConfig(cfg)
	if err != nil {
		return nil, true, err
	}
	candidates, err = w.Walk(c.Context)
	return candidates, true, err
}

func printMatch(w io.Writer, m match.Match, withScore bool) {
	if withScore {
		fmt.Fprintf(w, "%.4f %s\n", m.Score, m.Path.String())
		return
	}
	fmt.Fprintln(w, m.Path.String())
}
