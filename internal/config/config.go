package config

import (
	"os"
	"path/filepath"

	"github.com/standardbeagle/alt/internal/debug"
	"github.com/standardbeagle/alt/internal/judge"
	"github.com/standardbeagle/alt/internal/match"
	"github.com/standardbeagle/alt/internal/path"
)

// FileName is the configuration file looked up in the project root and in
// the user's home directory.
const FileName = ".alt.kdl"

type Config struct {
	Version  int
	Project  Project
	Match    Match
	Classify []path.Rule // appended after the default classification rules
	Walk     Walk
	Include  []string
	Exclude  []string
}

type Project struct {
	Root string
	Name string
}

type Match struct {
	Workers              int    // 0 = auto-detect (NumCPU)
	ParallelThreshold    int    // eligible count at which scoring is sharded
	Judge                string // substring, weighted or fuzzy
	FilenameWeight       float64
	PathWeight           float64
	Limit                int // top N ranked candidates; 0 prints only the winner
	IgnoreClassification bool
}

type Walk struct {
	RespectGitignore bool // Process .gitignore for additional exclusions
	MaxDepth         int  // 0 = unlimited
}

// Default returns the configuration used when no .alt.kdl exists.
func Default(root string) *Config {
	return &Config{
		Version: 1,
		Project: Project{Root: root},
		Match: Match{
			ParallelThreshold: match.DefaultParallelThreshold,
			Judge:             judge.NameSubstring,
			FilenameWeight:    judge.DefaultWeights.FilenameWeight,
			PathWeight:        judge.DefaultWeights.PathWeight,
		},
		Walk: Walk{
			RespectGitignore: true,
		},
		Include: []string{},
		Exclude: getDefaultExclusions(),
	}
}

// LoadWithRoot resolves configuration for a project rooted at rootDir (the
// working directory when empty). ~/.alt.kdl is applied first and the project
// file on top of it, so project values win while exclusions and
// classification rules accumulate. An explicit configPath replaces the
// project file lookup and must exist.
func LoadWithRoot(configPath string, rootDir string) (*Config, error) {
	searchDir := "."
	if rootDir != "" {
		searchDir = rootDir
	}

	absRoot, err := filepath.Abs(searchDir)
	if err != nil {
		absRoot = searchDir
	}
	cfg := Default(absRoot)

	projectFile := filepath.Join(searchDir, FileName)
	required := false
	if configPath != "" {
		projectFile = configPath
		required = true
	}

	// Step 1: global base config from ~/.alt.kdl (if exists)
	if homeDir, err := os.UserHomeDir(); err == nil && !sameFile(filepath.Join(homeDir, FileName), projectFile) {
		homeFile := filepath.Join(homeDir, FileName)
		if found, err := applyFile(cfg, homeFile, false); err != nil {
			return nil, err
		} else if found {
			debug.LogConfig("applied global config %s", homeFile)
		}
		// the home file never relocates the project
		cfg.Project.Root = absRoot
	}

	// Step 2: project config on top
	found, err := applyFile(cfg, projectFile, required)
	if err != nil {
		return nil, err
	}
	if found {
		debug.LogConfig("applied project config %s", projectFile)
		cfg.Project.Root = resolveRoot(cfg.Project.Root, filepath.Dir(projectFile))
	}

	cfg.Exclude = DeduplicatePatterns(cfg.Exclude)
	return cfg, nil
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

// resolveRoot makes root absolute, interpreting relative values against the
// directory holding the config file.
func resolveRoot(root, configDir string) string {
	if root == "" {
		root = configDir
	} else if !filepath.IsAbs(root) {
		root = filepath.Join(configDir, root)
	}
	if abs, err := filepath.Abs(root); err == nil {
		return abs
	}
	return filepath.Clean(root)
}

// MatchOptions converts the match section into matcher options.
func (c *Config) MatchOptions() (match.Options, error) {
	j, err := judge.ByName(c.Match.Judge, judge.Weights{
		FilenameWeight: c.Match.FilenameWeight,
		PathWeight:     c.Match.PathWeight,
	})
	if err != nil {
		return match.Options{}, err
	}
	return match.Options{
		Workers:              c.Match.Workers,
		ParallelThreshold:    c.Match.ParallelThreshold,
		Judge:                j,
		Classifier:           path.DefaultClassifier().WithRules(c.Classify...),
		IgnoreClassification: c.Match.IgnoreClassification,
	}, nil
}

// EnrichExclusionsWithBuildArtifacts detects build output directories from language configs
// and adds them to the exclusion list
func (c *Config) EnrichExclusionsWithBuildArtifacts() {
	if c.Project.Root == "" {
		return
	}

	detected := NewBuildArtifactDetector(c.Project.Root).DetectOutputDirectories()
	if len(detected) > 0 {
		debug.LogConfig("build artifact exclusions: %v", detected)
		c.Exclude = DeduplicatePatterns(append(c.Exclude, detected...))
	}
}

// Gitignore loads the project root .gitignore. It returns nil when
// Walk.RespectGitignore is off.
func (c *Config) Gitignore() (*GitignoreParser, error) {
	if !c.Walk.RespectGitignore || c.Project.Root == "" {
		return nil, nil
	}

	gp := NewGitignoreParser()
	if err := gp.LoadGitignore(c.Project.Root); err != nil {
		return nil, err
	}
	debug.LogConfig("loaded %d gitignore patterns", len(gp.Patterns()))
	return gp, nil
}

// getDefaultExclusions lists directories that never hold alternates: VCS
// metadata, dependency trees, caches and build output.
func getDefaultExclusions() []string {
	return []string{
		"**/.git/**",
		"**/.hg/**",
		"**/.svn/**",

		// Package managers & dependencies
		"**/node_modules/**",
		"**/vendor/**",
		"**/bower_components/**",
		"**/jspm_packages/**",
		"**/.bundle/**",
		"**/venv/**",
		"**/.venv/**",
		"**/site-packages/**",
		"**/Pods/**",

		// Build artifacts & output
		"**/dist/**",
		"**/build/**",
		"**/out/**",
		"**/target/**", // Rust, Java
		"**/bin/**",
		"**/obj/**", // .NET
		"**/*.min.js",
		"**/*.min.css",

		// Caches
		"**/__pycache__/**",
		"**/.pytest_cache/**",
		"**/.mypy_cache/**",
		"**/.cache/**",
		"**/.next/**",
		"**/coverage/**",

		// Editor temp files
		"**/*.swp",
		"**/*~",
		"**/.DS_Store",
	}
}
