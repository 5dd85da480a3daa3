package config

import (
	"errors"
	"fmt"
	"runtime"
	"slices"

	alterrors "github.com/standardbeagle/alt/internal/errors"
	"github.com/standardbeagle/alt/internal/judge"
	"github.com/standardbeagle/alt/internal/match"
	"github.com/standardbeagle/alt/internal/path"
)

// Validator validates configuration and sets smart defaults
type Validator struct{}

// NewValidator creates a new configuration validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateAndSetDefaults validates configuration and applies smart defaults.
// Every invalid field is reported, joined in a MultiError.
func (v *Validator) ValidateAndSetDefaults(cfg *Config) error {
	var errs []error

	if cfg.Project.Root == "" {
		errs = append(errs, alterrors.NewConfigError("project.root", "", errors.New("project root cannot be empty")))
	}

	for _, err := range v.validateMatchConfig(&cfg.Match) {
		errs = append(errs, alterrors.NewConfigError("match", "", err))
	}

	if cfg.Walk.MaxDepth < 0 {
		errs = append(errs, alterrors.NewConfigError("walk.max_depth", fmt.Sprint(cfg.Walk.MaxDepth), errors.New("cannot be negative")))
	}

	for _, r := range cfg.Classify {
		if _, err := path.ParseRuleKind(string(r.Kind)); err != nil {
			errs = append(errs, alterrors.NewConfigError("classify", r.String(), err))
		} else if r.Value == "" {
			errs = append(errs, alterrors.NewConfigError("classify", r.String(), errors.New("rule value cannot be empty")))
		}
	}

	if err := alterrors.NewMultiError(errs).ErrOrNil(); err != nil {
		return err
	}

	v.setSmartDefaults(cfg)
	return nil
}

// validateMatchConfig validates matching configuration
func (v *Validator) validateMatchConfig(m *Match) []error {
	var errs []error

	// Workers: 0 means auto-detect (will be set by smart defaults)
	if m.Workers < 0 {
		errs = append(errs, fmt.Errorf("Workers cannot be negative, got %d", m.Workers))
	}

	if m.ParallelThreshold < 0 {
		errs = append(errs, fmt.Errorf("ParallelThreshold cannot be negative, got %d", m.ParallelThreshold))
	}

	if m.Limit < 0 {
		errs = append(errs, fmt.Errorf("Limit cannot be negative, got %d", m.Limit))
	}

	if m.Judge != "" && !slices.Contains(judge.Names, m.Judge) {
		errs = append(errs, fmt.Errorf("unknown judge %q (want one of %v)", m.Judge, judge.Names))
	}

	switch {
	case m.FilenameWeight < 0 || m.PathWeight < 0:
		errs = append(errs, fmt.Errorf("weights cannot be negative, got filename %v path %v", m.FilenameWeight, m.PathWeight))
	case m.FilenameWeight == 0 && m.PathWeight == 0:
		// a weighted judge would score every candidate 0
		errs = append(errs, errors.New("filename and path weights cannot both be zero"))
	}

	return errs
}

// setSmartDefaults applies smart defaults based on system capabilities
func (v *Validator) setSmartDefaults(cfg *Config) {
	if cfg.Match.Workers == 0 {
		cfg.Match.Workers = runtime.NumCPU()
	}

	if cfg.Match.ParallelThreshold == 0 {
		cfg.Match.ParallelThreshold = match.DefaultParallelThreshold
	}

	if cfg.Match.Judge == "" {
		cfg.Match.Judge = judge.NameSubstring
	}
}

// ValidateConfig is a convenience function for quick validation
func ValidateConfig(cfg *Config) error {
	validator := NewValidator()
	return validator.ValidateAndSetDefaults(cfg)
}
