package path

import (
	"fmt"
	"strings"
)

// RuleKind selects which part of a path a Rule inspects.
type RuleKind string

const (
	// RulePrefix matches the start of the normalized path ("spec/").
	RulePrefix RuleKind = "prefix"
	// RuleSegment matches any directory segment above the file name ("__tests__").
	RuleSegment RuleKind = "segment"
	// RuleStemSuffix matches the end of the file name without its extension ("_test").
	RuleStemSuffix RuleKind = "stem_suffix"
	// RuleStemPrefix matches the start of the file name ("test_").
	RuleStemPrefix RuleKind = "stem_prefix"
)

// ParseRuleKind validates a rule kind read from configuration.
func ParseRuleKind(s string) (RuleKind, error) {
	switch k := RuleKind(s); k {
	case RulePrefix, RuleSegment, RuleStemSuffix, RuleStemPrefix:
		return k, nil
	}
	return "", fmt.Errorf("unknown classification rule kind %q", s)
}

// Rule is a single test-file predicate.
type Rule struct {
	Kind  RuleKind
	Value string
}

// Matches reports whether the normalized path satisfies the rule.
func (r Rule) Matches(normalized string) bool {
	switch r.Kind {
	case RulePrefix:
		return strings.HasPrefix(normalized, r.Value)
	case RuleSegment:
		dir, _ := splitFile(normalized)
		for _, seg := range strings.Split(dir, "/") {
			if seg == r.Value {
				return true
			}
		}
		return false
	case RuleStemSuffix:
		_, stem := splitFile(normalized)
		return stem != r.Value && strings.HasSuffix(stem, r.Value)
	case RuleStemPrefix:
		_, stem := splitFile(normalized)
		return stem != r.Value && strings.HasPrefix(stem, r.Value)
	}
	return false
}

func (r Rule) String() string {
	return string(r.Kind) + " " + r.Value
}

// DefaultRules is the fixed rule set, evaluated in order.
var DefaultRules = []Rule{
	// Test::Unit/MiniTest, RSpec and Cucumber roots, plus pytest and maven layouts
	{RulePrefix, "test/"},
	{RulePrefix, "spec/"},
	{RulePrefix, "features/"},
	{RulePrefix, "tests/"},
	{RulePrefix, "src/test/"},

	// monorepo components keep their tests under a nested directory
	{RuleSegment, "test"},
	{RuleSegment, "tests"},
	{RuleSegment, "spec"},
	{RuleSegment, "__tests__"},

	{RuleStemSuffix, "_test"},
	{RuleStemSuffix, "_spec"},
	{RuleStemSuffix, ".test"},
	{RuleStemSuffix, ".spec"},
	// JUnit, XCTest, Quick and ScalaTest
	{RuleStemSuffix, "Test"},
	{RuleStemSuffix, "Tests"},
	{RuleStemSuffix, "Spec"},
	{RuleStemSuffix, "Specs"},
	{RuleStemSuffix, "Suite"},

	{RuleStemPrefix, "test_"},
}

var defaultClassifier = DefaultClassifier()

// Classifier evaluates an ordered rule list, stopping at the first match.
type Classifier struct {
	rules []Rule
}

// DefaultClassifier returns a classifier carrying DefaultRules.
func DefaultClassifier() *Classifier {
	rules := make([]Rule, len(DefaultRules))
	copy(rules, DefaultRules)
	return &Classifier{rules: rules}
}

// WithRules returns a new classifier that evaluates extra after the current rules.
func (c *Classifier) WithRules(extra ...Rule) *Classifier {
	rules := make([]Rule, 0, len(c.rules)+len(extra))
	rules = append(rules, c.rules...)
	rules = append(rules, extra...)
	return &Classifier{rules: rules}
}

// Rules returns a copy of the rule list in evaluation order.
func (c *Classifier) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// IsTestFile reports whether any rule matches the normalized path.
func (c *Classifier) IsTestFile(normalized string) bool {
	for _, r := range c.rules {
		if r.Matches(normalized) {
			return true
		}
	}
	return false
}

// New builds a Path classified by c.
func (c *Classifier) New(raw string) Path {
	normalized := Normalize(raw)
	return Path{
		raw:        raw,
		normalized: normalized,
		isTest:     c.IsTestFile(normalized),
	}
}

// splitFile returns the directory part and the file name stem (name without
// its final extension). Dot files keep their full name as the stem.
func splitFile(p string) (dir, stem string) {
	base := p
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		dir, base = p[:i], p[i+1:]
	}
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		return dir, base[:i]
	}
	return dir, base
}
