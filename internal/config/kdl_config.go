package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"

	"github.com/standardbeagle/alt/internal/debug"
	alterrors "github.com/standardbeagle/alt/internal/errors"
	"github.com/standardbeagle/alt/internal/path"
)

// applyFile applies a KDL file onto cfg. A missing file reports false unless
// required is set.
func applyFile(cfg *Config, file string, required bool) (bool, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return false, nil
		}
		return false, fmt.Errorf("failed to read %s: %w", file, err)
	}

	if err := applyKDL(cfg, string(content)); err != nil {
		return false, fmt.Errorf("%s: %w", file, err)
	}
	return true, nil
}

// applyKDL overwrites the values a document sets and appends its include,
// exclude and classify entries.
func applyKDL(cfg *Config, content string) error {
	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return fmt.Errorf("failed to parse KDL config: %w", err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "project":
			for _, cn := range n.Children { // project { root "." name "foo" }
				assignSimpleString(cn, "root", func(v string) { cfg.Project.Root = v })
				assignSimpleString(cn, "name", func(v string) { cfg.Project.Name = v })
			}
		case "match":
			parseMatchSection(cfg, n)
		case "walk":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "respect_gitignore":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Walk.RespectGitignore = b
					}
				case "max_depth":
					if v, ok := firstIntArg(cn); ok {
						cfg.Walk.MaxDepth = v
					}
				}
			}
		case "classify":
			rules, err := parseClassifySection(n)
			if err != nil {
				return err
			}
			cfg.Classify = append(cfg.Classify, rules...)
		case "include":
			cfg.Include = append(cfg.Include, collectStringArgs(n)...)
		case "exclude":
			cfg.Exclude = append(cfg.Exclude, collectStringArgs(n)...)
		default:
			debug.LogConfig("ignoring unknown node %q", nodeName(n))
		}
	}
	return nil
}

func parseMatchSection(cfg *Config, n *document.Node) {
	for _, cn := range n.Children {
		switch nodeName(cn) {
		case "workers":
			if v, ok := firstIntArg(cn); ok {
				cfg.Match.Workers = v
			}
		case "parallel_threshold":
			if v, ok := firstIntArg(cn); ok {
				cfg.Match.ParallelThreshold = v
			}
		case "judge":
			if s, ok := firstStringArg(cn); ok {
				cfg.Match.Judge = s
			}
		case "filename_weight":
			if v, ok := firstFloatArg(cn); ok {
				cfg.Match.FilenameWeight = v
			}
		case "path_weight":
			if v, ok := firstFloatArg(cn); ok {
				cfg.Match.PathWeight = v
			}
		case "limit":
			if v, ok := firstIntArg(cn); ok {
				cfg.Match.Limit = v
			}
		case "ignore_classification":
			if b, ok := firstBoolArg(cn); ok {
				cfg.Match.IgnoreClassification = b
			}
		}
	}
}

// parseClassifySection reads rules of the form
//
//	classify {
//	    prefix "e2e/" "qa/"
//	    stem_suffix "_it"
//	}
func parseClassifySection(n *document.Node) ([]path.Rule, error) {
	var rules []path.Rule
	for _, cn := range n.Children {
		kind, err := path.ParseRuleKind(nodeName(cn))
		if err != nil {
			return nil, alterrors.NewConfigError("classify", nodeName(cn), err)
		}
		values := collectStringArgs(cn)
		if len(values) == 0 {
			return nil, alterrors.NewConfigError("classify."+string(kind), "", errors.New("rule needs at least one value"))
		}
		for _, v := range values {
			rules = append(rules, path.Rule{Kind: kind, Value: v})
		}
	}
	return rules, nil
}

// Helper functions over the kdl-go document model
func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}
func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}
func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}
func firstBoolArg(n *document.Node) (bool, bool) {
	if len(n.Arguments) == 0 {
		return false, false
	}
	if b, ok := n.Arguments[0].Value.(bool); ok {
		return b, true
	}
	return false, false
}
func firstFloatArg(n *document.Node) (float64, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	default:
		debug.LogConfig("invalid float value for '%s', expected number but got %T", nodeName(n), n.Arguments[0].Value)
		return 0, false
	}
}
func collectStringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}
	// inline format: exclude "a" "b"
	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}

	// block format: exclude { "a"; "b" }, where each string is a child node name
	if len(out) == 0 && len(n.Children) > 0 {
		out = make([]string, 0, len(n.Children))
		for _, child := range n.Children {
			if s, ok := firstStringArg(child); ok {
				out = append(out, s)
			} else if child.Name != nil {
				if s, ok := child.Name.Value.(string); ok {
					out = append(out, s)
				}
			}
		}
	}

	return out
}
func assignSimpleString(n *document.Node, target string, set func(string)) {
	if nodeName(n) == target {
		if s, ok := firstStringArg(n); ok {
			set(s)
		}
	}
}
