package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// BuildArtifactDetector reads language build manifests in a project root and
// reports their output directories as exclusion globs. Compiled or copied
// sources under those directories would otherwise compete with the real
// alternates.
type BuildArtifactDetector struct {
	projectRoot string
}

// NewBuildArtifactDetector creates a new build artifact detector
func NewBuildArtifactDetector(projectRoot string) *BuildArtifactDetector {
	return &BuildArtifactDetector{projectRoot: projectRoot}
}

// DetectOutputDirectories returns "**/<dir>/**" for every declared output
// directory, deduplicated, in manifest order.
func (bad *BuildArtifactDetector) DetectOutputDirectories() []string {
	var dirs []string
	dirs = append(dirs, bad.packageJSONOutputs()...)
	dirs = append(dirs, bad.tsconfigOutputs()...)
	dirs = append(dirs, bad.cargoOutputs()...)
	dirs = append(dirs, bad.pyprojectOutputs()...)

	patterns := make([]string, 0, len(dirs))
	for _, d := range dirs {
		if p := dirPattern(d); p != "" {
			patterns = append(patterns, p)
		}
	}
	return DeduplicatePatterns(patterns)
}

// dirPattern turns a manifest directory value ("./lib/", "dist") into a glob.
// Values escaping the project or naming the root itself are ignored.
func dirPattern(dir string) string {
	dir = strings.Trim(filepath.ToSlash(filepath.Clean(dir)), "/")
	if dir == "" || dir == "." || strings.HasPrefix(dir, "..") {
		return ""
	}
	return "**/" + dir + "/**"
}

func (bad *BuildArtifactDetector) readJSON(name string) map[string]interface{} {
	data, err := os.ReadFile(filepath.Join(bad.projectRoot, name))
	if err != nil {
		return nil
	}
	var doc map[string]interface{}
	if json.Unmarshal(data, &doc) != nil {
		return nil
	}
	return doc
}

func (bad *BuildArtifactDetector) readTOML(name string) map[string]interface{} {
	data, err := os.ReadFile(filepath.Join(bad.projectRoot, name))
	if err != nil {
		return nil
	}
	var doc map[string]interface{}
	if toml.Unmarshal(data, &doc) != nil {
		return nil
	}
	return doc
}

// lookup walks nested tables by key.
func lookup(doc map[string]interface{}, keys ...string) (interface{}, bool) {
	var cur interface{} = doc
	for _, k := range keys {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		if cur, ok = m[k]; !ok {
			return nil, false
		}
	}
	return cur, true
}

func lookupString(doc map[string]interface{}, keys ...string) (string, bool) {
	v, ok := lookup(doc, keys...)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// packageJSONOutputs reads --outDir flags in scripts and build.outDir.
func (bad *BuildArtifactDetector) packageJSONOutputs() []string {
	pkg := bad.readJSON("package.json")
	if pkg == nil {
		return nil
	}

	var dirs []string
	if scripts, ok := pkg["scripts"].(map[string]interface{}); ok {
		for _, script := range scripts {
			s, ok := script.(string)
			if !ok {
				continue
			}
			parts := strings.Fields(s)
			for i, part := range parts {
				if (part == "--outDir" || part == "-outDir") && i+1 < len(parts) {
					dirs = append(dirs, strings.Trim(parts[i+1], "\"'"))
				} else if v, ok := strings.CutPrefix(part, "--outDir="); ok {
					dirs = append(dirs, strings.Trim(v, "\"'"))
				}
			}
		}
	}
	if outDir, ok := lookupString(pkg, "build", "outDir"); ok {
		dirs = append(dirs, outDir)
	}
	return dirs
}

func (bad *BuildArtifactDetector) tsconfigOutputs() []string {
	if outDir, ok := lookupString(bad.readJSON("tsconfig.json"), "compilerOptions", "outDir"); ok {
		return []string{outDir}
	}
	return nil
}

// cargoOutputs reads a custom target directory; target/ itself is a default
// exclusion.
func (bad *BuildArtifactDetector) cargoOutputs() []string {
	cargo := bad.readTOML("Cargo.toml")
	var dirs []string
	if dir, ok := lookupString(cargo, "build", "target-dir"); ok {
		dirs = append(dirs, dir)
	}
	if dir, ok := lookupString(cargo, "profile", "release", "target-dir"); ok {
		dirs = append(dirs, dir)
	}
	return dirs
}

func (bad *BuildArtifactDetector) pyprojectOutputs() []string {
	py := bad.readTOML("pyproject.toml")
	var dirs []string
	if dir, ok := lookupString(py, "tool", "poetry", "build", "target-dir"); ok {
		dirs = append(dirs, dir)
	}
	if dir, ok := lookupString(py, "tool", "setuptools", "build-dir"); ok {
		dirs = append(dirs, dir)
	}
	return dirs
}

// DeduplicatePatterns removes duplicate patterns, keeping first occurrences
// in order.
func DeduplicatePatterns(patterns []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(patterns))

	for _, pattern := range patterns {
		if !seen[pattern] {
			seen[pattern] = true
			result = append(result, pattern)
		}
	}

	return result
}
