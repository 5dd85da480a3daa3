package path

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"leading dot slash and newline", "./hoopty/doopty/doo\n", "hoopty/doopty/doo"},
		{"crlf", "lib/foo.rb\r\n", "lib/foo.rb"},
		{"trailing spaces and tabs", "lib/foo.rb \t ", "lib/foo.rb"},
		{"only one leading dot slash", "././lib/foo.rb", "./lib/foo.rb"},
		{"internal double slash kept", "lib//foo.rb", "lib//foo.rb"},
		{"parent segments kept", "../lib/foo.rb", "../lib/foo.rb"},
		{"already clean", "app/models/task.rb", "app/models/task.rb"},
		{"blank", " \n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNew(t *testing.T) {
	p := New("./spec/models/task_spec.rb\n")

	assert.Equal(t, "./spec/models/task_spec.rb\n", p.Raw())
	assert.Equal(t, "spec/models/task_spec.rb", p.String())
	assert.True(t, p.IsTest())
	assert.False(t, p.IsEmpty())

	assert.True(t, New("./\n").IsEmpty())
}

func TestIsTestFile_PrefixFixtures(t *testing.T) {
	assert.True(t, IsTestFile("features/aouaoeu/aoeuaoeua"), "cucumber")
	assert.True(t, IsTestFile("test/aouaoeu/aoeuaoeua"), "minitest")
	assert.True(t, IsTestFile("spec/aouaoeu/aoeuaoeua"), "rspec")
	assert.False(t, IsTestFile("jackroot/aouaoeu/aoeuaoeua"))
}

func TestIsTestFile_Conventions(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		// Ruby, Rails and Hanami
		{"spec/lib/tasks/bar/foo_rake_spec.rb", true},
		{"test/controllers/tasks_controller_test.rb", true},
		{"components/module1/test/app/controllers/file_controller_test.rb", true},
		{"components/module1/spec/app/controllers/file_controller_spec.rb", true},
		{"components/module1/app/controller/file_controller.rb", false},
		{"app/controllers/tasks_controller.rb", false},
		{"apps/web/views/users/create.rb", false},
		{"lib/tasks/bar/foo.rake", false},
		{"features/step_definitions/project_management_steps.rb", true},

		// Elixir
		{"test/lib/my_awesome_app/supervisor_test.exs", true},
		{"lib/my_awesome_app/supervisor.ex", false},

		// JavaScript
		{"src/foo/bar/jacked.test.js", true},
		{"src/foo/bar/jacked.spec.js", true},
		{"src/foo/bar/__tests__/jacked.js", true},
		{"lib/jacked_spec.js", true},
		{"foo/bar/jacked.js", false},

		// Python and Go
		{"test/test_toaster.py", true},
		{"pkg/test_toaster.py", true},
		{"toaster.py", false},
		{"internal/match/matcher_test.go", true},
		{"internal/match/matcher.go", false},

		// Java, Scala and Swift
		{"src/test/java/com/example/SomethingTest.java", true},
		{"modules/core/SomethingSuite.scala", true},
		{"src/main/scala/com/example/Something.scala", false},
		{"AutomotiveTests/Vehicles/VehicleAttributesVehicleTests.swift", true},
		{"AutomotiveUITests/Vehicles/VehicleAttributesVehicleUISpec.swift", true},
		{"Automotive/Vehicles/VehicleAttributesVehicle.swift", false},

		// Names equal to a convention are not tests on their own
		{"lib/Test.java", false},
		{"lib/_test.go", false},
		{"app/models/contest.rb", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsTestFile(tt.path))
		})
	}
}

func TestClassifier_WithRules(t *testing.T) {
	base := DefaultClassifier()
	assert.False(t, base.IsTestFile("e2e/login.ts"))

	extended := base.WithRules(
		Rule{Kind: RulePrefix, Value: "e2e/"},
		Rule{Kind: RuleStemSuffix, Value: "_it"},
	)
	assert.True(t, extended.IsTestFile("e2e/login.ts"))
	assert.True(t, extended.IsTestFile("src/db/store_it.go"))
	assert.True(t, extended.New("e2e/login.ts").IsTest())

	// The receiver is left untouched
	assert.False(t, base.IsTestFile("e2e/login.ts"))
	assert.Len(t, extended.Rules(), len(DefaultRules)+2)
	assert.Equal(t, Rule{Kind: RuleStemSuffix, Value: "_it"}, extended.Rules()[len(DefaultRules)+1])
}

func TestClassifier_RulesIsACopy(t *testing.T) {
	c := DefaultClassifier()
	rules := c.Rules()
	rules[0] = Rule{Kind: RulePrefix, Value: "jackroot/"}

	assert.False(t, c.IsTestFile("jackroot/aouaoeu/aoeuaoeua"))
	assert.Equal(t, "prefix test/", c.Rules()[0].String())
}

func TestParseRuleKind(t *testing.T) {
	for _, s := range []string{"prefix", "segment", "stem_suffix", "stem_prefix"} {
		kind, err := ParseRuleKind(s)
		require.NoError(t, err)
		assert.Equal(t, RuleKind(s), kind)
	}

	_, err := ParseRuleKind("regex")
	assert.Error(t, err)
}

func TestIsDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "resources"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "resources", "demo.gif"), []byte("GIF89a"), 0644))
	t.Chdir(dir)

	assert.True(t, IsDirectory("resources"))
	assert.True(t, New("./resources\n").IsDirectory())
	assert.False(t, IsDirectory("resources/demo.gif"))
	assert.False(t, IsDirectory("jackroot/aouaoeu/aoeuaoeua"))
}

func TestSplitFile(t *testing.T) {
	tests := []struct {
		path, dir, stem string
	}{
		{"a/b/c.rb", "a/b", "c"},
		{"c.rb", "", "c"},
		{"a/jacked.test.js", "a", "jacked.test"},
		{"a/.gitignore", "a", ".gitignore"},
		{"a/Makefile", "a", "Makefile"},
	}
	for _, tt := range tests {
		dir, stem := splitFile(tt.path)
		assert.Equal(t, tt.dir, dir, tt.path)
		assert.Equal(t, tt.stem, stem, tt.path)
	}
}
