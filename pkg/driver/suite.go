// Package driver loads and runs YAML script suites: named Tern programs
// paired with their expected rendered results. Suites back the `tern check`
// subcommand and double as executable documentation for the language.
package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"tern/interpreter-go/pkg/interpreter"
	"tern/interpreter-go/pkg/parser"
	"tern/interpreter-go/pkg/runtime"
)

// Suite represents the parsed contents of a suite manifest.
type Suite struct {
	Path  string
	Name  string
	Cases []*Case
}

// Case is one named program with its expected displayed value. Source is
// inline program text; File points at a script relative to the manifest.
// Exactly one of the two must be set.
type Case struct {
	Name   string
	Source string
	File   string
	Want   string
}

// ValidationError aggregates suite validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "suite: invalid manifest"
	}
	var b strings.Builder
	b.WriteString("suite validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

type suiteFile struct {
	Suite string     `yaml:"suite"`
	Cases []caseFile `yaml:"cases"`
}

type caseFile struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
	File   string `yaml:"file"`
	Want   string `yaml:"want"`
}

// LoadSuite parses a suite manifest from disk, returning a validated suite.
func LoadSuite(path string) (*Suite, error) {
	if path == "" {
		return nil, fmt.Errorf("suite: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("suite: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("suite: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw suiteFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("suite: %s is empty", absPath)
		}
		return nil, fmt.Errorf("suite: parse %s: %w", absPath, err)
	}

	suite := &Suite{Path: absPath, Name: raw.Suite}
	for _, c := range raw.Cases {
		suite.Cases = append(suite.Cases, &Case{
			Name:   c.Name,
			Source: c.Source,
			File:   c.File,
			Want:   c.Want,
		})
	}
	if err := suite.validate(); err != nil {
		return nil, err
	}
	return suite, nil
}

func (s *Suite) validate() error {
	var issues []string
	if s.Name == "" {
		issues = append(issues, "missing suite name")
	}
	if len(s.Cases) == 0 {
		issues = append(issues, "suite declares no cases")
	}
	seen := make(map[string]bool)
	for idx, c := range s.Cases {
		label := c.Name
		if label == "" {
			issues = append(issues, fmt.Sprintf("case %d: missing name", idx))
			continue
		}
		if seen[label] {
			issues = append(issues, fmt.Sprintf("case %q: duplicate name", label))
		}
		seen[label] = true
		if (c.Source == "") == (c.File == "") {
			issues = append(issues, fmt.Sprintf("case %q: exactly one of source or file required", label))
		}
	}
	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

// Result records one executed case.
type Result struct {
	Case *Case
	Got  string
	Err  error
}

// Passed reports whether the case ran without error and rendered the
// expected value.
func (r Result) Passed() bool {
	return r.Err == nil && r.Got == r.Case.Want
}

// Run executes every case against a fresh interpreter so suites cannot leak
// bindings into each other. Script files resolve relative to the manifest.
func (s *Suite) Run() []Result {
	results := make([]Result, 0, len(s.Cases))
	for _, c := range s.Cases {
		results = append(results, s.runCase(c))
	}
	return results
}

func (s *Suite) runCase(c *Case) Result {
	source := c.Source
	if c.File != "" {
		data, err := os.ReadFile(filepath.Join(filepath.Dir(s.Path), c.File))
		if err != nil {
			return Result{Case: c, Err: fmt.Errorf("read script: %w", err)}
		}
		source = string(data)
	}
	expr, err := parser.Parse(source)
	if err != nil {
		return Result{Case: c, Err: err}
	}
	val, err := interpreter.New().Run(expr)
	if err != nil {
		return Result{Case: c, Err: err}
	}
	return Result{Case: c, Got: runtime.Display(val)}
}
