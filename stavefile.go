//go:build stave

package main

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

// Default builds bin/gojslint.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":    Build,
	"t":    Test.Default,
	"l":    Lint.Default,
	"c":    Check,
	"fmt":  Lint.Fmt,
	"cmp":  Bench.Compare,
	"cmpf": Bench.Fast,
}

type (
	Test  st.Namespace
	Lint  st.Namespace
	CI    st.Namespace
	Bench st.Namespace
)

const binary = "bin/gojslint"

// Build compiles bin/gojslint when any Go source is newer than it.
func Build() error {
	rebuild, err := target.Dir(binary, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println(binary, "is current")
		return nil
	}
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binary, "./cmd/gojslint")
}

// Check formats, lints and tests.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Clean deletes bin/, coverage and benchmark output.
func Clean() error {
	for _, path := range []string{"bin", "coverage.out", "bench-results.md"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Install runs go install with version ldflags.
func Install() error {
	return sh.RunV("go", "install", "-ldflags", ldflags(), "./cmd/gojslint")
}

// Default runs the suite under gotestsum with -race and coverage.
// STAVE_NUM_PROCESSORS bounds package and test parallelism.
func (Test) Default() error {
	procs := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	return sh.RunV("go",
		"tool", "gotestsum", "-f", "pkgname-and-test-fails", "--",
		"-race", "-p", procs, "-parallel", procs,
		"-coverprofile=coverage.out", "-covermode=atomic",
		"./...",
	)
}

// Golden rewrites the rule golden files under pkg/lint/rules/testdata.
func (Test) Golden() error {
	return sh.RunV("go", "test", "./pkg/lint/rules", "-run", "Golden", "-update")
}

// Fuzz runs each fuzz target for FUZZ_TIME (default 30s).
func (Test) Fuzz() error {
	fuzzTime := cmp.Or(os.Getenv("FUZZ_TIME"), "30s")
	targets := []struct{ pkg, name string }{
		{"./pkg/fix", "FuzzSelect"},
		{"./pkg/fix", "FuzzGenerateDiff"},
		{"./pkg/lint", "FuzzApplyFixes"},
		{"./pkg/directive", "FuzzParse"},
		{"./pkg/parser/js", "FuzzTokenize"},
	}
	for _, tgt := range targets {
		fmt.Printf("fuzz %s %s\n", tgt.pkg, tgt.name)
		if err := sh.RunV("go", "test", "-run=^$", "-fuzz=^"+tgt.name+"$", "-fuzztime", fuzzTime, tgt.pkg); err != nil {
			return fmt.Errorf("fuzz %s: %w", tgt.name, err)
		}
	}
	return nil
}

// Default runs golangci-lint; set LINT_FIX=1 to let it rewrite files.
func (Lint) Default() error {
	args := []string{"run", "./..."}
	if os.Getenv("LINT_FIX") == "1" {
		args = append(args, "--fix")
	}
	return sh.RunV("golangci-lint", args...)
}

// Fmt runs gofmt -w.
func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", ".")
}

// Vet runs go vet.
func (Lint) Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Gate is the CI entry point: gofmt clean, vet, golangci-lint, build, tests.
func (CI) Gate() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if out = strings.TrimSpace(out); out != "" {
		return errors.New("gofmt would change:\n" + out)
	}
	st.SerialDeps(Lint.Vet, Lint.Default, Build, Test.Default)
	return nil
}

// Default runs the Go benchmarks, mainly the per-rule ones in pkg/lint/rules.
func (Bench) Default() error {
	return sh.RunV("go", "test", "-run=^$", "-bench=.", "-benchmem", "./...")
}

// Compare times gojslint against ESLint on BENCH_DIR (default ".") over
// BENCH_RUNS runs (default 10).
func (Bench) Compare() error {
	return compareWithESLint(cmp.Or(os.Getenv("BENCH_RUNS"), "10"))
}

// Fast is Compare with a single run.
func (Bench) Fast() error {
	return compareWithESLint("1")
}

func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ldflags fills main.version, main.commit and main.date.
func ldflags() string {
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s",
		cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev"),
		cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none"),
		time.Now().UTC().Format(time.RFC3339),
	)
}

func compareWithESLint(runs string) error {
	dir := cmp.Or(os.Getenv("BENCH_DIR"), ".")
	st.Deps(Build)
	for _, tool := range [][]string{
		{"hyperfine", "--version"},
		{"npx", "--no-install", "eslint", "--version"},
	} {
		if err := exec.Command(tool[0], tool[1:]...).Run(); err != nil { //nolint:gosec // fixed argv
			return fmt.Errorf("%s unavailable: %w", strings.Join(tool, " "), err)
		}
	}
	return sh.RunV("hyperfine",
		"--runs", runs,
		"--ignore-failure",
		"--export-markdown", "bench-results.md",
		"-n", "gojslint", binary+" lint --no-config-lookup "+dir,
		"-n", "eslint", "npx --no-install eslint --no-config-lookup "+dir,
	)
}
