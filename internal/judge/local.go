package judge

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/codearena/arena/internal/challenge"
)

const (
	// DefaultCaseTimeout bounds a single test case run.
	DefaultCaseTimeout = 5 * time.Second

	// DefaultCompileTimeout bounds compilation.
	DefaultCompileTimeout = 60 * time.Second

	maxOutputBytes = 64 << 10
)

// ErrUnsupportedLanguage is returned for a language without a toolchain
// entry.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// NoTestCasesMessage is the Result.Error of a challenge that carries no
// test cases.
const NoTestCasesMessage = "challenge has no test cases"

// toolchain describes how to build and run one language in a work dir.
type toolchain struct {
	source  string
	compile []string
	run     []string
}

var toolchains = map[challenge.Language]toolchain{
	challenge.Python: {
		source: "main.py",
		run:    []string{"python3", "main.py"},
	},
	challenge.CPP: {
		source:  "main.cpp",
		compile: []string{"g++", "-O2", "-std=c++17", "-o", "main", "main.cpp"},
		run:     []string{"./main"},
	},
	challenge.Java: {
		source:  "Main.java",
		compile: []string{"javac", "Main.java"},
		run:     []string{"java", "-cp", ".", "Main"},
	},
}

// LocalJudge compiles and runs submissions with the toolchains installed
// on this machine, one temporary directory per submission. It does not
// sandbox the program.
type LocalJudge struct {
	caseTimeout    time.Duration
	compileTimeout time.Duration
	workDir        string
	logger         *slog.Logger
}

// LocalOption customizes a LocalJudge.
type LocalOption func(*LocalJudge)

// WithCaseTimeout sets the per test case time limit.
func WithCaseTimeout(d time.Duration) LocalOption {
	return func(j *LocalJudge) {
		if d > 0 {
			j.caseTimeout = d
		}
	}
}

// WithWorkDir sets the parent directory for submission dirs.
func WithWorkDir(dir string) LocalOption {
	return func(j *LocalJudge) { j.workDir = dir }
}

// WithJudgeLogger sets the logger.
func WithJudgeLogger(logger *slog.Logger) LocalOption {
	return func(j *LocalJudge) { j.logger = logger }
}

// NewLocalJudge creates a LocalJudge with default limits.
func NewLocalJudge(opts ...LocalOption) *LocalJudge {
	j := &LocalJudge{
		caseTimeout:    DefaultCaseTimeout,
		compileTimeout: DefaultCompileTimeout,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Available reports whether the toolchain for lang is installed.
func Available(lang challenge.Language) bool {
	tc, ok := toolchains[lang]
	if !ok {
		return false
	}
	for _, argv := range [][]string{tc.compile, tc.run} {
		if len(argv) == 0 || strings.HasPrefix(argv[0], "./") {
			continue
		}
		if _, err := exec.LookPath(argv[0]); err != nil {
			return false
		}
	}
	return true
}

// Run judges sub against every test case of c.
func (j *LocalJudge) Run(ctx context.Context, c challenge.Challenge, sub Submission) (*Result, error) {
	tc, ok := toolchains[sub.Language]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, sub.Language)
	}
	// Nothing to verify means nothing is solved.
	if len(c.TestCases) == 0 {
		return &Result{Error: NoTestCasesMessage}, nil
	}
	if !Available(sub.Language) {
		return nil, fmt.Errorf("%s toolchain not found on PATH", sub.Language.Label())
	}

	dir, err := os.MkdirTemp(j.workDir, "arena-sub-*")
	if err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(dir)

	if err := os.WriteFile(filepath.Join(dir, tc.source), []byte(sub.Code), 0o644); err != nil {
		return nil, fmt.Errorf("write source: %w", err)
	}

	j.logger.Debug("judging submission", "submission", sub.ID, "challenge", c.ID, "language", sub.Language, "cases", len(c.TestCases))

	if len(tc.compile) > 0 {
		cctx, cancel := context.WithTimeout(ctx, j.compileTimeout)
		out, runErr := execIn(cctx, dir, tc.compile, "")
		cancel()
		if runErr != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			msg := strings.TrimSpace(out.stderr)
			if msg == "" {
				msg = runErr.Error()
			}
			return &Result{Error: "compilation failed:\n" + msg}, nil
		}
	}

	res := &Result{Passed: true, Results: make([]CaseResult, 0, len(c.TestCases))}
	for _, t := range c.TestCases {
		cr := j.runCase(ctx, dir, tc.run, t)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if !cr.Passed {
			res.Passed = false
		}
		res.Results = append(res.Results, cr)
	}
	return res, nil
}

func (j *LocalJudge) runCase(ctx context.Context, dir string, argv []string, t challenge.TestCase) CaseResult {
	cr := CaseResult{Input: t.Input, Expected: t.Output}

	cctx, cancel := context.WithTimeout(ctx, j.caseTimeout)
	defer cancel()

	start := time.Now()
	out, err := execIn(cctx, dir, argv, t.Input)
	cr.TimeMs = time.Since(start).Milliseconds()
	cr.Actual = out.stdout

	switch {
	case errors.Is(cctx.Err(), context.DeadlineExceeded):
		cr.Error = fmt.Sprintf("time limit exceeded (%s)", j.caseTimeout)
	case err != nil:
		cr.Error = strings.TrimSpace(out.stderr)
		if cr.Error == "" {
			cr.Error = err.Error()
		}
	default:
		cr.Passed = SameOutput(out.stdout, t.Output)
	}
	return cr
}

type output struct {
	stdout string
	stderr string
}

func execIn(ctx context.Context, dir string, argv []string, stdin string) (output, error) {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Stdin = strings.NewReader(stdin)

	var stdout, stderr limitedBuffer
	stdout.max, stderr.max = maxOutputBytes, maxOutputBytes
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return output{stdout: stdout.String(), stderr: stderr.String()}, err
}

// limitedBuffer keeps the first max bytes written and drops the rest.
type limitedBuffer struct {
	bytes.Buffer
	max int
}

func (b *limitedBuffer) Write(p []byte) (int, error) {
	if room := b.max - b.Len(); room > 0 {
		if len(p) > room {
			b.Buffer.Write(p[:room])
		} else {
			b.Buffer.Write(p)
		}
	}
	return len(p), nil
}

// SameOutput compares program output with the expected text, ignoring
// trailing whitespace on each line, CRLF line endings and leading or
// trailing blank lines.
func SameOutput(actual, expected string) bool {
	return normalizeOutput(actual) == normalizeOutput(expected)
}

func normalizeOutput(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t\r")
	}
	return strings.Trim(strings.Join(lines, "\n"), "\n")
}
