// Package judge runs submitted programs against a challenge's test cases.
package judge

import (
	"context"

	"github.com/codearena/arena/internal/challenge"
)

// Submission is one program handed in during a practice session. The
// session ID and challenge index route the result back to the session
// that asked for it.
type Submission struct {
	ID             string
	SessionID      string
	ChallengeIndex int
	ChallengeID    string
	Language       challenge.Language
	Code           string
}

// CaseResult is the outcome of one test case.
type CaseResult struct {
	Input    string
	Expected string
	Actual   string
	Passed   bool
	Error    string
	TimeMs   int64
}

// Result is the verdict on a submission. Error holds a judge-level
// failure (compilation, missing toolchain) and implies Passed is false.
type Result struct {
	Passed  bool
	Results []CaseResult
	Error   string
}

// PassedCount returns how many cases passed.
func (r *Result) PassedCount() int {
	n := 0
	for _, c := range r.Results {
		if c.Passed {
			n++
		}
	}
	return n
}

// Judge evaluates a submission against a challenge.
type Judge interface {
	// Run returns an error only when the submission could not be judged
	// at all; failing programs are reported inside the Result.
	Run(ctx context.Context, c challenge.Challenge, sub Submission) (*Result, error)
}

// Func adapts a plain function to the Judge interface.
type Func func(ctx context.Context, c challenge.Challenge, sub Submission) (*Result, error)

// Run calls f.
func (f Func) Run(ctx context.Context, c challenge.Challenge, sub Submission) (*Result, error) {
	return f(ctx, c, sub)
}
