// Package fallback serves a fixed, pre-validated challenge set when the
// model cannot provide one.
package fallback

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/codearena/arena/internal/challenge"
)

//go:embed challenges.json
var embedded []byte

// ErrUnavailable means the fallback set has nothing to serve.
var ErrUnavailable = errors.New("no fallback challenges available")

// Set is an immutable collection of sample challenges.
type Set struct {
	challenges []challenge.Challenge
	pick       func(n int) int
}

// Default loads the embedded sample set.
func Default() (*Set, error) {
	return Load(embedded)
}

// Load parses a JSON array of challenges. Every entry is given the
// canonical starter code and must pass challenge.Validate.
func Load(data []byte) (*Set, error) {
	var cs []challenge.Challenge
	if err := json.Unmarshal(data, &cs); err != nil {
		return nil, fmt.Errorf("parse fallback set: %w", err)
	}

	seen := make(map[string]bool, len(cs))
	for i := range cs {
		c := &cs[i]
		c.Boilerplate = challenge.CanonicalBoilerplate()
		if c.TimeLimitSeconds <= 0 {
			c.TimeLimitSeconds = challenge.DefaultTimeLimitSeconds
		}
		if err := challenge.Validate(*c); err != nil {
			return nil, fmt.Errorf("fallback challenge %d: %w", i, err)
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("fallback challenge %d: duplicate id %q", i, c.ID)
		}
		seen[c.ID] = true
	}

	return &Set{challenges: cs, pick: rand.IntN}, nil
}

// Len returns the number of challenges in the set.
func (s *Set) Len() int { return len(s.challenges) }

// Batch returns up to n challenges at level's difficulty. Only when that
// tier runs short is it topped up, from the nearest tier first (easier
// before harder on a tie).
func (s *Set) Batch(n int, level challenge.Level) (challenge.Batch, error) {
	if len(s.challenges) == 0 {
		return challenge.Batch{}, ErrUnavailable
	}
	n = max(n, 1)

	want := tierRank(level.Difficulty())
	byTier := make([][]challenge.Challenge, len(tiers))
	for _, c := range s.challenges {
		r := tierRank(c.Difficulty)
		byTier[r] = append(byTier[r], c)
	}

	out := make([]challenge.Challenge, 0, n)
	for _, r := range tiersByDistance(want) {
		for _, c := range byTier[r] {
			if len(out) == n {
				return challenge.NewBatch(out, challenge.ProvenanceFallback), nil
			}
			out = append(out, c)
		}
	}
	return challenge.NewBatch(out, challenge.ProvenanceFallback), nil
}

var tiers = []challenge.Difficulty{challenge.Easy, challenge.Medium, challenge.Hard}

func tierRank(d challenge.Difficulty) int {
	for i, t := range tiers {
		if t == d {
			return i
		}
	}
	return 0
}

// tiersByDistance orders tier ranks by distance from want.
func tiersByDistance(want int) []int {
	order := []int{want}
	for dist := 1; dist < len(tiers); dist++ {
		if lo := want - dist; lo >= 0 {
			order = append(order, lo)
		}
		if hi := want + dist; hi < len(tiers) {
			order = append(order, hi)
		}
	}
	return order
}

// Challenge picks one challenge at level's difficulty, or any challenge
// when that tier is empty.
func (s *Set) Challenge(level challenge.Level) (challenge.Challenge, error) {
	if len(s.challenges) == 0 {
		return challenge.Challenge{}, ErrUnavailable
	}

	want := level.Difficulty()
	var pool []challenge.Challenge
	for _, c := range s.challenges {
		if c.Difficulty == want {
			pool = append(pool, c)
		}
	}
	if len(pool) == 0 {
		pool = s.challenges
	}
	return pool[s.pick(len(pool))].Clone(), nil
}
