package fallback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codearena/arena/internal/challenge"
)

func TestDefaultSetIsValid(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)
	require.GreaterOrEqual(t, s.Len(), 15)

	tiers := map[challenge.Difficulty]int{}
	for _, c := range s.challenges {
		tiers[c.Difficulty]++
		assert.Equal(t, challenge.CanonicalBoilerplate(), c.Boilerplate, c.ID)
		assert.GreaterOrEqual(t, len(c.TestCases), 3, c.ID)
		assert.Equal(t, challenge.DefaultTimeLimitSeconds, c.TimeLimitSeconds, c.ID)
	}
	for _, d := range []challenge.Difficulty{challenge.Easy, challenge.Medium, challenge.Hard} {
		assert.GreaterOrEqual(t, tiers[d], 5, "too few %s challenges for a full session", d)
	}
}

func TestDefaultBatchStaysInTier(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)

	for _, level := range []challenge.Level{challenge.Beginner, challenge.Intermediate, challenge.Advanced} {
		b, err := s.Batch(5, level)
		require.NoError(t, err)
		assert.Equal(t, challenge.ProvenanceFallback, b.Provenance())
		require.Equal(t, 5, b.Len(), level)
		for _, c := range b.Challenges() {
			assert.Equal(t, level.Difficulty(), c.Difficulty, "%s got %s", level, c.ID)
		}
	}
}

func TestBatchTopsUpFromNearestTier(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)

	b, err := s.Batch(7, challenge.Advanced)
	require.NoError(t, err)
	cs := b.Challenges()
	require.Len(t, cs, 7)
	for _, c := range cs[:5] {
		assert.Equal(t, challenge.Hard, c.Difficulty)
	}
	assert.Equal(t, challenge.Medium, cs[5].Difficulty)
	assert.Equal(t, challenge.Medium, cs[6].Difficulty)

	b, err = s.Batch(6, challenge.Intermediate)
	require.NoError(t, err)
	assert.Equal(t, challenge.Easy, b.Challenges()[5].Difficulty)
}

func TestBatchCappedAtSetSize(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)

	b, err := s.Batch(100, challenge.Beginner)
	require.NoError(t, err)
	assert.Equal(t, s.Len(), b.Len())
}

func TestChallengeMatchesTier(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)
	s.pick = func(n int) int { return n - 1 }

	c, err := s.Challenge(challenge.Intermediate)
	require.NoError(t, err)
	assert.Equal(t, challenge.Medium, c.Difficulty)
	assert.Equal(t, "sample-range-sums", c.ID)
}

func TestChallengeReturnsCopy(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)
	s.pick = func(int) int { return 0 }

	c, err := s.Challenge(challenge.Beginner)
	require.NoError(t, err)
	c.TestCases[0].Output = "changed"

	again, err := s.Challenge(challenge.Beginner)
	require.NoError(t, err)
	assert.NotEqual(t, "changed", again.TestCases[0].Output)
}

func TestEmptySetUnavailable(t *testing.T) {
	s, err := Load([]byte(`[]`))
	require.NoError(t, err)

	_, err = s.Batch(3, challenge.Beginner)
	assert.ErrorIs(t, err, ErrUnavailable)
	_, err = s.Challenge(challenge.Beginner)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{`},
		{"missing title", `[{"id":"a","description":"","difficulty":"easy","inputFormat":"","outputFormat":"","constraints":[],"examples":[],"testCases":[]}]`},
		{"bad difficulty", `[{"id":"a","title":"A","description":"","difficulty":"extreme","inputFormat":"","outputFormat":"","constraints":[],"examples":[],"testCases":[]}]`},
		{"duplicate id", `[
			{"id":"a","title":"A","description":"","difficulty":"easy","inputFormat":"","outputFormat":"","constraints":[],"examples":[],"testCases":[]},
			{"id":"a","title":"B","description":"","difficulty":"easy","inputFormat":"","outputFormat":"","constraints":[],"examples":[],"testCases":[]}
		]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}
