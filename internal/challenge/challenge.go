// Package challenge defines coding challenges, the difficulty tiers they are
// served at, and the batches a practice session consumes.
package challenge

// Difficulty is the internal tier token carried by every challenge.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Valid reports whether d is one of the three known tiers.
func (d Difficulty) Valid() bool {
	switch d {
	case Easy, Medium, Hard:
		return true
	}
	return false
}

// Example is a worked sample shown with the problem statement.
type Example struct {
	Input       string `json:"input"`
	Output      string `json:"output"`
	Explanation string `json:"explanation"`
}

// TestCase is one judged input/expected-output pair. Both sides are the
// exact text fed to and expected from the program.
type TestCase struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

// Challenge is a self-contained coding problem.
type Challenge struct {
	ID               string              `json:"id"`
	Title            string              `json:"title"`
	Description      string              `json:"description"`
	Difficulty       Difficulty          `json:"difficulty"`
	TimeLimitSeconds int                 `json:"timeLimit"`
	InputFormat      string              `json:"inputFormat"`
	OutputFormat     string              `json:"outputFormat"`
	Constraints      []string            `json:"constraints"`
	Examples         []Example           `json:"examples"`
	TestCases        []TestCase          `json:"testCases"`
	Boilerplate      map[Language]string `json:"boilerplateCode"`
}

// DefaultTimeLimitSeconds is used when a challenge does not state a limit.
const DefaultTimeLimitSeconds = 300

// Stub returns the starter code for lang, falling back to the canonical
// stub when the challenge carries none.
func (c Challenge) Stub(lang Language) string {
	if s, ok := c.Boilerplate[lang]; ok {
		return s
	}
	return CanonicalStub(lang)
}

// Clone returns a deep copy of c.
func (c Challenge) Clone() Challenge {
	out := c
	out.Constraints = append([]string(nil), c.Constraints...)
	out.Examples = append([]Example(nil), c.Examples...)
	out.TestCases = append([]TestCase(nil), c.TestCases...)
	if c.Boilerplate != nil {
		out.Boilerplate = make(map[Language]string, len(c.Boilerplate))
		for k, v := range c.Boilerplate {
			out.Boilerplate[k] = v
		}
	}
	return out
}
