package challengegen

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/codearena/arena/internal/challenge"
	"github.com/google/uuid"
)

const untitled = "Untitled challenge"

// Warning is a non-fatal note about something the normalizer had to fix.
type Warning struct {
	ChallengeID string
	Field       string
	Index       int
	Message     string
}

func (w Warning) String() string {
	if w.Field == "" {
		return w.Message
	}
	return fmt.Sprintf("%s[%d]: %s", w.Field, w.Index, w.Message)
}

// Normalizer coerces loosely shaped model output into valid challenges.
// It never fails: absent fields get safe defaults and ill-typed ones are
// converted. Normalizing an already normalized challenge changes nothing.
type Normalizer struct {
	// Difficulty is written onto every challenge. Invalid values become Easy.
	Difficulty challenge.Difficulty

	// NewID mints identifiers for challenges that lack one. Defaults to
	// random UUIDs.
	NewID func() string
}

// NewNormalizer returns a Normalizer for the tier of level.
func NewNormalizer(level challenge.Level) *Normalizer {
	return &Normalizer{Difficulty: level.Difficulty()}
}

// Batch normalizes a parsed array of challenges, keeping at most n. Input
// that is not an array yields an empty batch. Elements that are not
// objects are dropped with a warning. Duplicate ids are replaced.
func (n *Normalizer) Batch(raw any, limit int) ([]challenge.Challenge, []Warning) {
	items, ok := raw.([]any)
	if !ok {
		return []challenge.Challenge{}, nil
	}
	if limit >= 0 && len(items) > limit {
		items = items[:limit]
	}

	out := make([]challenge.Challenge, 0, len(items))
	var warnings []Warning
	seen := make(map[string]bool)

	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			warnings = append(warnings, Warning{
				Field:   "batch",
				Index:   i,
				Message: fmt.Sprintf("dropped non-object element of type %T", item),
			})
			continue
		}

		c, ws := n.challenge(obj)
		if seen[c.ID] {
			old := c.ID
			c.ID = n.newID()
			ws = append(ws, Warning{ChallengeID: c.ID, Field: "id", Index: i, Message: fmt.Sprintf("duplicate id %q replaced", old)})
		}
		seen[c.ID] = true

		out = append(out, c)
		warnings = append(warnings, ws...)
	}
	return out, warnings
}

// Challenge normalizes a single parsed challenge. Non-object input is
// treated as an empty object.
func (n *Normalizer) Challenge(raw any) (challenge.Challenge, []Warning) {
	obj, _ := raw.(map[string]any)
	return n.challenge(obj)
}

func (n *Normalizer) challenge(obj map[string]any) (challenge.Challenge, []Warning) {
	c := challenge.Challenge{
		ID:           strings.TrimSpace(text(obj["id"])),
		Title:        strings.TrimSpace(text(obj["title"])),
		Description:  text(obj["description"]),
		Difficulty:   n.difficulty(),
		InputFormat:  text(obj["inputFormat"]),
		OutputFormat: text(obj["outputFormat"]),
		Constraints:  stringList(obj["constraints"]),
		Boilerplate:  challenge.CanonicalBoilerplate(),
	}
	if c.ID == "" {
		c.ID = n.newID()
	}
	if c.Title == "" {
		c.Title = untitled
	}

	c.TimeLimitSeconds = positiveInt(obj["timeLimit"])
	if c.TimeLimitSeconds <= 0 {
		c.TimeLimitSeconds = challenge.DefaultTimeLimitSeconds
	}

	var warnings []Warning
	note := func(field string, i int, msg string) {
		warnings = append(warnings, Warning{ChallengeID: c.ID, Field: field, Index: i, Message: msg})
	}

	c.Examples = []challenge.Example{}
	for i, item := range list(obj["examples"]) {
		ex, ok := item.(map[string]any)
		if !ok {
			note("examples", i, "dropped non-object example")
			continue
		}
		in, joinedIn := coerce(ex["input"])
		out, joinedOut := coerce(ex["output"])
		if joinedIn || joinedOut {
			note("examples", i, "joined list values with newlines")
		}
		c.Examples = append(c.Examples, challenge.Example{Input: in, Output: out, Explanation: text(ex["explanation"])})
	}

	c.TestCases = []challenge.TestCase{}
	for i, item := range list(obj["testCases"]) {
		tc, ok := item.(map[string]any)
		if !ok {
			note("testCases", i, "dropped non-object test case")
			continue
		}
		in, joinedIn := coerce(tc["input"])
		out, joinedOut := coerce(tc["output"])
		if joinedIn {
			note("testCases", i, "input was a list; joined with newlines")
		}
		if joinedOut {
			note("testCases", i, "output was a list; joined with newlines")
		}
		c.TestCases = append(c.TestCases, challenge.TestCase{Input: in, Output: out})
	}

	return c, warnings
}

func (n *Normalizer) difficulty() challenge.Difficulty {
	if n.Difficulty.Valid() {
		return n.Difficulty
	}
	return challenge.Easy
}

func (n *Normalizer) newID() string {
	if n.NewID != nil {
		return n.NewID()
	}
	return uuid.NewString()
}

// coerce renders any JSON value as text. Lists become one line per
// element; joined reports that this happened.
func coerce(v any) (s string, joined bool) {
	items, ok := v.([]any)
	if !ok {
		return text(v), false
	}
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = line(item)
	}
	return strings.Join(lines, "\n"), true
}

// line renders one list element. A nested list is one row with
// space-separated cells.
func line(v any) string {
	items, ok := v.([]any)
	if !ok {
		return text(v)
	}
	cells := make([]string, len(items))
	for i, item := range items {
		cells[i] = text(item)
	}
	return strings.Join(cells, " ")
}

// text renders a scalar as its literal JSON text; missing or null is "".
// Lists are joined with newlines and objects re-encoded compactly.
func text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case []any:
		s, _ := coerce(x)
		return s
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	}
}

func list(v any) []any {
	items, _ := v.([]any)
	return items
}

// stringList accepts a list or a single string. Empty entries are dropped.
func stringList(v any) []string {
	out := []string{}
	switch x := v.(type) {
	case []any:
		for _, item := range x {
			if s := line(item); s != "" {
				out = append(out, s)
			}
		}
	case nil:
	default:
		if s := text(x); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// positiveInt reads a whole number from a JSON number or numeric string.
// Anything else is 0.
func positiveInt(v any) int {
	var f float64
	switch x := v.(type) {
	case json.Number:
		parsed, err := x.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case float64:
		f = x
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	// The negated range check also rejects NaN.
	if !(f >= 1 && f <= math.MaxInt32) {
		return 0
	}
	return int(f)
}
