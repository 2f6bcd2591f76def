package challengegen

import (
	"fmt"
	"strings"

	"github.com/codearena/arena/internal/challenge"
)

const systemPrompt = `You are a problem setter for a competitive programming practice site.
You write original, self-contained problems that read input from standard input and print to standard output.
You answer with JSON only.`

// deniedArchetypes are problem types the model must not produce; they are
// overrepresented in its training data and make for repetitive sessions.
var deniedArchetypes = []string{
	"reversing a string",
	"checking whether a string is a palindrome",
	"checking whether two strings are anagrams",
}

// schemaFields lists the output fields in the order they are described
// to the model.
var schemaFields = []struct {
	name string
	desc string
}{
	{"id", "string, a short unique identifier"},
	{"title", "string"},
	{"description", "string, the full problem statement"},
	{"difficulty", "string, exactly %q"},
	{"timeLimit", fmt.Sprintf("integer seconds, use %d", challenge.DefaultTimeLimitSeconds)},
	{"inputFormat", "string"},
	{"outputFormat", "string"},
	{"constraints", "array of strings"},
	{"examples", "array of objects with string fields input, output, explanation"},
	{"testCases", "array of at least 3 objects with string fields input and output; input is the exact stdin text, output the exact expected stdout"},
	{"boilerplateCode", "object with string fields python, cpp, java"},
}

// PromptInput is what the builder needs to phrase a request.
type PromptInput struct {
	// Count is the number of challenges wanted. 1 asks for a single object.
	Count int

	// Level is the user-facing difficulty label.
	Level challenge.Level

	// Avoid lists titles served recently that should not be repeated.
	Avoid []string
}

// BuildPrompt phrases the generation request. It is a pure function of
// its input.
func BuildPrompt(in PromptInput, maxAvoid int) string {
	count := in.Count
	if count < 1 {
		count = 1
	}
	difficulty := in.Level.Difficulty()

	var b strings.Builder

	if count == 1 {
		fmt.Fprintf(&b, "Create one %s coding challenge.\n", difficulty)
	} else {
		fmt.Fprintf(&b, "Create %d distinct %s coding challenges.\n", count, difficulty)
	}

	b.WriteString("\nEach challenge is a JSON object with these fields:\n")
	for _, f := range schemaFields {
		desc := f.desc
		if f.name == "difficulty" {
			desc = fmt.Sprintf(desc, difficulty)
		}
		fmt.Fprintf(&b, "- %s: %s\n", f.name, desc)
	}

	fmt.Fprintf(&b, "\nDifficulty: %s\n", difficulty)

	b.WriteString("\nDo NOT generate any of these classic problems:\n")
	for _, a := range deniedArchetypes {
		fmt.Fprintf(&b, "- %s\n", a)
	}

	b.WriteString("\nRecently served, do not repeat:\n")
	b.WriteString(buildAvoidList(in.Avoid, maxAvoid))
	b.WriteString("\n")

	if count == 1 {
		b.WriteString("\nReturn only the JSON object. No markdown, no explanation, no text before or after it.")
	} else {
		fmt.Fprintf(&b, "\nReturn only a JSON array of exactly %d objects. No markdown, no explanation, no text before or after it.", count)
	}

	return b.String()
}

// buildAvoidList formats recent titles for the prompt, keeping the first
// max entries (callers pass them most recent first). Returns "None" when
// there is nothing to avoid.
func buildAvoidList(titles []string, max int) string {
	if len(titles) == 0 {
		return "None"
	}
	if max > 0 && len(titles) > max {
		titles = titles[:max]
	}

	var b strings.Builder
	for i, t := range titles {
		fmt.Fprintf(&b, "%d. %s\n", i+1, t)
	}
	return strings.TrimRight(b.String(), "\n")
}
