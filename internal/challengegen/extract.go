package challengegen

import (
	"encoding/json"
	"errors"
	"io"
	"regexp"
	"strings"
)

var (
	// ErrEmptyResponse means the model returned no text at all.
	ErrEmptyResponse = errors.New("model returned no content")

	// ErrUnparsableResponse means neither the whole reply nor a fenced
	// json block in it decoded to a JSON object or array.
	ErrUnparsableResponse = errors.New("model reply is not JSON")
)

// jsonFence matches the first ```json fenced block, non-greedy.
var jsonFence = regexp.MustCompile("(?s)```json(.*?)```")

// Extract recovers a JSON object or array from a model reply. It tries the
// whole text first, then the contents of the first ```json fence. Numbers
// are kept as json.Number so their literal text survives normalization.
func Extract(text string) (any, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyResponse
	}

	if v, ok := decodeStructured(text); ok {
		return v, nil
	}

	if m := jsonFence.FindStringSubmatch(text); m != nil {
		if v, ok := decodeStructured(m[1]); ok {
			return v, nil
		}
	}

	return nil, ErrUnparsableResponse
}

// decodeStructured parses s as exactly one JSON value and reports whether
// it is an object or an array.
func decodeStructured(s string) (any, bool) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	// Trailing content means the text was not a single JSON document.
	if _, err := dec.Token(); err != io.EOF {
		return nil, false
	}

	switch v.(type) {
	case map[string]any, []any:
		return v, true
	}
	return nil, false
}
