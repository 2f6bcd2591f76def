package challengegen

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr error
		isArray bool
	}{
		{name: "bare object", text: `{"title":"Pair Sum"}`},
		{name: "bare array", text: `[{"title":"Pair Sum"}]`, isArray: true},
		{name: "surrounding whitespace", text: "\n  [ ]  \n", isArray: true},
		{name: "fenced", text: "Here you go:\n```json\n[{\"title\":\"Pair Sum\"}]\n```\nEnjoy!", isArray: true},
		{name: "first fence wins", text: "```json\n{\"title\":\"A\"}\n```\n```json\n{\"title\":\"B\"}\n```"},
		{name: "empty", text: "", wantErr: ErrEmptyResponse},
		{name: "whitespace only", text: " \n\t", wantErr: ErrEmptyResponse},
		{name: "prose", text: "no json here", wantErr: ErrUnparsableResponse},
		{name: "bare fence without json tag", text: "```\n{\"title\":\"A\"}\n```", wantErr: ErrUnparsableResponse},
		{name: "broken fenced json", text: "```json\n{\"title\":\n```", wantErr: ErrUnparsableResponse},
		{name: "scalar", text: "42", wantErr: ErrUnparsableResponse},
		{name: "trailing prose", text: `{"title":"A"} hope this helps`, wantErr: ErrUnparsableResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(tt.text)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			_, isArray := got.([]any)
			if isArray != tt.isArray {
				t.Fatalf("got %T, want array=%v", got, tt.isArray)
			}
		})
	}
}

func TestExtract_FirstFence(t *testing.T) {
	got, err := Extract("```json\n{\"title\":\"A\"}\n```\n```json\n{\"title\":\"B\"}\n```")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.(map[string]any)["title"] != "A" {
		t.Fatalf("expected the first fenced block, got %v", got)
	}
}

func TestExtract_KeepsNumberText(t *testing.T) {
	got, err := Extract(`{"timeLimit": 300, "big": 12345678901234567890}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	obj := got.(map[string]any)
	if n, ok := obj["big"].(json.Number); !ok || n.String() != "12345678901234567890" {
		t.Fatalf("big number lost precision: %#v", obj["big"])
	}
}

func TestExtract_FencedRoundTrip(t *testing.T) {
	value := []any{map[string]any{"title": "Pair Sum", "testCases": []any{}}}
	encoded, err := json.Marshal(value)
	if err != nil {
		t.Fatal(err)
	}

	got, err := Extract("```json\n" + string(encoded) + "\n```")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	reencoded, _ := json.Marshal(got)
	if string(reencoded) != string(encoded) {
		t.Fatalf("round trip mismatch:\n got %s\nwant %s", reencoded, encoded)
	}
}
