// Package models holds the static model registry: the closed set of Groq
// model identifiers the chat endpoint accepts, with per-model reasoning
// metadata. The table is process-wide read-only state built at init and never
// mutated.
package models

import "fmt"

// Model is the metadata record for one servable model.
type Model struct {
	ID           string // Groq model identifier, unique within the registry
	DisplayName  string // shown by the model picker and `excelaipro models`
	Reasoning    bool   // raw output interleaves a thinking trace with the answer
	ReasoningTag string // tag delimiting the thinking trace, e.g. "think"
}

// Label returns the display name, defaulting to the identifier.
func (m Model) Label() string {
	if m.DisplayName != "" {
		return m.DisplayName
	}
	return m.ID
}

// ---------------------------------------------------------------------------
// MODELS is the registry. Order = presentation order in the picker.
// ---------------------------------------------------------------------------

var MODELS = []Model{
	{
		ID:           "qwen-qwq-32b",
		DisplayName:  "Qwen QwQ 32B",
		Reasoning:    true,
		ReasoningTag: "think",
	},
	{
		ID:           "qwen/qwen3-32b",
		DisplayName:  "Qwen3 32B",
		Reasoning:    true,
		ReasoningTag: "think",
	},
	{
		ID:           "deepseek-r1-distill-llama-70b",
		DisplayName:  "DeepSeek R1 Distill Llama 70B",
		Reasoning:    true,
		ReasoningTag: "think",
	},
	{
		ID:          "llama-3.1-8b-instant",
		DisplayName: "Llama 3.1 8B Instant",
	},
	{
		ID:          "llama-3.3-70b-versatile",
		DisplayName: "Llama 3.3 70B Versatile",
	},
	{
		ID:          "mistral-saba-24b",
		DisplayName: "Mistral Saba 24B",
	},
	{
		ID:          "distil-whisper-large-v3-en",
		DisplayName: "Distil Whisper Large v3 (EN)",
	},
}

// DefaultID is the model selected when the client does not pick one.
// Always a member of IDs().
const DefaultID = "qwen-qwq-32b"

var byID = func() map[string]Model {
	m := make(map[string]Model, len(MODELS))
	for _, spec := range MODELS {
		m[spec.ID] = spec
	}
	return m
}()

// Resolve returns the model for id. An unrecognised identifier fails; there
// is no silent fallback to the default.
func Resolve(id string) (Model, error) {
	m, ok := byID[id]
	if !ok {
		return Model{}, fmt.Errorf("%w: %q", ErrUnknownModel, id)
	}
	return m, nil
}

// IDs returns the ordered list of valid model identifiers.
func IDs() []string {
	out := make([]string, len(MODELS))
	for i, m := range MODELS {
		out[i] = m.ID
	}
	return out
}

// IsReasoning reports whether id belongs to the reasoning subset. Membership
// is a real set test on the registry table, queryable without resolving.
func IsReasoning(id string) bool {
	m, ok := byID[id]
	return ok && m.Reasoning
}
