package llmutils

import (
	"testing"

	"github.com/excelaipro/excelaipro/internal/schema"
)

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Truncate = %q", got)
	}
	if got := Truncate("exactly-ten", 11); got != "exactly-ten" {
		t.Errorf("Truncate = %q", got)
	}
	if got := Truncate("a very long string", 6); got != "a very..." {
		t.Errorf("Truncate = %q", got)
	}
}

func TestStripThink(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"<think>reasoning here</think>The answer is 42.", "The answer is 42."},
		{"<think>multi\nline\ntrace</think>\n\nAnswer.", "Answer."},
		{"no tags at all", "no tags at all"},
		{"<think>a</think>mid<think>b</think>dle", "middle"},
		{"  padded  ", "padded"},
	}
	for _, tc := range cases {
		if got := StripThink(tc.in); got != tc.want {
			t.Errorf("StripThink(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestToolHint(t *testing.T) {
	hint := ToolHint([]schema.ToolCall{
		{Name: "read_sheet", Arguments: map[string]any{"range": "A1:A2"}},
		{Name: "showAllExcelTools", Arguments: map[string]any{}},
	})
	if hint != `read_sheet("A1:A2"), showAllExcelTools` {
		t.Errorf("hint = %q", hint)
	}
}
