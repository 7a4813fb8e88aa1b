package utils

import "testing"

func TestCleanMarkdownStripsFences(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"```markdown\n# Plan\nAsk for $500 more down.\n```", "# Plan\nAsk for $500 more down."},
		{"```md\ntext\n```", "text"},
		{"```\ntext\n```", "text"},
		{"plain advice, no fences", "plain advice, no fences"},
		{"  padded  ", "padded"},
	}
	for _, c := range cases {
		if got := CleanMarkdown(c.in); got != c.want {
			t.Errorf("CleanMarkdown(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestValidateMarkdown(t *testing.T) {
	if !ValidateMarkdown("# Strategy\n\n- more down\n- longer term") {
		t.Error("well-formed markdown should validate")
	}
	if !ValidateMarkdown("") {
		t.Error("empty input still parses as markdown")
	}
}
