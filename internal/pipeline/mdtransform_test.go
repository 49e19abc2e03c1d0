package pipeline_test

import (
	"testing"

	"github.com/alnah/go-mdbundle/internal/pipeline"
)

func TestPreprocessMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "crlf to lf",
			content: "line one\r\nline two",
			want:    "line one\nline two",
		},
		{
			name:    "bare cr to lf",
			content: "line one\rline two",
			want:    "line one\nline two",
		},
		{
			name:    "collapse blank runs",
			content: "a\n\n\n\n\nb",
			want:    "a\n\nb",
		},
		{
			name:    "double blank preserved",
			content: "a\n\nb",
			want:    "a\n\nb",
		},
		{
			name:    "mixed endings and blanks",
			content: "a\r\n\r\n\r\nb",
			want:    "a\n\nb",
		},
		{
			name:    "empty input",
			content: "",
			want:    "",
		},
		{
			name:    "content untouched",
			content: "# Title\n\nSome *emphasis* and `code`.",
			want:    "# Title\n\nSome *emphasis* and `code`.",
		},
		{
			name:    "blank runs inside fenced code preserved",
			content: "```\nfirst\n\n\n\nlast\n```",
			want:    "```\nfirst\n\n\n\nlast\n```",
		},
		{
			name:    "tilde fence preserved",
			content: "~~~\na\n\n\nb\n~~~",
			want:    "~~~\na\n\n\nb\n~~~",
		},
		{
			name:    "prose around a fence still collapses",
			content: "before\n\n\n\n```\nx\n\n\ny\n```\n\n\n\nafter",
			want:    "before\n\n```\nx\n\n\ny\n```\n\nafter",
		},
		{
			name:    "indented fence preserved",
			content: "  ```\na\n\n\nb\n  ```",
			want:    "  ```\na\n\n\nb\n  ```",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := pipeline.PreprocessMarkdown(tt.content); got != tt.want {
				t.Errorf("PreprocessMarkdown(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}
