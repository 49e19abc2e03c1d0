package pipeline

import (
	"regexp"
	"strings"
)

// Line ending normalization.
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// PreprocessMarkdown normalizes merged Markdown before conversion: CRLF/CR
// become LF and runs of blank lines collapse to one. Fenced code blocks pass
// through untouched; blank lines inside them are content.
func PreprocessMarkdown(content string) string {
	content = crlfOrCR.ReplaceAllString(content, "\n")

	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	inFence := false
	marker := ""
	blanks := 0

	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " ")
		switch {
		case !inFence && (strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~")):
			inFence = true
			marker = trimmed[:3]
		case inFence && strings.HasPrefix(trimmed, marker):
			inFence = false
		}

		if line == "" && !inFence {
			blanks++
			if blanks > 1 {
				continue
			}
		} else {
			blanks = 0
		}
		out = append(out, line)
	}

	return strings.Join(out, "\n")
}
