package pipeline

import "strings"

// InjectCSS inserts css as a <style> block into an HTML document.
// Prefers the end of <head>; falls back to prepending a style block when the
// document has no head (defensive: both backends emit one).
func InjectCSS(htmlContent, css string) string {
	if css == "" {
		return htmlContent
	}

	styleBlock := "<style>\n" + css + "\n</style>"

	if idx := strings.Index(strings.ToLower(htmlContent), "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + "\n" + htmlContent[idx:]
	}

	return styleBlock + "\n" + htmlContent
}
