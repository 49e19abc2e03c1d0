// Package merge flattens a collected section tree into one Markdown
// document.
//
// Each section contributes a numbered heading, its description, and a
// generated contents list; each page contributes a title heading and its
// body with relative links rewritten to absolute paths. Source text passes
// through otherwise unmodified, so the merged buffer is the concatenation of
// the inputs plus generated scaffolding and separators.
package merge

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/adrg/frontmatter"
	slug "github.com/goliatone/go-slug"

	"github.com/alnah/go-mdbundle/internal/collect"
)

// DefaultSeparator is the marker inserted between merged documents.
// A thematic break renders as a horizontal rule and doubles as a page-break
// hook for the stylesheet.
const DefaultSeparator = "\n\n---\n\n"

// DefaultContentsTitle heads the generated per-section contents list.
const DefaultContentsTitle = "Contents"

// ErrReadSource indicates a source file could not be read.
var ErrReadSource = errors.New("failed to read source file")

// Options control the shape of the merged document.
type Options struct {
	Separator      string // "" = DefaultSeparator
	SectionNumbers bool   // prefix section headings with "1.2.3" numbering
	Contents       bool   // emit per-section contents lists
	ContentsTitle  string // "" = DefaultContentsTitle
}

// DefaultOptions returns the options used by the CLI unless overridden.
func DefaultOptions() Options {
	return Options{
		Separator:      DefaultSeparator,
		SectionNumbers: true,
		Contents:       true,
		ContentsTitle:  DefaultContentsTitle,
	}
}

// Render flattens the section tree into a single Markdown document.
// Page order follows the tree order; output is deterministic for a fixed
// tree. Returns ErrReadSource (wrapped) if any page cannot be read.
func Render(root *collect.Section, opts Options) (string, error) {
	if opts.Separator == "" {
		opts.Separator = DefaultSeparator
	}
	if opts.ContentsTitle == "" {
		opts.ContentsTitle = DefaultContentsTitle
	}

	m := &merger{opts: opts, anchors: newAnchorSet()}
	if err := m.renderSection(root, []int{1}); err != nil {
		return "", err
	}
	return m.buf.String(), nil
}

// merger carries state through one Render call.
type merger struct {
	opts    Options
	buf     strings.Builder
	anchors *anchorSet
}

// renderSection emits one section and recurses into its subsections.
// number is the hierarchical section number, e.g. [1 2] for "1.2".
func (m *merger) renderSection(sec *collect.Section, number []int) error {
	secAnchor := m.anchors.make(sectionNumber(number), sec.Title)

	m.writeHeading(1, m.sectionTitle(sec, number), secAnchor)
	if sec.Description != "" {
		m.buf.WriteString(sec.Description + "\n")
	}

	// Pre-assign page anchors so the contents list and the page headings
	// agree.
	pageAnchors := make([]string, len(sec.Pages))
	for i, p := range sec.Pages {
		pageAnchors[i] = m.anchors.make(sectionNumber(number), pageTitle(p))
	}

	if m.opts.Contents && (len(sec.Pages) > 0 || len(sec.Subs) > 0) {
		m.writeContents(sec, pageAnchors)
	}
	m.buf.WriteString(m.opts.Separator)

	for i, p := range sec.Pages {
		if err := m.renderPage(p, pageAnchors[i]); err != nil {
			return err
		}
	}

	for i, sub := range sec.Subs {
		if err := m.renderSection(sub, append(number[:len(number):len(number)], i+1)); err != nil {
			return err
		}
	}

	if len(sec.Pages) == 0 && len(sec.Subs) == 0 {
		m.buf.WriteString("No content.")
		m.buf.WriteString(m.opts.Separator)
	}

	return nil
}

// writeContents emits the generated contents list for a section.
func (m *merger) writeContents(sec *collect.Section, pageAnchors []string) {
	m.writeHeading(2, m.opts.ContentsTitle, "")
	for i, p := range sec.Pages {
		m.writeContentsEntry(pageTitle(p), pageAnchors[i], p.Description)
	}
	for _, sub := range sec.Subs {
		desc := sub.Description
		if desc == "" {
			desc = "subsection"
		}
		m.writeContentsEntry(sub.Title, "", desc)
	}
}

// writeContentsEntry emits one bullet of a contents list.
// Entries with an anchor become links; subsection entries stay plain because
// their headings are emitted later with their own numbering.
func (m *merger) writeContentsEntry(title, anchor, description string) {
	m.buf.WriteString("* ")
	if anchor != "" {
		fmt.Fprintf(&m.buf, "[%s](#%s)", title, anchor)
	} else {
		m.buf.WriteString(title)
	}
	if description != "" {
		m.buf.WriteString(" - " + description)
	}
	m.buf.WriteString("\n\n")
}

// renderPage emits one page: a title heading, then the body with
// frontmatter stripped and relative links rewritten.
func (m *merger) renderPage(p collect.Page, anchor string) error {
	body, err := readBody(p.Path)
	if err != nil {
		return err
	}

	m.writeHeading(1, pageTitle(p), anchor)
	m.buf.WriteString(RewriteRelativeLinks(body, filepath.Dir(p.Path)))
	m.buf.WriteString(m.opts.Separator)
	return nil
}

// writeHeading emits a Markdown heading with an optional explicit anchor.
// Explicit {#id} attributes keep generated links stable across both the
// Goldmark and pandoc backends.
func (m *merger) writeHeading(level int, title, anchor string) {
	m.buf.WriteString(strings.Repeat("#", level) + " " + title)
	if anchor != "" {
		m.buf.WriteString(" {#" + anchor + "}")
	}
	m.buf.WriteString("\n\n")
}

// sectionTitle formats a section heading, with numbering when enabled.
func (m *merger) sectionTitle(sec *collect.Section, number []int) string {
	if !m.opts.SectionNumbers {
		return sec.Title
	}
	return fmt.Sprintf("%s %s", sectionNumber(number), sec.Title)
}

// sectionNumber renders [1 2 3] as "1.2.3".
func sectionNumber(number []int) string {
	parts := make([]string, len(number))
	for i, n := range number {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}

// pageTitle returns the display title of a page, falling back to the file
// name without extension.
func pageTitle(p collect.Page) string {
	if p.Title != "" {
		return p.Title
	}
	base := filepath.Base(p.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// readBody reads a page and strips its frontmatter block.
func readBody(path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- discovered path under user-provided dir
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadSource, err)
	}

	var discard struct{}
	body, err := frontmatter.Parse(bytes.NewReader(data), &discard)
	if err != nil {
		return "", fmt.Errorf("%w: %s: malformed frontmatter: %v", ErrReadSource, path, err)
	}
	return string(body), nil
}

// linkTargetPattern matches Markdown links and images, capturing the target.
// Group 1: opening through "(", group 2: target, group 3: optional title and
// closing ")".
var linkTargetPattern = regexp.MustCompile(`(!?\[[^\]]*\]\()\s*([^)\s]+)([^)]*\))`)

// RewriteRelativeLinks rewrites relative link and image targets in body so
// they stay valid once the page is flattened into the merged document.
// Targets are resolved against baseDir (the page's own directory) and
// emitted as absolute paths; URLs, anchors, and absolute paths pass through
// untouched. Fragments are preserved.
func RewriteRelativeLinks(body, baseDir string) string {
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		// Abs fails only when the working directory is gone; leave the
		// body untouched rather than emit garbage paths.
		return body
	}

	return linkTargetPattern.ReplaceAllStringFunc(body, func(match string) string {
		sub := linkTargetPattern.FindStringSubmatch(match)
		target := sub[2]
		if !isRelativeTarget(target) {
			return match
		}

		pathPart, fragment, _ := strings.Cut(target, "#")
		if fragment != "" {
			fragment = "#" + fragment
		}
		if pathPart == "" {
			return match
		}

		return sub[1] + filepath.ToSlash(filepath.Join(absBase, pathPart)) + fragment + sub[3]
	})
}

// isRelativeTarget reports whether a link target should be rewritten.
func isRelativeTarget(target string) bool {
	if target == "" {
		return false
	}

	// Anchors within the merged document.
	if strings.HasPrefix(target, "#") {
		return false
	}

	// URLs and protocol-relative references.
	if strings.Contains(target, "://") ||
		strings.HasPrefix(target, "//") ||
		strings.HasPrefix(target, "mailto:") ||
		strings.HasPrefix(target, "data:") {
		return false
	}

	// Already absolute.
	if strings.HasPrefix(target, "/") || filepath.IsAbs(target) {
		return false
	}

	return true
}

// anchorSet generates unique slug anchors for headings.
type anchorSet struct {
	seen map[string]int
}

func newAnchorSet() *anchorSet {
	return &anchorSet{seen: make(map[string]int)}
}

// make slugifies the joined parts and dedupes repeats with a numeric suffix.
func (a *anchorSet) make(parts ...string) string {
	base, err := slug.Normalize(strings.Join(parts, " "))
	if err != nil || base == "" {
		base = "section"
	}

	n := a.seen[base]
	a.seen[base] = n + 1
	if n == 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, n)
}
