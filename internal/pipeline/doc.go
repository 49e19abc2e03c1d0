// Package pipeline provides the pure text transforms that sit between
// merging and rendering: Markdown preprocessing, CSS injection, and
// rewriting of relative asset paths in rendered HTML.
package pipeline
