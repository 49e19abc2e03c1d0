// Package collect walks a documentation tree and builds an ordered section
// hierarchy from its Markdown files.
//
// Ordering is total and deterministic: siblings sort by frontmatter weight
// ascending, ties broken by name. Repeated walks over unchanged input yield
// identical trees.
package collect

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
)

// IndexFileName names the file that carries a directory's section metadata.
// It contributes title, weight, and description but is not a content page.
const IndexFileName = "_index.md"

// Sentinel errors for collection.
var (
	ErrSourceNotFound = errors.New("source directory not found")
	ErrNotDirectory   = errors.New("source path is not a directory")
)

// Meta is the frontmatter subset the collector cares about.
// Unknown frontmatter fields are ignored.
type Meta struct {
	Title       string `yaml:"title"`
	Weight      int    `yaml:"weight"`
	Description string `yaml:"description"`
}

// Page is a single Markdown content file.
type Page struct {
	Path        string // absolute or caller-relative path to the file
	Title       string // frontmatter title, "" if none
	Weight      int
	Description string
}

// Section is a directory of the documentation tree.
type Section struct {
	Dir         string
	Title       string // from _index.md, falls back to the directory name
	Weight      int
	Description string
	Pages       []Page
	Subs        []*Section
}

// PageCount returns the number of content pages in the section and all
// subsections.
func (s *Section) PageCount() int {
	n := len(s.Pages)
	for _, sub := range s.Subs {
		n += sub.PageCount()
	}
	return n
}

// Walk builds the section tree rooted at dir.
// Returns ErrSourceNotFound if dir does not exist and ErrNotDirectory if it
// is not a directory. Non-Markdown files are silently skipped; hidden
// directories (leading dot) are not descended into.
func Walk(dir string) (*Section, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, dir)
		}
		return nil, fmt.Errorf("inspecting %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	return walkDir(dir)
}

// walkDir recursively builds a Section from one directory.
func walkDir(dir string) (*Section, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}

	sec := &Section{
		Dir:   dir,
		Title: filepath.Base(dir),
	}

	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		path := filepath.Join(dir, name)

		if entry.IsDir() {
			sub, err := walkDir(path)
			if err != nil {
				return nil, err
			}
			sec.Subs = append(sec.Subs, sub)
			continue
		}

		if !IsMarkdownFile(name) {
			continue
		}

		meta := readMeta(path)
		if name == IndexFileName {
			if meta.Title != "" {
				sec.Title = meta.Title
			}
			sec.Weight = meta.Weight
			sec.Description = meta.Description
			continue
		}

		sec.Pages = append(sec.Pages, Page{
			Path:        path,
			Title:       meta.Title,
			Weight:      meta.Weight,
			Description: meta.Description,
		})
	}

	sortPages(sec.Pages)
	sortSections(sec.Subs)

	return sec, nil
}

// readMeta parses frontmatter metadata from a Markdown file.
// Unreadable or malformed headers degrade to empty metadata; the merger
// reports read failures when it consumes the file content.
func readMeta(path string) Meta {
	var meta Meta
	f, err := os.Open(path) // #nosec G304 -- discovered path under user-provided dir
	if err != nil {
		return meta
	}
	defer f.Close()

	if _, err := frontmatter.Parse(f, &meta); err != nil {
		return Meta{}
	}
	return meta
}

// sortPages orders pages by weight ascending, then by file name.
func sortPages(pages []Page) {
	sort.SliceStable(pages, func(i, j int) bool {
		if pages[i].Weight != pages[j].Weight {
			return pages[i].Weight < pages[j].Weight
		}
		return filepath.Base(pages[i].Path) < filepath.Base(pages[j].Path)
	})
}

// sortSections orders subsections by weight ascending, then by directory name.
func sortSections(subs []*Section) {
	sort.SliceStable(subs, func(i, j int) bool {
		if subs[i].Weight != subs[j].Weight {
			return subs[i].Weight < subs[j].Weight
		}
		return filepath.Base(subs[i].Dir) < filepath.Base(subs[j].Dir)
	})
}

// IsMarkdownFile reports whether name has a Markdown extension.
func IsMarkdownFile(name string) bool {
	ext := filepath.Ext(name)
	return ext == ".md" || ext == ".markdown"
}
