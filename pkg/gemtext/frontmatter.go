package gemtext

import (
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
)

// FrontMatterDelimiter separates a document's front matter from its body.
const FrontMatterDelimiter = "+++"

// StripFrontMatter removes a front matter block from markdown.
//
// The text is split on FrontMatterDelimiter into at most three segments. A
// single segment is returned unchanged, two segments yield the second, and
// three yield the third (everything after the second delimiter).
func StripFrontMatter(markdown string) string {
	segments := strings.SplitN(markdown, FrontMatterDelimiter, 3)
	switch len(segments) {
	case 1:
		return segments[0]
	case 2:
		return segments[1]
	default:
		return segments[2]
	}
}

// Metadata is the subset of front matter fields exarch understands.
type Metadata struct {
	Title       string `toml:"title" yaml:"title"`
	Description string `toml:"description" yaml:"description"`
	Draft       bool   `toml:"draft" yaml:"draft"`
}

// ParseMetadata decodes a leading TOML (+++) or YAML (---) front matter block.
// The boolean result reports whether markdown starts with front matter at all.
func ParseMetadata(markdown string) (Metadata, bool, error) {
	var meta Metadata
	if !strings.HasPrefix(markdown, FrontMatterDelimiter) && !strings.HasPrefix(markdown, "---") {
		return meta, false, nil
	}

	if _, err := frontmatter.Parse(strings.NewReader(markdown), &meta); err != nil {
		return Metadata{}, true, fmt.Errorf("parse front matter: %w", err)
	}
	return meta, true, nil
}
