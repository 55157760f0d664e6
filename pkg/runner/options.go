// Package runner converts a tree of Markdown documents into a tree of Gemtext
// documents.
package runner

// GemtextExt is the extension given to every converted document.
const GemtextExt = ".gmi"

// Options controls a tree build.
type Options struct {
	// Root is the directory holding the Markdown sources.
	Root string

	// Output is the directory the Gemtext tree is written to. It is created
	// if missing.
	Output string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// considered Markdown. Defaults to [".md", ".markdown"] via DefaultExtensions().
	Extensions []string

	// ExcludeGlobs are glob patterns, relative to Root, used to skip files or
	// directories.
	ExcludeGlobs []string

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.GOMAXPROCS(0)).
	Jobs int
}

// DefaultExtensions returns the default set of Markdown file extensions.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

// effectiveExtensions returns the extensions to use, defaulting if empty.
func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}
