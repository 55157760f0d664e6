package fsutil

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// MarkdownExt is appended to extensionless request paths that do not exist
// as given.
const MarkdownExt = ".md"

// DefaultIndexFiles are tried, in order, when a request names a directory.
//
//nolint:gochecknoglobals // Read-only default.
var DefaultIndexFiles = []string{"index.md", "_index.md"}

// Resolver maps request paths onto files beneath a root directory.
// The zero value is not usable; use NewResolver.
type Resolver struct {
	root       string
	realRoot   string
	indexFiles []string
}

// NewResolver creates a resolver for root. A nil indexFiles selects
// DefaultIndexFiles.
func NewResolver(root string, indexFiles []string) (*Resolver, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %s: %w", root, err)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, classify("resolve root", abs, err)
	}

	stat, err := os.Stat(resolved)
	if err != nil {
		return nil, classify("stat root", resolved, err)
	}
	if !stat.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", root)
	}

	if indexFiles == nil {
		indexFiles = DefaultIndexFiles
	}

	return &Resolver{
		root:       abs,
		realRoot:   resolved,
		indexFiles: append([]string(nil), indexFiles...),
	}, nil
}

// Root returns the absolute root directory.
func (r *Resolver) Root() string {
	return r.root
}

// Resolve returns the file that serves urlPath.
//
// The path is cleaned as if rooted, so ".." segments can never climb above
// the root. Directories resolve to their first existing index file, and a
// missing extensionless path falls back to the same path with MarkdownExt.
// Symlinks are followed but must stay within the root.
func (r *Resolver) Resolve(ctx context.Context, urlPath string) (string, error) {
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("resolve: %w", ctx.Err())
	default:
	}

	clean := path.Clean("/" + urlPath)
	target := filepath.Join(r.root, filepath.FromSlash(clean))

	candidates := []string{target}
	if filepath.Ext(target) == "" && clean != "/" {
		candidates = append(candidates, target+MarkdownExt)
	}

	for _, candidate := range candidates {
		stat, err := os.Stat(candidate)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return "", classify("stat", candidate, err)
		}

		if stat.IsDir() {
			return r.resolveIndex(candidate)
		}
		return r.confine(candidate)
	}

	return "", fmt.Errorf("%w: %s", ErrNotFound, clean)
}

func (r *Resolver) resolveIndex(dir string) (string, error) {
	for _, name := range r.indexFiles {
		candidate := filepath.Join(dir, name)
		stat, err := os.Stat(candidate)
		if err != nil || !stat.Mode().IsRegular() {
			continue
		}
		return r.confine(candidate)
	}
	return "", fmt.Errorf("%w: %s", ErrIsDirectory, dir)
}

// confine rejects files whose real location is outside the root.
func (r *Resolver) confine(candidate string) (string, error) {
	resolved, err := filepath.EvalSymlinks(candidate)
	if err != nil {
		return "", classify("resolve", candidate, err)
	}
	if !within(r.realRoot, resolved) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, candidate)
	}
	return candidate, nil
}

func within(root, target string) bool {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
