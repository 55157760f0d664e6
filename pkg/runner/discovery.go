package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Discover finds Markdown files under opts.Root. It returns a deterministically
// sorted list of absolute file paths. Hidden entries, excluded paths and the
// output directory (when it lies inside Root) are skipped.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	root, err := absDir(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", opts.Root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", opts.Root)
	}

	output := ""
	if opts.Output != "" {
		if output, err = filepath.Abs(opts.Output); err != nil {
			return nil, fmt.Errorf("resolve output: %w", err)
		}
	}

	extensions := opts.effectiveExtensions()
	var files []string

	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		relPath, relErr := filepath.Rel(root, path)
		if relErr != nil {
			relPath = path
		}

		if entry.IsDir() {
			if path == root {
				return nil
			}
			if strings.HasPrefix(entry.Name(), ".") || path == output {
				return filepath.SkipDir
			}
			if matchesExcludePattern(relPath, opts.ExcludeGlobs) {
				return filepath.SkipDir
			}
			return nil
		}

		// Symlinked directories are not followed; symlinked files are read
		// like regular files.
		if entry.Type()&fs.ModeSymlink != 0 {
			target, statErr := os.Stat(path)
			if statErr != nil || target.IsDir() {
				return nil //nolint:nilerr // Broken or directory symlinks are skipped.
			}
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if hasMatchingExtension(path, extensions) && !matchesExcludePattern(relPath, opts.ExcludeGlobs) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	sort.Strings(files)
	return files, nil
}

// TargetPath maps a source file under root to its Gemtext path under output.
// "docs/guide.md" becomes "docs/guide.gmi".
func TargetPath(root, output, source string) (string, error) {
	rel, err := filepath.Rel(root, source)
	if err != nil {
		return "", fmt.Errorf("relative path for %s: %w", source, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside %s", source, root)
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + GemtextExt
	return filepath.Join(output, rel), nil
}

func absDir(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	return filepath.Abs(dir)
}

// hasMatchingExtension checks if the file has a matching extension.
func hasMatchingExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// matchesExcludePattern checks if the path matches any exclude pattern.
func matchesExcludePattern(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchGlob(relPath, pattern) {
			return true
		}
	}
	return false
}

// matchGlob matches a path against a glob pattern.
// It supports patterns like "*.md", "drafts/**" and "**/private".
func matchGlob(path, pattern string) bool {
	path = filepath.ToSlash(path)
	pattern = filepath.ToSlash(pattern)

	if strings.Contains(pattern, "**") {
		return matchDoubleStarPattern(path, pattern)
	}

	if matched, err := filepath.Match(pattern, path); err == nil && matched {
		return true
	}

	// Also try matching against just the file name.
	matched, err := filepath.Match(pattern, filepath.Base(path))
	return err == nil && matched
}

// matchDoubleStarPattern handles ** glob patterns.
func matchDoubleStarPattern(path, pattern string) bool {
	parts := strings.SplitN(pattern, "**", 2)
	prefix := strings.TrimSuffix(parts[0], "/")
	suffix := strings.TrimPrefix(parts[1], "/")

	if prefix != "" && path != prefix && !strings.HasPrefix(path, prefix+"/") {
		return false
	}
	if suffix == "" {
		return true
	}

	// "**/name" matches name as any path component or as a trailing subpath.
	if strings.HasSuffix(path, suffix) {
		return true
	}
	for _, part := range strings.Split(path, "/") {
		if matched, err := filepath.Match(suffix, part); err == nil && matched {
			return true
		}
	}
	return false
}
