package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/exarch/pkg/fsutil"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "docs", "guide", "index.gmi")
		if err := fsutil.WriteAtomic(context.Background(), path, []byte("# Guide"), 0); err != nil {
			t.Fatalf("WriteAtomic() error = %v", err)
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read back: %v", err)
		}
		if string(got) != "# Guide" {
			t.Errorf("content = %q, want %q", got, "# Guide")
		}

		stat, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if stat.Mode().Perm() != fsutil.DefaultFileMode {
			t.Errorf("mode = %o, want %o", stat.Mode().Perm(), fsutil.DefaultFileMode)
		}
	})

	t.Run("replaces existing file without leftovers", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "page.gmi")
		if err := os.WriteFile(path, []byte("old"), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		if err := fsutil.WriteAtomic(context.Background(), path, []byte("new"), 0o600); err != nil {
			t.Fatalf("WriteAtomic() error = %v", err)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("read dir: %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("directory has %d entries, want 1", len(entries))
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		path := filepath.Join(t.TempDir(), "page.gmi")
		if err := fsutil.WriteAtomic(ctx, path, []byte("x"), 0); err == nil {
			t.Fatal("expected error for cancelled context")
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("file should not exist, stat error = %v", err)
		}
	})
}

func TestWriteAtomicIfChanged(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "page.gmi")

	written, err := fsutil.WriteAtomicIfChanged(ctx, path, []byte("a"), 0)
	if err != nil || !written {
		t.Fatalf("first write = (%v, %v), want (true, nil)", written, err)
	}

	written, err = fsutil.WriteAtomicIfChanged(ctx, path, []byte("a"), 0)
	if err != nil || written {
		t.Fatalf("identical write = (%v, %v), want (false, nil)", written, err)
	}

	written, err = fsutil.WriteAtomicIfChanged(ctx, path, []byte("b"), 0)
	if err != nil || !written {
		t.Fatalf("changed write = (%v, %v), want (true, nil)", written, err)
	}
}
