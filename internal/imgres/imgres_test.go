package imgres

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolve(t *testing.T) {
	r := New(nil)

	dir := t.TempDir()
	local := filepath.Join(dir, "pic.png")
	if err := os.WriteFile(local, []byte("png"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	t.Run("remote URL", func(t *testing.T) {
		for _, src := range []string{
			"http://example.com/a.png",
			"https://example.com/a.png",
			"//example.com/a.png",
		} {
			if got := r.Resolve(src, dir); got.State != Remote {
				t.Errorf("Resolve(%q).State = %v, want Remote", src, got.State)
			}
		}
	})

	t.Run("relative path joins sourceDir", func(t *testing.T) {
		got := r.Resolve("pic.png", dir)
		if got.State != ResolvedLocal {
			t.Fatalf("State = %v, want ResolvedLocal", got.State)
		}
		if got.Path != local {
			t.Errorf("Path = %q, want %q", got.Path, local)
		}
	})

	t.Run("absolute path bypasses sourceDir", func(t *testing.T) {
		got := r.Resolve(local, t.TempDir())
		if got.State != ResolvedLocal || got.Path != local {
			t.Errorf("Resolve(abs) = %+v, want ResolvedLocal %q", got, local)
		}
	})

	t.Run("missing file is unresolved", func(t *testing.T) {
		if got := r.Resolve("absent.png", dir); got.State != Unresolved {
			t.Errorf("State = %v, want Unresolved", got.State)
		}
	})

	t.Run("directory is unresolved", func(t *testing.T) {
		if got := r.Resolve(".", dir); got.State != Unresolved {
			t.Errorf("Resolve(dir).State = %v, want Unresolved", got.State)
		}
	})
}
