package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"cv.pdf", "cv.pdf"},
		{"my resume 2025.docx", "my resume 2025.docx"},
		{"../../etc/passwd", "passwd"},
		{`C:\Users\ali\cv.doc`, "cv.doc"},
		{"we?ird*na<me>.pdf", "weirdname.pdf"},
		{"", "upload"},
		{"...", "upload"},
		{"   ", "upload"},
	}
	for _, tc := range cases {
		if got := SanitizeFilename(tc.in); got != tc.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestStoreReturnsRelativePath(t *testing.T) {
	root := t.TempDir()
	fs := NewFileStore(root, filepath.Join("uploads", "cv"))

	rel, err := fs.Store(strings.NewReader("pdf bytes"), "cv.pdf")
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	if filepath.IsAbs(rel) {
		t.Errorf("Expected a path relative to the root, got %q", rel)
	}
	if !strings.HasPrefix(rel, "uploads/cv/") {
		t.Errorf("Expected path under uploads/cv/, got %q", rel)
	}
	if !strings.HasSuffix(rel, ".pdf") {
		t.Errorf("Expected the original extension to be kept, got %q", rel)
	}

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("Stored file unreadable: %v", err)
	}
	if string(data) != "pdf bytes" {
		t.Errorf("Stored content mismatch: %q", data)
	}
}

func TestStoreConcurrentSameName(t *testing.T) {
	root := t.TempDir()
	fs := NewFileStore(root, "uploads")

	const workers = 10
	paths := make([]string, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			paths[i], errs[i] = fs.Store(strings.NewReader(fmt.Sprintf("upload %d", i)), "cv.pdf")
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool)
	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			t.Fatalf("Upload %d failed: %v", i, errs[i])
		}
		if seen[paths[i]] {
			t.Fatalf("Two uploads collided on path %q", paths[i])
		}
		seen[paths[i]] = true

		data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(paths[i])))
		if err != nil {
			t.Fatalf("Upload %d missing on disk: %v", i, err)
		}
		if string(data) != fmt.Sprintf("upload %d", i) {
			t.Errorf("Upload %d was overwritten: got %q", i, data)
		}
	}
}

func TestStoreFallsBackToTempDir(t *testing.T) {
	// Make the configured root a regular file, so MkdirAll under it fails.
	dir := t.TempDir()
	blocked := filepath.Join(dir, "root")
	if err := os.WriteFile(blocked, []byte("not a directory"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	fs := NewFileStore(blocked, "uploads")
	path, err := fs.Store(strings.NewReader("content"), "cv.doc")
	if err != nil {
		t.Fatalf("Expected fallback to the temp dir, got error: %v", err)
	}
	defer os.Remove(path)

	if !filepath.IsAbs(path) {
		t.Errorf("Fallback path should be absolute, got %q", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Fallback file missing: %v", err)
	}
}
