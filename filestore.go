// filestore.go
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// unsafeFilenameChars matches everything we strip out of a client-supplied
// filename: path separators, control characters, shell metacharacters.
var unsafeFilenameChars = regexp.MustCompile(`[^\w.\- ]+`)

// FileStore writes uploaded documents under Root/Dir and hands back paths
// relative to Root. Stored names are random tokens, so two concurrent uploads
// of files with the same client name land in two distinct files.
type FileStore struct {
	Root string // application root the returned paths are relative to
	Dir  string // upload directory, relative to Root
}

// NewFileStore returns a store rooted at root writing into dir.
func NewFileStore(root, dir string) *FileStore {
	return &FileStore{Root: root, Dir: dir}
}

// SanitizeFilename reduces a client-supplied filename to a safe base name:
// no path components, no unsafe characters, never empty.
func SanitizeFilename(name string) string {
	// Clients on Windows send backslash-separated paths; Base only strips
	// the separator of the host OS.
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	name = strings.Trim(name, ". ")
	if name == "" {
		name = "upload"
	}
	return name
}

// Store writes the file bytes to disk under a randomized name and returns the
// stored path relative to the application root. When the configured upload
// directory cannot be used it falls back to a process temp directory; only a
// failure after the fallback is returned to the caller.
func (fs *FileStore) Store(src io.Reader, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(SanitizeFilename(originalName)))
	storedName := uuid.NewString() + ext

	dir := filepath.Join(fs.Root, fs.Dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("[%s] upload dir %q unusable, falling back to temp: %v", ErrCodeStorage, dir, err)
		dir = fallbackDir()
	}

	// Open the destination before consuming the reader, so an unwritable
	// directory can still be rescued by the fallback.
	dest := filepath.Join(dir, storedName)
	out, err := os.Create(dest)
	if err != nil {
		if fallback := fallbackDir(); fallback != dir {
			log.Printf("[%s] cannot create %q, retrying in temp: %v", ErrCodeStorage, dest, err)
			dest = filepath.Join(fallback, storedName)
			out, err = os.Create(dest)
		}
		if err != nil {
			return "", fmt.Errorf("storing %q: %w", originalName, err)
		}
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("storing %q: %w", originalName, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("storing %q: %w", originalName, err)
	}

	if rel, err := filepath.Rel(fs.Root, dest); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel), nil
	}
	// Temp-dir fallback lives outside the root; keep the absolute path so
	// the row still points at a real file.
	return dest, nil
}

// fallbackDir returns the process-wide temp area used when the configured
// upload directory is unusable.
func fallbackDir() string {
	dir := filepath.Join(os.TempDir(), "klsb-uploads")
	os.MkdirAll(dir, 0o755)
	return dir
}
