package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrExtensionNotAllowed is returned for uploads outside the allow-list.
var ErrExtensionNotAllowed = errors.New("file extension not allowed")

var allowedExtensions = map[string]bool{
	// video
	".mp4": true, ".mov": true, ".avi": true, ".mkv": true, ".webm": true,
	// documents
	".pdf": true, ".doc": true, ".docx": true, ".ppt": true, ".pptx": true,
	".xls": true, ".xlsx": true, ".txt": true, ".md": true,
	// images
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	// audio
	".mp3": true, ".wav": true,
	// archives
	".zip": true, ".rar": true,
}

// IsAllowedExtension reports whether filename carries an uploadable extension.
func IsAllowedExtension(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// FileStore persists lesson files on the local filesystem under a root
// directory, in subdirectories derived from course and module names.
type FileStore struct {
	root string
}

func NewFileStore(root string) *FileStore {
	return &FileStore{root: root}
}

// Save writes the upload and returns the stored path relative to the root.
// A random prefix keeps same-named uploads from clobbering each other.
func (f *FileStore) Save(courseName, moduleName, filename string, src io.Reader) (string, error) {
	if !IsAllowedExtension(filename) {
		return "", ErrExtensionNotAllowed
	}

	dir := filepath.Join(f.root, slugify(courseName), slugify(moduleName))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	name := uuid.NewString()[:8] + "_" + sanitizeFilename(filename)
	fullPath := filepath.Join(dir, name)

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	rel, err := filepath.Rel(f.root, fullPath)
	if err != nil {
		return "", err
	}
	return rel, nil
}

// Delete removes a stored file. A missing file is not an error; the row is
// the source of truth and cleanup is best effort.
func (f *FileStore) Delete(relPath string) error {
	if relPath == "" {
		return nil
	}
	err := os.Remove(filepath.Join(f.root, relPath))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Open returns a reader for a stored file.
func (f *FileStore) Open(relPath string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(f.root, relPath))
}

func slugify(s string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "misc"
	}
	return slug
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	return name
}
