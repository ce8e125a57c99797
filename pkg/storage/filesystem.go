package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStorage persists payment attachments on disk under a base directory.
// The string it returns is the opaque reference stored in the ledger.
type LocalStorage struct {
	baseDir string
}

// NewLocalStorage ensures the base directory exists and returns a handle.
func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	if baseDir == "" {
		baseDir = "./anexos"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create attachments directory: %w", err)
	}
	return &LocalStorage{baseDir: baseDir}, nil
}

// SaveStream copies the reader into a uniquely named file and returns the
// relative reference. The original filename survives as a suffix for
// operator recognisability; the uuid prefix prevents collisions.
func (s *LocalStorage) SaveStream(originalName string, r io.Reader) (string, error) {
	name := fmt.Sprintf("%s_%s", uuid.NewString(), sanitize(originalName))
	path := filepath.Join(s.baseDir, name)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create attachment file: %w", err)
	}
	defer file.Close() //nolint:errcheck

	if _, err := io.Copy(file, r); err != nil {
		return "", fmt.Errorf("write attachment: %w", err)
	}
	return name, nil
}

// Open returns a read-only handle for a stored attachment.
func (s *LocalStorage) Open(reference string) (io.ReadCloser, error) {
	path := filepath.Join(s.baseDir, filepath.Base(reference))
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open attachment: %w", err)
	}
	return file, nil
}

func sanitize(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	if name == "" || name == "." {
		name = "anexo"
	}
	return name
}
