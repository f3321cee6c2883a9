package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Disk stores uploaded blobs on the local filesystem and returns URLs
// under BaseURL. Paths are sanitized to stay below Root.
type Disk struct {
	Root    string
	BaseURL string
}

func NewDisk(root, baseURL string) *Disk {
	return &Disk{Root: root, BaseURL: strings.TrimRight(baseURL, "/")}
}

func (d *Disk) Upload(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	clean := filepath.ToSlash(filepath.Clean("/" + path))
	clean = strings.TrimPrefix(clean, "/")
	if clean == "" || clean == "." {
		return "", fmt.Errorf("invalid storage path %q", path)
	}

	full := filepath.Join(d.Root, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", err
	}
	return d.BaseURL + "/" + clean, nil
}

// FileServerRoot returns the directory to mount behind BaseURL.
func (d *Disk) FileServerRoot() string {
	return d.Root
}
