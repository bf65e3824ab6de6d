package blob

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore writes objects under a base directory and serves them from a
// static URL prefix. Used for local development without MinIO.
type LocalStore struct {
	baseDir    string
	staticBase string
}

func NewLocalStore(baseDir, staticBase string) *LocalStore {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	if staticBase == "" {
		staticBase = "/static/uploads"
	}
	return &LocalStore{baseDir: baseDir, staticBase: staticBase}
}

func (s *LocalStore) Put(_ context.Context, objectName string, data []byte, _ string) (string, error) {
	relPath := filepath.FromSlash(sanitizeObjectName(objectName))
	absPath := filepath.Join(s.baseDir, relPath)

	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}
	if err := os.WriteFile(absPath, data, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	return s.staticBase + "/" + strings.ReplaceAll(relPath, "\\", "/"), nil
}

func (s *LocalStore) Get(_ context.Context, objectName string) ([]byte, error) {
	absPath := filepath.Join(s.baseDir, filepath.FromSlash(sanitizeObjectName(objectName)))
	data, err := os.ReadFile(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrObjectNotFound
	}
	return data, err
}

// sanitizeObjectName keeps object paths inside the base directory and strips
// characters that are unsafe in filenames.
func sanitizeObjectName(name string) string {
	parts := strings.Split(name, "/")
	clean := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" || p == "." || p == ".." {
			continue
		}
		clean = append(clean, strings.Map(func(r rune) rune {
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') ||
				r == '-' || r == '_' || r == '.' {
				return r
			}
			return '_'
		}, p))
	}
	return strings.Join(clean, "/")
}
