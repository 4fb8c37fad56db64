package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// GetEnv returns the value of the environment variable key, or fallback when unset or empty.
func GetEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// FilesWithExtension walks dir and returns every regular file whose name ends in ext
// (case-insensitive), sorted. A missing dir is an error.
func FilesWithExtension(dir, ext string) ([]string, error) {
	ext = strings.ToLower(ext)
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(strings.ToLower(d.Name()), ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate %s files in %s: %w", ext, dir, err)
	}
	sort.Strings(files)
	return files, nil
}

// DirIsEmptyOrMissing reports whether dir does not exist or has no entries.
func DirIsEmptyOrMissing(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return len(entries) == 0, nil
}
