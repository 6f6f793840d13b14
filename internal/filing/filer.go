package filing

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"docarchive-backend/internal/shared/util"
)

// Filer relocates staged uploads into their resolved category directory.
type Filer struct {
	baseDir string
}

// NewFiler constructs a Filer rooted at baseDir.
func NewFiler(baseDir string) *Filer {
	return &Filer{baseDir: baseDir}
}

// File moves the staged file into the category directory under its
// canonical name and returns the final path. The category directory is
// created if missing; creation races with concurrent jobs are harmless.
// An existing file with the same name is never overwritten: the new file
// gets a numeric suffix before its extension.
func (f *Filer) File(stagedPath, category, fileName string) (string, error) {
	if strings.TrimSpace(category) == "" {
		category = DefaultCategory
	}
	sanitized, err := util.SanitizeFileName(fileName)
	if err != nil {
		return "", fmt.Errorf("file name %q: %w", fileName, err)
	}

	dir := filepath.Join(f.baseDir, category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create category dir: %w", err)
	}

	target, err := claimTarget(dir, sanitized)
	if err != nil {
		return "", err
	}
	if err := os.Rename(stagedPath, target); err != nil {
		_ = os.Remove(target)
		return "", fmt.Errorf("relocate staged file: %w", err)
	}
	return target, nil
}

// claimTarget reserves a collision-free name in dir with O_EXCL so that
// concurrent jobs filing the same name cannot both win it.
func claimTarget(dir, name string) (string, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	for attempt := 0; attempt < 1000; attempt++ {
		candidate := name
		if attempt > 0 {
			candidate = fmt.Sprintf("%s_%d%s", stem, attempt, ext)
		}
		target := filepath.Join(dir, candidate)
		fd, err := os.OpenFile(target, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			_ = fd.Close()
			return target, nil
		}
		if !os.IsExist(err) {
			return "", fmt.Errorf("claim target name: %w", err)
		}
	}
	return "", fmt.Errorf("no free name for %s in %s", name, dir)
}
