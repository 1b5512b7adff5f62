package vault

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// ScannedFile represents a markdown file found during vault scanning.
type ScannedFile struct {
	VaultID int    // Vault ID from database
	RelPath string // Relative path from vault root (e.g., "trips/rome.md")
	Folder  string // Folder path (path components except filename, e.g., "trips")
	AbsPath string // Absolute file path
}

// ScanAll walks the vault root and returns all markdown files found.
// The .obsidian configuration directory is skipped.
func (m *Manager) ScanAll(ctx context.Context) ([]ScannedFile, error) {
	var scannedFiles []ScannedFile

	err := filepath.Walk(m.vault.RootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fmt.Errorf("failed to access path %s: %w", path, err)
		}

		// Check for context cancellation between files.
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if info.IsDir() {
			if info.Name() == ".obsidian" {
				return filepath.SkipDir
			}
			return nil
		}

		if filepath.Ext(path) != ".md" {
			return nil
		}

		relPath, err := filepath.Rel(m.vault.RootPath, path)
		if err != nil {
			return fmt.Errorf("failed to compute relative path for %s: %w", path, err)
		}
		relPath = filepath.ToSlash(relPath)

		scannedFiles = append(scannedFiles, ScannedFile{
			VaultID: m.vault.ID,
			RelPath: relPath,
			Folder:  folderOf(relPath),
			AbsPath: path,
		})
		return nil
	})

	if err != nil {
		return scannedFiles, fmt.Errorf("failed to scan vault %s: %w", m.vault.Name, err)
	}

	return scannedFiles, nil
}

// folderOf computes the folder component of a relative path; root-level
// files get "".
func folderOf(relPath string) string {
	folder := filepath.Dir(relPath)
	if folder == "." || folder == "" {
		return ""
	}
	return filepath.ToSlash(folder)
}
