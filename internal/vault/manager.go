package vault

import (
	"context"
	"fmt"
	"path/filepath"

	"notecal/internal/storage"
)

// Manager manages the configured vault and provides path resolution.
type Manager struct {
	vault storage.VaultRecord
}

// NewManager creates a new vault manager, registering the vault root in the
// catalog under the name "main".
func NewManager(ctx context.Context, vaultRepo storage.VaultStore, rootPath string) (*Manager, error) {
	vault, err := vaultRepo.GetOrCreateByName(ctx, "main", rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create vault record: %w", err)
	}
	return &Manager{vault: vault}, nil
}

// Vault returns the managed vault record.
func (m *Manager) Vault() storage.VaultRecord {
	return m.vault
}

// AbsPath returns the absolute path for a file given its relative path.
func (m *Manager) AbsPath(relPath string) string {
	return filepath.Join(m.vault.RootPath, relPath)
}

// RelPath returns the vault-relative, slash-normalized path for an absolute
// path, or false when the path lies outside the vault root.
func (m *Manager) RelPath(absPath string) (string, bool) {
	relPath, err := filepath.Rel(m.vault.RootPath, absPath)
	if err != nil || relPath == ".." || filepath.IsAbs(relPath) || len(relPath) >= 3 && relPath[:3] == ".."+string(filepath.Separator) {
		return "", false
	}
	return filepath.ToSlash(relPath), true
}
