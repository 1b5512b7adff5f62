package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vault_store.go -package=mocks notecal/internal/storage VaultStore

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// VaultStore defines the interface for vault record operations.
type VaultStore interface {
	// GetOrCreateByName gets an existing vault by name, or creates it if
	// it doesn't exist.
	GetOrCreateByName(ctx context.Context, name, rootPath string) (VaultRecord, error)
}

// VaultRepo provides methods for vault operations.
// It implements the VaultStore interface.
type VaultRepo struct {
	db *sql.DB
}

// NewVaultRepo creates a new VaultRepo.
func NewVaultRepo(db *sql.DB) *VaultRepo {
	return &VaultRepo{db: db}
}

// GetOrCreateByName gets an existing vault by name, or creates it if it
// doesn't exist.
func (r *VaultRepo) GetOrCreateByName(ctx context.Context, name, rootPath string) (VaultRecord, error) {
	var vault VaultRecord
	var createdAtStr string

	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, root_path, created_at FROM vaults WHERE name = ?",
		name,
	).Scan(&vault.ID, &vault.Name, &vault.RootPath, &createdAtStr)

	if err == nil {
		vault.CreatedAt, err = parseTimestamp(createdAtStr)
		if err != nil {
			return VaultRecord{}, fmt.Errorf("failed to parse created_at timestamp: %w", err)
		}
		return vault, nil
	}

	if err != sql.ErrNoRows {
		return VaultRecord{}, fmt.Errorf("failed to query vault: %w", err)
	}

	// Vault doesn't exist, create it
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO vaults (name, root_path) VALUES (?, ?)",
		name, rootPath,
	)
	if err != nil {
		return VaultRecord{}, fmt.Errorf("failed to insert vault: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return VaultRecord{}, fmt.Errorf("failed to get inserted vault id: %w", err)
	}

	err = r.db.QueryRowContext(ctx,
		"SELECT id, name, root_path, created_at FROM vaults WHERE id = ?",
		id,
	).Scan(&vault.ID, &vault.Name, &vault.RootPath, &createdAtStr)
	if err != nil {
		return VaultRecord{}, fmt.Errorf("failed to read created vault: %w", err)
	}

	vault.CreatedAt, err = parseTimestamp(createdAtStr)
	if err != nil {
		return VaultRecord{}, fmt.Errorf("failed to parse created_at timestamp: %w", err)
	}

	return vault, nil
}

// parseTimestamp parses a SQLite DATETIME string.
func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02 15:04:05", s)
	if err == nil {
		return t, nil
	}
	// SQLite might use RFC3339 depending on how the value was written.
	return time.Parse(time.RFC3339, s)
}
