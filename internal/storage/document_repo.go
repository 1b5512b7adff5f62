package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_document_store.go -package=mocks notecal/internal/storage DocumentStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// DocumentStore defines the interface for document catalog operations.
type DocumentStore interface {
	// GetByVaultAndPath gets a document by vault ID and relative path.
	// Returns nil and ErrNotFound if not found.
	GetByVaultAndPath(ctx context.Context, vaultID int, relPath string) (*DocumentRecord, error)
	// Upsert inserts a new document or updates an existing one.
	Upsert(ctx context.Context, doc *DocumentRecord) error
	// Delete removes a document by vault ID and relative path. Deleting an
	// unknown document is not an error.
	Delete(ctx context.Context, vaultID int, relPath string) error
	// ListByVault returns all documents for a vault ordered by rel_path.
	ListByVault(ctx context.Context, vaultID int) ([]*DocumentRecord, error)
}

// DocumentRepo provides methods for document catalog operations.
// It implements the DocumentStore interface.
type DocumentRepo struct {
	db *sql.DB
}

// NewDocumentRepo creates a new DocumentRepo.
func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

// GetByVaultAndPath gets a document by vault ID and relative path.
// Returns nil and ErrNotFound if not found.
func (r *DocumentRepo) GetByVaultAndPath(ctx context.Context, vaultID int, relPath string) (*DocumentRecord, error) {
	var doc DocumentRecord
	var updatedAtStr string

	err := r.db.QueryRowContext(ctx,
		`SELECT id, vault_id, rel_path, folder, title, hash, start_date, end_date, updated_at
		 FROM documents WHERE vault_id = ? AND rel_path = ?`,
		vaultID, relPath,
	).Scan(&doc.ID, &doc.VaultID, &doc.RelPath, &doc.Folder, &doc.Title, &doc.Hash, &doc.StartDate, &doc.EndDate, &updatedAtStr)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query document: %w", err)
	}

	doc.UpdatedAt, err = parseTimestamp(updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse updated_at timestamp: %w", err)
	}

	return &doc, nil
}

// Upsert inserts a new document or updates an existing one.
// If the document doesn't exist (by vault_id and rel_path), generates a new
// UUID. If it exists, the ID is preserved and the extracted fields are
// replaced.
func (r *DocumentRepo) Upsert(ctx context.Context, doc *DocumentRecord) error {
	existing, err := r.GetByVaultAndPath(ctx, doc.VaultID, doc.RelPath)
	if err != nil && err != ErrNotFound {
		return fmt.Errorf("failed to check existing document: %w", err)
	}

	if existing != nil {
		doc.ID = existing.ID
	} else if doc.ID == "" {
		doc.ID = uuid.New().String()
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO documents (id, vault_id, rel_path, folder, title, hash, start_date, end_date, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (vault_id, rel_path) DO UPDATE SET
		 title = excluded.title, hash = excluded.hash,
		 start_date = excluded.start_date, end_date = excluded.end_date,
		 updated_at = CURRENT_TIMESTAMP`,
		doc.ID, doc.VaultID, doc.RelPath, doc.Folder, doc.Title, doc.Hash, doc.StartDate, doc.EndDate,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert document: %w", err)
	}

	return nil
}

// Delete removes a document by vault ID and relative path.
func (r *DocumentRepo) Delete(ctx context.Context, vaultID int, relPath string) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM documents WHERE vault_id = ? AND rel_path = ?",
		vaultID, relPath,
	)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

// ListByVault returns all documents for a vault ordered by rel_path.
func (r *DocumentRepo) ListByVault(ctx context.Context, vaultID int) ([]*DocumentRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, vault_id, rel_path, folder, title, hash, start_date, end_date, updated_at
		 FROM documents WHERE vault_id = ? ORDER BY rel_path`,
		vaultID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []*DocumentRecord
	for rows.Next() {
		var doc DocumentRecord
		var updatedAtStr string
		if err := rows.Scan(&doc.ID, &doc.VaultID, &doc.RelPath, &doc.Folder, &doc.Title, &doc.Hash, &doc.StartDate, &doc.EndDate, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		doc.UpdatedAt, err = parseTimestamp(updatedAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse updated_at timestamp: %w", err)
		}
		docs = append(docs, &doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}

	return docs, nil
}
