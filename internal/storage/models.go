package storage

import "time"

// VaultRecord represents a configured vault in the database.
type VaultRecord struct {
	ID        int
	Name      string
	RootPath  string
	CreatedAt time.Time
}

// DocumentRecord is the catalog row for a scanned markdown document.
// StartDate and EndDate hold the extracted dates in "YYYY-MM-DD" form, or
// empty when extraction found none; together with Hash they let an
// unchanged file rebuild its index entry without re-reading the file.
type DocumentRecord struct {
	ID        string // UUID
	VaultID   int    // Foreign key to vaults.id
	RelPath   string // Relative path from vault root
	Folder    string // Folder path (path components except filename)
	Title     string // Extracted title
	Hash      string // SHA256 hex string of file content
	StartDate string // Extracted start date, ISO form, "" when absent
	EndDate   string // Extracted end date, ISO form, "" when absent
	UpdatedAt time.Time
}
