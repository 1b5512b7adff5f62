// Package indexer coordinates scanning, extraction, and index maintenance.
// The pipeline is the sole writer of the in-memory store and of the
// document catalog: bulk loads and single-document change notifications all
// serialize their index mutations through one mutex, so a document's whole
// footprint (entry plus anniversary projections) updates atomically even
// when a background scan and a watcher event land at the same time.
package indexer

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"notecal/internal/caldate"
	"notecal/internal/contextutil"
	"notecal/internal/extract"
	"notecal/internal/index"
	"notecal/internal/storage"
	"notecal/internal/vault"
)

// Pipeline orchestrates the indexing of markdown files into the in-memory
// date index and the SQLite document catalog.
type Pipeline struct {
	// mu serializes index mutations: the store footprint and the
	// anniversary projection bookkeeping change together under it.
	mu           sync.Mutex
	vaultManager *vault.Manager
	documentRepo storage.DocumentStore
	store        *index.Store
	extractCfg   extract.Config
	clock        caldate.Clock
	anniversary  *AnniversaryExpander
	logger       *slog.Logger
}

// NewPipeline creates a new indexing pipeline.
func NewPipeline(
	vaultManager *vault.Manager,
	documentRepo storage.DocumentStore,
	store *index.Store,
	extractCfg extract.Config,
	anniversaryFields []string,
	clock caldate.Clock,
) *Pipeline {
	return &Pipeline{
		vaultManager: vaultManager,
		documentRepo: documentRepo,
		store:        store,
		extractCfg:   extractCfg,
		clock:        clock,
		anniversary:  NewAnniversaryExpander(anniversaryFields, clock),
		logger:       slog.Default(),
	}
}

// Store exposes the in-memory index for read-side consumers.
func (p *Pipeline) Store() *index.Store {
	return p.store
}

// IndexDocument indexes a single markdown file. When the file's content
// hash matches the catalog, the entry is rebuilt from the stored dates
// without re-parsing; otherwise the file is read, dates are extracted, and
// both the store and the catalog are updated. A document without a valid
// start date is removed from the index.
func (p *Pipeline) IndexDocument(ctx context.Context, relPath string) error {
	logger := contextutil.LoggerFromContext(ctx)
	vaultID := p.vaultManager.Vault().ID

	absPath := p.vaultManager.AbsPath(relPath)
	content, err := os.ReadFile(absPath)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", absPath, err)
	}

	hash := sha256.Sum256(content)
	hashHex := fmt.Sprintf("%x", hash)

	existing, err := p.documentRepo.GetByVaultAndPath(ctx, vaultID, relPath)
	if err != nil && err != storage.ErrNotFound {
		return fmt.Errorf("failed to check existing document: %w", err)
	}

	doc := vault.ParseDocument(relPath, content)

	if existing != nil && existing.Hash == hashHex {
		// Unchanged content: the extracted dates in the catalog are still
		// valid, so skip extraction and the catalog write.
		logger.DebugContext(ctx, "file unchanged, reindexing from catalog", "rel_path", relPath)
		p.applyRecord(existing, doc)
		return nil
	}

	res := extract.Extract(filepath.Base(relPath), doc.Properties, p.extractCfg)

	record := &storage.DocumentRecord{
		VaultID: vaultID,
		RelPath: relPath,
		Folder:  doc.Folder,
		Title:   doc.Title,
		Hash:    hashHex,
	}
	if res.Start != nil {
		record.StartDate = res.Start.String()
	}
	if res.End != nil {
		record.EndDate = res.End.String()
	}
	if existing != nil {
		record.ID = existing.ID
	}

	if err := p.documentRepo.Upsert(ctx, record); err != nil {
		return fmt.Errorf("failed to upsert document: %w", err)
	}

	p.applyRecord(record, doc)

	logger.InfoContext(ctx, "indexed document",
		"rel_path", relPath, "start", record.StartDate, "end", record.EndDate)
	return nil
}

// applyRecord replaces the document's index footprint with one built from
// the catalog record and the parsed document.
func (p *Pipeline) applyRecord(record *storage.DocumentRecord, doc *vault.Document) {
	p.mu.Lock()
	defer p.mu.Unlock()

	start, ok := caldate.ParseISO(record.StartDate)
	if !ok {
		// No valid start date: whatever was indexed before is stale.
		p.removeEntriesLocked(record.ID)
		return
	}

	entry := &index.Entry{
		ID:    record.ID,
		Start: start,
		Meta: index.Meta{
			Title:  record.Title,
			Folder: record.Folder,
		},
	}
	if end, ok := caldate.ParseISO(record.EndDate); ok && caldate.Compare(start, end) <= 0 {
		entry.End = &end
	}
	if doc != nil {
		entry.Meta.Tags = doc.Tags
		entry.Meta.Properties = doc.Properties
	}

	// Tear down any previous anniversary projections before re-adding.
	p.removeProjectionsLocked(record.ID)
	p.store.AddEntry(entry)
	for _, projected := range p.anniversary.Expand(entry, propertiesOf(doc)) {
		p.store.AddEntry(projected)
	}
}

// RemoveDocument removes a document from the index and the catalog.
// Removing an unknown document is a no-op.
func (p *Pipeline) RemoveDocument(ctx context.Context, relPath string) error {
	logger := contextutil.LoggerFromContext(ctx)
	vaultID := p.vaultManager.Vault().ID

	existing, err := p.documentRepo.GetByVaultAndPath(ctx, vaultID, relPath)
	if err == storage.ErrNotFound {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to look up document: %w", err)
	}

	p.removeFromStore(existing.ID)
	if err := p.documentRepo.Delete(ctx, vaultID, relPath); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	logger.InfoContext(ctx, "removed document", "rel_path", relPath)
	return nil
}

// removeFromStore tears down an entry and its anniversary projections.
func (p *Pipeline) removeFromStore(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.removeEntriesLocked(id)
}

// removeEntriesLocked drops a document's entry and its projections.
// Callers hold p.mu.
func (p *Pipeline) removeEntriesLocked(id string) {
	if id == "" {
		return
	}
	p.store.RemoveEntry(id)
	p.removeProjectionsLocked(id)
}

// removeProjectionsLocked drops only the anniversary projections,
// leaving the base entry alone. Callers hold p.mu.
func (p *Pipeline) removeProjectionsLocked(id string) {
	if id == "" {
		return
	}
	for _, projID := range p.anniversary.Projections(id) {
		p.store.RemoveEntry(projID)
	}
	p.anniversary.Forget(id)
}

func propertiesOf(doc *vault.Document) map[string]any {
	if doc == nil {
		return nil
	}
	return doc.Properties
}

// IndexAll scans the vault and indexes every markdown file, then drops
// catalog rows for files that no longer exist. Errors for individual files
// are logged but don't stop the pass.
func (p *Pipeline) IndexAll(ctx context.Context) (ScanStats, error) {
	logger := contextutil.LoggerFromContext(ctx)
	vaultID := p.vaultManager.Vault().ID

	scannedFiles, err := p.vaultManager.ScanAll(ctx)
	if err != nil {
		return ScanStats{}, fmt.Errorf("failed to scan vault: %w", err)
	}

	logger.InfoContext(ctx, "starting indexing", "total_files", len(scannedFiles))

	stats := ScanStats{FilesScanned: len(scannedFiles)}
	seen := make(map[string]struct{}, len(scannedFiles))

	for _, file := range scannedFiles {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		seen[file.RelPath] = struct{}{}
		if err := p.IndexDocument(ctx, file.RelPath); err != nil {
			stats.Errors++
			logger.ErrorContext(ctx, "failed to index file", "rel_path", file.RelPath, "error", err)
			continue
		}
	}

	// Drop catalog rows for files deleted while the server was down.
	records, err := p.documentRepo.ListByVault(ctx, vaultID)
	if err != nil {
		return stats, fmt.Errorf("failed to list catalog: %w", err)
	}
	for _, record := range records {
		if _, ok := seen[record.RelPath]; ok {
			continue
		}
		if err := p.RemoveDocument(ctx, record.RelPath); err != nil {
			stats.Errors++
			logger.ErrorContext(ctx, "failed to remove stale document", "rel_path", record.RelPath, "error", err)
		}
	}

	stats.EntriesIndexed = p.store.Len()
	logger.InfoContext(ctx, "indexing completed",
		"total_files", stats.FilesScanned, "entries", stats.EntriesIndexed, "errors", stats.Errors)

	if stats.Errors > 0 {
		return stats, fmt.Errorf("indexing completed with %d errors", stats.Errors)
	}
	return stats, nil
}

// ScanStats summarizes one IndexAll pass.
type ScanStats struct {
	FilesScanned   int `json:"files_scanned"`
	EntriesIndexed int `json:"entries_indexed"`
	Errors         int `json:"errors"`
}
