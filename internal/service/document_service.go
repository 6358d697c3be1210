// Package service coordinates parsing, storage and report building for the
// HTTP handlers and the batch command.
package service

import (
	"context"
	"log"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/uuid"

	"haciendas/internal/domain"
	"haciendas/internal/port"
	"haciendas/internal/report"
)

// Parser extracts one settlement document from a source file.
type Parser interface {
	Parse(path string) (*domain.SettlementDoc, error)
}

// BatchResult carries the outcome of a batch parse. A failed file lands in
// Errors under its base name and never aborts the rest of the batch.
type BatchResult struct {
	Docs   []*domain.SettlementDoc
	Errors map[string]error
}

// DocumentService is the application boundary for settlement documents.
type DocumentService struct {
	parser  Parser
	repo    port.DocumentRepository
	workers int
}

func NewDocumentService(p Parser, repo port.DocumentRepository, workers int) *DocumentService {
	if workers < 1 {
		workers = 1
	}
	return &DocumentService{parser: p, repo: repo, workers: workers}
}

// ParseFile extracts a single document without storing it.
func (s *DocumentService) ParseFile(path string) (*domain.SettlementDoc, error) {
	return s.parser.Parse(path)
}

// ParseBatch parses the given files concurrently, bounded by the configured
// worker count. Document order in the result follows filename order, not
// completion order.
func (s *DocumentService) ParseBatch(ctx context.Context, paths []string) BatchResult {
	type outcome struct {
		path string
		doc  *domain.SettlementDoc
		err  error
	}

	sem := make(chan struct{}, s.workers)
	results := make(chan outcome, len(paths))
	var wg sync.WaitGroup

	for _, path := range paths {
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				results <- outcome{path: path, err: ctx.Err()}
				return
			}
			doc, err := s.parser.Parse(path)
			results <- outcome{path: path, doc: doc, err: err}
		}(path)
	}
	wg.Wait()
	close(results)

	res := BatchResult{Errors: map[string]error{}}
	for out := range results {
		if out.err != nil {
			log.Printf("[service] parse %s failed: %v", filepath.Base(out.path), out.err)
			res.Errors[filepath.Base(out.path)] = out.err
			continue
		}
		res.Docs = append(res.Docs, out.doc)
	}
	sort.Slice(res.Docs, func(i, j int) bool {
		return res.Docs[i].Filename < res.Docs[j].Filename
	})
	return res
}

// Ingest parses a file and stores the result under the given role. A
// non-empty filename replaces the staging path's name before the document
// is stored, so callers that stage uploads under temporary names keep the
// original name on the record.
func (s *DocumentService) Ingest(ctx context.Context, path, filename string, role domain.Role) (uuid.UUID, *domain.SettlementDoc, error) {
	doc, err := s.parser.Parse(path)
	if err != nil {
		return uuid.Nil, nil, err
	}
	if filename != "" {
		doc.Filename = filename
	}
	id, err := s.repo.Save(ctx, doc, role)
	if err != nil {
		return uuid.Nil, nil, err
	}
	return id, doc, nil
}

// List returns every stored document.
func (s *DocumentService) List(ctx context.Context) ([]domain.StoredDocument, error) {
	return s.repo.List(ctx)
}

// SetRole reassigns the declared role of a stored document.
func (s *DocumentService) SetRole(ctx context.Context, id uuid.UUID, role domain.Role) error {
	return s.repo.SetRole(ctx, id, role)
}

// Delete removes a stored document.
func (s *DocumentService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// BuildReport aggregates every stored document into the report grids.
func (s *DocumentService) BuildReport(ctx context.Context) (*report.Report, error) {
	docs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return report.Build(docs), nil
}
