// Command batch parses a directory of settlement PDFs and writes the report
// workbook, without going through the HTTP server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"haciendas/internal/csvexport"
	"haciendas/internal/domain"
	"haciendas/internal/export"
	"haciendas/internal/parser"
	"haciendas/internal/pdfx"
	"haciendas/internal/report"
	"haciendas/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var (
		inDir    = flag.String("in", ".", "directory containing the PDF files")
		outPath  = flag.String("out", "liquidaciones.xlsx", "path of the XLSX workbook to write")
		roleFlag = flag.String("role", "RECEPTOR", "declared role for every document (EMISOR or RECEPTOR)")
		csvPath  = flag.String("csv", "", "optional path for the sales-ledger CSV")
		workers  = flag.Int("workers", 4, "concurrent parse workers")
	)
	flag.Parse()

	role, err := domain.ParseRole(*roleFlag)
	if err != nil {
		return fmt.Errorf("flag -role: %w", err)
	}

	paths, err := pdfPaths(*inDir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no PDF files found in %s", *inDir)
	}

	reader := pdfx.Reader{}
	assembler := parser.NewAssembler(reader, reader)
	svc := service.NewDocumentService(assembler, nil, *workers)

	res := svc.ParseBatch(context.Background(), paths)
	for name, err := range res.Errors {
		log.Printf("[batch] skipped %s: %v", name, err)
	}
	if len(res.Docs) == 0 {
		return fmt.Errorf("no document could be parsed")
	}

	stored := make([]domain.StoredDocument, 0, len(res.Docs))
	for _, doc := range res.Docs {
		stored = append(stored, domain.StoredDocument{Role: role, Doc: *doc})
	}
	r := report.Build(stored)

	b, err := export.Workbook(r)
	if err != nil {
		return err
	}
	if err := os.WriteFile(*outPath, b, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", *outPath, err)
	}
	log.Printf("[batch] wrote %s (%d documents, %d failed)", *outPath, len(res.Docs), len(res.Errors))

	if *csvPath != "" {
		if err := writeLedgerCSV(*csvPath, r); err != nil {
			return err
		}
		log.Printf("[batch] wrote %s (%d ledger rows)", *csvPath, len(r.SalesLedger))
	}
	return nil
}

func pdfPaths(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

func writeLedgerCSV(path string, r *report.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Write(csvexport.BOM); err != nil {
		return err
	}
	w := csvexport.NewWriter(f)
	if err := w.WriteHeader(); err != nil {
		return err
	}
	if err := w.WriteLedger(r.SalesLedger); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
