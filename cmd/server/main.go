package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"haciendas/internal/config"
	"haciendas/internal/handler"
	"haciendas/internal/parser"
	"haciendas/internal/pdfx"
	"haciendas/internal/repository/sqlite"
	"haciendas/internal/router"
	"haciendas/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := sqlite.NewDB(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer db.Close()

	repo := sqlite.NewDocumentRepository(db)

	reader := pdfx.Reader{}
	assembler := parser.NewAssembler(reader, reader)
	docSvc := service.NewDocumentService(assembler, repo, cfg.Parse.Concurrency)

	docH := handler.NewDocumentHandler(docSvc, cfg.Upload.TmpDir, cfg.Upload.MaxFileSizeMB)
	reportH := handler.NewReportHandler(docSvc)
	healthH := handler.NewHealthHandler(db)

	r := router.Setup(docH, reportH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
