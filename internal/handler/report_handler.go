package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"haciendas/internal/csvexport"
	"haciendas/internal/export"
	"haciendas/internal/service"
)

// ReportHandler serves the aggregated report grids and their exports.
type ReportHandler struct {
	svc *service.DocumentService
}

func NewReportHandler(svc *service.DocumentService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// Grids returns the full report as JSON.
func (h *ReportHandler) Grids(c *gin.Context) {
	r, err := h.svc.BuildReport(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, r)
}

// ExportXLSX streams the report workbook.
func (h *ReportHandler) ExportXLSX(c *gin.Context) {
	r, err := h.svc.BuildReport(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	b, err := export.Workbook(r)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := csvexport.SanitizeFilename("liquidaciones_hacienda") + ".xlsx"
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", b)
}

// ExportLedgerCSV streams the sales VAT ledger as CSV with a UTF-8 BOM.
func (h *ReportHandler) ExportLedgerCSV(c *gin.Context) {
	r, err := h.svc.BuildReport(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	var buf bytes.Buffer
	buf.Write(csvexport.BOM)
	w := csvexport.NewWriter(&buf)
	if err := w.WriteHeader(); err != nil {
		HandleError(c, err)
		return
	}
	if err := w.WriteLedger(r.SalesLedger); err != nil {
		HandleError(c, err)
		return
	}
	w.Flush()
	if err := w.Error(); err != nil {
		HandleError(c, err)
		return
	}

	filename := csvexport.BuildFilename("libro_ventas")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
