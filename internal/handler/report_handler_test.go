package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"haciendas/internal/csvexport"
	"haciendas/internal/domain"
	"haciendas/internal/service"
)

func reportRouter(t *testing.T, repo *memRepo) *gin.Engine {
	t.Helper()
	svc := service.NewDocumentService(stubParser{}, repo, 1)
	h := NewReportHandler(svc)

	r := gin.New()
	r.GET("/reports", h.Grids)
	r.GET("/reports/export.xlsx", h.ExportXLSX)
	r.GET("/reports/ledger.csv", h.ExportLedgerCSV)
	return r
}

func seededRepo(t *testing.T) *memRepo {
	t.Helper()
	repo := &memRepo{}
	_, err := repo.Save(context.Background(), &domain.SettlementDoc{
		Filename:     "liq.pdf",
		TypeCode:     186,
		InternalType: "CD",
		IssueDate:    "15/03/2024",
		Issuer:       domain.Party{CUIT: "30712345678", Name: "GANADERA DEL SUR S.A."},
		GrossAmount:  95000,
		VATOnGross:   9975,
		Items: []domain.LineItem{
			{Category: "Novillo", HeadCount: 50, Unit: domain.UnitHead, Gross: 95000},
		},
	}, domain.RoleRecipient)
	require.NoError(t, err)
	return repo
}

func TestReportGrids(t *testing.T) {
	r := reportRouter(t, seededRepo(t))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"sales"`)
	assert.Contains(t, w.Body.String(), "GANADERA DEL SUR S.A.")
}

func TestReportExportXLSX(t *testing.T) {
	r := reportRouter(t, seededRepo(t))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports/export.xlsx", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), "Ventas")
}

func TestReportExportLedgerCSV(t *testing.T) {
	r := reportRouter(t, seededRepo(t))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports/ledger.csv", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.Bytes()
	assert.True(t, bytes.HasPrefix(body, csvexport.BOM))
	assert.Contains(t, string(body), "CUIT Cliente")
	assert.Contains(t, string(body), "30712345678")
}
