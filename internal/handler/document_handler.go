package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"haciendas/internal/domain"
	"haciendas/internal/service"
)

// DocumentHandler serves the settlement-document endpoints.
type DocumentHandler struct {
	svc           *service.DocumentService
	tmpDir        string
	maxFileSizeMB int64
}

func NewDocumentHandler(svc *service.DocumentService, tmpDir string, maxFileSizeMB int64) *DocumentHandler {
	return &DocumentHandler{svc: svc, tmpDir: tmpDir, maxFileSizeMB: maxFileSizeMB}
}

type uploadResponse struct {
	ID       uuid.UUID             `json:"id"`
	Role     domain.Role           `json:"role"`
	Document *domain.SettlementDoc `json:"document"`
}

// Upload receives a PDF as multipart form data, parses it and stores the
// result. The optional "role" field defaults to RECEPTOR.
func (h *DocumentHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxFileSizeMB<<20)

	file, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "multipart field 'file' is required")
		return
	}
	if !strings.EqualFold(filepath.Ext(file.Filename), ".pdf") {
		HandleError(c, domain.ErrUnsupportedFileType)
		return
	}

	role := domain.RoleRecipient
	if raw := c.PostForm("role"); raw != "" {
		role, err = domain.ParseRole(raw)
		if err != nil {
			HandleError(c, err)
			return
		}
	}

	// The parser needs a path, so the upload is staged on disk first.
	dst := filepath.Join(h.tmpDir, uuid.New().String()+"-"+filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, dst); err != nil {
		HandleError(c, err)
		return
	}
	defer os.Remove(dst)

	id, doc, err := h.svc.Ingest(c.Request.Context(), dst, filepath.Base(file.Filename), role)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, uploadResponse{ID: id, Role: role, Document: doc})
}

// List returns every stored document with its declared role.
func (h *DocumentHandler) List(c *gin.Context) {
	docs, err := h.svc.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, docs)
}

type setRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// SetRole reassigns the declared role of a stored document.
func (h *DocumentHandler) SetRole(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document id")
		return
	}

	var req setRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "field 'role' is required")
		return
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		HandleError(c, err)
		return
	}

	if err := h.svc.SetRole(c.Request.Context(), id, role); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"id": id, "role": role})
}

// Delete removes a stored document.
func (h *DocumentHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document id")
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"id": id, "deleted": true})
}
