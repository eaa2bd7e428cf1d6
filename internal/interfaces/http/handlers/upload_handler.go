package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/krishnashakula/LeaseIQ/internal/application/upload"
	pkgerrors "github.com/krishnashakula/LeaseIQ/pkg/errors"
)

// UploadService accepts documents into the pipeline.
type UploadService interface {
	Accept(ctx context.Context, filename, contentType string, size int64, r io.Reader) (*upload.Receipt, error)
}

// UploadHandler serves document uploads.
type UploadHandler struct {
	service UploadService
}

// NewUploadHandler builds the handler.
func NewUploadHandler(service UploadService) *UploadHandler {
	return &UploadHandler{service: service}
}

// Register mounts the upload route on the given group.
func (h *UploadHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/documents", h.create)
}

func (h *UploadHandler) create(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		writeError(c, pkgerrors.Wrap(err, pkgerrors.ErrCodeBadRequest,
			`multipart field "file" is required`))
		return
	}

	src, err := file.Open()
	if err != nil {
		writeError(c, pkgerrors.Wrap(err, pkgerrors.ErrCodeLeaseDocumentInvalid, "open upload"))
		return
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	receipt, err := h.service.Accept(c.Request.Context(),
		file.Filename, contentType, file.Size, src)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":      "accepted",
		"document_id": receipt.DocumentID,
		"job_id":      receipt.JobID,
	})
}
