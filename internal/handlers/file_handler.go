package handlers

import (
	"io"
	"net/http"

	"weijob_backend/internal/storage"
	"weijob_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type FileHandler struct {
	*BaseHandler
	storage storage.Storage
}

func NewFileHandler(base *BaseHandler, st storage.Storage) *FileHandler {
	return &FileHandler{
		BaseHandler: base,
		storage:     st,
	}
}

func (h *FileHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/files/*path", h.ServeFile)
}

// ServeFile streams an uploaded file from storage.
func (h *FileHandler) ServeFile(c *gin.Context) {
	path := c.Param("path")

	exists, err := h.storage.Exists(c.Request.Context(), path)
	if err != nil {
		h.HandleServiceError(c, apperrors.ErrStorage(err))
		return
	}
	if !exists {
		apperrors.HandleError(c, apperrors.ErrNotFound(nil))
		return
	}

	reader, err := h.storage.Get(c.Request.Context(), path)
	if err != nil {
		h.HandleServiceError(c, apperrors.ErrStorage(err))
		return
	}
	defer reader.Close()

	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, reader)
}
