package handlers

import (
	"net/http"

	"weijob_backend/internal/middleware"
	"weijob_backend/internal/services"
	"weijob_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ShareHandler struct {
	*BaseHandler
	shareService services.ShareService
}

func NewShareHandler(base *BaseHandler, shareService services.ShareService) *ShareHandler {
	return &ShareHandler{
		BaseHandler:  base,
		shareService: shareService,
	}
}

func (h *ShareHandler) RegisterRoutes(r *gin.RouterGroup) {
	shares := r.Group("/shares")
	shares.Use(middleware.AuthMiddleware())
	{
		shares.POST("/unlock", h.Unlock)
		shares.POST("/check", h.Check)
		shares.GET("/my", h.MyShares)
	}
}

// Unlock records a share action and unlocks the job's publish day for
// the caller. Unlocking an already-unlocked day returns the existing
// record with 200, never a conflict.
func (h *ShareHandler) Unlock(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UnlockRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.shareService.Unlock(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Check answers whether the job's contact fields are open for the caller.
func (h *ShareHandler) Check(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CheckRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.shareService.Check(c.Request.Context(), h.GetDB(c), userID, req.JobID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ShareHandler) MyShares(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	_, pageSize := ParsePagination(c)
	items, err := h.shareService.History(c.Request.Context(), h.GetDB(c), userID, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shares": items})
}
