package handlers

import (
	"net/http"

	"weijob_backend/internal/middleware"
	"weijob_backend/internal/models"
	"weijob_backend/internal/services"
	"weijob_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	*BaseHandler
	jobService services.JobService
}

func NewJobHandler(base *BaseHandler, jobService services.JobService) *JobHandler {
	return &JobHandler{
		BaseHandler: base,
		jobService:  jobService,
	}
}

func (h *JobHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Public routes; detail resolves the identity when a token is sent,
	// since the contact gate needs it.
	public := r.Group("/jobs")
	{
		public.GET("", h.SearchJobs)
		public.GET("/:jobId", middleware.OptionalAuthMiddleware(), h.GetJob)
	}

	jobs := r.Group("/jobs")
	jobs.Use(middleware.AuthMiddleware())
	{
		jobs.POST("", h.PublishJob)
		jobs.GET("/my", h.MyJobs)
		jobs.PUT("/:jobId/status", h.UpdateJobStatus)
		jobs.DELETE("/:jobId", h.DeleteJob)
	}
}

func (h *JobHandler) SearchJobs(c *gin.Context) {
	var criteria dto.SearchJobsRequest
	if !h.BindAndValidate_Query(c, &criteria) {
		return
	}
	criteria.Page, criteria.PageSize = ParsePagination(c)

	jobs, total, err := h.jobService.SearchJobs(c.Request.Context(), h.GetDB(c), criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"jobs":  jobs,
		"total": total,
		"page":  criteria.Page,
	})
}

func (h *JobHandler) GetJob(c *gin.Context) {
	jobID := c.Param("jobId")
	userID := middleware.GetUserID(c)

	job, err := h.jobService.GetJob(c.Request.Context(), h.GetDB(c), jobID, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) PublishJob(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	req.PublisherID = userID

	job, err := h.jobService.PublishJob(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Job published successfully",
		"job":     job,
	})
}

func (h *JobHandler) MyJobs(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	jobs, err := h.jobService.MyJobs(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

func (h *JobHandler) UpdateJobStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateJobStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	err := h.jobService.UpdateJobStatus(c.Request.Context(), h.GetDB(c), c.Param("jobId"), userID, models.JobStatus(req.Status))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job status updated successfully"})
}

func (h *JobHandler) DeleteJob(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	err := h.jobService.DeleteJob(c.Request.Context(), h.GetDB(c), c.Param("jobId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job deleted successfully"})
}
