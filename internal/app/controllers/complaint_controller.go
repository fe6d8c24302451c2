package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/univoice/backend/internal/app/models"
	"github.com/univoice/backend/internal/app/models/dto"
	"github.com/univoice/backend/internal/app/services"
	"github.com/univoice/backend/internal/middleware"
)

// ComplaintController handles complaint lifecycle operations
type ComplaintController struct {
	complaintService services.ComplaintService
	logger           zerolog.Logger
}

// NewComplaintController creates a new ComplaintController
func NewComplaintController(complaintService services.ComplaintService, logger zerolog.Logger) *ComplaintController {
	return &ComplaintController{
		complaintService: complaintService,
		logger:           logger,
	}
}

// FileComplaint handles complaint submission by a student
// @Summary File a complaint
// @Description Creates a complaint for the authenticated student. Submissions containing abusive language are flagged for admin review instead of entering the queue.
// @Tags complaints
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.FileComplaintRequest true "Complaint content"
// @Success 201 {object} dto.APIResponse{data=models.Complaint} "Complaint filed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Only students can file complaints"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /complaints [post]
func (c *ComplaintController) FileComplaint(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	var req dto.FileComplaintRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	complaint, err := c.complaintService.FileComplaint(ctx.Request.Context(), actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      complaint,
		Timestamp: time.Now(),
	})
}

// ListComplaints lists the complaints visible to the authenticated user
// @Summary List visible complaints
// @Description Lists the complaints the authenticated user may see: admins see everything, students their own, mentors their mentees', wardens their hostel's.
// @Tags complaints
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(PENDING, IN_PROGRESS, RESOLVED, REJECTED, FLAGGED)
// @Success 200 {object} dto.APIResponse{data=[]models.Complaint} "Complaints retrieved"
// @Failure 400 {object} dto.ErrorResponse "Unknown status value"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /complaints [get]
func (c *ComplaintController) ListComplaints(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	var status *models.ComplaintStatus
	if raw := ctx.Query("status"); raw != "" {
		parsed := models.ComplaintStatus(strings.ToUpper(raw))
		if !parsed.IsValid() {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Unknown status value")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		status = &parsed
	}

	complaints, err := c.complaintService.ListComplaints(ctx.Request.Context(), actor, status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      complaints,
		Timestamp: time.Now(),
	})
}

// GetQueue returns the warden's bucketed complaint queue
// @Summary Warden complaint queue
// @Description Groups the authenticated warden's hostel complaints into urgent, pending, in-progress, completed and archived buckets.
// @Tags complaints
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ComplaintQueue} "Queue retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Wardens only"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /complaints/queue [get]
func (c *ComplaintController) GetQueue(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	queue, err := c.complaintService.WardenQueue(ctx.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      queue,
		Timestamp: time.Now(),
	})
}

// GetComplaint retrieves one complaint
// @Summary Get complaint details
// @Description Retrieves one complaint if it falls within the authenticated user's visible set
// @Tags complaints
// @Produce json
// @Security BearerAuth
// @Param id path int true "Complaint ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Complaint} "Complaint retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid complaint ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Complaint not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /complaints/{id} [get]
func (c *ComplaintController) GetComplaint(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	complaint, err := c.complaintService.GetComplaint(ctx.Request.Context(), actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      complaint,
		Timestamp: time.Now(),
	})
}

// UpdateStatus handles a warden's status transition
// @Summary Update complaint status
// @Description Moves a complaint to a new status. Only the warden of the complaint's hostel may do this; resolved, rejected and flagged complaints admit no further transition.
// @Tags complaints
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Complaint ID" Format(int64) minimum(1)
// @Param request body dto.UpdateStatusRequest true "Target status and optional comment"
// @Success 200 {object} dto.APIResponse{data=models.Complaint} "Status updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not the responsible warden"
// @Failure 404 {object} dto.ErrorResponse "Complaint not found"
// @Failure 409 {object} dto.ErrorResponse "Transition not allowed from the current status"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /complaints/{id}/status [put]
func (c *ComplaintController) UpdateStatus(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	complaint, err := c.complaintService.UpdateStatus(ctx.Request.Context(), actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      complaint,
		Timestamp: time.Now(),
	})
}

// Triage handles a mentor's urgency escalation
// @Summary Triage a complaint
// @Description Sets the urgency flag and mentor comment on a mentee's complaint. Available at any time regardless of the complaint's status.
// @Tags complaints
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Complaint ID" Format(int64) minimum(1)
// @Param request body dto.TriageRequest true "Urgency flag and optional comment"
// @Success 200 {object} dto.APIResponse{data=models.Complaint} "Complaint triaged"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not the student's mentor"
// @Failure 404 {object} dto.ErrorResponse "Complaint not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /complaints/{id}/triage [put]
func (c *ComplaintController) Triage(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.TriageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	complaint, err := c.complaintService.Triage(ctx.Request.Context(), actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      complaint,
		Timestamp: time.Now(),
	})
}

// DeleteComplaint permanently removes a complaint
// @Summary Delete a complaint
// @Description Permanently removes a complaint. Admin only.
// @Tags complaints
// @Produce json
// @Security BearerAuth
// @Param id path int true "Complaint ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse "Complaint deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid complaint ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Admins only"
// @Failure 404 {object} dto.ErrorResponse "Complaint not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /complaints/{id} [delete]
func (c *ComplaintController) DeleteComplaint(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.complaintService.DeleteComplaint(ctx.Request.Context(), actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      nil,
		Timestamp: time.Now(),
	})
}

// GetHostelCounts returns per-status complaint totals for a hostel
// @Summary Complaint counts for a hostel
// @Description Returns per-status complaint totals for one hostel. Admin only.
// @Tags complaints
// @Produce json
// @Security BearerAuth
// @Param id path int true "Hostel ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.ComplaintCounts} "Counts retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid hostel ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Admins only"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /hostels/{id}/complaints/counts [get]
func (c *ComplaintController) GetHostelCounts(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	counts, err := c.complaintService.CountsByHostel(ctx.Request.Context(), actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      counts,
		Timestamp: time.Now(),
	})
}
