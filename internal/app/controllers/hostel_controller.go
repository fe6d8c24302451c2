package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/univoice/backend/internal/app/models/dto"
	"github.com/univoice/backend/internal/app/services"
	"github.com/univoice/backend/internal/middleware"
)

// HostelController handles hostel management operations
type HostelController struct {
	hostelService services.HostelService
}

// NewHostelController creates a new HostelController
func NewHostelController(hostelService services.HostelService) *HostelController {
	return &HostelController{
		hostelService: hostelService,
	}
}

// CreateHostel handles hostel creation
// @Summary Create a hostel
// @Description Creates a new hostel. Admin only.
// @Tags hostels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateHostelRequest true "Hostel information"
// @Success 201 {object} dto.APIResponse{data=models.Hostel} "Hostel created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Admins only"
// @Failure 409 {object} dto.ErrorResponse "Hostel name already taken"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /hostels [post]
func (c *HostelController) CreateHostel(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	var req dto.CreateHostelRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	hostel, err := c.hostelService.CreateHostel(ctx.Request.Context(), actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      hostel,
		Timestamp: time.Now(),
	})
}

// ListHostels lists all hostels
// @Summary List hostels
// @Description Lists all hostels. Available to any authenticated user.
// @Tags hostels
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Hostel} "Hostels retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /hostels [get]
func (c *HostelController) ListHostels(ctx *gin.Context) {
	hostels, err := c.hostelService.ListHostels(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      hostels,
		Timestamp: time.Now(),
	})
}

// GetHostel retrieves one hostel
// @Summary Get hostel details
// @Description Retrieves one hostel by ID
// @Tags hostels
// @Produce json
// @Security BearerAuth
// @Param id path int true "Hostel ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Hostel} "Hostel retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid hostel ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Hostel not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /hostels/{id} [get]
func (c *HostelController) GetHostel(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	hostel, err := c.hostelService.GetHostel(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      hostel,
		Timestamp: time.Now(),
	})
}

// DeleteHostel removes a hostel
// @Summary Delete a hostel
// @Description Removes a hostel. Its residents and warden are unassigned; complaints keep the hostel they were filed against. Admin only.
// @Tags hostels
// @Produce json
// @Security BearerAuth
// @Param id path int true "Hostel ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse "Hostel deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid hostel ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Admins only"
// @Failure 404 {object} dto.ErrorResponse "Hostel not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /hostels/{id} [delete]
func (c *HostelController) DeleteHostel(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.hostelService.DeleteHostel(ctx.Request.Context(), actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      nil,
		Timestamp: time.Now(),
	})
}
