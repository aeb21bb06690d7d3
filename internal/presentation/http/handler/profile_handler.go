package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/receiptbook-api/internal/application/service"
	"github.com/sangkips/receiptbook-api/internal/domain/entity"
	"github.com/sangkips/receiptbook-api/internal/presentation/http/dto/request"
	"github.com/sangkips/receiptbook-api/internal/presentation/http/dto/response"
)

// ProfileHandler handles business and user profile HTTP requests
type ProfileHandler struct {
	profileService *service.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// GetBusinessProfile handles reading the business profile
func (h *ProfileHandler) GetBusinessProfile(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetBusinessProfile(c.Request.Context(), caller)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Business profile retrieved successfully", profile)
}

// SaveBusinessProfile handles replacing the business profile
func (h *ProfileHandler) SaveBusinessProfile(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req request.BusinessProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	profile, err := h.profileService.SaveBusinessProfile(c.Request.Context(), caller, entity.BusinessProfile{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		Phone:   req.Phone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Business profile saved successfully", profile)
}

// GetMyProfile handles reading the caller's own profile
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetCallerUserProfile(c.Request.Context(), caller)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Profile retrieved successfully", profile)
}

// SaveMyProfile handles replacing the caller's own profile
func (h *ProfileHandler) SaveMyProfile(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req request.UserProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	profile, err := h.profileService.SaveCallerUserProfile(c.Request.Context(), caller, entity.UserProfile{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Profile saved successfully", profile)
}

// GetUserProfile handles reading another user's profile
func (h *ProfileHandler) GetUserProfile(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	profile, err := h.profileService.GetUserProfile(c.Request.Context(), caller, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Profile retrieved successfully", profile)
}
