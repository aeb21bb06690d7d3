package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/receiptbook-api/internal/application/service"
	"github.com/sangkips/receiptbook-api/internal/presentation/http/dto/request"
	"github.com/sangkips/receiptbook-api/internal/presentation/http/dto/response"
)

// RoleHandler handles role HTTP requests
type RoleHandler struct {
	roleService *service.RoleService
}

// NewRoleHandler creates a new role handler
func NewRoleHandler(roleService *service.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

// GetMyRole handles reading the caller's role
func (h *RoleHandler) GetMyRole(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	role, err := h.roleService.GetCallerUserRole(c.Request.Context(), caller)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Role retrieved successfully", gin.H{"role": role})
}

// IsAdmin handles checking whether the caller is an admin
func (h *RoleHandler) IsAdmin(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	isAdmin, err := h.roleService.IsCallerAdmin(c.Request.Context(), caller)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Role retrieved successfully", gin.H{"is_admin": isAdmin})
}

// AssignRole handles setting a user's role
func (h *RoleHandler) AssignRole(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	var req request.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.roleService.AssignCallerUserRole(c.Request.Context(), caller, userID, req.Role); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Role assigned successfully", gin.H{"user_id": userID, "role": req.Role})
}
