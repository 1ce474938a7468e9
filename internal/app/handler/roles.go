package handler

import (
	"gestic/internal/app/dto"

	"github.com/gin-gonic/gin"
)

// ListRoles
// @Summary List roles
// @Tags Roles
// @Produce json
// @Success 200 {object} dto.ListResponse[ds.Role]
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/roles [get]
func (h *Handler) ListRoles(c *gin.Context) {
	listAll(h, c, h.Roles)
}

// GetRole
// @Summary Get a role
// @Tags Roles
// @Produce json
// @Param id path int true "Role ID"
// @Success 200 {object} ds.Role
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/roles/{id} [get]
func (h *Handler) GetRole(c *gin.Context) {
	getOne(h, c, h.Roles)
}

// CreateRole
// @Summary Create a role
// @Tags Roles
// @Accept json
// @Produce json
// @Param request body dto.RolePayload true "Role"
// @Success 201 {object} ds.Role
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/roles [post]
func (h *Handler) CreateRole(c *gin.Context) {
	var payload dto.RolePayload
	if err := bindJSON(c, &payload); err != nil {
		h.errorResponse(c, err)
		return
	}
	role := payload.Model()
	createOne(h, c, h.Roles, &role)
}

// UpdateRole
// @Summary Replace a role
// @Tags Roles
// @Accept json
// @Produce json
// @Param id path int true "Role ID"
// @Param request body dto.RolePayload true "Role"
// @Success 200 {object} ds.Role
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/roles/{id} [put]
func (h *Handler) UpdateRole(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.errorResponse(c, err)
		return
	}
	var payload dto.RolePayload
	if err := bindJSON(c, &payload); err != nil {
		h.errorResponse(c, err)
		return
	}
	role := payload.Model()
	updateOne(h, c, h.Roles, id, &role)
}

// DeleteRole
// @Summary Delete a role
// @Description Fails with 409 while users still hold the role.
// @Tags Roles
// @Param id path int true "Role ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/roles/{id} [delete]
func (h *Handler) DeleteRole(c *gin.Context) {
	deleteOne(h, c, h.Roles)
}

// ListRoleUsers
// @Summary Users holding a role
// @Tags Roles
// @Produce json
// @Param id path int true "Role ID"
// @Success 200 {object} dto.ListResponse[ds.User]
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/roles/{id}/users [get]
func (h *Handler) ListRoleUsers(c *gin.Context) {
	listChildren(h, c, h.Roles, h.Users, "role_id")
}
