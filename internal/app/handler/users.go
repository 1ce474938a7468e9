package handler

import (
	"strings"

	"gestic/internal/app/apperr"
	"gestic/internal/app/ds"
	"gestic/internal/app/dto"

	"github.com/gin-gonic/gin"
)

func hashPassword(plain string) (string, error) {
	hash, err := ds.HashPassword(plain)
	if err != nil {
		return "", apperr.Validation("password cannot be hashed", []apperr.FieldError{{Field: "Password", Rule: "hash"}}, err)
	}
	return hash, nil
}

// ListUsers
// @Summary List users
// @Description Each user carries its resolved role. Password hashes are never returned.
// @Tags Users
// @Produce json
// @Success 200 {object} dto.ListResponse[ds.User]
// @Router /api/users [get]
func (h *Handler) ListUsers(c *gin.Context) {
	listAll(h, c, h.Users)
}

// GetUser
// @Summary Get a user
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} ds.User
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/users/{id} [get]
func (h *Handler) GetUser(c *gin.Context) {
	getOne(h, c, h.Users)
}

// CreateUser
// @Summary Create a user
// @Tags Users
// @Accept json
// @Produce json
// @Param request body dto.UserCreatePayload true "User"
// @Success 201 {object} ds.User
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/users [post]
func (h *Handler) CreateUser(c *gin.Context) {
	var payload dto.UserCreatePayload
	if err := bindJSON(c, &payload); err != nil {
		h.errorResponse(c, err)
		return
	}
	hash, err := hashPassword(payload.Password)
	if err != nil {
		h.errorResponse(c, err)
		return
	}
	user := ds.User{
		Username:     strings.TrimSpace(payload.Username),
		PasswordHash: hash,
		Email:        strings.TrimSpace(payload.Email),
		RoleID:       payload.RoleID,
	}
	createOne(h, c, h.Users, &user)
}

// UpdateUser
// @Summary Replace a user
// @Description An empty password keeps the stored one.
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body dto.UserUpdatePayload true "User"
// @Success 200 {object} ds.User
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/users/{id} [put]
func (h *Handler) UpdateUser(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.errorResponse(c, err)
		return
	}
	var payload dto.UserUpdatePayload
	if err := bindJSON(c, &payload); err != nil {
		h.errorResponse(c, err)
		return
	}

	user := ds.User{
		Username: strings.TrimSpace(payload.Username),
		Email:    strings.TrimSpace(payload.Email),
		RoleID:   payload.RoleID,
	}
	if payload.Password != "" {
		if user.PasswordHash, err = hashPassword(payload.Password); err != nil {
			h.errorResponse(c, err)
			return
		}
	} else {
		current, err := h.Users.Get(c.Request.Context(), id)
		if err != nil {
			h.errorResponse(c, err)
			return
		}
		user.PasswordHash = current.PasswordHash
	}
	updateOne(h, c, h.Users, id, &user)
}

// DeleteUser
// @Summary Delete a user
// @Description Fails with 409 while the user has requests. Services and history entries lose their author.
// @Tags Users
// @Param id path int true "User ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/users/{id} [delete]
func (h *Handler) DeleteUser(c *gin.Context) {
	deleteOne(h, c, h.Users)
}

// ListUserRequests
// @Summary Requests made by a user
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} dto.ListResponse[ds.Request]
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/users/{id}/requests [get]
func (h *Handler) ListUserRequests(c *gin.Context) {
	listChildren(h, c, h.Users, h.Requests, "user_id")
}

// ListUserServices
// @Summary Services created by a user
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} dto.ListResponse[ds.Service]
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/users/{id}/services [get]
func (h *Handler) ListUserServices(c *gin.Context) {
	listChildren(h, c, h.Users, h.Services, "created_by")
}
