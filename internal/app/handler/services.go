package handler

import (
	"net/http"
	"strconv"

	"gestic/internal/app/apperr"
	"gestic/internal/app/dto"
	"gestic/internal/app/middleware"

	"github.com/gin-gonic/gin"
)

// ListServices
// @Summary List services
// @Description Each service carries its resolved category and creator.
// @Tags Services
// @Produce json
// @Success 200 {object} dto.ListResponse[ds.Service]
// @Router /api/services [get]
func (h *Handler) ListServices(c *gin.Context) {
	listAll(h, c, h.Services)
}

// GetService
// @Summary Get a service
// @Tags Services
// @Produce json
// @Param id path int true "Service ID"
// @Success 200 {object} ds.Service
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/services/{id} [get]
func (h *Handler) GetService(c *gin.Context) {
	getOne(h, c, h.Services)
}

// CreateService
// @Summary Create a service
// @Description Status defaults to ACTIVE.
// @Tags Services
// @Accept json
// @Produce json
// @Param request body dto.ServicePayload true "Service"
// @Success 201 {object} ds.Service
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/services [post]
func (h *Handler) CreateService(c *gin.Context) {
	var payload dto.ServicePayload
	if err := bindJSON(c, &payload); err != nil {
		h.errorResponse(c, err)
		return
	}
	svc := payload.Model()
	createOne(h, c, h.Services, &svc)
}

// UpdateService
// @Summary Replace a service
// @Description With audit=true every changed field is appended to the service history, attributed to X-User-ID.
// @Tags Services
// @Accept json
// @Produce json
// @Param id path int true "Service ID"
// @Param audit query bool false "Record the change in the service history"
// @Param X-User-ID header int false "Acting user"
// @Param request body dto.ServicePayload true "Service"
// @Success 200 {object} ds.Service
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/services/{id} [put]
func (h *Handler) UpdateService(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.errorResponse(c, err)
		return
	}
	audit := false
	if raw := c.Query("audit"); raw != "" {
		if audit, err = strconv.ParseBool(raw); err != nil {
			h.errorResponse(c, apperr.Validation("invalid audit flag: "+raw, []apperr.FieldError{{Field: "audit", Rule: "bool"}}, err))
			return
		}
	}

	var payload dto.ServicePayload
	if err := bindJSON(c, &payload); err != nil {
		h.errorResponse(c, err)
		return
	}
	svc := payload.Model()

	if !audit {
		updateOne(h, c, h.Services, id, &svc)
		return
	}

	var changedBy *uint
	if uid, ok := middleware.ActingUserID(c); ok {
		changedBy = &uid
	}
	updated, history, err := h.Auditor.UpdateServiceAudited(c.Request.Context(), id, &svc, changedBy)
	if err != nil {
		h.errorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AuditedUpdateResponse{Service: updated, History: history})
}

// DeleteService
// @Summary Delete a service
// @Description Its history goes with it. Fails with 409 while requests reference it.
// @Tags Services
// @Param id path int true "Service ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/services/{id} [delete]
func (h *Handler) DeleteService(c *gin.Context) {
	deleteOne(h, c, h.Services)
}

// ListServiceHistory
// @Summary History of a service
// @Tags Services
// @Produce json
// @Param id path int true "Service ID"
// @Success 200 {object} dto.ListResponse[ds.ServiceHistory]
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/services/{id}/history [get]
func (h *Handler) ListServiceHistory(c *gin.Context) {
	listChildren(h, c, h.Services, h.History, "service_id")
}

// ListServiceRequests
// @Summary Requests for a service
// @Tags Services
// @Produce json
// @Param id path int true "Service ID"
// @Success 200 {object} dto.ListResponse[ds.Request]
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/services/{id}/requests [get]
func (h *Handler) ListServiceRequests(c *gin.Context) {
	listChildren(h, c, h.Services, h.Requests, "service_id")
}
