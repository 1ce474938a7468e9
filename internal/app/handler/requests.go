package handler

import (
	"gestic/internal/app/dto"

	"github.com/gin-gonic/gin"
)

// ListRequests
// @Summary List service requests
// @Tags Requests
// @Produce json
// @Success 200 {object} dto.ListResponse[ds.Request]
// @Router /api/requests [get]
func (h *Handler) ListRequests(c *gin.Context) {
	listAll(h, c, h.Requests)
}

// GetRequest
// @Summary Get a service request
// @Tags Requests
// @Produce json
// @Param id path int true "Request ID"
// @Success 200 {object} ds.Request
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/requests/{id} [get]
func (h *Handler) GetRequest(c *gin.Context) {
	getOne(h, c, h.Requests)
}

// CreateRequest
// @Summary Request a service
// @Description Status defaults to PENDING and request_date to the current time.
// @Tags Requests
// @Accept json
// @Produce json
// @Param request body dto.RequestPayload true "Request"
// @Success 201 {object} ds.Request
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/requests [post]
func (h *Handler) CreateRequest(c *gin.Context) {
	var payload dto.RequestPayload
	if err := bindJSON(c, &payload); err != nil {
		h.errorResponse(c, err)
		return
	}
	req := payload.Model()
	createOne(h, c, h.Requests, &req)
}

// UpdateRequest
// @Summary Replace a service request
// @Description An omitted request_date keeps the stored one.
// @Tags Requests
// @Accept json
// @Produce json
// @Param id path int true "Request ID"
// @Param request body dto.RequestPayload true "Request"
// @Success 200 {object} ds.Request
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/requests/{id} [put]
func (h *Handler) UpdateRequest(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.errorResponse(c, err)
		return
	}
	var payload dto.RequestPayload
	if err := bindJSON(c, &payload); err != nil {
		h.errorResponse(c, err)
		return
	}
	req := payload.Model()
	if payload.RequestDate == nil {
		current, err := h.Requests.Get(c.Request.Context(), id)
		if err != nil {
			h.errorResponse(c, err)
			return
		}
		req.RequestDate = current.RequestDate
	}
	updateOne(h, c, h.Requests, id, &req)
}

// DeleteRequest
// @Summary Delete a service request
// @Tags Requests
// @Param id path int true "Request ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/requests/{id} [delete]
func (h *Handler) DeleteRequest(c *gin.Context) {
	deleteOne(h, c, h.Requests)
}
