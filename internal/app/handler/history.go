package handler

import (
	"gestic/internal/app/dto"

	"github.com/gin-gonic/gin"
)

// ListHistory
// @Summary List service history entries
// @Tags ServiceHistory
// @Produce json
// @Success 200 {object} dto.ListResponse[ds.ServiceHistory]
// @Router /api/service-history [get]
func (h *Handler) ListHistory(c *gin.Context) {
	listAll(h, c, h.History)
}

// GetHistory
// @Summary Get a service history entry
// @Tags ServiceHistory
// @Produce json
// @Param id path int true "Entry ID"
// @Success 200 {object} ds.ServiceHistory
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/service-history/{id} [get]
func (h *Handler) GetHistory(c *gin.Context) {
	getOne(h, c, h.History)
}

// CreateHistory
// @Summary Record a service history entry
// @Description change_date defaults to the current time. Values are stored as given.
// @Tags ServiceHistory
// @Accept json
// @Produce json
// @Param request body dto.HistoryPayload true "Entry"
// @Success 201 {object} ds.ServiceHistory
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/service-history [post]
func (h *Handler) CreateHistory(c *gin.Context) {
	var payload dto.HistoryPayload
	if err := bindJSON(c, &payload); err != nil {
		h.errorResponse(c, err)
		return
	}
	entry := payload.Model()
	createOne(h, c, h.History, &entry)
}

// UpdateHistory
// @Summary Replace a service history entry
// @Description An omitted change_date keeps the stored one.
// @Tags ServiceHistory
// @Accept json
// @Produce json
// @Param id path int true "Entry ID"
// @Param request body dto.HistoryPayload true "Entry"
// @Success 200 {object} ds.ServiceHistory
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/service-history/{id} [put]
func (h *Handler) UpdateHistory(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.errorResponse(c, err)
		return
	}
	var payload dto.HistoryPayload
	if err := bindJSON(c, &payload); err != nil {
		h.errorResponse(c, err)
		return
	}
	entry := payload.Model()
	if payload.ChangeDate == nil {
		current, err := h.History.Get(c.Request.Context(), id)
		if err != nil {
			h.errorResponse(c, err)
			return
		}
		entry.ChangeDate = current.ChangeDate
	}
	updateOne(h, c, h.History, id, &entry)
}

// DeleteHistory
// @Summary Delete a service history entry
// @Tags ServiceHistory
// @Param id path int true "Entry ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/service-history/{id} [delete]
func (h *Handler) DeleteHistory(c *gin.Context) {
	deleteOne(h, c, h.History)
}
