package handler

import (
	"gestic/internal/app/dto"

	"github.com/gin-gonic/gin"
)

// ListCategories
// @Summary List categories
// @Tags Categories
// @Produce json
// @Success 200 {object} dto.ListResponse[ds.Category]
// @Router /api/categories [get]
func (h *Handler) ListCategories(c *gin.Context) {
	listAll(h, c, h.Categories)
}

// GetCategory
// @Summary Get a category
// @Tags Categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} ds.Category
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/categories/{id} [get]
func (h *Handler) GetCategory(c *gin.Context) {
	getOne(h, c, h.Categories)
}

// CreateCategory
// @Summary Create a category
// @Tags Categories
// @Accept json
// @Produce json
// @Param request body dto.CategoryPayload true "Category"
// @Success 201 {object} ds.Category
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/categories [post]
func (h *Handler) CreateCategory(c *gin.Context) {
	var payload dto.CategoryPayload
	if err := bindJSON(c, &payload); err != nil {
		h.errorResponse(c, err)
		return
	}
	category := payload.Model()
	createOne(h, c, h.Categories, &category)
}

// UpdateCategory
// @Summary Replace a category
// @Tags Categories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param request body dto.CategoryPayload true "Category"
// @Success 200 {object} ds.Category
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/categories/{id} [put]
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.errorResponse(c, err)
		return
	}
	var payload dto.CategoryPayload
	if err := bindJSON(c, &payload); err != nil {
		h.errorResponse(c, err)
		return
	}
	category := payload.Model()
	updateOne(h, c, h.Categories, id, &category)
}

// DeleteCategory
// @Summary Delete a category
// @Description Services of the category keep existing without one.
// @Tags Categories
// @Param id path int true "Category ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/categories/{id} [delete]
func (h *Handler) DeleteCategory(c *gin.Context) {
	deleteOne(h, c, h.Categories)
}

// ListCategoryServices
// @Summary Services of a category
// @Tags Categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} dto.ListResponse[ds.Service]
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/categories/{id}/services [get]
func (h *Handler) ListCategoryServices(c *gin.Context) {
	listChildren(h, c, h.Categories, h.Services, "category_id")
}
