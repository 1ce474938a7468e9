package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gestic/internal/app/apperr"
	"gestic/internal/app/dto"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var errExportsDisabled = errors.New("object storage is not configured")

func (h *Handler) exports() (SnapshotStore, error) {
	if h.Exports == nil {
		return nil, apperr.StoreUnavailable(errExportsDisabled)
	}
	return h.Exports, nil
}

func exportName(c *gin.Context) (string, error) {
	name := c.Param("name")
	if name == "" || strings.ContainsAny(name, "/\\") {
		return "", apperr.Validation("invalid export name", []apperr.FieldError{{Field: "name", Rule: "object"}}, nil)
	}
	return name, nil
}

// ExportCatalog
// @Summary Export the catalog
// @Description Writes a JSON snapshot of categories and services to object storage.
// @Tags Catalog
// @Produce json
// @Success 201 {object} dto.ExportResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/catalog/export [post]
func (h *Handler) ExportCatalog(c *gin.Context) {
	store, err := h.exports()
	if err != nil {
		h.errorResponse(c, err)
		return
	}
	ctx := c.Request.Context()

	categories, err := h.Categories.List(ctx)
	if err != nil {
		h.errorResponse(c, err)
		return
	}
	services, err := h.Services.List(ctx)
	if err != nil {
		h.errorResponse(c, err)
		return
	}

	snapshot := dto.NewCatalogSnapshot(h.now(), categories, services)
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		h.errorResponse(c, fmt.Errorf("encode snapshot: %w", err))
		return
	}

	name, err := store.UploadFile(ctx, data, "catalog.json")
	if err != nil {
		h.errorResponse(c, apperr.StoreUnavailable(err))
		return
	}
	url, err := store.GetFileURL(ctx, name)
	if err != nil {
		h.errorResponse(c, apperr.StoreUnavailable(err))
		return
	}

	logrus.WithFields(logrus.Fields{
		"object":     name,
		"categories": len(categories),
		"services":   len(services),
	}).Info("catalog exported")

	c.JSON(http.StatusCreated, dto.ExportResponse{
		Object:     name,
		URL:        url,
		Categories: len(categories),
		Services:   len(services),
	})
}

// GetCatalogExport
// @Summary Download link of an export
// @Tags Catalog
// @Produce json
// @Param name path string true "Object name"
// @Success 200 {object} dto.ExportURLResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/catalog/exports/{name} [get]
func (h *Handler) GetCatalogExport(c *gin.Context) {
	store, err := h.exports()
	if err != nil {
		h.errorResponse(c, err)
		return
	}
	name, err := exportName(c)
	if err != nil {
		h.errorResponse(c, err)
		return
	}
	ctx := c.Request.Context()

	exists, err := store.FileExists(ctx, name)
	if err != nil {
		h.errorResponse(c, apperr.StoreUnavailable(err))
		return
	}
	if !exists {
		h.errorResponse(c, apperr.Missing("export "+name+" not found"))
		return
	}

	url, err := store.GetFileURL(ctx, name)
	if err != nil {
		h.errorResponse(c, apperr.StoreUnavailable(err))
		return
	}
	c.JSON(http.StatusOK, dto.ExportURLResponse{Object: name, URL: url})
}

// DeleteCatalogExport
// @Summary Delete an export
// @Tags Catalog
// @Param name path string true "Object name"
// @Success 204
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/catalog/exports/{name} [delete]
func (h *Handler) DeleteCatalogExport(c *gin.Context) {
	store, err := h.exports()
	if err != nil {
		h.errorResponse(c, err)
		return
	}
	name, err := exportName(c)
	if err != nil {
		h.errorResponse(c, err)
		return
	}
	if err := store.DeleteFile(c.Request.Context(), name); err != nil {
		h.errorResponse(c, apperr.StoreUnavailable(err))
		return
	}
	c.Status(http.StatusNoContent)
}
