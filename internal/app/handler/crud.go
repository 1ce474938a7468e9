package handler

import (
	"net/http"

	"gestic/internal/app/ds"
	"gestic/internal/app/dto"
	"gestic/internal/app/repository"

	"github.com/gin-gonic/gin"
)

func listAll[T ds.Record](h *Handler, c *gin.Context, store repository.Store[T]) {
	items, err := store.List(c.Request.Context())
	if err != nil {
		h.errorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewList(items))
}

func getOne[T ds.Record](h *Handler, c *gin.Context, store repository.Store[T]) {
	id, err := parseID(c, "id")
	if err != nil {
		h.errorResponse(c, err)
		return
	}
	item, err := store.Get(c.Request.Context(), id)
	if err != nil {
		h.errorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func createOne[T ds.Record](h *Handler, c *gin.Context, store repository.Store[T], rec *T) {
	created, err := store.Create(c.Request.Context(), rec)
	if err != nil {
		h.errorResponse(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func updateOne[T ds.Record](h *Handler, c *gin.Context, store repository.Store[T], id uint, rec *T) {
	updated, err := store.Update(c.Request.Context(), id, rec)
	if err != nil {
		h.errorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func deleteOne[T ds.Record](h *Handler, c *gin.Context, store repository.Store[T]) {
	id, err := parseID(c, "id")
	if err != nil {
		h.errorResponse(c, err)
		return
	}
	if err := store.Delete(c.Request.Context(), id); err != nil {
		h.errorResponse(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// listChildren serves a back-reference view: the rows of children whose
// column points at the parent named by the :id path parameter. A missing
// parent is reported as not found rather than as an empty list.
func listChildren[P, T ds.Record](h *Handler, c *gin.Context, parent repository.Store[P], children repository.Store[T], column string) {
	id, err := parseID(c, "id")
	if err != nil {
		h.errorResponse(c, err)
		return
	}
	ctx := c.Request.Context()
	if _, err := parent.Get(ctx, id); err != nil {
		h.errorResponse(c, err)
		return
	}
	items, err := children.ListBy(ctx, column, id)
	if err != nil {
		h.errorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewList(items))
}
