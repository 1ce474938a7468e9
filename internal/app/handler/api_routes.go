package handler

import (
	"net/http"

	"gestic/internal/app/apperr"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes registers the REST API of the catalog.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	useValidations()

	api := router.Group("/api")

	roles := api.Group("/roles")
	{
		roles.GET("", h.ListRoles)
		roles.POST("", h.CreateRole)
		roles.GET("/:id", h.GetRole)
		roles.PUT("/:id", h.UpdateRole)
		roles.DELETE("/:id", h.DeleteRole)
		roles.GET("/:id/users", h.ListRoleUsers)
	}

	users := api.Group("/users")
	{
		users.GET("", h.ListUsers)
		users.POST("", h.CreateUser)
		users.GET("/:id", h.GetUser)
		users.PUT("/:id", h.UpdateUser)
		users.DELETE("/:id", h.DeleteUser)
		users.GET("/:id/requests", h.ListUserRequests)
		users.GET("/:id/services", h.ListUserServices)
	}

	categories := api.Group("/categories")
	{
		categories.GET("", h.ListCategories)
		categories.POST("", h.CreateCategory)
		categories.GET("/:id", h.GetCategory)
		categories.PUT("/:id", h.UpdateCategory)
		categories.DELETE("/:id", h.DeleteCategory)
		categories.GET("/:id/services", h.ListCategoryServices)
	}

	services := api.Group("/services")
	{
		services.GET("", h.ListServices)
		services.POST("", h.CreateService)
		services.GET("/:id", h.GetService)
		services.PUT("/:id", h.UpdateService) // ?audit=true records history
		services.DELETE("/:id", h.DeleteService)
		services.GET("/:id/history", h.ListServiceHistory)
		services.GET("/:id/requests", h.ListServiceRequests)
	}

	history := api.Group("/service-history")
	{
		history.GET("", h.ListHistory)
		history.POST("", h.CreateHistory)
		history.GET("/:id", h.GetHistory)
		history.PUT("/:id", h.UpdateHistory)
		history.DELETE("/:id", h.DeleteHistory)
	}

	requests := api.Group("/requests")
	{
		requests.GET("", h.ListRequests)
		requests.POST("", h.CreateRequest)
		requests.GET("/:id", h.GetRequest)
		requests.PUT("/:id", h.UpdateRequest)
		requests.DELETE("/:id", h.DeleteRequest)
	}

	catalog := api.Group("/catalog")
	{
		catalog.POST("/export", h.ExportCatalog)
		catalog.GET("/exports/:name", h.GetCatalogExport)
		catalog.DELETE("/exports/:name", h.DeleteCatalogExport)
	}

	router.GET("/ping", h.Ping)
	router.GET("/health", h.HealthCheck)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// Ping
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func (h *Handler) Ping(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// HealthCheck
// @Summary Readiness probe
// @Description Reports whether the database answers.
// @Tags Health
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /health [get]
func (h *Handler) HealthCheck(ctx *gin.Context) {
	if err := h.Health.Ping(ctx.Request.Context()); err != nil {
		h.errorResponse(ctx, apperr.From(err))
		return
	}
	h.successResponse(ctx, http.StatusOK, "store reachable", nil)
}
