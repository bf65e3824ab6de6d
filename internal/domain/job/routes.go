package job

import (
	"github.com/gin-gonic/gin"

	"jobboard/internal/middleware"
)

// RegisterPublicRoutes mounts the browse endpoints.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	jobs := rg.Group("/jobs")
	{
		jobs.GET("", h.ListPublished)
		jobs.GET("/:id", h.GetByID)
	}
}

// RegisterEmployerRoutes mounts posting management, employer role only.
func (h *Handler) RegisterEmployerRoutes(rg *gin.RouterGroup) {
	jobs := rg.Group("/employer/jobs")
	jobs.Use(middleware.RequireRole("employer"))
	{
		jobs.GET("", h.ListMine)
		jobs.POST("", h.Create)
		jobs.POST("/draft", h.CreateDraft)
		jobs.PUT("/:id", h.Update)
		jobs.POST("/:id/publish", h.Publish)
		jobs.DELETE("/:id", h.Delete)
	}
}
