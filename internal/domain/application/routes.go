package application

import (
	"github.com/gin-gonic/gin"

	"jobboard/internal/middleware"
)

// RegisterSeekerRoutes mounts the apply and my-applications endpoints.
func (h *Handler) RegisterSeekerRoutes(rg *gin.RouterGroup) {
	rg.POST("/jobs/:id/apply", h.Submit)
	rg.GET("/jobs/:id/application", h.MyApplicationForJob)
	rg.GET("/applications", h.ListMine)
}

// RegisterEmployerRoutes mounts the review endpoints, employer role only.
func (h *Handler) RegisterEmployerRoutes(rg *gin.RouterGroup) {
	emp := rg.Group("/employer")
	emp.Use(middleware.RequireRole("employer"))
	{
		emp.GET("/applications", h.ListForEmployer)
		emp.GET("/jobs/:id/applications", h.ListForJob)
		emp.PUT("/applications/:id/status", h.UpdateStatus)
	}
}
