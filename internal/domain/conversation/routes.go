package conversation

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the messaging endpoints under the protected group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	convs := rg.Group("/conversations")
	{
		convs.POST("", h.Start)
		convs.GET("", h.ListMine)
		convs.GET("/:id", h.Get)
		convs.GET("/:id/messages", h.Messages)
		convs.POST("/:id/messages", h.Send)
	}
}

// RegisterRoutes mounts the live feed; token arrives as a query parameter.
func (h *WSHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ws/conversations/:id", h.Stream)
}
