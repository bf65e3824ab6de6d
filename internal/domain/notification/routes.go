package notification

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the feed endpoints under the protected group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	ns := rg.Group("/notifications")
	{
		ns.GET("", h.List)
		ns.GET("/unread-count", h.UnreadCount)
		ns.PUT("/:id/read", h.MarkRead)
		ns.PUT("/read-all", h.MarkAllRead)
		ns.POST("/:id/resolve", h.Resolve)
	}
}

// RegisterRoutes mounts the counter feed; token arrives as a query parameter.
func (h *WSHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ws/notifications", h.Stream)
}
