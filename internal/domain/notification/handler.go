package notification

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard/internal/pkg/response"
	"jobboard/internal/pkg/timeutil"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// feedItem is the read model for the feed: the row plus a rendered summary
// line and a humanized timestamp.
type feedItem struct {
	*Notification
	Summary string `json:"summary"`
	When    string `json:"when"`
}

func (h *Handler) List(c *gin.Context) {
	userID := c.GetString("user_id")
	ns, err := h.service.ListForUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load notifications")
		return
	}

	items := make([]feedItem, 0, len(ns))
	unread := int64(0)
	for _, n := range ns {
		if !n.Read {
			unread++
		}
		items = append(items, feedItem{
			Notification: n,
			Summary:      n.Summary(),
			When:         timeutil.Relative(n.CreatedAt),
		})
	}
	response.Success(c, http.StatusOK, gin.H{
		"notifications": items,
		"unread_count":  unread,
	})
}

func (h *Handler) UnreadCount(c *gin.Context) {
	count, err := h.service.CountUnread(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to count notifications")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"unread_count": count})
}

func (h *Handler) MarkRead(c *gin.Context) {
	err := h.service.MarkRead(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"read": true})
}

func (h *Handler) MarkAllRead(c *gin.Context) {
	flipped, err := h.service.MarkAllRead(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update notifications")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"marked": flipped})
}

// Resolve marks the item read and tells the client where to navigate.
func (h *Handler) Resolve(c *gin.Context) {
	target, err := h.service.Resolve(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"target": target})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrNotRecipient):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
	}
}
