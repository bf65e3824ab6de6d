package conversation

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard/internal/pkg/response"
	"jobboard/internal/pkg/timeutil"
	"jobboard/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type startRequest struct {
	SeekerID string `json:"seeker_id" validate:"required"`
	JobID    string `json:"job_id"`
	JobTitle string `json:"job_title"`
	Message  string `json:"message" validate:"required"`
}

// Start opens a new thread. Employer-initiated: the caller is the employer
// side of the pair.
func (h *Handler) Start(c *gin.Context) {
	var req startRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid conversation data", fields)
		return
	}

	conv, err := h.service.Start(c.Request.Context(), c.GetString("user_id"), req.SeekerID, req.JobID, req.JobTitle, req.Message)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, conv)
}

// listItem is the read model for the conversation list: the counterpart's
// name and a humanized timestamp alongside the stored row.
type listItem struct {
	*Conversation
	OtherName string `json:"other_name"`
	LastAt    string `json:"last_at"`
}

func (h *Handler) ListMine(c *gin.Context) {
	userID := c.GetString("user_id")
	convs, err := h.service.ListForUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load conversations")
		return
	}

	items := make([]listItem, 0, len(convs))
	for _, conv := range convs {
		items = append(items, listItem{
			Conversation: conv,
			OtherName:    conv.OtherName(userID),
			LastAt:       timeutil.Relative(conv.LastMessageAt),
		})
	}
	response.Success(c, http.StatusOK, gin.H{"conversations": items})
}

func (h *Handler) Get(c *gin.Context) {
	conv, err := h.service.Get(c.Request.Context(), c.Param("id"), c.GetString("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, conv)
}

func (h *Handler) Messages(c *gin.Context) {
	msgs, err := h.service.Messages(c.Request.Context(), c.Param("id"), c.GetString("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"messages": msgs})
}

type sendRequest struct {
	Message string `json:"message" validate:"required"`
}

func (h *Handler) Send(c *gin.Context) {
	var req sendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}

	msg, err := h.service.Send(c.Request.Context(), c.Param("id"), c.GetString("user_id"), req.Message)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, msg)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrInvalidParticipant):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, ErrEmptyMessage):
		response.Error(c, http.StatusBadRequest, "EMPTY_MESSAGE", err.Error())
	case errors.Is(err, ErrSelfConversation):
		response.Error(c, http.StatusBadRequest, "SELF_CONVERSATION", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
	}
}
