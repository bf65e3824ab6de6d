package job

import (
	"errors"
	"net/http"
	"time"

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

// listItem is the read model the browse and dashboard views consume.
type listItem struct {
	*Job
	Posted string `json:"posted"`
}

func toListItems(jobs []*Job) []listItem {
	items := make([]listItem, 0, len(jobs))
	for _, j := range jobs {
		items = append(items, listItem{Job: j, Posted: timeutil.Relative(j.CreatedAt)})
	}
	return items
}

// ListPublished serves the public browse page. When the store is empty the
// fixed sample set is served instead so the page is never blank.
func (h *Handler) ListPublished(c *gin.Context) {
	filter := Filter{
		Query:    c.Query("q"),
		Location: c.Query("location"),
	}

	jobs, err := h.service.ListPublished(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load jobs")
		return
	}

	fallback := false
	if len(jobs) == 0 && filter.Query == "" && filter.Location == "" {
		jobs = SampleJobs(time.Now())
		fallback = true
	}

	response.Success(c, http.StatusOK, gin.H{
		"jobs":   toListItems(jobs),
		"count":  len(jobs),
		"sample": fallback,
	})
}

func (h *Handler) GetByID(c *gin.Context) {
	j, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Job not found")
		return
	}
	// Drafts are only visible to their employer
	if j.Status == StatusDraft && j.EmployerID != c.GetString("user_id") {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Job not found")
		return
	}
	response.Success(c, http.StatusOK, listItem{Job: j, Posted: timeutil.Relative(j.CreatedAt)})
}

func (h *Handler) Create(c *gin.Context) {
	h.createWithStatus(c, false)
}

func (h *Handler) CreateDraft(c *gin.Context) {
	h.createWithStatus(c, true)
}

func (h *Handler) createWithStatus(c *gin.Context, draft bool) {
	employerID := c.GetString("user_id")
	var form Form
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}

	var (
		j   *Job
		err error
	)
	if draft {
		j, err = h.service.CreateDraft(c.Request.Context(), employerID, &form)
	} else {
		j, err = h.service.Create(c.Request.Context(), employerID, &form)
	}
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, j)
}

func (h *Handler) Update(c *gin.Context) {
	var form Form
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	j, err := h.service.Update(c.Request.Context(), c.GetString("user_id"), c.Param("id"), &form)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, j)
}

func (h *Handler) Publish(c *gin.Context) {
	j, err := h.service.Publish(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, j)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.GetString("user_id"), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) ListMine(c *gin.Context) {
	jobs, err := h.service.ListByEmployer(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load jobs")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"jobs": toListItems(jobs)})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Job validation failed", verr.Fields)
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Job not found")
	case errors.Is(err, ErrNotOwner):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
	}
}
