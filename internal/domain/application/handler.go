package application

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard/internal/domain/job"
	"jobboard/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Submit accepts a multipart form with the applicant fields and a "resume"
// file part.
func (h *Handler) Submit(c *gin.Context) {
	seekerID := c.GetString("user_id")
	jobID := c.Param("id")

	form := &Form{
		FullName:     c.PostForm("full_name"),
		Email:        c.PostForm("email"),
		Phone:        c.PostForm("phone"),
		CurrentRole:  c.PostForm("current_role"),
		Experience:   c.PostForm("experience"),
		Education:    c.PostForm("education"),
		PortfolioURL: c.PostForm("portfolio_url"),
		CoverLetter:  c.PostForm("cover_letter"),
	}

	var resume *Attachment
	if fh, err := c.FormFile("resume"); err == nil {
		if fh.Size > maxResumeSize {
			response.Error(c, http.StatusBadRequest, "INVALID_ATTACHMENT", ErrInvalidAttachment.Error())
			return
		}
		f, err := fh.Open()
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_ATTACHMENT", "Could not read resume file")
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_ATTACHMENT", "Could not read resume file")
			return
		}
		resume = &Attachment{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		}
	}

	app, err := h.service.Submit(c.Request.Context(), seekerID, jobID, form, resume)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, app)
}

// MyApplicationForJob answers whether the seeker already applied.
func (h *Handler) MyApplicationForJob(c *gin.Context) {
	app, err := h.service.GetForSeekerAndJob(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Success(c, http.StatusOK, gin.H{"applied": false})
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Lookup failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"applied": true, "application": app})
}

func (h *Handler) ListMine(c *gin.Context) {
	apps, err := h.service.ListForSeeker(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load applications")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"applications": apps})
}

func (h *Handler) ListForJob(c *gin.Context) {
	apps, err := h.service.ListForJob(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"applications": apps,
		"counts":       CountByStatus(apps),
	})
}

func (h *Handler) ListForEmployer(c *gin.Context) {
	apps, counts, err := h.service.ListForEmployer(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load applications")
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"applications": apps,
		"counts":       counts,
	})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	app, err := h.service.UpdateStatus(c.Request.Context(), c.GetString("user_id"), c.Param("id"), Status(req.Status))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, app)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Application validation failed", verr.Fields)
	case errors.Is(err, ErrAlreadyApplied):
		response.Error(c, http.StatusConflict, "ALREADY_APPLIED", err.Error())
	case errors.Is(err, ErrInvalidAttachment):
		response.Error(c, http.StatusBadRequest, "INVALID_ATTACHMENT", err.Error())
	case errors.Is(err, ErrInvalidStatus):
		response.Error(c, http.StatusBadRequest, "INVALID_STATUS", err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrNotJobOwner):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, ErrJobUnavailable):
		response.Error(c, http.StatusConflict, "JOB_UNAVAILABLE", err.Error())
	case errors.Is(err, job.ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
	}
}
