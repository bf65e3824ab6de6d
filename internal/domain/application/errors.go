package application

import "errors"

var (
	ErrAlreadyApplied    = errors.New("you have already applied to this job")
	ErrInvalidAttachment = errors.New("resume must be a PDF, DOC or DOCX up to 5 MiB")
	ErrNotFound          = errors.New("application not found")
	ErrNotJobOwner       = errors.New("you do not own the job for this application")
	ErrInvalidStatus     = errors.New("unknown application status")
	ErrJobUnavailable    = errors.New("job is not open for applications")
)

// ValidationError carries a field-keyed map of messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "application validation failed" }
