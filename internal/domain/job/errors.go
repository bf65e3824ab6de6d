package job

import "errors"

var (
	ErrNotFound = errors.New("job not found")
	ErrNotOwner = errors.New("you do not own this job")
)

// ValidationError carries a field-keyed map of messages. The caller must not
// persist anything when the map is non-empty.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "job validation failed" }
