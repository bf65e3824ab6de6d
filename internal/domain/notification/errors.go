package notification

import "errors"

var (
	ErrNotFound     = errors.New("notification not found")
	ErrNotRecipient = errors.New("notification belongs to another user")
)
