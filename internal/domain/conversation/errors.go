package conversation

import "errors"

var (
	ErrNotFound           = errors.New("conversation not found")
	ErrInvalidParticipant = errors.New("sender is not a participant of this conversation")
	ErrEmptyMessage       = errors.New("message text is required")
	ErrSelfConversation   = errors.New("cannot start a conversation with yourself")
)
