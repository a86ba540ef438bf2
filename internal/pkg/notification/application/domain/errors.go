package notification

import "errors"

var (
	ErrRecipientRequired = errors.New("notification: recipient_id is required")
	ErrTypeRequired      = errors.New("notification: type is required")
	ErrContentRequired   = errors.New("notification: content is required")
	ErrInvalidBadgeKind  = errors.New("notification: badge kind must be all, messages or notifications")
)
