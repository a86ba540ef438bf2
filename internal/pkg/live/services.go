package live

import (
	"go-hrdesk/internal/infrastructure/changefeed"
	"go-hrdesk/internal/infrastructure/logger"
)

// Services are the collaborators view models are built from.
type Services struct {
	Feed          changefeed.Subscriber
	Messages      MessageLister
	Reader        MessageReader
	Sender        MessageSender
	Conversations ConversationLister
	Badge         BadgeCounter
	Notifications NotificationLister
	Unread        UnreadCounter
	Profiles      ProfileReader
	Log           *logger.Logger
}

func (s Services) logger() *logger.Logger {
	if s.Log == nil {
		return logger.Default()
	}
	return s.Log
}
