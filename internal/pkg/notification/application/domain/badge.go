package notification

// BadgeKind selects which unread counters a badge sums.
type BadgeKind string

const (
	BadgeAll           BadgeKind = "all"
	BadgeMessages      BadgeKind = "messages"
	BadgeNotifications BadgeKind = "notifications"
)

func (k BadgeKind) Valid() bool {
	switch k {
	case BadgeAll, BadgeMessages, BadgeNotifications:
		return true
	}
	return false
}
