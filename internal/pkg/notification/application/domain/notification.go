package notification

import (
	"strings"
	"time"

	directory "go-hrdesk/internal/pkg/directory/application/domain"
)

// Type is an open set; unknown non-empty values are stored as given.
type Type string

const (
	TypeMessage       Type = "message"
	TypeAnnouncement  Type = "announcement"
	TypeTask          Type = "task"
	TypeLeaveRequest  Type = "leave_request"
	TypeLeaveResponse Type = "leave_response"
)

// ReferenceType names the entity ReferenceID points at.
type ReferenceType string

const (
	RefMessage      ReferenceType = "message"
	RefAnnouncement ReferenceType = "announcement"
	RefTask         ReferenceType = "task"
	RefLeaveRequest ReferenceType = "leave_request"
)

// Notification is created unread; IsRead only moves false -> true.
type Notification struct {
	ID            string         `db:"id" json:"id"`
	RecipientID   string         `db:"recipient_id" json:"recipient_id"`
	SenderID      string         `db:"sender_id" json:"sender_id"`
	Type          Type           `db:"type" json:"type"`
	Content       string         `db:"content" json:"content"`
	ReferenceID   *string        `db:"reference_id" json:"reference_id"`
	ReferenceType *ReferenceType `db:"reference_type" json:"reference_type"`
	IsRead        bool           `db:"is_read" json:"is_read"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
}

// New validates and shapes an unread notification. References are optional.
func New(recipientID, senderID string, typ Type, content string, referenceID *string, referenceType *ReferenceType, now time.Time) (Notification, error) {
	if strings.TrimSpace(recipientID) == "" {
		return Notification{}, ErrRecipientRequired
	}
	if strings.TrimSpace(string(typ)) == "" {
		return Notification{}, ErrTypeRequired
	}
	if strings.TrimSpace(content) == "" {
		return Notification{}, ErrContentRequired
	}
	if referenceID != nil && *referenceID == "" {
		referenceID = nil
	}
	if referenceType != nil && *referenceType == "" {
		referenceType = nil
	}
	if now.IsZero() {
		now = time.Now()
	}
	return Notification{
		RecipientID:   recipientID,
		SenderID:      senderID,
		Type:          typ,
		Content:       content,
		ReferenceID:   referenceID,
		ReferenceType: referenceType,
		CreatedAt:     now.UTC(),
	}, nil
}

// MarkRead reports whether the call changed state. Read is absorbing.
func (n *Notification) MarkRead() bool {
	if n.IsRead {
		return false
	}
	n.IsRead = true
	return true
}

// WithSender is a notification joined with its sender's display profile.
type WithSender struct {
	Notification
	Sender   *directory.Summary `json:"sender"`
	Headline string             `json:"headline"`
}

// Headline renders the one-line text shown in the notification center.
func Headline(n Notification, sender *directory.Summary) string {
	name := "Someone"
	if sender != nil {
		p := directory.Profile{FirstName: sender.FirstName, LastName: sender.LastName}
		if full := p.FullName(); full != "" {
			name = full
		}
	}
	switch n.Type {
	case TypeMessage:
		return name + " sent you a message"
	case TypeAnnouncement:
		return "New announcement: " + n.Content
	case TypeTask:
		return name + " assigned you a task"
	case TypeLeaveRequest:
		return name + " submitted a leave request"
	default:
		return n.Content
	}
}

func Ref(t ReferenceType) *ReferenceType { return &t }
