package notification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	directory "go-hrdesk/internal/pkg/directory/application/domain"
)

func TestNewNormalizesEmptyReferences(t *testing.T) {
	empty := ""
	n, err := New("r", "s", TypeTask, "Do it", &empty, Ref(""), time.Time{})
	require.NoError(t, err)
	assert.Nil(t, n.ReferenceID)
	assert.Nil(t, n.ReferenceType)
	assert.False(t, n.CreatedAt.IsZero())
	assert.False(t, n.IsRead)
}

func TestNewRequiresFields(t *testing.T) {
	_, err := New("", "s", TypeTask, "x", nil, nil, time.Now())
	assert.ErrorIs(t, err, ErrRecipientRequired)
	_, err = New("r", "s", " ", "x", nil, nil, time.Now())
	assert.ErrorIs(t, err, ErrTypeRequired)
	_, err = New("r", "s", "custom_type", "", nil, nil, time.Now())
	assert.ErrorIs(t, err, ErrContentRequired)
}

func TestMarkReadIsAbsorbing(t *testing.T) {
	n := Notification{}
	assert.True(t, n.MarkRead())
	assert.False(t, n.MarkRead())
	assert.True(t, n.IsRead)
}

func TestHeadline(t *testing.T) {
	sender := &directory.Summary{ID: "s", FirstName: "Ada", LastName: "Lane"}

	assert.Equal(t, "Ada Lane sent you a message", Headline(Notification{Type: TypeMessage}, sender))
	assert.Equal(t, "Someone assigned you a task", Headline(Notification{Type: TypeTask}, nil))
	assert.Equal(t, "Ada Lane submitted a leave request", Headline(Notification{Type: TypeLeaveRequest}, sender))
	assert.Equal(t, "New announcement: Picnic", Headline(Notification{Type: TypeAnnouncement, Content: "Picnic"}, sender))
	assert.Equal(t, "Your leave request has been approved",
		Headline(Notification{Type: TypeLeaveResponse, Content: "Your leave request has been approved"}, sender))
}

func TestBadgeKindValid(t *testing.T) {
	assert.True(t, BadgeAll.Valid())
	assert.True(t, BadgeMessages.Valid())
	assert.True(t, BadgeNotifications.Valid())
	assert.False(t, BadgeKind("other").Valid())
}
