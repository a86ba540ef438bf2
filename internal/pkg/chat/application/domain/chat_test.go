package chat

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	directory "go-hrdesk/internal/pkg/directory/application/domain"
)

func TestNewDirectConversation(t *testing.T) {
	c, members, err := NewDirectConversation(" a ", "b", time.Now())
	require.NoError(t, err)
	assert.False(t, c.IsGroup)
	assert.Nil(t, c.Title)
	assert.Equal(t, []string{"a", "b"}, members)
	assert.True(t, c.IsDirectCandidate())

	_, _, err = NewDirectConversation("a", "a", time.Now())
	assert.ErrorIs(t, err, ErrInvalidMembers)
	_, _, err = NewDirectConversation("", "b", time.Now())
	assert.ErrorIs(t, err, ErrInvalidMembers)
}

func TestNewGroupConversationDedupsMembers(t *testing.T) {
	c, members, err := NewGroupConversation("Team", []string{"a", "b", "a", " ", "c"}, time.Now())
	require.NoError(t, err)
	assert.True(t, c.IsGroup)
	assert.Equal(t, []string{"a", "b", "c"}, members)
	assert.False(t, c.IsDirectCandidate())
}

func TestPostMessage(t *testing.T) {
	agg := NewChat(Conversation{ID: "c1"}, []string{"a", "b"})

	m, err := agg.PostMessage("a", "  hi  ", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "hi", m.Content)
	assert.Equal(t, "c1", m.ConversationID)
	assert.False(t, m.IsRead)

	_, err = agg.PostMessage("a", "   ", time.Now())
	assert.ErrorIs(t, err, ErrEmptyMessage)
	_, err = agg.PostMessage("z", "hi", time.Now())
	assert.ErrorIs(t, err, ErrNotParticipant)

	var missing *Chat
	_, err = missing.PostMessage("a", "hi", time.Now())
	assert.ErrorIs(t, err, ErrConversationNotFound)
}

func TestRecipientsExcludeSender(t *testing.T) {
	agg := NewChat(Conversation{ID: "c1", IsGroup: true}, []string{"a", "b", "c"})
	got := agg.Recipients("b")
	sort.Strings(got)
	assert.Equal(t, []string{"a", "c"}, got)
}

func TestIsDirectBetween(t *testing.T) {
	direct := NewChat(Conversation{ID: "c1"}, []string{"a", "b"})
	assert.True(t, direct.IsDirectBetween("a", "b"))
	assert.True(t, direct.IsDirectBetween("b", "a"))
	assert.False(t, direct.IsDirectBetween("a", "c"))

	title := "x"
	titled := NewChat(Conversation{ID: "c2", Title: &title}, []string{"a", "b"})
	assert.False(t, titled.IsDirectBetween("a", "b"))

	crowded := NewChat(Conversation{ID: "c3"}, []string{"a", "b", "c"})
	assert.False(t, crowded.IsDirectBetween("a", "b"))
}

func TestDisplayNameFor(t *testing.T) {
	members := []directory.Summary{
		{ID: "a", FirstName: "Ada", LastName: "Lane"},
		{ID: "b", FirstName: "Bo", LastName: "Kim"},
	}
	assert.Equal(t, "Bo Kim", DisplayNameFor(Conversation{}, members, "a"))
	assert.Equal(t, "Unknown", DisplayNameFor(Conversation{}, members[:1], "a"))

	title := "Payroll"
	assert.Equal(t, "Payroll", DisplayNameFor(Conversation{IsGroup: true, Title: &title}, members, "a"))
}
