package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-hrdesk/internal/infrastructure/changefeed"
	"go-hrdesk/internal/infrastructure/logger"
	chat "go-hrdesk/internal/pkg/chat/application/domain"
	"go-hrdesk/internal/pkg/chat/persistence/repository/memory"
	directoryDomain "go-hrdesk/internal/pkg/directory/application/domain"
	directoryMemory "go-hrdesk/internal/pkg/directory/persistence/repository/memory"
	notification "go-hrdesk/internal/pkg/notification/application/domain"
	notifyUsecase "go-hrdesk/internal/pkg/notification/application/usecase"
	notifyMemory "go-hrdesk/internal/pkg/notification/persistence/repository/memory"
)

type recordingFeed struct {
	mu     sync.Mutex
	events []changefeed.Event
}

func (f *recordingFeed) Publish(_ context.Context, ev changefeed.Event) error {
	f.mu.Lock()
	f.events = append(f.events, ev)
	f.mu.Unlock()
	return nil
}

func (f *recordingFeed) count(table changefeed.Table, op changefeed.Op) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, ev := range f.events {
		if ev.Table == table && ev.Op == op {
			n++
		}
	}
	return n
}

type env struct {
	repo    *memory.ChatStore
	notes   *notifyMemory.NotificationStore
	dir     *directoryMemory.ProfileStore
	feed    *recordingFeed
	log     *logger.Logger
	direct  *CreateDirectConversationUseCase
	group   *CreateGroupConversationUseCase
	send    *SendMessageUseCase
	read    *MarkMessagesAsReadUseCase
	unread  *GetUnreadMessageCountUseCase
	notices *notifyUsecase.GetUnreadCountUseCase
}

func newEnv() *env {
	e := &env{
		repo:  memory.NewChatStore(),
		notes: notifyMemory.NewNotificationStore(),
		dir: directoryMemory.NewProfileStore(
			directoryDomain.Profile{ID: "u1", FirstName: "Uma", LastName: "One", Role: directoryDomain.RoleEmployee},
			directoryDomain.Profile{ID: "u2", FirstName: "Ugo", LastName: "Two", Role: directoryDomain.RoleEmployee},
			directoryDomain.Profile{ID: "u3", FirstName: "Una", LastName: "Three", Role: directoryDomain.RoleHRManager},
		),
		feed: &recordingFeed{},
		log:  logger.Nop(),
	}
	e.direct = NewCreateDirectConversationUseCase(e.repo, nil, e.feed, e.log)
	e.group = NewCreateGroupConversationUseCase(e.repo, e.feed, e.log)
	e.send = NewSendMessageUseCase(e.repo, notifyUsecase.NewNotifyNewMessageUseCase(e.notes, e.feed, e.log), e.feed, e.log)
	e.read = NewMarkMessagesAsReadUseCase(e.repo, notifyUsecase.NewMarkMessageNotificationsReadUseCase(e.notes, e.feed, e.log), e.feed, e.log)
	e.unread = NewGetUnreadMessageCountUseCase(e.repo)
	e.notices = notifyUsecase.NewGetUnreadCountUseCase(e.notes)
	return e
}

func (e *env) unreadMessages(t *testing.T, user string) int {
	t.Helper()
	n, err := e.unread.Count(context.Background(), user)
	require.NoError(t, err)
	return n
}

func (e *env) unreadNotifications(t *testing.T, user string) int {
	t.Helper()
	n, err := e.notices.Count(context.Background(), user)
	require.NoError(t, err)
	return n
}

func (e *env) mustDirect(t *testing.T, a, b string) string {
	t.Helper()
	out, err := e.direct.Execute(context.Background(), CreateDirectConversationInput{UserID: a, OtherUserID: b})
	require.NoError(t, err)
	return out.ConversationID
}

func TestCreateDirectConversationDedup(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	first, err := e.direct.Execute(ctx, CreateDirectConversationInput{UserID: "u1", OtherUserID: "u2"})
	require.NoError(t, err)
	assert.True(t, first.IsNew)

	again, err := e.direct.Execute(ctx, CreateDirectConversationInput{UserID: "u1", OtherUserID: "u2"})
	require.NoError(t, err)
	assert.False(t, again.IsNew)
	assert.Equal(t, first.ConversationID, again.ConversationID)

	reversed, err := e.direct.Execute(ctx, CreateDirectConversationInput{UserID: "u2", OtherUserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, first.ConversationID, reversed.ConversationID)

	other, err := e.direct.Execute(ctx, CreateDirectConversationInput{UserID: "u1", OtherUserID: "u3"})
	require.NoError(t, err)
	assert.True(t, other.IsNew)
	assert.NotEqual(t, first.ConversationID, other.ConversationID)

	assert.Equal(t, 2, e.feed.count(changefeed.TableConversations, changefeed.OpInsert))
	assert.Equal(t, 4, e.feed.count(changefeed.TableConversationMembers, changefeed.OpInsert))
}

func TestCreateDirectIgnoresGroupsWithSameMembers(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	g, err := e.group.Execute(ctx, CreateGroupConversationInput{Title: "Pair", MemberIDs: []string{"u1", "u2"}})
	require.NoError(t, err)

	out, err := e.direct.Execute(ctx, CreateDirectConversationInput{UserID: "u1", OtherUserID: "u2"})
	require.NoError(t, err)
	assert.True(t, out.IsNew)
	assert.NotEqual(t, g.ID, out.ConversationID)
}

func TestCreateDirectConversationRejectsBadPairs(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	for _, in := range []CreateDirectConversationInput{
		{UserID: "u1", OtherUserID: "u1"},
		{UserID: "", OtherUserID: "u2"},
		{UserID: "u1"},
	} {
		_, err := e.direct.Execute(ctx, in)
		assert.ErrorIs(t, err, chat.ErrInvalidMembers, "%+v", in)
	}
}

type flakyStore struct {
	*memory.ChatStore
	failAddAfter int
	failDelete   bool
	adds         int
	deletes      int
}

func (s *flakyStore) AddMember(ctx context.Context, m chat.Member) (bool, error) {
	s.adds++
	if s.adds > s.failAddAfter {
		return false, errors.New("insert membership: connection reset")
	}
	return s.ChatStore.AddMember(ctx, m)
}

func (s *flakyStore) DeleteConversation(ctx context.Context, id string) error {
	s.deletes++
	if s.failDelete {
		return errors.New("delete conversation: connection reset")
	}
	return s.ChatStore.DeleteConversation(ctx, id)
}

func TestCreateDirectCompensatesFailedMembership(t *testing.T) {
	store := &flakyStore{ChatStore: memory.NewChatStore(), failAddAfter: 1}
	feed := &recordingFeed{}
	uc := NewCreateDirectConversationUseCase(store, nil, feed, logger.Nop())

	_, err := uc.Execute(context.Background(), CreateDirectConversationInput{UserID: "u1", OtherUserID: "u2"})
	require.ErrorIs(t, err, ErrPersistence)
	assert.Equal(t, 1, store.deletes)

	candidates, err := store.ListDirectCandidates(context.Background())
	require.NoError(t, err)
	assert.Empty(t, candidates)
	assert.Zero(t, feed.count(changefeed.TableConversations, changefeed.OpInsert))
}

func TestFailedCompensationLeavesOrphanForSweep(t *testing.T) {
	store := &flakyStore{ChatStore: memory.NewChatStore(), failAddAfter: 1, failDelete: true}
	uc := NewCreateDirectConversationUseCase(store, nil, nil, logger.Nop())

	_, err := uc.Execute(context.Background(), CreateDirectConversationInput{UserID: "u1", OtherUserID: "u2"})
	require.ErrorIs(t, err, ErrPersistence)

	found, err := NewSweepDegenerateConversationsUseCase(store, logger.Nop()).Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, 1, found[0].Members)
}

func TestCreateGroupConversation(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	g, err := e.group.Execute(ctx, CreateGroupConversationInput{Title: "  Team  ", MemberIDs: []string{"u1", "u2", "u3", "u2"}})
	require.NoError(t, err)
	assert.True(t, g.IsGroup)
	require.NotNil(t, g.Title)
	assert.Equal(t, "Team", *g.Title)

	members, err := e.repo.ListMembers(ctx, []string{g.ID})
	require.NoError(t, err)
	assert.Len(t, members, 3)

	again, err := e.group.Execute(ctx, CreateGroupConversationInput{Title: "Team", MemberIDs: []string{"u1", "u2"}})
	require.NoError(t, err)
	assert.NotEqual(t, g.ID, again.ID)

	_, err = e.group.Execute(ctx, CreateGroupConversationInput{Title: " ", MemberIDs: []string{"u1", "u2"}})
	assert.ErrorIs(t, err, chat.ErrTitleRequired)
	_, err = e.group.Execute(ctx, CreateGroupConversationInput{Title: "Solo", MemberIDs: []string{"u1", "u1"}})
	assert.ErrorIs(t, err, chat.ErrInvalidMembers)
}

func TestAddMemberIsIdempotent(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	g, err := e.group.Execute(ctx, CreateGroupConversationInput{Title: "Team", MemberIDs: []string{"u1", "u2"}})
	require.NoError(t, err)

	uc := NewAddMemberUseCase(e.repo, e.feed, e.log)
	added, err := uc.Execute(ctx, AddMemberInput{ConversationID: g.ID, ProfileID: "u3"})
	require.NoError(t, err)
	assert.True(t, added)

	added, err = uc.Execute(ctx, AddMemberInput{ConversationID: g.ID, ProfileID: "u3"})
	require.NoError(t, err)
	assert.False(t, added)

	members, err := e.repo.ListMembers(ctx, []string{g.ID})
	require.NoError(t, err)
	assert.Len(t, members, 3)

	_, err = uc.Execute(ctx, AddMemberInput{ConversationID: "missing", ProfileID: "u3"})
	assert.ErrorIs(t, err, chat.ErrConversationNotFound)
}

func TestAddMemberRejectsDirectConversation(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	c := e.mustDirect(t, "u1", "u2")

	added, err := NewAddMemberUseCase(e.repo, e.feed, e.log).Execute(ctx, AddMemberInput{ConversationID: c, ProfileID: "u3"})
	assert.ErrorIs(t, err, chat.ErrNotGroup)
	assert.False(t, added)

	members, err := e.repo.ListMembers(ctx, []string{c})
	require.NoError(t, err)
	assert.Len(t, members, 2)

	// the pair still resolves to the same thread
	again, err := e.direct.Execute(ctx, CreateDirectConversationInput{UserID: "u2", OtherUserID: "u1"})
	require.NoError(t, err)
	assert.False(t, again.IsNew)
	assert.Equal(t, c, again.ConversationID)
}

func TestDirectConversationScenario(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	c := e.mustDirect(t, "u1", "u2")

	m1, err := e.send.Execute(ctx, SendMessageInput{ConversationID: c, SenderID: "u1", Content: "hello"})
	require.NoError(t, err)
	assert.False(t, m1.IsRead)
	assert.NotEmpty(t, m1.ID)
	assert.Equal(t, 1, e.unreadMessages(t, "u2"))
	assert.Zero(t, e.unreadMessages(t, "u1"))

	out, err := e.read.Execute(ctx, MarkMessagesAsReadInput{ConversationID: c, UserID: "u2"})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Messages)
	assert.Equal(t, 1, out.Notifications)
	assert.Zero(t, e.unreadMessages(t, "u2"))
	assert.Zero(t, e.unreadNotifications(t, "u2"))
}

func TestSendMessageCountsPerRecipient(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	g, err := e.group.Execute(ctx, CreateGroupConversationInput{Title: "Team", MemberIDs: []string{"u1", "u2", "u3"}})
	require.NoError(t, err)

	before := map[string]int{"u1": e.unreadMessages(t, "u1"), "u2": e.unreadMessages(t, "u2"), "u3": e.unreadMessages(t, "u3")}
	_, err = e.send.Execute(ctx, SendMessageInput{ConversationID: g.ID, SenderID: "u2", Content: "standup in 5"})
	require.NoError(t, err)

	assert.Equal(t, before["u1"]+1, e.unreadMessages(t, "u1"))
	assert.Equal(t, before["u2"], e.unreadMessages(t, "u2"))
	assert.Equal(t, before["u3"]+1, e.unreadMessages(t, "u3"))

	assert.Equal(t, 1, e.unreadNotifications(t, "u1"))
	assert.Equal(t, 1, e.unreadNotifications(t, "u3"))
	assert.Zero(t, e.unreadNotifications(t, "u2"))
	assert.Equal(t, 1, e.feed.count(changefeed.TableMessages, changefeed.OpInsert))
	assert.Equal(t, 1, e.feed.count(changefeed.TableConversations, changefeed.OpUpdate))
}

func TestSendMessageValidation(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	c := e.mustDirect(t, "u1", "u2")

	_, err := e.send.Execute(ctx, SendMessageInput{ConversationID: c, SenderID: "u1", Content: " \n\t "})
	assert.ErrorIs(t, err, chat.ErrEmptyMessage)

	_, err = e.send.Execute(ctx, SendMessageInput{ConversationID: c, SenderID: "u3", Content: "hi"})
	assert.ErrorIs(t, err, chat.ErrNotParticipant)

	_, err = e.send.Execute(ctx, SendMessageInput{ConversationID: "missing", SenderID: "u1", Content: "hi"})
	assert.ErrorIs(t, err, chat.ErrConversationNotFound)

	msgs, err := e.repo.GetMessagesByConversation(ctx, c)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestSendMessageTrimsAndBumpsConversation(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	c := e.mustDirect(t, "u1", "u2")
	conv, err := e.repo.GetConversation(ctx, c)
	require.NoError(t, err)

	time.Sleep(2 * time.Millisecond)
	m, err := e.send.Execute(ctx, SendMessageInput{ConversationID: c, SenderID: "u1", Content: "  hi there  "})
	require.NoError(t, err)
	assert.Equal(t, "hi there", m.Content)

	bumped, err := e.repo.GetConversation(ctx, c)
	require.NoError(t, err)
	assert.True(t, bumped.UpdatedAt.After(conv.UpdatedAt))
}

type failingNotifier struct{}

func (failingNotifier) Execute(context.Context, notifyUsecase.NotifyNewMessageInput) ([]notification.Notification, error) {
	return nil, errors.New("notifications table unavailable")
}

func TestSendMessageSurvivesNotificationFailure(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	c := e.mustDirect(t, "u1", "u2")
	send := NewSendMessageUseCase(e.repo, failingNotifier{}, e.feed, e.log)

	m, err := send.Execute(ctx, SendMessageInput{ConversationID: c, SenderID: "u1", Content: "still delivered"})
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, 1, e.unreadMessages(t, "u2"))
	assert.Zero(t, e.unreadNotifications(t, "u2"))
}

func TestGetConversationMessagesOrderedWithSender(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	c := e.mustDirect(t, "u1", "u2")
	uc := NewGetConversationMessagesUseCase(e.repo, e.dir)

	empty, err := uc.Execute(ctx, GetConversationMessagesInput{ConversationID: c})
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	unknown, err := uc.Execute(ctx, GetConversationMessagesInput{ConversationID: "nope"})
	require.NoError(t, err)
	assert.Empty(t, unknown)

	for i, sender := range []string{"u1", "u2", "u1", "u2"} {
		_, err := e.send.Execute(ctx, SendMessageInput{ConversationID: c, SenderID: sender, Content: string(rune('a' + i))})
		require.NoError(t, err)
	}

	msgs, err := uc.Execute(ctx, GetConversationMessagesInput{ConversationID: c})
	require.NoError(t, err)
	require.Len(t, msgs, 4)
	for i := 1; i < len(msgs); i++ {
		assert.False(t, msgs[i].CreatedAt.Before(msgs[i-1].CreatedAt))
	}
	assert.Equal(t, "a", msgs[0].Content)
	require.NotNil(t, msgs[1].Sender)
	assert.Equal(t, "Ugo", msgs[1].Sender.FirstName)
}

func TestMarkMessagesAsReadIsIdempotent(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	c := e.mustDirect(t, "u1", "u2")
	for _, s := range []string{"u1", "u1", "u2"} {
		_, err := e.send.Execute(ctx, SendMessageInput{ConversationID: c, SenderID: s, Content: "x"})
		require.NoError(t, err)
	}

	first, err := e.read.Execute(ctx, MarkMessagesAsReadInput{ConversationID: c, UserID: "u2"})
	require.NoError(t, err)
	assert.Equal(t, 2, first.Messages)
	snapshot, err := e.repo.GetMessagesByConversation(ctx, c)
	require.NoError(t, err)

	second, err := e.read.Execute(ctx, MarkMessagesAsReadInput{ConversationID: c, UserID: "u2"})
	require.NoError(t, err)
	assert.Zero(t, second.Messages)
	assert.Zero(t, second.Notifications)

	after, err := e.repo.GetMessagesByConversation(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, snapshot, after)

	// u2's own message stays unread for u1
	assert.Equal(t, 1, e.unreadMessages(t, "u1"))
}

func TestMarkMessagesAsReadRequiresMembership(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	c := e.mustDirect(t, "u1", "u2")
	_, err := e.send.Execute(ctx, SendMessageInput{ConversationID: c, SenderID: "u1", Content: "private"})
	require.NoError(t, err)

	out, err := e.read.Execute(ctx, MarkMessagesAsReadInput{ConversationID: c, UserID: "u3"})
	assert.ErrorIs(t, err, chat.ErrNotParticipant)
	assert.Nil(t, out)
	assert.Equal(t, 1, e.unreadMessages(t, "u2"))
	assert.Equal(t, 1, e.unreadNotifications(t, "u2"))

	out, err = e.read.Execute(ctx, MarkMessagesAsReadInput{ConversationID: "missing", UserID: "u2"})
	require.NoError(t, err)
	assert.Zero(t, out.Messages)
	assert.Zero(t, out.Notifications)
}

type failingMarker struct{}

func (failingMarker) Execute(context.Context, notifyUsecase.MarkMessageNotificationsReadInput) ([]notification.Notification, error) {
	return nil, errors.New("notifications table unavailable")
}

func TestCountersDriftWhenSecondStepFails(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	c := e.mustDirect(t, "u1", "u2")
	_, err := e.send.Execute(ctx, SendMessageInput{ConversationID: c, SenderID: "u1", Content: "hello"})
	require.NoError(t, err)

	read := NewMarkMessagesAsReadUseCase(e.repo, failingMarker{}, e.feed, e.log)
	out, err := read.Execute(ctx, MarkMessagesAsReadInput{ConversationID: c, UserID: "u2"})
	require.Error(t, err)
	require.NotNil(t, out)
	assert.Equal(t, 1, out.Messages)

	assert.Zero(t, e.unreadMessages(t, "u2"))
	assert.Equal(t, 1, e.unreadNotifications(t, "u2"))

	// a later successful call catches the notification counter up
	_, err = e.read.Execute(ctx, MarkMessagesAsReadInput{ConversationID: c, UserID: "u2"})
	require.NoError(t, err)
	assert.Zero(t, e.unreadNotifications(t, "u2"))
}

func TestListConversations(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	direct := e.mustDirect(t, "u1", "u2")
	g, err := e.group.Execute(ctx, CreateGroupConversationInput{Title: "Team", MemberIDs: []string{"u1", "u2", "u3"}})
	require.NoError(t, err)

	time.Sleep(2 * time.Millisecond)
	_, err = e.send.Execute(ctx, SendMessageInput{ConversationID: direct, SenderID: "u2", Content: "latest"})
	require.NoError(t, err)

	list, err := NewListConversationsUseCase(e.repo, e.dir).Execute(ctx, ListConversationsInput{UserID: "u1"})
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, direct, list[0].ID)
	assert.Equal(t, "Ugo Two", list[0].DisplayName)
	require.NotNil(t, list[0].LatestMessage)
	assert.Equal(t, "latest", list[0].LatestMessage.Content)

	assert.Equal(t, g.ID, list[1].ID)
	assert.Equal(t, "Team", list[1].DisplayName)
	assert.Nil(t, list[1].LatestMessage)
	assert.Len(t, list[1].Members, 3)

	none, err := NewListConversationsUseCase(e.repo, e.dir).Execute(ctx, ListConversationsInput{UserID: "nobody"})
	require.NoError(t, err)
	assert.Empty(t, none)
}
