package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-hrdesk/internal/infrastructure/changefeed"
	"go-hrdesk/internal/infrastructure/logger"
	directoryDomain "go-hrdesk/internal/pkg/directory/application/domain"
	directoryMemory "go-hrdesk/internal/pkg/directory/persistence/repository/memory"
	notification "go-hrdesk/internal/pkg/notification/application/domain"
	"go-hrdesk/internal/pkg/notification/persistence/repository/memory"
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

func (f *recordingFeed) ops(op changefeed.Op) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, ev := range f.events {
		if ev.Op == op && ev.Table == changefeed.TableNotifications {
			n++
		}
	}
	return n
}

type fixture struct {
	repo  *memory.NotificationStore
	dir   *directoryMemory.ProfileStore
	feed  *recordingFeed
	log   *logger.Logger
}

func newFixture() *fixture {
	return &fixture{
		repo: memory.NewNotificationStore(),
		dir: directoryMemory.NewProfileStore(
			directoryDomain.Profile{ID: "hr1", FirstName: "Hana", LastName: "Reyes", Role: directoryDomain.RoleHRManager},
			directoryDomain.Profile{ID: "hr2", FirstName: "Hugo", LastName: "Ruiz", Role: directoryDomain.RoleHRManager},
			directoryDomain.Profile{ID: "pm1", FirstName: "Pia", LastName: "Moss", Role: directoryDomain.RoleProjectManager},
			directoryDomain.Profile{ID: "e1", FirstName: "Eli", LastName: "Stone", Role: directoryDomain.RoleEmployee},
		),
		feed: &recordingFeed{},
		log:  logger.Nop(),
	}
}

func (f *fixture) unread(t *testing.T, user string) int {
	t.Helper()
	n, err := NewGetUnreadCountUseCase(f.repo).Execute(context.Background(), GetUnreadCountInput{RecipientID: user})
	require.NoError(t, err)
	return n
}

func TestCreateNotificationWithoutReference(t *testing.T) {
	f := newFixture()
	uc := NewCreateNotificationUseCase(f.repo, f.feed, f.log)

	n, err := uc.Execute(context.Background(), CreateNotificationInput{
		RecipientID: "e1",
		SenderID:    "hr1",
		Type:        "system",
		Content:     "Payroll closes Friday",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, n.ID)
	assert.Nil(t, n.ReferenceID)
	assert.Nil(t, n.ReferenceType)
	assert.False(t, n.IsRead)
	assert.Equal(t, 1, f.unread(t, "e1"))
	assert.Equal(t, 1, f.feed.ops(changefeed.OpInsert))
}

func TestCreateNotificationValidates(t *testing.T) {
	f := newFixture()
	uc := NewCreateNotificationUseCase(f.repo, f.feed, f.log)

	_, err := uc.Execute(context.Background(), CreateNotificationInput{RecipientID: "e1", Type: "task"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), CreateNotificationInput{RecipientID: "e1", Type: "task", Content: "   "})
	assert.ErrorIs(t, err, notification.ErrContentRequired)
	assert.Zero(t, f.unread(t, "e1"))
}

func TestNotifyLeaveResponse(t *testing.T) {
	f := newFixture()
	before := f.unread(t, "e1")

	created, err := NewNotifyLeaveResponseUseCase(f.repo, f.feed, f.log).Execute(context.Background(), NotifyLeaveResponseInput{
		HRID:           "hr1",
		EmployeeID:     "e1",
		LeaveRequestID: "lr-1",
		Status:         "approved",
	})
	require.NoError(t, err)
	require.Len(t, created, 1)

	n := created[0]
	assert.Equal(t, notification.TypeLeaveResponse, n.Type)
	assert.Equal(t, "e1", n.RecipientID)
	assert.Equal(t, "hr1", n.SenderID)
	assert.Equal(t, "Your leave request has been approved", n.Content)
	assert.Equal(t, before+1, f.unread(t, "e1"))
}

func TestNotifyTaskAssignedMentionsTitle(t *testing.T) {
	f := newFixture()
	created, err := NewNotifyTaskAssignedUseCase(f.repo, f.feed, f.log).Execute(context.Background(), NotifyTaskAssignedInput{
		ManagerID:  "pm1",
		AssigneeID: "e1",
		TaskID:     "t-9",
		Title:      "Review budget",
	})
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, notification.TypeTask, created[0].Type)
	assert.Equal(t, "e1", created[0].RecipientID)
	assert.Contains(t, created[0].Content, "Review budget")
}

func TestNotifyLeaveRequestTargetsHRManagersOnly(t *testing.T) {
	f := newFixture()
	uc := NewNotifyLeaveRequestUseCase(f.repo, f.dir, f.feed, f.log)

	created, err := uc.Execute(context.Background(), NotifyLeaveRequestInput{EmployeeID: "e1", LeaveRequestID: "lr-2", Summary: "3 days in May"})
	require.NoError(t, err)
	require.Len(t, created, 2)
	for _, n := range created {
		assert.Contains(t, []string{"hr1", "hr2"}, n.RecipientID)
		assert.Equal(t, notification.TypeLeaveRequest, n.Type)
		assert.Contains(t, n.Content, "3 days in May")
	}

	// an HR manager filing leave does not notify themselves
	created, err = uc.Execute(context.Background(), NotifyLeaveRequestInput{EmployeeID: "hr1", LeaveRequestID: "lr-3"})
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, "hr2", created[0].RecipientID)
}

func TestNotifyAnnouncementSkipsSender(t *testing.T) {
	f := newFixture()
	created, err := NewNotifyAnnouncementUseCase(f.repo, f.dir, f.feed, f.log).Execute(context.Background(), NotifyAnnouncementInput{
		SenderID:       "hr1",
		AnnouncementID: "a-1",
		Title:          "Office closed Monday",
	})
	require.NoError(t, err)
	assert.Len(t, created, 3)
	assert.Zero(t, f.unread(t, "hr1"))
	assert.Equal(t, 1, f.unread(t, "e1"))
	assert.Equal(t, 3, f.feed.ops(changefeed.OpInsert))
}

func TestNotifyNewMessageExcludesSender(t *testing.T) {
	f := newFixture()
	created, err := NewNotifyNewMessageUseCase(f.repo, f.feed, f.log).Execute(context.Background(), NotifyNewMessageInput{
		MessageID:    "m-1",
		SenderID:     "e1",
		RecipientIDs: []string{"e1", "hr1", "hr1", "pm1"},
	})
	require.NoError(t, err)
	require.Len(t, created, 2)
	for _, n := range created {
		assert.Equal(t, "New message received", n.Content)
		require.NotNil(t, n.ReferenceID)
		assert.Equal(t, "m-1", *n.ReferenceID)
		assert.Equal(t, notification.RefMessage, *n.ReferenceType)
	}
}

// brokenBatchStore reports the first row of a batch and then fails, the way a
// pgx batch surfaces an error midway through.
type brokenBatchStore struct {
	*memory.NotificationStore
}

func (s brokenBatchStore) CreateMany(_ context.Context, ns []notification.Notification) ([]notification.Notification, error) {
	return ns[:1], errors.New("batch aborted")
}

func TestFanOutFailurePublishesNothing(t *testing.T) {
	f := newFixture()
	created, err := NewNotifyNewMessageUseCase(brokenBatchStore{f.repo}, f.feed, f.log).Execute(context.Background(), NotifyNewMessageInput{
		MessageID:    "m-1",
		SenderID:     "hr1",
		RecipientIDs: []string{"e1", "hr2"},
	})
	assert.ErrorIs(t, err, ErrPersistence)
	assert.Empty(t, created)
	assert.Zero(t, f.feed.ops(changefeed.OpInsert))
}

func TestMarkAllAsReadZeroesUntilNextInsert(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	create := NewCreateNotificationUseCase(f.repo, f.feed, f.log)
	for i := 0; i < 3; i++ {
		_, err := create.Execute(ctx, CreateNotificationInput{RecipientID: "e1", Type: "task", Content: "x"})
		require.NoError(t, err)
	}

	n, err := NewMarkAllAsReadUseCase(f.repo, f.feed, f.log).Execute(ctx, MarkAllAsReadInput{RecipientID: "e1"})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Zero(t, f.unread(t, "e1"))
	assert.Equal(t, 3, f.feed.ops(changefeed.OpUpdate))

	n, err = NewMarkAllAsReadUseCase(f.repo, f.feed, f.log).Execute(ctx, MarkAllAsReadInput{RecipientID: "e1"})
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = create.Execute(ctx, CreateNotificationInput{RecipientID: "e1", Type: "task", Content: "y"})
	require.NoError(t, err)
	assert.Equal(t, 1, f.unread(t, "e1"))
}

func TestMarkAsReadIsScopedAndAbsorbing(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	n, err := NewCreateNotificationUseCase(f.repo, f.feed, f.log).Execute(ctx, CreateNotificationInput{RecipientID: "e1", Type: "task", Content: "x"})
	require.NoError(t, err)

	uc := NewMarkAsReadUseCase(f.repo, f.feed, f.log)
	changed, err := uc.Execute(ctx, MarkAsReadInput{NotificationID: n.ID, RecipientID: "hr1"})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 1, f.unread(t, "e1"))

	changed, err = uc.Execute(ctx, MarkAsReadInput{NotificationID: n.ID, RecipientID: "e1"})
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = uc.Execute(ctx, MarkAsReadInput{NotificationID: n.ID})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Zero(t, f.unread(t, "e1"))
}

func TestMarkMessageNotificationsRead(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	notify := NewNotifyNewMessageUseCase(f.repo, f.feed, f.log)
	for _, id := range []string{"m-1", "m-2", "m-3"} {
		_, err := notify.Execute(ctx, NotifyNewMessageInput{MessageID: id, SenderID: "hr1", RecipientIDs: []string{"e1"}})
		require.NoError(t, err)
	}
	_, err := NewCreateNotificationUseCase(f.repo, f.feed, f.log).Execute(ctx, CreateNotificationInput{
		RecipientID: "e1", Type: "task", Content: "unrelated", ReferenceID: strPtr("m-1"),
	})
	require.NoError(t, err)
	_, err = NewCreateNotificationUseCase(f.repo, f.feed, f.log).Execute(ctx, CreateNotificationInput{
		RecipientID: "e1", Type: "message", Content: "task chatter", ReferenceID: strPtr("m-2"), ReferenceType: strPtr("task"),
	})
	require.NoError(t, err)

	changed, err := NewMarkMessageNotificationsReadUseCase(f.repo, f.feed, f.log).Execute(ctx, MarkMessageNotificationsReadInput{
		RecipientID: "e1",
		MessageIDs:  []string{"m-1", "m-2"},
	})
	require.NoError(t, err)
	assert.Len(t, changed, 2)
	for _, n := range changed {
		require.NotNil(t, n.ReferenceType)
		assert.Equal(t, notification.RefMessage, *n.ReferenceType)
	}
	assert.Equal(t, 3, f.unread(t, "e1"))
}

type stubCounter struct {
	n   int
	err error
}

func (s stubCounter) Count(context.Context, string) (int, error) { return s.n, s.err }

func TestGetBadgeCount(t *testing.T) {
	ctx := context.Background()
	uc := NewGetBadgeCountUseCase(stubCounter{n: 2}, stubCounter{n: 5})

	for kind, want := range map[notification.BadgeKind]int{
		notification.BadgeAll:           7,
		"":                              7,
		notification.BadgeMessages:      5,
		notification.BadgeNotifications: 2,
	} {
		got, err := uc.Execute(ctx, GetBadgeCountInput{UserID: "e1", Kind: kind})
		require.NoError(t, err)
		assert.Equal(t, want, got, "kind %q", kind)
	}

	_, err := uc.Execute(ctx, GetBadgeCountInput{UserID: "e1", Kind: "bogus"})
	assert.ErrorIs(t, err, notification.ErrInvalidBadgeKind)

	boom := errors.New("boom")
	_, err = NewGetBadgeCountUseCase(stubCounter{n: 1}, stubCounter{err: boom}).Execute(ctx, GetBadgeCountInput{UserID: "e1"})
	assert.ErrorIs(t, err, boom)
}

func TestListNotificationsNewestFirstWithSender(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	create := NewCreateNotificationUseCase(f.repo, f.feed, f.log)
	_, err := create.Execute(ctx, CreateNotificationInput{RecipientID: "e1", SenderID: "hr1", Type: "message", Content: "New message received"})
	require.NoError(t, err)
	_, err = create.Execute(ctx, CreateNotificationInput{RecipientID: "e1", SenderID: "ghost", Type: "announcement", Content: "Picnic"})
	require.NoError(t, err)

	list, err := NewListNotificationsUseCase(f.repo, f.dir).Execute(ctx, ListNotificationsInput{RecipientID: "e1"})
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, notification.TypeAnnouncement, list[0].Type)
	assert.Nil(t, list[0].Sender)
	assert.Equal(t, "New announcement: Picnic", list[0].Headline)

	require.NotNil(t, list[1].Sender)
	assert.Equal(t, "Hana", list[1].Sender.FirstName)
	assert.Equal(t, "Hana Reyes sent you a message", list[1].Headline)

	limited, err := NewListNotificationsUseCase(f.repo, f.dir).Execute(ctx, ListNotificationsInput{RecipientID: "e1", Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestDeleteNotification(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	n, err := NewCreateNotificationUseCase(f.repo, f.feed, f.log).Execute(ctx, CreateNotificationInput{RecipientID: "e1", Type: "task", Content: "x"})
	require.NoError(t, err)

	uc := NewDeleteNotificationUseCase(f.repo, f.feed, f.log)
	deleted, err := uc.Execute(ctx, DeleteNotificationInput{NotificationID: n.ID, RecipientID: "e1"})
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, 1, f.feed.ops(changefeed.OpDelete))

	deleted, err = uc.Execute(ctx, DeleteNotificationInput{NotificationID: n.ID})
	require.NoError(t, err)
	assert.False(t, deleted)
}

func strPtr(s string) *string { return &s }
