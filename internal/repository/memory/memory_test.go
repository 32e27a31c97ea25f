package memory

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Rrens/mock-analyst/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

func newTestStores() (*SessionStore, *NotificationStore) {
	clock := &fakeClock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	notifications := NewNotificationStore()
	notifications.now = clock.Now
	sessions := NewSessionStore(notifications)
	sessions.now = clock.Now
	return sessions, notifications
}

func TestSessionStore_CreateOrGet(t *testing.T) {
	store, _ := newTestStores()

	first, created := store.CreateOrGet("s1", "Sales", "a@example.com")
	require.True(t, created)
	assert.Equal(t, "s1", first.ID)
	assert.Equal(t, "Sales", first.Title)
	assert.Equal(t, domain.StatusProcessing, first.Status)
	assert.Empty(t, first.Messages)

	second, created := store.CreateOrGet("s1", "Other title", "b@example.com")
	require.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.Equal(t, "Sales", second.Title)
	assert.True(t, second.LastActivity.After(first.LastActivity))
}

func TestSessionStore_CreateOrGetGeneratesID(t *testing.T) {
	store, _ := newTestStores()

	a, _ := store.CreateOrGet("", "a", "")
	b, _ := store.CreateOrGet("", "b", "")

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestSessionStore_AppendMessageAndSetStatus(t *testing.T) {
	store, _ := newTestStores()
	created, _ := store.CreateOrGet("s1", "t", "")

	require.NoError(t, store.AppendMessage("s1", domain.Message{Role: domain.RoleUser, Content: "hi"}))
	require.NoError(t, store.AppendMessage("s1", domain.Message{Role: domain.RoleAssistant, Content: "hello"}))
	require.NoError(t, store.SetStatus("s1", domain.StatusCompleted))

	session, err := store.Peek("s1")
	require.NoError(t, err)
	require.Len(t, session.Messages, 2)
	assert.Equal(t, "hi", session.Messages[0].Content)
	assert.Equal(t, "hello", session.Messages[1].Content)
	assert.False(t, session.Messages[0].CreatedAt.IsZero())
	assert.Equal(t, domain.StatusCompleted, session.Status)
	assert.True(t, session.LastActivity.After(created.LastActivity))

	assert.ErrorIs(t, store.AppendMessage("missing", domain.Message{}), domain.ErrSessionNotFound)
	assert.ErrorIs(t, store.SetStatus("missing", domain.StatusError), domain.ErrSessionNotFound)
}

func TestSessionStore_ReturnsCopies(t *testing.T) {
	store, _ := newTestStores()
	store.CreateOrGet("s1", "t", "")
	require.NoError(t, store.AppendMessage("s1", domain.Message{Content: "original"}))

	session, err := store.Peek("s1")
	require.NoError(t, err)
	session.Messages[0].Content = "mutated"
	session.Status = domain.StatusError

	again, err := store.Peek("s1")
	require.NoError(t, err)
	assert.Equal(t, "original", again.Messages[0].Content)
	assert.Equal(t, domain.StatusProcessing, again.Status)
}

func TestSessionStore_GetAcknowledgesNotification(t *testing.T) {
	store, notifications := newTestStores()
	store.CreateOrGet("s1", "t", "")
	notifications.Raise("s1", "Analysis completed!")
	require.True(t, notifications.HasUnread("s1"))

	detail, err := store.Get("s1")
	require.NoError(t, err)
	require.NotNil(t, detail.Notification)
	assert.True(t, detail.Notification.Read)
	assert.False(t, notifications.HasUnread("s1"))

	_, err = store.Get("missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionStore_PeekDoesNotAcknowledge(t *testing.T) {
	store, notifications := newTestStores()
	store.CreateOrGet("s1", "t", "")
	notifications.Raise("s1", "done")

	_, err := store.Peek("s1")
	require.NoError(t, err)
	assert.True(t, notifications.HasUnread("s1"))
}

func TestSessionStore_ListJoinsNotificationsAndSortsByActivity(t *testing.T) {
	store, notifications := newTestStores()
	store.CreateOrGet("old", "old", "")
	store.CreateOrGet("new", "new", "")
	notifications.Raise("old", "done")

	summaries := store.List()
	require.Len(t, summaries, 2)
	assert.Equal(t, "new", summaries[0].ID)
	assert.False(t, summaries[0].HasNotification)
	assert.Equal(t, "old", summaries[1].ID)
	assert.True(t, summaries[1].HasNotification)

	require.NoError(t, store.SetStatus("old", domain.StatusCompleted))
	assert.Equal(t, "old", store.List()[0].ID)
}

func TestSessionStore_Delete(t *testing.T) {
	store, notifications := newTestStores()
	store.CreateOrGet("s1", "t", "")
	notifications.Raise("s1", "done")

	assert.ErrorIs(t, store.Delete("missing"), domain.ErrSessionNotFound)

	require.NoError(t, store.Delete("s1"))
	_, err := store.Get("s1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, ok := notifications.Get("s1")
	assert.False(t, ok)

	assert.ErrorIs(t, store.Delete("s1"), domain.ErrSessionNotFound)
}

func TestSessionStore_Complete(t *testing.T) {
	store, notifications := newTestStores()
	store.CreateOrGet("s1", "t", "")

	require.NoError(t, store.Complete("s1", "Analysis completed!"))

	session, err := store.Peek("s1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, session.Status)
	notification, ok := notifications.Get("s1")
	require.True(t, ok)
	assert.Equal(t, "Analysis completed!", notification.Message)
	assert.False(t, notification.Read)
}

func TestSessionStore_CompleteAfterDeleteRaisesNothing(t *testing.T) {
	store, notifications := newTestStores()
	store.CreateOrGet("s1", "t", "")
	require.NoError(t, store.Delete("s1"))

	assert.ErrorIs(t, store.Complete("s1", "done"), domain.ErrSessionNotFound)
	_, ok := notifications.Get("s1")
	assert.False(t, ok)
	assert.False(t, notifications.HasUnread("s1"))
}

func TestSessionStore_ConcurrentAppends(t *testing.T) {
	store, _ := newTestStores()
	store.CreateOrGet("s1", "t", "")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				_ = store.AppendMessage("s1", domain.Message{Content: fmt.Sprintf("%d-%d", i, j)})
				store.List()
			}
		}(i)
	}
	wg.Wait()

	session, err := store.Peek("s1")
	require.NoError(t, err)
	assert.Len(t, session.Messages, 200)
}

func TestNotificationStore(t *testing.T) {
	_, store := newTestStores()

	_, ok := store.Get("s1")
	assert.False(t, ok)
	assert.False(t, store.MarkRead("s1"))

	store.Raise("s1", "first")
	require.True(t, store.MarkRead("s1"))
	assert.False(t, store.HasUnread("s1"))

	store.Raise("s1", "second")
	notification, ok := store.Get("s1")
	require.True(t, ok)
	assert.Equal(t, "second", notification.Message)
	assert.False(t, notification.Read)
	assert.True(t, store.HasUnread("s1"))

	store.Delete("s1")
	assert.False(t, store.HasUnread("s1"))
}

func TestUploadStore(t *testing.T) {
	store := NewUploadStore()
	store.Save(domain.UploadedFile{ID: "f1", Filename: "data.csv", Size: 12})

	file, err := store.Get("f1")
	require.NoError(t, err)
	assert.Equal(t, "data.csv", file.Filename)

	_, err = store.Get("f2")
	assert.ErrorIs(t, err, domain.ErrUploadNotFound)
}
