package storage

import (
	"log/slog"
	"pulse/domain"
	"pulse/errors"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func notificationAt(recipient string, at time.Time) domain.Notification {
	return domain.Notification{
		ID:        uuid.New(),
		Recipient: recipient,
		Sender:    "alice",
		Type:      domain.NotificationLike,
		PostID:    "post-1",
		CreatedAt: at.UTC(),
	}
}

func Test_Store_And_List_Newest_First(t *testing.T) {
	req := require.New(t)
	repository := NewNotificationRepository(openTestDB(t), slog.Default(), nil)
	at := time.Now()
	first := notificationAt("bob", at)
	second := notificationAt("bob", at.Add(time.Minute))
	third := notificationAt("bob", at.Add(2*time.Minute))
	other := notificationAt("bobby", at)

	// Given notifications stored out of order, one for a similar recipient
	for _, n := range []domain.Notification{second, other, third, first} {
		req.NoError(repository.Store(n))
	}

	// When listing the inbox of bob
	notifications, err := repository.List("bob")
	req.NoError(err)

	// Then they come back newest first, without the neighbour's
	req.Equal([]domain.Notification{third, second, first}, notifications)
}

func Test_Recipient_Keys_Do_Not_Overlap(t *testing.T) {
	req := require.New(t)
	repository := NewNotificationRepository(openTestDB(t), slog.Default(), nil)

	// Given an unread notification for a recipient whose name extends another one
	req.NoError(repository.Store(notificationAt("a:b", time.Now())))

	// When reading the inbox of the shorter name
	notifications, err := repository.List("a")
	req.NoError(err)
	unread, err := repository.UnreadCount("a")
	req.NoError(err)
	marked, err := repository.MarkAllRead("a")
	req.NoError(err)

	// Then nothing of the other inbox is visible or touched
	req.Empty(notifications)
	req.Zero(unread)
	req.Zero(marked)
	unread, err = repository.UnreadCount("a:b")
	req.NoError(err)
	req.Equal(1, unread)
}

func Test_List_With_Limit(t *testing.T) {
	req := require.New(t)
	limit := 2
	repository := NewNotificationRepository(openTestDB(t), slog.Default(), &limit)
	at := time.Now()
	for i := 0; i < 5; i++ {
		req.NoError(repository.Store(notificationAt("bob", at.Add(time.Duration(i)*time.Second))))
	}

	notifications, err := repository.List("bob")

	req.NoError(err)
	req.Len(notifications, limit)
	req.True(notifications[0].CreatedAt.After(notifications[1].CreatedAt))
}

func Test_Get_Unknown_Notification(t *testing.T) {
	req := require.New(t)
	repository := NewNotificationRepository(openTestDB(t), slog.Default(), nil)

	_, err := repository.Get(uuid.New())

	req.ErrorIs(err, errors.ErrNotificationNotFound)
}

func Test_Mark_Read_And_Unread_Count(t *testing.T) {
	req := require.New(t)
	repository := NewNotificationRepository(openTestDB(t), slog.Default(), nil)
	at := time.Now()
	n1 := notificationAt("bob", at)
	n2 := notificationAt("bob", at.Add(time.Second))
	n3 := notificationAt("bob", at.Add(2*time.Second))
	for _, n := range []domain.Notification{n1, n2, n3} {
		req.NoError(repository.Store(n))
	}

	// Given three unread notifications
	count, err := repository.UnreadCount("bob")
	req.NoError(err)
	req.Equal(3, count)

	// When one is marked as read
	updated, err := repository.MarkRead(n2.ID)
	req.NoError(err)
	req.True(updated.IsRead)

	// Then it is persisted
	stored, err := repository.Get(n2.ID)
	req.NoError(err)
	req.True(stored.IsRead)
	count, err = repository.UnreadCount("bob")
	req.NoError(err)
	req.Equal(2, count)

	// When all are marked as read
	changed, err := repository.MarkAllRead("bob")
	req.NoError(err)

	// Then only the unread ones changed
	req.Equal(2, changed)
	count, err = repository.UnreadCount("bob")
	req.NoError(err)
	req.Zero(count)
}

func Test_Delete_Notification(t *testing.T) {
	req := require.New(t)
	repository := NewNotificationRepository(openTestDB(t), slog.Default(), nil)
	n := notificationAt("bob", time.Now())
	req.NoError(repository.Store(n))

	// When it is deleted
	req.NoError(repository.Delete(n.ID))

	// Then it is gone from the inbox and the index
	notifications, err := repository.List("bob")
	req.NoError(err)
	req.Empty(notifications)
	_, err = repository.Get(n.ID)
	req.ErrorIs(err, errors.ErrNotificationNotFound)
	req.ErrorIs(repository.Delete(n.ID), errors.ErrNotificationNotFound)
}

func Test_Encode_Decode_Notification(t *testing.T) {
	req := require.New(t)
	n := notificationAt("bob", time.Now())
	n.Text = "nice shot"
	n.IsRead = true

	value, err := EncodeNotification(n)
	req.NoError(err)
	decoded, err := DecodeNotification(value)
	req.NoError(err)

	req.Equal(n, decoded)
}

func Test_Decode_Corrupted_Value(t *testing.T) {
	req := require.New(t)

	_, err := DecodeNotification([]byte{0xFF, 0x01, 0x02})

	req.Error(err)
}
