//go:generate go run go.uber.org/mock/mockgen -source=notification_repository.go -destination=../../mocks/mock_notification_repository.go -package=mocks
package storage

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"pulse/domain"
	"pulse/errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	notificationPrefix = "notif:"
	notificationIndex  = "notif-id:"
)

type INotificationRepository interface {
	Store(n domain.Notification) error
	Get(id uuid.UUID) (domain.Notification, error)
	List(recipient string) ([]domain.Notification, error)
	MarkRead(id uuid.UUID) (domain.Notification, error)
	MarkAllRead(recipient string) (int, error)
	Delete(id uuid.UUID) error
	UnreadCount(recipient string) (int, error)
}

type NotificationRepository struct {
	db    *badger.DB
	log   *slog.Logger
	limit *int
}

func NewNotificationRepository(db *badger.DB, log *slog.Logger, limit *int) *NotificationRepository {
	return &NotificationRepository{db: db, log: log, limit: limit}
}

// Store persists a notification in BadgerDB.
// The key is formatted as "notif:{len(recipient)}:{recipient}:{timestamp_padded}:{uuid}"
// so a reverse prefix scan yields the inbox newest first; "notif-id:{uuid}" points back to it.
func (r *NotificationRepository) Store(n domain.Notification) error {
	key := primaryKey(n)
	value, err := EncodeNotification(n)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(key, value); err != nil {
			return err
		}
		return txn.Set(indexKey(n.ID), key)
	})
}

func (r *NotificationRepository) Get(id uuid.UUID) (domain.Notification, error) {
	var n domain.Notification
	err := r.db.View(func(txn *badger.Txn) error {
		_, found, err := lookup(txn, id)
		n = found
		return err
	})
	return n, err
}

// List returns the recipient's notifications newest first, up to the configured limit.
func (r *NotificationRepository) List(recipient string) ([]domain.Notification, error) {
	var notifications []domain.Notification
	err := r.db.View(func(txn *badger.Txn) error {
		return scanRecipient(txn, recipient, func(_ []byte, n domain.Notification) (bool, error) {
			if r.limit != nil && len(notifications) == *r.limit {
				r.log.Debug(fmt.Sprintf("Maximum of %d notifications reached", *r.limit))
				return false, nil
			}
			notifications = append(notifications, n)
			return true, nil
		})
	})
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *NotificationRepository) MarkRead(id uuid.UUID) (domain.Notification, error) {
	var n domain.Notification
	err := r.db.Update(func(txn *badger.Txn) error {
		key, found, err := lookup(txn, id)
		if err != nil {
			return err
		}
		found.IsRead = true
		value, err := EncodeNotification(found)
		if err != nil {
			return err
		}
		n = found
		return txn.Set(key, value)
	})
	return n, err
}

// MarkAllRead flags every unread notification of the recipient and returns how many changed.
func (r *NotificationRepository) MarkAllRead(recipient string) (int, error) {
	count := 0
	err := r.db.Update(func(txn *badger.Txn) error {
		type pending struct {
			key   []byte
			value []byte
		}
		var updates []pending
		err := scanRecipient(txn, recipient, func(key []byte, n domain.Notification) (bool, error) {
			if n.IsRead {
				return true, nil
			}
			n.IsRead = true
			value, err := EncodeNotification(n)
			if err != nil {
				return false, err
			}
			updates = append(updates, pending{key: key, value: value})
			return true, nil
		})
		if err != nil {
			return err
		}
		for _, u := range updates {
			if err := txn.Set(u.key, u.value); err != nil {
				return err
			}
		}
		count = len(updates)
		return nil
	})
	return count, err
}

func (r *NotificationRepository) Delete(id uuid.UUID) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key, _, err := lookup(txn, id)
		if err != nil {
			return err
		}
		if err := txn.Delete(key); err != nil {
			return err
		}
		return txn.Delete(indexKey(id))
	})
}

func (r *NotificationRepository) UnreadCount(recipient string) (int, error) {
	count := 0
	err := r.db.View(func(txn *badger.Txn) error {
		return scanRecipient(txn, recipient, func(_ []byte, n domain.Notification) (bool, error) {
			if !n.IsRead {
				count++
			}
			return true, nil
		})
	})
	return count, err
}

func lookup(txn *badger.Txn, id uuid.UUID) ([]byte, domain.Notification, error) {
	item, err := txn.Get(indexKey(id))
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return nil, domain.Notification{}, errors.ErrNotificationNotFound
	}
	if err != nil {
		return nil, domain.Notification{}, err
	}
	key, err := item.ValueCopy(nil)
	if err != nil {
		return nil, domain.Notification{}, err
	}

	item, err = txn.Get(key)
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return nil, domain.Notification{}, errors.ErrNotificationNotFound
	}
	if err != nil {
		return nil, domain.Notification{}, err
	}
	var n domain.Notification
	err = item.Value(func(val []byte) error {
		n, err = DecodeNotification(val)
		return err
	})
	return key, n, err
}

// scanRecipient walks the recipient's inbox newest first until fn returns false.
func scanRecipient(txn *badger.Txn, recipient string,
	fn func(key []byte, n domain.Notification) (bool, error)) error {
	prefix := RecipientPrefix(recipient)
	options := badger.DefaultIteratorOptions
	options.Reverse = true
	options.Prefix = prefix
	it := txn.NewIterator(options)
	defer it.Close()

	// Reverse iteration must start past the last possible key of the prefix
	seekKey := append(append([]byte{}, prefix...), 0xFF)
	for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
		item := it.Item()
		var n domain.Notification
		err := item.Value(func(val []byte) error {
			var err error
			n, err = DecodeNotification(val)
			return err
		})
		if err != nil {
			return err
		}
		next, err := fn(item.KeyCopy(nil), n)
		if err != nil {
			return err
		}
		if !next {
			return nil
		}
	}
	return nil
}

// RecipientPrefix is the key prefix of one inbox. The recipient length is part
// of it, so no recipient prefix is ever a prefix of another recipient's keys.
func RecipientPrefix(recipient string) []byte {
	return []byte(fmt.Sprintf("%s%d:%s:", notificationPrefix, len(recipient), recipient))
}

func primaryKey(n domain.Notification) []byte {
	return fmt.Appendf(RecipientPrefix(n.Recipient), "%019d:%s", n.CreatedAt.UnixNano(), n.ID)
}

func indexKey(id uuid.UUID) []byte {
	return []byte(notificationIndex + id.String())
}

// EncodeNotification serialises a notification as a protobuf Struct.
func EncodeNotification(n domain.Notification) ([]byte, error) {
	s, err := structpb.NewStruct(map[string]any{
		"id":         n.ID.String(),
		"recipient":  n.Recipient,
		"sender":     n.Sender,
		"type":       string(n.Type),
		"post_id":    n.PostID,
		"reel_id":    n.ReelID,
		"text":       n.Text,
		"is_read":    n.IsRead,
		"created_at": n.CreatedAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return nil, fmt.Errorf("encode notification: %w", err)
	}
	return proto.Marshal(s)
}

func DecodeNotification(value []byte) (domain.Notification, error) {
	var s structpb.Struct
	if err := proto.Unmarshal(value, &s); err != nil {
		return domain.Notification{}, fmt.Errorf("decode notification: %w", err)
	}
	fields := s.GetFields()
	id, err := uuid.Parse(fields["id"].GetStringValue())
	if err != nil {
		return domain.Notification{}, fmt.Errorf("decode notification id: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, fields["created_at"].GetStringValue())
	if err != nil {
		return domain.Notification{}, fmt.Errorf("decode notification date: %w", err)
	}
	return domain.Notification{
		ID:        id,
		Recipient: fields["recipient"].GetStringValue(),
		Sender:    fields["sender"].GetStringValue(),
		Type:      domain.NotificationType(fields["type"].GetStringValue()),
		PostID:    fields["post_id"].GetStringValue(),
		ReelID:    fields["reel_id"].GetStringValue(),
		Text:      fields["text"].GetStringValue(),
		IsRead:    fields["is_read"].GetBoolValue(),
		CreatedAt: createdAt.UTC(),
	}, nil
}
