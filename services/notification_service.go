//go:generate go run go.uber.org/mock/mockgen -source=notification_service.go -destination=../mocks/mock_notification_service.go -package=mocks
package services

import (
	"context"
	"fmt"
	"log/slog"
	"pulse/contract"
	"pulse/domain"
	"pulse/domain/event"
	"pulse/errors"
	"pulse/infrastructure/storage"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// INotificationService is what HTTP collaborators call once their own write succeeded.
// Live pushes are best-effort; persisted notifications survive an offline recipient.
type INotificationService interface {
	SendMessage(ctx context.Context, msg domain.DirectMessage) (domain.Delivery, error)
	Notify(ctx context.Context, cmd NotifyCommand) (domain.Notification, domain.Delivery, error)
	FollowRequested(ctx context.Context, cmd FollowRequestCommand) (domain.Delivery, error)
	FollowAccepted(ctx context.Context, requesterID, accepterID string) (domain.Delivery, error)
	StoryPosted(ctx context.Context, story domain.Story, followerIDs []string) error
	StoryViewed(ctx context.Context, authorID string, view domain.StoryView) (domain.Delivery, error)

	List(recipient string) ([]domain.Notification, error)
	UnreadCount(recipient string) (int, error)
	MarkRead(recipient string, id uuid.UUID) (domain.Notification, error)
	MarkAllRead(recipient string) (int, error)
	Delete(recipient string, id uuid.UUID) error
}

// TextModerator masks forbidden words in free text.
type TextModerator interface {
	Censor(text string) (string, []string)
}

type NotifyCommand struct {
	Recipient string                  `json:"recipient" validate:"required"`
	Sender    string                  `json:"sender" validate:"required"`
	Type      domain.NotificationType `json:"type" validate:"required,oneof=like comment follow follow_request mention message"`
	PostID    string                  `json:"postId"`
	ReelID    string                  `json:"reelId"`
	Text      string                  `json:"text"`
	Message   string                  `json:"message"`
}

type FollowRequestCommand struct {
	SenderID   string `json:"senderId" validate:"required"`
	ReceiverID string `json:"receiverId" validate:"required,nefield=SenderID"`
	RequestID  string `json:"requestId" validate:"required"`
	Private    bool   `json:"private"`
}

const (
	followedMessage        = "Someone followed you"
	followRequestMessage   = "Someone sent you a follow request"
	followAcceptedMessage  = "Your follow request was accepted"
	defaultMessageTemplate = "Someone %s"
)

var pushMessages = map[domain.NotificationType]string{
	domain.NotificationLike:          "Someone liked your post",
	domain.NotificationComment:       "Someone commented on your post",
	domain.NotificationFollow:        followedMessage,
	domain.NotificationFollowRequest: followRequestMessage,
	domain.NotificationMention:       "Someone mentioned you",
	domain.NotificationMessage:       "You have a new message",
}

type NotificationService struct {
	log        *slog.Logger
	emitter    contract.IEmitter
	dispatcher contract.IDispatcher
	repository storage.INotificationRepository
	moderator  TextModerator
	validate   *validator.Validate
}

// NewNotificationService wires the service. moderator may be nil when no dictionary is configured.
func NewNotificationService(log *slog.Logger, emitter contract.IEmitter, dispatcher contract.IDispatcher,
	repository storage.INotificationRepository, moderator TextModerator) *NotificationService {
	return &NotificationService{
		log:        log,
		emitter:    emitter,
		dispatcher: dispatcher,
		repository: repository,
		moderator:  moderator,
		validate:   validator.New(),
	}
}

// SendMessage pushes a stored chat message to its receiver. Messages are not
// recorded as notifications, the conversation is their durable home.
func (s *NotificationService) SendMessage(ctx context.Context, msg domain.DirectMessage) (domain.Delivery, error) {
	if err := s.check(msg); err != nil {
		return domain.Offline, err
	}
	return s.emitter.EmitTo(ctx, msg.ReceiverID, event.Outbound{Name: event.NewMessageType, Payload: msg}), nil
}

// Notify records the notification then pushes it live.
// A user never gets notified of their own action.
func (s *NotificationService) Notify(ctx context.Context, cmd NotifyCommand) (domain.Notification, domain.Delivery, error) {
	if err := s.check(cmd); err != nil {
		return domain.Notification{}, domain.Offline, err
	}
	if cmd.Sender == cmd.Recipient {
		return domain.Notification{}, domain.Offline, errors.ErrSelfNotification
	}
	text := s.censor(cmd.Text)

	notification := domain.Notification{
		ID:        uuid.New(),
		Recipient: cmd.Recipient,
		Sender:    cmd.Sender,
		Type:      cmd.Type,
		PostID:    cmd.PostID,
		ReelID:    cmd.ReelID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repository.Store(notification); err != nil {
		return domain.Notification{}, domain.Offline, fmt.Errorf("store notification: %w", err)
	}

	delivery := s.push(ctx, cmd.Recipient, domain.NotificationPush{
		Type:     cmd.Type,
		SenderID: cmd.Sender,
		PostID:   cmd.PostID,
		ReelID:   cmd.ReelID,
		Text:     text,
		Message:  pushMessage(cmd.Type, s.censor(cmd.Message)),
	})
	return notification, delivery, nil
}

// FollowRequested notifies the receiver of a follow. Public accounts are followed at once;
// private ones get a pending request, which is also recorded.
func (s *NotificationService) FollowRequested(ctx context.Context, cmd FollowRequestCommand) (domain.Delivery, error) {
	if err := s.check(cmd); err != nil {
		return domain.Offline, err
	}
	if !cmd.Private {
		return s.push(ctx, cmd.ReceiverID, domain.NotificationPush{
			Type:     domain.NotificationFollow,
			SenderID: cmd.SenderID,
			Message:  followedMessage,
		}), nil
	}

	err := s.repository.Store(domain.Notification{
		ID:        uuid.New(),
		Recipient: cmd.ReceiverID,
		Sender:    cmd.SenderID,
		Type:      domain.NotificationFollowRequest,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return domain.Offline, fmt.Errorf("store follow request notification: %w", err)
	}
	return s.push(ctx, cmd.ReceiverID, domain.NotificationPush{
		Type:      domain.NotificationFollowRequest,
		SenderID:  cmd.SenderID,
		RequestID: cmd.RequestID,
		Message:   followRequestMessage,
	}), nil
}

func (s *NotificationService) FollowAccepted(ctx context.Context, requesterID, accepterID string) (domain.Delivery, error) {
	if requesterID == "" || accepterID == "" {
		return domain.Offline, fmt.Errorf("%w: requester and accepter are required", errors.ErrInvalidPayload)
	}
	return s.push(ctx, requesterID, domain.NotificationPush{
		Type:       domain.NotificationFollow,
		ReceiverID: accepterID,
		Message:    followAcceptedMessage,
	}), nil
}

// StoryPosted queues the new story for every follower of its author.
func (s *NotificationService) StoryPosted(_ context.Context, story domain.Story, followerIDs []string) error {
	if err := s.check(story); err != nil {
		return err
	}
	if len(followerIDs) == 0 {
		return nil
	}
	queued := s.dispatcher.Dispatch(contract.FanoutJob{
		Recipients: followerIDs,
		Event:      event.Outbound{Name: event.NewStoryType, Payload: story},
	})
	if !queued {
		s.log.Warn("New story not fanned out", "story_id", story.ID, "followers", len(followerIDs))
	}
	return nil
}

func (s *NotificationService) StoryViewed(ctx context.Context, authorID string, view domain.StoryView) (domain.Delivery, error) {
	if authorID == "" || view.StoryID == "" || view.UserID == "" {
		return domain.Offline, fmt.Errorf("%w: author, story and viewer are required", errors.ErrInvalidPayload)
	}
	return s.emitter.EmitTo(ctx, authorID, event.Outbound{Name: event.StoryViewCountType, Payload: view}), nil
}

func (s *NotificationService) List(recipient string) ([]domain.Notification, error) {
	return s.repository.List(recipient)
}

func (s *NotificationService) UnreadCount(recipient string) (int, error) {
	return s.repository.UnreadCount(recipient)
}

func (s *NotificationService) MarkRead(recipient string, id uuid.UUID) (domain.Notification, error) {
	if err := s.owns(recipient, id); err != nil {
		return domain.Notification{}, err
	}
	return s.repository.MarkRead(id)
}

func (s *NotificationService) MarkAllRead(recipient string) (int, error) {
	return s.repository.MarkAllRead(recipient)
}

// Delete removes a notification; only its recipient may do so.
func (s *NotificationService) Delete(recipient string, id uuid.UUID) error {
	if err := s.owns(recipient, id); err != nil {
		return err
	}
	return s.repository.Delete(id)
}

func (s *NotificationService) owns(recipient string, id uuid.UUID) error {
	n, err := s.repository.Get(id)
	if err != nil {
		return err
	}
	if n.Recipient != recipient {
		return errors.ErrForbidden
	}
	return nil
}

func (s *NotificationService) push(ctx context.Context, recipient string, push domain.NotificationPush) domain.Delivery {
	return s.emitter.EmitTo(ctx, recipient, event.Outbound{Name: event.NotificationType, Payload: push})
}

// censor masks forbidden words of a preview text before it is stored or pushed.
func (s *NotificationService) censor(text string) string {
	if s.moderator == nil {
		return text
	}
	censored, _ := s.moderator.Censor(text)
	return censored
}

func (s *NotificationService) check(v any) error {
	if err := s.validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidPayload, err)
	}
	return nil
}

func pushMessage(t domain.NotificationType, message string) string {
	if message != "" {
		return message
	}
	if m, ok := pushMessages[t]; ok {
		return m
	}
	return fmt.Sprintf(defaultMessageTemplate, t)
}
