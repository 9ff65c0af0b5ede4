// Package domain contains the concepts shared by the real-time layer and its collaborators.
// Identities (user, post, reel, story, request) are opaque strings owned elsewhere.
package domain

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationLike          NotificationType = "like"
	NotificationComment       NotificationType = "comment"
	NotificationFollow        NotificationType = "follow"
	NotificationFollowRequest NotificationType = "follow_request"
	NotificationMention       NotificationType = "mention"
	NotificationMessage       NotificationType = "message"
)

// Notification is the durable record of something that happened to a recipient.
// It can be fetched on next login even if the real-time push was dropped.
type Notification struct {
	ID        uuid.UUID        `json:"_id"`
	Recipient string           `json:"recipient"`
	Sender    string           `json:"sender"`
	Type      NotificationType `json:"type"`
	PostID    string           `json:"post,omitempty"`
	ReelID    string           `json:"reel,omitempty"`
	Text      string           `json:"text,omitempty"`
	IsRead    bool             `json:"isRead"`
	CreatedAt time.Time        `json:"createdAt"`
}

// NotificationPush is the live counterpart of a Notification sent on the "notification" event.
type NotificationPush struct {
	Type       NotificationType `json:"type"`
	SenderID   string           `json:"senderId,omitempty"`
	ReceiverID string           `json:"receiverId,omitempty"`
	PostID     string           `json:"postId,omitempty"`
	ReelID     string           `json:"reelId,omitempty"`
	RequestID  string           `json:"requestId,omitempty"`
	Text       string           `json:"text,omitempty"`
	Message    string           `json:"message"`
}
