package domain

import "time"

type MediaType string

const (
	MediaText  MediaType = "text"
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
	MediaReel  MediaType = "reel"
	MediaEmoji MediaType = "emoji"
)

// DirectMessage is a chat message already stored by the messaging collaborator.
type DirectMessage struct {
	ID         string    `json:"_id" validate:"required"`
	SenderID   string    `json:"senderId" validate:"required"`
	ReceiverID string    `json:"receiverId" validate:"required"`
	Message    string    `json:"message"`
	MediaType  MediaType `json:"mediaType,omitempty" validate:"omitempty,oneof=text image video reel emoji"`
	MediaURL   string    `json:"mediaUrl,omitempty"`
	Emoji      string    `json:"emoji,omitempty"`
	IsRead     bool      `json:"isRead"`
	CreatedAt  time.Time `json:"createdAt"`
}
