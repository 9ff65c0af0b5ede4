package event

import "encoding/json"

// Name is the wire name of an event carried by a real-time connection.
type Name string

// Inbound client events.
const (
	StoryViewedType     Name = "storyViewed"
	ReelLikedType       Name = "reelLiked"
	ReelCommentedType   Name = "reelCommented"
	FollowRequestedType Name = "followRequested"
	FollowAcceptedType  Name = "followAccepted"
	TypingType          Name = "typing"
	StopTypingType      Name = "stopTyping"
)

// Outbound events pushed to clients.
const (
	PresenceListType               Name = "getOnlineUsers"
	StoryViewNotificationType      Name = "storyViewNotification"
	ReelLikeNotificationType       Name = "reelLikeNotification"
	ReelCommentNotificationType    Name = "reelCommentNotification"
	FollowRequestNotificationType  Name = "followRequestNotification"
	FollowAcceptedNotificationType Name = "followAcceptedNotification"
	UserTypingType                 Name = "userTyping"
	UserStoppedTypingType          Name = "userStoppedTyping"

	NewMessageType     Name = "newMessage"
	NotificationType   Name = "notification"
	NewStoryType       Name = "newStory"
	StoryViewCountType Name = "storyViewed"
)

// Envelope is the JSON frame exchanged on a connection in both directions.
type Envelope struct {
	Event Name            `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Outbound is a directed event: fire-and-forget, never persisted.
type Outbound struct {
	Name    Name
	Payload any
}

// Encode renders the outbound event as a wire frame.
func (o Outbound) Encode() ([]byte, error) {
	var data json.RawMessage
	switch p := o.Payload.(type) {
	case nil:
	case json.RawMessage:
		data = p
	default:
		b, err := json.Marshal(p)
		if err != nil {
			return nil, err
		}
		data = b
	}
	return json.Marshal(Envelope{Event: o.Name, Data: data})
}

// PresenceList is the payload of the presence broadcast: every connected identity.
type PresenceList []string

type UserTyping struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

type UserStoppedTyping struct {
	UserID string `json:"userId"`
}
