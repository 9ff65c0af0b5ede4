package event

import (
	"encoding/json"
	"fmt"
	"pulse/errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Inbound is a client-originated event decoded into its own variant.
// Target is the identity the resulting directed event is addressed to.
type Inbound interface {
	Kind() Name
	Target() string
	Outbound(senderID string) Outbound
}

// passthrough keeps the raw inbound payload so it is relayed unchanged.
type passthrough struct {
	raw json.RawMessage
}

func (p passthrough) payload() json.RawMessage { return p.raw }

type StoryViewed struct {
	passthrough
	AuthorID string `json:"authorId" validate:"required"`
	StoryID  string `json:"storyId"`
}

func (e StoryViewed) Kind() Name     { return StoryViewedType }
func (e StoryViewed) Target() string { return e.AuthorID }
func (e StoryViewed) Outbound(string) Outbound {
	return Outbound{Name: StoryViewNotificationType, Payload: e.payload()}
}

type ReelLiked struct {
	passthrough
	AuthorID string `json:"authorId" validate:"required"`
	ReelID   string `json:"reelId"`
}

func (e ReelLiked) Kind() Name     { return ReelLikedType }
func (e ReelLiked) Target() string { return e.AuthorID }
func (e ReelLiked) Outbound(string) Outbound {
	return Outbound{Name: ReelLikeNotificationType, Payload: e.payload()}
}

type ReelCommented struct {
	passthrough
	AuthorID string `json:"authorId" validate:"required"`
	ReelID   string `json:"reelId"`
}

func (e ReelCommented) Kind() Name     { return ReelCommentedType }
func (e ReelCommented) Target() string { return e.AuthorID }
func (e ReelCommented) Outbound(string) Outbound {
	return Outbound{Name: ReelCommentNotificationType, Payload: e.payload()}
}

type FollowRequested struct {
	passthrough
	TargetUserID string `json:"targetUserId" validate:"required"`
}

func (e FollowRequested) Kind() Name     { return FollowRequestedType }
func (e FollowRequested) Target() string { return e.TargetUserID }
func (e FollowRequested) Outbound(string) Outbound {
	return Outbound{Name: FollowRequestNotificationType, Payload: e.payload()}
}

type FollowAccepted struct {
	passthrough
	SenderID string `json:"senderId" validate:"required"`
}

func (e FollowAccepted) Kind() Name     { return FollowAcceptedType }
func (e FollowAccepted) Target() string { return e.SenderID }
func (e FollowAccepted) Outbound(string) Outbound {
	return Outbound{Name: FollowAcceptedNotificationType, Payload: e.payload()}
}

// Typing replaces the client payload: the receiver only learns who is typing.
type Typing struct {
	ReceiverID string `json:"receiverId" validate:"required"`
	Username   string `json:"username"`
}

func (e Typing) Kind() Name     { return TypingType }
func (e Typing) Target() string { return e.ReceiverID }
func (e Typing) Outbound(senderID string) Outbound {
	return Outbound{Name: UserTypingType, Payload: UserTyping{UserID: senderID, Username: e.Username}}
}

type StopTyping struct {
	ReceiverID string `json:"receiverId" validate:"required"`
}

func (e StopTyping) Kind() Name     { return StopTypingType }
func (e StopTyping) Target() string { return e.ReceiverID }
func (e StopTyping) Outbound(senderID string) Outbound {
	return Outbound{Name: UserStoppedTypingType, Payload: UserStoppedTyping{UserID: senderID}}
}

// Decode parses the data of an inbound frame into the variant bound to its name.
// A frame missing its target field fails validation and is reported as ErrInvalidPayload.
func Decode(name Name, data json.RawMessage) (Inbound, error) {
	switch name {
	case StoryViewedType:
		var e StoryViewed
		return decodePassthrough(data, &e, &e.passthrough)
	case ReelLikedType:
		var e ReelLiked
		return decodePassthrough(data, &e, &e.passthrough)
	case ReelCommentedType:
		var e ReelCommented
		return decodePassthrough(data, &e, &e.passthrough)
	case FollowRequestedType:
		var e FollowRequested
		return decodePassthrough(data, &e, &e.passthrough)
	case FollowAcceptedType:
		var e FollowAccepted
		return decodePassthrough(data, &e, &e.passthrough)
	case TypingType:
		var e Typing
		if err := decode(data, &e); err != nil {
			return nil, err
		}
		return e, nil
	case StopTypingType:
		var e StopTyping
		if err := decode(data, &e); err != nil {
			return nil, err
		}
		return e, nil
	default:
		return nil, fmt.Errorf("%w: %q", errors.ErrUnknownEvent, name)
	}
}

func decodePassthrough[T Inbound](data json.RawMessage, e *T, p *passthrough) (Inbound, error) {
	if err := decode(data, e); err != nil {
		return nil, err
	}
	p.raw = append(json.RawMessage(nil), data...)
	return *e, nil
}

func decode(data json.RawMessage, target any) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: empty data", errors.ErrInvalidPayload)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidPayload, err)
	}
	if err := validate.Struct(target); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidPayload, err)
	}
	return nil
}
