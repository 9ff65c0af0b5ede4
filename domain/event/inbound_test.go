package event

import (
	"encoding/json"
	"pulse/errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecode_Routes_To_Target(t *testing.T) {
	tests := []struct {
		name     Name
		data     string
		target   string
		outbound Name
	}{
		{StoryViewedType, `{"authorId":"a","storyId":"s"}`, "a", StoryViewNotificationType},
		{ReelLikedType, `{"authorId":"a","reelId":"r"}`, "a", ReelLikeNotificationType},
		{ReelCommentedType, `{"authorId":"a","reelId":"r","text":"wow"}`, "a", ReelCommentNotificationType},
		{FollowRequestedType, `{"targetUserId":"t"}`, "t", FollowRequestNotificationType},
		{FollowAcceptedType, `{"senderId":"s"}`, "s", FollowAcceptedNotificationType},
		{TypingType, `{"receiverId":"r","username":"U"}`, "r", UserTypingType},
		{StopTypingType, `{"receiverId":"r"}`, "r", UserStoppedTypingType},
	}
	for _, tt := range tests {
		t.Run(string(tt.name), func(t *testing.T) {
			req := require.New(t)

			inbound, err := Decode(tt.name, json.RawMessage(tt.data))

			req.NoError(err)
			req.Equal(tt.name, inbound.Kind())
			req.Equal(tt.target, inbound.Target())
			req.Equal(tt.outbound, inbound.Outbound("sender").Name)
		})
	}
}

func TestDecode_Passthrough_Keeps_Unknown_Fields(t *testing.T) {
	req := require.New(t)
	data := `{"authorId":"a","reelId":"r","likerName":"Bob","likerAvatar":"x.png"}`

	inbound, err := Decode(ReelLikedType, json.RawMessage(data))
	req.NoError(err)

	frame, err := inbound.Outbound("bob").Encode()
	req.NoError(err)
	req.JSONEq(`{"event":"reelLikeNotification","data":`+data+`}`, string(frame))
}

func TestDecode_Typing_Carries_Sender(t *testing.T) {
	req := require.New(t)

	inbound, err := Decode(TypingType, json.RawMessage(`{"receiverId":"bob","username":"Alice","userId":"spoofed"}`))
	req.NoError(err)

	frame, err := inbound.Outbound("alice").Encode()
	req.NoError(err)
	req.JSONEq(`{"event":"userTyping","data":{"userId":"alice","username":"Alice"}}`, string(frame))
}

func TestDecode_Rejects(t *testing.T) {
	tests := []struct {
		label    string
		name     Name
		data     string
		expected error
	}{
		{"unknown event", "poke", `{"receiverId":"r"}`, errors.ErrUnknownEvent},
		{"missing target", ReelLikedType, `{"reelId":"r"}`, errors.ErrInvalidPayload},
		{"empty target", TypingType, `{"receiverId":""}`, errors.ErrInvalidPayload},
		{"not json", FollowRequestedType, `{targetUserId`, errors.ErrInvalidPayload},
		{"no data", StopTypingType, ``, errors.ErrInvalidPayload},
		{"wrong type", FollowAcceptedType, `{"senderId":42}`, errors.ErrInvalidPayload},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			_, err := Decode(tt.name, json.RawMessage(tt.data))
			require.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestOutbound_Encode_Without_Payload(t *testing.T) {
	req := require.New(t)

	frame, err := Outbound{Name: PresenceListType}.Encode()

	req.NoError(err)
	req.JSONEq(`{"event":"getOnlineUsers"}`, string(frame))
}
