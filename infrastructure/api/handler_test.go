package api_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"pulse/auth"
	"pulse/domain"
	"pulse/errors"
	"pulse/infrastructure/api"
	"pulse/mocks"
	"pulse/observability"
	"pulse/services"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type staticPresence []string

func (p staticPresence) Identities() []string { return append([]string(nil), p...) }

type fixture struct {
	service *mocks.MockINotificationService
	issuer  *auth.TokenIssuer
	routes  http.Handler
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)
	reg := prometheus.NewRegistry()
	f := fixture{
		service: mocks.NewMockINotificationService(ctrl),
		issuer:  auth.NewTokenIssuer("a-very-long-secret-used-only-in-tests", time.Hour),
	}
	monitoring := observability.NewMonitoringManager(reg)
	handler := api.NewHandler(slog.Default(), f.service, staticPresence{"carol", "alice"}, monitoring, f.issuer)
	websocket := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })
	f.routes = handler.Routes(websocket, reg)
	return f
}

func (f fixture) do(t *testing.T, method, path, caller string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}
	r := httptest.NewRequest(method, path, &payload)
	if caller != "" {
		token, err := f.issuer.GenerateToken(caller)
		require.NoError(t, err)
		r.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.routes.ServeHTTP(w, r)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRoutes_Public_Endpoints(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/healthz", "", nil)
	req.Equal(http.StatusOK, w.Code)

	// The presence snapshot is sorted
	w = f.do(t, http.MethodGet, "/api/v1/presence", "", nil)
	req.Equal(http.StatusOK, w.Code)
	req.Equal([]any{"alice", "carol"}, decodeBody(t, w)["onlineUsers"])

	w = f.do(t, http.MethodGet, "/api/v1/stats", "", nil)
	req.Equal(http.StatusOK, w.Code)

	w = f.do(t, http.MethodGet, "/metrics", "", nil)
	req.Equal(http.StatusOK, w.Code)
	req.Contains(w.Body.String(), "pulse_connections")

	w = f.do(t, http.MethodGet, "/ws", "", nil)
	req.Equal(http.StatusTeapot, w.Code)
}

func TestRoutes_Secured_Without_Token(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/api/v1/notifications", "", nil)

	req.Equal(http.StatusUnauthorized, w.Code)
}

func TestRoutes_Send_Message(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	msg := domain.DirectMessage{ID: "m1", SenderID: "alice", ReceiverID: "bob", Message: "hi"}

	f.service.EXPECT().SendMessage(gomock.Any(), msg).Return(domain.Delivered, nil)

	// When alice sends her own message
	w := f.do(t, http.MethodPost, "/api/v1/messages", "alice", msg)

	req.Equal(http.StatusAccepted, w.Code)
	req.Equal("delivered", decodeBody(t, w)["delivery"])
}

func TestRoutes_Send_Message_On_Behalf_Of_Someone_Else(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	// When mallory pushes a message as alice
	w := f.do(t, http.MethodPost, "/api/v1/messages", "mallory",
		domain.DirectMessage{ID: "m1", SenderID: "alice", ReceiverID: "bob"})

	req.Equal(http.StatusForbidden, w.Code)
}

func TestRoutes_Notify_Uses_Caller_As_Sender(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	id := uuid.New()

	f.service.EXPECT().
		Notify(gomock.Any(), services.NotifyCommand{Recipient: "bob", Sender: "alice", Type: domain.NotificationLike}).
		Return(domain.Notification{ID: id, Recipient: "bob", Sender: "alice"}, domain.Offline, nil)

	// When alice claims to be someone else in the body
	w := f.do(t, http.MethodPost, "/api/v1/notifications", "alice", map[string]string{
		"recipient": "bob", "sender": "mallory", "type": "like",
	})

	req.Equal(http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	req.Equal("offline", body["delivery"])
}

func TestRoutes_Notify_Self_Is_Skipped(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	f.service.EXPECT().Notify(gomock.Any(), gomock.Any()).
		Return(domain.Notification{}, domain.Offline, errors.ErrSelfNotification)

	w := f.do(t, http.MethodPost, "/api/v1/notifications", "alice", map[string]string{
		"recipient": "alice", "type": "like",
	})

	req.Equal(http.StatusOK, w.Code)
	req.Equal(true, decodeBody(t, w)["skipped"])
}

func TestRoutes_Malformed_Body(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/notifications", "alice", "not an object")

	req.Equal(http.StatusBadRequest, w.Code)
}

func TestRoutes_List_Notifications(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	f.service.EXPECT().List("bob").Return(nil, nil)
	f.service.EXPECT().UnreadCount("bob").Return(0, nil)

	w := f.do(t, http.MethodGet, "/api/v1/notifications", "bob", nil)

	req.Equal(http.StatusOK, w.Code)
	req.Equal([]any{}, decodeBody(t, w)["notifications"])
}

func TestRoutes_Mark_Read(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	id := uuid.New()

	f.service.EXPECT().MarkRead("bob", id).Return(domain.Notification{ID: id, IsRead: true}, nil)

	w := f.do(t, http.MethodPost, "/api/v1/notifications/"+id.String()+"/read", "bob", nil)
	req.Equal(http.StatusOK, w.Code)

	// An invalid id never reaches the service
	w = f.do(t, http.MethodPost, "/api/v1/notifications/not-a-uuid/read", "bob", nil)
	req.Equal(http.StatusBadRequest, w.Code)
}

func TestRoutes_Mark_All_Read(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	f.service.EXPECT().MarkAllRead("bob").Return(3, nil)

	w := f.do(t, http.MethodPost, "/api/v1/notifications/read-all", "bob", nil)

	req.Equal(http.StatusOK, w.Code)
	req.Equal(float64(3), decodeBody(t, w)["updated"])
}

func TestRoutes_Delete_Not_Owned(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	id := uuid.New()

	f.service.EXPECT().Delete("carol", id).Return(errors.ErrForbidden)

	w := f.do(t, http.MethodDelete, "/api/v1/notifications/"+id.String(), "carol", nil)

	req.Equal(http.StatusForbidden, w.Code)
}

func TestRoutes_Follow_Flow(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	f.service.EXPECT().
		FollowRequested(gomock.Any(), services.FollowRequestCommand{
			SenderID: "alice", ReceiverID: "bob", RequestID: "r1", Private: true,
		}).
		Return(domain.Delivered, nil)
	f.service.EXPECT().FollowAccepted(gomock.Any(), "alice", "bob").Return(domain.Offline, nil)

	// When alice asks to follow bob
	w := f.do(t, http.MethodPost, "/api/v1/follow-requests", "alice", map[string]any{
		"receiverId": "bob", "requestId": "r1", "private": true,
	})
	req.Equal(http.StatusAccepted, w.Code)

	// And bob accepts
	w = f.do(t, http.MethodPost, "/api/v1/follow-requests/accept", "bob", map[string]string{"requesterId": "alice"})
	req.Equal(http.StatusAccepted, w.Code)
	req.Equal("offline", decodeBody(t, w)["delivery"])
}

func TestRoutes_Story_Posted(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	story := domain.Story{ID: "s1", Author: domain.StoryAuthor{ID: "alice"}, Image: "img.png"}

	f.service.EXPECT().StoryPosted(gomock.Any(), gomock.Any(), []string{"bob", "carol"}).Return(nil)

	w := f.do(t, http.MethodPost, "/api/v1/stories", "alice", map[string]any{
		"story": story, "followers": []string{"bob", "carol"},
	})
	req.Equal(http.StatusAccepted, w.Code)

	// Someone else cannot post it
	w = f.do(t, http.MethodPost, "/api/v1/stories", "mallory", map[string]any{"story": story})
	req.Equal(http.StatusForbidden, w.Code)
}

func TestRoutes_Story_Viewed_Uses_Caller_As_Viewer(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	f.service.EXPECT().
		StoryViewed(gomock.Any(), "alice", domain.StoryView{StoryID: "s1", UserID: "bob", ViewCount: 4}).
		Return(domain.Delivered, nil)

	w := f.do(t, http.MethodPost, "/api/v1/stories/view", "bob", map[string]any{
		"authorId": "alice", "storyId": "s1", "viewCount": 4,
	})

	req.Equal(http.StatusAccepted, w.Code)
}
