// Package api exposes the real-time layer to HTTP collaborators.
// Every mutating route acts on behalf of the authenticated caller.
package api

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"pulse/auth"
	"pulse/domain"
	"pulse/errors"
	"pulse/observability"
	"pulse/services"
	"slices"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxBodySize = 1 << 20

// PresenceSource is the read side of the connection registry.
type PresenceSource interface {
	Identities() []string
}

type Handler struct {
	log        *slog.Logger
	service    services.INotificationService
	presence   PresenceSource
	monitoring *observability.MonitoringManager
	issuer     *auth.TokenIssuer
}

func NewHandler(log *slog.Logger, service services.INotificationService, presence PresenceSource,
	monitoring *observability.MonitoringManager, issuer *auth.TokenIssuer) *Handler {
	return &Handler{log: log, service: service, presence: presence, monitoring: monitoring, issuer: issuer}
}

// Routes mounts the API, the websocket endpoint and the operational endpoints.
func (h *Handler) Routes(websocket http.Handler, gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /ws", websocket)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	})
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /api/v1/presence", h.listPresence)
	mux.HandleFunc("GET /api/v1/stats", h.stats)

	secured := http.NewServeMux()
	secured.HandleFunc("POST /api/v1/messages", h.sendMessage)
	secured.HandleFunc("POST /api/v1/notifications", h.notify)
	secured.HandleFunc("GET /api/v1/notifications", h.listNotifications)
	secured.HandleFunc("POST /api/v1/notifications/read-all", h.markAllRead)
	secured.HandleFunc("POST /api/v1/notifications/{id}/read", h.markRead)
	secured.HandleFunc("DELETE /api/v1/notifications/{id}", h.deleteNotification)
	secured.HandleFunc("POST /api/v1/follow-requests", h.followRequested)
	secured.HandleFunc("POST /api/v1/follow-requests/accept", h.followAccepted)
	secured.HandleFunc("POST /api/v1/stories", h.storyPosted)
	secured.HandleFunc("POST /api/v1/stories/view", h.storyViewed)
	mux.Handle("/api/v1/", h.issuer.Middleware(secured))

	return mux
}

func (h *Handler) listPresence(w http.ResponseWriter, _ *http.Request) {
	identities := h.presence.Identities()
	slices.Sort(identities)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "onlineUsers": identities})
}

func (h *Handler) stats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.monitoring.GetLatest())
}

func (h *Handler) sendMessage(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.UserIDFromContext(r.Context())
	var msg domain.DirectMessage
	if !h.decode(w, r, &msg) {
		return
	}
	if msg.SenderID != caller {
		h.fail(w, errors.ErrForbidden)
		return
	}
	delivery, err := h.service.SendMessage(r.Context(), msg)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{"success": true, "delivery": delivery.String()})
}

func (h *Handler) notify(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.UserIDFromContext(r.Context())
	var cmd services.NotifyCommand
	if !h.decode(w, r, &cmd) {
		return
	}
	cmd.Sender = caller
	notification, delivery, err := h.service.Notify(r.Context(), cmd)
	if stderrors.Is(err, errors.ErrSelfNotification) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "skipped": true})
		return
	}
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"success":      true,
		"notification": notification,
		"delivery":     delivery.String(),
	})
}

func (h *Handler) listNotifications(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.UserIDFromContext(r.Context())
	notifications, err := h.service.List(caller)
	if err != nil {
		h.fail(w, err)
		return
	}
	unread, err := h.service.UnreadCount(caller)
	if err != nil {
		h.fail(w, err)
		return
	}
	if notifications == nil {
		notifications = []domain.Notification{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"notifications": notifications,
		"unread":        unread,
	})
}

func (h *Handler) markRead(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.UserIDFromContext(r.Context())
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	notification, err := h.service.MarkRead(caller, id)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "notification": notification})
}

func (h *Handler) markAllRead(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.UserIDFromContext(r.Context())
	count, err := h.service.MarkAllRead(caller)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "All notifications marked as read",
		"updated": count,
	})
}

func (h *Handler) deleteNotification(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.UserIDFromContext(r.Context())
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(caller, id); err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Notification deleted"})
}

func (h *Handler) followRequested(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.UserIDFromContext(r.Context())
	var cmd services.FollowRequestCommand
	if !h.decode(w, r, &cmd) {
		return
	}
	cmd.SenderID = caller
	delivery, err := h.service.FollowRequested(r.Context(), cmd)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{"success": true, "delivery": delivery.String()})
}

type followAcceptedRequest struct {
	RequesterID string `json:"requesterId"`
}

func (h *Handler) followAccepted(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.UserIDFromContext(r.Context())
	var body followAcceptedRequest
	if !h.decode(w, r, &body) {
		return
	}
	delivery, err := h.service.FollowAccepted(r.Context(), body.RequesterID, caller)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{"success": true, "delivery": delivery.String()})
}

type storyPostedRequest struct {
	Story     domain.Story `json:"story"`
	Followers []string     `json:"followers"`
}

func (h *Handler) storyPosted(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.UserIDFromContext(r.Context())
	var body storyPostedRequest
	if !h.decode(w, r, &body) {
		return
	}
	if body.Story.Author.ID != caller {
		h.fail(w, errors.ErrForbidden)
		return
	}
	if err := h.service.StoryPosted(r.Context(), body.Story, body.Followers); err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{"success": true, "followers": len(body.Followers)})
}

type storyViewedRequest struct {
	AuthorID  string `json:"authorId"`
	StoryID   string `json:"storyId"`
	ViewCount int    `json:"viewCount"`
}

func (h *Handler) storyViewed(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.UserIDFromContext(r.Context())
	var body storyViewedRequest
	if !h.decode(w, r, &body) {
		return
	}
	delivery, err := h.service.StoryViewed(r.Context(), body.AuthorID, domain.StoryView{
		StoryID:   body.StoryID,
		UserID:    caller,
		ViewCount: body.ViewCount,
	})
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{"success": true, "delivery": delivery.String()})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, target any) bool {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err := decoder.Decode(target); err != nil {
		h.fail(w, fmt.Errorf("%w: %v", errors.ErrInvalidPayload, err))
		return false
	}
	return true
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.fail(w, fmt.Errorf("%w: notification id", errors.ErrInvalidPayload))
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	status := errors.StatusCode(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("Request failed", "error", err)
	}
	writeJSON(w, status, map[string]any{"success": false, "message": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
