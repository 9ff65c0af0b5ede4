package ws

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"pulse/runtime"
	"strings"

	"github.com/gorilla/websocket"
)

// Handler upgrades HTTP requests into real-time sessions bound to the router.
// The identity comes from the userId query parameter and is not authenticated here.
type Handler struct {
	log      *slog.Logger
	router   *runtime.Router
	upgrader websocket.Upgrader
	opts     Options
}

func NewHandler(log *slog.Logger, router *runtime.Router, allowedOrigins []string, opts Options) *Handler {
	return &Handler{
		log:    log,
		router: router,
		opts:   opts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")

	wsConn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client
		h.log.Debug("Websocket upgrade failed", "error", err)
		return
	}

	ctx := r.Context()
	conn := NewConn(wsConn, h.log, h.opts)
	session := h.router.Connect(ctx, conn, userID)
	defer session.Close(context.WithoutCancel(ctx))

	go conn.WritePump(ctx)
	if err := conn.ReadPump(ctx, session.Handle); err != nil {
		h.log.Debug("Connection ended abnormally", "user_id", userID, "error", err)
	}
}

// originChecker accepts non-browser clients, exact hosts and "*.domain" wildcards.
func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		host := u.Hostname()
		for _, a := range allowed {
			a = strings.TrimSpace(a)
			switch {
			case a == "*":
				return true
			case a == host || a == origin:
				return true
			case strings.HasPrefix(a, "*.") && strings.HasSuffix(host, a[1:]):
				return true
			}
		}
		return false
	}
}
