package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/saoodchoudhary/rbmesports/models"
	"github.com/saoodchoudhary/rbmesports/services"
)

type ToastInbox interface {
	Drain(userID string) []models.Toast
}

// RoomServer attaches an upgraded connection to a push room.
type RoomServer interface {
	Serve(conn *websocket.Conn, room string)
}

type NotificationHandler struct {
	toasts   ToastInbox
	hub      RoomServer
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewNotificationHandler принимает список разрешенных Origin для WebSocket.
// Пустой список разрешает любой Origin.
func NewNotificationHandler(toasts ToastInbox, hub RoomServer, allowedOrigins []string, logger *slog.Logger) *NotificationHandler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return &NotificationHandler{
		toasts: toasts,
		hub:    hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || len(allowed) == 0 || allowed["*"] {
					return true
				}
				return allowed[origin]
			},
		},
		logger: logger,
	}
}

// ListNotifications godoc
// @Summary Забрать накопившиеся уведомления
// @Description Возвращает и очищает очередь уведомлений пользователя.
// @Tags notifications
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /notifications [get]
func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}

	toasts := h.toasts.Drain(actor.UserID)
	if err := writeJSON(w, http.StatusOK, jsonResponse{"notifications": toasts}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ServeWs подписывает соединение на комнату пользователя.
// Клиент подключается к /ws/notifications?token=...
func (h *NotificationHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade сам отвечает клиенту ошибкой
		h.logger.Warn("failed to upgrade websocket", "user_id", actor.UserID, "error", err)
		return
	}

	room := services.UserRoom(actor.UserID)
	h.hub.Serve(conn, room)
	h.logger.Debug("websocket client subscribed", "room", room)
}

// Healthz godoc
// @Summary Проверка живости
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Router /healthz [get]
func Healthz(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, jsonResponse{"status": "ok"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
