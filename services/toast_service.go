package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/saoodchoudhary/rbmesports/models"
)

const defaultToastQueueSize = 20

// Notifier raises a toast for a user.
type Notifier interface {
	Notify(userID string, level models.ToastLevel, message string) models.Toast
}

// Broadcaster pushes a message to every live connection in a room.
type Broadcaster interface {
	BroadcastToRoom(roomID string, message interface{})
}

type ToastEvent struct {
	Type    string       `json:"type"`
	Payload models.Toast `json:"payload"`
	RoomID  string       `json:"room_id,omitempty"`
}

// ToastService is the per-user notification store. It replaces the browser's
// global toast state: toasts are queued per user and pushed to open websockets.
type ToastService struct {
	mu     sync.Mutex
	queues map[string][]models.Toast
	limit  int
	hub    Broadcaster
	now    func() time.Time
}

func NewToastService(hub Broadcaster, limit int) *ToastService {
	if limit <= 0 {
		limit = defaultToastQueueSize
	}
	return &ToastService{
		queues: make(map[string][]models.Toast),
		limit:  limit,
		hub:    hub,
		now:    time.Now,
	}
}

func UserRoom(userID string) string {
	return "user_" + userID
}

func (s *ToastService) Notify(userID string, level models.ToastLevel, message string) models.Toast {
	toast := models.Toast{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   message,
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	q := append(s.queues[userID], toast)
	if len(q) > s.limit {
		q = q[len(q)-s.limit:]
	}
	s.queues[userID] = q
	s.mu.Unlock()

	if s.hub != nil {
		room := UserRoom(userID)
		s.hub.BroadcastToRoom(room, ToastEvent{Type: "TOAST", Payload: toast, RoomID: room})
	}
	return toast
}

// Drain returns and removes all queued toasts for the user, oldest first.
func (s *ToastService) Drain(userID string) []models.Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := s.queues[userID]
	delete(s.queues, userID)
	if q == nil {
		return []models.Toast{}
	}
	return q
}

func (s *ToastService) Clear(userID string) {
	s.mu.Lock()
	delete(s.queues, userID)
	s.mu.Unlock()
}
