package services

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saoodchoudhary/rbmesports/models"
)

type fakeBroadcaster struct {
	mu   sync.Mutex
	sent map[string][]interface{}
}

func (f *fakeBroadcaster) BroadcastToRoom(roomID string, message interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sent == nil {
		f.sent = map[string][]interface{}{}
	}
	f.sent[roomID] = append(f.sent[roomID], message)
}

func TestToastService_NotifyPushesToUserRoom(t *testing.T) {
	hub := &fakeBroadcaster{}
	svc := NewToastService(hub, 0)

	toast := svc.Notify("u1", models.ToastSuccess, "Registration successful!")
	assert.NotEmpty(t, toast.ID)

	require.Len(t, hub.sent["user_u1"], 1)
	event := hub.sent["user_u1"][0].(ToastEvent)
	assert.Equal(t, "TOAST", event.Type)
	assert.Equal(t, toast, event.Payload)
	assert.Empty(t, hub.sent["user_u2"])
}

func TestToastService_QueueIsBoundedAndDrained(t *testing.T) {
	svc := NewToastService(nil, 3)
	for i := 0; i < 5; i++ {
		svc.Notify("u1", models.ToastInfo, fmt.Sprintf("toast %d", i))
	}
	svc.Notify("u2", models.ToastError, "other user")

	drained := svc.Drain("u1")
	require.Len(t, drained, 3)
	assert.Equal(t, "toast 2", drained[0].Message)
	assert.Equal(t, "toast 4", drained[2].Message)
	assert.Empty(t, svc.Drain("u1"))

	svc.Clear("u2")
	assert.Empty(t, svc.Drain("u2"))
}
