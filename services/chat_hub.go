package services

import (
	"sync"

	"go.uber.org/zap"

	"gymbuddy-api/models"
)

// subscriberBuffer bounds how far a slow consumer may lag before live
// deliveries are dropped for it; the full history stays in the store.
const subscriberBuffer = 16

// ChatHub fans persisted messages out to live subscribers per chat room.
// Publish and cancellation take the same lock, so once a cancel returns no
// further delivery can happen on that subscription.
type ChatHub struct {
	mu          sync.RWMutex
	subscribers map[string]map[int]chan models.Message
	nextID      int
	logger      *zap.Logger
}

func NewChatHub(logger *zap.Logger) *ChatHub {
	return &ChatHub{
		subscribers: make(map[string]map[int]chan models.Message),
		logger:      logger,
	}
}

// Subscribe registers a live listener on a room. The returned cancel func is
// idempotent and closes the channel after removing the subscription.
func (h *ChatHub) Subscribe(roomID string) (<-chan models.Message, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subscribers[roomID] == nil {
		h.subscribers[roomID] = make(map[int]chan models.Message)
	}

	id := h.nextID
	h.nextID++

	ch := make(chan models.Message, subscriberBuffer)
	h.subscribers[roomID][id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()

			delete(h.subscribers[roomID], id)
			if len(h.subscribers[roomID]) == 0 {
				delete(h.subscribers, roomID)
			}
			close(ch)
		})
	}

	return ch, cancel
}

// Publish delivers a message to every live subscriber of its room. Delivery
// is best-effort: a subscriber whose buffer is full misses the live event.
func (h *ChatHub) Publish(message models.Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.subscribers[message.ChatRoomID] {
		select {
		case ch <- message:
		default:
			h.logger.Warn("dropping live message for slow subscriber",
				zap.String("chat_room_id", message.ChatRoomID))
		}
	}
}
