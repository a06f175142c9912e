package spectate

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/VladWero08/SinisterEscape/status"
)

// Hub defaults
const (
	DefaultInterval = 100 * time.Millisecond
	frameBuffer     = 16
)

// Hub fans frames out to subscribers without ever blocking the sender
// A subscriber whose buffer is full misses the frame; misses are counted
type Hub struct {
	Interval time.Duration

	mu          sync.RWMutex
	subscribers map[string]chan Frame
	dropped     *atomic.Int64
	lastOffer   time.Time
}

// NewHub creates a hub counting dropped frames in reg
func NewHub(reg *status.Registry) *Hub {
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &Hub{
		Interval:    DefaultInterval,
		subscribers: make(map[string]chan Frame),
		dropped:     reg.Ints.Get(status.KeyFramesDropped),
	}
}

// Register creates the channel of subscriber id, replacing a previous one
func (h *Hub) Register(id string) <-chan Frame {
	h.mu.Lock()
	defer h.mu.Unlock()

	if old, ok := h.subscribers[id]; ok {
		close(old)
	}
	ch := make(chan Frame, frameBuffer)
	h.subscribers[id] = ch
	return ch
}

// Unregister closes and removes the channel of subscriber id
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.subscribers[id]; ok {
		close(ch)
		delete(h.subscribers, id)
	}
}

// Count returns the number of subscribers
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Dropped returns the number of frames lost to full buffers
func (h *Hub) Dropped() int64 {
	return h.dropped.Load()
}

// Broadcast sends f to every subscriber
func (h *Hub) Broadcast(f Frame) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.subscribers {
		select {
		case ch <- f:
		default:
			h.dropped.Add(1)
		}
	}
}

// Offer broadcasts a frame built by capture when the interval has elapsed
// and someone is watching; it reports whether a frame was sent
// Called from the loop goroutine only
func (h *Hub) Offer(now time.Time, capture func() Frame) bool {
	if now.Sub(h.lastOffer) < h.Interval || h.Count() == 0 {
		return false
	}
	h.lastOffer = now
	h.Broadcast(capture())
	return true
}

// Close unregisters every subscriber
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, ch := range h.subscribers {
		close(ch)
		delete(h.subscribers, id)
	}
}
