// Package notify fans imported listings out to in-process subscribers
// (match watchers, websocket bridges, tests).
package notify

import (
	"sync"
	"sync/atomic"

	"github.com/ecoplate/go-ecoplate/internal/models"
)

type Broadcaster struct {
	subscribers map[uint64]chan *models.Listing
	nextID      atomic.Uint64
	mu          sync.RWMutex
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[uint64]chan *models.Listing),
	}
}

func (b *Broadcaster) Subscribe() (uint64, chan *models.Listing) {
	id := b.nextID.Add(1)
	ch := make(chan *models.Listing, 100) // buffer for a full seed batch

	b.mu.Lock()
	b.subscribers[id] = ch
	b.mu.Unlock()

	return id, ch
}

func (b *Broadcaster) Unsubscribe(id uint64) {
	b.mu.Lock()
	if ch, ok := b.subscribers[id]; ok {
		close(ch)
		delete(b.subscribers, id)
	}
	b.mu.Unlock()
}

func (b *Broadcaster) Broadcast(l *models.Listing) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- l:
		default:
			// Skip slow subscribers
		}
	}
}

func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Close closes all subscriber channels, causing watchers to exit gracefully
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.subscribers {
		close(ch)
		delete(b.subscribers, id)
	}
}
