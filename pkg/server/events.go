package server

import (
	"encoding/json"
	"sync"

	"github.com/user/framegrid/pkg/progress"
)

// SSEManager fans progress messages out to the event streams of one job.
type SSEManager struct {
	subscribers map[string]chan string
	mutex       sync.Mutex
	closed      bool
}

// NewSSEManager creates a manager with no subscribers.
func NewSSEManager() *SSEManager {
	return &SSEManager{
		subscribers: make(map[string]chan string),
	}
}

// Subscribe registers a stream. The channel is closed when the job ends or
// the subscriber falls behind.
func (s *SSEManager) Subscribe(id string) chan string {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	ch := make(chan string, 20)
	if s.closed {
		close(ch)
		return ch
	}
	s.subscribers[id] = ch

	return ch
}

// Unsubscribe removes a stream and closes its channel.
func (s *SSEManager) Unsubscribe(id string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if ch, ok := s.subscribers[id]; ok {
		close(ch)
		delete(s.subscribers, id)
	}
}

// Publish sends message to every subscriber, dropping slow ones.
func (s *SSEManager) Publish(message string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for id, ch := range s.subscribers {
		select {
		case ch <- message:
		default:
			close(ch)
			delete(s.subscribers, id)
		}
	}
}

// Close ends every stream; later subscribers get a closed channel.
func (s *SSEManager) Close() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.closed = true
	for id, ch := range s.subscribers {
		close(ch)
		delete(s.subscribers, id)
	}
}

// Update implements progress.Observer by publishing the snapshot as JSON.
func (s *SSEManager) Update(snap progress.Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		return
	}
	s.Publish(string(data))
}

var _ progress.Observer = (*SSEManager)(nil)
