package progress

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Rrens/mock-analyst/internal/domain"
)

// subscription forwards events to one live transport from its own goroutine,
// in the order they were pushed.
type subscription struct {
	sessionID string
	transport domain.LiveTransport
	onFailure func(*subscription, error)

	mu      sync.Mutex
	pending []domain.ProgressEvent

	wake      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

func newSubscription(sessionID string, transport domain.LiveTransport, onFailure func(*subscription, error)) *subscription {
	return &subscription{
		sessionID: sessionID,
		transport: transport,
		onFailure: onFailure,
		wake:      make(chan struct{}, 1),
		done:      make(chan struct{}),
	}
}

func (s *subscription) push(events ...domain.ProgressEvent) {
	if len(events) == 0 {
		return
	}

	s.mu.Lock()
	s.pending = append(s.pending, events...)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *subscription) close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}

func (s *subscription) run() {
	for {
		select {
		case <-s.done:
			return
		case <-s.wake:
		}

		for {
			s.mu.Lock()
			batch := s.pending
			s.pending = nil
			s.mu.Unlock()

			if len(batch) == 0 {
				break
			}

			for _, event := range batch {
				select {
				case <-s.done:
					return
				default:
				}

				data, err := json.Marshal(event)
				if err != nil {
					s.onFailure(s, fmt.Errorf("failed to marshal event: %w", err))
					return
				}
				if err := s.transport.Send(data); err != nil {
					s.onFailure(s, err)
					return
				}
			}
		}
	}
}
