package email

import (
	"context"
	"sync"
)

// MockSender records sent messages in memory for testing
type MockSender struct {
	mu       sync.Mutex
	messages []Message
	err      error
}

// NewMockSender creates a new MockSender
func NewMockSender() *MockSender {
	return &MockSender{}
}

// FailWith makes every subsequent Send return err; nil restores delivery
func (m *MockSender) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Send implements Sender.Send
func (m *MockSender) Send(ctx context.Context, msg *Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return &SendError{Provider: "mock", To: msg.To, Err: m.err}
	}
	m.messages = append(m.messages, *msg)
	return nil
}

// Messages returns a copy of every message delivered so far
func (m *MockSender) Messages() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Message(nil), m.messages...)
}
