package store

import (
	"sync"

	"github.com/Darkcoder011/TasteSphere/internal/models"
)

// ConversationStore owns the ordered chat transcript. Appends preserve
// order; the only removal ever performed is popping the last message
// during a retry.
type ConversationStore struct {
	mu       sync.RWMutex
	messages []models.Message
}

func NewConversationStore() *ConversationStore {
	return &ConversationStore{}
}

// Append adds a message to the end of the transcript
func (s *ConversationStore) Append(msg models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append(s.messages, msg)
}

// RemoveLast drops the most recent message. It is a no-op on an empty
// transcript and reports whether a message was removed.
func (s *ConversationStore) RemoveLast() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.messages) == 0 {
		return false
	}
	s.messages = s.messages[:len(s.messages)-1]
	return true
}

// RemoveLastAssistant drops the most recent message only when it is
// assistant-authored, leaving the transcript untouched otherwise.
func (s *ConversationStore) RemoveLastAssistant() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.messages) == 0 {
		return false
	}
	if s.messages[len(s.messages)-1].Role != models.RoleAssistant {
		return false
	}
	s.messages = s.messages[:len(s.messages)-1]
	return true
}

// Clear empties the transcript
func (s *ConversationStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = nil
}

// Messages returns a copy of the transcript in append order
func (s *ConversationStore) Messages() []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Last returns the most recent message, or false when the transcript is
// empty
func (s *ConversationStore) Last() (models.Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.messages) == 0 {
		return models.Message{}, false
	}
	return s.messages[len(s.messages)-1], true
}

// Len returns the number of messages in the transcript
func (s *ConversationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.messages)
}
