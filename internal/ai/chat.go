package ai

import (
	"sync"
	"time"

	"go-vend-agent/internal/models"

	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Session is one conversational session with the advisory chat. The
// transcript is append-only and lives only as long as the process; nothing
// is persisted across restarts.
type Session struct {
	mu       sync.Mutex
	messages []models.ChatMessage
}

func NewSession() *Session {
	return &Session{}
}

// Append adds one message to the transcript and returns it.
func (s *Session) Append(role, text string) models.ChatMessage {
	msg := models.ChatMessage{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		Timestamp: time.Now().UnixMilli(),
	}
	s.mu.Lock()
	s.messages = append(s.messages, msg)
	s.mu.Unlock()
	return msg
}

// History returns a copy of the transcript in order.
func (s *Session) History() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}
