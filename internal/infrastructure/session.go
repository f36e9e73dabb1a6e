package infrastructure

import (
	"sync"
)

// WizardContext is the accumulator for a multi-step admin flow. Fields are
// filled step by step and committed (or discarded) atomically; starting a
// new wizard always replaces the previous context for that chat.
type WizardContext struct {
	Kind string // wizard tag, e.g. "add_profit"
	Step string // current step within the wizard

	WorkerID   int64 // selected worker (users.id)
	WorkerChat int64 // selected worker's telegram id, for notifications
	Name       string
	TelegramID int64
	Direction  string
	Amount     float64
	TeamID     int64
	LeaderID   int64
}

// Session tracks conversation state for one chat.
type Session struct {
	ChatID     int64
	State      string
	Period     string // last period picked in the stats menu
	RatingKind string // "workers" or "teams"
	Wizard     *WizardContext
	mu         sync.Mutex
}

// Lock serializes handling of messages from the same chat. Different chats
// proceed concurrently.
func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// StartWizard replaces any pending wizard context with a fresh one.
func (s *Session) StartWizard(kind, step string) *WizardContext {
	s.Wizard = &WizardContext{Kind: kind, Step: step}
	return s.Wizard
}

// ClearWizard drops the pending wizard context, completed or not.
func (s *Session) ClearWizard() {
	s.Wizard = nil
}

// SessionManager manages per-chat sessions.
type SessionManager struct {
	sessions map[int64]*Session
	mu       sync.RWMutex
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[int64]*Session),
	}
}

// GetOrCreateSession returns the session for a chat, creating it on first contact.
func (sm *SessionManager) GetOrCreateSession(chatID int64) *Session {
	sm.mu.RLock()
	session, exists := sm.sessions[chatID]
	sm.mu.RUnlock()
	if exists {
		return session
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()
	if session, exists = sm.sessions[chatID]; !exists {
		session = &Session{ChatID: chatID}
		sm.sessions[chatID] = session
	}
	return session
}
