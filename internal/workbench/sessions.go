package workbench

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/joelkehle/procurement-desk/internal/procurement"
)

// Session is one operator's walk through the procurement workflow. Each
// session owns its pipeline state and the last processed input per stage.
// The mutex serializes all access including stage processing, so a session
// runs one stage at a time; independent sessions never contend.
type Session struct {
	Token     string
	CreatedAt time.Time

	mu     sync.Mutex
	state  *procurement.PipelineState
	inputs map[procurement.Stage]string
}

type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

func generateToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func (s *SessionStore) Create() *Session {
	sess := &Session{
		Token:     generateToken(),
		CreatedAt: time.Now(),
		state:     procurement.NewPipelineState(),
		inputs:    make(map[procurement.Stage]string),
	}
	s.mu.Lock()
	s.sessions[sess.Token] = sess
	s.mu.Unlock()
	return sess
}

func (s *SessionStore) Get(token string) *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[token]
}
