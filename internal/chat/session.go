// Package chat implements the form-filling conversation engine behind the
// admin bot. Flows are declarative step lists driven by a per-chat state
// machine; the transport (Telegram) stays in a separate adapter.
package chat

import "sync"

// Photo is an uploaded image passed through a flow step.
type Photo struct {
	Data        []byte
	ContentType string
}

// Session is the per-chat flow state. Scratch holds single-valued answers,
// Multi the multi-select ones, Photos the uploaded images, all keyed by step
// field name. Fields a user skipped are simply absent.
type Session struct {
	ChatID    int64
	Flow      string
	StepIndex int
	Scratch   map[string]string
	Multi     map[string][]string
	Photos    map[string]Photo
}

func newSession(chatID int64, flow string) *Session {
	return &Session{
		ChatID:  chatID,
		Flow:    flow,
		Scratch: map[string]string{},
		Multi:   map[string][]string{},
		Photos:  map[string]Photo{},
	}
}

// Value returns the scratch answer for field.
func (s *Session) Value(field string) (string, bool) {
	v, ok := s.Scratch[field]
	return v, ok
}

// sessions stores active sessions and serializes updates per chat.
type sessions struct {
	mu     sync.Mutex
	active map[int64]*Session
	locks  map[int64]*sync.Mutex
}

func newSessions() *sessions {
	return &sessions{active: map[int64]*Session{}, locks: map[int64]*sync.Mutex{}}
}

// lock acquires the per-chat mutex so updates from one chat are handled
// strictly in order.
func (s *sessions) lock(chatID int64) func() {
	s.mu.Lock()
	l, ok := s.locks[chatID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[chatID] = l
	}
	s.mu.Unlock()
	l.Lock()
	return l.Unlock
}

func (s *sessions) get(chatID int64) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.active[chatID]
	return sess, ok
}

func (s *sessions) put(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active[sess.ChatID] = sess
}

func (s *sessions) drop(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.active, chatID)
}
