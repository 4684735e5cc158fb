package papertrade

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// UserStore is the data access port for users and their sessions.
type UserStore interface {
	// UserByCredential returns a snapshot of the user of a session.
	UserByCredential(credential string) (*User, error)
	// UserByUsername returns a snapshot of a user.
	UserByUsername(username string) (*User, error)
	// Create registers a new user, ErrUserExists if the username is taken.
	Create(u *User) error
	// Save upserts a user.
	Save(u *User) error
	// Update runs fn on the user of a session as one serializable unit.
	// Changes made by fn are kept only if it returns nil.
	Update(credential string, fn func(*User) error) error
	// OpenSession issues a new opaque credential for username.
	OpenSession(username string) (string, error)
	// CloseSession revokes a credential.
	CloseSession(credential string) error
}

// userRecord guards one user. Its mutex serializes every mutation on that
// user so that concurrent trades on the same account cannot lose updates.
type userRecord struct {
	mu   sync.Mutex
	user *User
}

// MemoryUserStore is an in-memory UserStore, safe for concurrent use.
type MemoryUserStore struct {
	mu       sync.RWMutex
	users    map[string]*userRecord // index users by username
	sessions map[string]string      // index usernames by credential
}

// NewMemoryUserStore creates an empty store.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		users:    make(map[string]*userRecord),
		sessions: make(map[string]string),
	}
}

func (s *MemoryUserStore) record(username string) (*userRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.users[username]
	return r, ok
}

func (s *MemoryUserStore) sessionRecord(credential string) (*userRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	username, ok := s.sessions[credential]
	if !ok {
		return nil, fmt.Errorf("%w: no session for this credential", ErrUnknownUser)
	}
	r, ok := s.users[username]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownUser, username)
	}
	return r, nil
}

func (s *MemoryUserStore) UserByCredential(credential string) (*User, error) {
	r, err := s.sessionRecord(credential)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.user.Clone(), nil
}

func (s *MemoryUserStore) UserByUsername(username string) (*User, error) {
	r, ok := s.record(username)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUserNotFound, username)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.user.Clone(), nil
}

func (s *MemoryUserStore) Create(u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[u.username]; exists {
		return fmt.Errorf("%w: %q", ErrUserExists, u.username)
	}
	s.users[u.username] = &userRecord{user: u.Clone()}
	return nil
}

func (s *MemoryUserStore) Save(u *User) error {
	s.mu.Lock()
	r, ok := s.users[u.username]
	if !ok {
		s.users[u.username] = &userRecord{user: u.Clone()}
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.user = u.Clone()
	return nil
}

func (s *MemoryUserStore) Update(credential string, fn func(*User) error) error {
	r, err := s.sessionRecord(credential)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	// fn works on a copy: an error leaves the stored user untouched.
	draft := r.user.Clone()
	if err := fn(draft); err != nil {
		return err
	}
	r.user = draft
	return nil
}

func (s *MemoryUserStore) OpenSession(username string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[username]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUserNotFound, username)
	}
	credential := uuid.NewString()
	s.sessions[credential] = username
	return credential, nil
}

func (s *MemoryUserStore) CloseSession(credential string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[credential]; !ok {
		return fmt.Errorf("%w: no session for this credential", ErrUnknownUser)
	}
	delete(s.sessions, credential)
	return nil
}
