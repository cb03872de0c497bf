package store

import (
	"sync"
	"time"

	"demoapi/internal/auth"
	apperrors "demoapi/internal/errors"
	"demoapi/internal/model"
)

// minPasswordLength is the registration password policy.
const minPasswordLength = 6

// UserStore is the in-memory account registry. A single RWMutex guards
// the records and the id counter; every mutation holds the write lock
// for the whole operation so uniqueness checks and id assignment are
// atomic. Ids are monotonic and never reused, even after deletion.
type UserStore struct {
	mu     sync.RWMutex
	users  []model.User
	nextID int
}

// NewUserStore creates an empty store.
func NewUserStore() *UserStore {
	return &UserStore{nextID: 1}
}

// Register creates an account. The password and role policies are
// checked before any mutation; username uniqueness is checked before
// email uniqueness so the reported failure is deterministic when both
// collide.
func (s *UserStore) Register(input model.UserCreate) (*model.User, error) {
	if len(input.Password) < minPasswordLength {
		return nil, apperrors.ErrWeakPassword
	}
	role := input.Role
	if role == "" {
		role = model.RoleUser
	} else if !role.Valid() {
		return nil, apperrors.ErrInvalidRole
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].Username == input.Username {
			return nil, apperrors.ErrUsernameTaken
		}
	}
	for i := range s.users {
		if s.users[i].Email == input.Email {
			return nil, apperrors.ErrEmailTaken
		}
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	user := model.User{
		ID:           s.nextID,
		Username:     input.Username,
		Email:        input.Email,
		FullName:     input.FullName,
		Role:         role,
		IsActive:     active,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	s.users = append(s.users, user)
	s.nextID++

	return user.Sanitized(), nil
}

// Authenticate verifies username and password and returns the
// hash-bearing record. It is the only operation allowed to do so, and
// only the login token-issuance path may consume the result.
func (s *UserStore) Authenticate(username, password string) (*model.User, error) {
	s.mu.RLock()
	user, ok := s.findByUsername(username)
	s.mu.RUnlock()
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, apperrors.ErrBadPassword
	}
	return user, nil
}

// GetByID returns the sanitized account view.
func (s *UserStore) GetByID(id int) (*model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.users {
		if s.users[i].ID == id {
			return s.users[i].Sanitized(), true
		}
	}
	return nil, false
}

// GetByUsername returns the hash-bearing record. For authentication
// and subject resolution only, never for response payloads.
func (s *UserStore) GetByUsername(username string) (*model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findByUsername(username)
}

// GetByEmail returns the hash-bearing record. Internal use only.
func (s *UserStore) GetByEmail(email string) (*model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.users {
		if s.users[i].Email == email {
			u := s.users[i]
			return &u, true
		}
	}
	return nil, false
}

// List returns sanitized accounts in creation order. Skip and limit
// clamp to the available range; out-of-range values yield an empty
// slice rather than an error.
func (s *UserStore) List(skip, limit int) []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if skip < 0 {
		skip = 0
	}
	if limit < 0 {
		limit = 0
	}
	if skip >= len(s.users) {
		return []model.User{}
	}
	end := skip + limit
	if end > len(s.users) {
		end = len(s.users)
	}
	out := make([]model.User, 0, end-skip)
	for i := skip; i < end; i++ {
		out = append(out, *s.users[i].Sanitized())
	}
	return out
}

// Update applies the set fields of input, stamps UpdatedAt and returns
// the sanitized view. Unset fields are left untouched.
func (s *UserStore) Update(id int, input model.UserUpdate) (*model.User, error) {
	if input.Role != nil && !input.Role.Valid() {
		return nil, apperrors.ErrInvalidRole
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID != id {
			continue
		}
		u := &s.users[i]
		if input.Email != nil {
			u.Email = *input.Email
		}
		if input.FullName != nil {
			u.FullName = *input.FullName
		}
		if input.Role != nil {
			u.Role = *input.Role
		}
		if input.IsActive != nil {
			u.IsActive = *input.IsActive
		}
		now := time.Now().UTC()
		u.UpdatedAt = &now
		return u.Sanitized(), nil
	}
	return nil, apperrors.ErrUserNotFound
}

// Delete removes the account and reports whether it existed. Deleted
// ids are not reclaimed.
func (s *UserStore) Delete(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return true
		}
	}
	return false
}

// findByUsername returns a copy of the matching record. Callers hold
// at least the read lock.
func (s *UserStore) findByUsername(username string) (*model.User, bool) {
	for i := range s.users {
		if s.users[i].Username == username {
			u := s.users[i]
			return &u, true
		}
	}
	return nil, false
}
