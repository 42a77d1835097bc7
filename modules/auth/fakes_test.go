package auth_test

import (
	"context"
	"sync"
	"time"

	"github.com/contexta-app/contexta/modules/auth"
	"github.com/contexta-app/contexta/pkg/email"
)

// memStorage is an in-memory Storage used across the module tests.
type memStorage struct {
	mu    sync.Mutex
	users map[string]*auth.User
}

func newMemStorage() *memStorage {
	return &memStorage{users: make(map[string]*auth.User)}
}

func (s *memStorage) CreateUser(ctx context.Context, user *auth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return auth.ErrEmailTaken
		}
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *memStorage) GetUserByID(ctx context.Context, id string) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (s *memStorage) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, auth.ErrUserNotFound
}

func (s *memStorage) GetUserByResetToken(ctx context.Context, token string) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.ResetToken != "" && u.ResetToken == token {
			clone := *u
			return &clone, nil
		}
	}
	return nil, auth.ErrUserNotFound
}

func (s *memStorage) SetOTP(ctx context.Context, userID, code string, expiresAt time.Time) error {
	return s.mutate(userID, func(u *auth.User) {
		u.OTPCode = code
		u.OTPExpiresAt = expiresAt
	})
}

func (s *memStorage) MarkVerified(ctx context.Context, userID string) error {
	return s.mutate(userID, func(u *auth.User) {
		u.IsVerified = true
		u.OTPCode = ""
		u.OTPExpiresAt = time.Time{}
	})
}

func (s *memStorage) SetRefreshToken(ctx context.Context, userID, token string) error {
	return s.mutate(userID, func(u *auth.User) {
		u.RefreshToken = token
	})
}

func (s *memStorage) SetResetToken(ctx context.Context, userID, token string, expiresAt time.Time) error {
	return s.mutate(userID, func(u *auth.User) {
		u.ResetToken = token
		u.ResetExpiresAt = expiresAt
	})
}

func (s *memStorage) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	return s.mutate(userID, func(u *auth.User) {
		u.PasswordHash = passwordHash
		u.ResetToken = ""
		u.ResetExpiresAt = time.Time{}
		u.RefreshToken = ""
	})
}

func (s *memStorage) mutate(userID string, fn func(*auth.User)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return auth.ErrUserNotFound
	}
	fn(u)
	u.UpdatedAt = time.Now().UTC()
	return nil
}

// fakeMailer records outbound emails instead of sending them.
type fakeMailer struct {
	mu   sync.Mutex
	sent []email.SendEmailParams
	err  error
}

func (m *fakeMailer) SendEmail(ctx context.Context, params email.SendEmailParams) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, params)
	return nil
}

func (m *fakeMailer) lastSent() (email.SendEmailParams, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.sent) == 0 {
		return email.SendEmailParams{}, false
	}
	return m.sent[len(m.sent)-1], true
}

func (m *fakeMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}
