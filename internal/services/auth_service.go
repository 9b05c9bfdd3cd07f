package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"klontong/internal/models"
	"klontong/internal/repositories"
	"klontong/pkg/localstore"
)

// sessionKey is the local storage key holding the serialized session user.
const sessionKey = "user"

// AuthResult is the outcome of a login or register attempt. Error carries
// a localized, user-facing message when Success is false.
type AuthResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// AuthService holds the current session: at most one authenticated user,
// mirrored into local storage. Admin-ness is derived by comparing the
// session email against the configured admin address, never stored; any
// restored session whose email matches the admin address is therefore
// granted admin rights. Registration falls back to a local-only session
// when the backend rejects the create; such sessions exist only on this
// install.
type AuthService struct {
	userRepo      repositories.UserRepository
	store         *localstore.Store
	adminEmail    string
	adminPassword string
	log           *zap.SugaredLogger

	mu          sync.RWMutex
	user        *models.User
	lastLocalID int64
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, store *localstore.Store, adminEmail, adminPassword string, log *zap.SugaredLogger) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		store:         store,
		adminEmail:    adminEmail,
		adminPassword: adminPassword,
		log:           log,
	}
}

// InitializeAuth restores a persisted session from local storage. A value
// that fails to parse is deleted and the session stays empty; nothing is
// surfaced to the caller.
func (s *AuthService) InitializeAuth() {
	raw, ok, err := s.store.GetItem(sessionKey)
	if err != nil {
		s.log.Warnw("failed to read stored session", "error", err)
		return
	}
	if !ok {
		return
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.log.Warnw("failed to parse stored session, clearing it", "error", err)
		if err := s.store.RemoveItem(sessionKey); err != nil {
			s.log.Warnw("failed to clear corrupt session", "error", err)
		}
		return
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
}

// Login authenticates against the configured admin credential pair first,
// then against the backend user list with an exact email+password match.
// The established session never carries the password. On no match or
// backend failure the session is left unchanged.
func (s *AuthService) Login(ctx context.Context, email, password string) AuthResult {
	if email == s.adminEmail && password == s.adminPassword {
		admin := models.User{
			ID:    models.NumericID(1),
			Name:  "Admin",
			Email: email,
		}
		return s.establishSession(&admin)
	}

	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		s.log.Warnw("users repo not available", "error", err)
		return AuthResult{Success: false, Error: "Kredensial tidak valid."}
	}

	for _, u := range users {
		if u.Email == email && u.Password == password {
			logged := models.User{
				ID:    u.ID,
				Name:  u.Name,
				Email: u.Email,
			}
			return s.establishSession(&logged)
		}
	}

	return AuthResult{Success: false, Error: "Kredensial tidak valid."}
}

// Register creates a user through the backend and establishes a session
// from the created record. The admin email cannot be registered. When the
// backend create fails, a local-only session keyed by a fresh timestamp id
// is established instead; it is never persisted server-side.
func (s *AuthService) Register(ctx context.Context, name, email, password string) AuthResult {
	if email == s.adminEmail {
		return AuthResult{Success: false, Error: "Tidak dapat mendaftarkan akun admin."}
	}

	created, err := s.userRepo.Create(ctx, &models.User{
		Name:     name,
		Email:    email,
		Password: password,
	})
	if err == nil {
		registered := models.User{
			ID:    created.ID,
			Name:  created.Name,
			Email: created.Email,
		}
		return s.establishSession(&registered)
	}

	s.log.Warnw("users repo not available, falling back to local-only register", "error", err)

	s.mu.Lock()
	id := s.freshLocalIDLocked()
	s.mu.Unlock()

	local := models.User{
		ID:    models.NumericID(id),
		Name:  name,
		Email: email,
	}
	return s.establishSession(&local)
}

// Logout clears the session and removes the stored entry.
func (s *AuthService) Logout() {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()

	if err := s.store.RemoveItem(sessionKey); err != nil {
		s.log.Warnw("failed to remove stored session", "error", err)
	}
}

// UpdateUser merges patch into the current session user and re-persists
// it. No-op when unauthenticated.
func (s *AuthService) UpdateUser(patch *models.UserPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return
	}
	if patch.Name != nil {
		s.user.Name = *patch.Name
	}
	if patch.Email != nil {
		s.user.Email = *patch.Email
	}

	if err := s.persistLocked(); err != nil {
		s.log.Warnw("failed to persist session", "error", err)
	}
}

// CurrentUser returns a copy of the session user, or nil when
// unauthenticated.
func (s *AuthService) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

// IsAuthenticated reports whether a user is present.
func (s *AuthService) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// IsAdmin reports whether the session email equals the configured admin
// email. Purely derived; see the AuthService doc for the implications.
func (s *AuthService) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.user.Email == s.adminEmail
}

func (s *AuthService) establishSession(user *models.User) AuthResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = user
	if err := s.persistLocked(); err != nil {
		s.log.Errorw("failed to persist session", "error", err)
		return AuthResult{Success: false, Error: "Login Gagal."}
	}
	return AuthResult{Success: true}
}

func (s *AuthService) persistLocked() error {
	data, err := json.Marshal(s.user)
	if err != nil {
		return err
	}
	return s.store.SetItem(sessionKey, string(data))
}

// freshLocalIDLocked returns a millisecond timestamp id, bumped when two
// registrations land in the same millisecond so local-only sessions never
// share an identifier.
func (s *AuthService) freshLocalIDLocked() int64 {
	id := time.Now().UnixMilli()
	if id <= s.lastLocalID {
		id = s.lastLocalID + 1
	}
	s.lastLocalID = id
	return id
}
