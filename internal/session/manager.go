package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/evcraddock/rentivo/internal/storage"
	"github.com/evcraddock/rentivo/internal/validation"
)

var (
	// ErrNoActiveSession is returned when an operation needs a signed-in user.
	ErrNoActiveSession = errors.New("no active session")
	// ErrInvalidRole is returned for a role other than LANDLORD or RENTER.
	ErrInvalidRole = errors.New("invalid role")
	// ErrCorruptSession is returned when the stored user cannot be decoded.
	ErrCorruptSession = errors.New("corrupt stored session")
)

// State is the session lifecycle state.
type State string

const (
	Anonymous     State = "ANONYMOUS"
	Authenticated State = "AUTHENTICATED"
)

// Patch is a partial profile update. Nil fields are left alone.
type Patch struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,min=1,max=80"`
	Phone        *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Avatar       *string `json:"avatar,omitempty"`
	Bio          *string `json:"bio,omitempty" validate:"omitempty,max=500"`
	BusinessName *string `json:"businessName,omitempty" validate:"omitempty,max=120"`
	MoveInDate   *string `json:"moveInDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Duration     *string `json:"duration,omitempty" validate:"omitempty,max=40"`
}

func (p Patch) apply(u *User) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&u.Name, p.Name)
	set(&u.Phone, p.Phone)
	set(&u.Avatar, p.Avatar)
	set(&u.Bio, p.Bio)
	set(&u.BusinessName, p.BusinessName)
	set(&u.MoveInDate, p.MoveInDate)
	set(&u.Duration, p.Duration)
}

// Manager owns the optional signed-in user. Every transition is written
// through to local storage so a restart restores the session.
type Manager struct {
	store storage.Store
	now   func() time.Time

	mu   sync.RWMutex
	user *User
}

// NewManager creates an anonymous session backed by store. A nil clock
// uses time.Now.
func NewManager(store storage.Store, now func() time.Time) *Manager {
	if now == nil {
		now = time.Now
	}
	return &Manager{store: store, now: now}
}

// State reports whether a user is signed in.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return Anonymous
	}
	return Authenticated
}

// Current returns a copy of the signed-in user, or nil.
func (m *Manager) Current() *User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// Restore loads the stored user. A missing key leaves the session
// anonymous. A malformed value returns an error wrapping ErrCorruptSession
// and also leaves it anonymous.
func (m *Manager) Restore(ctx context.Context) error {
	var u User
	ok, err := storage.GetJSON(ctx, m.store, storage.KeyUser, &u)
	if errors.Is(err, storage.ErrCorrupt) {
		return fmt.Errorf("restoring session: %w: %v", ErrCorruptSession, err)
	}
	if err != nil {
		return fmt.Errorf("restoring session: %w", err)
	}
	if !ok {
		return nil
	}
	if !u.Role.IsValid() || u.ID == "" {
		return fmt.Errorf("restoring session: %w: role %q id %q", ErrCorruptSession, u.Role, u.ID)
	}

	m.mu.Lock()
	m.user = &u
	m.mu.Unlock()

	slog.Debug("session restored", "user", u.ID, "role", u.Role)
	return nil
}

// Discard removes the stored user without touching the in-memory session.
// Used to drop a value Restore could not read.
func (m *Manager) Discard(ctx context.Context) error {
	if err := m.store.Remove(ctx, storage.KeyUser); err != nil {
		return fmt.Errorf("discarding session: %w", err)
	}
	return nil
}

// Login signs in as the demo user for role, replacing any current user.
func (m *Manager) Login(ctx context.Context, role Role) (User, error) {
	if !role.IsValid() {
		return User{}, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}

	u := mockUser(role, m.now().UnixMilli())
	if err := storage.SetJSON(ctx, m.store, storage.KeyUser, u); err != nil {
		return User{}, fmt.Errorf("saving session: %w", err)
	}

	m.mu.Lock()
	m.user = &u
	m.mu.Unlock()

	slog.Info("logged in", "user", u.ID, "role", u.Role)
	return u, nil
}

// Logout clears the user and its stored copy. Logging out of an anonymous
// session is not an error.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.store.Remove(ctx, storage.KeyUser); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}

	m.mu.Lock()
	prev := m.user
	m.user = nil
	m.mu.Unlock()

	if prev != nil {
		slog.Info("logged out", "user", prev.ID)
	}
	return nil
}

// UpdateProfile merges p into the signed-in user and persists the result.
func (m *Manager) UpdateProfile(ctx context.Context, p Patch) (User, error) {
	if err := validation.Struct(p); err != nil {
		return User{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.user == nil {
		return User{}, ErrNoActiveSession
	}

	u := *m.user
	p.apply(&u)
	if err := storage.SetJSON(ctx, m.store, storage.KeyUser, u); err != nil {
		return User{}, fmt.Errorf("saving profile: %w", err)
	}
	m.user = &u
	return u, nil
}
