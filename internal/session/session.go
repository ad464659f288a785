// Package session implements the simulated sign-in. There is no identity
// verification: signing in stores a fixed local profile.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"fintrack/internal/storage"
)

// AnonymousUserID owns records created while nobody is signed in.
const AnonymousUserID = "local-uid"

type User struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// LocalUser is the profile every sign-in produces.
var LocalUser = User{
	ID:      "local-uid-1",
	Email:   "you@example.com",
	Name:    "Local User",
	Picture: "https://api.dicebear.com/6.x/pixel-art/svg?seed=FinanceUser",
}

type Manager struct {
	kv storage.KeyValue
}

func NewManager(kv storage.KeyValue) *Manager {
	return &Manager{kv: kv}
}

// SignIn stores and returns LocalUser.
func (m *Manager) SignIn(ctx context.Context) (User, error) {
	data, err := json.Marshal(LocalUser)
	if err != nil {
		return User{}, fmt.Errorf("encode user: %w", err)
	}
	if err := m.kv.Set(ctx, storage.KeyUser, string(data)); err != nil {
		return User{}, fmt.Errorf("store user: %w", err)
	}
	return LocalUser, nil
}

// SignOut forgets the stored user.
func (m *Manager) SignOut(ctx context.Context) error {
	if err := m.kv.Delete(ctx, storage.KeyUser); err != nil {
		return fmt.Errorf("remove user: %w", err)
	}
	return nil
}

// Current returns the signed-in user. Malformed stored state reads as signed
// out.
func (m *Manager) Current(ctx context.Context) (User, bool, error) {
	raw, ok, err := m.kv.Get(ctx, storage.KeyUser)
	if err != nil {
		return User{}, false, fmt.Errorf("load user: %w", err)
	}
	if !ok {
		return User{}, false, nil
	}
	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil || u.ID == "" {
		slog.WarnContext(ctx, "Stored user is malformed, treating as signed out", "error", err)
		return User{}, false, nil
	}
	return u, true, nil
}

// UserID returns the signed-in user's id or AnonymousUserID.
func (m *Manager) UserID(ctx context.Context) string {
	u, ok, err := m.Current(ctx)
	if err != nil || !ok {
		return AnonymousUserID
	}
	return u.ID
}
