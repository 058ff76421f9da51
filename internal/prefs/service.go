// Package prefs holds the single process-wide user preference record.
package prefs

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/text/language"

	"github.com/cjovignot/orderNow/internal/domain"
	"github.com/cjovignot/orderNow/internal/store"
)

var (
	// ErrInvalidTheme reports a theme outside light/dark/system.
	ErrInvalidTheme = errors.New("prefs: invalid theme")
	// ErrInvalidLanguage reports an unparseable language tag.
	ErrInvalidLanguage = errors.New("prefs: invalid language")
)

// Service owns the in-memory preference record, loaded at startup and
// written through on every change.
type Service struct {
	mu    sync.RWMutex
	store *store.Store
	prefs domain.Preferences
}

// NewService loads the persisted preferences, falling back to defaults.
func NewService(ctx context.Context, st *store.Store) *Service {
	return &Service{store: st, prefs: st.Preferences(ctx)}
}

// Reload replaces the working copy from the store, after an import.
func (s *Service) Reload(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs = s.store.Preferences(ctx)
}

// Get returns the current preferences.
func (s *Service) Get() domain.Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs
}

// Patch applies a partial preference update; each field changes
// independently, as the settings form edits one control at a time.
type Patch struct {
	Theme         *domain.Theme `json:"theme,omitempty"`
	Language      *string       `json:"language,omitempty"`
	Notifications *bool         `json:"notifications,omitempty"`
}

// Update validates and applies the patch, then persists the record.
func (s *Service) Update(ctx context.Context, patch Patch) (domain.Preferences, error) {
	if patch.Theme != nil && !domain.ValidTheme(*patch.Theme) {
		return domain.Preferences{}, ErrInvalidTheme
	}
	if patch.Language != nil {
		if _, err := language.Parse(*patch.Language); err != nil {
			return domain.Preferences{}, ErrInvalidLanguage
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if patch.Theme != nil {
		s.prefs.Theme = *patch.Theme
	}
	if patch.Language != nil {
		s.prefs.Language = *patch.Language
	}
	if patch.Notifications != nil {
		s.prefs.Notifications = *patch.Notifications
	}
	s.store.SavePreferences(ctx, s.prefs)
	return s.prefs, nil
}
