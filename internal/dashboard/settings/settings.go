package settings

import (
	"fmt"
	"slices"
	"sync"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Settings are the user-adjustable knobs of the dashboard. They take effect on the next read
// (alerts) or the next scheduler tick (auto refresh).
type Settings struct {
	AutoRefresh    bool    `json:"auto_refresh" default:"true"`
	AlertThreshold float64 `json:"alert_threshold" default:"3" validate:"gte=1,lte=10"`
}

// Update is a partial change; nil fields are left as they are.
type Update struct {
	AutoRefresh    *bool    `json:"auto_refresh"`
	AlertThreshold *float64 `json:"alert_threshold" validate:"omitempty,gte=1,lte=10"`
}

// Default returns the settings a fresh dashboard starts with.
func Default() Settings {
	var s Settings
	_ = defaults.Set(&s)
	return s
}

// Validate checks the threshold bounds.
func (s Settings) Validate() error {
	return validate.Struct(s)
}

// Store guards the current settings. Readers always get a copy.
type Store struct {
	mu       sync.RWMutex
	current  Settings
	onChange []func(Settings)
}

func NewStore(initial Settings) (*Store, error) {
	if err := initial.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return &Store{current: initial}, nil
}

func (s *Store) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// OnChange registers fn to be called with the new settings after every successful Apply.
func (s *Store) OnChange(fn func(Settings)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

// Apply validates u and merges it into the current settings. On error nothing changes.
func (s *Store) Apply(u Update) (Settings, error) {
	if err := validate.Struct(u); err != nil {
		return s.Get(), err
	}

	s.mu.Lock()
	next := s.current
	if u.AutoRefresh != nil {
		next.AutoRefresh = *u.AutoRefresh
	}
	if u.AlertThreshold != nil {
		next.AlertThreshold = *u.AlertThreshold
	}
	s.current = next
	hooks := slices.Clone(s.onChange)
	s.mu.Unlock()

	for _, fn := range hooks {
		fn(next)
	}
	return next, nil
}
