package storage

import (
	"fmt"
	"sync"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// DefaultAppName is the gdata application directory name.
const DefaultAppName = "fruitcatch"

// gdata object/property holding the profile.
const (
	profileObject   = "profile"
	profileProperty = "player"
)

// Profile holds per-user preferences remembered between runs.
type Profile struct {
	PlayerName  string `yaml:"player_name"`
	Difficulty  string `yaml:"difficulty"`
	GamesPlayed int    `yaml:"games_played"`
}

// ProfileStore loads and saves the Profile through gdata.
// A nil manager keeps the profile in memory only.
type ProfileStore struct {
	mu      sync.Mutex
	manager *gdata.Manager
	profile Profile
}

// OpenProfileStore opens the gdata storage for appName and loads the
// saved profile. If storage is unavailable the returned store still works
// in memory and the error explains why.
func OpenProfileStore(appName string) (*ProfileStore, error) {
	if appName == "" {
		appName = DefaultAppName
	}
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return NewProfileStore(nil), fmt.Errorf("storage: cannot open profile storage: %w", err)
	}
	ps := NewProfileStore(manager)
	if err := ps.Load(); err != nil {
		return ps, err
	}
	return ps, nil
}

// NewProfileStore wraps an existing manager, which may be nil.
func NewProfileStore(manager *gdata.Manager) *ProfileStore {
	return &ProfileStore{manager: manager}
}

// Persistent reports whether changes survive the process.
func (p *ProfileStore) Persistent() bool {
	return p.manager != nil
}

// Load reads the saved profile. A missing profile is not an error.
func (p *ProfileStore) Load() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.manager == nil || !p.manager.ObjectPropExists(profileObject, profileProperty) {
		return nil
	}

	data, err := p.manager.LoadObjectProp(profileObject, profileProperty)
	if err != nil {
		return fmt.Errorf("storage: cannot load profile: %w", err)
	}

	var loaded Profile
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("storage: cannot decode profile: %w", err)
	}
	p.profile = loaded
	return nil
}

// Save writes the profile. It is a no-op without a manager.
func (p *ProfileStore) Save() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.manager == nil {
		return nil
	}

	data, err := yaml.Marshal(p.profile)
	if err != nil {
		return fmt.Errorf("storage: cannot encode profile: %w", err)
	}
	if err := p.manager.SaveObjectProp(profileObject, profileProperty, data); err != nil {
		return fmt.Errorf("storage: cannot save profile: %w", err)
	}
	return nil
}

// Profile returns a copy of the current profile.
func (p *ProfileStore) Profile() Profile {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.profile
}

// SetPlayerName remembers the last name used on the leaderboard.
func (p *ProfileStore) SetPlayerName(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.profile.PlayerName = name
}

// SetDifficulty remembers the preferred difficulty preset.
func (p *ProfileStore) SetDifficulty(preset string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.profile.Difficulty = preset
}

// RecordGame counts a finished game.
func (p *ProfileStore) RecordGame() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.profile.GamesPlayed++
}
