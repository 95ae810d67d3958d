package storage

import (
	"fmt"
	"testing"
	"time"

	"github.com/quasilyte/gdata/v2"
)

func newTestManager(t *testing.T) *gdata.Manager {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", home)

	manager, err := gdata.Open(gdata.Config{
		AppName: fmt.Sprintf("fruitcatch_test_%d", time.Now().UnixNano()),
	})
	if err != nil {
		t.Skipf("gdata unavailable: %v", err)
	}
	return manager
}

func TestProfileStoreMemoryOnly(t *testing.T) {
	ps := NewProfileStore(nil)
	if ps.Persistent() {
		t.Error("nil manager should not be persistent")
	}

	ps.SetPlayerName("ann")
	ps.SetDifficulty("hard")
	ps.RecordGame()

	if err := ps.Save(); err != nil {
		t.Errorf("Save() without manager = %v, expected nil", err)
	}
	if err := ps.Load(); err != nil {
		t.Errorf("Load() without manager = %v, expected nil", err)
	}

	got := ps.Profile()
	expected := Profile{PlayerName: "ann", Difficulty: "hard", GamesPlayed: 1}
	if got != expected {
		t.Errorf("Profile() = %+v, expected %+v", got, expected)
	}
}

func TestProfileStoreRoundTrip(t *testing.T) {
	manager := newTestManager(t)

	ps := NewProfileStore(manager)
	if err := ps.Load(); err != nil {
		t.Fatalf("Load() on empty storage = %v", err)
	}
	if ps.Profile() != (Profile{}) {
		t.Errorf("expected empty profile, got %+v", ps.Profile())
	}

	ps.SetPlayerName("bob")
	ps.SetDifficulty("easy")
	ps.RecordGame()
	ps.RecordGame()
	if err := ps.Save(); err != nil {
		t.Fatalf("Save() = %v", err)
	}

	reloaded := NewProfileStore(manager)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load() = %v", err)
	}
	expected := Profile{PlayerName: "bob", Difficulty: "easy", GamesPlayed: 2}
	if got := reloaded.Profile(); got != expected {
		t.Errorf("reloaded profile = %+v, expected %+v", got, expected)
	}
}

func TestProfileStoreCorruptData(t *testing.T) {
	manager := newTestManager(t)
	if err := manager.SaveObjectProp(profileObject, profileProperty, []byte("player_name: [oops")); err != nil {
		t.Fatalf("SaveObjectProp() = %v", err)
	}

	ps := NewProfileStore(manager)
	if err := ps.Load(); err == nil {
		t.Error("expected decode error for corrupt profile")
	}
	if ps.Profile() != (Profile{}) {
		t.Error("corrupt data should leave the profile untouched")
	}
}
