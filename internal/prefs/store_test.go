// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package prefs

import (
	"os"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/jmsr/castcore/internal/models"
)

func newTestDB(t *testing.T) (*badger.DB, func()) {
	t.Helper()

	dir, err := os.MkdirTemp("", "prefs-test-*")
	if err != nil {
		t.Fatalf("mkdir temp: %v", err)
	}

	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		os.RemoveAll(dir)
		t.Fatalf("open badger: %v", err)
	}

	return db, func() {
		db.Close()
		os.RemoveAll(dir)
	}
}

func TestStore_GetMissingSeries(t *testing.T) {
	db, cleanup := newTestDB(t)
	defer cleanup()

	s := New(db)
	if _, ok := s.Get("series-unknown"); ok {
		t.Fatal("expected no preference for an unseen series")
	}
}

func TestStore_SetThenGetFromCache(t *testing.T) {
	db, cleanup := newTestDB(t)
	defer cleanup()

	s := New(db)
	want := models.TrackPreference{AudioLanguage: "jpn", SubtitleEnabled: true, SubtitleLanguage: "eng"}
	s.Set("series-1", want)

	got, ok := s.Get("series-1")
	if !ok || got != want {
		t.Fatalf("got %+v, %v; want %+v, true", got, ok, want)
	}
}

func TestStore_DebouncedWritePersists(t *testing.T) {
	db, cleanup := newTestDB(t)
	defer cleanup()

	s := New(db)
	s.Set("series-1", models.TrackPreference{AudioLanguage: "jpn"})
	s.Set("series-1", models.TrackPreference{AudioLanguage: "eng"})
	s.Flush("series-1")

	fresh := New(db)
	got, ok := fresh.Get("series-1")
	if !ok {
		t.Fatal("expected persisted preference after flush")
	}
	if got.AudioLanguage != "eng" {
		t.Fatalf("expected last debounced write to win, got %q", got.AudioLanguage)
	}
}

func TestStore_CloseFlushesPending(t *testing.T) {
	db, cleanup := newTestDB(t)
	defer cleanup()

	s := New(db)
	s.Set("series-1", models.TrackPreference{AudioLanguage: "jpn"})
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	fresh := New(db)
	if _, ok := fresh.Get("series-1"); !ok {
		t.Fatal("expected preference to survive Close before the debounce window elapsed")
	}
}

func TestStore_DebounceWindowIsAtLeastFiveHundredMillis(t *testing.T) {
	if DebounceWindow < 500*time.Millisecond {
		t.Fatalf("debounce window %v is shorter than the 500ms floor", DebounceWindow)
	}
}
