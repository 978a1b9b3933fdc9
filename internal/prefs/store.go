// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package prefs

import (
	"errors"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/jmsr/castcore/internal/logging"
	"github.com/jmsr/castcore/internal/models"
)

const seriesKeyPrefix = "series_pref:"

// DebounceWindow is the minimum interval between persisted writes for the
// same series. Callers that change a series' preference repeatedly in
// quick succession (e.g. cycling subtitle tracks) only pay for the last
// write in the window.
const DebounceWindow = 500 * time.Millisecond

// Store is a per-series track-preference cache backed by BadgerDB, with
// writes debounced so rapid Set calls for the same series coalesce into a
// single persisted write.
type Store struct {
	db *badger.DB

	mu      sync.Mutex
	cache   map[string]models.TrackPreference
	timers  map[string]*time.Timer
	pending map[string]models.TrackPreference
}

// New wraps an already-open BadgerDB handle. The caller owns db's lifecycle.
func New(db *badger.DB) *Store {
	return &Store{
		db:      db,
		cache:   make(map[string]models.TrackPreference),
		timers:  make(map[string]*time.Timer),
		pending: make(map[string]models.TrackPreference),
	}
}

// Get returns the cached preference for a series, reading through to
// Badger on first access. ok is false if no preference has ever been
// recorded for seriesID.
func (s *Store) Get(seriesID string) (models.TrackPreference, bool) {
	s.mu.Lock()
	if pref, ok := s.cache[seriesID]; ok {
		s.mu.Unlock()
		return pref, true
	}
	s.mu.Unlock()

	pref, err := s.load(seriesID)
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			logging.Warn().Err(err).Str("series_id", seriesID).Msg("prefs: load failed")
		}
		return models.TrackPreference{}, false
	}

	s.mu.Lock()
	s.cache[seriesID] = pref
	s.mu.Unlock()
	return pref, true
}

func (s *Store) load(seriesID string) (models.TrackPreference, error) {
	var pref models.TrackPreference
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(seriesKeyPrefix + seriesID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &pref)
		})
	})
	return pref, err
}

// Set updates the in-memory preference immediately and schedules a
// debounced persisted write. It never blocks on storage I/O.
func (s *Store) Set(seriesID string, pref models.TrackPreference) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache[seriesID] = pref
	s.pending[seriesID] = pref

	if t, scheduled := s.timers[seriesID]; scheduled {
		t.Stop()
	}
	s.timers[seriesID] = time.AfterFunc(DebounceWindow, func() { s.flush(seriesID) })
}

func (s *Store) flush(seriesID string) {
	s.mu.Lock()
	pref, ok := s.pending[seriesID]
	delete(s.pending, seriesID)
	delete(s.timers, seriesID)
	s.mu.Unlock()
	if !ok {
		return
	}

	data, err := json.Marshal(pref)
	if err != nil {
		logging.Warn().Err(err).Str("series_id", seriesID).Msg("prefs: marshal failed")
		return
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(seriesKeyPrefix+seriesID), data)
	})
	if err != nil {
		logging.Warn().Err(err).Str("series_id", seriesID).Msg("prefs: persist failed")
	}
}

// Flush forces any pending debounced write for seriesID to commit
// immediately. Intended for graceful shutdown.
func (s *Store) Flush(seriesID string) {
	s.mu.Lock()
	if t, scheduled := s.timers[seriesID]; scheduled {
		t.Stop()
		delete(s.timers, seriesID)
	}
	s.mu.Unlock()
	s.flush(seriesID)
}

// Close flushes every pending write. It does not close the underlying
// BadgerDB handle, which the caller owns.
func (s *Store) Close() error {
	s.mu.Lock()
	ids := make([]string, 0, len(s.timers))
	for id, t := range s.timers {
		t.Stop()
		ids = append(ids, id)
	}
	s.mu.Unlock()

	for _, id := range ids {
		s.flush(id)
	}
	return nil
}
