// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package orchestrator

import (
	"context"
	"errors"
	"sync"

	"github.com/goccy/go-json"

	"github.com/jmsr/castcore/internal/models"
	"github.com/jmsr/castcore/internal/playerproto"
)

var errFakeItemNotFound = errors.New("orchestrator test: item not found")

// fakePlayer is a minimal in-memory double for PlayerClient.
type fakePlayer struct {
	mu sync.Mutex

	loadedURL string
	loadErr   error

	sets    []fakeSet
	setErrs map[string]error

	live map[string]interface{}

	seeks []fakeSeek

	stopCalls int
	stopErr   error

	observed   map[string]chan playerproto.Event
	unobserved []string
	eventsChan chan playerproto.Event

	doneChan chan struct{}
}

type fakeSet struct {
	name  string
	value interface{}
}

type fakeSeek struct {
	seconds float64
	mode    playerproto.SeekMode
}

func newFakePlayer() *fakePlayer {
	return &fakePlayer{
		setErrs:    make(map[string]error),
		live:       make(map[string]interface{}),
		observed:   make(map[string]chan playerproto.Event),
		eventsChan: make(chan playerproto.Event, 16),
		doneChan:   make(chan struct{}),
	}
}

func (p *fakePlayer) Load(ctx context.Context, url string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loadedURL = url
	return p.loadErr
}

func (p *fakePlayer) Set(ctx context.Context, name string, value interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sets = append(p.sets, fakeSet{name: name, value: value})
	if err, ok := p.setErrs[name]; ok {
		return err
	}
	return nil
}

func (p *fakePlayer) Get(ctx context.Context, name string) (json.RawMessage, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	v, ok := p.live[name]
	if !ok {
		return json.Marshal(false)
	}
	return json.Marshal(v)
}

func (p *fakePlayer) Seek(ctx context.Context, seconds float64, mode playerproto.SeekMode) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seeks = append(p.seeks, fakeSeek{seconds: seconds, mode: mode})
	return nil
}

func (p *fakePlayer) Stop(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopCalls++
	return p.stopErr
}

func (p *fakePlayer) Observe(name string) (playerproto.SubscriptionHandle, <-chan playerproto.Event, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	ch := make(chan playerproto.Event, 16)
	p.observed[name] = ch
	return playerproto.SubscriptionHandle{}, ch, nil
}

func (p *fakePlayer) Unobserve(handle playerproto.SubscriptionHandle) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.unobserved = append(p.unobserved, "unobserved")
	return nil
}

func (p *fakePlayer) Events() <-chan playerproto.Event {
	return p.eventsChan
}

func (p *fakePlayer) Done() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.doneChan
}

// disconnect simulates a player crash: it closes the current Done channel
// and installs a fresh one, as a reconnecting client would after a
// successful respawn.
func (p *fakePlayer) disconnect() {
	p.mu.Lock()
	old := p.doneChan
	p.doneChan = make(chan struct{})
	p.mu.Unlock()
	close(old)
}

// emitPropertyChange delivers ev on the subscription channel registered for
// name, as the real client's dispatch loop would.
func (p *fakePlayer) emitPropertyChange(name string, ev playerproto.Event) {
	p.mu.Lock()
	ch, ok := p.observed[name]
	p.mu.Unlock()
	if !ok {
		return
	}
	ch <- ev
}

// emitEvent delivers ev on the generic event stream.
func (p *fakePlayer) emitEvent(ev playerproto.Event) {
	p.eventsChan <- ev
}

func (p *fakePlayer) setLive(name string, value interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.live[name] = value
}

func (p *fakePlayer) callCount(name string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, s := range p.sets {
		if s.name == name {
			n++
		}
	}
	return n
}

func (p *fakePlayer) lastSet(name string) (interface{}, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := len(p.sets) - 1; i >= 0; i-- {
		if p.sets[i].name == name {
			return p.sets[i].value, true
		}
	}
	return nil, false
}

// fakeServer is a minimal in-memory double for ServerClient.
type fakeServer struct {
	mu sync.Mutex

	items map[string]*models.MediaItem

	nextEpisode map[string]*models.MediaItem
	prevEpisode map[string]*models.MediaItem

	progressCalls []models.PlaybackSession
	stoppedCalls  []models.PlaybackSession

	nextEpisodeCalls [][2]string
	prevEpisodeCalls [][2]string
}

func newFakeServer() *fakeServer {
	return &fakeServer{
		items:       make(map[string]*models.MediaItem),
		nextEpisode: make(map[string]*models.MediaItem),
		prevEpisode: make(map[string]*models.MediaItem),
	}
}

func (s *fakeServer) GetItem(ctx context.Context, itemID string) (*models.MediaItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[itemID]
	if !ok {
		return nil, errFakeItemNotFound
	}
	cp := *item
	return &cp, nil
}

func (s *fakeServer) PostProgress(ctx context.Context, session models.PlaybackSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progressCalls = append(s.progressCalls, session)
	return nil
}

func (s *fakeServer) PostStopped(ctx context.Context, session models.PlaybackSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stoppedCalls = append(s.stoppedCalls, session)
	return nil
}

func (s *fakeServer) PostCapabilities(ctx context.Context) error {
	return nil
}

func (s *fakeServer) GetNextEpisode(ctx context.Context, seriesID, currentItemID string) (*models.MediaItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextEpisodeCalls = append(s.nextEpisodeCalls, [2]string{seriesID, currentItemID})
	item, ok := s.nextEpisode[currentItemID]
	if !ok {
		return nil, errFakeItemNotFound
	}
	return item, nil
}

func (s *fakeServer) GetPreviousEpisode(ctx context.Context, seriesID, currentItemID string) (*models.MediaItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prevEpisodeCalls = append(s.prevEpisodeCalls, [2]string{seriesID, currentItemID})
	item, ok := s.prevEpisode[currentItemID]
	if !ok {
		return nil, errFakeItemNotFound
	}
	return item, nil
}

// fakePrefs is an in-memory double for PreferenceStore.
type fakePrefs struct {
	mu   sync.Mutex
	data map[string]models.TrackPreference
}

func newFakePrefs() *fakePrefs {
	return &fakePrefs{data: make(map[string]models.TrackPreference)}
}

func (f *fakePrefs) Get(seriesID string) (models.TrackPreference, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.data[seriesID]
	return p, ok
}

func (f *fakePrefs) Set(seriesID string, pref models.TrackPreference) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[seriesID] = pref
}

// fakeSupervisor is a no-op double for PlayerSupervisor.
type fakeSupervisor struct {
	ensureCalls int
	ensureErr   error
}

func (s *fakeSupervisor) EnsureStarted(ctx context.Context) error {
	s.ensureCalls++
	return s.ensureErr
}

func (s *fakeSupervisor) Stop(ctx context.Context) error { return nil }

// fakeNotifier collects notices for assertions.
type fakeNotifier struct {
	mu      sync.Mutex
	notices []fakeNotice
}

type fakeNotice struct {
	level, msg string
}

func (n *fakeNotifier) Notify(level, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, fakeNotice{level: level, msg: msg})
}

func (n *fakeNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.notices)
}
