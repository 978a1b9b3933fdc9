// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package orchestrator

import (
	"context"
	"testing"

	"github.com/jmsr/castcore/internal/models"
)

func loadItem(t *testing.T, o *Orchestrator, server *fakeServer, itemID, seriesID string) {
	t.Helper()
	server.items[itemID] = &models.MediaItem{ID: itemID, SeriesID: seriesID}
	if err := o.handlePlay(context.Background(), &models.PlayDirective{ItemIDs: []string{itemID}}); err != nil {
		t.Fatalf("loadItem handlePlay: %v", err)
	}
}

// Testable property #6: PlayPause must live-query the player rather than
// trust the mirrored SessionState, since the player may have toggled pause
// through its own keybinding since the last event was observed.
func TestPlayPause_UsesLiveStateNotMirroredState(t *testing.T) {
	o, player, server, _, _, _ := newTestOrchestrator()
	loadItem(t, o, server, "item-1", "")

	// SessionState still believes playback is unpaused (the default), but
	// the player has actually been paused out of band.
	player.setLive("pause", true)

	err := o.HandleDirective(context.Background(), models.Directive{
		Kind:      models.DirectivePlaystate,
		Playstate: &models.PlaystateDirective{Command: models.PlaystateCommandPlayPause},
	})
	if err != nil {
		t.Fatalf("HandleDirective: %v", err)
	}

	v, ok := player.lastSet("pause")
	if !ok {
		t.Fatal("expected a pause set call")
	}
	if v != false {
		t.Fatalf("expected PlayPause to invert the live paused=true state to false, got %v", v)
	}
}

func TestPlayPause_InvertsLiveUnpausedState(t *testing.T) {
	o, player, server, _, _, _ := newTestOrchestrator()
	loadItem(t, o, server, "item-1", "")

	player.setLive("pause", false)

	err := o.HandleDirective(context.Background(), models.Directive{
		Kind:      models.DirectivePlaystate,
		Playstate: &models.PlaystateDirective{Command: models.PlaystateCommandPlayPause},
	})
	if err != nil {
		t.Fatalf("HandleDirective: %v", err)
	}

	v, ok := player.lastSet("pause")
	if !ok || v != true {
		t.Fatalf("expected PlayPause to invert live paused=false to true, got %v, %v", v, ok)
	}
}

// Scenario C: advancing to the next episode (here via a NextTrack directive)
// triggers exactly one stop report, one GetNextEpisode call, and one
// subsequent play on the adjacent episode.
func TestAdvanceTrack_NextFetchesAndReplays(t *testing.T) {
	o, player, server, _, _, _ := newTestOrchestrator()
	loadItem(t, o, server, "ep-1", "series-S")

	server.items["ep-2"] = &models.MediaItem{ID: "ep-2", SeriesID: "series-S"}
	server.nextEpisode["ep-1"] = server.items["ep-2"]

	err := o.HandleDirective(context.Background(), models.Directive{
		Kind:      models.DirectivePlaystate,
		Playstate: &models.PlaystateDirective{Command: models.PlaystateCommandNextTrack},
	})
	if err != nil {
		t.Fatalf("HandleDirective: %v", err)
	}

	if len(server.stoppedCalls) != 1 {
		t.Fatalf("expected exactly one stop report, got %d", len(server.stoppedCalls))
	}
	if server.stoppedCalls[0].ItemID != "ep-1" {
		t.Fatalf("expected stop report for ep-1, got %s", server.stoppedCalls[0].ItemID)
	}
	if len(server.nextEpisodeCalls) != 1 {
		t.Fatalf("expected exactly one GetNextEpisode call, got %d", len(server.nextEpisodeCalls))
	}
	if got := o.state.Item(); got == nil || got.ID != "ep-2" {
		t.Fatalf("expected current item to be ep-2 after advance, got %+v", got)
	}
	if player.loadedURL == "" {
		t.Fatal("expected the adjacent episode to have been loaded into the player")
	}
}

func TestAdvanceTrack_PreviousFetchesAndReplays(t *testing.T) {
	o, _, server, _, _, _ := newTestOrchestrator()
	loadItem(t, o, server, "ep-2", "series-S")

	server.items["ep-1"] = &models.MediaItem{ID: "ep-1", SeriesID: "series-S"}
	server.prevEpisode["ep-2"] = server.items["ep-1"]

	err := o.HandleDirective(context.Background(), models.Directive{
		Kind:      models.DirectivePlaystate,
		Playstate: &models.PlaystateDirective{Command: models.PlaystateCommandPreviousTrack},
	})
	if err != nil {
		t.Fatalf("HandleDirective: %v", err)
	}
	if len(server.prevEpisodeCalls) != 1 {
		t.Fatalf("expected exactly one GetPreviousEpisode call, got %d", len(server.prevEpisodeCalls))
	}
	if got := o.state.Item(); got == nil || got.ID != "ep-1" {
		t.Fatalf("expected current item to be ep-1 after advance, got %+v", got)
	}
}

func TestAdvanceTrack_NoSeriesIsError(t *testing.T) {
	o, _, server, _, _, _ := newTestOrchestrator()
	loadItem(t, o, server, "standalone", "")

	err := o.HandleDirective(context.Background(), models.Directive{
		Kind:      models.DirectivePlaystate,
		Playstate: &models.PlaystateDirective{Command: models.PlaystateCommandNextTrack},
	})
	if err == nil {
		t.Fatal("expected an error advancing within a standalone item with no series")
	}
}

func TestStopPlayback_ClearsSessionAndReportsStop(t *testing.T) {
	o, player, server, _, _, _ := newTestOrchestrator()
	loadItem(t, o, server, "item-1", "")

	err := o.HandleDirective(context.Background(), models.Directive{
		Kind:      models.DirectivePlaystate,
		Playstate: &models.PlaystateDirective{Command: models.PlaystateCommandStop},
	})
	if err != nil {
		t.Fatalf("HandleDirective: %v", err)
	}
	if player.stopCalls != 1 {
		t.Fatalf("expected exactly one player Stop call, got %d", player.stopCalls)
	}
	if len(server.stoppedCalls) != 1 {
		t.Fatalf("expected exactly one stop report, got %d", len(server.stoppedCalls))
	}
	if o.state.Phase() != PhaseIdle {
		t.Fatalf("expected PhaseIdle after stop, got %s", o.state.Phase())
	}
	if o.state.Item() != nil {
		t.Fatal("expected no current item after stop")
	}
}
