package store_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"fourtrack/internal/session"
	"fourtrack/internal/store"
	"fourtrack/internal/testsupport"
)

func TestCreateAndLoadSession(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	id, sess, err := st.CreateSession(ctx, "First Take", 96, 3, 4)
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if id == 0 {
		t.Fatal("expected a session id")
	}
	if sess.Name != "First Take" || sess.BPM != 96 {
		t.Fatalf("unexpected session: %s %.0f", sess.Name, sess.BPM)
	}

	loaded, err := st.LoadSession(ctx, id)
	if err != nil {
		t.Fatalf("LoadSession failed: %v", err)
	}
	if loaded.Name != "First Take" || loaded.BPM != 96 ||
		loaded.BeatsPerBar != 3 || loaded.BeatUnit != 4 {
		t.Fatalf("loaded session metadata mismatch: %#v", loaded)
	}
	if loaded.Display != session.DisplaySeconds {
		t.Fatalf("display mode = %s, want seconds", loaded.Display)
	}
	if loaded.RegionCount() != 0 {
		t.Fatalf("fresh session has %d regions", loaded.RegionCount())
	}
	for i, track := range loaded.Tracks {
		if track.Effects.Volume != 1 {
			t.Fatalf("track %d volume = %v, want default 1", i, track.Effects.Volume)
		}
	}
}

func TestSaveSessionRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	id, sess := testsupport.NewSession(t, st, "Round Trip")

	region, err := session.NewRegion(filepath.Join(st.AudioDir(), "clip.wav"), 2.5, 4, 0.5, 6)
	if err != nil {
		t.Fatalf("NewRegion failed: %v", err)
	}
	region.Reversed = true
	if err := sess.AppendRegion(1, region); err != nil {
		t.Fatalf("AppendRegion failed: %v", err)
	}
	sess.Tracks[1].Effects.Pan = -0.5
	sess.Tracks[1].Effects.Reverb = 0.3
	sess.Display = session.DisplayBeats

	if err := st.SaveSession(ctx, id, sess); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}

	loaded, err := st.LoadSession(ctx, id)
	if err != nil {
		t.Fatalf("LoadSession failed: %v", err)
	}
	if loaded.Display != session.DisplayBeats {
		t.Fatalf("display mode = %s, want beats", loaded.Display)
	}
	if fx := loaded.Tracks[1].Effects; fx.Pan != -0.5 || fx.Reverb != 0.3 {
		t.Fatalf("effects mismatch: %#v", fx)
	}

	got, err := loaded.Region(1, 0)
	if err != nil {
		t.Fatalf("Region lookup failed: %v", err)
	}
	if got.ID != region.ID || got.StartTime != 2.5 || got.Duration != 4 ||
		got.FileStartOffset != 0.5 || got.FileDuration != 6 || !got.Reversed {
		t.Fatalf("region mismatch: %#v", got)
	}
}

func TestSaveSessionReplacesRegions(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	id, sess := testsupport.NewSession(t, st, "Replace")
	region, err := session.NewRegion("a.wav", 0, 1, 0, 1)
	if err != nil {
		t.Fatalf("NewRegion failed: %v", err)
	}
	if err := sess.AppendRegion(0, region); err != nil {
		t.Fatalf("AppendRegion failed: %v", err)
	}
	if err := st.SaveSession(ctx, id, sess); err != nil {
		t.Fatalf("first save failed: %v", err)
	}

	// Remove the region and save again: the old row must not resurrect.
	if _, err := sess.RemoveRegion(0, 0); err != nil {
		t.Fatalf("RemoveRegion failed: %v", err)
	}
	if err := st.SaveSession(ctx, id, sess); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	loaded, err := st.LoadSession(ctx, id)
	if err != nil {
		t.Fatalf("LoadSession failed: %v", err)
	}
	if loaded.RegionCount() != 0 {
		t.Fatalf("deleted region persisted; count = %d", loaded.RegionCount())
	}
}

func TestRegionOrderSurvivesRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	id, sess := testsupport.NewSession(t, st, "Ordered")
	// Insertion order is not timeline order; it must survive as-is.
	for _, start := range []float64{5, 1, 3} {
		region, err := session.NewRegion("a.wav", start, 1, 0, 1)
		if err != nil {
			t.Fatalf("NewRegion failed: %v", err)
		}
		if err := sess.AppendRegion(2, region); err != nil {
			t.Fatalf("AppendRegion failed: %v", err)
		}
	}
	if err := st.SaveSession(ctx, id, sess); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}

	loaded, err := st.LoadSession(ctx, id)
	if err != nil {
		t.Fatalf("LoadSession failed: %v", err)
	}
	want := []float64{5, 1, 3}
	track := loaded.Tracks[2]
	if len(track.Regions) != len(want) {
		t.Fatalf("track holds %d regions, want %d", len(track.Regions), len(want))
	}
	for i, region := range track.Regions {
		if region.StartTime != want[i] {
			t.Fatalf("region %d start = %v, want %v", i, region.StartTime, want[i])
		}
	}
}

func TestListSessions(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if infos, err := st.ListSessions(ctx); err != nil || len(infos) != 0 {
		t.Fatalf("empty list = (%v, %v), want no sessions", infos, err)
	}

	firstID, _ := testsupport.NewSession(t, st, "One")
	secondID, sess := testsupport.NewSession(t, st, "Two")

	region, err := session.NewRegion("a.wav", 0, 1, 0, 1)
	if err != nil {
		t.Fatalf("NewRegion failed: %v", err)
	}
	if err := sess.AppendRegion(0, region); err != nil {
		t.Fatalf("AppendRegion failed: %v", err)
	}
	if err := st.SaveSession(ctx, secondID, sess); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}

	infos, err := st.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("list holds %d sessions, want 2", len(infos))
	}
	// Newest update first.
	if infos[0].ID != secondID || infos[1].ID != firstID {
		t.Fatalf("list order = [%d, %d], want [%d, %d]", infos[0].ID, infos[1].ID, secondID, firstID)
	}
	if infos[0].RegionCount != 1 || infos[1].RegionCount != 0 {
		t.Fatalf("region counts = (%d, %d), want (1, 0)", infos[0].RegionCount, infos[1].RegionCount)
	}
}

func TestDeleteSessionCascades(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	id, sess := testsupport.NewSession(t, st, "Doomed")
	region, err := session.NewRegion("a.wav", 0, 1, 0, 1)
	if err != nil {
		t.Fatalf("NewRegion failed: %v", err)
	}
	if err := sess.AppendRegion(0, region); err != nil {
		t.Fatalf("AppendRegion failed: %v", err)
	}
	if err := st.SaveSession(ctx, id, sess); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}

	if err := st.DeleteSession(ctx, id); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}
	if _, err := st.LoadSession(ctx, id); !errors.Is(err, store.ErrSessionNotFound) {
		t.Fatalf("load after delete = %v, want ErrSessionNotFound", err)
	}
	if err := st.DeleteSession(ctx, id); !errors.Is(err, store.ErrSessionNotFound) {
		t.Fatalf("double delete = %v, want ErrSessionNotFound", err)
	}
}

func TestMissingSessionErrors(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if _, err := st.LoadSession(ctx, 999); !errors.Is(err, store.ErrSessionNotFound) {
		t.Fatalf("LoadSession(999) = %v, want ErrSessionNotFound", err)
	}
	if err := st.SaveSession(ctx, 999, session.New("ghost", 120, 4, 4)); !errors.Is(err, store.ErrSessionNotFound) {
		t.Fatalf("SaveSession(999) = %v, want ErrSessionNotFound", err)
	}
}

func TestProjectLockIsExclusive(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	_ = testsupport.MustOpenStore(t, cfg)

	if _, err := store.Open(cfg); !errors.Is(err, store.ErrProjectLocked) {
		t.Fatalf("second open = %v, want ErrProjectLocked", err)
	}
}

func TestNewAudioFilePathsAreUnique(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	a, b := st.NewAudioFilePath(), st.NewAudioFilePath()
	if a == b {
		t.Fatalf("paths collide: %s", a)
	}
	if filepath.Dir(a) != st.AudioDir() {
		t.Fatalf("path %s not under audio dir %s", a, st.AudioDir())
	}
	if filepath.Ext(a) != ".wav" {
		t.Fatalf("path %s is not a wav", a)
	}
}
