package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Laetus/mvv-bot/internal/domain"
	"github.com/Laetus/mvv-bot/internal/query"
	"github.com/Laetus/mvv-bot/internal/store"
)

type fakeRepo struct {
	profiles map[int64]*domain.Profile
	inserts  int
	replaces int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{profiles: make(map[int64]*domain.Profile)}
}

func (f *fakeRepo) FindProfile(_ context.Context, chatID int64) (*domain.Profile, error) {
	p, ok := f.profiles[chatID]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeRepo) InsertProfile(_ context.Context, p *domain.Profile) error {
	f.inserts++
	cp := *p
	f.profiles[p.ChatID] = &cp
	return nil
}

func (f *fakeRepo) ReplaceProfile(_ context.Context, p *domain.Profile) error {
	f.replaces++
	cp := *p
	f.profiles[p.ChatID] = &cp
	return nil
}

func (f *fakeRepo) Close() error { return nil }

type fakePipeline struct {
	blocks []query.StationBlock
	err    error
	calls  int
	last   domain.Location
}

func (f *fakePipeline) QueryDepartures(_ context.Context, loc domain.Location) ([]query.StationBlock, error) {
	f.calls++
	f.last = loc
	return f.blocks, f.err
}

func newTestHandler(repo *fakeRepo, pipeline *fakePipeline) *Handler {
	return NewHandler(repo, pipeline, zap.NewNop())
}

func TestHandler_FirstContactCreatesProfile(t *testing.T) {
	repo := newFakeRepo()
	h := newTestHandler(repo, &fakePipeline{})

	h.Handle(context.Background(), textEvent("/help"))

	if repo.inserts != 1 {
		t.Fatalf("expected one insert on first contact, got %d", repo.inserts)
	}
	if repo.replaces != 1 {
		t.Fatalf("expected the profile to be saved after handling, got %d replaces", repo.replaces)
	}
	p := repo.profiles[7]
	if p == nil || p.MsgCount != 1 {
		t.Fatalf("unexpected stored profile: %+v", p)
	}
}

func TestHandler_DepWithoutHomeSkipsPipeline(t *testing.T) {
	repo := newFakeRepo()
	repo.profiles[7] = &domain.Profile{ChatID: 7, MsgCount: 3}
	pipeline := &fakePipeline{}
	h := newTestHandler(repo, pipeline)

	replies := h.Handle(context.Background(), textEvent("/dep"))

	if pipeline.calls != 0 {
		t.Fatalf("pipeline must not run without a home location, got %d calls", pipeline.calls)
	}
	if len(replies) != 1 || replies[0].Text != textNoHome {
		t.Fatalf("expected the no-home message, got %+v", replies)
	}
}

func TestHandler_QueryFailureYieldsSingleMessageAndSaves(t *testing.T) {
	repo := newFakeRepo()
	home := domain.Location{Latitude: 48.1, Longitude: 11.5}
	repo.profiles[7] = &domain.Profile{ChatID: 7, Home: &home, MsgCount: 3}
	pipeline := &fakePipeline{err: errors.New("upstream down")}
	h := newTestHandler(repo, pipeline)

	replies := h.Handle(context.Background(), textEvent("/dep"))

	if len(replies) != 1 || replies[0].Text != textQueryFailed {
		t.Fatalf("expected a single failure message, got %+v", replies)
	}
	// The event still counts and the profile is still saved.
	if repo.replaces != 1 || repo.profiles[7].MsgCount != 4 {
		t.Fatalf("profile not saved after a failed query: %+v", repo.profiles[7])
	}
}

func TestHandler_RendersOneMessagePerStation(t *testing.T) {
	repo := newFakeRepo()
	pipeline := &fakePipeline{blocks: []query.StationBlock{
		{Station: domain.Station{ID: 1, Name: "Marienplatz"}, Text: "*Marienplatz*"},
		{Station: domain.Station{ID: 2, Name: "Odeonsplatz"}, Text: "*Odeonsplatz*"},
	}}
	h := newTestHandler(repo, pipeline)

	replies := h.Handle(context.Background(), locationEvent(48.137, 11.575))

	if pipeline.calls != 1 {
		t.Fatalf("expected exactly one pipeline run, got %d", pipeline.calls)
	}
	if pipeline.last.Latitude != 48.137 {
		t.Fatalf("pipeline ran at the wrong location: %+v", pipeline.last)
	}
	if len(replies) != 2 {
		t.Fatalf("expected one message per station, got %d", len(replies))
	}
	for i, reply := range replies {
		if !reply.Markdown {
			t.Errorf("station block %d must be markdown", i)
		}
	}
}

func TestHandler_NoStationsMessage(t *testing.T) {
	repo := newFakeRepo()
	h := newTestHandler(repo, &fakePipeline{})

	replies := h.Handle(context.Background(), locationEvent(0.0, 0.0))

	if len(replies) != 1 || replies[0].Text != textNoStations {
		t.Fatalf("expected the no-stations message, got %+v", replies)
	}
}

func TestHandler_ProfileRoundTripAcrossEvents(t *testing.T) {
	repo := newFakeRepo()
	pipeline := &fakePipeline{}
	h := newTestHandler(repo, pipeline)

	h.Handle(context.Background(), textEvent("/sethome"))
	h.Handle(context.Background(), locationEvent(48.137, 11.575))

	p := repo.profiles[7]
	if p.Home == nil || p.Home.Latitude != 48.137 {
		t.Fatalf("home not persisted across events: %+v", p.Home)
	}
	if p.Pending != nil {
		t.Fatalf("pending action must be cleared and persisted as cleared")
	}
	if p.MsgCount != 2 {
		t.Fatalf("expected message count 2, got %d", p.MsgCount)
	}
	if p.LastContact != time.Unix(1700000000, 0).UTC() {
		t.Fatalf("unexpected last contact: %v", p.LastContact)
	}
}
