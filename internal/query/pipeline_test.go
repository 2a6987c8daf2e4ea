package query

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Laetus/mvv-bot/internal/domain"
)

type fakeTransit struct {
	stations    []domain.Station
	stationsErr error
	depsErr     map[int64]error
	delays      map[int64]time.Duration

	mu    sync.Mutex
	calls []int64
}

func (f *fakeTransit) FindNearbyStations(context.Context, domain.Location) ([]domain.Station, error) {
	return f.stations, f.stationsErr
}

func (f *fakeTransit) GetDepartures(_ context.Context, stationID int64) ([]domain.Departure, error) {
	if d, ok := f.delays[stationID]; ok {
		time.Sleep(d)
	}
	f.mu.Lock()
	f.calls = append(f.calls, stationID)
	f.mu.Unlock()
	if err, ok := f.depsErr[stationID]; ok {
		return nil, err
	}
	return []domain.Departure{
		{DepartureTime: 1700000000000, Product: "u", Label: "6", Destination: "Garching"},
	}, nil
}

func testStations() []domain.Station {
	return []domain.Station{
		{ID: 1, Name: "Marienplatz", DistanceMeters: 80},
		{ID: 2, Name: "Odeonsplatz", DistanceMeters: 300},
		{ID: 3, Name: "Sendlinger Tor", DistanceMeters: 500},
	}
}

func TestQueryDepartures_OrderPreservedUnderConcurrency(t *testing.T) {
	// The nearest station answers slowest; block order must still follow
	// station order, not completion order.
	client := &fakeTransit{
		stations: testStations(),
		delays: map[int64]time.Duration{
			1: 30 * time.Millisecond,
			2: 10 * time.Millisecond,
			3: 0,
		},
	}
	p := New(client, time.UTC, zap.NewNop())

	blocks, err := p.QueryDepartures(context.Background(), domain.Location{Latitude: 48.137, Longitude: 11.575})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(blocks))
	}
	wantOrder := []string{"Marienplatz", "Odeonsplatz", "Sendlinger Tor"}
	for i, want := range wantOrder {
		if blocks[i].Station.Name != want {
			t.Errorf("block %d: got station %q, want %q", i, blocks[i].Station.Name, want)
		}
		if !strings.HasPrefix(blocks[i].Text, "*"+want) {
			t.Errorf("block %d text does not start with its station title: %q", i, blocks[i].Text)
		}
		if !strings.Contains(blocks[i].Text, "U6   Garching") {
			t.Errorf("block %d text missing departure row: %q", i, blocks[i].Text)
		}
	}
}

func TestQueryDepartures_StationFailureFailsWholeQuery(t *testing.T) {
	wantErr := errors.New("departure fetch exploded")
	client := &fakeTransit{
		stations: testStations(),
		depsErr:  map[int64]error{2: wantErr},
	}
	p := New(client, time.UTC, zap.NewNop())

	_, err := p.QueryDepartures(context.Background(), domain.Location{})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected the station failure to propagate, got %v", err)
	}
}

func TestQueryDepartures_NoStations(t *testing.T) {
	client := &fakeTransit{}
	p := New(client, time.UTC, zap.NewNop())

	blocks, err := p.QueryDepartures(context.Background(), domain.Location{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blocks) != 0 {
		t.Fatalf("expected no blocks, got %d", len(blocks))
	}
	if len(client.calls) != 0 {
		t.Fatalf("expected no departure fetches, got %d", len(client.calls))
	}
}

func TestQueryDepartures_NearbyFailurePropagates(t *testing.T) {
	wantErr := errors.New("nearby lookup failed")
	client := &fakeTransit{stationsErr: wantErr}
	p := New(client, time.UTC, zap.NewNop())

	if _, err := p.QueryDepartures(context.Background(), domain.Location{}); !errors.Is(err, wantErr) {
		t.Fatalf("expected nearby failure to propagate, got %v", err)
	}
}
