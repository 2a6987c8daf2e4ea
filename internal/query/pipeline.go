package query

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Laetus/mvv-bot/internal/domain"
)

// TransitClient is the slice of the transit API the pipeline needs.
type TransitClient interface {
	FindNearbyStations(ctx context.Context, loc domain.Location) ([]domain.Station, error)
	GetDepartures(ctx context.Context, stationID int64) ([]domain.Departure, error)
}

// StationBlock pairs a resolved station with its rendered chat message.
type StationBlock struct {
	Station domain.Station
	Text    string
}

// Pipeline orchestrates location -> nearby stations -> per-station
// departures -> one rendered block per station.
type Pipeline struct {
	client TransitClient
	tz     *time.Location
	log    *zap.Logger
}

func New(client TransitClient, tz *time.Location, log *zap.Logger) *Pipeline {
	return &Pipeline{client: client, tz: tz, log: log}
}

// QueryDepartures resolves nearby stations and fetches their departures.
// Departure fetches run concurrently; blocks come back in the original
// station order (nearest-first, per upstream ordering). If any station
// fetch fails, the whole query fails.
func (p *Pipeline) QueryDepartures(ctx context.Context, loc domain.Location) ([]StationBlock, error) {
	stations, err := p.client.FindNearbyStations(ctx, loc)
	if err != nil {
		return nil, err
	}
	if len(stations) == 0 {
		p.log.Debug("no stations near location",
			zap.Float64("lat", loc.Latitude), zap.Float64("lon", loc.Longitude))
		return nil, nil
	}

	blocks := make([]StationBlock, len(stations))
	g, gctx := errgroup.WithContext(ctx)
	for i, st := range stations {
		i, st := i, st
		g.Go(func() error {
			deps, err := p.client.GetDepartures(gctx, st.ID)
			if err != nil {
				return err
			}
			blocks[i] = StationBlock{Station: st, Text: renderBlock(st, deps, p.tz)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return blocks, nil
}

func renderBlock(st domain.Station, deps []domain.Departure, tz *time.Location) string {
	return "*" + domain.StationTitle(st) + "*\n" +
		domain.LinesSummary(st) + "\n\n" +
		domain.RenderDepartures(deps, tz) + "\n\n\n"
}
