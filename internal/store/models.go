package store

import (
	"database/sql"

	"github.com/Laetus/mvv-bot/internal/domain"
)

func homeToNull(loc *domain.Location) (lat, lon sql.NullFloat64) {
	if loc == nil {
		return sql.NullFloat64{}, sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: loc.Latitude, Valid: true},
		sql.NullFloat64{Float64: loc.Longitude, Valid: true}
}

func homeFromNull(lat, lon sql.NullFloat64) *domain.Location {
	if !lat.Valid || !lon.Valid {
		return nil
	}
	return &domain.Location{Latitude: lat.Float64, Longitude: lon.Float64}
}

func pendingToNull(p *domain.PendingAction) (kind sql.NullString, since sql.NullInt64) {
	if p == nil {
		return sql.NullString{}, sql.NullInt64{}
	}
	return sql.NullString{String: string(p.Kind), Valid: true},
		sql.NullInt64{Int64: int64(p.SinceMsgCount), Valid: true}
}

func pendingFromNull(kind sql.NullString, since sql.NullInt64) *domain.PendingAction {
	if !kind.Valid {
		return nil
	}
	return &domain.PendingAction{
		Kind:          domain.PendingKind(kind.String),
		SinceMsgCount: int(since.Int64),
	}
}
