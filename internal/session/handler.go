package session

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/Laetus/mvv-bot/internal/domain"
	"github.com/Laetus/mvv-bot/internal/query"
	"github.com/Laetus/mvv-bot/internal/store"
)

// Pipeline is the slice of the query layer the handler needs.
type Pipeline interface {
	QueryDepartures(ctx context.Context, loc domain.Location) ([]query.StationBlock, error)
}

// Handler processes inbound events end to end: load-or-create the profile,
// dispatch, run any departure query, save. It is the single entry point
// the chat transport calls into. The transport serializes events per chat
// id; the handler itself keeps no cross-event state.
type Handler struct {
	repo     store.Repo
	pipeline Pipeline
	log      *zap.Logger
}

func NewHandler(repo store.Repo, pipeline Pipeline, log *zap.Logger) *Handler {
	return &Handler{repo: repo, pipeline: pipeline, log: log}
}

// Handle returns the outbound replies for one event. A failed departure
// query turns into a single user-visible message; the profile is saved
// regardless.
func (h *Handler) Handle(ctx context.Context, ev Event) []Reply {
	profile, err := h.loadOrCreate(ctx, ev)
	if err != nil {
		h.log.Error("profile load failed", zap.Error(err), zap.Int64("chat_id", ev.ChatID))
		return []Reply{{Text: textProfileError}}
	}

	actions := Dispatch(profile, ev)

	replies := actions.Replies
	if actions.Query != nil {
		replies = append(replies, h.runQuery(ctx, *actions.Query)...)
	}

	if err := h.repo.ReplaceProfile(ctx, profile); err != nil {
		h.log.Error("profile save failed", zap.Error(err), zap.Int64("chat_id", ev.ChatID))
	}
	return replies
}

func (h *Handler) loadOrCreate(ctx context.Context, ev Event) (*domain.Profile, error) {
	profile, err := h.repo.FindProfile(ctx, ev.ChatID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	// First contact: provision a fresh profile.
	profile = &domain.Profile{
		ChatID:      ev.ChatID,
		LastContact: ev.Timestamp.UTC(),
		CreatedAt:   ev.Timestamp.UTC(),
	}
	if err := h.repo.InsertProfile(ctx, profile); err != nil {
		return nil, err
	}
	h.log.Info("profile created", zap.Int64("chat_id", ev.ChatID))
	return profile, nil
}

func (h *Handler) runQuery(ctx context.Context, loc domain.Location) []Reply {
	blocks, err := h.pipeline.QueryDepartures(ctx, loc)
	if err != nil {
		h.log.Error("departure query failed", zap.Error(err),
			zap.Float64("lat", loc.Latitude), zap.Float64("lon", loc.Longitude))
		return []Reply{{Text: textQueryFailed}}
	}
	if len(blocks) == 0 {
		return []Reply{{Text: textNoStations}}
	}
	replies := make([]Reply, 0, len(blocks))
	for _, b := range blocks {
		replies = append(replies, Reply{Text: b.Text, Markdown: true})
	}
	return replies
}
