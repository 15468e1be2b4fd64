package stats

import (
	"context"
	"errors"

	"github.com/footstocks/api-server/internals/store"

	"github.com/google/uuid"
)

var ErrMissingKey = errors.New("player_id, gameweek and season are required")

// StatsService stores and serves per-player match statistics.
type StatsService struct {
	Store store.Store
}

func New(st store.Store) *StatsService {
	return &StatsService{Store: st}
}

// Upsert writes the stat line keyed on (player, gameweek, season),
// replacing an existing line for the same key.
func (ss *StatsService) Upsert(ctx context.Context, in MatchStatInput) (*store.MatchStat, error) {
	if in.PlayerID == "" || in.Gameweek == 0 || in.Season == 0 {
		return nil, ErrMissingKey
	}

	// The player must exist; stats for unknown players are rejected.
	if _, err := ss.Store.GetPlayer(ctx, in.PlayerID); err != nil {
		return nil, err
	}

	stat := &store.MatchStat{
		ID:            uuid.New().String(),
		PlayerID:      in.PlayerID,
		Gameweek:      in.Gameweek,
		Season:        in.Season,
		MatchDate:     in.MatchDate,
		OpponentTeam:  in.OpponentTeam,
		MinutesPlayed: in.MinutesPlayed,
		Goals:         in.Goals,
		Assists:       in.Assists,
		CleanSheet:    in.CleanSheet,
		YellowCards:   in.YellowCards,
		RedCards:      in.RedCards,
		Rating:        in.Rating,
		TotalPoints:   in.TotalPoints,
	}
	if err := ss.Store.UpsertMatchStat(ctx, stat); err != nil {
		return nil, err
	}
	return stat, nil
}

// List returns a player's stat lines, newest gameweek first. Gameweek and
// season filters are optional (zero means no filter).
func (ss *StatsService) List(ctx context.Context, playerID string, gameweek, season int) ([]store.MatchStat, error) {
	return ss.Store.ListMatchStats(ctx, playerID, gameweek, season)
}
