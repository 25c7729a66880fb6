package roblox

import (
	"context"
	"time"

	log "github.com/carousell/ct-go/pkg/logger/log_context"

	"github.com/bloxfund/donation-proxy/internal/config"
	"github.com/bloxfund/donation-proxy/internal/models"
)

// GamePassSource enumerates game-passes created by a user via the
// cursor-paginated listing API.
type GamePassSource struct {
	client   Client
	pageSize int
	maxPages int
	delay    time.Duration
}

func NewGamePassSource(client Client, conf *config.Config) *GamePassSource {
	return &GamePassSource{
		client:   client,
		pageSize: conf.Pipeline.PageSize,
		maxPages: conf.Pipeline.GamepassMaxPages,
		delay:    conf.Pipeline.CallDelay,
	}
}

func (s *GamePassSource) SourceName() string { return "gamepasses" }

// List walks listing pages until an empty page, a missing cursor, or the
// page ceiling. Upstream failures end the walk without error: candidates
// already emitted stand, per the partial-result policy.
func (s *GamePassSource) List(ctx context.Context, userID int64, emit func(models.Candidate) bool) error {
	cursor := ""
	for page := 0; page < s.maxPages; page++ {
		if page > 0 {
			time.Sleep(s.delay)
		}

		p, err := s.client.ListGamePasses(ctx, userID, s.pageSize, cursor)
		if err != nil {
			log.Warnw(ctx, "game pass listing stopped early",
				"user_id", userID,
				"page", page,
				"error", err)
			return nil
		}
		if len(p.Data) == 0 {
			return nil
		}

		for _, rec := range p.Data {
			id := rec.ID
			if id == 0 {
				id = rec.GamePassID
			}
			if id == 0 {
				continue
			}
			name := rec.Name
			if name == "" {
				name = rec.DisplayName
			}
			cand := models.Candidate{
				ID:        id,
				Name:      name,
				CreatorID: rec.SellerID,
				Type:      models.ItemTypeGamepass,
			}
			if !emit(cand) {
				return nil
			}
		}

		if p.NextPageCursor == "" {
			return nil
		}
		cursor = p.NextPageCursor
	}

	log.Infow(ctx, "game pass listing hit page ceiling",
		"user_id", userID,
		"max_pages", s.maxPages)
	return nil
}
