package roblox

import (
	"context"

	log "github.com/carousell/ct-go/pkg/logger/log_context"

	"github.com/bloxfund/donation-proxy/internal/config"
	"github.com/bloxfund/donation-proxy/internal/models"
	"github.com/bloxfund/donation-proxy/pkg/util"
)

// CatalogTShirtSource enumerates classic t-shirts created by a user via
// catalog search. The search returns one flat page; the creator filter is
// part of the query itself.
type CatalogTShirtSource struct {
	client Client
	limit  int
}

func NewCatalogTShirtSource(client Client, conf *config.Config) *CatalogTShirtSource {
	return &CatalogTShirtSource{
		client: client,
		limit:  conf.Pipeline.CatalogLimit,
	}
}

func (s *CatalogTShirtSource) SourceName() string { return "tshirts" }

func (s *CatalogTShirtSource) List(ctx context.Context, userID int64, emit func(models.Candidate) bool) error {
	page, err := s.client.SearchClassicTShirts(ctx, userID, s.limit)
	if err != nil {
		log.Warnw(ctx, "t-shirt catalog search failed",
			"user_id", userID,
			"error", err)
		return nil
	}

	cands := util.ConvertList(page.Data, func(rec CatalogRecord) models.Candidate {
		return models.Candidate{
			ID:        rec.ID,
			Name:      rec.Name,
			CreatorID: rec.CreatorTargetID,
			Type:      models.ItemTypeTShirt,
		}
	})
	for _, cand := range cands {
		if cand.ID == 0 {
			continue
		}
		if !emit(cand) {
			return nil
		}
	}
	return nil
}
