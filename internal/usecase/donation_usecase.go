package usecase

import (
	"context"
	"sort"

	log "github.com/carousell/ct-go/pkg/logger/log_context"

	"github.com/bloxfund/donation-proxy/internal/config"
	"github.com/bloxfund/donation-proxy/internal/models"
)

// DonationUsecase aggregates a user's purchasable items into a single
// deduplicated, price-ascending list.
type DonationUsecase interface {
	ListDonations(ctx context.Context, userID int64, limit int) ([]models.CatalogItem, error)
}

type donationUsecase struct {
	registry SourceRegistry
	enricher Enricher
	sources  []string
}

func NewDonationUsecase(conf *config.Config, registry SourceRegistry, enricher Enricher) DonationUsecase {
	return &donationUsecase{
		registry: registry,
		enricher: enricher,
		sources:  conf.Pipeline.Sources,
	}
}

// ListDonations runs the configured listing sources in order, enriches
// each candidate sequentially, and folds the admitted items into the final
// response set. A limit of zero means unbounded.
//
// Truncation happens after the sort so a finite limit always returns the
// cheapest admissible items, not merely the first listed ones.
func (u *donationUsecase) ListDonations(ctx context.Context, userID int64, limit int) ([]models.CatalogItem, error) {
	items := make([]models.CatalogItem, 0, 16)
	seen := make(map[string]struct{})

	for _, name := range u.sources {
		source, ok := u.registry.GetSource(name)
		if !ok {
			log.Warnw(ctx, "listing source not registered", "source", name)
			continue
		}

		err := source.List(ctx, userID, func(cand models.Candidate) bool {
			item, err := u.enricher.Enrich(ctx, userID, cand)
			if err != nil {
				log.Warnw(ctx, "enrichment failed, dropping candidate",
					"source", name,
					"item_type", cand.Type,
					"item_id", cand.ID,
					"error", err)
				return true
			}
			if item == nil {
				return true
			}
			if _, dup := seen[item.Key()]; dup {
				log.Debugw(ctx, "duplicate item discarded",
					"source", name,
					"key", item.Key())
				return true
			}
			seen[item.Key()] = struct{}{}
			items = append(items, *item)
			return true
		})
		if err != nil {
			return nil, err
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Price < items[j].Price
	})

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	log.Infow(ctx, "donation items aggregated",
		"user_id", userID,
		"count", len(items))
	return items, nil
}
