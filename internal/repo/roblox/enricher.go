package roblox

import (
	"context"
	"fmt"
	"time"

	log "github.com/carousell/ct-go/pkg/logger/log_context"

	"github.com/bloxfund/donation-proxy/internal/config"
	"github.com/bloxfund/donation-proxy/internal/models"
)

// ProductEnricher resolves authoritative sale/price/creator data for one
// candidate and applies the admission predicate.
type ProductEnricher struct {
	client              Client
	adapter             ProductInfoAdapter
	requireCreatorMatch bool
	delay               time.Duration
}

func NewProductEnricher(client Client, conf *config.Config) (*ProductEnricher, error) {
	adapter, err := AdapterByName(conf.Roblox.ProductInfoShape)
	if err != nil {
		return nil, fmt.Errorf("select product info adapter: %w", err)
	}

	return &ProductEnricher{
		client:              client,
		adapter:             adapter,
		requireCreatorMatch: conf.Pipeline.RequireCreatorMatch,
		delay:               conf.Pipeline.CallDelay,
	}, nil
}

// Enrich makes exactly one product-info call for the candidate. It returns
// (nil, nil) when the item is rejected by the admission predicate and an
// error only on upstream failure; either way the caller moves on to the
// next candidate.
func (e *ProductEnricher) Enrich(ctx context.Context, userID int64, cand models.Candidate) (*models.CatalogItem, error) {
	defer time.Sleep(e.delay)

	body, err := e.client.ProductInfo(ctx, cand.Type, cand.ID)
	if err != nil {
		return nil, err
	}

	info, err := e.adapter.Parse(body)
	if err != nil {
		return nil, err
	}

	if !info.ForSale || info.Price <= 0 {
		log.Debugw(ctx, "item not purchasable, skipping",
			"item_type", cand.Type,
			"item_id", cand.ID,
			"for_sale", info.ForSale,
			"price", info.Price)
		return nil, nil
	}

	// The t-shirt catalog search already filters by creator; only
	// game-pass listings can surface items created by someone else.
	if e.requireCreatorMatch && cand.Type == models.ItemTypeGamepass && info.CreatorID != userID {
		log.Debugw(ctx, "creator mismatch, skipping",
			"item_id", cand.ID,
			"creator_id", info.CreatorID,
			"user_id", userID)
		return nil, nil
	}

	name := info.Name
	if name == "" {
		name = cand.Name
	}
	if name == "" {
		name = cand.Type.DefaultName()
	}

	return &models.CatalogItem{
		ID:    cand.ID,
		Name:  name,
		Price: info.Price,
		Type:  cand.Type,
	}, nil
}
