package roblox

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bloxfund/donation-proxy/internal/models"
)

type enrichClient struct {
	Client

	body []byte
	err  error

	gotType models.ItemType
	gotID   int64
}

func (f *enrichClient) ProductInfo(ctx context.Context, itemType models.ItemType, id int64) ([]byte, error) {
	f.gotType = itemType
	f.gotID = id
	return f.body, f.err
}

func newTestEnricher(client Client, requireCreatorMatch bool) *ProductEnricher {
	return &ProductEnricher{
		client:              client,
		adapter:             economyAdapter{},
		requireCreatorMatch: requireCreatorMatch,
	}
}

func TestProductEnricher_admitsForSaleItem(t *testing.T) {
	fc := &enrichClient{body: []byte(`{"Name":"VIP","PriceInRobux":50,"IsForSale":true,"Creator":{"Id":77}}`)}
	e := newTestEnricher(fc, true)

	item, err := e.Enrich(context.Background(), 77, models.Candidate{ID: 10, Type: models.ItemTypeGamepass})
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, models.CatalogItem{ID: 10, Name: "VIP", Price: 50, Type: models.ItemTypeGamepass}, *item)
	assert.Equal(t, models.ItemTypeGamepass, fc.gotType)
	assert.Equal(t, int64(10), fc.gotID)
}

func TestProductEnricher_rejectsOffSaleAndFreeItems(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "off sale", body: `{"Name":"x","PriceInRobux":10,"IsForSale":false,"Creator":{"Id":77}}`},
		{name: "zero price", body: `{"Name":"x","PriceInRobux":0,"IsForSale":true,"Creator":{"Id":77}}`},
		{name: "null price", body: `{"Name":"x","PriceInRobux":null,"IsForSale":true,"Creator":{"Id":77}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEnricher(&enrichClient{body: []byte(tt.body)}, true)

			item, err := e.Enrich(context.Background(), 77, models.Candidate{ID: 10, Type: models.ItemTypeGamepass})
			require.NoError(t, err)
			assert.Nil(t, item)
		})
	}
}

func TestProductEnricher_creatorMismatch(t *testing.T) {
	body := []byte(`{"Name":"x","PriceInRobux":10,"IsForSale":true,"Creator":{"Id":999}}`)

	e := newTestEnricher(&enrichClient{body: body}, true)
	item, err := e.Enrich(context.Background(), 77, models.Candidate{ID: 10, Type: models.ItemTypeGamepass})
	require.NoError(t, err)
	assert.Nil(t, item, "gamepass by another creator must be rejected")

	// T-shirts come from a creator-filtered search; no second check.
	item, err = e.Enrich(context.Background(), 77, models.Candidate{ID: 11, Type: models.ItemTypeTShirt})
	require.NoError(t, err)
	require.NotNil(t, item)

	// Disabling the check admits the mismatched gamepass too.
	e = newTestEnricher(&enrichClient{body: body}, false)
	item, err = e.Enrich(context.Background(), 77, models.Candidate{ID: 10, Type: models.ItemTypeGamepass})
	require.NoError(t, err)
	require.NotNil(t, item)
}

func TestProductEnricher_nameFallbacks(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		cand     models.Candidate
		wantName string
	}{
		{
			name:     "upstream name wins",
			body:     `{"Name":"Upstream","PriceInRobux":5,"IsForSale":true,"Creator":{"Id":77}}`,
			cand:     models.Candidate{ID: 1, Name: "Hint", Type: models.ItemTypeGamepass},
			wantName: "Upstream",
		},
		{
			name:     "listing hint fallback",
			body:     `{"PriceInRobux":5,"IsForSale":true,"Creator":{"Id":77}}`,
			cand:     models.Candidate{ID: 1, Name: "Hint", Type: models.ItemTypeGamepass},
			wantName: "Hint",
		},
		{
			name:     "type default fallback",
			body:     `{"PriceInRobux":5,"IsForSale":true,"Creator":{"Id":77}}`,
			cand:     models.Candidate{ID: 1, Type: models.ItemTypeTShirt},
			wantName: "T-Shirt",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEnricher(&enrichClient{body: []byte(tt.body)}, true)

			item, err := e.Enrich(context.Background(), 77, tt.cand)
			require.NoError(t, err)
			require.NotNil(t, item)
			assert.Equal(t, tt.wantName, item.Name)
		})
	}
}

func TestProductEnricher_upstreamFailure(t *testing.T) {
	e := newTestEnricher(&enrichClient{err: errors.New("boom")}, true)

	_, err := e.Enrich(context.Background(), 77, models.Candidate{ID: 10, Type: models.ItemTypeGamepass})
	assert.Error(t, err)
}

func TestProductEnricher_malformedBody(t *testing.T) {
	e := newTestEnricher(&enrichClient{body: []byte(`{`)}, true)

	_, err := e.Enrich(context.Background(), 77, models.Candidate{ID: 10, Type: models.ItemTypeGamepass})
	assert.Error(t, err)
}
