package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bloxfund/donation-proxy/internal/config"
	"github.com/bloxfund/donation-proxy/internal/models"
)

type fakeSource struct {
	name  string
	cands []models.Candidate
}

func (f fakeSource) SourceName() string { return f.name }

func (f fakeSource) List(ctx context.Context, userID int64, emit func(models.Candidate) bool) error {
	for _, c := range f.cands {
		if !emit(c) {
			return nil
		}
	}
	return nil
}

// fakeEnricher admits candidates according to a scripted product table.
type fakeEnricher struct {
	items map[int64]*models.CatalogItem
	errs  map[int64]error
	calls int
}

func (f *fakeEnricher) Enrich(ctx context.Context, userID int64, cand models.Candidate) (*models.CatalogItem, error) {
	f.calls++
	if err, ok := f.errs[cand.ID]; ok {
		return nil, err
	}
	return f.items[cand.ID], nil
}

func newTestUsecase(sources []ListingSource, enricher Enricher) DonationUsecase {
	registry := NewSourceRegistry()
	names := make([]string, 0, len(sources))
	for _, s := range sources {
		registry.RegisterSource(s.SourceName(), s)
		names = append(names, s.SourceName())
	}
	conf := &config.Config{Pipeline: config.PipelineConfig{Sources: names}}
	return NewDonationUsecase(conf, registry, enricher)
}

func gamepassCands(ids ...int64) []models.Candidate {
	out := make([]models.Candidate, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.Candidate{ID: id, Type: models.ItemTypeGamepass})
	}
	return out
}

func gamepassItem(id, price int64) *models.CatalogItem {
	return &models.CatalogItem{ID: id, Name: "Item", Price: price, Type: models.ItemTypeGamepass}
}

func TestListDonations_filtersAndSortsByPrice(t *testing.T) {
	// Candidate 20 is enriched as not-for-sale (nil), 10 and 30 are
	// admitted; the result comes back cheapest first.
	enricher := &fakeEnricher{items: map[int64]*models.CatalogItem{
		10: gamepassItem(10, 50),
		30: gamepassItem(30, 5),
	}}
	uc := newTestUsecase([]ListingSource{
		fakeSource{name: "gamepasses", cands: gamepassCands(10, 20, 30)},
	}, enricher)

	items, err := uc.ListDonations(context.Background(), 77, 0)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(30), items[0].ID)
	assert.Equal(t, int64(5), items[0].Price)
	assert.Equal(t, int64(10), items[1].ID)
	assert.Equal(t, int64(50), items[1].Price)
	assert.Equal(t, 3, enricher.calls)
}

func TestListDonations_limitReturnsCheapest(t *testing.T) {
	enricher := &fakeEnricher{items: map[int64]*models.CatalogItem{
		10: gamepassItem(10, 50),
		30: gamepassItem(30, 5),
	}}
	uc := newTestUsecase([]ListingSource{
		fakeSource{name: "gamepasses", cands: gamepassCands(10, 20, 30)},
	}, enricher)

	items, err := uc.ListDonations(context.Background(), 77, 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(30), items[0].ID)
}

func TestListDonations_deduplicatesAcrossSources(t *testing.T) {
	// The gamepass source surfaces id 10 twice; only the first survives.
	// The t-shirt with the same raw id is a different composite key and
	// must not be collapsed into it.
	enricher := &typeAwareEnricher{
		gamepass: gamepassItem(10, 50),
		tshirt:   &models.CatalogItem{ID: 10, Name: "Shirt", Price: 7, Type: models.ItemTypeTShirt},
	}
	uc := newTestUsecase([]ListingSource{
		fakeSource{name: "gamepasses", cands: gamepassCands(10, 10)},
		fakeSource{name: "tshirts", cands: []models.Candidate{{ID: 10, Type: models.ItemTypeTShirt}}},
	}, enricher)

	items, err := uc.ListDonations(context.Background(), 77, 0)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, models.ItemTypeTShirt, items[0].Type)
	assert.Equal(t, models.ItemTypeGamepass, items[1].Type)
}

type typeAwareEnricher struct {
	gamepass *models.CatalogItem
	tshirt   *models.CatalogItem
}

func (f *typeAwareEnricher) Enrich(ctx context.Context, userID int64, cand models.Candidate) (*models.CatalogItem, error) {
	if cand.Type == models.ItemTypeTShirt {
		return f.tshirt, nil
	}
	return f.gamepass, nil
}

func TestListDonations_stableOrderForEqualPrices(t *testing.T) {
	enricher := &fakeEnricher{items: map[int64]*models.CatalogItem{
		1: gamepassItem(1, 10),
		2: gamepassItem(2, 10),
		3: gamepassItem(3, 10),
	}}
	uc := newTestUsecase([]ListingSource{
		fakeSource{name: "gamepasses", cands: gamepassCands(1, 2, 3)},
	}, enricher)

	items, err := uc.ListDonations(context.Background(), 77, 0)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, int64(1), items[0].ID)
	assert.Equal(t, int64(2), items[1].ID)
	assert.Equal(t, int64(3), items[2].ID)
}

func TestListDonations_enrichmentFailureDropsCandidateOnly(t *testing.T) {
	enricher := &fakeEnricher{
		items: map[int64]*models.CatalogItem{
			1: gamepassItem(1, 10),
			3: gamepassItem(3, 30),
		},
		errs: map[int64]error{2: errors.New("boom")},
	}
	uc := newTestUsecase([]ListingSource{
		fakeSource{name: "gamepasses", cands: gamepassCands(1, 2, 3)},
	}, enricher)

	items, err := uc.ListDonations(context.Background(), 77, 0)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(1), items[0].ID)
	assert.Equal(t, int64(3), items[1].ID)
}

func TestListDonations_unregisteredSourceSkipped(t *testing.T) {
	registry := NewSourceRegistry()
	registry.RegisterSource("gamepasses", fakeSource{
		name:  "gamepasses",
		cands: gamepassCands(1),
	})
	conf := &config.Config{Pipeline: config.PipelineConfig{Sources: []string{"gamepasses", "missing"}}}
	enricher := &fakeEnricher{items: map[int64]*models.CatalogItem{1: gamepassItem(1, 10)}}
	uc := NewDonationUsecase(conf, registry, enricher)

	items, err := uc.ListDonations(context.Background(), 77, 0)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestListDonations_noAdmissibleItems(t *testing.T) {
	enricher := &fakeEnricher{}
	uc := newTestUsecase([]ListingSource{
		fakeSource{name: "gamepasses", cands: gamepassCands(1, 2)},
	}, enricher)

	items, err := uc.ListDonations(context.Background(), 77, 0)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
