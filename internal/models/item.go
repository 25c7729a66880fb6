package models

import "fmt"

// ItemType distinguishes the two purchasable item kinds we aggregate.
type ItemType string

const (
	ItemTypeGamepass ItemType = "gamepass"
	ItemTypeTShirt   ItemType = "tshirt"
)

// DefaultName returns the display-name fallback for an item type.
func (t ItemType) DefaultName() string {
	if t == ItemTypeTShirt {
		return "T-Shirt"
	}
	return "Gamepass"
}

// CatalogItem is one purchasable item admitted into the donation list.
// It is only constructed by enrichment after the admission predicate passed,
// so Price is always > 0.
type CatalogItem struct {
	ID    int64    `json:"id"`
	Name  string   `json:"name"`
	Price int64    `json:"price"`
	Type  ItemType `json:"type"`
}

// Key identifies an item across listing sources for deduplication.
func (i CatalogItem) Key() string {
	return fmt.Sprintf("%s_%d", i.Type, i.ID)
}

// Candidate is a raw listing record before enrichment. Name is only a
// display hint; the product-info call is authoritative.
type Candidate struct {
	ID        int64
	Name      string
	CreatorID int64
	Type      ItemType
}
