package roblox

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ProductInfo is the normalized product metadata driving the admission
// predicate. Upstream ids and prices arrive as numbers or numeric strings
// depending on the API revision, so coercion happens here, at the parse
// boundary, rather than with loose equality later.
type ProductInfo struct {
	Name      string
	Price     int64
	ForSale   bool
	CreatorID int64
}

// ProductInfoAdapter decodes one upstream product-info response shape.
type ProductInfoAdapter interface {
	Name() string
	Parse(body []byte) (*ProductInfo, error)
}

// AdapterByName selects a product-info adapter by its configured name.
func AdapterByName(name string) (ProductInfoAdapter, error) {
	switch name {
	case "economy", "":
		return economyAdapter{}, nil
	case "apis":
		return apisAdapter{}, nil
	default:
		return nil, fmt.Errorf("unknown product info shape %q", name)
	}
}

// flexInt64 unmarshals JSON numbers, numeric strings and null.
type flexInt64 int64

func (f *flexInt64) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(b)), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		fl, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return fmt.Errorf("parse %q as int64: %w", s, err)
		}
		n = int64(fl)
	}
	*f = flexInt64(n)
	return nil
}

// economyAdapter parses the economy.roblox.com product-info shape:
// PriceInRobux/IsForSale plus a Creator object. PriceInRobux is null for
// off-sale items.
type economyAdapter struct{}

type economyProductInfo struct {
	Name         string     `json:"Name"`
	PriceInRobux *flexInt64 `json:"PriceInRobux"`
	IsForSale    bool       `json:"IsForSale"`
	Creator      struct {
		ID   flexInt64 `json:"Id"`
		Type string    `json:"Type"`
	} `json:"Creator"`
}

func (economyAdapter) Name() string { return "economy" }

func (economyAdapter) Parse(body []byte) (*ProductInfo, error) {
	var raw economyProductInfo
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode economy product info: %w", err)
	}

	info := &ProductInfo{
		Name:      raw.Name,
		ForSale:   raw.IsForSale,
		CreatorID: int64(raw.Creator.ID),
	}
	if raw.PriceInRobux != nil {
		info.Price = int64(*raw.PriceInRobux)
	}
	return info, nil
}

// apisAdapter parses the apis.roblox.com product-info shape, where sale
// status is a saleLocation enum instead of a boolean.
type apisAdapter struct{}

type apisProductInfo struct {
	Name         string       `json:"name"`
	Price        *flexInt64   `json:"price"`
	CreatorID    flexInt64    `json:"creatorId"`
	SaleLocation saleLocation `json:"saleLocation"`
}

// saleLocation tolerates the three encodings seen in the wild: a string
// enum, a numeric enum, or an object carrying saleLocationType.
type saleLocation struct {
	value string
}

func (s *saleLocation) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		s.value = ""
		return nil
	}
	if b[0] == '{' {
		var obj struct {
			SaleLocationType json.RawMessage `json:"saleLocationType"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return fmt.Errorf("decode sale location object: %w", err)
		}
		s.value = strings.Trim(string(obj.SaleLocationType), `"`)
		return nil
	}
	s.value = strings.Trim(string(b), `"`)
	return nil
}

var purchasableSaleLocations = map[string]bool{
	"1":                     true,
	"2":                     true,
	"5":                     true,
	"Shop":                  true,
	"ShopOnly":              true,
	"AllExperiences":        true,
	"ShopAndAllExperiences": true,
}

func (apisAdapter) Name() string { return "apis" }

func (apisAdapter) Parse(body []byte) (*ProductInfo, error) {
	var raw apisProductInfo
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode apis product info: %w", err)
	}

	info := &ProductInfo{
		Name:      raw.Name,
		ForSale:   purchasableSaleLocations[raw.SaleLocation.value],
		CreatorID: int64(raw.CreatorID),
	}
	if raw.Price != nil {
		info.Price = int64(*raw.Price)
	}
	return info, nil
}
