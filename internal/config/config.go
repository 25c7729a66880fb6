package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Server   ServerConfig   `envPrefix:"SERVER_"`
	Roblox   RobloxConfig   `envPrefix:"ROBLOX_"`
	Pipeline PipelineConfig `envPrefix:"PIPELINE_"`
}

type ServerConfig struct {
	Addr string `env:"ADDR" envDefault:":8080"`
}

// RobloxConfig holds the upstream API endpoints. The roproxy.com hosts are
// CORS-friendly mirrors of the corresponding roblox.com APIs.
type RobloxConfig struct {
	APIsURL    string        `env:"APIS_URL" envDefault:"https://apis.roproxy.com"`
	EconomyURL string        `env:"ECONOMY_URL" envDefault:"https://economy.roproxy.com"`
	CatalogURL string        `env:"CATALOG_URL" envDefault:"https://catalog.roproxy.com"`
	UsersURL   string        `env:"USERS_URL" envDefault:"https://users.roproxy.com"`
	Timeout    time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`

	// ProductInfoShape selects the product-info response adapter,
	// either "economy" (PriceInRobux/IsForSale) or "apis" (price/saleLocation).
	ProductInfoShape string `env:"PRODUCT_INFO_SHAPE" envDefault:"economy"`
}

type PipelineConfig struct {
	// GamepassMaxPages is a hard ceiling on listing pages per request,
	// enforced regardless of what cursors the upstream keeps returning.
	GamepassMaxPages int `env:"GAMEPASS_MAX_PAGES" envDefault:"5"`
	PageSize         int `env:"PAGE_SIZE" envDefault:"100"`
	CatalogLimit     int `env:"CATALOG_LIMIT" envDefault:"60"`

	// CallDelay is the fixed pause between consecutive upstream calls,
	// keeping one request's pipeline under the informal rate limits.
	CallDelay time.Duration `env:"CALL_DELAY" envDefault:"50ms"`

	// DefaultLimit caps the response size when the client sends no ?limit.
	// Zero means unbounded.
	DefaultLimit int `env:"DEFAULT_LIMIT" envDefault:"0"`

	// Sources names the listing sources to run, in order.
	Sources []string `env:"SOURCES" envDefault:"gamepasses,tshirts"`

	// RequireCreatorMatch drops gamepasses whose upstream-reported creator
	// is not the requested user.
	RequireCreatorMatch bool `env:"REQUIRE_CREATOR_MATCH" envDefault:"true"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
