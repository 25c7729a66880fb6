package roblox

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/bloxfund/donation-proxy/internal/config"
	"github.com/bloxfund/donation-proxy/internal/models"
	"github.com/bloxfund/donation-proxy/pkg/util"
	"github.com/go-resty/resty/v2"
	"github.com/prometheus/client_golang/prometheus"
)

// GamePassRecord is one raw record from the game-pass listing API.
// Field names differ between API revisions, so both id and name have
// fallback fields.
type GamePassRecord struct {
	ID          int64  `json:"id"`
	GamePassID  int64  `json:"gamePassId"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	SellerID    int64  `json:"sellerId"`
}

// GamePassPage is one cursor-paginated page of game-pass records.
type GamePassPage struct {
	Data           []GamePassRecord `json:"data"`
	NextPageCursor string           `json:"nextPageCursor"`
}

// CatalogRecord is one raw record from the catalog search API.
type CatalogRecord struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	CreatorTargetID int64  `json:"creatorTargetId"`
}

// CatalogPage is a flat (non-paginated) catalog search result.
type CatalogPage struct {
	Data []CatalogRecord `json:"data"`
}

type usernameLookupRequest struct {
	Usernames          []string `json:"usernames"`
	ExcludeBannedUsers bool     `json:"excludeBannedUsers"`
}

type usernameLookupResponse struct {
	Data []userRecord `json:"data"`
}

type userRecord struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	Created     string `json:"created"`
}

type Client interface {
	ListGamePasses(ctx context.Context, userID int64, count int, cursor string) (*GamePassPage, error)
	SearchClassicTShirts(ctx context.Context, userID int64, limit int) (*CatalogPage, error)
	ProductInfo(ctx context.Context, itemType models.ItemType, id int64) ([]byte, error)
	GetUserByUsername(ctx context.Context, username string) (*models.UserProfile, error)
	GetUserByID(ctx context.Context, userID int64) (*models.UserProfile, error)
	RawGamePassPage(ctx context.Context, userID int64, count int) (int, []byte, error)
}

type client struct {
	http    *resty.Client
	conf    config.RobloxConfig
	metrics *prometheus.HistogramVec
}

func NewClient(conf *config.Config) (Client, error) {
	metrics, err := util.GetHistogramVec("roblox_upstream_request_duration_seconds", "api", "status")
	if err != nil {
		return nil, fmt.Errorf("register upstream metrics: %w", err)
	}

	return &client{
		http:    util.NewRestyClient(conf.Roblox.Timeout),
		conf:    conf.Roblox,
		metrics: metrics,
	}, nil
}

func (c *client) ListGamePasses(ctx context.Context, userID int64, count int, cursor string) (*GamePassPage, error) {
	url := fmt.Sprintf("%s/game-passes/v1/users/%d/game-passes?count=%d", c.conf.APIsURL, userID, count)
	if cursor != "" {
		url += "&cursor=" + cursor
	}

	var page GamePassPage
	if err := c.getJSON(ctx, "game_passes", url, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *client) SearchClassicTShirts(ctx context.Context, userID int64, limit int) (*CatalogPage, error) {
	url := fmt.Sprintf(
		"%s/v1/search/items?category=Clothing&subcategory=ClassicTShirts&creatorTargetId=%d&creatorType=User&limit=%d&sortOrder=Desc&sortType=Updated",
		c.conf.CatalogURL, userID, limit,
	)

	var page CatalogPage
	if err := c.getJSON(ctx, "catalog_search", url, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ProductInfo fetches the raw product-info body for one item. The body is
// left undecoded so the configured shape adapter can parse it.
func (c *client) ProductInfo(ctx context.Context, itemType models.ItemType, id int64) ([]byte, error) {
	var url string
	if itemType == models.ItemTypeTShirt {
		url = fmt.Sprintf("%s/v1/assets/%d/product-info", c.conf.EconomyURL, id)
	} else {
		url = fmt.Sprintf("%s/v1/game-passes/%d/product-info", c.conf.EconomyURL, id)
	}

	start := time.Now()
	resp, err := c.http.R().SetContext(ctx).Get(url)
	c.observe("product_info", start, resp, err)
	if err != nil {
		return nil, fmt.Errorf("product info request: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("product info returned status %d", resp.StatusCode())
	}

	return resp.Body(), nil
}

func (c *client) GetUserByUsername(ctx context.Context, username string) (*models.UserProfile, error) {
	url := c.conf.UsersURL + "/v1/usernames/users"

	var out usernameLookupResponse
	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(usernameLookupRequest{
			Usernames:          []string{username},
			ExcludeBannedUsers: true,
		}).
		SetResult(&out).
		Post(url)
	c.observe("username_lookup", start, resp, err)
	if err != nil {
		return nil, fmt.Errorf("username lookup request: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("username lookup returned status %d", resp.StatusCode())
	}
	if len(out.Data) == 0 {
		return nil, models.ErrUserNotFound
	}

	return profileFromRecord(out.Data[0]), nil
}

func (c *client) GetUserByID(ctx context.Context, userID int64) (*models.UserProfile, error) {
	url := fmt.Sprintf("%s/v1/users/%d", c.conf.UsersURL, userID)

	var rec userRecord
	start := time.Now()
	resp, err := c.http.R().SetContext(ctx).SetResult(&rec).Get(url)
	c.observe("user_info", start, resp, err)
	if err != nil {
		return nil, fmt.Errorf("user info request: %w", err)
	}
	if resp.StatusCode() == 404 {
		return nil, models.ErrUserNotFound
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("user info returned status %d", resp.StatusCode())
	}

	return profileFromRecord(rec), nil
}

// RawGamePassPage returns the status and body of the first listing page
// untouched, for the debug passthrough endpoint.
func (c *client) RawGamePassPage(ctx context.Context, userID int64, count int) (int, []byte, error) {
	url := fmt.Sprintf("%s/game-passes/v1/users/%d/game-passes?count=%d", c.conf.APIsURL, userID, count)

	start := time.Now()
	resp, err := c.http.R().SetContext(ctx).Get(url)
	c.observe("game_passes", start, resp, err)
	if err != nil {
		return 0, nil, fmt.Errorf("game pass listing request: %w", err)
	}

	return resp.StatusCode(), resp.Body(), nil
}

func (c *client) getJSON(ctx context.Context, api, url string, out any) error {
	start := time.Now()
	resp, err := c.http.R().SetContext(ctx).SetResult(out).Get(url)
	c.observe(api, start, resp, err)
	if err != nil {
		return fmt.Errorf("%s request: %w", api, err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("%s returned status %d", api, resp.StatusCode())
	}
	return nil
}

func (c *client) observe(api string, start time.Time, resp *resty.Response, err error) {
	status := "error"
	if err == nil && resp != nil {
		status = strconv.Itoa(resp.StatusCode())
	}
	c.metrics.WithLabelValues(api, status).Observe(time.Since(start).Seconds())
}

func profileFromRecord(rec userRecord) *models.UserProfile {
	return &models.UserProfile{
		UserID:      rec.ID,
		Username:    rec.Name,
		DisplayName: rec.DisplayName,
		Description: rec.Description,
		Created:     rec.Created,
	}
}
