package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/labstack/echo/v4"

	"github.com/bloxfund/donation-proxy/internal/config"
	"github.com/bloxfund/donation-proxy/internal/models"
	"github.com/bloxfund/donation-proxy/internal/usecase"
)

type Controller interface {
	Health(c echo.Context) error
	LookupUserID(c echo.Context) error
	GetUserInfo(c echo.Context) error
	GetDonations(c echo.Context) error
	DebugGamePasses(c echo.Context) error
}

// RawLister exposes the raw first listing page for the debug endpoint.
type RawLister interface {
	RawGamePassPage(ctx context.Context, userID int64, count int) (int, []byte, error)
}

type controller struct {
	donations    usecase.DonationUsecase
	users        usecase.UserUsecase
	raw          RawLister
	defaultLimit int
	pageSize     int
}

func NewHandler(
	donations usecase.DonationUsecase,
	users usecase.UserUsecase,
	raw RawLister,
	conf *config.Config,
) Controller {
	return &controller{
		donations:    donations,
		users:        users,
		raw:          raw,
		defaultLimit: conf.Pipeline.DefaultLimit,
		pageSize:     conf.Pipeline.PageSize,
	}
}

type healthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

type donationsResponse struct {
	Success bool                 `json:"success"`
	Items   []models.CatalogItem `json:"items"`
	Count   int                  `json:"count"`
}

type userResponse struct {
	Success bool `json:"success"`
	models.UserProfile
}

func (h *controller) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

type donationsRequest struct {
	UserID int64 `param:"userId" validate:"required,gt=0"`
	Limit  *int  `query:"limit" validate:"omitempty,gte=0"`
}

func (h *controller) GetDonations(c echo.Context) error {
	var req donationsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	limit := h.defaultLimit
	if req.Limit != nil {
		limit = *req.Limit
	}

	// The pipeline runs to completion even if the client goes away; a
	// disconnect must not leave upstream pagination half-done one moment
	// and restarted from scratch the next.
	ctx := context.WithoutCancel(c.Request().Context())

	items, err := h.donations.ListDonations(ctx, req.UserID, limit)
	if err != nil {
		log.Errorw(ctx, "donation pipeline failed", "user_id", req.UserID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch donation items")
	}

	return c.JSON(http.StatusOK, donationsResponse{
		Success: true,
		Items:   items,
		Count:   len(items),
	})
}

func (h *controller) LookupUserID(c echo.Context) error {
	username := c.Param("username")
	if username == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing username")
	}

	profile, err := h.users.ResolveUsername(c.Request().Context(), username)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		log.Errorw(c.Request().Context(), "username lookup failed", "username", username, "error", err)
		return echo.NewHTTPError(http.StatusBadGateway, "failed to look up user")
	}

	return c.JSON(http.StatusOK, userResponse{Success: true, UserProfile: *profile})
}

type userInfoRequest struct {
	UserID int64 `param:"userId" validate:"required,gt=0"`
}

func (h *controller) GetUserInfo(c echo.Context) error {
	var req userInfoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.users.GetProfile(c.Request().Context(), req.UserID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		log.Errorw(c.Request().Context(), "user info failed", "user_id", req.UserID, "error", err)
		return echo.NewHTTPError(http.StatusBadGateway, "failed to fetch user info")
	}

	return c.JSON(http.StatusOK, userResponse{Success: true, UserProfile: *profile})
}

// DebugGamePasses passes through the raw status and body of the first
// listing page. Not part of the stable contract.
func (h *controller) DebugGamePasses(c echo.Context) error {
	var req userInfoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	status, body, err := h.raw.RawGamePassPage(c.Request().Context(), req.UserID, h.pageSize)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "upstream fetch failed")
	}

	resp := map[string]any{
		"success":        true,
		"upstreamStatus": status,
	}
	if json.Valid(body) {
		resp["body"] = json.RawMessage(body)
	} else {
		resp["body"] = string(body)
	}
	return c.JSON(http.StatusOK, resp)
}
