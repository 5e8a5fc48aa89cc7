package apiclient

import (
	"context"
	"fmt"
	"net/http"
)

// Badge is a public catalog entry. Its lifecycle is independent of any user.
type Badge struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Image        *string `json:"image,omitempty"`
	Category     *string `json:"category,omitempty"`
	Level        *string `json:"level,omitempty"`
	Vertical     *string `json:"vertical,omitempty"`
	Holders      int     `json:"holders"`
	YearLaunched int     `json:"yearLaunched"`
}

type badgesResponse struct {
	Badges []Badge `json:"badges"`
}

type earnersResponse struct {
	Earners int `json:"earners"`
}

// ListBadges returns the full public catalog.
func (c *Client) ListBadges(ctx context.Context) ([]Badge, error) {
	var out badgesResponse
	if err := c.doJSON(ctx, http.MethodGet, "badges", "", nil, &out); err != nil {
		return nil, err
	}
	return out.Badges, nil
}

// ListEarnedBadges returns the catalog filtered to badges the authenticated
// user has earned.
func (c *Client) ListEarnedBadges(ctx context.Context, token string) ([]Badge, error) {
	var out badgesResponse
	if err := c.doJSON(ctx, http.MethodGet, "badges-earned", token, nil, &out); err != nil {
		return nil, err
	}
	return out.Badges, nil
}

// EarnerCount returns how many users hold the given badge.
func (c *Client) EarnerCount(ctx context.Context, badgeID int) (int, error) {
	var out earnersResponse
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("badge/earners/%d", badgeID), "", nil, &out); err != nil {
		return 0, err
	}
	return out.Earners, nil
}
