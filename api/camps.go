package api

import (
	"context"
	"net/http"

	"github.com/medcamp/portal/camps"
)

// ListCamps returns every camp; admin only
func (c *Client) ListCamps(ctx context.Context) ([]camps.Camp, error) {
	var result []camps.Camp
	err := c.do(ctx, http.MethodGet, EndpointAdminCamps, nil, &result)
	return result, err
}

// CreateCamp provisions a new camp; the server issues the slug
func (c *Client) CreateCamp(ctx context.Context, camp camps.Camp) (camps.Camp, error) {
	var result camps.Camp
	err := c.do(ctx, http.MethodPost, EndpointAdminCamps, camp, &result)
	return result, err
}

// GetCamp fetches one camp by ID; admin only
func (c *Client) GetCamp(ctx context.Context, campID string) (camps.Camp, error) {
	var result camps.Camp
	err := c.do(ctx, http.MethodGet, adminCampPath(campID), nil, &result)
	return result, err
}

// UpdateCamp replaces a camp's editable fields
func (c *Client) UpdateCamp(ctx context.Context, campID string, camp camps.Camp) (camps.Camp, error) {
	var result camps.Camp
	err := c.do(ctx, http.MethodPut, adminCampPath(campID), camp, &result)
	return result, err
}

// GetCampBySlug fetches the public camp record for the registration page
func (c *Client) GetCampBySlug(ctx context.Context, campSlug string) (camps.Camp, error) {
	var result camps.Camp
	err := c.do(ctx, http.MethodGet, campPath(campSlug, ""), nil, &result)
	return result, err
}

// CampStats returns the analytics summary for one camp
func (c *Client) CampStats(ctx context.Context, campSlug string) (camps.Stats, error) {
	var result camps.Stats
	err := c.do(ctx, http.MethodGet, campPath(campSlug, "/stats"), nil, &result)
	return result, err
}
