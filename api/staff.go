package api

import (
	"context"
	"net/http"

	"github.com/medcamp/portal/users"
)

// ImportResult summarizes a doctor bulk-import
type ImportResult struct {
	Created int      `json:"created"`
	Failed  []string `json:"failed,omitempty"` // emails the server rejected
}

// ListDoctors returns a camp's doctor roster
func (c *Client) ListDoctors(ctx context.Context, campSlug string) ([]users.User, error) {
	var result []users.User
	err := c.do(ctx, http.MethodGet, campPath(campSlug, "/doctors"), nil, &result)
	return result, err
}

// CreateDoctor adds a single doctor to a camp's roster
func (c *Client) CreateDoctor(ctx context.Context, campSlug string, doctor users.NewDoctor) (users.User, error) {
	var result users.User
	err := c.do(ctx, http.MethodPost, campPath(campSlug, "/doctors"), doctor, &result)
	return result, err
}

// ImportDoctors submits a parsed CSV roster in one call
func (c *Client) ImportDoctors(ctx context.Context, campSlug string, doctors []users.NewDoctor) (ImportResult, error) {
	var result ImportResult
	err := c.do(ctx, http.MethodPost, campPath(campSlug, "/doctors/import"), doctors, &result)
	return result, err
}
