package api

import (
	"context"
	"net/http"

	"github.com/medcamp/portal/visitors"
)

// RegisterVisitor submits the public self-registration form. No credentials
// are required; the camp slug scopes the registration.
func (c *Client) RegisterVisitor(ctx context.Context, campSlug string, registration visitors.Registration) (visitors.Visitor, error) {
	var result visitors.Visitor
	err := c.do(ctx, http.MethodPost, campPath(campSlug, "/visitors"), registration, &result)
	return result, err
}

// ListVisitors returns a camp's visitor roster; camp staff only
func (c *Client) ListVisitors(ctx context.Context, campSlug string) ([]visitors.Visitor, error) {
	var result []visitors.Visitor
	err := c.do(ctx, http.MethodGet, campPath(campSlug, "/visitors"), nil, &result)
	return result, err
}

// FindVisitorByCode looks a visitor up by registration code (the payload a
// scanned slip QR decodes to)
func (c *Client) FindVisitorByCode(ctx context.Context, campSlug, code string) (visitors.Visitor, error) {
	var result visitors.Visitor
	err := c.do(ctx, http.MethodGet, campPath(campSlug, "/visitors/code/"+code), nil, &result)
	return result, err
}

// MyPatients returns the visitors the authenticated doctor has seen
func (c *Client) MyPatients(ctx context.Context, campSlug string) ([]visitors.Visitor, error) {
	var result []visitors.Visitor
	err := c.do(ctx, http.MethodGet, campPath(campSlug, "/doctor/patients"), nil, &result)
	return result, err
}

// RecordConsultation saves one doctor/visitor encounter
func (c *Client) RecordConsultation(ctx context.Context, campSlug string, consultation visitors.Consultation) (visitors.Consultation, error) {
	var result visitors.Consultation
	err := c.do(ctx, http.MethodPost, campPath(campSlug, "/consultations"), consultation, &result)
	return result, err
}
