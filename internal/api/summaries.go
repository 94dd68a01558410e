package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pdfbrief/pdfbrief/pkg/models"
)

// Summaries lists the caller's generated summaries.
func (c *Client) Summaries(ctx context.Context, skip, limit int) ([]models.Summary, error) {
	var summaries []models.Summary
	path := fmt.Sprintf("/summaries?skip=%d&limit=%d", skip, limit)
	if err := c.get(ctx, path, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

// Summary fetches a single summary by ID.
func (c *Client) Summary(ctx context.Context, id int) (*models.Summary, error) {
	var summary models.Summary
	if err := c.get(ctx, fmt.Sprintf("/summaries/%d", id), &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// ResendEmail re-triggers notification delivery for a summary.
func (c *Client) ResendEmail(ctx context.Context, summaryID int) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/summaries/%d/resend-email", summaryID), nil, "", nil)
}
