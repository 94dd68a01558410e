package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/pdfbrief/pdfbrief/pkg/models"
)

// Upload submits a PDF as a multipart form and returns the created document
// reference. Processing happens asynchronously server-side; poll the
// document for progress.
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader) (*models.UploadResult, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("copy file contents: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalize form: %w", err)
	}

	var result models.UploadResult
	err = c.do(ctx, http.MethodPost, "/pdf/upload", &buf, writer.FormDataContentType(), &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Documents lists the caller's documents, newest first.
func (c *Client) Documents(ctx context.Context, skip, limit int) ([]models.DocumentListItem, error) {
	var docs []models.DocumentListItem
	path := fmt.Sprintf("/pdf/documents?skip=%d&limit=%d", skip, limit)
	if err := c.get(ctx, path, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// Document fetches a single document with its summary embedded when present.
func (c *Client) Document(ctx context.Context, id int) (*models.Document, error) {
	var doc models.Document
	if err := c.get(ctx, fmt.Sprintf("/pdf/documents/%d", id), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// DeleteDocument removes a document and its generated summary.
func (c *Client) DeleteDocument(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/pdf/documents/%d", id))
}
