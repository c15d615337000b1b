package gateway

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"

	"santiice/internal/domain"
)

// TicketsClient talks to the OCR ticket backend.
type TicketsClient struct {
	rest restClient
}

// NewTicketsClient creates a client for the ticket backend at baseURL.
func NewTicketsClient(baseURL string, httpClient *http.Client, creds *Credentials) *TicketsClient {
	return &TicketsClient{rest: newRESTClient(baseURL, httpClient, creds)}
}

// Process uploads ticket images for OCR extraction.
func (c *TicketsClient) Process(ctx context.Context, paths []string) (*domain.ProcessResult, error) {
	files := make([]formFile, 0, len(paths))
	for _, p := range paths {
		files = append(files, formFile{field: "files", path: p})
	}

	var out domain.ProcessResult
	if err := c.postMultipart(ctx, "/process-tickets", files, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type confirmRequest struct {
	Tickets []domain.FormattedTicket `json:"tickets"`
}

type confirmItemWire struct {
	ID         string      `json:"id"`
	Filename   string      `json:"filename"`
	Status     string      `json:"status"`
	Message    interface{} `json:"message"`
	Error      interface{} `json:"error"`
	Duplicated bool        `json:"duplicated"`
}

type confirmResponseWire struct {
	Success bool                   `json:"success"`
	Results []confirmItemWire      `json:"results"`
	Summary *domain.ConfirmSummary `json:"summary"`
	Error   interface{}            `json:"error"`
}

// Confirm submits formatted tickets. Every message in the response is reduced
// to a plain string.
func (c *TicketsClient) Confirm(ctx context.Context, tickets []domain.FormattedTicket) (*domain.ConfirmResult, error) {
	var wire confirmResponseWire
	if err := c.rest.doJSON(ctx, http.MethodPost, "/confirm-tickets", confirmRequest{Tickets: tickets}, &wire); err != nil {
		return nil, err
	}
	return sanitizeConfirm(wire), nil
}

func sanitizeConfirm(wire confirmResponseWire) *domain.ConfirmResult {
	out := &domain.ConfirmResult{
		Success: wire.Success,
		Results: make([]domain.ConfirmItem, 0, len(wire.Results)),
	}
	if wire.Summary != nil {
		out.Summary = *wire.Summary
	}
	if present(wire.Error) {
		out.Error = SafeMessage(wire.Error)
	}
	for _, r := range wire.Results {
		item := domain.ConfirmItem{
			ID:         r.ID,
			Filename:   r.Filename,
			Status:     r.Status,
			Duplicated: r.Duplicated,
		}
		if r.Message != nil {
			item.Message = SafeMessage(r.Message)
		}
		if present(r.Error) {
			item.Error = SafeMessage(r.Error)
		}
		out.Results = append(out.Results, item)
	}
	return out
}

func (c *TicketsClient) postMultipart(ctx context.Context, path string, files []formFile, fields map[string]string, out interface{}) error {
	return postMultipart(ctx, c.rest, path, files, fields, out)
}

// postMultipart streams a multipart body through a pipe so large files are not buffered.
func postMultipart(ctx context.Context, rest restClient, path string, files []formFile, fields map[string]string, out interface{}) error {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		pw.CloseWithError(writeMultipart(mw, files, fields))
	}()

	req, err := rest.newRequest(ctx, http.MethodPost, path, pr)
	if err != nil {
		pr.Close()
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return rest.do(req, out)
}
