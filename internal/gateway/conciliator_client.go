package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"santiice/internal/domain"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const conciliatorPrefix = "/api/conciliator"

// ConciliatorClient talks to the reconciliation backend over REST and its
// WebSocket progress feed.
type ConciliatorClient struct {
	rest   restClient
	wsURL  string
	dialer *websocket.Dialer
}

// NewConciliatorClient creates a client. wsURL is the feed root, the session
// id is appended as the last path segment.
func NewConciliatorClient(baseURL, wsURL string, httpClient *http.Client, creds *Credentials) *ConciliatorClient {
	return &ConciliatorClient{
		rest:   newRESTClient(baseURL, httpClient, creds),
		wsURL:  strings.TrimRight(wsURL, "/"),
		dialer: websocket.DefaultDialer,
	}
}

// Clients lists the clients the backend can reconcile.
func (c *ConciliatorClient) Clients(ctx context.Context) ([]domain.ClientInfo, error) {
	var out []domain.ClientInfo
	if err := c.rest.doJSON(ctx, http.MethodGet, conciliatorPrefix+"/clients", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateSession opens a new reconciliation session and returns its id.
func (c *ConciliatorClient) CreateSession(ctx context.Context) (string, error) {
	var out struct {
		SessionID string `json:"session_id"`
	}
	if err := c.rest.doJSON(ctx, http.MethodPost, conciliatorPrefix+"/session", nil, &out); err != nil {
		return "", err
	}
	if out.SessionID == "" {
		return "", errors.New("backend returned an empty session id")
	}
	return out.SessionID, nil
}

// Upload attaches a file to a session. The kind travels both as a query
// parameter and as a form field since backend versions differ on which they read.
func (c *ConciliatorClient) Upload(ctx context.Context, sessionID string, kind domain.FileKind, path string) error {
	endpoint := fmt.Sprintf("%s/upload/%s?file_type=%s", conciliatorPrefix, url.PathEscape(sessionID), url.QueryEscape(string(kind)))
	files := []formFile{{field: "file", path: path}}
	fields := map[string]string{"file_type": string(kind)}
	if err := postMultipart(ctx, c.rest, endpoint, files, fields, nil); err != nil {
		return fmt.Errorf("could not upload %s file: %w", kind, err)
	}
	return nil
}

// Process starts reconciliation of an uploaded session.
func (c *ConciliatorClient) Process(ctx context.Context, req domain.ProcessRequest) error {
	path := fmt.Sprintf("%s/process/%s", conciliatorPrefix, url.PathEscape(req.SessionID))
	return c.rest.doJSON(ctx, http.MethodPost, path, req, nil)
}

// Results fetches the outcome of a session. It returns domain.ErrNotReady while
// the backend is still processing, whether it signals that with a 400 or with
// a pending status body.
func (c *ConciliatorClient) Results(ctx context.Context, sessionID string) (*domain.Results, error) {
	path := fmt.Sprintf("%s/results/%s", conciliatorPrefix, url.PathEscape(sessionID))
	var out domain.Results
	err := c.rest.doJSON(ctx, http.MethodGet, path, nil, &out)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest {
		return nil, domain.ErrNotReady
	}
	if err != nil {
		return nil, err
	}
	if out.Status == "error" {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionFailed, out.Message)
	}
	if !out.Complete() {
		return nil, domain.ErrNotReady
	}
	return &out, nil
}

// Download streams a backend-generated report ("xlsx" or "csv") into w and
// returns the file name the backend suggests.
func (c *ConciliatorClient) Download(ctx context.Context, sessionID, reportType string, w io.Writer) (string, error) {
	path := fmt.Sprintf("%s/download/%s/%s", conciliatorPrefix, url.PathEscape(sessionID), url.PathEscape(reportType))
	req, err := c.rest.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.rest.send(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if _, err := io.Copy(w, resp.Body); err != nil {
		return "", fmt.Errorf("could not write report: %w", err)
	}
	name := fmt.Sprintf("conciliacion_%s.%s", sessionID, reportType)
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil && params["filename"] != "" {
		name = params["filename"]
	}
	return name, nil
}

// DeleteSession discards a session and its uploaded files on the backend.
func (c *ConciliatorClient) DeleteSession(ctx context.Context, sessionID string) error {
	path := fmt.Sprintf("%s/session/%s", conciliatorPrefix, url.PathEscape(sessionID))
	return c.rest.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

// Subscribe opens the progress feed of a session. The channel is closed when
// the feed ends or ctx is cancelled.
func (c *ConciliatorClient) Subscribe(ctx context.Context, sessionID string) (<-chan domain.ProgressEvent, error) {
	header := http.Header{}
	if token := c.rest.creds.Token(); token != "" {
		header.Set("Authorization", "Bearer "+token)
	}
	conn, _, err := c.dialer.DialContext(ctx, c.wsURL+"/"+url.PathEscape(sessionID), header)
	if err != nil {
		return nil, fmt.Errorf("could not open progress feed: %w", err)
	}

	events := make(chan domain.ProgressEvent)
	go c.readFeed(ctx, conn, events)
	return events, nil
}

func (c *ConciliatorClient) readFeed(ctx context.Context, conn *websocket.Conn, events chan<- domain.ProgressEvent) {
	log := zap.L().With(zap.String("component", "progress_feed"))
	done := make(chan struct{})
	defer close(events)
	defer close(done)
	defer conn.Close()

	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		var ev domain.ProgressEvent
		if err := conn.ReadJSON(&ev); err != nil {
			if ctx.Err() == nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug("gateway: progress feed closed", zap.Error(err))
			}
			return
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return
		}
	}
}
