package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"santiice/internal/domain"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConciliatorClient_SessionLifecycle(t *testing.T) {
	var uploads []string
	var processed domain.ProcessRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/conciliator/session":
			io.WriteString(w, `{"session_id": "s-1"}`)
		case r.Method == http.MethodPost && r.URL.Path == "/api/conciliator/upload/s-1":
			if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
				return
			}
			assert.Equal(t, r.URL.Query().Get("file_type"), r.FormValue("file_type"))
			_, fh, err := r.FormFile("file")
			if assert.NoError(t, err) {
				uploads = append(uploads, r.FormValue("file_type")+":"+fh.Filename)
			}
			io.WriteString(w, `{"message": "Archivo subido exitosamente"}`)
		case r.Method == http.MethodPost && r.URL.Path == "/api/conciliator/process/s-1":
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&processed))
			io.WriteString(w, `{"message": "Procesamiento iniciado"}`)
		case r.Method == http.MethodDelete && r.URL.Path == "/api/conciliator/session/s-1":
			io.WriteString(w, `{"message": "ok"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"detail": "Sesión no encontrada"}`)
		}
	}))
	defer srv.Close()

	client := NewConciliatorClient(srv.URL, "", srv.Client(), nil)
	ctx := context.Background()

	id, err := client.CreateSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "s-1", id)

	require.NoError(t, client.Upload(ctx, id, domain.FileSource, writeTempFile(t, "ventas.xlsx", "x")))
	require.NoError(t, client.Upload(ctx, id, domain.FileLooker, writeTempFile(t, "looker.csv", "a,b")))
	assert.Equal(t, []string{"source:ventas.xlsx", "looker:looker.csv"}, uploads)

	req := domain.ProcessRequest{
		SessionID:  id,
		ClientType: "OXXO",
		DateRange:  domain.DateRange{StartDate: "2025-09-01", EndDate: "2025-09-30"},
	}
	require.NoError(t, client.Process(ctx, req))
	assert.Equal(t, req, processed)

	require.NoError(t, client.DeleteSession(ctx, id))

	err = client.DeleteSession(ctx, "missing")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Sesión no encontrada", apiErr.Message)
}

func TestConciliatorClient_Results(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
		want    int
	}{
		{
			name:    "400 while processing",
			status:  http.StatusBadRequest,
			body:    `{"detail": "Procesamiento no completado"}`,
			wantErr: domain.ErrNotReady,
		},
		{
			name:    "pending status body",
			status:  http.StatusOK,
			body:    `{"status": "processing", "message": "Procesamiento en curso..."}`,
			wantErr: domain.ErrNotReady,
		},
		{
			name:    "failed session",
			status:  http.StatusOK,
			body:    `{"status": "error", "message": "archivo vacío"}`,
			wantErr: domain.ErrSessionFailed,
		},
		{
			name:   "completed",
			status: http.StatusOK,
			body: `{"session_id": "s-1", "success": true,
				"summary": {"total_records": 2, "exact_matches": 1, "reconciliation_rate": 50},
				"records": [{"id": "R1", "client_value": 10, "looker_value": 10, "difference": 0, "status": "EXACT_MATCH", "category": "Conciliado"},
				            {"id": "R2", "client_value": 10, "looker_value": 0, "difference": 10, "status": "MISSING_IN_LOOKER", "category": "Faltante"}]}`,
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/conciliator/results/s-1", r.URL.Path)
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			client := NewConciliatorClient(srv.URL, "", srv.Client(), nil)
			got, err := client.Results(context.Background(), "s-1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got.Records, tt.want)
			assert.Equal(t, 2, got.Summary.TotalRecords)
		})
	}
}

func TestConciliatorClient_ClientsAndDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/conciliator/clients":
			io.WriteString(w, `[{"id": "OXXO", "name": "OXXO", "tolerances": {"percentage": 5, "absolute": 50}, "capabilities": ["grouping"]}]`)
		case "/api/conciliator/download/s-1/csv":
			w.Header().Set("Content-Disposition", `attachment; filename="conciliacion_oxxo_20250901.csv"`)
			io.WriteString(w, "a,b\n")
		default:
			w.WriteHeader(http.StatusBadRequest)
			io.WriteString(w, `{"detail": "Tipo de reporte no soportado"}`)
		}
	}))
	defer srv.Close()

	client := NewConciliatorClient(srv.URL, "", srv.Client(), nil)
	ctx := context.Background()

	clients, err := client.Clients(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, 50.0, clients[0].Tolerances.Absolute)

	var buf bytes.Buffer
	name, err := client.Download(ctx, "s-1", "csv", &buf)
	require.NoError(t, err)
	assert.Equal(t, "conciliacion_oxxo_20250901.csv", name)
	assert.Equal(t, "a,b\n", buf.String())

	_, err = client.Download(ctx, "s-1", "pdf", &buf)
	assert.Error(t, err)
}

func TestConciliatorClient_Subscribe(t *testing.T) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/conciliator/ws/s-1", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		conn.WriteJSON(domain.ProgressEvent{Type: domain.EventProgress, Step: "init", Progress: 10, Message: "Iniciando"})
		conn.WriteJSON(domain.ProgressEvent{Type: domain.EventCompleted, Result: &domain.Results{Success: true, Summary: &domain.Summary{TotalRecords: 3}}})
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	}))
	defer srv.Close()

	creds := &Credentials{}
	creds.SetToken("tok")
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/conciliator/ws"
	client := NewConciliatorClient(srv.URL, wsURL, srv.Client(), creds)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	events, err := client.Subscribe(ctx, "s-1")
	require.NoError(t, err)

	var got []domain.ProgressEvent
	for ev := range events {
		got = append(got, ev)
	}
	require.Len(t, got, 2)
	assert.Equal(t, "init", got[0].Step)
	assert.Equal(t, domain.EventCompleted, got[1].Type)
	assert.True(t, got[1].Result.Complete())
}

func TestConciliatorClient_SubscribeCancel(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		// hold the connection open until the client goes away
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	client := NewConciliatorClient(srv.URL, "ws"+strings.TrimPrefix(srv.URL, "http"), srv.Client(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	events, err := client.Subscribe(ctx, "s-2")
	require.NoError(t, err)

	cancel()
	select {
	case _, ok := <-events:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("feed was not closed after cancel")
	}
}

func TestConciliatorClient_SubscribeUnavailable(t *testing.T) {
	client := NewConciliatorClient("http://127.0.0.1:1", "ws://127.0.0.1:1/ws", nil, nil)
	_, err := client.Subscribe(context.Background(), "s-1")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrNotReady))
}
