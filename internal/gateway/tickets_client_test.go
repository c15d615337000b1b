package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"santiice/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestTicketsClient_Process(t *testing.T) {
	var gotParts []string
	var gotTypes []string
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/process-tickets", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		for _, fh := range r.MultipartForm.File["files"] {
			gotParts = append(gotParts, fh.Filename)
			gotTypes = append(gotTypes, fh.Header.Get("Content-Type"))
		}
		io.WriteString(w, `{"success": true, "processed": 1, "results": [
			{"id": "t1", "filename": "a.jpg", "status": "processed", "sucursal_type": "OXXO",
			 "sucursal": "Urias", "fecha": "2025-09-01", "remision": "No detectada", "pedido_adicional": "9",
			 "productos": [{"descripcion": "HIELO SANTI ICE 15KG", "cantidad": 2, "costo": 37.5}]}
		]}`)
	}))
	defer srv.Close()

	creds := &Credentials{}
	creds.SetToken("tok")
	client := NewTicketsClient(srv.URL, srv.Client(), creds)

	jpg := writeTempFile(t, "a.jpg", "jpeg-bytes")
	png := writeTempFile(t, "b.PNG", "png-bytes")
	got, err := client.Process(context.Background(), []string{jpg, png})
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, []string{"a.jpg", "b.PNG"}, gotParts)
	assert.Equal(t, []string{"image/jpeg", "image/png"}, gotTypes)
	assert.True(t, got.Success)
	require.Len(t, got.Results, 1)
	assert.False(t, got.Results[0].Remision.IsSet())
	assert.Equal(t, "9", got.Results[0].PedidoAdicional.String())
	assert.Equal(t, 2, got.Results[0].Products[0].Quantity)
}

func TestTicketsClient_ProcessMissingFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewTicketsClient(srv.URL, srv.Client(), nil)
	_, err := client.Process(context.Background(), []string{filepath.Join(t.TempDir(), "nope.jpg")})
	assert.Error(t, err)
}

func TestTicketsClient_Confirm(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		response string
		want     *domain.ConfirmResult
		wantErr  bool
	}{
		{
			name:   "messages are sanitized",
			status: http.StatusOK,
			response: `{"success": true,
				"results": [
					{"id": "1", "filename": "a.jpg", "status": "success", "message": "Procesado correctamente", "duplicated": true},
					{"id": "2", "filename": "b.jpg", "status": "error", "message": {"detail": [{"msg": "bad row"}]}, "error": ["x", {"msg": "y"}]}
				],
				"summary": {"total": 2, "success": 1, "errors": 1, "duplicated": 1}}`,
			want: &domain.ConfirmResult{
				Success: true,
				Results: []domain.ConfirmItem{
					{ID: "1", Filename: "a.jpg", Status: "success", Message: "Procesado correctamente", Duplicated: true},
					{ID: "2", Filename: "b.jpg", Status: "error", Message: "bad row", Error: "x, y"},
				},
				Summary: domain.ConfirmSummary{Total: 2, Success: 1, Errors: 1, Duplicated: 1},
			},
		},
		{
			name:     "missing summary defaults to zero",
			status:   http.StatusOK,
			response: `{"success": false}`,
			want: &domain.ConfirmResult{
				Results: []domain.ConfirmItem{},
			},
		},
		{
			name:     "validation failure",
			status:   http.StatusUnprocessableEntity,
			response: `{"detail": [{"msg": "field required"}]}`,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body map[string][]map[string]interface{}
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/confirm-tickets", r.URL.Path)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.response)
			}))
			defer srv.Close()

			client := NewTicketsClient(srv.URL, srv.Client(), nil)
			got, err := client.Confirm(context.Background(), []domain.FormattedTicket{{ID: "1", Filename: "a.jpg"}})
			if tt.wantErr {
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, "field required", apiErr.Message)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			require.Len(t, body["tickets"], 1)
			assert.Equal(t, "1", body["tickets"][0]["id"])
		})
	}
}

func TestAuthClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			var req loginRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			if req.Password != "secret" {
				w.WriteHeader(http.StatusUnauthorized)
				io.WriteString(w, `{"detail": "Usuario o contraseña incorrectos"}`)
				return
			}
			io.WriteString(w, `{"access_token": "jwt", "token_type": "bearer", "user": {"username": "admin", "role": "admin", "permissions": ["tickets"]}}`)
		case "/auth/me":
			if r.Header.Get("Authorization") != "Bearer jwt" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			io.WriteString(w, `{"username": "admin", "role": "admin", "permissions": ["tickets", "config"], "is_active": true}`)
		case "/auth/logout":
			io.WriteString(w, `{"message": "Sesión cerrada exitosamente"}`)
		}
	}))
	defer srv.Close()

	creds := &Credentials{}
	client := NewAuthClient(srv.URL, srv.Client(), creds)
	ctx := context.Background()

	_, err := client.Login(ctx, "admin", "wrong")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Usuario o contraseña incorrectos", apiErr.Message)

	tok, err := client.Login(ctx, "admin", "secret")
	require.NoError(t, err)
	assert.Equal(t, "jwt", tok.AccessToken)
	assert.Equal(t, "jwt", creds.Token())

	me, err := client.Me(ctx)
	require.NoError(t, err)
	assert.True(t, me.Can(domain.PermissionConfig))
	assert.False(t, me.Can(domain.PermissionConciliator))

	require.NoError(t, client.Logout(ctx))
	assert.Empty(t, creds.Token())
}
