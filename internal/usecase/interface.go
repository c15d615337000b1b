package usecase

import (
	"context"
	"io"

	"santiice/internal/domain"
)

// TicketGateway is the OCR ticket backend.
//
//go:generate mockgen -destination=mocks/mock_gateways.go -source=interface.go
type TicketGateway interface {
	Process(ctx context.Context, paths []string) (*domain.ProcessResult, error)
	Confirm(ctx context.Context, tickets []domain.FormattedTicket) (*domain.ConfirmResult, error)
}

// AuthGateway is the authentication backend. SetToken installs the bearer
// token used by every other gateway.
type AuthGateway interface {
	Login(ctx context.Context, username, password string) (*domain.AuthToken, error)
	Me(ctx context.Context) (*domain.User, error)
	Logout(ctx context.Context) error
	SetToken(token string)
}

// ConciliatorGateway is the reconciliation backend and its progress feed.
type ConciliatorGateway interface {
	Clients(ctx context.Context) ([]domain.ClientInfo, error)
	CreateSession(ctx context.Context) (string, error)
	Upload(ctx context.Context, sessionID string, kind domain.FileKind, path string) error
	Process(ctx context.Context, req domain.ProcessRequest) error
	Results(ctx context.Context, sessionID string) (*domain.Results, error)
	Subscribe(ctx context.Context, sessionID string) (<-chan domain.ProgressEvent, error)
	Download(ctx context.Context, sessionID, reportType string, w io.Writer) (string, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

// Store is durable key/value storage. Load returns domain.ErrNotFound for a missing key.
type Store interface {
	Load(ctx context.Context, key string, dst interface{}) error
	Save(ctx context.Context, key string, v interface{}) error
	Delete(ctx context.Context, key string) error
}

// PriceResolver answers unit prices. Implementations never fail and always
// return a usable price.
type PriceResolver interface {
	Price(client domain.ClientType, branch string, size domain.ProductSize) float64
}

// Exporter writes spreadsheets.
type Exporter interface {
	RecordsCSV(w io.Writer, records []domain.Record) error
	RecordsXLSX(w io.Writer, records []domain.Record) error
	TicketsXLSX(w io.Writer, tickets []domain.FormattedTicket) error
}
