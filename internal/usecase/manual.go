package usecase

import (
	"fmt"
	"sort"
	"strings"

	"santiice/internal/domain"

	"github.com/google/uuid"
)

// ManualProduct is one line typed in by the operator.
type ManualProduct struct {
	Size     domain.ProductSize
	Quantity int
}

// ManualEntry is a ticket typed in by the operator instead of scanned.
type ManualEntry struct {
	Client   domain.ClientType
	Fecha    string
	Sucursal string
	Remision string
	Pedido   string
	Folio    string
	Products []ManualProduct
}

// ValidationError maps form fields to the message shown next to them.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return "Por favor complete todos los campos obligatorios (" + strings.Join(parts, "; ") + ")"
}

// Validate checks the mandatory fields: client, date, branch and the first product's quantity.
func (m ManualEntry) Validate() error {
	fields := make(map[string]string)
	if !m.Client.Valid() {
		fields["cliente"] = "Cliente es obligatorio"
	}
	if strings.TrimSpace(m.Fecha) == "" {
		fields["fecha"] = "Fecha es obligatoria"
	}
	if strings.TrimSpace(m.Sucursal) == "" {
		fields["sucursal"] = "Sucursal es obligatoria"
	}
	if len(m.Products) == 0 || m.Products[0].Quantity <= 0 {
		fields["cantidad"] = "Cantidad es obligatoria"
	}
	for i, p := range m.Products {
		if p.Size != domain.Size5kg && p.Size != domain.Size15kg {
			fields[fmt.Sprintf("productos[%d].tipo", i)] = "Tipo de producto inválido"
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// NewManualTicketID returns an id in the manual-<unique> form.
func NewManualTicketID() string {
	return "manual-" + uuid.New().String()
}

// Ticket builds the normalized ticket. Lines without a quantity are dropped.
// Products are priced through prices.
func (m ManualEntry) Ticket(id string, prices PriceResolver) domain.Ticket {
	t := domain.Ticket{
		ID:         id,
		ClientType: m.Client,
		Sucursal:   domain.Some(m.Sucursal),
		Fecha:      domain.Some(m.Fecha),
		Confidence: 100,
		Status:     domain.StatusProcessed,
		Source:     domain.SourceManual,
	}
	switch m.Client {
	case domain.ClientOXXO:
		t.Remision = domain.Some(m.Remision)
		t.PedidoAdicional = domain.Some(m.Pedido)
	case domain.ClientKIOSKO:
		t.Folio = domain.Some(m.Folio)
	}
	for i, p := range m.Products {
		if p.Quantity <= 0 {
			continue
		}
		t.Products = append(t.Products, domain.Product{
			ID:       fmt.Sprintf("%s-%d", id, i),
			Label:    domain.ProductLabel(m.Client, p.Size),
			Quantity: p.Quantity,
			UnitCost: prices.Price(m.Client, m.Sucursal, p.Size),
		})
	}
	return t
}
