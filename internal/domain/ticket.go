package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrUnknownField  = errors.New("unknown ticket field")
	ErrUnknownClient = errors.New("unknown client type")
)

// ClientType selects the field set and product shape of a ticket.
type ClientType string

const (
	ClientOXXO   ClientType = "OXXO"
	ClientKIOSKO ClientType = "KIOSKO"
)

// ClientTypes lists the supported clients in display order.
var ClientTypes = []ClientType{ClientOXXO, ClientKIOSKO}

// Valid reports whether c is a supported client.
func (c ClientType) Valid() bool {
	return c == ClientOXXO || c == ClientKIOSKO
}

// ParseClientType validates a client name.
func ParseClientType(s string) (ClientType, error) {
	c := ClientType(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownClient, s)
	}
	return c, nil
}

// TicketStatus is the processing outcome of a ticket.
type TicketStatus string

const (
	StatusProcessed TicketStatus = "processed"
	StatusError     TicketStatus = "error"
	StatusConfirmed TicketStatus = "confirmed"
)

// SourceManual marks tickets typed in by an operator.
const SourceManual = "manual"

// TicketField names an editable ticket-level field.
type TicketField string

const (
	FieldSucursal        TicketField = "sucursal"
	FieldFecha           TicketField = "fecha"
	FieldRemision        TicketField = "remision"
	FieldPedidoAdicional TicketField = "pedido_adicional"
	FieldFolio           TicketField = "folio"
	FieldProductos       TicketField = "productos"
)

// Ticket is one scanned or manually entered receipt.
type Ticket struct {
	ID              string
	ClientType      ClientType
	Sucursal        Optional
	Fecha           Optional
	Remision        Optional // OXXO only
	PedidoAdicional Optional // OXXO only
	Folio           Optional // KIOSKO only
	Products        []Product
	Confidence      float64
	Status          TicketStatus
	Error           string
	Source          string
	ImageBase64     string
	Filename        string
}

// Product is one SKU line. Label and Quantity map to descripcion/cantidad for
// OXXO and tipoProducto/numeroPiezasCompradas for KIOSKO.
type Product struct {
	ID       string
	Label    string
	Quantity int
	UnitCost float64
}

// Size classifies the product by its label.
func (p Product) Size() ProductSize {
	return ClassifySize(p.Label)
}

// Line is the denormalized view of a product as the backend expects it, with
// the ticket-level fields copied in.
type Line struct {
	Product
	Sucursal        Optional
	Fecha           Optional
	Remision        Optional
	PedidoAdicional Optional
	Folio           Optional
	NombreTienda    Optional
}

// Field returns the value of a ticket-level field.
func (t Ticket) Field(field TicketField) (Optional, error) {
	switch field {
	case FieldSucursal:
		return t.Sucursal, nil
	case FieldFecha:
		return t.Fecha, nil
	case FieldRemision:
		return t.Remision, nil
	case FieldPedidoAdicional:
		return t.PedidoAdicional, nil
	case FieldFolio:
		return t.Folio, nil
	}
	return None(), fmt.Errorf("%w: %q", ErrUnknownField, field)
}

// usesField reports whether the ticket's client type carries a reference field.
func (t Ticket) usesField(field TicketField) bool {
	switch field {
	case FieldRemision, FieldPedidoAdicional:
		return t.ClientType == ClientOXXO
	case FieldFolio:
		return t.ClientType == ClientKIOSKO
	}
	return true
}

// SetField assigns a ticket-level field. Products are updated through
// ReplaceProducts. Reference fields of the other client type are rejected.
func (t *Ticket) SetField(field TicketField, value string) error {
	if !t.usesField(field) {
		return fmt.Errorf("%w: %q is not used by %s tickets", ErrUnknownField, field, t.ClientType)
	}
	v := Some(value)
	switch field {
	case FieldSucursal:
		t.Sucursal = v
	case FieldFecha:
		t.Fecha = v
	case FieldRemision:
		t.Remision = v
	case FieldPedidoAdicional:
		t.PedidoAdicional = v
	case FieldFolio:
		t.Folio = v
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// RequiredFields lists the fields that must be set before the ticket can be confirmed.
func (t Ticket) RequiredFields() []TicketField {
	fields := []TicketField{FieldSucursal, FieldFecha}
	switch t.ClientType {
	case ClientOXXO:
		fields = append(fields, FieldRemision, FieldPedidoAdicional)
	case ClientKIOSKO:
		fields = append(fields, FieldFolio)
	}
	return fields
}

// Lines derives the per-product view with the ticket-level fields copied onto each line.
func (t Ticket) Lines() []Line {
	lines := make([]Line, 0, len(t.Products))
	for _, p := range t.Products {
		line := Line{
			Product:  p,
			Sucursal: t.Sucursal,
			Fecha:    t.Fecha,
		}
		switch t.ClientType {
		case ClientOXXO:
			line.Remision = t.Remision
			line.PedidoAdicional = t.PedidoAdicional
		case ClientKIOSKO:
			line.Folio = t.Folio
			line.NombreTienda = t.Sucursal
		}
		lines = append(lines, line)
	}
	return lines
}

// Clone returns a deep copy.
func (t Ticket) Clone() Ticket {
	c := t
	c.Products = append([]Product(nil), t.Products...)
	return c
}
