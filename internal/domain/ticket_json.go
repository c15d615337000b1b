package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ticketWire is the shape the OCR backend returns for a ticket.
type ticketWire struct {
	ID              string        `json:"id"`
	SucursalType    ClientType    `json:"sucursal_type"`
	Sucursal        Optional      `json:"sucursal"`
	Fecha           Optional      `json:"fecha"`
	Remision        Optional      `json:"remision"`
	PedidoAdicional Optional      `json:"pedido_adicional"`
	Folio           Optional      `json:"folio"`
	Productos       []productWire `json:"productos"`
	Confidence      float64       `json:"confidence"`
	Status          TicketStatus  `json:"status"`
	Error           string        `json:"error"`
	Tipo            string        `json:"tipo"`
	ImageBase64     string        `json:"image_base64"`
	Filename        string        `json:"filename"`
}

type productWire struct {
	ID                    string  `json:"id"`
	Descripcion           string  `json:"descripcion"`
	Cantidad              flexInt `json:"cantidad"`
	Costo                 flexNum `json:"costo"`
	TipoProducto          string  `json:"tipoProducto"`
	NumeroPiezasCompradas flexInt `json:"numeroPiezasCompradas"`
}

// UnmarshalJSON decodes the backend shape. Label and quantity field names are
// chosen by sucursal_type; denormalized copies on products are ignored since
// the ticket-level values are authoritative.
func (t *Ticket) UnmarshalJSON(data []byte) error {
	var w ticketWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*t = Ticket{
		ID:          w.ID,
		ClientType:  w.SucursalType,
		Sucursal:    w.Sucursal,
		Fecha:       w.Fecha,
		Confidence:  w.Confidence,
		Status:      w.Status,
		Error:       w.Error,
		Source:      w.Tipo,
		ImageBase64: w.ImageBase64,
		Filename:    w.Filename,
	}
	switch w.SucursalType {
	case ClientOXXO:
		t.Remision = w.Remision
		t.PedidoAdicional = w.PedidoAdicional
	case ClientKIOSKO:
		t.Folio = w.Folio
	}
	t.Products = make([]Product, 0, len(w.Productos))
	for _, p := range w.Productos {
		product := Product{ID: p.ID, UnitCost: float64(p.Costo)}
		if w.SucursalType == ClientKIOSKO {
			product.Label = p.TipoProducto
			product.Quantity = int(p.NumeroPiezasCompradas)
		} else {
			product.Label = p.Descripcion
			product.Quantity = int(p.Cantidad)
		}
		t.Products = append(t.Products, product)
	}
	return nil
}

// MarshalJSON encodes the ticket in the backend shape, with every product
// carrying the ticket-level fields.
func (t Ticket) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{
		"id":            t.ID,
		"sucursal_type": t.ClientType,
		"sucursal":      t.Sucursal,
		"fecha":         t.Fecha,
		"confidence":    t.Confidence,
		"status":        t.Status,
	}
	if t.Error != "" {
		out["error"] = t.Error
	}
	if t.Source != "" {
		out["tipo"] = t.Source
	}
	if t.ImageBase64 != "" {
		out["image_base64"] = t.ImageBase64
	}
	if t.Filename != "" {
		out["filename"] = t.Filename
	}
	switch t.ClientType {
	case ClientOXXO:
		out["remision"] = t.Remision
		out["pedido_adicional"] = t.PedidoAdicional
	case ClientKIOSKO:
		out["folio"] = t.Folio
	}

	productos := make([]map[string]interface{}, 0, len(t.Products))
	for _, line := range t.Lines() {
		p := map[string]interface{}{
			"sucursal": line.Sucursal,
			"fecha":    line.Fecha,
			"costo":    line.UnitCost,
		}
		if line.ID != "" {
			p["id"] = line.ID
		}
		if t.ClientType == ClientKIOSKO {
			p["tipoProducto"] = line.Label
			p["numeroPiezasCompradas"] = line.Quantity
			p["folio"] = line.Folio
			p["nombreTienda"] = line.NombreTienda
		} else {
			p["descripcion"] = line.Label
			p["cantidad"] = line.Quantity
			p["remision"] = line.Remision
			p["pedido_adicional"] = line.PedidoAdicional
		}
		productos = append(productos, p)
	}
	out["productos"] = productos
	return json.Marshal(out)
}

// flexInt decodes integers sent as numbers or numeric strings.
type flexInt int

func (n *flexInt) UnmarshalJSON(data []byte) error {
	f, err := parseFlexNumber(data)
	if err != nil {
		return fmt.Errorf("could not parse quantity %s: %w", data, err)
	}
	*n = flexInt(math.Round(f))
	return nil
}

// flexNum decodes prices sent as numbers or numeric strings.
type flexNum float64

func (n *flexNum) UnmarshalJSON(data []byte) error {
	f, err := parseFlexNumber(data)
	if err != nil {
		return fmt.Errorf("could not parse amount %s: %w", data, err)
	}
	*n = flexNum(f)
	return nil
}

func parseFlexNumber(data []byte) (float64, error) {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return 0, err
	}
	switch v := raw.(type) {
	case nil:
		return 0, nil
	case float64:
		return v, nil
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(v, ",", ""))
		if s == "" {
			return 0, nil
		}
		return strconv.ParseFloat(s, 64)
	}
	return 0, fmt.Errorf("unexpected type %T", raw)
}
