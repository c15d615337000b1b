package usecase

import (
	"santiice/internal/domain"
	"santiice/internal/pricing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SubmissionFormatter turns reviewed tickets into the /confirm-tickets payload.
type SubmissionFormatter struct {
	prices PriceResolver
}

// NewSubmissionFormatter prices products through prices.
func NewSubmissionFormatter(prices PriceResolver) *SubmissionFormatter {
	return &SubmissionFormatter{prices: prices}
}

// Format formats every ticket. It never fails.
func (f *SubmissionFormatter) Format(tickets []domain.Ticket) []domain.FormattedTicket {
	out := make([]domain.FormattedTicket, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, f.FormatTicket(t))
	}
	return out
}

// FormatTicket denormalizes one ticket. Empty references are replaced with a
// MANUAL-<id> placeholder so the backend always receives strings.
func (f *SubmissionFormatter) FormatTicket(t domain.Ticket) domain.FormattedTicket {
	placeholder := domain.ManualReferencePrefix + t.ID
	remision := t.Remision.Or(placeholder)
	pedido := t.PedidoAdicional.Or(placeholder)
	folio := t.Folio.Or(placeholder)
	sucursal := t.Sucursal.String()
	fecha := t.Fecha.String()

	filename := t.Filename
	if filename == "" {
		filename = "manual-" + t.ID + ".jpg"
	}

	total := decimal.Zero
	productos := make([]domain.FormattedProduct, 0, len(t.Products))
	for _, line := range t.Lines() {
		size := line.Size()
		price := f.price(t.ClientType, sucursal, size)
		total = total.Add(decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(line.Quantity))))

		productos = append(productos, domain.FormattedProduct{
			ID:                    line.ID,
			Fecha:                 fecha,
			Sucursal:              sucursal,
			Cliente:               t.ClientType,
			Remision:              remision,
			PedidoAdicional:       pedido,
			Folio:                 folio,
			Descripcion:           line.Label,
			TipoProducto:          line.Label,
			Tipo:                  size,
			Costo:                 price,
			Cantidad:              line.Quantity,
			NumeroPiezasCompradas: line.Quantity,
			TicketManualID:        t.ID,
			NombreTienda:          sucursal,
		})
	}

	precioTotal, _ := total.Float64()
	return domain.FormattedTicket{
		ID:              t.ID,
		Filename:        filename,
		Sucursal:        sucursal,
		Fecha:           fecha,
		SucursalType:    t.ClientType,
		Confidence:      100,
		Status:          domain.StatusConfirmed,
		Remision:        remision,
		PedidoAdicional: pedido,
		Folio:           folio,
		PrecioTotal:     precioTotal,
		Productos:       productos,
	}
}

func (f *SubmissionFormatter) price(client domain.ClientType, branch string, size domain.ProductSize) float64 {
	p := f.prices.Price(client, branch, size)
	if pricing.Usable(p) {
		return p
	}
	fallback := pricing.ClientDefault(client, size)
	zap.L().Warn("usecase: unusable price, using client default",
		zap.String("client", string(client)),
		zap.String("branch", branch),
		zap.String("size", string(size)),
		zap.Float64("price", p),
		zap.Float64("fallback", fallback))
	return fallback
}
