package domain

// ManualReferencePrefix prefixes the placeholder used for missing reference numbers.
const ManualReferencePrefix = "MANUAL-"

// FormattedProduct is one product line in the /confirm-tickets contract.
type FormattedProduct struct {
	ID                    string      `json:"id,omitempty"`
	Fecha                 string      `json:"fecha"`
	Sucursal              string      `json:"sucursal"`
	Cliente               ClientType  `json:"cliente"`
	Remision              string      `json:"remision"`
	PedidoAdicional       string      `json:"pedido_adicional"`
	Folio                 string      `json:"folio"`
	Descripcion           string      `json:"descripcion"`
	TipoProducto          string      `json:"tipoProducto"`
	Tipo                  ProductSize `json:"tipo"`
	Costo                 float64     `json:"costo"`
	Cantidad              int         `json:"cantidad"`
	NumeroPiezasCompradas int         `json:"numeroPiezasCompradas"`
	TicketManualID        string      `json:"ticket_manual_id"`
	NombreTienda          string      `json:"nombreTienda"`
}

// FormattedTicket is one ticket in the /confirm-tickets contract.
type FormattedTicket struct {
	ID              string             `json:"id"`
	Filename        string             `json:"filename"`
	Sucursal        string             `json:"sucursal"`
	Fecha           string             `json:"fecha"`
	SucursalType    ClientType         `json:"sucursal_type"`
	Confidence      float64            `json:"confidence"`
	Status          TicketStatus       `json:"status"`
	Remision        string             `json:"remision"`
	PedidoAdicional string             `json:"pedido_adicional"`
	Folio           string             `json:"folio"`
	PrecioTotal     float64            `json:"precioTotal"`
	Productos       []FormattedProduct `json:"productos"`
}

// ProcessResult is the /process-tickets response.
type ProcessResult struct {
	Results   []Ticket `json:"results"`
	Processed int      `json:"processed"`
	Success   bool     `json:"success"`
}

// ConfirmItem is the per-ticket outcome of a confirmation.
type ConfirmItem struct {
	ID         string `json:"id"`
	Filename   string `json:"filename"`
	Status     string `json:"status"`
	Message    string `json:"message"`
	Error      string `json:"error,omitempty"`
	Duplicated bool   `json:"duplicated,omitempty"`
}

// ConfirmSummary counts confirmation outcomes.
type ConfirmSummary struct {
	Total      int `json:"total"`
	Success    int `json:"success"`
	Errors     int `json:"errors"`
	Duplicated int `json:"duplicated"`
}

// ConfirmResult is the /confirm-tickets response after sanitization.
type ConfirmResult struct {
	Success bool           `json:"success"`
	Results []ConfirmItem  `json:"results"`
	Summary ConfirmSummary `json:"summary"`
	Error   string         `json:"error,omitempty"`
}
