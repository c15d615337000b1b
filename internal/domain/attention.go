package domain

import "strings"

// Markers OCR leaves in labels it could not map to a catalog product.
var unknownProductMarkers = []string{
	"DESCONOCIDO",
	"PRODUCTO DESCONOCIDO",
	"Producto con importe",
}

const bareProductLabel = "Producto"

// IsUnknownProduct reports whether a label marks an unrecognised product.
// Matching is case-sensitive.
func IsUnknownProduct(label string) bool {
	if label == bareProductLabel {
		return true
	}
	for _, m := range unknownProductMarkers {
		if strings.Contains(label, m) {
			return true
		}
	}
	return false
}

// NeedsAttention reports whether a ticket must be corrected before it can be
// confirmed. It reads live state and must not be cached.
func NeedsAttention(t Ticket) bool {
	return hasEmptyRequiredField(t) || hasInvalidProducts(t)
}

func hasEmptyRequiredField(t Ticket) bool {
	for _, f := range t.RequiredFields() {
		v, err := t.Field(f)
		if err != nil || !v.IsSet() {
			return true
		}
	}
	return false
}

func hasInvalidProducts(t Ticket) bool {
	if len(t.Products) == 0 {
		return true
	}
	for _, p := range t.Products {
		if p.Quantity == 0 || IsUnknownProduct(p.Label) {
			return true
		}
	}
	return false
}

// AttentionCounts counts processed tickets needing attention per client.
func AttentionCounts(tickets []Ticket) map[ClientType]int {
	counts := make(map[ClientType]int, len(ClientTypes))
	for _, c := range ClientTypes {
		counts[c] = 0
	}
	for _, t := range tickets {
		if t.Status == StatusProcessed && NeedsAttention(t) {
			counts[t.ClientType]++
		}
	}
	return counts
}

// CanEditQuantity is the display policy for quantity editing. It does not
// restrict other mutation paths.
func CanEditQuantity(t Ticket, c Catalog) bool {
	return c.AllowHighConfidenceEdit || t.Confidence < c.MinConfidenceThreshold
}
