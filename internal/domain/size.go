package domain

import "strings"

// ProductSize is the bag size a product label encodes.
type ProductSize string

const (
	Size5kg     ProductSize = "5kg"
	Size15kg    ProductSize = "15kg"
	SizeUnknown ProductSize = ""
)

// ProductSizes lists the sizes the catalog prices.
var ProductSizes = []ProductSize{Size5kg, Size15kg}

var (
	markers15kg = []string{"15KG", "15kg", "15 kg"}
	markers5kg  = []string{"5K", "5kg", "5 kg"}
)

// ClassifySize reads the size from a free-text label. 15kg is checked first
// because its markers contain the 5kg ones.
func ClassifySize(label string) ProductSize {
	if containsAny(label, markers15kg) {
		return Size15kg
	}
	if containsAny(label, markers5kg) {
		return Size5kg
	}
	return SizeUnknown
}

// ParseProductSize accepts "5kg"/"15kg" (any case, optional space).
func ParseProductSize(s string) (ProductSize, bool) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "")) {
	case "5kg", "5":
		return Size5kg, true
	case "15kg", "15":
		return Size15kg, true
	}
	return SizeUnknown, false
}

// ProductLabel is the label used for products added by an operator.
func ProductLabel(client ClientType, size ProductSize) string {
	if client == ClientOXXO {
		if size == Size5kg {
			return "BOLSA HIELO SANTI 5K"
		}
		return "HIELO SANTI ICE 15KG"
	}
	if size == Size5kg {
		return "Bolsas de 5kg"
	}
	return "Bolsas de 15kg"
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
