package domain

import (
	"encoding/json"
	"fmt"
)

// PriceTable maps a product size to its unit price.
type PriceTable map[ProductSize]float64

// Prices is the per-client, per-branch price list plus the per-client default tier.
// It serializes as {"default": {client: table}, client: {branch: table}}.
type Prices struct {
	Defaults map[ClientType]PriceTable
	Branches map[ClientType]map[string]PriceTable
}

const defaultTierKey = "default"

// Branch returns the table of a branch, or nil.
func (p Prices) Branch(client ClientType, branch string) PriceTable {
	return p.Branches[client][branch]
}

// Default returns the default tier of a client, or nil.
func (p Prices) Default(client ClientType) PriceTable {
	return p.Defaults[client]
}

// SetBranchPrice sets one price, allocating the nested maps as needed.
func (p *Prices) SetBranchPrice(client ClientType, branch string, size ProductSize, price float64) {
	if p.Branches == nil {
		p.Branches = make(map[ClientType]map[string]PriceTable)
	}
	if p.Branches[client] == nil {
		p.Branches[client] = make(map[string]PriceTable)
	}
	if p.Branches[client][branch] == nil {
		p.Branches[client][branch] = make(PriceTable)
	}
	p.Branches[client][branch][size] = price
}

// Clone returns a deep copy.
func (p Prices) Clone() Prices {
	c := Prices{
		Defaults: make(map[ClientType]PriceTable, len(p.Defaults)),
		Branches: make(map[ClientType]map[string]PriceTable, len(p.Branches)),
	}
	for client, table := range p.Defaults {
		c.Defaults[client] = table.clone()
	}
	for client, branches := range p.Branches {
		c.Branches[client] = make(map[string]PriceTable, len(branches))
		for branch, table := range branches {
			c.Branches[client][branch] = table.clone()
		}
	}
	return c
}

func (t PriceTable) clone() PriceTable {
	if t == nil {
		return nil
	}
	c := make(PriceTable, len(t))
	for k, v := range t {
		c[k] = v
	}
	return c
}

func (p Prices) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(p.Branches)+1)
	defaults := p.Defaults
	if defaults == nil {
		defaults = map[ClientType]PriceTable{}
	}
	out[defaultTierKey] = defaults
	for client, branches := range p.Branches {
		out[string(client)] = branches
	}
	return json.Marshal(out)
}

func (p *Prices) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	result := Prices{
		Defaults: make(map[ClientType]PriceTable),
		Branches: make(map[ClientType]map[string]PriceTable),
	}
	for key, msg := range raw {
		if key == defaultTierKey {
			if err := json.Unmarshal(msg, &result.Defaults); err != nil {
				return fmt.Errorf("could not decode default prices: %w", err)
			}
			continue
		}
		var branches map[string]PriceTable
		if err := json.Unmarshal(msg, &branches); err != nil {
			return fmt.Errorf("could not decode prices for %s: %w", key, err)
		}
		result.Branches[ClientType(key)] = branches
	}
	*p = result
	return nil
}

// Catalog is the process-wide configuration of branches, prices and review policy.
type Catalog struct {
	Sucursales              map[ClientType][]string `json:"sucursales"`
	Precios                 Prices                  `json:"precios"`
	DarkMode                bool                    `json:"darkMode"`
	AllowHighConfidenceEdit bool                    `json:"allowHighConfidenceEdit"`
	MinConfidenceThreshold  float64                 `json:"minConfidenceThreshold"`
}

// CatalogPatch is a top-level overwrite: every non-nil field replaces the
// catalog's value wholesale.
type CatalogPatch struct {
	Sucursales              map[ClientType][]string `json:"sucursales,omitempty"`
	Precios                 *Prices                 `json:"precios,omitempty"`
	DarkMode                *bool                   `json:"darkMode,omitempty"`
	AllowHighConfidenceEdit *bool                   `json:"allowHighConfidenceEdit,omitempty"`
	MinConfidenceThreshold  *float64                `json:"minConfidenceThreshold,omitempty"`
}

// Apply returns a copy of c with the patch merged in.
func (c Catalog) Apply(p CatalogPatch) Catalog {
	out := c.Clone()
	if p.Sucursales != nil {
		out.Sucursales = cloneSucursales(p.Sucursales)
	}
	if p.Precios != nil {
		out.Precios = p.Precios.Clone()
	}
	if p.DarkMode != nil {
		out.DarkMode = *p.DarkMode
	}
	if p.AllowHighConfidenceEdit != nil {
		out.AllowHighConfidenceEdit = *p.AllowHighConfidenceEdit
	}
	if p.MinConfidenceThreshold != nil {
		out.MinConfidenceThreshold = *p.MinConfidenceThreshold
	}
	return out
}

// Clone returns a deep copy.
func (c Catalog) Clone() Catalog {
	out := c
	out.Sucursales = cloneSucursales(c.Sucursales)
	out.Precios = c.Precios.Clone()
	return out
}

func cloneSucursales(in map[ClientType][]string) map[ClientType][]string {
	out := make(map[ClientType][]string, len(in))
	for client, names := range in {
		out[client] = append([]string(nil), names...)
	}
	return out
}
