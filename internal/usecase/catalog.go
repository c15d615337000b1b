package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"santiice/internal/domain"
	"santiice/internal/pricing"

	"go.uber.org/zap"
)

// CatalogKey is the storage key of the persisted catalog.
const CatalogKey = "santiice-config"

var (
	ErrEmptyName         = errors.New("branch name is empty")
	ErrDuplicateSucursal = errors.New("branch already registered")
	ErrInvalidPrice      = errors.New("price must be a positive number")
)

// BranchPrices is a branch with its resolved prices.
type BranchPrices struct {
	Name   string
	Prices domain.PriceTable
	// Custom reports whether the branch has its own price table.
	Custom bool
}

// CatalogUseCase owns the process-wide catalog and persists every change.
type CatalogUseCase struct {
	store   Store
	mu      sync.RWMutex
	catalog domain.Catalog
}

// NewCatalogUseCase starts from the built-in catalog. Call Load to overlay persisted state.
func NewCatalogUseCase(store Store) *CatalogUseCase {
	return &CatalogUseCase{store: store, catalog: domain.DefaultCatalog()}
}

// Load overlays the persisted catalog on the defaults. Every top-level key
// present in storage replaces the default wholesale.
func (uc *CatalogUseCase) Load(ctx context.Context) error {
	var saved domain.CatalogPatch
	err := uc.store.Load(ctx, CatalogKey, &saved)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("could not load catalog: %w", err)
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.catalog = domain.DefaultCatalog().Apply(saved)
	return nil
}

// Catalog returns a copy of the current catalog.
func (uc *CatalogUseCase) Catalog() domain.Catalog {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.catalog.Clone()
}

// Price resolves against the live catalog.
func (uc *CatalogUseCase) Price(client domain.ClientType, branch string, size domain.ProductSize) float64 {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return pricing.NewResolver(uc.catalog.Precios).Price(client, branch, size)
}

// UpdateConfig merges the patch and persists the result.
func (uc *CatalogUseCase) UpdateConfig(ctx context.Context, patch domain.CatalogPatch) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.commit(ctx, uc.catalog.Apply(patch))
}

// commit persists next and makes it current. Callers hold the write lock.
func (uc *CatalogUseCase) commit(ctx context.Context, next domain.Catalog) error {
	if err := uc.store.Save(ctx, CatalogKey, next); err != nil {
		return fmt.Errorf("could not save catalog: %w", err)
	}
	uc.catalog = next
	return nil
}

func hasSucursal(names []string, name, except string) bool {
	for _, s := range names {
		if s != except && strings.EqualFold(s, name) {
			return true
		}
	}
	return false
}

// AddSucursal appends a branch. Names are unique per client, ignoring case.
func (uc *CatalogUseCase) AddSucursal(ctx context.Context, client domain.ClientType, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()

	existing := uc.catalog.Sucursales[client]
	if hasSucursal(existing, name, "") {
		return fmt.Errorf("%w: %q in %s", ErrDuplicateSucursal, name, client)
	}
	next := uc.catalog.Clone()
	next.Sucursales[client] = append(next.Sucursales[client], name)
	return uc.commit(ctx, next)
}

// RenameSucursal renames a branch and moves its price table with it.
func (uc *CatalogUseCase) RenameSucursal(ctx context.Context, client domain.ClientType, oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return ErrEmptyName
	}
	if newName == oldName {
		return nil
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()

	existing := uc.catalog.Sucursales[client]
	idx := indexOf(existing, oldName)
	if idx < 0 {
		return fmt.Errorf("could not rename %q: %w", oldName, domain.ErrNotFound)
	}
	if hasSucursal(existing, newName, oldName) {
		return fmt.Errorf("%w: %q in %s", ErrDuplicateSucursal, newName, client)
	}

	next := uc.catalog.Clone()
	next.Sucursales[client][idx] = newName
	if table := next.Precios.Branch(client, oldName); table != nil {
		next.Precios.Branches[client][newName] = table
		delete(next.Precios.Branches[client], oldName)
	}
	return uc.commit(ctx, next)
}

// DeleteSucursal removes a branch from the list. Its prices are kept.
func (uc *CatalogUseCase) DeleteSucursal(ctx context.Context, client domain.ClientType, name string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if indexOf(uc.catalog.Sucursales[client], name) < 0 {
		return fmt.Errorf("could not delete %q: %w", name, domain.ErrNotFound)
	}
	next := uc.catalog.Clone()
	kept := next.Sucursales[client][:0]
	for _, s := range next.Sucursales[client] {
		if s != name {
			kept = append(kept, s)
		}
	}
	next.Sucursales[client] = kept
	return uc.commit(ctx, next)
}

// SortSucursales orders a client's branches alphabetically.
func (uc *CatalogUseCase) SortSucursales(ctx context.Context, client domain.ClientType) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	next := uc.catalog.Clone()
	sort.Strings(next.Sucursales[client])
	return uc.commit(ctx, next)
}

// UpdatePrecio sets one branch price.
func (uc *CatalogUseCase) UpdatePrecio(ctx context.Context, client domain.ClientType, branch string, size domain.ProductSize, price float64) error {
	if !pricing.Usable(price) {
		return fmt.Errorf("%w: %v", ErrInvalidPrice, price)
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()

	next := uc.catalog.Clone()
	next.Precios.SetBranchPrice(client, branch, size, price)
	return uc.commit(ctx, next)
}

// BulkUpdatePrecio sets the price of a size for every branch of a client.
func (uc *CatalogUseCase) BulkUpdatePrecio(ctx context.Context, client domain.ClientType, size domain.ProductSize, price float64) error {
	if !pricing.Usable(price) {
		return fmt.Errorf("%w: %v", ErrInvalidPrice, price)
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()

	next := uc.catalog.Clone()
	for _, branch := range next.Sucursales[client] {
		next.Precios.SetBranchPrice(client, branch, size, price)
	}
	zap.L().Info("usecase: bulk price update",
		zap.String("client", string(client)),
		zap.String("size", string(size)),
		zap.Float64("price", price),
		zap.Int("branches", len(next.Sucursales[client])))
	return uc.commit(ctx, next)
}

// ToggleDarkMode flips the display preference.
func (uc *CatalogUseCase) ToggleDarkMode(ctx context.Context) (bool, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	next := uc.catalog.Clone()
	next.DarkMode = !next.DarkMode
	if err := uc.commit(ctx, next); err != nil {
		return uc.catalog.DarkMode, err
	}
	return next.DarkMode, nil
}

// Branches lists a client's branches with their resolved prices.
func (uc *CatalogUseCase) Branches(client domain.ClientType) []BranchPrices {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	resolver := pricing.NewResolver(uc.catalog.Precios)
	out := make([]BranchPrices, 0, len(uc.catalog.Sucursales[client]))
	for _, name := range uc.catalog.Sucursales[client] {
		prices := make(domain.PriceTable, len(domain.ProductSizes))
		for _, size := range domain.ProductSizes {
			prices[size] = resolver.Price(client, name, size)
		}
		out = append(out, BranchPrices{
			Name:   name,
			Prices: prices,
			Custom: uc.catalog.Precios.Branch(client, name) != nil,
		})
	}
	return out
}

func indexOf(names []string, name string) int {
	for i, s := range names {
		if s == name {
			return i
		}
	}
	return -1
}
