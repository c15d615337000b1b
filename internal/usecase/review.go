package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"santiice/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReviewKey is the storage key of the in-progress review session.
const ReviewKey = "santiice-review"

var (
	ErrTicketNotFound  = errors.New("ticket not found")
	ErrLastProduct     = errors.New("a ticket must keep at least one product")
	ErrProductIndex    = errors.New("product index out of range")
	ErrInvalidQuantity = errors.New("quantity must not be negative")
	ErrNothingSelected = errors.New("no tickets selected")
)

// AttentionError blocks confirmation while selected tickets need correction.
type AttentionError struct {
	Count int
}

func (e *AttentionError) Error() string {
	return fmt.Sprintf("No se puede confirmar. %d ticket(s) seleccionado(s) requieren atención. "+
		"Complete los campos faltantes, corrija productos con cantidad 0, o deseleccione estos tickets para continuar.", e.Count)
}

type reviewState struct {
	Tickets   []domain.Ticket           `json:"tickets"`
	Selected  []string                  `json:"selected"`
	NewCounts map[domain.ClientType]int `json:"new_counts,omitempty"`
}

// ReviewUseCase owns the tickets under review. Every mutation is serialized
// and persisted so the session survives between invocations.
type ReviewUseCase struct {
	store  Store
	prices PriceResolver
	mu     sync.Mutex
	state  reviewState
}

// NewReviewUseCase creates an empty review session.
func NewReviewUseCase(store Store, prices PriceResolver) *ReviewUseCase {
	return &ReviewUseCase{store: store, prices: prices}
}

// Restore loads the persisted session, if any.
func (uc *ReviewUseCase) Restore(ctx context.Context) error {
	var saved reviewState
	err := uc.store.Load(ctx, ReviewKey, &saved)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("could not restore review session: %w", err)
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.state = saved
	return nil
}

// mutate applies fn to the session and persists it. Nothing is kept when fn fails.
func (uc *ReviewUseCase) mutate(ctx context.Context, fn func(s *reviewState) error) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	next := uc.state.clone()
	if err := fn(&next); err != nil {
		return err
	}
	if err := uc.store.Save(ctx, ReviewKey, next); err != nil {
		return fmt.Errorf("could not save review session: %w", err)
	}
	uc.state = next
	return nil
}

func (s reviewState) clone() reviewState {
	c := reviewState{
		Tickets:  make([]domain.Ticket, len(s.Tickets)),
		Selected: append([]string(nil), s.Selected...),
	}
	for i, t := range s.Tickets {
		c.Tickets[i] = t.Clone()
	}
	if s.NewCounts != nil {
		c.NewCounts = make(map[domain.ClientType]int, len(s.NewCounts))
		for k, v := range s.NewCounts {
			c.NewCounts[k] = v
		}
	}
	return c
}

func (s *reviewState) find(id string) (*domain.Ticket, error) {
	for i := range s.Tickets {
		if s.Tickets[i].ID == id {
			return &s.Tickets[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrTicketNotFound, id)
}

// Load starts a new session from an OCR batch.
func (uc *ReviewUseCase) Load(ctx context.Context, tickets []domain.Ticket) error {
	return uc.mutate(ctx, func(s *reviewState) error {
		*s = reviewState{Tickets: cloneTickets(tickets)}
		return nil
	})
}

// Append adds an additional OCR batch and returns how many processed tickets
// it brought per client.
func (uc *ReviewUseCase) Append(ctx context.Context, tickets []domain.Ticket) (map[domain.ClientType]int, error) {
	counts := make(map[domain.ClientType]int, len(domain.ClientTypes))
	for _, c := range domain.ClientTypes {
		counts[c] = 0
	}
	for _, t := range tickets {
		if t.Status == domain.StatusProcessed {
			counts[t.ClientType]++
		}
	}
	err := uc.mutate(ctx, func(s *reviewState) error {
		s.Tickets = append(s.Tickets, cloneTickets(tickets)...)
		s.NewCounts = counts
		return nil
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// Tickets returns a copy of every ticket in the session.
func (uc *ReviewUseCase) Tickets() []domain.Ticket {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return cloneTickets(uc.state.Tickets)
}

// Ticket returns a copy of one ticket.
func (uc *ReviewUseCase) Ticket(id string) (domain.Ticket, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	t, err := uc.state.find(id)
	if err != nil {
		return domain.Ticket{}, err
	}
	return t.Clone(), nil
}

// UpdateTicket sets a ticket-level field. Product lines derive their copies
// of ticket fields, so they follow the edit.
func (uc *ReviewUseCase) UpdateTicket(ctx context.Context, id string, field domain.TicketField, value string) error {
	return uc.mutate(ctx, func(s *reviewState) error {
		t, err := s.find(id)
		if err != nil {
			return err
		}
		return t.SetField(field, value)
	})
}

// ReplaceProducts swaps the product list wholesale. The list may not be empty.
func (uc *ReviewUseCase) ReplaceProducts(ctx context.Context, id string, products []domain.Product) error {
	if len(products) == 0 {
		return ErrLastProduct
	}
	return uc.mutate(ctx, func(s *reviewState) error {
		t, err := s.find(id)
		if err != nil {
			return err
		}
		t.Products = append([]domain.Product(nil), products...)
		return nil
	})
}

// UpdateQuantity writes the quantity of the product at index.
func (uc *ReviewUseCase) UpdateQuantity(ctx context.Context, id string, index, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
	}
	return uc.mutate(ctx, func(s *reviewState) error {
		t, err := s.find(id)
		if err != nil {
			return err
		}
		if index < 0 || index >= len(t.Products) {
			return fmt.Errorf("%w: %d", ErrProductIndex, index)
		}
		t.Products[index].Quantity = quantity
		return nil
	})
}

// AddProductToTicket appends a product of the given size, labelled for the
// ticket's client and priced for its branch.
func (uc *ReviewUseCase) AddProductToTicket(ctx context.Context, id string, size domain.ProductSize, quantity int) (domain.Product, error) {
	if quantity < 0 {
		return domain.Product{}, fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
	}
	var added domain.Product
	err := uc.mutate(ctx, func(s *reviewState) error {
		t, err := s.find(id)
		if err != nil {
			return err
		}
		added = domain.Product{
			ID:       id + "-" + uuid.New().String(),
			Label:    domain.ProductLabel(t.ClientType, size),
			Quantity: quantity,
			UnitCost: uc.prices.Price(t.ClientType, t.Sucursal.String(), size),
		}
		t.Products = append(t.Products, added)
		return nil
	})
	return added, err
}

// DeleteProductFromTicket removes the product at index. Removing the last
// product is refused and leaves the ticket untouched.
func (uc *ReviewUseCase) DeleteProductFromTicket(ctx context.Context, id string, index int) error {
	return uc.mutate(ctx, func(s *reviewState) error {
		t, err := s.find(id)
		if err != nil {
			return err
		}
		if len(t.Products) <= 1 {
			zap.L().Warn("usecase: refusing to delete the last product", zap.String("ticket", id))
			return ErrLastProduct
		}
		if index < 0 || index >= len(t.Products) {
			return fmt.Errorf("%w: %d", ErrProductIndex, index)
		}
		t.Products = append(t.Products[:index], t.Products[index+1:]...)
		return nil
	})
}

// DeleteTicket removes a ticket and its selection.
func (uc *ReviewUseCase) DeleteTicket(ctx context.Context, id string) error {
	return uc.mutate(ctx, func(s *reviewState) error {
		if _, err := s.find(id); err != nil {
			return err
		}
		kept := s.Tickets[:0]
		for _, t := range s.Tickets {
			if t.ID != id {
				kept = append(kept, t)
			}
		}
		s.Tickets = kept
		s.Selected = without(s.Selected, id)
		return nil
	})
}

// AddManualTicket validates an operator entry and adds it to the session.
func (uc *ReviewUseCase) AddManualTicket(ctx context.Context, entry ManualEntry) (domain.Ticket, error) {
	if err := entry.Validate(); err != nil {
		return domain.Ticket{}, err
	}
	t := entry.Ticket(NewManualTicketID(), uc.prices)
	err := uc.mutate(ctx, func(s *reviewState) error {
		s.Tickets = append(s.Tickets, t.Clone())
		return nil
	})
	return t, err
}

// Select marks tickets for confirmation.
func (uc *ReviewUseCase) Select(ctx context.Context, ids ...string) error {
	return uc.mutate(ctx, func(s *reviewState) error {
		for _, id := range ids {
			if _, err := s.find(id); err != nil {
				return err
			}
			if !contains(s.Selected, id) {
				s.Selected = append(s.Selected, id)
			}
		}
		return nil
	})
}

// SelectAll marks every processed ticket.
func (uc *ReviewUseCase) SelectAll(ctx context.Context) error {
	return uc.mutate(ctx, func(s *reviewState) error {
		s.Selected = s.Selected[:0]
		for _, t := range s.Tickets {
			if t.Status == domain.StatusProcessed {
				s.Selected = append(s.Selected, t.ID)
			}
		}
		return nil
	})
}

// Deselect unmarks tickets.
func (uc *ReviewUseCase) Deselect(ctx context.Context, ids ...string) error {
	return uc.mutate(ctx, func(s *reviewState) error {
		for _, id := range ids {
			s.Selected = without(s.Selected, id)
		}
		return nil
	})
}

// Selected returns the ids marked for confirmation.
func (uc *ReviewUseCase) Selected() []string {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return append([]string(nil), uc.state.Selected...)
}

// Confirmable returns the processed tickets among ids, or among the
// selection when ids is empty. It fails with *AttentionError when any of them
// still needs correction.
func (uc *ReviewUseCase) Confirmable(ids []string) ([]domain.Ticket, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if len(ids) == 0 {
		ids = uc.state.Selected
	}
	var out []domain.Ticket
	attention := 0
	for _, t := range uc.state.Tickets {
		if t.Status != domain.StatusProcessed || !contains(ids, t.ID) {
			continue
		}
		if domain.NeedsAttention(t) {
			attention++
		}
		out = append(out, t.Clone())
	}
	if len(out) == 0 {
		return nil, ErrNothingSelected
	}
	if attention > 0 {
		return nil, &AttentionError{Count: attention}
	}
	return out, nil
}

// MarkConfirmed flags the tickets the backend accepted so they are not sent again.
func (uc *ReviewUseCase) MarkConfirmed(ctx context.Context, result *domain.ConfirmResult) error {
	if result == nil {
		return nil
	}
	return uc.mutate(ctx, func(s *reviewState) error {
		for _, item := range result.Results {
			if item.Status != "success" {
				continue
			}
			if t, err := s.find(item.ID); err == nil {
				t.Status = domain.StatusConfirmed
				s.Selected = without(s.Selected, item.ID)
			}
		}
		return nil
	})
}

// AttentionCounts counts processed tickets needing attention per client.
func (uc *ReviewUseCase) AttentionCounts() map[domain.ClientType]int {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return domain.AttentionCounts(uc.state.Tickets)
}

// NewCounts returns the per-client count of the last appended batch.
func (uc *ReviewUseCase) NewCounts() map[domain.ClientType]int {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	out := make(map[domain.ClientType]int, len(uc.state.NewCounts))
	for k, v := range uc.state.NewCounts {
		out[k] = v
	}
	return out
}

// Reset discards the session.
func (uc *ReviewUseCase) Reset(ctx context.Context) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if err := uc.store.Delete(ctx, ReviewKey); err != nil {
		return fmt.Errorf("could not reset review session: %w", err)
	}
	uc.state = reviewState{}
	return nil
}

func cloneTickets(in []domain.Ticket) []domain.Ticket {
	out := make([]domain.Ticket, len(in))
	for i, t := range in {
		out[i] = t.Clone()
	}
	return out
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func without(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
