package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"santiice/internal/domain"
)

const (
	// HistoryKey is the storage key of the reconciliation history.
	HistoryKey = "conciliator_sessions"
	// MaxHistory is how many sessions are kept.
	MaxHistory = 20

	defaultHistoryClient = "Cliente no especificado"
)

// HistoryUseCase keeps recent reconciliations locally.
type HistoryUseCase struct {
	store Store
	now   func() time.Time
	mu    sync.Mutex
}

// NewHistoryUseCase creates the history over store.
func NewHistoryUseCase(store Store) *HistoryUseCase {
	return &HistoryUseCase{store: store, now: time.Now}
}

func (uc *HistoryUseCase) load(ctx context.Context) ([]domain.SessionEntry, error) {
	var entries []domain.SessionEntry
	err := uc.store.Load(ctx, HistoryKey, &entries)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not load history: %w", err)
	}
	return entries, nil
}

// Save records a session. An entry with the same id is replaced in place,
// otherwise the entry goes first and the oldest beyond MaxHistory are dropped.
func (uc *HistoryUseCase) Save(ctx context.Context, entry domain.SessionEntry) (domain.SessionEntry, error) {
	if entry.ID == "" {
		return entry, errors.New("session entry has no id")
	}
	if entry.Client == "" {
		entry.Client = defaultHistoryClient
	}
	entry.Date = uc.now().UTC().Format(time.RFC3339)

	uc.mu.Lock()
	defer uc.mu.Unlock()

	entries, err := uc.load(ctx)
	if err != nil {
		return entry, err
	}
	replaced := false
	for i := range entries {
		if entries[i].ID == entry.ID {
			entries[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append([]domain.SessionEntry{entry}, entries...)
		if len(entries) > MaxHistory {
			entries = entries[:MaxHistory]
		}
	}
	if err := uc.store.Save(ctx, HistoryKey, entries); err != nil {
		return entry, fmt.Errorf("could not save history: %w", err)
	}
	return entry, nil
}

// List returns the sessions, most recent first.
func (uc *HistoryUseCase) List(ctx context.Context) ([]domain.SessionEntry, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.load(ctx)
}

// Get returns one session.
func (uc *HistoryUseCase) Get(ctx context.Context, id string) (domain.SessionEntry, error) {
	entries, err := uc.List(ctx)
	if err != nil {
		return domain.SessionEntry{}, err
	}
	for _, e := range entries {
		if e.ID == id {
			return e, nil
		}
	}
	return domain.SessionEntry{}, fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
}

// Results returns the stored results of a session.
func (uc *HistoryUseCase) Results(ctx context.Context, id string) (*domain.Results, error) {
	e, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.Results{
		SessionID: e.ID,
		Success:   e.Summary != nil,
		Status:    e.Status,
		Summary:   e.Summary,
		Records:   e.Records,
	}, nil
}

// Delete removes one session.
func (uc *HistoryUseCase) Delete(ctx context.Context, id string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	entries, err := uc.load(ctx)
	if err != nil {
		return err
	}
	kept := entries[:0]
	for _, e := range entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		return fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	if err := uc.store.Save(ctx, HistoryKey, kept); err != nil {
		return fmt.Errorf("could not save history: %w", err)
	}
	return nil
}

// Clear drops the whole history.
func (uc *HistoryUseCase) Clear(ctx context.Context) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if err := uc.store.Delete(ctx, HistoryKey); err != nil {
		return fmt.Errorf("could not clear history: %w", err)
	}
	return nil
}
