package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"santiice/internal/domain"
	"santiice/internal/usecase"
	mock_usecase "santiice/internal/usecase/mocks"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func oxxoTicket(id string) domain.Ticket {
	return domain.Ticket{
		ID:              id,
		ClientType:      domain.ClientOXXO,
		Sucursal:        domain.Some("Girasoles"),
		Fecha:           domain.Some("2025-09-30"),
		Remision:        domain.Some("R-1"),
		PedidoAdicional: domain.Some("P-1"),
		Products: []domain.Product{
			{ID: id + "-a", Label: "BOLSA HIELO SANTI 5K", Quantity: 10},
		},
		Confidence: 92,
		Status:     domain.StatusProcessed,
		Filename:   id + ".jpg",
	}
}

func kioskoTicket(id string) domain.Ticket {
	return domain.Ticket{
		ID:         id,
		ClientType: domain.ClientKIOSKO,
		Sucursal:   domain.Some("Gas Cardones"),
		Fecha:      domain.Some("2025-09-30"),
		Folio:      domain.Some("F-9"),
		Products: []domain.Product{
			{ID: id + "-a", Label: "Bolsas de 15kg", Quantity: 3},
		},
		Confidence: 80,
		Status:     domain.StatusProcessed,
	}
}

func newReview(t *testing.T, tickets ...domain.Ticket) *usecase.ReviewUseCase {
	t.Helper()
	uc := usecase.NewReviewUseCase(newStore(t), usecase.NewCatalogUseCase(newStore(t)))
	require.NoError(t, uc.Load(context.Background(), tickets))
	return uc
}

func TestReviewUseCase_Append(t *testing.T) {
	ctx := context.Background()
	uc := newReview(t, oxxoTicket("t1"))

	failed := kioskoTicket("t4")
	failed.Status = domain.StatusError
	counts, err := uc.Append(ctx, []domain.Ticket{oxxoTicket("t2"), kioskoTicket("t3"), failed})
	require.NoError(t, err)

	assert.Equal(t, map[domain.ClientType]int{domain.ClientOXXO: 1, domain.ClientKIOSKO: 1}, counts)
	assert.Len(t, uc.Tickets(), 4)
	assert.Equal(t, counts, uc.NewCounts())
}

func TestReviewUseCase_UpdateTicket(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		id      string
		field   domain.TicketField
		value   string
		wantErr error
	}{
		{name: "sucursal", id: "k1", field: domain.FieldSucursal, value: "Zona Dorada"},
		{name: "unknown ticket", id: "nope", field: domain.FieldFecha, value: "2025-01-01", wantErr: usecase.ErrTicketNotFound},
		{name: "products go through ReplaceProducts", id: "k1", field: domain.FieldProductos, value: "[]", wantErr: domain.ErrUnknownField},
		{name: "remision on KIOSKO ticket", id: "k1", field: domain.FieldRemision, value: "R-5", wantErr: domain.ErrUnknownField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newReview(t, kioskoTicket("k1"))
			err := uc.UpdateTicket(ctx, tt.id, tt.field, tt.value)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			got, err := uc.Ticket(tt.id)
			require.NoError(t, err)
			for _, line := range got.Lines() {
				assert.Equal(t, tt.value, line.Sucursal.String())
				assert.Equal(t, tt.value, line.NombreTienda.String())
			}
		})
	}
}

func TestReviewUseCase_Products(t *testing.T) {
	ctx := context.Background()

	t.Run("update quantity", func(t *testing.T) {
		uc := newReview(t, oxxoTicket("t1"))
		require.NoError(t, uc.UpdateQuantity(ctx, "t1", 0, 0))
		got, _ := uc.Ticket("t1")
		assert.Equal(t, 0, got.Products[0].Quantity)
		assert.True(t, domain.NeedsAttention(got))

		assert.ErrorIs(t, uc.UpdateQuantity(ctx, "t1", 0, -1), usecase.ErrInvalidQuantity)
		assert.ErrorIs(t, uc.UpdateQuantity(ctx, "t1", 5, 1), usecase.ErrProductIndex)
	})

	t.Run("add product uses client label and branch price", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		prices := mock_usecase.NewMockPriceResolver(ctrl)
		prices.EXPECT().Price(domain.ClientKIOSKO, "Gas Cardones", domain.Size5kg).Return(15.0)

		uc := usecase.NewReviewUseCase(newStore(t), prices)
		require.NoError(t, uc.Load(ctx, []domain.Ticket{kioskoTicket("k1")}))

		p, err := uc.AddProductToTicket(ctx, "k1", domain.Size5kg, 2)
		require.NoError(t, err)
		assert.Equal(t, "Bolsas de 5kg", p.Label)
		assert.Equal(t, 15.0, p.UnitCost)
		assert.True(t, strings.HasPrefix(p.ID, "k1-"))

		got, _ := uc.Ticket("k1")
		assert.Len(t, got.Products, 2)
	})

	t.Run("last product cannot be deleted", func(t *testing.T) {
		uc := newReview(t, oxxoTicket("t1"))
		assert.ErrorIs(t, uc.DeleteProductFromTicket(ctx, "t1", 0), usecase.ErrLastProduct)
		got, _ := uc.Ticket("t1")
		assert.Len(t, got.Products, 1)
	})

	t.Run("delete product", func(t *testing.T) {
		uc := newReview(t, oxxoTicket("t1"))
		_, err := uc.AddProductToTicket(ctx, "t1", domain.Size15kg, 1)
		require.NoError(t, err)
		require.NoError(t, uc.DeleteProductFromTicket(ctx, "t1", 0))
		got, _ := uc.Ticket("t1")
		require.Len(t, got.Products, 1)
		assert.Equal(t, "HIELO SANTI ICE 15KG", got.Products[0].Label)
	})

	t.Run("replace products", func(t *testing.T) {
		uc := newReview(t, oxxoTicket("t1"))
		assert.ErrorIs(t, uc.ReplaceProducts(ctx, "t1", nil), usecase.ErrLastProduct)
		require.NoError(t, uc.ReplaceProducts(ctx, "t1", []domain.Product{{Label: "HIELO SANTI ICE 15KG", Quantity: 4}}))
		got, _ := uc.Ticket("t1")
		assert.Equal(t, 4, got.Products[0].Quantity)
	})
}

func TestReviewUseCase_Confirmable(t *testing.T) {
	ctx := context.Background()

	incomplete := kioskoTicket("k2")
	incomplete.Folio = domain.None()
	failed := oxxoTicket("t9")
	failed.Status = domain.StatusError

	tests := []struct {
		name      string
		selection []string
		ids       []string
		wantIDs   []string
		wantErr   error
		attention int
	}{
		{name: "explicit ids", ids: []string{"t1", "k1"}, wantIDs: []string{"t1", "k1"}},
		{name: "selection is used when no ids are given", selection: []string{"k1"}, wantIDs: []string{"k1"}},
		{name: "error tickets are skipped", ids: []string{"t1", "t9"}, wantIDs: []string{"t1"}},
		{name: "nothing selected", wantErr: usecase.ErrNothingSelected},
		{name: "only error tickets", ids: []string{"t9"}, wantErr: usecase.ErrNothingSelected},
		{name: "attention blocks the batch", selection: []string{"t1", "k2"}, attention: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newReview(t, oxxoTicket("t1"), kioskoTicket("k1"), incomplete, failed)
			if len(tt.selection) > 0 {
				require.NoError(t, uc.Select(ctx, tt.selection...))
			}

			got, err := uc.Confirmable(tt.ids)
			if tt.attention > 0 {
				var attErr *usecase.AttentionError
				require.True(t, errors.As(err, &attErr))
				assert.Equal(t, tt.attention, attErr.Count)
				assert.Equal(t, "No se puede confirmar. 1 ticket(s) seleccionado(s) requieren atención. "+
					"Complete los campos faltantes, corrija productos con cantidad 0, o deseleccione estos tickets para continuar.", err.Error())
				return
			}
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			ids := make([]string, 0, len(got))
			for _, tk := range got {
				ids = append(ids, tk.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestReviewUseCase_SelectionAndConfirmation(t *testing.T) {
	ctx := context.Background()
	failed := oxxoTicket("t9")
	failed.Status = domain.StatusError
	uc := newReview(t, oxxoTicket("t1"), kioskoTicket("k1"), failed)

	assert.ErrorIs(t, uc.Select(ctx, "missing"), usecase.ErrTicketNotFound)

	require.NoError(t, uc.SelectAll(ctx))
	assert.ElementsMatch(t, []string{"t1", "k1"}, uc.Selected())

	require.NoError(t, uc.Deselect(ctx, "k1"))
	assert.Equal(t, []string{"t1"}, uc.Selected())

	require.NoError(t, uc.MarkConfirmed(ctx, &domain.ConfirmResult{Results: []domain.ConfirmItem{
		{ID: "t1", Status: "success"},
		{ID: "k1", Status: "error"},
	}}))
	got, _ := uc.Ticket("t1")
	assert.Equal(t, domain.StatusConfirmed, got.Status)
	assert.Empty(t, uc.Selected())

	_, err := uc.Confirmable([]string{"t1"})
	assert.ErrorIs(t, err, usecase.ErrNothingSelected)

	require.NoError(t, uc.DeleteTicket(ctx, "k1"))
	assert.Len(t, uc.Tickets(), 2)
	assert.ErrorIs(t, uc.DeleteTicket(ctx, "k1"), usecase.ErrTicketNotFound)
}

func TestReviewUseCase_AttentionCounts(t *testing.T) {
	unknown := oxxoTicket("t2")
	unknown.Products[0].Label = "PRODUCTO DESCONOCIDO"
	uc := newReview(t, oxxoTicket("t1"), unknown, kioskoTicket("k1"))

	assert.Equal(t, map[domain.ClientType]int{domain.ClientOXXO: 1, domain.ClientKIOSKO: 0}, uc.AttentionCounts())
}

func TestReviewUseCase_AddManualTicket(t *testing.T) {
	ctx := context.Background()
	uc := newReview(t)

	_, err := uc.AddManualTicket(ctx, usecase.ManualEntry{Client: domain.ClientOXXO})
	var vErr *usecase.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Empty(t, uc.Tickets())

	tk, err := uc.AddManualTicket(ctx, usecase.ManualEntry{
		Client:   domain.ClientKIOSKO,
		Fecha:    "2025-10-01",
		Sucursal: "Gas Cardones",
		Products: []usecase.ManualProduct{{Size: domain.Size5kg, Quantity: 3}},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(tk.ID, "manual-"))
	assert.Equal(t, 15.0, tk.Products[0].UnitCost)
	assert.Len(t, uc.Tickets(), 1)
}

func TestReviewUseCase_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	prices := usecase.NewCatalogUseCase(newStore(t))

	first := usecase.NewReviewUseCase(store, prices)
	require.NoError(t, first.Load(ctx, []domain.Ticket{oxxoTicket("t1"), kioskoTicket("k1")}))
	require.NoError(t, first.Select(ctx, "k1"))
	require.NoError(t, first.UpdateTicket(ctx, "t1", domain.FieldRemision, "R-77"))
	added, err := first.AddProductToTicket(ctx, "k1", domain.Size5kg, 2)
	require.NoError(t, err)
	require.Equal(t, 15.0, added.UnitCost)

	second := usecase.NewReviewUseCase(store, prices)
	require.NoError(t, second.Restore(ctx))
	assert.Equal(t, []string{"k1"}, second.Selected())
	got, err := second.Ticket("t1")
	require.NoError(t, err)
	assert.Equal(t, "R-77", got.Remision.String())
	assert.Equal(t, "BOLSA HIELO SANTI 5K", got.Products[0].Label)
	kiosko, err := second.Ticket("k1")
	require.NoError(t, err)
	require.Len(t, kiosko.Products, 2)
	assert.Equal(t, added.ID, kiosko.Products[1].ID)
	assert.Equal(t, 15.0, kiosko.Products[1].UnitCost)

	require.NoError(t, second.Reset(ctx))
	assert.Empty(t, second.Tickets())

	third := usecase.NewReviewUseCase(store, prices)
	require.NoError(t, third.Restore(ctx))
	assert.Empty(t, third.Tickets())
}

func TestReviewUseCase_SaveFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	store := mock_usecase.NewMockStore(ctrl)
	gomock.InOrder(
		store.EXPECT().Save(gomock.Any(), usecase.ReviewKey, gomock.Any()).Return(nil),
		store.EXPECT().Save(gomock.Any(), usecase.ReviewKey, gomock.Any()).Return(errors.New("full")),
	)

	uc := usecase.NewReviewUseCase(store, usecase.NewCatalogUseCase(newStore(t)))
	require.NoError(t, uc.Load(ctx, []domain.Ticket{oxxoTicket("t1")}))
	assert.Error(t, uc.UpdateTicket(ctx, "t1", domain.FieldFecha, "2030-01-01"))

	got, _ := uc.Ticket("t1")
	assert.Equal(t, "2025-09-30", got.Fecha.String())
}
