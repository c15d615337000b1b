package usecase_test

import (
	"context"
	"errors"
	"testing"

	"santiice/internal/domain"
	"santiice/internal/gateway"
	"santiice/internal/usecase"
	mock_usecase "santiice/internal/usecase/mocks"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *gateway.FileStore {
	t.Helper()
	store, err := gateway.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestCatalogUseCase_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults when nothing is stored", func(t *testing.T) {
		uc := usecase.NewCatalogUseCase(newStore(t))
		require.NoError(t, uc.Load(ctx))
		assert.Equal(t, domain.DefaultCatalog(), uc.Catalog())
	})

	t.Run("stored keys replace defaults wholesale", func(t *testing.T) {
		store := newStore(t)
		dark := true
		require.NoError(t, store.Save(ctx, usecase.CatalogKey, domain.CatalogPatch{
			Sucursales: map[domain.ClientType][]string{domain.ClientOXXO: {"Centro"}},
			DarkMode:   &dark,
		}))

		uc := usecase.NewCatalogUseCase(store)
		require.NoError(t, uc.Load(ctx))
		c := uc.Catalog()
		assert.Equal(t, []string{"Centro"}, c.Sucursales[domain.ClientOXXO])
		assert.Empty(t, c.Sucursales[domain.ClientKIOSKO])
		assert.True(t, c.DarkMode)
		assert.Equal(t, 70.0, c.MinConfidenceThreshold)
	})

	t.Run("storage failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mock_usecase.NewMockStore(ctrl)
		store.EXPECT().Load(gomock.Any(), usecase.CatalogKey, gomock.Any()).Return(errors.New("disk gone"))

		err := usecase.NewCatalogUseCase(store).Load(ctx)
		assert.ErrorContains(t, err, "disk gone")
	})
}

func TestCatalogUseCase_Sucursales(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		run     func(uc *usecase.CatalogUseCase) error
		wantErr error
		check   func(t *testing.T, c domain.Catalog)
	}{
		{
			name: "add trims the name",
			run: func(uc *usecase.CatalogUseCase) error {
				return uc.AddSucursal(ctx, domain.ClientOXXO, "  Nueva  ")
			},
			check: func(t *testing.T, c domain.Catalog) {
				names := c.Sucursales[domain.ClientOXXO]
				assert.Equal(t, "Nueva", names[len(names)-1])
			},
		},
		{
			name: "add rejects duplicates ignoring case",
			run: func(uc *usecase.CatalogUseCase) error {
				return uc.AddSucursal(ctx, domain.ClientOXXO, "girasoles")
			},
			wantErr: usecase.ErrDuplicateSucursal,
		},
		{
			name: "add rejects blank names",
			run: func(uc *usecase.CatalogUseCase) error {
				return uc.AddSucursal(ctx, domain.ClientKIOSKO, "   ")
			},
			wantErr: usecase.ErrEmptyName,
		},
		{
			name: "rename moves the price table",
			run: func(uc *usecase.CatalogUseCase) error {
				return uc.RenameSucursal(ctx, domain.ClientOXXO, "Atlantico", "Atlántico Norte")
			},
			check: func(t *testing.T, c domain.Catalog) {
				assert.Contains(t, c.Sucursales[domain.ClientOXXO], "Atlántico Norte")
				assert.NotContains(t, c.Sucursales[domain.ClientOXXO], "Atlantico")
				assert.Nil(t, c.Precios.Branch(domain.ClientOXXO, "Atlantico"))
				assert.Equal(t, 17.0, c.Precios.Branch(domain.ClientOXXO, "Atlántico Norte")[domain.Size5kg])
			},
		},
		{
			name: "rename to another existing branch",
			run: func(uc *usecase.CatalogUseCase) error {
				return uc.RenameSucursal(ctx, domain.ClientOXXO, "Atlantico", "ZARAGOZA")
			},
			wantErr: usecase.ErrDuplicateSucursal,
		},
		{
			name: "rename unknown branch",
			run: func(uc *usecase.CatalogUseCase) error {
				return uc.RenameSucursal(ctx, domain.ClientKIOSKO, "Nowhere", "Somewhere")
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "delete keeps the prices",
			run: func(uc *usecase.CatalogUseCase) error {
				return uc.DeleteSucursal(ctx, domain.ClientKIOSKO, "Gas Cardones")
			},
			check: func(t *testing.T, c domain.Catalog) {
				assert.NotContains(t, c.Sucursales[domain.ClientKIOSKO], "Gas Cardones")
				assert.NotNil(t, c.Precios.Branch(domain.ClientKIOSKO, "Gas Cardones"))
			},
		},
		{
			name: "sort",
			run: func(uc *usecase.CatalogUseCase) error {
				if err := uc.AddSucursal(ctx, domain.ClientOXXO, "Aaa"); err != nil {
					return err
				}
				return uc.SortSucursales(ctx, domain.ClientOXXO)
			},
			check: func(t *testing.T, c domain.Catalog) {
				assert.Equal(t, "Aaa", c.Sucursales[domain.ClientOXXO][0])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore(t)
			uc := usecase.NewCatalogUseCase(store)
			err := tt.run(uc)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, domain.DefaultCatalog(), uc.Catalog())
				return
			}
			require.NoError(t, err)
			tt.check(t, uc.Catalog())

			reloaded := usecase.NewCatalogUseCase(store)
			require.NoError(t, reloaded.Load(ctx))
			assert.Equal(t, uc.Catalog(), reloaded.Catalog())
		})
	}
}

func TestCatalogUseCase_Prices(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewCatalogUseCase(newStore(t))

	assert.Equal(t, 17.0, uc.Price(domain.ClientOXXO, "Atlantico", domain.Size5kg))
	assert.Equal(t, 16.0, uc.Price(domain.ClientKIOSKO, "Unlisted", domain.Size5kg))

	require.NoError(t, uc.UpdatePrecio(ctx, domain.ClientKIOSKO, "Unlisted", domain.Size5kg, 19))
	assert.Equal(t, 19.0, uc.Price(domain.ClientKIOSKO, "Unlisted", domain.Size5kg))

	for _, bad := range []float64{0, -3} {
		assert.ErrorIs(t, uc.UpdatePrecio(ctx, domain.ClientOXXO, "Atlantico", domain.Size5kg, bad), usecase.ErrInvalidPrice)
		assert.ErrorIs(t, uc.BulkUpdatePrecio(ctx, domain.ClientOXXO, domain.Size5kg, bad), usecase.ErrInvalidPrice)
	}

	require.NoError(t, uc.BulkUpdatePrecio(ctx, domain.ClientOXXO, domain.Size15kg, 40))
	for _, b := range uc.Branches(domain.ClientOXXO) {
		assert.Equal(t, 40.0, b.Prices[domain.Size15kg], b.Name)
		assert.True(t, b.Custom, b.Name)
	}
	assert.Equal(t, 17.0, uc.Price(domain.ClientOXXO, "Atlantico", domain.Size5kg))
}

func TestCatalogUseCase_SaveFailureKeepsState(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mock_usecase.NewMockStore(ctrl)
	store.EXPECT().Save(gomock.Any(), usecase.CatalogKey, gomock.Any()).Return(errors.New("read-only"))

	uc := usecase.NewCatalogUseCase(store)
	dark, err := uc.ToggleDarkMode(context.Background())
	assert.Error(t, err)
	assert.False(t, dark)
	assert.False(t, uc.Catalog().DarkMode)
}
