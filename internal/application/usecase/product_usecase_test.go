package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/prateleira-api/internal/application/dto"
	"github.com/jhoicas/prateleira-api/internal/application/inventory"
	"github.com/jhoicas/prateleira-api/internal/application/usecase"
	"github.com/jhoicas/prateleira-api/internal/domain"
	"github.com/jhoicas/prateleira-api/internal/infrastructure/memory"
)

var fixedNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type catalogFixture struct {
	products    *usecase.ProductUseCase
	shelves     *usecase.ShelfUseCase
	categories  *usecase.CategoryUseCase
	productRepo *memory.ProductRepo
}

func newCatalogFixture() *catalogFixture {
	store := memory.NewStore()
	productRepo := memory.NewProductRepository(store)
	shelfRepo := memory.NewShelfRepository(store)
	categoryRepo := memory.NewCategoryRepository(store)
	space := inventory.NewShelfCapacityUseCase(shelfRepo, productRepo)
	return &catalogFixture{
		products:    usecase.NewProductUseCase(productRepo, categoryRepo, space, usecase.WithProductClock(func() time.Time { return fixedNow })),
		shelves:     usecase.NewShelfUseCase(shelfRepo),
		categories:  usecase.NewCategoryUseCase(categoryRepo),
		productRepo: productRepo,
	}
}

func ptr[T any](v T) *T { return &v }

func TestProductCreate_IniciaSinStock(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	got, err := f.products.Create(ctx, dto.CreateProductRequest{Name: "Arroz 1kg", Price: decimal.NewFromFloat(3.5), MinQuantity: 2})
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, 0, got.Quantity)
	assert.Equal(t, []string{}, got.CategoryIDs)
	assert.Equal(t, fixedNow, got.CreatedAt)
}

func TestProductCreate_EntradaInvalida(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	_, err := f.products.Create(ctx, dto.CreateProductRequest{Name: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.products.Create(ctx, dto.CreateProductRequest{Name: "X", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductCreate_BarcodeDuplicado(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	_, err := f.products.Create(ctx, dto.CreateProductRequest{Name: "A", Barcode: "7501234567890"})
	require.NoError(t, err)
	_, err = f.products.Create(ctx, dto.CreateProductRequest{Name: "B", Barcode: "7501234567890"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductCreate_CategoriaInexistente(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	cat, err := f.categories.Create(ctx, dto.CreateCategoryRequest{Name: "Lácteos"})
	require.NoError(t, err)

	_, err = f.products.Create(ctx, dto.CreateProductRequest{Name: "Leche", CategoryIDs: []string{cat.ID, "no-existe"}})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := f.products.Create(ctx, dto.CreateProductRequest{Name: "Leche", CategoryIDs: []string{cat.ID, cat.ID}})
	require.NoError(t, err)
	assert.Equal(t, []string{cat.ID}, got.CategoryIDs)
}

func TestProductCreate_CapacidadDeEstanteria(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	shelf, err := f.shelves.Create(ctx, dto.CreateShelfRequest{Name: "A1", MaxCapacity: 1})
	require.NoError(t, err)

	_, err = f.products.Create(ctx, dto.CreateProductRequest{Name: "Primero", ShelfID: ptr(shelf.ID)})
	require.NoError(t, err)

	_, err = f.products.Create(ctx, dto.CreateProductRequest{Name: "Segundo", ShelfID: ptr(shelf.ID)})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.products.Create(ctx, dto.CreateProductRequest{Name: "Tercero", ShelfID: ptr("no-existe")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUpdate_CambioDeEstanteriaVerificaCapacidad(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	full, err := f.shelves.Create(ctx, dto.CreateShelfRequest{Name: "A1", MaxCapacity: 1})
	require.NoError(t, err)
	p1, err := f.products.Create(ctx, dto.CreateProductRequest{Name: "Primero", ShelfID: ptr(full.ID)})
	require.NoError(t, err)
	p2, err := f.products.Create(ctx, dto.CreateProductRequest{Name: "Segundo"})
	require.NoError(t, err)

	// mantener la misma estantería no cuenta como ocupar un lugar nuevo
	_, err = f.products.Update(ctx, p1.ID, dto.UpdateProductRequest{ShelfID: ptr(full.ID), Name: ptr("Primero v2")})
	require.NoError(t, err)

	_, err = f.products.Update(ctx, p2.ID, dto.UpdateProductRequest{ShelfID: ptr(full.ID)})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// "" desasigna
	got, err := f.products.Update(ctx, p1.ID, dto.UpdateProductRequest{ShelfID: ptr("")})
	require.NoError(t, err)
	assert.Nil(t, got.ShelfID)

	got, err = f.products.Update(ctx, p2.ID, dto.UpdateProductRequest{ShelfID: ptr(full.ID)})
	require.NoError(t, err)
	require.NotNil(t, got.ShelfID)
	assert.Equal(t, full.ID, *got.ShelfID)
}

func TestProductUpdate_NoTocaStock(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	p, err := f.products.Create(ctx, dto.CreateProductRequest{Name: "Aceite"})
	require.NoError(t, err)
	require.NoError(t, f.productRepo.UpdateQuantity(ctx, p.ID, 12))

	got, err := f.products.Update(ctx, p.ID, dto.UpdateProductRequest{Price: ptr(decimal.NewFromInt(9))})
	require.NoError(t, err)
	assert.Equal(t, 12, got.Quantity)
	assert.True(t, decimal.NewFromInt(9).Equal(got.Price))

	stored, err := f.products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, stored.Quantity)
}

func TestProductUpdate_BorraVencimiento(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()
	expiry := fixedNow.AddDate(0, 0, 20)

	p, err := f.products.Create(ctx, dto.CreateProductRequest{Name: "Yogur", ExpiresAt: &expiry})
	require.NoError(t, err)
	require.NotNil(t, p.ExpiresAt)

	got, err := f.products.Update(ctx, p.ID, dto.UpdateProductRequest{Name: ptr("Yogur natural")})
	require.NoError(t, err)
	require.NotNil(t, got.ExpiresAt, "sin flag la fecha se conserva")

	_, err = f.products.Update(ctx, p.ID, dto.UpdateProductRequest{ClearExpiry: true, ExpiresAt: &expiry})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err = f.products.Update(ctx, p.ID, dto.UpdateProductRequest{ClearExpiry: true})
	require.NoError(t, err)
	assert.Nil(t, got.ExpiresAt)

	stored, err := f.products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.ExpiresAt)
}

func TestProduct_Inexistente(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	_, err := f.products.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.products.Update(ctx, "nope", dto.UpdateProductRequest{Name: ptr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.products.Delete(ctx, "nope"), domain.ErrNotFound)
}

func TestProductList_StockBajoYPorVencer(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	soon := fixedNow.AddDate(0, 0, 5)
	later := fixedNow.AddDate(0, 0, 15)
	low, err := f.products.Create(ctx, dto.CreateProductRequest{Name: "Yogur", ExpiresAt: &soon})
	require.NoError(t, err)
	high, err := f.products.Create(ctx, dto.CreateProductRequest{Name: "Queso", ExpiresAt: &later})
	require.NoError(t, err)
	require.NoError(t, f.productRepo.UpdateQuantity(ctx, low.ID, 3))
	require.NoError(t, f.productRepo.UpdateQuantity(ctx, high.ID, 30))

	lows, err := f.products.ListLowStock(ctx, 5)
	require.NoError(t, err)
	require.Len(t, lows, 1)
	assert.Equal(t, low.ID, lows[0].ID)

	near, err := f.products.ListNearExpiry(ctx, 7)
	require.NoError(t, err)
	require.Len(t, near, 1)
	assert.Equal(t, low.ID, near[0].ID)

	_, err = f.products.ListLowStock(ctx, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.products.ListNearExpiry(ctx, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProduct_ListarYEliminar(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	for _, name := range []string{"A", "B", "C"} {
		_, err := f.products.Create(ctx, dto.CreateProductRequest{Name: name})
		require.NoError(t, err)
	}
	page, err := f.products.List(ctx, 2, 0)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, dto.PageResponse{Limit: 2, Offset: 0}, page.Page)

	require.NoError(t, f.products.Delete(ctx, page.Items[0].ID))
	page, err = f.products.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
}
