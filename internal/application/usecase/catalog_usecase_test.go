package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/prateleira-api/internal/application/dto"
	"github.com/jhoicas/prateleira-api/internal/domain"
)

func TestShelf_CRUD(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	_, err := f.shelves.Create(ctx, dto.CreateShelfRequest{Name: "", MaxCapacity: 3})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	s, err := f.shelves.Create(ctx, dto.CreateShelfRequest{Name: "B2", Location: "Pasillo 2", MaxCapacity: 3})
	require.NoError(t, err)

	got, err := f.shelves.Update(ctx, s.ID, dto.UpdateShelfRequest{MaxCapacity: ptr(10)})
	require.NoError(t, err)
	assert.Equal(t, 10, got.MaxCapacity)
	assert.Equal(t, "Pasillo 2", got.Location)

	_, err = f.shelves.Update(ctx, s.ID, dto.UpdateShelfRequest{MaxCapacity: ptr(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := f.shelves.List(ctx, 20, 0)
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)

	require.NoError(t, f.shelves.Delete(ctx, s.ID))
	_, err = f.shelves.GetByID(ctx, s.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.shelves.Delete(ctx, s.ID), domain.ErrNotFound)
}

func TestShelfDelete_DesasignaProductos(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	s, err := f.shelves.Create(ctx, dto.CreateShelfRequest{Name: "C3", MaxCapacity: 2})
	require.NoError(t, err)
	p, err := f.products.Create(ctx, dto.CreateProductRequest{Name: "Pan", ShelfID: ptr(s.ID)})
	require.NoError(t, err)

	require.NoError(t, f.shelves.Delete(ctx, s.ID))
	got, err := f.products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ShelfID)
}

func TestCategory_CRUD(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	c, err := f.categories.Create(ctx, dto.CreateCategoryRequest{Name: "Bebidas"})
	require.NoError(t, err)

	got, err := f.categories.Update(ctx, c.ID, dto.UpdateCategoryRequest{Description: ptr("Frías y calientes")})
	require.NoError(t, err)
	assert.Equal(t, "Bebidas", got.Name)
	assert.Equal(t, "Frías y calientes", got.Description)

	_, err = f.categories.Update(ctx, c.ID, dto.UpdateCategoryRequest{Name: ptr("")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	p, err := f.products.Create(ctx, dto.CreateProductRequest{Name: "Jugo", CategoryIDs: []string{c.ID}})
	require.NoError(t, err)

	require.NoError(t, f.categories.Delete(ctx, c.ID))
	prod, err := f.products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, prod.CategoryIDs)

	_, err = f.categories.GetByID(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_IDsOrdenadosEnElTiempo(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	p, err := f.products.Create(ctx, dto.CreateProductRequest{Name: "Sal"})
	require.NoError(t, err)
	s, err := f.shelves.Create(ctx, dto.CreateShelfRequest{Name: "D4", MaxCapacity: 1})
	require.NoError(t, err)
	c, err := f.categories.Create(ctx, dto.CreateCategoryRequest{Name: "Condimentos"})
	require.NoError(t, err)

	for _, id := range []string{p.ID, s.ID, c.ID} {
		parsed, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(7), parsed.Version())
	}
}
