package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/prateleira-api/internal/application/inventory"
	"github.com/jhoicas/prateleira-api/internal/domain"
	"github.com/jhoicas/prateleira-api/internal/domain/entity"
	"github.com/jhoicas/prateleira-api/internal/domain/repository"
	"github.com/jhoicas/prateleira-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var fixedNow = time.Date(2025, 1, 25, 18, 0, 0, 0, time.UTC)

type ledgerFixture struct {
	store       *memory.Store
	productRepo *memory.ProductRepo
	movRepo     *memory.MovementRepo
	uc          *inventory.LedgerUseCase
}

func newLedgerFixture(t *testing.T, runner inventory.TxRunner, opts ...inventory.LedgerOption) *ledgerFixture {
	t.Helper()
	store := memory.NewStore()
	if runner == nil {
		runner = memory.NewTxRunner(store)
	}
	f := &ledgerFixture{
		store:       store,
		productRepo: memory.NewProductRepository(store),
		movRepo:     memory.NewMovementRepository(store),
	}
	opts = append([]inventory.LedgerOption{inventory.WithLedgerClock(func() time.Time { return fixedNow })}, opts...)
	f.uc = inventory.NewLedgerUseCase(runner, f.productRepo, f.movRepo, opts...)
	return f
}

func (f *ledgerFixture) seedProduct(t *testing.T, id string, qty int) {
	t.Helper()
	require.NoError(t, f.productRepo.Create(context.Background(), &entity.Product{
		ID:        id,
		Name:      "Leche entera",
		Price:     decimal.NewFromInt(4),
		Quantity:  qty,
		CreatedAt: fixedNow,
		UpdatedAt: fixedNow,
	}))
}

func (f *ledgerFixture) onHand(t *testing.T, id string) int {
	t.Helper()
	p, err := f.productRepo.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Quantity
}

// ──────────────────────────────────────────────────────────────────────────────
// Entradas
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterInbound_SumaStockYAgregaMovimiento(t *testing.T) {
	f := newLedgerFixture(t, nil)
	f.seedProduct(t, "p1", 10)

	mov, err := f.uc.RegisterInbound(context.Background(), "p1", 5, "compra proveedor")
	require.NoError(t, err)

	assert.Equal(t, 15, f.onHand(t, "p1"), "el stock debe aumentar exactamente en q")
	assert.Equal(t, entity.MovementTypeIN, mov.Type)
	assert.Equal(t, 5, mov.Quantity)
	assert.Equal(t, "compra proveedor", mov.Note)
	assert.Equal(t, fixedNow, mov.Date)
	assert.NotEmpty(t, mov.ID)

	list, err := f.uc.ListByProduct(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, list, 1, "debe agregarse exactamente un movimiento")
	assert.Equal(t, mov.ID, list[0].ID)
}

func TestRegisterInbound_CantidadNoPositiva(t *testing.T) {
	f := newLedgerFixture(t, nil)
	f.seedProduct(t, "p1", 10)

	for _, q := range []int{0, -3} {
		_, err := f.uc.RegisterInbound(context.Background(), "p1", q, "")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Equal(t, 10, f.onHand(t, "p1"))
}

func TestRegisterInbound_ProductoInexistente(t *testing.T) {
	f := newLedgerFixture(t, nil)

	_, err := f.uc.RegisterInbound(context.Background(), "no-existe", 3, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Salidas
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterOutbound_RestaStock(t *testing.T) {
	f := newLedgerFixture(t, nil)
	f.seedProduct(t, "p1", 5)

	mov, err := f.uc.RegisterOutbound(context.Background(), "p1", 5, "venta")
	require.NoError(t, err)

	assert.Equal(t, 0, f.onHand(t, "p1"))
	assert.Equal(t, entity.MovementTypeOUT, mov.Type)
	assert.Equal(t, 5, mov.Quantity)
	assert.Equal(t, -5, mov.Signed())
}

func TestRegisterOutbound_StockInsuficienteNoCambiaNada(t *testing.T) {
	f := newLedgerFixture(t, nil)
	f.seedProduct(t, "p1", 5)

	_, err := f.uc.RegisterOutbound(context.Background(), "p1", 10, "venta")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 5, f.onHand(t, "p1"), "el stock no debe cambiar")

	list, err := f.uc.ListByProduct(context.Background(), "p1")
	require.NoError(t, err)
	assert.Empty(t, list, "no debe quedar movimiento registrado")
}

func TestRegisterOutbound_ProductoInexistente(t *testing.T) {
	f := newLedgerFixture(t, nil)

	_, err := f.uc.RegisterOutbound(context.Background(), "no-existe", 1, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Dos salidas concurrentes contra el mismo producto no pueden dejar el stock negativo.
func TestRegisterOutbound_ConcurrenteNuncaNegativo(t *testing.T) {
	f := newLedgerFixture(t, nil)
	f.seedProduct(t, "p1", 10)

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok, insufficient := 0, 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.RegisterOutbound(context.Background(), "p1", 1, "")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrInsufficientStock):
				insufficient++
			default:
				t.Errorf("error inesperado: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, ok)
	assert.Equal(t, 10, insufficient)
	assert.Equal(t, 0, f.onHand(t, "p1"))

	list, err := f.uc.ListByProduct(context.Background(), "p1")
	require.NoError(t, err)
	assert.Len(t, list, 10)
}

// Secuencia mixta: el stock observado coincide con la suma de movimientos y nunca es negativo.
func TestLedger_SecuenciaMantieneInvariante(t *testing.T) {
	f := newLedgerFixture(t, nil)
	f.seedProduct(t, "p1", 0)

	ops := []struct {
		in  bool
		qty int
	}{
		{true, 4}, {false, 3}, {false, 2}, {true, 10}, {false, 11}, {false, 1},
	}
	expected := 0
	for _, op := range ops {
		var err error
		if op.in {
			_, err = f.uc.RegisterInbound(context.Background(), "p1", op.qty, "")
		} else {
			_, err = f.uc.RegisterOutbound(context.Background(), "p1", op.qty, "")
		}
		if err == nil {
			if op.in {
				expected += op.qty
			} else {
				expected -= op.qty
			}
		}
		got := f.onHand(t, "p1")
		assert.GreaterOrEqual(t, got, 0)
		assert.Equal(t, expected, got)
	}

	list, err := f.uc.ListByProduct(context.Background(), "p1")
	require.NoError(t, err)
	sum := 0
	for _, m := range list {
		sum += m.Signed()
	}
	assert.Equal(t, expected, sum, "el stock debe coincidir con el libro")
}

// ──────────────────────────────────────────────────────────────────────────────
// Atomicidad
// ──────────────────────────────────────────────────────────────────────────────

type failingMovementRepo struct {
	repository.MovementRepository
}

func (failingMovementRepo) Create(context.Context, *entity.Movement) error {
	return errors.New("disco lleno")
}

// failingTxRunner delega en el runner real pero reemplaza el repositorio de movimientos.
type failingTxRunner struct {
	inner inventory.TxRunner
}

func (r failingTxRunner) Run(ctx context.Context, fn func(repository.ProductRepository, repository.MovementRepository) error) error {
	return r.inner.Run(ctx, func(p repository.ProductRepository, m repository.MovementRepository) error {
		return fn(p, failingMovementRepo{m})
	})
}

func TestRegisterInbound_FalloAlGuardarMovimientoRevierteStock(t *testing.T) {
	store := memory.NewStore()
	runner := failingTxRunner{inner: memory.NewTxRunner(store)}
	productRepo := memory.NewProductRepository(store)
	uc := inventory.NewLedgerUseCase(runner, productRepo, memory.NewMovementRepository(store))

	require.NoError(t, productRepo.Create(context.Background(), &entity.Product{ID: "p1", Name: "Arroz", Quantity: 7}))

	_, err := uc.RegisterInbound(context.Background(), "p1", 3, "")
	require.Error(t, err)

	p, err := productRepo.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 7, p.Quantity, "el cambio de stock debe revertirse si falla el movimiento")
}

// ──────────────────────────────────────────────────────────────────────────────
// Listado y métricas
// ──────────────────────────────────────────────────────────────────────────────

func TestListByProduct_OrdenMasRecientePrimero(t *testing.T) {
	clock := fixedNow
	f := newLedgerFixture(t, nil, inventory.WithLedgerClock(func() time.Time { return clock }))
	f.seedProduct(t, "p1", 0)

	first, err := f.uc.RegisterInbound(context.Background(), "p1", 1, "a")
	require.NoError(t, err)
	clock = clock.Add(time.Minute)
	second, err := f.uc.RegisterInbound(context.Background(), "p1", 2, "b")
	require.NoError(t, err)
	// Mismo instante: desempata el id (uuid v7, creciente)
	third, err := f.uc.RegisterInbound(context.Background(), "p1", 3, "c")
	require.NoError(t, err)

	list, err := f.uc.ListByProduct(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{third.ID, second.ID, first.ID}, []string{list[0].ID, list[1].ID, list[2].ID})
}

func TestListByProduct_ProductoInexistente(t *testing.T) {
	f := newLedgerFixture(t, nil)

	_, err := f.uc.ListByProduct(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

type recordingMetrics struct {
	calls []string
}

func (m *recordingMetrics) MovementRegistered(movementType string, _ int) {
	m.calls = append(m.calls, movementType)
}

func TestLedger_MetricasSoloEnExito(t *testing.T) {
	m := &recordingMetrics{}
	f := newLedgerFixture(t, nil, inventory.WithMovementMetrics(m))
	f.seedProduct(t, "p1", 1)

	_, err := f.uc.RegisterInbound(context.Background(), "p1", 1, "")
	require.NoError(t, err)
	_, err = f.uc.RegisterOutbound(context.Background(), "p1", 99, "")
	require.Error(t, err)

	assert.Equal(t, []string{entity.MovementTypeIN}, m.calls)
}
