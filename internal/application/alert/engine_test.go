package alert_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/prateleira-api/internal/application/alert"
	"github.com/jhoicas/prateleira-api/internal/domain"
	"github.com/jhoicas/prateleira-api/internal/domain/entity"
	"github.com/jhoicas/prateleira-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var fixedNow = time.Date(2025, 1, 25, 18, 0, 0, 0, time.UTC)

type engineFixture struct {
	productRepo *memory.ProductRepo
	alertRepo   *memory.AlertRepo
	publisher   *recordingPublisher
	clock       time.Time
	uc          *alert.EngineUseCase
}

type recordingPublisher struct {
	events []alert.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e alert.Event) error {
	p.events = append(p.events, e)
	return p.err
}

func newEngineFixture(t *testing.T, opts ...alert.Option) *engineFixture {
	t.Helper()
	store := memory.NewStore()
	f := &engineFixture{
		productRepo: memory.NewProductRepository(store),
		alertRepo:   memory.NewAlertRepository(store),
		publisher:   &recordingPublisher{},
		clock:       fixedNow,
	}
	base := []alert.Option{
		alert.WithClock(func() time.Time { return f.clock }),
		alert.WithPublisher(f.publisher),
	}
	f.uc = alert.NewEngineUseCase(f.productRepo, f.alertRepo, append(base, opts...)...)
	return f
}

func (f *engineFixture) seed(t *testing.T, id, name string, qty int, expiresAt *time.Time) {
	t.Helper()
	require.NoError(t, f.productRepo.Create(context.Background(), &entity.Product{
		ID:        id,
		Name:      name,
		Quantity:  qty,
		ExpiresAt: expiresAt,
		CreatedAt: fixedNow,
	}))
}

func daysFromNow(d int) *time.Time {
	t := fixedNow.AddDate(0, 0, d)
	return &t
}

// ──────────────────────────────────────────────────────────────────────────────
// Stock bajo
// ──────────────────────────────────────────────────────────────────────────────

func TestScanLowStock_CreaUnaAlertaConCantidad(t *testing.T) {
	f := newEngineFixture(t)
	f.seed(t, "p1", "Yogur", 3, nil)
	f.seed(t, "p2", "Pan", 50, nil)

	created, err := f.uc.ScanLowStock(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, "p1", created[0].ProductID)
	assert.Equal(t, entity.AlertTypeLowStock, created[0].Type)
	assert.Contains(t, created[0].Message, "3")
	assert.Contains(t, created[0].Message, "Yogur")
	assert.False(t, created[0].Resolved)
	assert.Nil(t, created[0].ResolvedAt)
	assert.Equal(t, fixedNow, created[0].CreatedAt)
}

func TestScanLowStock_SegundaPasadaNoDuplica(t *testing.T) {
	f := newEngineFixture(t)
	f.seed(t, "p1", "Yogur", 3, nil)
	f.seed(t, "p2", "Queso", 5, nil)

	first, err := f.uc.ScanLowStock(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, first, 2, "el umbral es inclusivo")

	second, err := f.uc.ScanLowStock(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, second, "la segunda pasada no debe crear alertas")

	open, err := f.uc.ListUnresolved(context.Background())
	require.NoError(t, err)
	assert.Len(t, open, 2)
}

func TestScanLowStock_TrasResolverVuelveACrear(t *testing.T) {
	f := newEngineFixture(t)
	f.seed(t, "p1", "Yogur", 1, nil)

	first, err := f.uc.ScanLowStock(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, first, 1)

	_, err = f.uc.Resolve(context.Background(), first[0].ID)
	require.NoError(t, err)

	second, err := f.uc.ScanLowStock(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, second, 1, "resuelta la anterior, la condición persiste y se levanta una nueva")
}

func TestScanLowStock_UmbralNegativo(t *testing.T) {
	f := newEngineFixture(t)
	_, err := f.uc.ScanLowStock(context.Background(), -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Vencimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestScanExpirations_DentroDeVentana(t *testing.T) {
	f := newEngineFixture(t)
	f.seed(t, "p1", "Leche", 20, daysFromNow(5))

	created, err := f.uc.ScanExpirations(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, entity.AlertTypeNearExpiry, created[0].Type)
	assert.Contains(t, created[0].Message, "Leche")
	assert.Contains(t, created[0].Message, "5 días")

	again, err := f.uc.ScanExpirations(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestScanExpirations_FueraDeVentana(t *testing.T) {
	f := newEngineFixture(t)
	f.seed(t, "p1", "Leche", 20, daysFromNow(15))
	f.seed(t, "p2", "Jamón", 20, daysFromNow(-1)) // ya vencido: fuera de este escaneo
	f.seed(t, "p3", "Sal", 20, nil)

	created, err := f.uc.ScanExpirations(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, created)
}

func TestScanExpirations_DiasTruncados(t *testing.T) {
	f := newEngineFixture(t)
	exp := fixedNow.Add(2*24*time.Hour + 20*time.Hour)
	f.seed(t, "p1", "Fresas", 20, &exp)

	created, err := f.uc.ScanExpirations(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Contains(t, created[0].Message, "2 días")
}

func TestScanExpirations_VentanaInvalida(t *testing.T) {
	f := newEngineFixture(t)
	_, err := f.uc.ScanExpirations(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Una alerta LOW_STOCK abierta no impide una NEAR_EXPIRY para el mismo producto.
func TestScan_DeduplicacionPorTipo(t *testing.T) {
	f := newEngineFixture(t)
	f.seed(t, "p1", "Leche", 1, daysFromNow(3))

	low, err := f.uc.ScanLowStock(context.Background(), 5)
	require.NoError(t, err)
	near, err := f.uc.ScanExpirations(context.Background(), 7)
	require.NoError(t, err)

	assert.Len(t, low, 1)
	assert.Len(t, near, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Resolver
// ──────────────────────────────────────────────────────────────────────────────

func TestResolve_MarcaResueltaYReSella(t *testing.T) {
	f := newEngineFixture(t)
	f.seed(t, "p1", "Yogur", 1, nil)
	created, err := f.uc.ScanLowStock(context.Background(), 5)
	require.NoError(t, err)
	id := created[0].ID

	f.clock = fixedNow.Add(time.Hour)
	a, err := f.uc.Resolve(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, a.Resolved)
	require.NotNil(t, a.ResolvedAt)
	assert.Equal(t, fixedNow.Add(time.Hour), *a.ResolvedAt)

	// Resolver de nuevo: válido, actualiza la fecha
	f.clock = fixedNow.Add(2 * time.Hour)
	a, err = f.uc.Resolve(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, a.Resolved)
	assert.Equal(t, fixedNow.Add(2*time.Hour), *a.ResolvedAt)

	stored, err := f.uc.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, fixedNow.Add(2*time.Hour), *stored.ResolvedAt)

	open, err := f.uc.ListUnresolved(context.Background())
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestResolve_Inexistente(t *testing.T) {
	f := newEngineFixture(t)
	_, err := f.uc.Resolve(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listado, creación manual y publicación
// ──────────────────────────────────────────────────────────────────────────────

func TestListUnresolved_OrdenCreacionDesc(t *testing.T) {
	f := newEngineFixture(t)
	f.seed(t, "p1", "A", 1, nil)
	f.seed(t, "p2", "B", 50, daysFromNow(2))

	_, err := f.uc.ScanLowStock(context.Background(), 5)
	require.NoError(t, err)
	f.clock = fixedNow.Add(time.Minute)
	_, err = f.uc.ScanExpirations(context.Background(), 7)
	require.NoError(t, err)

	open, err := f.uc.ListUnresolved(context.Background())
	require.NoError(t, err)
	require.Len(t, open, 2)
	assert.Equal(t, entity.AlertTypeNearExpiry, open[0].Type)
	assert.Equal(t, entity.AlertTypeLowStock, open[1].Type)
}

func TestCreate_TipoReservadoYDuplicado(t *testing.T) {
	f := newEngineFixture(t)
	f.seed(t, "p1", "Atún", 0, nil)

	a, err := f.uc.Create(context.Background(), alert.CreateInput{
		ProductID: "p1", Type: entity.AlertTypeOutOfStock, Message: "sin stock",
	})
	require.NoError(t, err)
	assert.False(t, a.Resolved)

	_, err = f.uc.Create(context.Background(), alert.CreateInput{
		ProductID: "p1", Type: entity.AlertTypeOutOfStock, Message: "otra vez",
	})
	assert.ErrorIs(t, err, domain.ErrConflict, "no puede haber dos alertas abiertas del mismo tipo")

	_, err = f.uc.Create(context.Background(), alert.CreateInput{ProductID: "p1", Type: "RARO", Message: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Create(context.Background(), alert.CreateInput{ProductID: "nada", Type: entity.AlertTypeExpired, Message: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPublicaEventos_FalloNoRevierte(t *testing.T) {
	f := newEngineFixture(t)
	f.publisher.err = errors.New("broker caído")
	f.seed(t, "p1", "Yogur", 1, nil)

	created, err := f.uc.ScanLowStock(context.Background(), 5)
	require.NoError(t, err, "un fallo al publicar no debe fallar el escaneo")
	require.Len(t, created, 1)

	_, err = f.uc.Resolve(context.Background(), created[0].ID)
	require.NoError(t, err)

	require.Len(t, f.publisher.events, 2)
	assert.Equal(t, alert.EventCreated, f.publisher.events[0].Action)
	assert.Equal(t, alert.EventResolved, f.publisher.events[1].Action)
	assert.True(t, f.publisher.events[1].Alert.Resolved)
}

type busyLocker struct{}

func (busyLocker) Acquire(context.Context, string) (func(context.Context) error, error) {
	return nil, domain.ErrConflict
}

func TestScan_LockOcupado(t *testing.T) {
	f := newEngineFixture(t, alert.WithScanLocker(busyLocker{}))
	f.seed(t, "p1", "Yogur", 1, nil)

	_, err := f.uc.ScanLowStock(context.Background(), 5)
	assert.ErrorIs(t, err, domain.ErrConflict)

	open, err := f.uc.ListUnresolved(context.Background())
	require.NoError(t, err)
	assert.Empty(t, open)
}
