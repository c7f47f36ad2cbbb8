package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/jhoicas/prateleira-api/internal/domain"
	"github.com/jhoicas/prateleira-api/internal/domain/entity"
	"github.com/jhoicas/prateleira-api/internal/domain/inventory"
	"github.com/jhoicas/prateleira-api/internal/domain/repository"
)

var tracer = otel.Tracer("github.com/jhoicas/prateleira-api/internal/application/inventory")

// LedgerUseCase registra entradas y salidas de stock de forma transaccional:
// bloqueo de fila del producto (SELECT FOR UPDATE), nuevo stock y movimiento en la misma tx.
type LedgerUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	movRepo     repository.MovementRepository
	metrics     MovementMetrics
	now         func() time.Time
}

// LedgerOption configura el caso de uso.
type LedgerOption func(*LedgerUseCase)

// WithLedgerClock reemplaza time.Now (tests).
func WithLedgerClock(now func() time.Time) LedgerOption {
	return func(uc *LedgerUseCase) { uc.now = now }
}

// WithMovementMetrics registra cada movimiento exitoso en m.
func WithMovementMetrics(m MovementMetrics) LedgerOption {
	return func(uc *LedgerUseCase) { uc.metrics = m }
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
	opts ...LedgerOption,
) *LedgerUseCase {
	uc := &LedgerUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		movRepo:     movRepo,
		metrics:     nopMetrics{},
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// RegisterInbound suma quantity al stock del producto y agrega un movimiento IN.
func (uc *LedgerUseCase) RegisterInbound(ctx context.Context, productID string, quantity int, note string) (*entity.Movement, error) {
	return uc.register(ctx, entity.MovementTypeIN, productID, quantity, note)
}

// RegisterOutbound resta quantity del stock y agrega un movimiento OUT.
// Falla con ErrInsufficientStock si quantity supera el stock bloqueado; el stock no cambia.
func (uc *LedgerUseCase) RegisterOutbound(ctx context.Context, productID string, quantity int, note string) (*entity.Movement, error) {
	return uc.register(ctx, entity.MovementTypeOUT, productID, quantity, note)
}

func (uc *LedgerUseCase) register(ctx context.Context, movType, productID string, quantity int, note string) (*entity.Movement, error) {
	ctx, span := tracer.Start(ctx, "ledger.register_"+strings.ToLower(movType))
	defer span.End()
	span.SetAttributes(
		attribute.String("product.id", productID),
		attribute.String("movement.type", movType),
		attribute.Int("movement.quantity", quantity),
	)

	if productID == "" || quantity <= 0 {
		span.SetStatus(codes.Error, domain.ErrInvalidInput.Error())
		return nil, domain.ErrInvalidInput
	}

	var created *entity.Movement
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movRepo repository.MovementRepository) error {
		// Bloquea la fila del producto: dos salidas concurrentes no pueden validar contra un stock viejo
		product, err := productRepo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		var newQty int
		if movType == entity.MovementTypeIN {
			newQty, err = inventory.ApplyInbound(product.Quantity, quantity)
		} else {
			newQty, err = inventory.ApplyOutbound(product.Quantity, quantity)
		}
		if err != nil {
			return err
		}
		if err := productRepo.UpdateQuantity(ctx, productID, newQty); err != nil {
			return err
		}

		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("generar id de movimiento: %w", err)
		}
		mov := &entity.Movement{
			ID:        id.String(),
			ProductID: productID,
			Type:      movType,
			Quantity:  quantity,
			Date:      uc.now(),
			Note:      note,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		created = mov
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	uc.metrics.MovementRegistered(movType, quantity)
	span.SetStatus(codes.Ok, "movimiento registrado")
	return created, nil
}

// ListByProduct devuelve los movimientos del producto, más recientes primero.
func (uc *LedgerUseCase) ListByProduct(ctx context.Context, productID string) ([]*entity.Movement, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.movRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*entity.Movement{}
	}
	return list, nil
}
