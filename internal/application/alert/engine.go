package alert

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/prateleira-api/internal/domain"
	"github.com/jhoicas/prateleira-api/internal/domain/entity"
	"github.com/jhoicas/prateleira-api/internal/domain/inventory"
	"github.com/jhoicas/prateleira-api/internal/domain/repository"
)

// Valores por defecto de los escaneos.
const (
	DefaultWarningDays       = 7
	DefaultLowStockThreshold = 5
)

var tracer = otel.Tracer("github.com/jhoicas/prateleira-api/internal/application/alert")

// EngineUseCase evalúa el inventario y levanta alertas sin duplicar alertas abiertas
// por (producto, tipo).
//
// La deduplicación es consultar-y-luego-insertar. Con escaneos secuenciales no se
// duplican alertas; dos escaneos concurrentes del mismo tipo pueden carrerear y crear
// dos alertas para el mismo producto. Es una carrera aceptada: el ScanLocker (Redis)
// la evita entre instancias cuando está configurado.
type EngineUseCase struct {
	productRepo repository.ProductRepository
	alertRepo   repository.AlertRepository
	publisher   Publisher
	locker      ScanLocker
	metrics     Metrics
	log         zerolog.Logger
	now         func() time.Time
}

// Option configura el motor.
type Option func(*EngineUseCase)

// WithClock reemplaza time.Now (tests).
func WithClock(now func() time.Time) Option {
	return func(uc *EngineUseCase) { uc.now = now }
}

// WithPublisher publica cada alerta creada o resuelta.
func WithPublisher(p Publisher) Option {
	return func(uc *EngineUseCase) { uc.publisher = p }
}

// WithScanLocker serializa los escaneos entre instancias.
func WithScanLocker(l ScanLocker) Option {
	return func(uc *EngineUseCase) { uc.locker = l }
}

// WithMetrics registra las alertas creadas.
func WithMetrics(m Metrics) Option {
	return func(uc *EngineUseCase) { uc.metrics = m }
}

// WithLogger asigna el logger estructurado.
func WithLogger(l zerolog.Logger) Option {
	return func(uc *EngineUseCase) { uc.log = l }
}

// NewEngineUseCase construye el motor de alertas.
func NewEngineUseCase(productRepo repository.ProductRepository, alertRepo repository.AlertRepository, opts ...Option) *EngineUseCase {
	uc := &EngineUseCase{
		productRepo: productRepo,
		alertRepo:   alertRepo,
		publisher:   nopPublisher{},
		locker:      nopLocker{},
		metrics:     nopMetrics{},
		log:         zerolog.Nop(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// ScanExpirations crea una alerta NEAR_EXPIRY para cada producto que vence en (now, now+days]
// y no tiene ya una abierta. Los productos vencidos no entran en este escaneo.
// Devuelve las alertas creadas.
func (uc *EngineUseCase) ScanExpirations(ctx context.Context, warningDays int) ([]*entity.Alert, error) {
	if warningDays <= 0 {
		return nil, domain.ErrInvalidInput
	}
	ctx, span := tracer.Start(ctx, "alerts.scan_expirations")
	defer span.End()
	span.SetAttributes(attribute.Int("alerts.warning_days", warningDays))

	release, err := uc.locker.Acquire(ctx, entity.AlertTypeNearExpiry)
	if err != nil {
		return nil, uc.fail(span, err)
	}
	defer uc.release(ctx, release)

	now := uc.now()
	products, err := uc.productRepo.ListExpiringBetween(ctx, now, now.AddDate(0, 0, warningDays))
	if err != nil {
		return nil, uc.fail(span, err)
	}

	created := []*entity.Alert{}
	for _, p := range products {
		if p.ExpiresAt == nil || !inventory.WithinWarningWindow(now, *p.ExpiresAt, warningDays) {
			continue
		}
		msg := fmt.Sprintf("El producto %s vence en %d días", p.Name, inventory.DaysRemaining(now, *p.ExpiresAt))
		a, err := uc.raiseOnce(ctx, p.ID, entity.AlertTypeNearExpiry, msg, now)
		if err != nil {
			return created, uc.fail(span, err)
		}
		if a != nil {
			created = append(created, a)
		}
	}

	span.SetAttributes(attribute.Int("alerts.created", len(created)))
	uc.log.Info().
		Int("warning_days", warningDays).
		Int("candidates", len(products)).
		Int("created", len(created)).
		Msg("escaneo de vencimientos finalizado")
	return created, nil
}

// ScanLowStock crea una alerta LOW_STOCK para cada producto con stock <= threshold
// que no tenga ya una abierta. Devuelve las alertas creadas.
func (uc *EngineUseCase) ScanLowStock(ctx context.Context, threshold int) ([]*entity.Alert, error) {
	if threshold < 0 {
		return nil, domain.ErrInvalidInput
	}
	ctx, span := tracer.Start(ctx, "alerts.scan_low_stock")
	defer span.End()
	span.SetAttributes(attribute.Int("alerts.threshold", threshold))

	release, err := uc.locker.Acquire(ctx, entity.AlertTypeLowStock)
	if err != nil {
		return nil, uc.fail(span, err)
	}
	defer uc.release(ctx, release)

	now := uc.now()
	products, err := uc.productRepo.ListAtOrBelowQuantity(ctx, threshold)
	if err != nil {
		return nil, uc.fail(span, err)
	}

	created := []*entity.Alert{}
	for _, p := range products {
		msg := fmt.Sprintf("El producto %s tiene stock bajo. Cantidad actual: %d", p.Name, p.Quantity)
		a, err := uc.raiseOnce(ctx, p.ID, entity.AlertTypeLowStock, msg, now)
		if err != nil {
			return created, uc.fail(span, err)
		}
		if a != nil {
			created = append(created, a)
		}
	}

	span.SetAttributes(attribute.Int("alerts.created", len(created)))
	uc.log.Info().
		Int("threshold", threshold).
		Int("candidates", len(products)).
		Int("created", len(created)).
		Msg("escaneo de stock bajo finalizado")
	return created, nil
}

// raiseOnce crea la alerta solo si no existe una abierta del mismo tipo para el producto.
// Devuelve nil si ya existía.
func (uc *EngineUseCase) raiseOnce(ctx context.Context, productID, alertType, message string, now time.Time) (*entity.Alert, error) {
	existing, err := uc.alertRepo.FindUnresolved(ctx, productID, alertType)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, nil
	}
	return uc.insert(ctx, productID, alertType, message, now)
}

func (uc *EngineUseCase) insert(ctx context.Context, productID, alertType, message string, now time.Time) (*entity.Alert, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generar id de alerta: %w", err)
	}
	a := &entity.Alert{
		ID:        id.String(),
		ProductID: productID,
		Type:      alertType,
		Message:   message,
		CreatedAt: now,
	}
	if err := uc.alertRepo.Create(ctx, a); err != nil {
		return nil, err
	}
	uc.metrics.AlertCreated(alertType)
	uc.publish(ctx, EventCreated, a)
	return a, nil
}

// CreateInput datos para levantar una alerta manualmente (cualquier tipo, incluidos los reservados).
type CreateInput struct {
	ProductID string
	Type      string
	Message   string
}

// Create levanta una alerta externa. Respeta la regla de una alerta abierta por (producto, tipo):
// si ya existe devuelve ErrConflict.
func (uc *EngineUseCase) Create(ctx context.Context, in CreateInput) (*entity.Alert, error) {
	if in.ProductID == "" || in.Message == "" || !entity.ValidAlertType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.alertRepo.FindUnresolved(ctx, in.ProductID, in.Type)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrConflict
	}
	return uc.insert(ctx, in.ProductID, in.Type, in.Message, uc.now())
}

// Resolve marca la alerta como resuelta con la hora actual.
// Resolver una alerta ya resuelta es válido y vuelve a sellar ResolvedAt.
func (uc *EngineUseCase) Resolve(ctx context.Context, alertID string) (*entity.Alert, error) {
	a, err := uc.alertRepo.GetByID(ctx, alertID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	a.MarkResolved(uc.now())
	if err := uc.alertRepo.Update(ctx, a); err != nil {
		return nil, err
	}
	uc.publish(ctx, EventResolved, a)
	return a, nil
}

// GetByID obtiene una alerta.
func (uc *EngineUseCase) GetByID(ctx context.Context, alertID string) (*entity.Alert, error) {
	a, err := uc.alertRepo.GetByID(ctx, alertID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

// ListUnresolved devuelve las alertas abiertas, más recientes primero.
func (uc *EngineUseCase) ListUnresolved(ctx context.Context) ([]*entity.Alert, error) {
	list, err := uc.alertRepo.ListUnresolved(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*entity.Alert{}
	}
	return list, nil
}

// List devuelve todas las alertas con paginación.
func (uc *EngineUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Alert, error) {
	list, err := uc.alertRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*entity.Alert{}
	}
	return list, nil
}

func (uc *EngineUseCase) publish(ctx context.Context, action string, a *entity.Alert) {
	if err := uc.publisher.Publish(ctx, Event{Action: action, Alert: *a}); err != nil {
		uc.log.Warn().Err(err).
			Str("alert_id", a.ID).
			Str("action", action).
			Msg("no se pudo publicar el evento de alerta")
	}
}

func (uc *EngineUseCase) release(ctx context.Context, release func(context.Context) error) {
	if err := release(ctx); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo liberar el lock del escaneo")
	}
}

func (uc *EngineUseCase) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
