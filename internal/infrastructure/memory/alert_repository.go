package memory

import (
	"context"

	"github.com/jhoicas/prateleira-api/internal/domain"
	"github.com/jhoicas/prateleira-api/internal/domain/entity"
	"github.com/jhoicas/prateleira-api/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

// AlertRepo implementación en memoria de AlertRepository.
type AlertRepo struct {
	s *Store
}

// NewAlertRepository construye el repositorio sobre el store.
func NewAlertRepository(s *Store) *AlertRepo {
	return &AlertRepo{s: s}
}

func (r *AlertRepo) Create(_ context.Context, alert *entity.Alert) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[alert.ProductID]; !ok {
		return domain.ErrNotFound
	}
	if _, ok := r.s.alerts[alert.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.alerts[alert.ID] = cloneAlert(alert)
	return nil
}

func (r *AlertRepo) GetByID(_ context.Context, id string) (*entity.Alert, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return cloneAlert(r.s.alerts[id]), nil
}

func (r *AlertRepo) FindUnresolved(_ context.Context, productID, alertType string) (*entity.Alert, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, a := range r.s.alerts {
		if a.ProductID == productID && a.Type == alertType && !a.Resolved {
			return cloneAlert(a), nil
		}
	}
	return nil, nil
}

func (r *AlertRepo) Update(_ context.Context, alert *entity.Alert) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.alerts[alert.ID]
	if !ok {
		return domain.ErrNotFound
	}
	current.Resolved = alert.Resolved
	if alert.ResolvedAt != nil {
		t := *alert.ResolvedAt
		current.ResolvedAt = &t
	} else {
		current.ResolvedAt = nil
	}
	return nil
}

func (r *AlertRepo) ListUnresolved(_ context.Context) ([]*entity.Alert, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := []*entity.Alert{}
	for _, a := range r.s.alerts {
		if !a.Resolved {
			list = append(list, cloneAlert(a))
		}
	}
	sortAlerts(list)
	return list, nil
}

func (r *AlertRepo) List(_ context.Context, limit, offset int) ([]*entity.Alert, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Alert, 0, len(r.s.alerts))
	for _, a := range r.s.alerts {
		list = append(list, cloneAlert(a))
	}
	sortAlerts(list)
	return paginate(list, limit, offset), nil
}
