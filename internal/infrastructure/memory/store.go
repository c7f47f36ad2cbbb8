// Package memory implementa los puertos de repositorio en memoria.
// Sirve como almacén de desarrollo (sin DATABASE_URL) y como doble en tests.
package memory

import (
	"sort"
	"sync"

	"github.com/jhoicas/prateleira-api/internal/domain/entity"
)

// Store guarda las entidades indexadas por id; las relaciones se resuelven por búsqueda.
// Todas las lecturas y escrituras devuelven copias: no hay identity map.
type Store struct {
	mu         sync.RWMutex
	products   map[string]*entity.Product
	shelves    map[string]*entity.Shelf
	categories map[string]*entity.Category
	movements  []*entity.Movement
	alerts     map[string]*entity.Alert
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		products:   make(map[string]*entity.Product),
		shelves:    make(map[string]*entity.Shelf),
		categories: make(map[string]*entity.Category),
		alerts:     make(map[string]*entity.Alert),
	}
}

// txLog acumula acciones de compensación de una transacción en curso.
type txLog struct {
	undo []func()
}

func (l *txLog) record(fn func()) {
	if l != nil {
		l.undo = append(l.undo, fn)
	}
}

func (l *txLog) rollback() {
	for i := len(l.undo) - 1; i >= 0; i-- {
		l.undo[i]()
	}
	l.undo = nil
}

// guard toma el lock del store salvo que la operación corra dentro de una tx (que ya lo tiene).
func (s *Store) guard(tx *txLog, write bool) func() {
	if tx != nil {
		return func() {}
	}
	if write {
		s.mu.Lock()
		return s.mu.Unlock
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

func cloneProduct(p *entity.Product) *entity.Product {
	if p == nil {
		return nil
	}
	c := *p
	if p.ExpiresAt != nil {
		t := *p.ExpiresAt
		c.ExpiresAt = &t
	}
	if p.ShelfID != nil {
		s := *p.ShelfID
		c.ShelfID = &s
	}
	c.CategoryIDs = append([]string(nil), p.CategoryIDs...)
	return &c
}

func cloneAlert(a *entity.Alert) *entity.Alert {
	if a == nil {
		return nil
	}
	c := *a
	if a.ResolvedAt != nil {
		t := *a.ResolvedAt
		c.ResolvedAt = &t
	}
	return &c
}

func cloneShelf(s *entity.Shelf) *entity.Shelf {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

func cloneCategory(c *entity.Category) *entity.Category {
	if c == nil {
		return nil
	}
	cc := *c
	return &cc
}

func cloneMovement(m *entity.Movement) *entity.Movement {
	c := *m
	return &c
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return []T{}
	}
	end := len(list)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return list[offset:end]
}

func sortProducts(list []*entity.Product) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
}

func sortAlerts(list []*entity.Alert) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
}
