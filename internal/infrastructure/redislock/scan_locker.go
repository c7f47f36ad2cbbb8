// Package redislock implementa alert.ScanLocker con bsm/redislock sobre go-redis.
package redislock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/prateleira-api/internal/application/alert"
	"github.com/jhoicas/prateleira-api/internal/domain"
)

var _ alert.ScanLocker = (*ScanLocker)(nil)

const keyPrefix = "alerts:scan:"

// ScanLocker toma un lock por tipo de escaneo con TTL; no reintenta.
type ScanLocker struct {
	client *redislock.Client
	ttl    time.Duration
}

// NewScanLocker construye el locker sobre un cliente Redis ya conectado.
func NewScanLocker(rdb redis.UniversalClient, ttl time.Duration) *ScanLocker {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &ScanLocker{client: redislock.New(rdb), ttl: ttl}
}

// Acquire obtiene alerts:scan:<name>. Si otro proceso lo tiene devuelve domain.ErrConflict.
func (l *ScanLocker) Acquire(ctx context.Context, name string) (func(context.Context) error, error) {
	lock, err := l.client.Obtain(ctx, keyPrefix+name, l.ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, domain.ErrConflict
	}
	if err != nil {
		return nil, fmt.Errorf("obtain scan lock %s: %w", name, err)
	}
	return func(ctx context.Context) error {
		if err := lock.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			return fmt.Errorf("release scan lock %s: %w", name, err)
		}
		return nil
	}, nil
}

// NewClient abre el cliente Redis y verifica la conexión con PING.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return rdb, nil
}
