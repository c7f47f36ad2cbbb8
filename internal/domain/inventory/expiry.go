package inventory

import "time"

const day = 24 * time.Hour

// WithinWarningWindow indica si expiresAt cae en (now, now+days].
// Los productos ya vencidos quedan fuera.
func WithinWarningWindow(now, expiresAt time.Time, days int) bool {
	if !expiresAt.After(now) {
		return false
	}
	return !expiresAt.After(now.AddDate(0, 0, days))
}

// DaysRemaining devuelve los días completos entre now y expiresAt, truncados hacia cero.
func DaysRemaining(now, expiresAt time.Time) int {
	return int(expiresAt.Sub(now) / day)
}
