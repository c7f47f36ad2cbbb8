package inventory

import "github.com/jhoicas/prateleira-api/internal/domain"

// ApplyInbound devuelve el nuevo stock tras una entrada de quantity unidades.
func ApplyInbound(onHand, quantity int) (int, error) {
	if quantity <= 0 {
		return onHand, domain.ErrInvalidInput
	}
	return onHand + quantity, nil
}

// ApplyOutbound devuelve el nuevo stock tras una salida; nunca deja el stock negativo.
func ApplyOutbound(onHand, quantity int) (int, error) {
	if quantity <= 0 {
		return onHand, domain.ErrInvalidInput
	}
	if quantity > onHand {
		return onHand, domain.ErrInsufficientStock
	}
	return onHand - quantity, nil
}
