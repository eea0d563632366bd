// Package order contiene las reglas puras del ciclo de vida de un pedido:
// la tabla de transiciones de estado y la generación de referencias.
// No toca persistencia; ambas implementaciones de repositorio la aplican.
package order

import (
	"fmt"
	"strings"

	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain/entity"
)

// transitions tabla exacta de transiciones legales. delivered y cancelled
// son terminales; cancelled no es alcanzable desde shipped ni delivered.
var transitions = map[entity.OrderStatus][]entity.OrderStatus{
	entity.StatusDraft:             {entity.StatusPendingValidation, entity.StatusCancelled},
	entity.StatusPendingValidation: {entity.StatusConfirmed, entity.StatusCancelled},
	entity.StatusConfirmed:         {entity.StatusPreparing, entity.StatusCancelled},
	entity.StatusPreparing:         {entity.StatusShipped, entity.StatusCancelled},
	entity.StatusShipped:           {entity.StatusDelivered},
	entity.StatusDelivered:         {},
	entity.StatusCancelled:         {},
}

// ValidStatus indica si s es un estado conocido.
func ValidStatus(s entity.OrderStatus) bool {
	_, ok := transitions[s]
	return ok
}

// AllowedNext devuelve los estados alcanzables desde from (vacío si from
// es terminal o desconocido).
func AllowedNext(from entity.OrderStatus) []entity.OrderStatus {
	next := transitions[from]
	out := make([]entity.OrderStatus, len(next))
	copy(out, next)
	return out
}

// CanTransition indica si from → to está en la tabla.
func CanTransition(from, to entity.OrderStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// InvalidTransitionError transición rechazada. El mensaje enumera los
// estados siguientes permitidos desde From.
type InvalidTransitionError struct {
	From entity.OrderStatus
	To   entity.OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	allowed := transitions[e.From]
	if len(allowed) == 0 {
		return fmt.Sprintf("transición inválida %s → %s: %s es un estado terminal", e.From, e.To, e.From)
	}
	names := make([]string, len(allowed))
	for i, s := range allowed {
		names[i] = string(s)
	}
	return fmt.Sprintf("transición inválida %s → %s: desde %s solo se permite: %s",
		e.From, e.To, e.From, strings.Join(names, ", "))
}

// CheckTransition valida from → to y devuelve *InvalidTransitionError si
// no está en la tabla. Toda implementación de UpdateOrderStatus debe
// llamarla antes de escribir.
func CheckTransition(from, to entity.OrderStatus) error {
	if !CanTransition(from, to) {
		return &InvalidTransitionError{From: from, To: to}
	}
	return nil
}
