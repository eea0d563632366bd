package order

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Las referencias de pedido son el identificador externo: legibles y
// resistentes a colisión. El id interno de fila nunca se expone.
//
//	backend en red:  PED-2026-3F9A21BC  (8 hex mayúsculas de un UUID)
//	fixture:         PED-2026-0042      (4 dígitos con ceros)

// NewReference genera la referencia usada por el backend en red.
func NewReference(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:8]
	return fmt.Sprintf("PED-%d-%s", now.Year(), suffix)
}

// NewFixtureReference genera la referencia corta del modo demo. Recibe la
// fuente de aleatoriedad para que los fixtures puedan ser deterministas.
func NewFixtureReference(now time.Time, rnd *rand.Rand) string {
	return fmt.Sprintf("PED-%d-%04d", now.Year(), rnd.Intn(10000))
}
