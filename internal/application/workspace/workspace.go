// Package workspace mantiene el borrador local de un pedido (líneas y
// metadatos de envío) antes de enviarlo. Solo habla con el backend a
// través del puerto OrderRepository: ese es el seam que permite cambiar
// entre fixture y red sin que el borrador lo note.
package workspace

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain"
	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain/entity"
	order "github.com/Villegascvrr/entalpiamvp-sub000/internal/domain/order"
	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain/repository"
)

// Line línea del borrador. Captura MinOrder y Stock del producto en el
// momento de añadirlo para poder validar sin volver al catálogo.
type Line struct {
	ProductID string
	Name      string
	Price     decimal.Decimal
	Quantity  int
	IsCustom  bool
	MinOrder  int
	Stock     int
}

// LineTotal subtotal de la línea.
func (l Line) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Workspace borrador en curso de un pedido. LastSaved se actualiza en cada
// mutación para señalar "borrador autoguardado" en la UI; no implica
// persistencia real hasta Submit.
type Workspace struct {
	mu sync.Mutex

	reference    string // referencia provisional local
	lines        []Line
	notes        string
	company      string
	address      entity.DeliveryAddress
	shippingDate *time.Time
	status       entity.OrderStatus
	lastSaved    time.Time

	orders repository.OrderRepository
}

// New crea un borrador vacío en estado draft con referencia provisional.
func New(orders repository.OrderRepository) *Workspace {
	return &Workspace{
		reference: order.NewFixtureReference(time.Now(), rand.New(rand.NewSource(time.Now().UnixNano()))),
		status:    entity.StatusDraft,
		lastSaved: time.Now(),
		orders:    orders,
	}
}

// Reference referencia provisional del borrador (la definitiva la asigna
// el repositorio al crear el pedido).
func (w *Workspace) Reference() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.reference
}

// Status estado local del borrador.
func (w *Workspace) Status() entity.OrderStatus {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

// LastSaved instante de la última mutación.
func (w *Workspace) LastSaved() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastSaved
}

// Lines copia de las líneas actuales.
func (w *Workspace) Lines() []Line {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Line, len(w.lines))
	copy(out, w.lines)
	return out
}

// AddItem añade qty unidades de un producto del catálogo. Si el producto
// ya está en el borrador incrementa su cantidad en vez de duplicar la
// línea. Cantidad y producto van en una sola operación atómica: no hay
// secuencia "añadir y luego fijar cantidad".
func (w *Workspace) AddItem(p *entity.Product, qty int) error {
	if p == nil {
		return domain.ErrInvalidInput
	}
	if qty < 1 {
		return fmt.Errorf("%w: la cantidad debe ser >= 1", domain.ErrInvalidInput)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	for i := range w.lines {
		if w.lines[i].ProductID == p.ID {
			w.lines[i].Quantity += qty
			w.touch()
			return nil
		}
	}
	w.lines = append(w.lines, Line{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  qty,
		MinOrder:  p.MinOrder,
		Stock:     p.Stock,
	})
	w.touch()
	return nil
}

// AddCustomItem añade una línea de material a cotizar: precio 0 y exenta
// de chequeos de stock y pedido mínimo. Devuelve el id generado.
func (w *Workspace) AddCustomItem(name string, qty int) (string, error) {
	if name == "" || qty < 1 {
		return "", domain.ErrInvalidInput
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	id := "custom-" + uuid.New().String()
	w.lines = append(w.lines, Line{
		ProductID: id,
		Name:      name,
		Price:     decimal.Zero,
		Quantity:  qty,
		IsCustom:  true,
	})
	w.touch()
	return id, nil
}

// SetQuantity fija la cantidad de una línea. Cantidad 0 elimina la línea.
func (w *Workspace) SetQuantity(productID string, qty int) error {
	if qty < 0 {
		return fmt.Errorf("%w: cantidad negativa", domain.ErrInvalidInput)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	for i := range w.lines {
		if w.lines[i].ProductID == productID {
			if qty == 0 {
				w.lines = append(w.lines[:i], w.lines[i+1:]...)
			} else {
				w.lines[i].Quantity = qty
			}
			w.touch()
			return nil
		}
	}
	return domain.ErrNotFound
}

// RemoveItem elimina una línea del borrador.
func (w *Workspace) RemoveItem(productID string) error {
	return w.SetQuantity(productID, 0)
}

// SetNotes fija las notas del pedido.
func (w *Workspace) SetNotes(notes string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.notes = notes
	w.touch()
}

// SetCompany fija la razón social del pedido.
func (w *Workspace) SetCompany(company string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.company = company
	w.touch()
}

// SetAddress fija la dirección de entrega.
func (w *Workspace) SetAddress(addr entity.DeliveryAddress) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.address = addr
	w.touch()
}

// SetShippingDate fija la fecha de envío solicitada.
func (w *Workspace) SetShippingDate(d time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.shippingDate = &d
	w.touch()
}

// Total total corriente del borrador.
func (w *Workspace) Total() decimal.Decimal {
	w.mu.Lock()
	defer w.mu.Unlock()
	total := decimal.Zero
	for _, l := range w.lines {
		total = total.Add(l.LineTotal())
	}
	return total
}

// Validate comprueba pedido mínimo y stock por línea. Las líneas custom
// quedan exentas. El borrador no puede enviarse si falla.
func (w *Workspace) Validate() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.validateLocked()
}

func (w *Workspace) validateLocked() error {
	for _, l := range w.lines {
		if l.IsCustom {
			continue
		}
		if l.Quantity < l.MinOrder {
			return fmt.Errorf("%w: %s requiere pedido mínimo de %d", domain.ErrInvalidInput, l.Name, l.MinOrder)
		}
		if l.Quantity > l.Stock {
			return fmt.Errorf("%w: %s sin stock suficiente (disponible %d)", domain.ErrInvalidInput, l.Name, l.Stock)
		}
	}
	return nil
}

// Submit valida el borrador, lo entrega a CreateOrder y, solo si la
// creación tuvo éxito, pasa el estado local a pending_validation.
// Devuelve el pedido persistido (con referencia definitiva).
func (w *Workspace) Submit(ctx context.Context, s *entity.Session) (*entity.Order, error) {
	w.mu.Lock()
	if w.status != entity.StatusDraft {
		w.mu.Unlock()
		return nil, fmt.Errorf("%w: el borrador ya fue enviado", domain.ErrConflict)
	}
	if err := w.validateLocked(); err != nil {
		w.mu.Unlock()
		return nil, err
	}
	items := make([]entity.OrderItem, len(w.lines))
	for i, l := range w.lines {
		items[i] = entity.OrderItem{
			ID:       l.ProductID,
			Name:     l.Name,
			Price:    l.Price,
			Quantity: l.Quantity,
			IsCustom: l.IsCustom,
		}
	}
	draft := &entity.OrderDraft{
		CustomerID:   s.CustomerID,
		CustomerName: s.Name,
		Company:      w.company,
		Items:        items,
		Notes:        w.notes,
		Address:      w.address,
		ShippingDate: w.shippingDate,
	}
	w.mu.Unlock()

	created, err := w.orders.CreateOrder(ctx, s, draft)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	w.status = entity.StatusPendingValidation
	w.reference = created.Reference
	w.touch()
	w.mu.Unlock()
	return created, nil
}

// touch requiere w.mu tomado.
func (w *Workspace) touch() {
	w.lastSaved = time.Now()
}
