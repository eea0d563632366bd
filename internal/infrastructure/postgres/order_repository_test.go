package postgres_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain"
	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain/entity"
	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain/order"
	"github.com/Villegascvrr/entalpiamvp-sub000/internal/infrastructure/postgres"
)

// fakeQuerier backend guionizado: registra cada sentencia y puede fallar
// los Exec cuyo SQL contenga failOn.
type fakeQuerier struct {
	execs  []string
	failOn string

	row       fakeRow
	rows      pgx.Rows
	lastQuery string
}

func (f *fakeQuerier) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	f.execs = append(f.execs, sql)
	if f.failOn != "" && strings.Contains(sql, f.failOn) {
		return pgconn.CommandTag{}, errors.New("error inyectado")
	}
	return pgconn.CommandTag{}, nil
}

func (f *fakeQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	if f.rows != nil {
		return f.rows, nil
	}
	return nil, errors.New("Query no guionizado")
}

func (f *fakeQuerier) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	f.lastQuery = sql
	return f.row
}

type fakeRow struct {
	vals []string
	err  error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		if i >= len(r.vals) {
			break
		}
		if p, ok := d.(*string); ok {
			*p = r.vals[i]
		}
	}
	return nil
}

// fakeDB backend que sí abre transacciones: Begin entrega siempre el
// mismo fakeTx, de modo que el test puede inspeccionar qué corrió dentro
// y qué se saltó la transacción.
type fakeDB struct {
	*fakeQuerier
	tx *fakeTx
}

func (f *fakeDB) Begin(context.Context) (pgx.Tx, error) { return f.tx, nil }

type fakeTx struct {
	*fakeQuerier
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Begin(context.Context) (pgx.Tx, error) { return t, nil }

func (t *fakeTx) Commit(context.Context) error { t.committed = true; return nil }

func (t *fakeTx) Rollback(context.Context) error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

func (t *fakeTx) CopyFrom(context.Context, pgx.Identifier, []string, pgx.CopyFromSource) (int64, error) {
	return 0, errors.New("CopyFrom no guionizado")
}

func (t *fakeTx) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults { return nil }

func (t *fakeTx) LargeObjects() pgx.LargeObjects { return pgx.LargeObjects{} }

func (t *fakeTx) Prepare(context.Context, string, string) (*pgconn.StatementDescription, error) {
	return nil, errors.New("Prepare no guionizado")
}

func (t *fakeTx) Conn() *pgx.Conn { return nil }

// emptyRows resultado vacío para las consultas de hidratación.
type emptyRows struct{}

func (emptyRows) Close()                                       {}
func (emptyRows) Err() error                                   { return nil }
func (emptyRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (emptyRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (emptyRows) Next() bool                                   { return false }
func (emptyRows) Scan(...any) error                            { return nil }
func (emptyRows) Values() ([]any, error)                       { return nil, nil }
func (emptyRows) RawValues() [][]byte                          { return nil }
func (emptyRows) Conn() *pgx.Conn                              { return nil }

func adminSession() *entity.Session {
	return &entity.Session{ActorID: "actor-admin", Role: entity.RoleAdmin, TenantID: "tenant-demo", Name: "Admin Demo"}
}

func itemDraft() *entity.OrderDraft {
	return &entity.OrderDraft{
		CustomerID:   "cust-001",
		CustomerName: "Instalaciones Vega SL",
		Items: []entity.OrderItem{
			{ID: "prod-001", Name: "Tubería", Price: decimal.RequireFromString("24.90"), Quantity: 10},
		},
	}
}

func countMatching(execs []string, substr string) int {
	n := 0
	for _, e := range execs {
		if strings.Contains(e, substr) {
			n++
		}
	}
	return n
}

// Si una línea falla tras insertar la cabecera, el borrado compensatorio
// elimina auditoría, líneas y cabecera: nunca queda cabecera huérfana.
func TestCreateOrder_CompensaAlFallarLinea(t *testing.T) {
	q := &fakeQuerier{failOn: "INSERT INTO order_items"}
	repo := postgres.NewOrderRepository(q)

	_, err := repo.CreateOrder(context.Background(), adminSession(), itemDraft())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert order item")

	assert.Equal(t, 1, countMatching(q.execs, "INSERT INTO orders"))
	assert.Equal(t, 1, countMatching(q.execs, "DELETE FROM order_audit"))
	assert.Equal(t, 1, countMatching(q.execs, "DELETE FROM order_items"))
	assert.Equal(t, 1, countMatching(q.execs, "DELETE FROM orders"))

	// La cabecera se borra la última: las dependencias primero.
	last := q.execs[len(q.execs)-1]
	assert.Contains(t, last, "DELETE FROM orders")
}

// La nota de auditoría inicial es parte del lote: si falla, también se
// compensa todo.
func TestCreateOrder_CompensaAlFallarAuditoria(t *testing.T) {
	q := &fakeQuerier{failOn: "INSERT INTO order_audit"}
	repo := postgres.NewOrderRepository(q)

	_, err := repo.CreateOrder(context.Background(), adminSession(), itemDraft())
	require.Error(t, err)

	assert.Equal(t, 1, countMatching(q.execs, "INSERT INTO order_items"))
	assert.Equal(t, 1, countMatching(q.execs, "DELETE FROM orders"))
}

// Una transición fuera de tabla no ejecuta ninguna escritura.
func TestUpdateOrderStatus_TransicionInvalidaNoEscribe(t *testing.T) {
	q := &fakeQuerier{row: fakeRow{vals: []string{"order-id-1", "confirmed"}}}
	repo := postgres.NewOrderRepository(q)

	_, err := repo.UpdateOrderStatus(context.Background(), adminSession(), "PED-2026-ABCD1234", entity.StatusDelivered)
	var transErr *order.InvalidTransitionError
	require.ErrorAs(t, err, &transErr)
	assert.Equal(t, entity.StatusConfirmed, transErr.From)
	assert.Empty(t, q.execs, "no debe haber UPDATE ni INSERT tras el rechazo")
}

// Un estado desconocido se rechaza antes de tocar la base.
func TestUpdateOrderStatus_EstadoDesconocido(t *testing.T) {
	q := &fakeQuerier{}
	repo := postgres.NewOrderRepository(q)

	_, err := repo.UpdateOrderStatus(context.Background(), adminSession(), "PED-2026-ABCD1234", "enviado")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, q.execs)
}

// Pedido inexistente (o de otro tenant, filtrado por la consulta) sale
// como not found.
func TestUpdateOrderStatus_NoEncontrado(t *testing.T) {
	q := &fakeQuerier{row: fakeRow{err: pgx.ErrNoRows}}
	repo := postgres.NewOrderRepository(q)

	_, err := repo.UpdateOrderStatus(context.Background(), adminSession(), "PED-2026-NOEXISTE", entity.StatusConfirmed)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Las lecturas de un rol customer llevan el filtro por su propio cliente
// además del de tenant.
func TestUpdateOrderStatus_FiltroPorCustomer(t *testing.T) {
	q := &fakeQuerier{row: fakeRow{err: pgx.ErrNoRows}}
	repo := postgres.NewOrderRepository(q)

	cust := &entity.Session{ActorID: "actor-cust", Role: entity.RoleCustomer, TenantID: "tenant-demo", CustomerID: "cust-001"}
	_, err := repo.UpdateOrderStatus(context.Background(), cust, "PED-2026-ABCD1234", entity.StatusConfirmed)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, q.lastQuery, "tenant_id")
	assert.Contains(t, q.lastQuery, "customer_id")
}

// Con un backend capaz de abrir transacciones, el lote entero corre sobre
// la transacción y termina en commit; el pool no recibe sentencias sueltas.
func TestCreateOrder_ConfirmaEnTransaccion(t *testing.T) {
	tx := &fakeTx{fakeQuerier: &fakeQuerier{}}
	db := &fakeDB{fakeQuerier: &fakeQuerier{}, tx: tx}
	repo := postgres.NewOrderRepository(db)

	o, err := repo.CreateOrder(context.Background(), adminSession(), itemDraft())
	require.NoError(t, err)
	require.NotNil(t, o)

	assert.True(t, tx.committed)
	assert.False(t, tx.rolledBack)
	assert.Equal(t, 1, countMatching(tx.execs, "INSERT INTO orders"))
	assert.Equal(t, 1, countMatching(tx.execs, "INSERT INTO order_items"))
	assert.Equal(t, 1, countMatching(tx.execs, "INSERT INTO order_audit"))
	assert.Empty(t, db.fakeQuerier.execs, "ninguna sentencia debe saltarse la transacción")
}

// Si una línea falla dentro de la transacción, el rollback repara todo:
// el borrado compensatorio manual no interviene.
func TestCreateOrder_RevierteTransaccionAlFallarLinea(t *testing.T) {
	tx := &fakeTx{fakeQuerier: &fakeQuerier{failOn: "INSERT INTO order_items"}}
	db := &fakeDB{fakeQuerier: &fakeQuerier{}, tx: tx}
	repo := postgres.NewOrderRepository(db)

	_, err := repo.CreateOrder(context.Background(), adminSession(), itemDraft())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert order item")

	assert.True(t, tx.rolledBack)
	assert.False(t, tx.committed)
	assert.Zero(t, countMatching(tx.execs, "DELETE"))
	assert.Empty(t, db.fakeQuerier.execs)
}

// El cambio de estado corre en transacción con la fila bloqueada: la
// lectura lleva FOR UPDATE y el UPDATE más su auditoría se confirman
// juntos. Dos cambios concurrentes quedan así serializados por la base.
func TestUpdateOrderStatus_BloqueaFilaYConfirma(t *testing.T) {
	tx := &fakeTx{fakeQuerier: &fakeQuerier{row: fakeRow{vals: []string{"order-id-1", "pending_validation"}}}}
	db := &fakeDB{
		fakeQuerier: &fakeQuerier{
			row: fakeRow{vals: []string{
				"order-id-1", "PED-2026-ABCD1234", "tenant-demo", "actor-admin",
				"cust-001", "Instalaciones Vega SL", "", "confirmed",
			}},
			rows: emptyRows{},
		},
		tx: tx,
	}
	repo := postgres.NewOrderRepository(db)

	o, err := repo.UpdateOrderStatus(context.Background(), adminSession(), "PED-2026-ABCD1234", entity.StatusConfirmed)
	require.NoError(t, err)

	assert.Contains(t, tx.lastQuery, "FOR UPDATE")
	assert.True(t, tx.committed)
	assert.Equal(t, 1, countMatching(tx.execs, "UPDATE orders"))
	assert.Equal(t, 1, countMatching(tx.execs, "INSERT INTO order_audit"))
	assert.Equal(t, entity.StatusConfirmed, o.Status)
}

// Una transición rechazada dentro de la transacción la revierte sin
// escribir nada.
func TestUpdateOrderStatus_RechazoRevierteTransaccion(t *testing.T) {
	tx := &fakeTx{fakeQuerier: &fakeQuerier{row: fakeRow{vals: []string{"order-id-1", "confirmed"}}}}
	db := &fakeDB{fakeQuerier: &fakeQuerier{}, tx: tx}
	repo := postgres.NewOrderRepository(db)

	_, err := repo.UpdateOrderStatus(context.Background(), adminSession(), "PED-2026-ABCD1234", entity.StatusDelivered)
	var transErr *order.InvalidTransitionError
	require.ErrorAs(t, err, &transErr)
	assert.True(t, tx.rolledBack)
	assert.Empty(t, tx.execs)
}

// ValidateOrder corta por rol antes de consultar nada.
func TestValidateOrder_RolInsuficiente(t *testing.T) {
	q := &fakeQuerier{}
	repo := postgres.NewOrderRepository(q)

	logi := &entity.Session{ActorID: "actor-logi", Role: entity.RoleLogistics, TenantID: "tenant-demo"}
	_, err := repo.ValidateOrder(context.Background(), logi, "PED-2026-ABCD1234")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, q.execs)
}
