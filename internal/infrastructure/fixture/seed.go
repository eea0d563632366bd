package fixture

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain/entity"
)

// Contraseña de todos los actores demo.
const demoPassword = "entalpia-demo"

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// seed puebla el catálogo de cobre, los clientes y actores del tenant demo
// y una serie de cotizaciones. IDs fijos para que los tests referencien.
func (s *Store) seed() {
	now := s.now()

	s.products = []*entity.Product{
		{ID: "prod-001", SKU: "CU-TUB-15", Name: "Tubería de cobre 15mm", Description: "Tubo rígido sanitario, tramo 5m", Category: "tuberia", Price: price("24.90"), Unit: "m", Stock: 1200, MinOrder: 10, CreatedAt: now, UpdatedAt: now},
		{ID: "prod-002", SKU: "CU-TUB-22", Name: "Tubería de cobre 22mm", Description: "Tubo rígido sanitario, tramo 5m", Category: "tuberia", Price: price("38.50"), Unit: "m", Stock: 800, MinOrder: 10, CreatedAt: now, UpdatedAt: now},
		{ID: "prod-003", SKU: "CU-LAM-05", Name: "Lámina de cobre 0.5mm", Description: "Plancha 1000x2000mm, pureza 99.9%", Category: "lamina", Price: price("112.00"), Unit: "unidad", Stock: 150, MinOrder: 2, CreatedAt: now, UpdatedAt: now},
		{ID: "prod-004", SKU: "CU-LAM-10", Name: "Lámina de cobre 1.0mm", Description: "Plancha 1000x2000mm, pureza 99.9%", Category: "lamina", Price: price("198.00"), Unit: "unidad", Stock: 90, MinOrder: 2, CreatedAt: now, UpdatedAt: now},
		{ID: "prod-005", SKU: "CU-ALA-80", Name: "Alambrón de cobre 8mm", Description: "Bobina 250kg para trefilado", Category: "alambre", Price: price("8.75"), Unit: "kg", Stock: 5000, MinOrder: 250, CreatedAt: now, UpdatedAt: now},
		{ID: "prod-006", SKU: "CU-BAR-12", Name: "Barra de cobre 12mm", Description: "Barra redonda electrolítica, 3m", Category: "barra", Price: price("31.20"), Unit: "unidad", Stock: 400, MinOrder: 5, CreatedAt: now, UpdatedAt: now},
		{ID: "prod-007", SKU: "CU-ACC-COD", Name: "Codo de cobre 90°", Description: "Accesorio soldable 15mm", Category: "accesorio", Price: price("1.45"), Unit: "unidad", Stock: 6000, MinOrder: 25, CreatedAt: now, UpdatedAt: now},
		{ID: "prod-008", SKU: "CU-ACC-MAN", Name: "Manguito de cobre", Description: "Accesorio soldable 22mm", Category: "accesorio", Price: price("2.10"), Unit: "unidad", Stock: 4500, MinOrder: 25, CreatedAt: now, UpdatedAt: now},
	}

	s.customers = []*entity.Customer{
		{ID: "cust-001", TenantID: DemoTenantID, Name: "Instalaciones Vega SL", Company: "Instalaciones Vega SL", TaxID: "B11111111", Email: "compras@vega.example", Phone: "+34 600 111 111", CreatedAt: now, UpdatedAt: now},
		{ID: "cust-002", TenantID: DemoTenantID, Name: "Calderería Núñez SA", Company: "Calderería Núñez SA", TaxID: "A22222222", Email: "pedidos@nunez.example", Phone: "+34 600 222 222", CreatedAt: now, UpdatedAt: now},
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.MinCost)
	if err != nil {
		panic(fmt.Sprintf("fixture: bcrypt seed: %v", err))
	}
	actor := func(id, role, name, email, customerID string) *entity.Actor {
		return &entity.Actor{
			ID: id, AuthID: id, TenantID: DemoTenantID,
			Email: email, PasswordHash: string(hash), Name: name,
			Role: role, CustomerID: customerID, Status: "active",
			CreatedAt: now, UpdatedAt: now,
		}
	}
	s.actors = []*entity.Actor{
		actor("actor-admin", entity.RoleAdmin, "Admin Demo", "admin@entalpia.example", ""),
		actor("actor-comm", entity.RoleCommercial, "Comercial Demo", "comercial@entalpia.example", ""),
		actor("actor-logi", entity.RoleLogistics, "Logística Demo", "logistica@entalpia.example", ""),
		actor("actor-cust", entity.RoleCustomer, "Cliente Vega", "compras@vega.example", "cust-001"),
	}
	// Actor con drift: su AuthID no coincide con el del proveedor de auth,
	// así que solo se resuelve por el fallback de email.
	drifted := actor("actor-drift", entity.RoleCustomer, "Cliente Núñez", "pedidos@nunez.example", "cust-002")
	drifted.AuthID = "auth-obsoleto-001"
	s.actors = append(s.actors, drifted)

	// Serie de cotizaciones del cobre: 30 días con variación determinista.
	base := price("8.50")
	for i := 29; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		delta := decimal.NewFromInt(int64(s.rnd.Intn(61) - 30)).Div(decimal.NewFromInt(100))
		s.prices = append(s.prices, &entity.MarketPrice{
			ID:          fmt.Sprintf("mp-%03d", 30-i),
			Metal:       "copper",
			PricePerKg:  base.Add(delta),
			Currency:    "EUR",
			Source:      "fixture",
			EffectiveAt: day.Truncate(24 * time.Hour),
		})
	}
}
