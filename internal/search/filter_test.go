package search

import "testing"

func f(v float64) *float64 { return &v }

func TestCompileEmptyParams(t *testing.T) {
	q := Compile(Params{})
	if len(q.Vehiculo) != 0 || len(q.Modelo) != 0 || len(q.Marca) != 0 {
		t.Fatalf("empty params must compile to the identity query, got %+v", q)
	}
	if q.RequiresModelo() || q.RequiresMarca() {
		t.Fatal("identity query must not require joins")
	}
}

func TestCompilePriceBounds(t *testing.T) {
	t.Run("min only", func(t *testing.T) {
		q := Compile(Params{PrecioMin: f(10000)})
		if len(q.Vehiculo) != 1 {
			t.Fatalf("want 1 condition, got %d", len(q.Vehiculo))
		}
		c := q.Vehiculo[0]
		if c.Column != "precio" || c.Op != OpGte || c.Value != 10000.0 {
			t.Fatalf("unexpected condition %+v", c)
		}
	})

	t.Run("max only", func(t *testing.T) {
		q := Compile(Params{PrecioMax: f(30000)})
		c := q.Vehiculo[0]
		if c.Op != OpLte || c.Value != 30000.0 {
			t.Fatalf("unexpected condition %+v", c)
		}
	})

	t.Run("both bounds collapse to between", func(t *testing.T) {
		q := Compile(Params{PrecioMin: f(10000), PrecioMax: f(30000)})
		if len(q.Vehiculo) != 1 {
			t.Fatalf("want a single range condition, got %d", len(q.Vehiculo))
		}
		c := q.Vehiculo[0]
		if c.Op != OpBetween || c.Value != 10000.0 || c.Hi != 30000.0 {
			t.Fatalf("unexpected condition %+v", c)
		}
	})
}

func TestCompileOneClausePerParam(t *testing.T) {
	q := Compile(Params{
		Estado:      "nuevo",
		Combustible: "diesel",
		Transmision: "manual",
		PrecioMin:   f(5000),
	})
	if len(q.Vehiculo) != 4 {
		t.Fatalf("want 4 vehiculo conditions, got %d", len(q.Vehiculo))
	}
}

func TestCompileJoinRequirements(t *testing.T) {
	t.Run("vehiculo-only filters need no joins", func(t *testing.T) {
		q := Compile(Params{Estado: "usado"})
		if q.RequiresModelo() || q.RequiresMarca() {
			t.Fatal("estado filter must not require joins")
		}
	})

	t.Run("modelo filter requires the modelo join", func(t *testing.T) {
		q := Compile(Params{Modelo: "corolla"})
		if !q.RequiresModelo() {
			t.Fatal("modelo filter must require the modelo join")
		}
		if q.RequiresMarca() {
			t.Fatal("modelo filter alone must not require the marca join")
		}
	})

	t.Run("marca filter requires both joins", func(t *testing.T) {
		q := Compile(Params{Marca: "toyota"})
		if !q.RequiresModelo() || !q.RequiresMarca() {
			t.Fatal("marca filter must require both joins")
		}
		if q.Marca[0].Op != OpContains {
			t.Fatalf("marca match must be a substring match, got op %v", q.Marca[0].Op)
		}
	})
}
