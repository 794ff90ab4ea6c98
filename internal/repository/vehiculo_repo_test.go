package repository

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"vertice.mx/concesionario/internal/model"
	"vertice.mx/concesionario/internal/search"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.Usuario{}, &model.Marca{}, &model.Modelo{}, &model.Vehiculo{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// seedCatalog inserts two marcas, two modelos and three vehiculos and
// returns the modelo ids keyed by nombre.
func seedCatalog(t *testing.T, db *gorm.DB) map[string]uint {
	t.Helper()
	ctx := context.Background()

	marcas := NewMarcaRepository(db)
	modelos := NewModeloRepository(db)
	vehiculos := NewVehiculoRepository(db)

	toyota := &model.Marca{Nombre: "Toyota"}
	ford := &model.Marca{Nombre: "Ford"}
	for _, m := range []*model.Marca{toyota, ford} {
		if err := marcas.Create(ctx, m); err != nil {
			t.Fatalf("create marca %s: %v", m.Nombre, err)
		}
	}

	corolla := &model.Modelo{Nombre: "Corolla", Anio: 2024, Tipo: "sedan", MarcaID: toyota.ID}
	f150 := &model.Modelo{Nombre: "F-150", Anio: 2023, Tipo: "pickup", MarcaID: ford.ID}
	for _, m := range []*model.Modelo{corolla, f150} {
		if err := modelos.Create(ctx, m); err != nil {
			t.Fatalf("create modelo %s: %v", m.Nombre, err)
		}
	}

	seed := []*model.Vehiculo{
		{VIN: "VIN-A", Color: "rojo", Precio: 25000, Combustible: "gasolina", Transmision: "automatica", Estado: model.EstadoNuevo, ModeloID: corolla.ID},
		{VIN: "VIN-B", Color: "negro", Precio: 45000, Kilometraje: 30000, Combustible: "diesel", Transmision: "manual", Estado: model.EstadoUsado, ModeloID: f150.ID},
		{VIN: "VIN-C", Color: "blanco", Precio: 18000, Kilometraje: 90000, Combustible: "gasolina", Transmision: "manual", Estado: model.EstadoVendido, ModeloID: corolla.ID},
	}
	for _, v := range seed {
		if err := vehiculos.Create(ctx, v); err != nil {
			t.Fatalf("create vehiculo %s: %v", v.VIN, err)
		}
	}

	return map[string]uint{"Corolla": corolla.ID, "F-150": f150.ID}
}

func vins(vehiculos []*model.Vehiculo) []string {
	out := make([]string, 0, len(vehiculos))
	for _, v := range vehiculos {
		out = append(out, v.VIN)
	}
	sort.Strings(out)
	return out
}

func equalVINs(got []string, want ...string) bool {
	sort.Strings(want)
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestVehiculoSearch(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	repo := NewVehiculoRepository(db)
	ctx := context.Background()

	t.Run("empty query returns everything", func(t *testing.T) {
		got, err := repo.Search(ctx, search.Compile(search.Params{}))
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		all, err := repo.FindAll(ctx)
		if err != nil {
			t.Fatalf("find all: %v", err)
		}
		if len(got) != len(all) {
			t.Fatalf("empty search returned %d, FindAll returned %d", len(got), len(all))
		}
	})

	t.Run("filters combine conjunctively", func(t *testing.T) {
		min := 20000.0
		got, err := repo.Search(ctx, search.Compile(search.Params{Estado: "nuevo", PrecioMin: &min}))
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		if !equalVINs(vins(got), "VIN-A") {
			t.Fatalf("want only VIN-A, got %v", vins(got))
		}
	})

	t.Run("marca match is a case-insensitive substring", func(t *testing.T) {
		got, err := repo.Search(ctx, search.Compile(search.Params{Marca: "toy"}))
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		if !equalVINs(vins(got), "VIN-A", "VIN-C") {
			t.Fatalf("want Corolla vehicles, got %v", vins(got))
		}
	})

	t.Run("modelo match narrows across the join", func(t *testing.T) {
		got, err := repo.Search(ctx, search.Compile(search.Params{Modelo: "f-1"}))
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		if !equalVINs(vins(got), "VIN-B") {
			t.Fatalf("want only VIN-B, got %v", vins(got))
		}
	})

	t.Run("price range is inclusive on both ends", func(t *testing.T) {
		min, max := 18000.0, 25000.0
		got, err := repo.Search(ctx, search.Compile(search.Params{PrecioMin: &min, PrecioMax: &max}))
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		if !equalVINs(vins(got), "VIN-A", "VIN-C") {
			t.Fatalf("want VIN-A and VIN-C, got %v", vins(got))
		}
	})

	t.Run("no matches yields an empty slice, not an error", func(t *testing.T) {
		got, err := repo.Search(ctx, search.Compile(search.Params{Estado: "nuevo", Combustible: "diesel"}))
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("want no results, got %v", vins(got))
		}
	})

	t.Run("results carry nested modelo and marca", func(t *testing.T) {
		got, err := repo.Search(ctx, search.Compile(search.Params{Marca: "ford"}))
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("want 1 result, got %d", len(got))
		}
		v := got[0]
		if v.Modelo == nil || v.Modelo.Marca == nil {
			t.Fatal("search results must preload modelo and marca")
		}
		if v.Modelo.Nombre != "F-150" || v.Modelo.Marca.Nombre != "Ford" {
			t.Fatalf("unexpected nested data: modelo=%q marca=%q", v.Modelo.Nombre, v.Modelo.Marca.Nombre)
		}
	})
}

func TestVehiculoVINUniqueness(t *testing.T) {
	db := newTestDB(t)
	ids := seedCatalog(t, db)
	repo := NewVehiculoRepository(db)
	ctx := context.Background()

	err := repo.Create(ctx, &model.Vehiculo{
		VIN: "VIN-A", Color: "azul", Precio: 1, Combustible: "gasolina",
		Transmision: "manual", Estado: model.EstadoNuevo, ModeloID: ids["Corolla"],
	})
	if err == nil {
		t.Fatal("duplicate VIN must be rejected by the store")
	}
	if !isDuplicate(err) {
		t.Fatalf("want a duplicated-key error, got %v", err)
	}
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func TestVehiculoImageRoundTrip(t *testing.T) {
	db := newTestDB(t)
	ids := seedCatalog(t, db)
	repo := NewVehiculoRepository(db)
	ctx := context.Background()

	in := &model.Vehiculo{
		VIN: "VIN-D", Color: "gris", Precio: 32000, Combustible: "hibrido",
		Transmision: "automatica", Estado: model.EstadoNuevo,
		Imagenes: model.ImageList{"https://img.test/1.webp", "https://img.test/2.webp"},
		ModeloID: ids["Corolla"],
	}
	if err := repo.Create(ctx, in); err != nil {
		t.Fatalf("create: %v", err)
	}

	out, err := repo.FindByID(ctx, in.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(out.Imagenes) != 2 || out.Imagenes[0] != "https://img.test/1.webp" {
		t.Fatalf("images did not round-trip, got %v", out.Imagenes)
	}
}
