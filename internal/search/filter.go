package search

// Params is the flat set of optional query parameters accepted by the
// vehicle search endpoint. Pointers distinguish absent numeric bounds.
type Params struct {
	Marca       string   `form:"marca"`
	Modelo      string   `form:"modelo"`
	Estado      string   `form:"estado"`
	Combustible string   `form:"combustible"`
	Transmision string   `form:"transmision"`
	PrecioMin   *float64 `form:"precioMin"`
	PrecioMax   *float64 `form:"precioMax"`
}

type Op int

const (
	OpEq Op = iota
	OpGte
	OpLte
	OpBetween
	// OpContains is a case-insensitive substring match.
	OpContains
)

type Condition struct {
	Column string
	Op     Op
	Value  any
	// Hi is the upper bound for OpBetween.
	Hi any
}

// Query is the compiled predicate tree: conjunctive condition lists per
// table. A non-empty Modelo or Marca list turns the corresponding join into
// a required (inner) join; otherwise the join stays optional and only feeds
// the nested display fields.
type Query struct {
	Vehiculo []Condition
	Modelo   []Condition
	Marca    []Condition
}

func (q Query) RequiresModelo() bool {
	return len(q.Modelo) > 0 || len(q.Marca) > 0
}

func (q Query) RequiresMarca() bool {
	return len(q.Marca) > 0
}

// Compile translates the flat parameter set into an immutable Query. Each
// present parameter contributes exactly one AND clause; absent parameters
// contribute nothing, so the empty Params compiles to the identity query.
func Compile(p Params) Query {
	var q Query

	if p.Estado != "" {
		q.Vehiculo = append(q.Vehiculo, Condition{Column: "estado", Op: OpEq, Value: p.Estado})
	}
	if p.Combustible != "" {
		q.Vehiculo = append(q.Vehiculo, Condition{Column: "combustible", Op: OpEq, Value: p.Combustible})
	}
	if p.Transmision != "" {
		q.Vehiculo = append(q.Vehiculo, Condition{Column: "transmision", Op: OpEq, Value: p.Transmision})
	}

	switch {
	case p.PrecioMin != nil && p.PrecioMax != nil:
		q.Vehiculo = append(q.Vehiculo, Condition{Column: "precio", Op: OpBetween, Value: *p.PrecioMin, Hi: *p.PrecioMax})
	case p.PrecioMin != nil:
		q.Vehiculo = append(q.Vehiculo, Condition{Column: "precio", Op: OpGte, Value: *p.PrecioMin})
	case p.PrecioMax != nil:
		q.Vehiculo = append(q.Vehiculo, Condition{Column: "precio", Op: OpLte, Value: *p.PrecioMax})
	}

	if p.Modelo != "" {
		q.Modelo = append(q.Modelo, Condition{Column: "nombre", Op: OpContains, Value: p.Modelo})
	}
	if p.Marca != "" {
		q.Marca = append(q.Marca, Condition{Column: "nombre", Op: OpContains, Value: p.Marca})
	}

	return q
}
