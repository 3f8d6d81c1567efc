package entity

// Revenue ingreso mensual (datos de referencia de solo lectura).
type Revenue struct {
	Month   string // "Jan", "Feb", ...
	Revenue int64
}
