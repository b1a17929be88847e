package database

import (
	"fmt"

	"kardexplus/config"
)

// Logical table names used by raw SQL reports. Repositories never hardcode a
// physical name; the resolver below maps them once per process according to
// the configured dialect.
const (
	TablaItems                 = "items"
	TablaItemPresentaciones    = "item_presentaciones"
	TablaCategorias            = "categorias"
	TablaBodegas               = "bodegas"
	TablaBodegaStocks          = "bodega_stocks"
	TablaMovimientos           = "movimientos"
	TablaMovimientoDetalles    = "movimiento_detalles"
	TablaRequerimientos        = "requerimientos"
	TablaRequerimientoDetalles = "requerimiento_detalles"
	TablaUsers                 = "users"
)

// TableResolver maps logical table names to physical, schema-qualified names
// for the active SQL dialect, and renders dialect-specific pagination. The
// dialect changes naming and pagination syntax only, never query semantics.
type TableResolver struct {
	dialect string
}

func NewTableResolver(dialect string) *TableResolver {
	return &TableResolver{dialect: dialect}
}

// Resolve returns the physical name for a logical table.
func (t *TableResolver) Resolve(logical string) string {
	if t.dialect == "mssql" {
		return "dbo." + logical
	}
	return logical
}

// Paginacion renders the dialect's pagination clause for an ORDER BY query.
func (t *TableResolver) Paginacion(limit, offset int) string {
	if t.dialect == "mssql" {
		return fmt.Sprintf("OFFSET %d ROWS FETCH NEXT %d ROWS ONLY", offset, limit)
	}
	return fmt.Sprintf("LIMIT %d OFFSET %d", limit, offset)
}

var resolver *TableResolver

// Tablas returns the process-wide resolver, built from the configured dialect
// on first use.
func Tablas() *TableResolver {
	if resolver == nil {
		resolver = NewTableResolver(config.DBDialect)
	}
	return resolver
}
