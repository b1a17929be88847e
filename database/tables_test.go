package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolvePorDialecto(t *testing.T) {
	mysql := NewTableResolver("mysql")
	assert.Equal(t, "requerimientos", mysql.Resolve(TablaRequerimientos))

	mssql := NewTableResolver("mssql")
	assert.Equal(t, "dbo.requerimientos", mssql.Resolve(TablaRequerimientos))

	postgres := NewTableResolver("postgres")
	assert.Equal(t, "bodega_stocks", postgres.Resolve(TablaBodegaStocks))
}

func TestPaginacionPorDialecto(t *testing.T) {
	mysql := NewTableResolver("mysql")
	assert.Equal(t, "LIMIT 10 OFFSET 20", mysql.Paginacion(10, 20))

	mssql := NewTableResolver("mssql")
	assert.Equal(t, "OFFSET 20 ROWS FETCH NEXT 10 ROWS ONLY", mssql.Paginacion(10, 20))
}
