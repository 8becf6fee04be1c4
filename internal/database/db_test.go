package database

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	got := dsn("shop", "pw", "db.local", "3306", "silvershop")
	require.Equal(t,
		"shop:pw@tcp(db.local:3306)/silvershop?charset=utf8mb4&parseTime=true&loc=UTC&multiStatements=true&clientFoundRows=true",
		got)
}

func TestDSNWithoutPassword(t *testing.T) {
	got := dsn("shop", "", "localhost", "3306", "silvershop")
	require.Contains(t, got, "shop@tcp(localhost:3306)/silvershop")
}

// The repositories map zero affected rows to ErrNotFound, so the driver
// must report matched rows, not changed rows. Otherwise an update that
// re-submits identical values would surface as a 404.
func TestDSNCountsMatchedRows(t *testing.T) {
	require.Contains(t, dsn("u", "p", "h", "3306", "d"), "clientFoundRows=true")
}
