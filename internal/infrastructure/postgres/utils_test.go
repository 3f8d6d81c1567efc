package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLike_ComodinesLiterales(t *testing.T) {
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `c:\\temp`, escapeLike(`c:\temp`))
	// Los metacaracteres de regex no son especiales en LIKE y quedan intactos.
	assert.Equal(t, "a.b*$(", escapeLike("a.b*$("))
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%%", containsPattern(""))
	assert.Equal(t, `%delba\_%`, containsPattern("delba_"))
}

func TestParseID(t *testing.T) {
	id, ok := parseID("3958DC9E-712F-4377-85E9-FEC4B6A6442A")
	assert.True(t, ok)
	assert.Equal(t, "3958dc9e-712f-4377-85e9-fec4b6a6442a", id)

	_, ok = parseID("no-es-uuid")
	assert.False(t, ok)
}

func TestMigrateURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@h:5432/db?sslmode=disable", migrateURL("postgres://u:p@h:5432/db?sslmode=disable"))
	assert.Equal(t, "pgx5://u@h/db", migrateURL("postgresql://u@h/db"))
	assert.Equal(t, "pgx5://x", migrateURL("pgx5://x"))
}
