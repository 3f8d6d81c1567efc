package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "/dashboard/invoices", Key("/dashboard/invoices/", ""))
	assert.Equal(t, "/dashboard/invoices?page=2", Key("dashboard/invoices", "page=2"))
	assert.Equal(t, "/", Key("", ""))
}

func TestUnderPath(t *testing.T) {
	const p = "/dashboard/invoices"
	assert.True(t, underPath("/dashboard/invoices", p))
	assert.True(t, underPath("/dashboard/invoices?query=a&page=2", p))
	assert.True(t, underPath("/dashboard/invoices/123/edit", p))
	assert.False(t, underPath("/dashboard/invoices-archive", p))
	assert.False(t, underPath("/dashboard", p))
	assert.True(t, underPath("/dashboard", "/"))
}

func TestMemoryViewCache_SetGetExpira(t *testing.T) {
	c := NewMemoryViewCache()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	body := []byte(`{"ok":true}`)
	require.NoError(t, c.Set(ctx, "/dashboard", Entry{ContentType: "application/json", Body: body}, time.Minute))
	body[0] = 'X'

	got, err := c.Get(ctx, "/dashboard")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, `{"ok":true}`, string(got.Body), "la caché guarda su propia copia")

	now = now.Add(time.Minute)
	got, err = c.Get(ctx, "/dashboard")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Zero(t, c.Len())
}

func TestMemoryViewCache_TTLCeroNoGuarda(t *testing.T) {
	c := NewMemoryViewCache()
	require.NoError(t, c.Set(context.Background(), "/x", Entry{Body: []byte("a")}, 0))
	assert.Zero(t, c.Len())
}

func TestMemoryViewCache_Revalidate(t *testing.T) {
	c := NewMemoryViewCache()
	ctx := context.Background()
	for _, k := range []string{
		"/dashboard",
		"/dashboard/invoices",
		"/dashboard/invoices?query=lee&page=2",
		"/dashboard/invoices/abc/edit",
		"/dashboard/customers",
	} {
		require.NoError(t, c.Set(ctx, k, Entry{Body: []byte(k)}, time.Minute))
	}

	require.NoError(t, c.Revalidate(ctx, "/dashboard/invoices"))
	assert.Equal(t, 2, c.Len())

	got, _ := c.Get(ctx, "/dashboard/customers")
	assert.NotNil(t, got)
	got, _ = c.Get(ctx, "/dashboard/invoices?query=lee&page=2")
	assert.Nil(t, got)
}
